package service

import (
	"context"
	"strings"
	"time"

	"github.com/Khushiyant/nibtara/internal/auth/domain"
	"github.com/Khushiyant/nibtara/internal/auth/dto"
	apperrors "github.com/Khushiyant/nibtara/internal/errors"
	"github.com/Khushiyant/nibtara/internal/pagination"
)

// ListingService answers the lawyer and case listings. Case records are only written by operators.
type ListingService struct {
	cases    domain.CaseRepository
	pageSize int
}

func NewListingService(cases domain.CaseRepository) *ListingService {
	return &ListingService{cases: cases, pageSize: pagination.DefaultPageSize}
}

// ListLawyers returns lawyers of one type (CIVIL unless given), newest first.
func (s *ListingService) ListLawyers(ctx context.Context, caller *domain.Account, q dto.LawyerQuery) (*dto.LawyerListOutput, error) {
	if caller == nil {
		return nil, apperrors.ErrAuthenticationRequired
	}

	lawyerType, err := domain.ParseLawyerType(q.LawyerType)
	if err != nil {
		return nil, apperrors.Validation("invalid filter", map[string]string{
			"lawyer_type": `"` + q.LawyerType + `" is not a valid choice.`,
		})
	}

	lawyers, err := s.cases.ListLawyers(ctx, domain.LawyerFilter{
		LawyerType: lawyerType,
		Name:       strings.TrimSpace(q.Name),
		Email:      strings.TrimSpace(q.Email),
	})
	if err != nil {
		return nil, err
	}

	page := pagination.Paginate(lawyers, pagination.ParsePageNumber(q.Page), s.pageSize)
	return &dto.LawyerListOutput{
		FilteredLawyers: dto.NewLawyerOutputs(lawyers),
		PageObj:         dto.NewLawyerOutputs(page.Items),
		Page:            page.Number,
		NumPages:        page.NumPages,
		Count:           page.Count,
	}, nil
}

// ListOwnPreTrials returns only the caller's case records, oldest registration first.
func (s *ListingService) ListOwnPreTrials(ctx context.Context, caller *domain.Account, q dto.PreTrialQuery) (*dto.PreTrialListOutput, error) {
	if caller == nil {
		return nil, apperrors.ErrAuthenticationRequired
	}

	filter := domain.PreTrialFilter{
		OwnerID: caller.ID,
		CaseAct: strings.TrimSpace(q.CaseAct),
		Details: strings.TrimSpace(q.Details),
	}
	if raw := strings.TrimSpace(q.DateRegistered); raw != "" {
		d, err := time.Parse(dto.DateLayout, raw)
		if err != nil {
			return nil, apperrors.Validation("invalid filter", map[string]string{
				"date_registered": "Enter a valid date.",
			})
		}
		filter.DateRegistered = &d
	}

	records, err := s.cases.ListPreTrials(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := pagination.Paginate(records, pagination.ParsePageNumber(q.Page), s.pageSize)
	return &dto.PreTrialListOutput{
		FilteredPreTrials: dto.NewPreTrialOutputs(records),
		PageObj:           dto.NewPreTrialOutputs(page.Items),
		Page:              page.Number,
		NumPages:          page.NumPages,
		Count:             page.Count,
	}, nil
}

// AddPreTrial records a case for owner.
func (s *ListingService) AddPreTrial(ctx context.Context, owner *domain.Account, input dto.CreatePreTrialInput) (*domain.PreTrial, error) {
	if owner == nil {
		return nil, apperrors.ErrAccountNotFound
	}
	input.CaseAct = strings.TrimSpace(input.CaseAct)
	if err := dto.Validate(input); err != nil {
		return nil, err
	}

	now := time.Now()
	registered := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if raw := strings.TrimSpace(input.DateRegistered); raw != "" {
		d, err := time.Parse(dto.DateLayout, raw)
		if err != nil {
			return nil, apperrors.Validation("invalid input", map[string]string{
				"date_registered": "Enter a valid date.",
			})
		}
		registered = d
	}

	pt := &domain.PreTrial{
		UserID:         owner.ID,
		CaseAct:        input.CaseAct,
		Details:        strings.TrimSpace(input.Details),
		DateRegistered: registered,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.cases.CreatePreTrial(ctx, pt); err != nil {
		return nil, err
	}
	return pt, nil
}
