package service

import (
	"context"
	"strings"
	"time"

	"github.com/Khushiyant/nibtara/internal/auth/domain"
	"github.com/Khushiyant/nibtara/internal/auth/dto"
	apperrors "github.com/Khushiyant/nibtara/internal/errors"
	"github.com/Khushiyant/nibtara/internal/metrics"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// RegistrationService creates accounts and promotes clients to lawyers or judges.
type RegistrationService struct {
	accounts   domain.AccountRepository
	auth       *AuthService
	bcryptCost int
	opts       options
}

func NewRegistrationService(accounts domain.AccountRepository, auth *AuthService, bcryptCost int, opts ...Option) *RegistrationService {
	return &RegistrationService{
		accounts:   accounts,
		auth:       auth,
		bcryptCost: bcryptCost,
		opts:       buildOptions(opts),
	}
}

// CreateAccount stores a new CLIENT account. The raw password is only ever hashed.
func (s *RegistrationService) CreateAccount(ctx context.Context, input dto.CreateAccountInput) (*domain.Account, error) {
	return s.createAccount(ctx, input, false)
}

// CreatePrivileged stores a staff superuser. It is meant for operator bootstrap only.
func (s *RegistrationService) CreatePrivileged(ctx context.Context, input dto.CreateAccountInput) (*domain.Account, error) {
	return s.createAccount(ctx, input, true)
}

// RegisterClient creates a CLIENT account and opens its first session.
func (s *RegistrationService) RegisterClient(ctx context.Context, input dto.RegisterClientInput) (*domain.Account, *domain.TokenPair, error) {
	account, err := s.createAccount(ctx, dto.CreateAccountInput{
		Email:    input.Email,
		Name:     input.Name,
		Password: input.Password,
	}, false)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.auth.IssueSession(ctx, account, domain.SessionMeta{IPAddress: input.IPAddress, UserAgent: input.UserAgent})
	if err != nil {
		return nil, nil, err
	}

	metrics.RecordRegistration(string(domain.RoleClient))
	publishEvent(ctx, s.opts, domain.EventAccountRegistered, account)
	return account, pair, nil
}

// RegisterLawyer promotes caller from CLIENT to LAWYER and creates the lawyer profile.
func (s *RegistrationService) RegisterLawyer(ctx context.Context, caller *domain.Account, input dto.RegisterLawyerInput) (*domain.Lawyer, error) {
	if caller == nil {
		return nil, apperrors.ErrAuthenticationRequired
	}
	input.BarCode = strings.TrimSpace(input.BarCode)
	if err := dto.Validate(input); err != nil {
		return nil, err
	}
	lawyerType, err := domain.ParseLawyerType(input.LawyerType)
	if err != nil {
		return nil, apperrors.Validation("invalid input", map[string]string{
			"lawyer_type": `"` + input.LawyerType + `" is not a valid choice.`,
		})
	}
	if !caller.Role.CanTransitionTo(domain.RoleLawyer) {
		return nil, apperrors.ErrIllegalRoleTransition
	}

	lawyer := &domain.Lawyer{
		UserID:         caller.ID,
		BarCode:        input.BarCode,
		ChamberAddress: strings.TrimSpace(input.ChamberAddress),
		LawyerType:     lawyerType,
		Name:           caller.Name,
		Email:          caller.Email,
	}
	if err := s.accounts.PromoteToLawyer(ctx, lawyer); err != nil {
		return nil, err
	}
	caller.Role = domain.RoleLawyer

	s.afterUpgrade(ctx, caller)
	return lawyer, nil
}

// RegisterJudge promotes caller from CLIENT to JUDGE and creates the judge profile.
func (s *RegistrationService) RegisterJudge(ctx context.Context, caller *domain.Account, input dto.RegisterJudgeInput) (*domain.Judge, error) {
	if caller == nil {
		return nil, apperrors.ErrAuthenticationRequired
	}
	input.BarCode = strings.TrimSpace(input.BarCode)
	if err := dto.Validate(input); err != nil {
		return nil, err
	}
	if !caller.Role.CanTransitionTo(domain.RoleJudge) {
		return nil, apperrors.ErrIllegalRoleTransition
	}

	judge := &domain.Judge{
		UserID:       caller.ID,
		BarCode:      input.BarCode,
		CourtAddress: strings.TrimSpace(input.CourtAddress),
	}
	if err := s.accounts.PromoteToJudge(ctx, judge); err != nil {
		return nil, err
	}
	caller.Role = domain.RoleJudge

	s.afterUpgrade(ctx, caller)
	return judge, nil
}

func (s *RegistrationService) afterUpgrade(ctx context.Context, account *domain.Account) {
	metrics.RecordRegistration(string(account.Role))
	s.opts.log.WithFields(logrus.Fields{
		"account_id": account.ID,
		"role":       account.Role,
	}).Info("account role upgraded")
	publishEvent(ctx, s.opts, domain.EventAccountRoleUpgraded, account)
}

func (s *RegistrationService) createAccount(ctx context.Context, input dto.CreateAccountInput, privileged bool) (*domain.Account, error) {
	input.Email = NormalizeEmail(input.Email)
	input.Name = strings.TrimSpace(input.Name)
	if err := dto.Validate(input); err != nil {
		return nil, err
	}

	existing, err := s.accounts.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrEmailAlreadyInUse
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	account := &domain.Account{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleClient,
		IsActive:     true,
		IsStaff:      privileged,
		IsSuperuser:  privileged,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	s.opts.log.WithFields(logrus.Fields{
		"account_id": account.ID,
		"privileged": privileged,
	}).Info("account created")
	return account, nil
}
