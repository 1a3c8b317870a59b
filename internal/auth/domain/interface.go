package domain

//go:generate mockgen -destination=../../mocks/mock_repository.go -package=mocks github.com/Khushiyant/nibtara/internal/auth/domain AccountRepository,TokenRepository,CaseRepository

import (
	"context"
	"time"
)

// AccountRepository stores accounts and their role extension records.
// Lookups return (nil, nil) when nothing matches.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id int64) (*Account, error)
	Create(ctx context.Context, account *Account) error
	PromoteToLawyer(ctx context.Context, lawyer *Lawyer) error
	PromoteToJudge(ctx context.Context, judge *Judge) error
}

type TokenRepository interface {
	StoreRefreshToken(ctx context.Context, rt *RefreshToken) error
	GetRefreshToken(ctx context.Context, id string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id string) error
	RevokeAllRefreshTokensByUserID(ctx context.Context, userID int64) ([]RefreshToken, error)
	DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) (int64, error)
}

type CaseRepository interface {
	ListLawyers(ctx context.Context, filter LawyerFilter) ([]Lawyer, error)
	ListPreTrials(ctx context.Context, filter PreTrialFilter) ([]PreTrial, error)
	CreatePreTrial(ctx context.Context, pt *PreTrial) error
}
