package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/Khushiyant/nibtara/internal/auth/domain"
	"github.com/Khushiyant/nibtara/internal/auth/dto"
	"github.com/Khushiyant/nibtara/internal/auth/service"
	apperrors "github.com/Khushiyant/nibtara/internal/errors"
	"github.com/Khushiyant/nibtara/internal/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type registrationFixture struct {
	accounts *mocks.MockAccountRepository
	tokens   *mocks.MockTokenRepository
	events   *mocks.MockEventPublisher
	svc      *service.RegistrationService
}

func newRegistrationFixture(ctrl *gomock.Controller) registrationFixture {
	f := registrationFixture{
		accounts: mocks.NewMockAccountRepository(ctrl),
		tokens:   mocks.NewMockTokenRepository(ctrl),
		events:   mocks.NewMockEventPublisher(ctrl),
	}
	auth := service.NewAuthService(f.accounts, f.tokens, newTokenService())
	f.svc = service.NewRegistrationService(f.accounts, auth, bcrypt.MinCost, service.WithEventPublisher(f.events))
	return f
}

func TestRegistrationService_RegisterClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("creates a client and returns a pair", func(t *testing.T) {
		f := newRegistrationFixture(ctrl)

		f.accounts.EXPECT().GetByEmail(ctx, "new@example.com").Return(nil, nil)
		f.accounts.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, a *domain.Account) error {
			assert.Equal(t, domain.RoleClient, a.Role)
			assert.True(t, a.IsActive)
			assert.False(t, a.IsStaff)
			assert.NotEqual(t, "pa55word", a.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("pa55word")))
			a.ID = 11
			return nil
		})
		f.tokens.EXPECT().StoreRefreshToken(ctx, gomock.Any()).Return(nil)
		f.events.EXPECT().Publish(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e domain.AccountEvent) error {
			assert.Equal(t, domain.EventAccountRegistered, e.Type)
			assert.Equal(t, int64(11), e.AccountID)
			return nil
		})

		account, pair, err := f.svc.RegisterClient(ctx, dto.RegisterClientInput{
			Email:    " new@Example.COM ",
			Name:     "New Client",
			Password: "pa55word",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(11), account.ID)
		assert.Equal(t, "new@example.com", account.Email)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newRegistrationFixture(ctrl)

		f.accounts.EXPECT().GetByEmail(ctx, "taken@example.com").Return(&domain.Account{ID: 1}, nil)

		_, _, err := f.svc.RegisterClient(ctx, dto.RegisterClientInput{
			Email:    "taken@example.com",
			Name:     "Someone",
			Password: "pa55word",
		})
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyInUse)
	})

	t.Run("invalid input", func(t *testing.T) {
		f := newRegistrationFixture(ctrl)

		_, _, err := f.svc.RegisterClient(ctx, dto.RegisterClientInput{Email: "not-an-email", Password: "x"})
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.KindValidation, appErr.Kind)
		assert.Contains(t, appErr.Fields, "email")
		assert.Contains(t, appErr.Fields, "name")
	})

	t.Run("multibyte password over the bcrypt limit", func(t *testing.T) {
		f := newRegistrationFixture(ctrl)

		_, _, err := f.svc.RegisterClient(ctx, dto.RegisterClientInput{
			Email:    "wide@example.com",
			Name:     "Wide",
			Password: strings.Repeat("密", 30),
		})
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.KindValidation, appErr.Kind)
		assert.Contains(t, appErr.Fields, "password")
	})
}

func TestRegistrationService_CreatePrivileged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	f := newRegistrationFixture(ctrl)

	f.accounts.EXPECT().GetByEmail(ctx, "root@example.com").Return(nil, nil)
	f.accounts.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	account, err := f.svc.CreatePrivileged(ctx, dto.CreateAccountInput{
		Email:    "root@example.com",
		Name:     "Root",
		Password: "pa55word",
	})
	require.NoError(t, err)
	assert.True(t, account.IsStaff)
	assert.True(t, account.IsSuperuser)
	assert.Equal(t, domain.RoleClient, account.Role)
}

func TestRegistrationService_RegisterLawyer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("client becomes lawyer", func(t *testing.T) {
		f := newRegistrationFixture(ctrl)
		caller := &domain.Account{ID: 4, Name: "Lee", Email: "lee@example.com", Role: domain.RoleClient}

		f.accounts.EXPECT().PromoteToLawyer(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, l *domain.Lawyer) error {
			assert.Equal(t, int64(4), l.UserID)
			assert.Equal(t, domain.LawyerTypeCriminal, l.LawyerType)
			l.ID = 20
			return nil
		})
		f.events.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

		lawyer, err := f.svc.RegisterLawyer(ctx, caller, dto.RegisterLawyerInput{
			BarCode:        "BAR-1",
			ChamberAddress: "1 High St",
			LawyerType:     "CRIMINAL",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(20), lawyer.ID)
		assert.Equal(t, "BAR-1", lawyer.BarCode)
		assert.Equal(t, domain.RoleLawyer, caller.Role)
	})

	t.Run("lawyer type defaults to civil", func(t *testing.T) {
		f := newRegistrationFixture(ctrl)
		caller := &domain.Account{ID: 4, Role: domain.RoleClient}

		f.accounts.EXPECT().PromoteToLawyer(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, l *domain.Lawyer) error {
			assert.Equal(t, domain.LawyerTypeCivil, l.LawyerType)
			return nil
		})
		f.events.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

		_, err := f.svc.RegisterLawyer(ctx, caller, dto.RegisterLawyerInput{BarCode: "BAR-2"})
		require.NoError(t, err)
	})

	for _, role := range []domain.Role{domain.RoleLawyer, domain.RoleJudge} {
		t.Run("rejected from "+string(role), func(t *testing.T) {
			f := newRegistrationFixture(ctrl)
			caller := &domain.Account{ID: 4, Role: role}

			_, err := f.svc.RegisterLawyer(ctx, caller, dto.RegisterLawyerInput{BarCode: "BAR-3"})
			assert.ErrorIs(t, err, apperrors.ErrIllegalRoleTransition)
			assert.Equal(t, role, caller.Role)
		})
	}

	t.Run("bad lawyer type", func(t *testing.T) {
		f := newRegistrationFixture(ctrl)

		_, err := f.svc.RegisterLawyer(ctx, &domain.Account{ID: 4, Role: domain.RoleClient},
			dto.RegisterLawyerInput{BarCode: "BAR-4", LawyerType: "MARITIME"})
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.KindValidation, appErr.Kind)
		assert.Equal(t, `"MARITIME" is not a valid choice.`, appErr.Fields["lawyer_type"])
	})

	t.Run("bar code required", func(t *testing.T) {
		f := newRegistrationFixture(ctrl)

		_, err := f.svc.RegisterLawyer(ctx, &domain.Account{ID: 4, Role: domain.RoleClient},
			dto.RegisterLawyerInput{BarCode: "   "})
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("anonymous caller", func(t *testing.T) {
		f := newRegistrationFixture(ctrl)

		_, err := f.svc.RegisterLawyer(ctx, nil, dto.RegisterLawyerInput{BarCode: "BAR-5"})
		assert.ErrorIs(t, err, apperrors.ErrAuthenticationRequired)
	})

	t.Run("lost race inside the transaction", func(t *testing.T) {
		f := newRegistrationFixture(ctrl)
		caller := &domain.Account{ID: 4, Role: domain.RoleClient}

		f.accounts.EXPECT().PromoteToLawyer(ctx, gomock.Any()).Return(apperrors.ErrIllegalRoleTransition)

		_, err := f.svc.RegisterLawyer(ctx, caller, dto.RegisterLawyerInput{BarCode: "BAR-6"})
		assert.ErrorIs(t, err, apperrors.ErrIllegalRoleTransition)
		assert.Equal(t, domain.RoleClient, caller.Role)
	})
}

func TestRegistrationService_RegisterJudge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("client becomes judge", func(t *testing.T) {
		f := newRegistrationFixture(ctrl)
		caller := &domain.Account{ID: 8, Role: domain.RoleClient}

		f.accounts.EXPECT().PromoteToJudge(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, j *domain.Judge) error {
			assert.Equal(t, int64(8), j.UserID)
			assert.Equal(t, "District Court", j.CourtAddress)
			j.ID = 2
			return nil
		})
		f.events.EXPECT().Publish(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e domain.AccountEvent) error {
			assert.Equal(t, domain.EventAccountRoleUpgraded, e.Type)
			assert.Equal(t, domain.RoleJudge, e.Role)
			return nil
		})

		judge, err := f.svc.RegisterJudge(ctx, caller, dto.RegisterJudgeInput{
			BarCode:      "J-1",
			CourtAddress: " District Court ",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), judge.ID)
		assert.Equal(t, domain.RoleJudge, caller.Role)
	})

	t.Run("judge cannot register again", func(t *testing.T) {
		f := newRegistrationFixture(ctrl)

		_, err := f.svc.RegisterJudge(ctx, &domain.Account{ID: 8, Role: domain.RoleJudge},
			dto.RegisterJudgeInput{BarCode: "J-2"})
		assert.ErrorIs(t, err, apperrors.ErrIllegalRoleTransition)
	})
}
