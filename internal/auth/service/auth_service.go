package service

import (
	"context"
	"time"

	"github.com/Khushiyant/nibtara/internal/auth/domain"
	"github.com/Khushiyant/nibtara/internal/auth/dto"
	apperrors "github.com/Khushiyant/nibtara/internal/errors"
	"github.com/Khushiyant/nibtara/internal/metrics"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthService validates credentials and owns the lifecycle of session tokens.
type AuthService struct {
	accounts     domain.AccountRepository
	tokens       domain.TokenRepository
	tokenService TokenGenerator
	opts         options
}

func NewAuthService(accounts domain.AccountRepository, tokens domain.TokenRepository, tokenService TokenGenerator, opts ...Option) *AuthService {
	return &AuthService{
		accounts:     accounts,
		tokens:       tokens,
		tokenService: tokenService,
		opts:         buildOptions(opts),
	}
}

func (s *AuthService) Login(ctx context.Context, input dto.LoginInput) (*domain.TokenPair, error) {
	input.Email = NormalizeEmail(input.Email)
	if err := dto.Validate(input); err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if account == nil || !account.IsActive ||
		bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)) != nil {
		metrics.RecordLogin(false)
		return nil, apperrors.ErrInvalidCredentials
	}

	pair, err := s.IssueSession(ctx, account, domain.SessionMeta{IPAddress: input.IPAddress, UserAgent: input.UserAgent})
	if err != nil {
		return nil, err
	}

	metrics.RecordLogin(true)
	s.opts.log.WithField("account_id", account.ID).Info("login succeeded")
	return pair, nil
}

// IssueSession mints a new token pair for account and records the refresh half as outstanding.
// Previously issued pairs stay valid.
func (s *AuthService) IssueSession(ctx context.Context, account *domain.Account, meta domain.SessionMeta) (*domain.TokenPair, error) {
	issued, err := s.tokenService.Generate(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, err
	}

	rt := &domain.RefreshToken{
		ID:        issued.RefreshID,
		UserID:    account.ID,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		ExpiresAt: issued.RefreshExpiresAt,
		CreatedAt: time.Now(),
	}
	if err := s.tokens.StoreRefreshToken(ctx, rt); err != nil {
		return nil, err
	}
	s.warmCache(ctx, rt.ID, SessionActive, rt.ExpiresAt)

	return &domain.TokenPair{AccessToken: issued.AccessToken, RefreshToken: issued.RefreshToken}, nil
}

// Refresh exchanges a live refresh token for a new access token bound to it.
func (s *AuthService) Refresh(ctx context.Context, input dto.RefreshInput) (string, error) {
	if err := dto.Validate(input); err != nil {
		return "", err
	}

	claims, err := s.tokenService.VerifyRefreshToken(input.Refresh)
	if err != nil {
		return "", apperrors.ErrInvalidToken
	}

	rt, err := s.liveRefreshToken(ctx, claims.ID)
	if err != nil {
		return "", err
	}

	account, err := s.accounts.GetByID(ctx, rt.UserID)
	if err != nil {
		return "", err
	}
	if account == nil || !account.IsActive {
		return "", apperrors.ErrInvalidToken
	}

	return s.tokenService.GenerateAccess(account.ID, account.Email, account.Role, rt.ID)
}

// Logout blacklists one refresh token of caller. Blacklisting an already blacklisted token succeeds.
func (s *AuthService) Logout(ctx context.Context, caller *domain.Account, refreshToken string) error {
	if caller == nil {
		return apperrors.ErrAuthenticationRequired
	}
	if refreshToken == "" {
		return apperrors.Validation("invalid input", map[string]string{"refresh_token": "This field is required."})
	}

	claims, err := s.tokenService.VerifyRefreshToken(refreshToken)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	rt, err := s.tokens.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		return err
	}
	if rt == nil {
		return apperrors.ErrRefreshTokenNotFound
	}
	if rt.UserID != caller.ID {
		return apperrors.ErrTokenOwnerMismatch
	}

	if !rt.Revoked {
		if err := s.tokens.RevokeRefreshToken(ctx, rt.ID); err != nil {
			return err
		}
	}
	if err := s.cacheRevocation(ctx, rt); err != nil {
		return err
	}

	metrics.RecordLogout(false)
	s.opts.log.WithField("account_id", caller.ID).Info("refresh token blacklisted")
	return nil
}

// LogoutAll blacklists every outstanding, unexpired refresh token of caller and returns how many
// were blacklisted.
func (s *AuthService) LogoutAll(ctx context.Context, caller *domain.Account) (int, error) {
	if caller == nil {
		return 0, apperrors.ErrAuthenticationRequired
	}

	revoked, err := s.tokens.RevokeAllRefreshTokensByUserID(ctx, caller.ID)
	if err != nil {
		return 0, err
	}
	var cacheErr error
	for i := range revoked {
		if err := s.cacheRevocation(ctx, &revoked[i]); err != nil && cacheErr == nil {
			cacheErr = err
		}
	}
	if cacheErr != nil {
		return 0, cacheErr
	}

	metrics.RecordLogout(true)
	s.opts.log.WithFields(logrus.Fields{
		"account_id": caller.ID,
		"revoked":    len(revoked),
	}).Info("all refresh tokens blacklisted")
	s.publish(ctx, domain.EventAccountLoggedOutAll, caller)
	return len(revoked), nil
}

// Authenticate maps a bearer access token to its account. The token is rejected once its parent
// refresh token is blacklisted or expired, or when the account has been deactivated.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.Account, error) {
	if accessToken == "" {
		return nil, apperrors.ErrAuthenticationRequired
	}

	claims, err := s.tokenService.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	live, err := s.sessionLive(ctx, claims.RefreshID)
	if err != nil {
		return nil, err
	}
	if !live {
		return nil, apperrors.ErrInvalidToken
	}

	account, err := s.accounts.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if account == nil || !account.IsActive {
		return nil, apperrors.ErrInvalidToken
	}
	return account, nil
}

func (s *AuthService) liveRefreshToken(ctx context.Context, id string) (*domain.RefreshToken, error) {
	rt, err := s.tokens.GetRefreshToken(ctx, id)
	if err != nil {
		return nil, err
	}
	if rt == nil {
		return nil, apperrors.ErrRefreshTokenNotFound
	}
	if rt.Revoked {
		return nil, apperrors.ErrRefreshTokenRevoked
	}
	if !time.Now().Before(rt.ExpiresAt) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	return rt, nil
}

func (s *AuthService) sessionLive(ctx context.Context, refreshID string) (bool, error) {
	state, found, err := s.opts.sessions.Get(ctx, refreshID)
	if err != nil {
		s.opts.log.WithError(err).Warn("session cache read failed")
	} else if found {
		return state == SessionActive, nil
	}

	rt, err := s.tokens.GetRefreshToken(ctx, refreshID)
	if err != nil {
		return false, err
	}
	if rt == nil {
		return false, nil
	}

	live := rt.Live(time.Now())
	if live {
		s.warmCache(ctx, rt.ID, SessionActive, rt.ExpiresAt)
	} else {
		s.warmCache(ctx, rt.ID, SessionRevoked, rt.ExpiresAt)
	}
	return live, nil
}

// cacheState records state for at most the configured TTL and never past expiresAt.
// Revocations are kept until the token would have expired.
func (s *AuthService) cacheState(ctx context.Context, refreshID string, state SessionState, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if state == SessionActive {
		ttl = min(ttl, s.opts.sessionCacheTTL)
	}
	if ttl <= 0 {
		return nil
	}
	return s.opts.sessions.Set(ctx, refreshID, state, ttl)
}

// warmCache stores a state read from postgres. The cache is optional on this path.
func (s *AuthService) warmCache(ctx context.Context, refreshID string, state SessionState, expiresAt time.Time) {
	if err := s.cacheState(ctx, refreshID, state, expiresAt); err != nil {
		s.opts.log.WithError(err).Warn("session cache write failed")
	}
}

// cacheRevocation fails the caller when the revoked state cannot be cached, since a stale "active"
// entry would keep accepting access tokens of the blacklisted parent.
func (s *AuthService) cacheRevocation(ctx context.Context, rt *domain.RefreshToken) error {
	if err := s.cacheState(ctx, rt.ID, SessionRevoked, rt.ExpiresAt); err != nil {
		s.opts.log.WithError(err).WithField("account_id", rt.UserID).Error("session cache revocation failed")
		return apperrors.Upstream("session cache unavailable", err)
	}
	return nil
}

func (s *AuthService) publish(ctx context.Context, eventType string, account *domain.Account) {
	publishEvent(ctx, s.opts, eventType, account)
}

func publishEvent(ctx context.Context, o options, eventType string, account *domain.Account) {
	event := domain.AccountEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		AccountID:  account.ID,
		Role:       account.Role,
		OccurredAt: time.Now().UTC(),
	}
	if err := o.events.Publish(ctx, event); err != nil {
		o.log.WithError(err).WithField("event", eventType).Warn("failed to publish account event")
	}
}
