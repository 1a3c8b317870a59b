package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/Khushiyant/nibtara/internal/auth/service TokenGenerator

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Khushiyant/nibtara/internal/auth/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// IssuedTokens is a freshly signed pair plus the bookkeeping needed to store the refresh half.
type IssuedTokens struct {
	AccessToken      string
	RefreshToken     string
	RefreshID        string
	RefreshExpiresAt time.Time
}

type TokenGenerator interface {
	Generate(userID int64, email string, role domain.Role) (*IssuedTokens, error)
	GenerateAccess(userID int64, email string, role domain.Role, refreshID string) (string, error)
	VerifyAccessToken(tokenString string) (*JWTCustomClaims, error)
	VerifyRefreshToken(tokenString string) (*JWTCustomClaims, error)
}

type TokenService struct {
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

// JWTCustomClaims is shared by both token types. RefreshID is set on access tokens only and
// names the refresh token (jti) the access token was derived from.
type JWTCustomClaims struct {
	jwt.RegisteredClaims
	UserID    int64       `json:"user_id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role,omitempty"`
	TokenType string      `json:"token_type"`
	RefreshID string      `json:"rid,omitempty"`
}

func NewTokenService(accessSecret, refreshSecret string, accessMinutes, refreshMinutes int) *TokenService {
	return &TokenService{
		AccessTokenSecret:  accessSecret,
		RefreshTokenSecret: refreshSecret,
		AccessTokenExpiry:  time.Duration(accessMinutes) * time.Minute,
		RefreshTokenExpiry: time.Duration(refreshMinutes) * time.Minute,
	}
}

// Generate signs a new refresh token with a fresh jti and an access token bound to it.
func (ts *TokenService) Generate(userID int64, email string, role domain.Role) (*IssuedTokens, error) {
	now := time.Now()
	refreshID := uuid.NewString()
	refreshExpiresAt := now.Add(ts.RefreshTokenExpiry)

	refreshClaims := JWTCustomClaims{
		UserID:    userID,
		Email:     email,
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        refreshID,
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(refreshExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256,
		refreshClaims).SignedString([]byte(ts.RefreshTokenSecret))
	if err != nil {
		return nil, err
	}

	accessToken, err := ts.GenerateAccess(userID, email, role, refreshID)
	if err != nil {
		return nil, err
	}

	return &IssuedTokens{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshID:        refreshID,
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

func (ts *TokenService) GenerateAccess(userID int64, email string, role domain.Role, refreshID string) (string, error) {
	now := time.Now()

	accessClaims := JWTCustomClaims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: TokenTypeAccess,
		RefreshID: refreshID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(ts.AccessTokenSecret))
}

// VerifyAccessToken parses and validates the given access token string.
func (ts *TokenService) VerifyAccessToken(tokenString string) (*JWTCustomClaims, error) {
	claims, err := ts.verify(tokenString, ts.AccessTokenSecret, TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	if claims.RefreshID == "" {
		return nil, fmt.Errorf("access token has no parent refresh token")
	}
	return claims, nil
}

// VerifyRefreshToken parses and validates the given refresh token string.
func (ts *TokenService) VerifyRefreshToken(tokenString string) (*JWTCustomClaims, error) {
	claims, err := ts.verify(tokenString, ts.RefreshTokenSecret, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("refresh token has no jti")
	}
	return claims, nil
}

func (ts *TokenService) verify(tokenString, secret, tokenType string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("token type %q, want %q", claims.TokenType, tokenType)
	}

	return claims, nil
}
