package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Khushiyant/nibtara/internal/auth/domain"
	"github.com/jackc/pgx/v5"
)

func (r *PostgresRepository) StoreRefreshToken(ctx context.Context, rt *domain.RefreshToken) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO refresh_tokens (id, user_id, ip_address, user_agent, expires_at, created_at, revoked)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rt.ID, rt.UserID, rt.IPAddress, rt.UserAgent, rt.ExpiresAt, rt.CreatedAt, rt.Revoked)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetRefreshToken(ctx context.Context, id string) (*domain.RefreshToken, error) {
	var rt domain.RefreshToken
	err := r.db.QueryRow(ctx, `
		SELECT id::text, user_id, ip_address, user_agent, expires_at, created_at, revoked
		FROM refresh_tokens
		WHERE id = $1
	`, id).Scan(&rt.ID, &rt.UserID, &rt.IPAddress, &rt.UserAgent, &rt.ExpiresAt, &rt.CreatedAt, &rt.Revoked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	return &rt, nil
}

func (r *PostgresRepository) RevokeRefreshToken(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE refresh_tokens SET revoked = TRUE, revoked_at = now()
		WHERE id = $1 AND NOT revoked
	`, id)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// RevokeAllRefreshTokensByUserID blacklists every live token of the user and returns the ones it touched.
func (r *PostgresRepository) RevokeAllRefreshTokensByUserID(ctx context.Context, userID int64) ([]domain.RefreshToken, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE refresh_tokens SET revoked = TRUE, revoked_at = now()
		WHERE user_id = $1 AND NOT revoked AND expires_at > now()
		RETURNING id::text, user_id, expires_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	defer rows.Close()

	var revoked []domain.RefreshToken
	for rows.Next() {
		rt := domain.RefreshToken{Revoked: true}
		if err := rows.Scan(&rt.ID, &rt.UserID, &rt.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan revoked token: %w", err)
		}
		revoked = append(revoked, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return revoked, nil
}

// DeleteExpiredRefreshTokens removes tokens that expired before the cutoff, blacklisted or not.
func (r *PostgresRepository) DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired refresh tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
