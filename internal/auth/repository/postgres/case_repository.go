package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Khushiyant/nibtara/internal/auth/domain"
)

// ListLawyers returns every lawyer matching filter, newest first. Name and email match as
// case-insensitive substrings of the owning account.
func (r *PostgresRepository) ListLawyers(ctx context.Context, filter domain.LawyerFilter) ([]domain.Lawyer, error) {
	var (
		where = []string{"l.lawyer_type = $1"}
		args  = []any{int16(filter.LawyerType)}
	)
	if filter.Name != "" {
		args = append(args, escapeLike(filter.Name))
		where = append(where, fmt.Sprintf("u.name ILIKE '%%' || $%d || '%%' ESCAPE '\\'", len(args)))
	}
	if filter.Email != "" {
		args = append(args, escapeLike(filter.Email))
		where = append(where, fmt.Sprintf("u.email ILIKE '%%' || $%d || '%%' ESCAPE '\\'", len(args)))
	}

	rows, err := r.db.Query(ctx, `
		SELECT l.id, l.user_id, l.bar_code, COALESCE(l.chamber_address, ''), l.lawyer_type, u.name, u.email
		FROM lawyers l
		JOIN users u ON u.id = l.user_id
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY l.id DESC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list lawyers: %w", err)
	}
	defer rows.Close()

	var lawyers []domain.Lawyer
	for rows.Next() {
		var (
			l          domain.Lawyer
			lawyerType int16
		)
		if err := rows.Scan(&l.ID, &l.UserID, &l.BarCode, &l.ChamberAddress, &lawyerType, &l.Name, &l.Email); err != nil {
			return nil, fmt.Errorf("failed to scan lawyer: %w", err)
		}
		l.LawyerType = domain.LawyerType(lawyerType)
		lawyers = append(lawyers, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list lawyers: %w", err)
	}
	return lawyers, nil
}

// ListPreTrials returns the owner's case records by registration date, oldest first.
func (r *PostgresRepository) ListPreTrials(ctx context.Context, filter domain.PreTrialFilter) ([]domain.PreTrial, error) {
	var (
		where = []string{"user_id = $1"}
		args  = []any{filter.OwnerID}
	)
	if filter.CaseAct != "" {
		args = append(args, escapeLike(filter.CaseAct))
		where = append(where, fmt.Sprintf("case_act ILIKE '%%' || $%d || '%%' ESCAPE '\\'", len(args)))
	}
	if filter.Details != "" {
		args = append(args, escapeLike(filter.Details))
		where = append(where, fmt.Sprintf("details ILIKE '%%' || $%d || '%%' ESCAPE '\\'", len(args)))
	}
	if filter.DateRegistered != nil {
		args = append(args, *filter.DateRegistered)
		where = append(where, fmt.Sprintf("date_registered = $%d", len(args)))
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, case_act, COALESCE(details, ''), date_registered, created_at, updated_at
		FROM pretrials
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY date_registered ASC, id ASC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pretrials: %w", err)
	}
	defer rows.Close()

	var records []domain.PreTrial
	for rows.Next() {
		var p domain.PreTrial
		if err := rows.Scan(&p.ID, &p.UserID, &p.CaseAct, &p.Details, &p.DateRegistered, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pretrial: %w", err)
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list pretrials: %w", err)
	}
	return records, nil
}

func (r *PostgresRepository) CreatePreTrial(ctx context.Context, pt *domain.PreTrial) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO pretrials (user_id, case_act, details, date_registered, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, pt.UserID, pt.CaseAct, pt.Details, pt.DateRegistered, pt.CreatedAt, pt.UpdatedAt).Scan(&pt.ID)
	if err != nil {
		return fmt.Errorf("failed to create pretrial: %w", err)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user text match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
