package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Khushiyant/nibtara/internal/auth/domain"
	apperrors "github.com/Khushiyant/nibtara/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// DB is the subset of *pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresRepository implements the account, token and case repositories on one connection pool.
type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const accountColumns = `id, email, name, password_hash, role, is_active, is_staff, is_superuser, created_at, updated_at`

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM users WHERE email = $1 LIMIT 1`, email)
	account, err := scanAccount(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return account, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM users WHERE id = $1`, id)
	account, err := scanAccount(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get account by id: %w", err)
	}
	return account, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		a    domain.Account
		role string
	)
	err := row.Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &role,
		&a.IsActive, &a.IsStaff, &a.IsSuperuser, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if a.Role, err = domain.ParseRole(role); err != nil {
		return nil, fmt.Errorf("account %d: %w", a.ID, err)
	}
	return &a, nil
}

// Create inserts account and sets its ID. A taken email maps to ErrEmailAlreadyInUse.
func (r *PostgresRepository) Create(ctx context.Context, account *domain.Account) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash, role, is_active, is_staff, is_superuser, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, account.Email, account.Name, account.PasswordHash, string(account.Role),
		account.IsActive, account.IsStaff, account.IsSuperuser, account.CreatedAt, account.UpdatedAt,
	).Scan(&account.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyInUse
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// PromoteToLawyer switches the owning account to LAWYER and inserts lawyer in one transaction.
func (r *PostgresRepository) PromoteToLawyer(ctx context.Context, lawyer *domain.Lawyer) error {
	return r.promote(ctx, lawyer.UserID, domain.RoleLawyer, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
			INSERT INTO lawyers (user_id, bar_code, chamber_address, lawyer_type)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, lawyer.UserID, lawyer.BarCode, lawyer.ChamberAddress, int16(lawyer.LawyerType)).Scan(&lawyer.ID)
	})
}

// PromoteToJudge switches the owning account to JUDGE and inserts judge in one transaction.
func (r *PostgresRepository) PromoteToJudge(ctx context.Context, judge *domain.Judge) error {
	return r.promote(ctx, judge.UserID, domain.RoleJudge, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
			INSERT INTO judges (user_id, bar_code, court_address)
			VALUES ($1, $2, $3)
			RETURNING id
		`, judge.UserID, judge.BarCode, judge.CourtAddress).Scan(&judge.ID)
	})
}

// promote locks the account row, re-checks the transition under the lock and applies it together
// with insertExtension. Nothing is persisted unless every step succeeds.
func (r *PostgresRepository) promote(ctx context.Context, userID int64, target domain.Role, insertExtension func(pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin role upgrade: %w", err)
	}

	var current string
	err = tx.QueryRow(ctx, `SELECT role FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&current)
	if err != nil {
		_ = tx.Rollback(ctx)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrAccountNotFound
		}
		return fmt.Errorf("lock account: %w", err)
	}
	role, err := domain.ParseRole(current)
	if err != nil || !role.CanTransitionTo(target) {
		_ = tx.Rollback(ctx)
		return apperrors.ErrIllegalRoleTransition
	}

	if _, err := tx.Exec(ctx, `UPDATE users SET role = $1, updated_at = now() WHERE id = $2`, string(target), userID); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("update role: %w", err)
	}

	if err := insertExtension(tx); err != nil {
		_ = tx.Rollback(ctx)
		if isUniqueViolation(err) {
			return apperrors.ErrIllegalRoleTransition
		}
		return fmt.Errorf("insert %s record: %w", target, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit role upgrade: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
