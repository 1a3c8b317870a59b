package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Khushiyant/nibtara/internal/auth/domain"
	repo "github.com/Khushiyant/nibtara/internal/auth/repository/postgres"
	apperrors "github.com/Khushiyant/nibtara/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accountColumns = []string{"id", "email", "name", "password_hash", "role", "is_active", "is_staff", "is_superuser", "created_at", "updated_at"}

func TestGetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	email := "client@example.com"
	now := time.Now()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email, name").
			WithArgs(email).
			WillReturnRows(pgxmock.NewRows(accountColumns).
				AddRow(int64(3), email, "Client", "hash", "LAWYER", true, false, false, now, now))

		account, err := r.GetByEmail(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, int64(3), account.ID)
		assert.Equal(t, domain.RoleLawyer, account.Role)
		assert.True(t, account.IsActive)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email, name").
			WithArgs(email).
			WillReturnError(pgx.ErrNoRows)

		account, err := r.GetByEmail(ctx, email)
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email, name").
			WithArgs(email).
			WillReturnError(errors.New("db error"))

		_, err := r.GetByEmail(ctx, email)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery("FROM users WHERE id").
		WithArgs(int64(9)).
		WillReturnRows(pgxmock.NewRows(accountColumns).
			AddRow(int64(9), "j@example.com", "Judge", "hash", "JUDGE", true, false, false, now, now))

	account, err := r.GetByID(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleJudge, account.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_UnknownStoredRole(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	now := time.Now()

	mock.ExpectQuery("FROM users WHERE id").
		WithArgs(int64(4)).
		WillReturnRows(pgxmock.NewRows(accountColumns).
			AddRow(int64(4), "x@example.com", "X", "hash", "ADMIN", true, false, false, now, now))

	account, err := r.GetByID(context.Background(), 4)
	assert.Nil(t, account)
	assert.ErrorContains(t, err, "unknown role")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	now := time.Now()
	newAccount := func() *domain.Account {
		return &domain.Account{
			Email:        "new@example.com",
			Name:         "New",
			PasswordHash: "hash",
			Role:         domain.RoleClient,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	t.Run("success sets the id", func(t *testing.T) {
		a := newAccount()
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(a.Email, a.Name, a.PasswordHash, "CLIENT", true, false, false, now, now).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(12)))

		require.NoError(t, r.Create(ctx, a))
		assert.Equal(t, int64(12), a.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		err := r.Create(ctx, newAccount())
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyInUse)
	})

	t.Run("other failure", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(errors.New("connection reset"))

		err := r.Create(ctx, newAccount())
		require.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrEmailAlreadyInUse)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromoteToLawyer(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	newLawyer := func() *domain.Lawyer {
		return &domain.Lawyer{UserID: 4, BarCode: "BAR-1", ChamberAddress: "1 High St", LawyerType: domain.LawyerTypeFamily}
	}

	t.Run("success", func(t *testing.T) {
		l := newLawyer()
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT role FROM users").
			WithArgs(int64(4)).
			WillReturnRows(pgxmock.NewRows([]string{"role"}).AddRow("CLIENT"))
		mock.ExpectExec("UPDATE users SET role").
			WithArgs("LAWYER", int64(4)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectQuery("INSERT INTO lawyers").
			WithArgs(int64(4), "BAR-1", "1 High St", int16(3)).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(30)))
		mock.ExpectCommit()

		require.NoError(t, r.PromoteToLawyer(ctx, l))
		assert.Equal(t, int64(30), l.ID)
	})

	t.Run("already upgraded rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT role FROM users").
			WithArgs(int64(4)).
			WillReturnRows(pgxmock.NewRows([]string{"role"}).AddRow("JUDGE"))
		mock.ExpectRollback()

		err := r.PromoteToLawyer(ctx, newLawyer())
		assert.ErrorIs(t, err, apperrors.ErrIllegalRoleTransition)
	})

	t.Run("missing account", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT role FROM users").
			WithArgs(int64(4)).
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectRollback()

		err := r.PromoteToLawyer(ctx, newLawyer())
		assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
	})

	t.Run("insert failure undoes the role change", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT role FROM users").
			WithArgs(int64(4)).
			WillReturnRows(pgxmock.NewRows([]string{"role"}).AddRow("CLIENT"))
		mock.ExpectExec("UPDATE users SET role").
			WithArgs("LAWYER", int64(4)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectQuery("INSERT INTO lawyers").
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err := r.PromoteToLawyer(ctx, newLawyer())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("existing lawyer row", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT role FROM users").
			WithArgs(int64(4)).
			WillReturnRows(pgxmock.NewRows([]string{"role"}).AddRow("CLIENT"))
		mock.ExpectExec("UPDATE users SET role").
			WithArgs("LAWYER", int64(4)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectQuery("INSERT INTO lawyers").
			WillReturnError(&pgconn.PgError{Code: "23505"})
		mock.ExpectRollback()

		err := r.PromoteToLawyer(ctx, newLawyer())
		assert.ErrorIs(t, err, apperrors.ErrIllegalRoleTransition)
	})

	t.Run("begin failure", func(t *testing.T) {
		mock.ExpectBegin().WillReturnError(errors.New("pool closed"))

		assert.Error(t, r.PromoteToLawyer(ctx, newLawyer()))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromoteToJudge(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	judge := &domain.Judge{UserID: 8, BarCode: "J-1", CourtAddress: "District Court"}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT role FROM users").
		WithArgs(int64(8)).
		WillReturnRows(pgxmock.NewRows([]string{"role"}).AddRow("CLIENT"))
	mock.ExpectExec("UPDATE users SET role").
		WithArgs("JUDGE", int64(8)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("INSERT INTO judges").
		WithArgs(int64(8), "J-1", "District Court").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectCommit()

	require.NoError(t, r.PromoteToJudge(ctx, judge))
	assert.Equal(t, int64(2), judge.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
