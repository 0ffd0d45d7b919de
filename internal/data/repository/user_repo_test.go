package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"muse/internal/data/entity"
	"muse/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewUserRepository(mock, zap.NewNop())

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "alice@example.com", "", "", "hash", entity.RoleCustomer, true,
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err = repo.Create(context.Background(), &entity.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Role:         entity.RoleCustomer,
		IsActive:     true,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	assert.Equal(t, "A user with that username already exists", apperror.FieldErrors(err)["username"])
}

func TestUserRepository_FindByUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewUserRepository(mock, zap.NewNop())
	now := time.Now()

	columns := []string{"id", "username", "email", "first_name", "last_name", "password",
		"role", "is_active", "created_at", "updated_at"}
	mock.ExpectQuery("FROM users WHERE username = \\$1").WithArgs("alice").
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(int64(1), "alice", "alice@example.com", "Alice", "", "hash",
				entity.RoleCustomer, true, now, now))
	mock.ExpectQuery("FROM users WHERE username = \\$1").WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows(columns))

	user, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "Alice", user.FirstName)

	ghost, err := repo.FindByUsername(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, ghost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_RevokeAndClean(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewSessionRepository(mock, zap.NewNop())
	token := uuid.New()

	mock.ExpectExec("UPDATE sessions").WithArgs(token).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec("DELETE FROM sessions").
		WillReturnResult(pgxmock.NewResult("DELETE", 4))
	mock.ExpectQuery("FROM sessions s").WithArgs(token).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	require.NoError(t, repo.Revoke(context.Background(), token))

	purged, err := repo.CleanExpiredSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), purged)

	session, err := repo.FindValidSession(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.NoError(t, mock.ExpectationsWereMet())
}
