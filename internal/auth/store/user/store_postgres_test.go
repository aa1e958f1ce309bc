package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ibramnsh/backend-sidokepung/internal/auth/models"
	"github.com/Ibramnsh/backend-sidokepung/pkg/platform/sentinel"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, *PostgresStore) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return mock, NewPostgres(db)
}

func TestPostgresStore_Create(t *testing.T) {
	u := &models.User{ID: "u-1", Username: "admin", PasswordHash: "hash", Role: models.RoleAdmin, CreatedAt: time.Now()}

	t.Run("inserted", func(t *testing.T) {
		mock, store := setupMockDB(t)
		mock.ExpectExec(`INSERT INTO users`).
			WithArgs(u.ID, u.Username, u.PasswordHash, u.Role, u.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, store.Create(context.Background(), u))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to conflict", func(t *testing.T) {
		mock, store := setupMockDB(t)
		mock.ExpectExec(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

		assert.ErrorIs(t, store.Create(context.Background(), u), sentinel.ErrConflict)
	})

	t.Run("other failures are wrapped", func(t *testing.T) {
		mock, store := setupMockDB(t)
		mock.ExpectExec(`INSERT INTO users`).WillReturnError(errors.New("connection reset"))

		err := store.Create(context.Background(), u)
		require.Error(t, err)
		assert.NotErrorIs(t, err, sentinel.ErrConflict)
	})
}

func TestPostgresStore_FindByUsername(t *testing.T) {
	created := time.Now()

	t.Run("found", func(t *testing.T) {
		mock, store := setupMockDB(t)
		mock.ExpectQuery(`FROM users WHERE username = \$1`).
			WithArgs("admin").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "created_at"}).
				AddRow("u-1", "admin", "hash", "admin", created))

		u, err := store.FindByUsername(context.Background(), "admin")
		require.NoError(t, err)
		assert.Equal(t, "u-1", u.ID)
		assert.Equal(t, "hash", u.PasswordHash)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		mock, store := setupMockDB(t)
		mock.ExpectQuery(`FROM users WHERE username`).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		_, err := store.FindByUsername(context.Background(), "ghost")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestPostgresStore_FindByID(t *testing.T) {
	mock, store := setupMockDB(t)
	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs("u-2").
		WillReturnError(sql.ErrNoRows)

	_, err := store.FindByID(context.Background(), "u-2")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
