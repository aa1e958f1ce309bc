package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Ibramnsh/backend-sidokepung/internal/auth/models"
	"github.com/Ibramnsh/backend-sidokepung/pkg/platform/sentinel"
)

// Schema creates the admin account table.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'admin',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

const uniqueViolation = "23505"

// PostgresStore persists users in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed user store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts u. A taken username yields sentinel.ErrConflict.
func (s *PostgresStore) Create(ctx context.Context, u *models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, u.ID, u.Username, u.PasswordHash, u.Role, u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx, `WHERE username = $1`, username)
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.findOne(ctx, `WHERE id = $1`, id)
}

func (s *PostgresStore) findOne(ctx context.Context, where string, arg any) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, role, created_at
		FROM users `+where,
		arg,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}
