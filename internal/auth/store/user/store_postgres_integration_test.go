//go:build integration

package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/Ibramnsh/backend-sidokepung/internal/auth/models"
	"github.com/Ibramnsh/backend-sidokepung/internal/auth/store/user"
	"github.com/Ibramnsh/backend-sidokepung/pkg/platform/sentinel"
	"github.com/Ibramnsh/backend-sidokepung/pkg/testutil/containers"
)

type PostgresUserStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *user.PostgresStore
}

func TestPostgresUserStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresUserStoreSuite))
}

func (s *PostgresUserStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	_, err := s.postgres.Exec(context.Background(), user.Schema)
	s.Require().NoError(err)
	s.store = user.NewPostgres(s.postgres.DB)
}

func (s *PostgresUserStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "users"))
}

func (s *PostgresUserStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	u := &models.User{
		ID:           uuid.NewString(),
		Username:     "admin",
		PasswordHash: "$2a$12$hash",
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
	s.Require().NoError(s.store.Create(ctx, u))

	byName, err := s.store.FindByUsername(ctx, "admin")
	s.Require().NoError(err)
	s.Equal(u.ID, byName.ID)
	s.True(u.CreatedAt.Equal(byName.CreatedAt))

	byID, err := s.store.FindByID(ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("admin", byID.Username)

	_, err = s.store.FindByUsername(ctx, "ghost")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresUserStoreSuite) TestUniqueUsername() {
	ctx := context.Background()
	first := &models.User{ID: uuid.NewString(), Username: "admin", PasswordHash: "h", Role: models.RoleAdmin, CreatedAt: time.Now()}
	second := &models.User{ID: uuid.NewString(), Username: "admin", PasswordHash: "h", Role: models.RoleAdmin, CreatedAt: time.Now()}

	s.Require().NoError(s.store.Create(ctx, first))
	s.ErrorIs(s.store.Create(ctx, second), sentinel.ErrConflict)
}
