package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/Ibramnsh/backend-sidokepung/internal/auth/models"
	"github.com/Ibramnsh/backend-sidokepung/pkg/platform/sentinel"
)

type InMemoryUserStoreSuite struct {
	suite.Suite
	store *InMemoryUserStore
}

func (s *InMemoryUserStoreSuite) SetupTest() {
	s.store = New()
}

func TestInMemoryUserStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryUserStoreSuite))
}

func newUser(username string) *models.User {
	return &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: "hash",
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now(),
	}
}

func (s *InMemoryUserStoreSuite) TestLookupBehavior() {
	ctx := context.Background()
	u := newUser("admin")
	s.Require().NoError(s.store.Create(ctx, u))

	s.Run("returns user by username when exists", func() {
		found, err := s.store.FindByUsername(ctx, "admin")
		s.Require().NoError(err)
		s.Equal(u, found)
	})

	s.Run("returns user by ID when exists", func() {
		found, err := s.store.FindByID(ctx, u.ID)
		s.Require().NoError(err)
		s.Equal(u, found)
	})

	s.Run("returns ErrNotFound for unknown user", func() {
		_, err := s.store.FindByUsername(ctx, "ghost")
		s.ErrorIs(err, sentinel.ErrNotFound)
		_, err = s.store.FindByID(ctx, uuid.NewString())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returns copies", func() {
		found, err := s.store.FindByUsername(ctx, "admin")
		s.Require().NoError(err)
		found.Role = models.RoleUser
		again, err := s.store.FindByUsername(ctx, "admin")
		s.Require().NoError(err)
		s.Equal(models.RoleAdmin, again.Role)
	})
}

func (s *InMemoryUserStoreSuite) TestDuplicateUsername() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, newUser("warga")))
	s.ErrorIs(s.store.Create(ctx, newUser("warga")), sentinel.ErrConflict)
}
