package user

import (
	"context"
	"sync"

	"github.com/Ibramnsh/backend-sidokepung/internal/auth/models"
	"github.com/Ibramnsh/backend-sidokepung/pkg/platform/sentinel"
)

// InMemoryUserStore keeps users keyed by id with a username index.
type InMemoryUserStore struct {
	mu         sync.RWMutex
	users      map[string]*models.User
	byUsername map[string]string
}

func New() *InMemoryUserStore {
	return &InMemoryUserStore{
		users:      make(map[string]*models.User),
		byUsername: make(map[string]string),
	}
}

func (s *InMemoryUserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byUsername[u.Username]; taken {
		return sentinel.ErrConflict
	}
	c := *u
	s.users[u.ID] = &c
	s.byUsername[u.Username] = u.ID
	return nil
}

func (s *InMemoryUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUsername[username]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := *s.users[id]
	return &c, nil
}

func (s *InMemoryUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := *u
	return &c, nil
}
