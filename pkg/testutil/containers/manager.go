//go:build integration

package containers

import (
	"sync"
	"testing"
)

// Manager hands out one shared container per backend for the whole test binary.
type Manager struct {
	mu       sync.Mutex
	postgres *PostgresContainer
	redis    *RedisContainer
}

var (
	managerOnce sync.Once
	manager     *Manager
)

// GetManager returns the process-wide container manager.
func GetManager() *Manager {
	managerOnce.Do(func() {
		manager = &Manager{}
	})
	return manager
}

// GetPostgres starts PostgreSQL on first use.
func (m *Manager) GetPostgres(t *testing.T) *PostgresContainer {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.postgres == nil {
		m.postgres = NewPostgresContainer(t)
	}
	return m.postgres
}

// GetRedis starts Redis on first use.
func (m *Manager) GetRedis(t *testing.T) *RedisContainer {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.redis == nil {
		m.redis = NewRedisContainer(t)
	}
	return m.redis
}
