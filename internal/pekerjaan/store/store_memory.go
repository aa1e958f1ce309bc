package store

import (
	"context"
	"slices"
	"sync"

	"github.com/Ibramnsh/backend-sidokepung/internal/pekerjaan/models"
	"github.com/Ibramnsh/backend-sidokepung/pkg/platform/sentinel"
)

// InMemoryStore keeps records in insertion order.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []*models.Record
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) List(_ context.Context, filter models.Filter) ([]*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Record
	for _, r := range s.records {
		if r.JenisKelamin == "" {
			continue
		}
		if filter.Active() && (r.RT != *filter.RT || r.RW != *filter.RW) {
			continue
		}
		c := *r
		out = append(out, &c)
	}
	return out, nil
}

func (s *InMemoryStore) ListResidents(_ context.Context) ([]models.Resident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Resident, 0, len(s.records))
	for _, r := range s.records {
		if r.JenisKelamin == "" {
			continue
		}
		out = append(out, models.Resident{RT: r.RT, RW: r.RW, JenisKelamin: r.JenisKelamin})
	}
	return out, nil
}

func (s *InMemoryStore) Create(_ context.Context, r *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *r
	s.records = append(s.records, &c)
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, r *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(r.ID)
	if i < 0 {
		return sentinel.ErrNotFound
	}
	existing := s.records[i]
	existing.RT = r.RT
	existing.RW = r.RW
	existing.Umur = r.Umur
	existing.JenisKelamin = r.JenisKelamin
	existing.StatusPekerjaanUtama = r.StatusPekerjaanUtama
	existing.NamaAnggota = r.NamaAnggota
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return sentinel.ErrNotFound
	}
	s.records = slices.Delete(s.records, i, i+1)
	return nil
}

func (s *InMemoryStore) indexOf(id string) int {
	return slices.IndexFunc(s.records, func(r *models.Record) bool { return r.ID == id })
}
