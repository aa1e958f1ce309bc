package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Ibramnsh/backend-sidokepung/internal/peta/models"
)

// InMemoryStore keeps boundary documents in insertion order. It backs local
// runs without a database and tests.
type InMemoryStore struct {
	mu   sync.RWMutex
	docs []models.BoundaryDocument
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) ListBoundaryDocuments(_ context.Context) ([]models.BoundaryDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.BoundaryDocument, 0, len(s.docs))
	for _, d := range s.docs {
		if d.Type == models.FeatureCollectionType {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *InMemoryStore) Save(_ context.Context, raw json.RawMessage) (string, error) {
	doc := models.BoundaryDocument{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("save boundary document: %w", err)
	}
	doc.ID = uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, doc)
	return doc.ID, nil
}
