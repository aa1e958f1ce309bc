package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/Ibramnsh/backend-sidokepung/internal/peta/models"
)

// PostgresStore persists boundary FeatureCollections as JSONB documents.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed boundary store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// ListBoundaryDocuments returns every FeatureCollection document in insertion
// order. Documents are decoded loosely; a bad features member is left for the
// caller to reject.
func (s *PostgresStore) ListBoundaryDocuments(ctx context.Context) ([]models.BoundaryDocument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, doc
		FROM boundary_documents
		WHERE doc->>'type' = $1
		ORDER BY created_at, id
	`, models.FeatureCollectionType)
	if err != nil {
		return nil, fmt.Errorf("list boundary documents: %w", err)
	}
	defer rows.Close()

	var docs []models.BoundaryDocument
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan boundary document: %w", err)
		}
		doc := models.BoundaryDocument{ID: id}
		if err := json.Unmarshal(raw, &doc); err != nil {
			// Not an object at all; keep the row so it is counted as skipped.
			doc.Features = nil
		}
		doc.ID = id
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate boundary documents: %w", err)
	}
	return docs, nil
}

// Save stores a raw FeatureCollection document and returns its id.
func (s *PostgresStore) Save(ctx context.Context, raw json.RawMessage) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO boundary_documents (id, doc)
		VALUES ($1, $2)
	`, id, []byte(raw))
	if err != nil {
		return "", fmt.Errorf("save boundary document: %w", err)
	}
	return id, nil
}
