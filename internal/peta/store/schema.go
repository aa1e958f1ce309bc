package store

// Schema creates the boundary document table.
const Schema = `
CREATE TABLE IF NOT EXISTS boundary_documents (
	id         TEXT PRIMARY KEY,
	doc        JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`
