package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ibramnsh/backend-sidokepung/internal/peta/models"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresStore) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPostgres(db)
}

func TestListBoundaryDocuments_Success(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "doc"}).
		AddRow("doc-1", []byte(`{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"nmsls":"RT 001 RW 002"},"geometry":null}]}`)).
		AddRow("doc-2", []byte(`{"type":"FeatureCollection","features":"broken"}`))

	mock.ExpectQuery(`SELECT id, doc\s+FROM boundary_documents`).
		WithArgs(models.FeatureCollectionType).
		WillReturnRows(rows)

	docs, err := store.ListBoundaryDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "doc-1", docs[0].ID)
	polygons, err := docs[0].Polygons()
	require.NoError(t, err)
	require.Len(t, polygons, 1)
	assert.Equal(t, "RT 001 RW 002", polygons[0].Properties[models.PropLabel])

	assert.Equal(t, "doc-2", docs[1].ID)
	_, err = docs[1].Polygons()
	assert.ErrorIs(t, err, models.ErrFeaturesMalformed)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListBoundaryDocuments_QueryError(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, doc`).
		WithArgs(models.FeatureCollectionType).
		WillReturnError(errors.New("connection reset"))

	docs, err := store.ListBoundaryDocuments(context.Background())
	assert.Error(t, err)
	assert.Nil(t, docs)
	assert.Contains(t, err.Error(), "list boundary documents")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSave(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	raw := []byte(`{"type":"FeatureCollection","features":[]}`)
	mock.ExpectExec(`INSERT INTO boundary_documents`).
		WithArgs(sqlmock.AnyArg(), raw).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := store.Save(context.Background(), raw)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.NoError(t, mock.ExpectationsWereMet())
}
