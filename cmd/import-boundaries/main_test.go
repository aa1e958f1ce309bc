package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	petaStore "github.com/Ibramnsh/backend-sidokepung/internal/peta/store"
)

const collection = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"nmsls": "RT 001 RW 002 DUSUN KRAJAN"},
     "geometry": {"type": "Polygon", "coordinates": [[[110.1, -7.1], [110.2, -7.1], [110.2, -7.2], [110.1, -7.1]]]}},
    {"type": "Feature", "properties": {},
     "geometry": {"type": "Point", "coordinates": [110.15, -7.15]}}
  ]
}`

func TestValidate(t *testing.T) {
	t.Run("counts features", func(t *testing.T) {
		s, err := Validate([]byte(collection))
		require.NoError(t, err)
		assert.Equal(t, Summary{Features: 2, Polygons: 1, Labelled: 1}, s)
	})

	t.Run("rejects a bare feature", func(t *testing.T) {
		_, err := Validate([]byte(`{"type":"Feature","properties":{},"geometry":null}`))
		assert.Error(t, err)
	})

	t.Run("rejects another geojson type", func(t *testing.T) {
		_, err := Validate([]byte(`{"type":"GeometryCollection","geometries":[]}`))
		assert.Error(t, err)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		_, err := Validate([]byte(`{"type":"FeatureCollection","features":[`))
		assert.Error(t, err)
	})
}

func TestImport(t *testing.T) {
	store := petaStore.NewInMemory()

	id, err := Import(context.Background(), store, []byte(collection))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	docs, err := store.ListBoundaryDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	polygons, err := docs[0].Polygons()
	require.NoError(t, err)
	assert.Len(t, polygons, 2)

	_, err = Import(context.Background(), store, []byte(`{"type":"Feature"}`))
	assert.Error(t, err)
	docs, err = store.ListBoundaryDocuments(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

var _ Saver = (*petaStore.InMemoryStore)(nil)
