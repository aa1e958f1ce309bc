package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

// FeatureCollectionType is the GeoJSON type of boundary documents and of the
// enriched output.
const FeatureCollectionType = "FeatureCollection"

var (
	// ErrFeaturesMissing marks a document with no features member (or null).
	ErrFeaturesMissing = errors.New("features missing")
	// ErrFeaturesMalformed marks a document whose features member is not an
	// array of feature objects.
	ErrFeaturesMalformed = errors.New("features malformed")
)

// BoundaryDocument is one stored FeatureCollection. Features is kept raw so a
// malformed document can be skipped without failing the whole read.
type BoundaryDocument struct {
	ID       string          `json:"-"`
	Type     string          `json:"type"`
	Features json.RawMessage `json:"features"`
}

// Polygons decodes the document's features.
func (d BoundaryDocument) Polygons() ([]BoundaryFeature, error) {
	raw := bytes.TrimSpace(d.Features)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, ErrFeaturesMissing
	}
	if raw[0] != '[' {
		return nil, ErrFeaturesMalformed
	}
	var features []BoundaryFeature
	if err := json.Unmarshal(raw, &features); err != nil {
		return nil, errors.Join(ErrFeaturesMalformed, err)
	}
	return features, nil
}

// BoundaryFeature is an administrative-boundary polygon. Geometry is opaque and
// never decoded.
type BoundaryFeature struct {
	Type       string          `json:"type"`
	ID         json.RawMessage `json:"id,omitempty"`
	BBox       json.RawMessage `json:"bbox,omitempty"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

// EnrichedFeature is a BoundaryFeature with the extended properties bag.
type EnrichedFeature struct {
	Type       string          `json:"type"`
	ID         json.RawMessage `json:"id,omitempty"`
	BBox       json.RawMessage `json:"bbox,omitempty"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

// FeatureCollection is the enriched map layer served to clients.
type FeatureCollection struct {
	Type     string            `json:"type"`
	Features []EnrichedFeature `json:"features"`
}

// NewFeatureCollection returns a collection whose features encode as [] when
// empty.
func NewFeatureCollection(capacity int) *FeatureCollection {
	return &FeatureCollection{
		Type:     FeatureCollectionType,
		Features: make([]EnrichedFeature, 0, capacity),
	}
}

// Property keys written by the enricher.
const (
	PropLabel               = "nmsls"
	PropDistrictSource      = "nmkec"
	PropVillage             = "nmdesa"
	PropRT                  = "RT"
	PropRW                  = "RW"
	PropDusun               = "dusun"
	PropDistrict            = "kecamatan"
	PropDominantGender      = "dominantGender"
	PropDominantGenderCount = "dominantGenderCount"
	PropTotalPopulation     = "totalPopulation"
)

// Sentinel is the placeholder for missing string properties.
const Sentinel = "-"

// VillageUnavailable is the placeholder for a missing village name.
const VillageUnavailable = "Data Tidak Tersedia"
