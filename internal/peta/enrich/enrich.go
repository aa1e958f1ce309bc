// Package enrich joins boundary polygons with per-RT/RW dominance summaries.
package enrich

import (
	"maps"

	"github.com/Ibramnsh/backend-sidokepung/internal/peta/dominance"
	"github.com/Ibramnsh/backend-sidokepung/internal/peta/label"
	"github.com/Ibramnsh/backend-sidokepung/internal/peta/models"
)

// Feature builds the enriched form of f. The input feature and its properties
// are left untouched; geometry is shared as-is.
func Feature(f models.BoundaryFeature, table dominance.Table) models.EnrichedFeature {
	src := f.Properties
	parsed := label.Parse(labelOf(src))

	props := make(map[string]any, len(src)+8)
	maps.Copy(props, src)

	props[models.PropRT] = parsed.RT
	props[models.PropRW] = parsed.RW
	props[models.PropDusun] = parsed.Dusun
	props[models.PropDistrict] = valueOr(src, models.PropDistrictSource, models.Sentinel)
	props[models.PropVillage] = valueOr(src, models.PropVillage, models.VillageUnavailable)

	if s, ok := table.Lookup(parsed.RTCode, parsed.RWCode); ok {
		props[models.PropDominantGender] = s.Category
		props[models.PropDominantGenderCount] = s.Count
		props[models.PropTotalPopulation] = s.Total
	} else {
		props[models.PropDominantGender] = nil
		props[models.PropDominantGenderCount] = 0
		props[models.PropTotalPopulation] = 0
	}

	return models.EnrichedFeature{
		Type:       f.Type,
		ID:         f.ID,
		BBox:       f.BBox,
		Geometry:   f.Geometry,
		Properties: props,
	}
}

func labelOf(props map[string]any) string {
	if s, ok := props[models.PropLabel].(string); ok {
		return s
	}
	return ""
}

// valueOr returns props[key] unless it is missing or empty, in which case def.
func valueOr(props map[string]any, key string, def string) any {
	v, ok := props[key]
	if !ok || v == nil {
		return def
	}
	switch t := v.(type) {
	case string:
		if t == "" {
			return def
		}
	case bool:
		if !t {
			return def
		}
	case float64:
		if t == 0 {
			return def
		}
	}
	return v
}
