// Command import-boundaries loads a GeoJSON FeatureCollection file as one
// boundary document.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	petaStore "github.com/Ibramnsh/backend-sidokepung/internal/peta/store"
	"github.com/Ibramnsh/backend-sidokepung/internal/platform/config"
	"github.com/Ibramnsh/backend-sidokepung/internal/platform/logger"
	"github.com/Ibramnsh/backend-sidokepung/internal/platform/postgres"
)

// Saver stores one raw boundary document and returns its id.
type Saver interface {
	Save(ctx context.Context, raw json.RawMessage) (string, error)
}

// Summary describes a validated collection.
type Summary struct {
	Features int
	Polygons int
	Labelled int
}

func main() {
	path := flag.String("file", "", "path to a GeoJSON FeatureCollection")
	dryRun := flag.Bool("dry-run", false, "validate without saving")
	flag.Parse()

	log := logger.New()
	if *path == "" {
		log.Error("missing -file")
		os.Exit(2)
	}
	if err := run(*path, *dryRun, log); err != nil {
		log.Error("import failed", "file", *path, "error", err)
		os.Exit(1)
	}
}

func run(path string, dryRun bool, log *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	summary, err := Validate(raw)
	if err != nil {
		return err
	}
	log.Info("boundary file validated",
		"features", summary.Features,
		"polygons", summary.Polygons,
		"labelled", summary.Labelled,
	)
	if dryRun {
		return nil
	}

	cfg := config.FromEnv()
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db, petaStore.Schema); err != nil {
		return err
	}

	id, err := Import(ctx, petaStore.NewPostgres(db), raw)
	if err != nil {
		return err
	}
	log.Info("boundary document stored", "document_id", id)
	return nil
}

// Validate checks that raw is a FeatureCollection and that each feature has
// a geometry. geojson.UnmarshalFeatureCollection rejects any other type.
func Validate(raw []byte) (Summary, error) {
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return Summary{}, fmt.Errorf("invalid feature collection: %w", err)
	}

	var s Summary
	for i, feat := range fc.Features {
		if feat.Geometry == nil {
			return Summary{}, fmt.Errorf("feature %d has no geometry", i)
		}
		s.Features++
		switch feat.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
			s.Polygons++
		}
		if _, ok := feat.Properties["nmsls"].(string); ok {
			s.Labelled++
		}
	}
	return s, nil
}

// Import validates raw and stores it unchanged.
func Import(ctx context.Context, store Saver, raw []byte) (string, error) {
	if _, err := Validate(raw); err != nil {
		return "", err
	}
	return store.Save(ctx, json.RawMessage(raw))
}
