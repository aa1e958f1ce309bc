package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Ibramnsh/backend-sidokepung/internal/peta/dominance"
	"github.com/Ibramnsh/backend-sidokepung/internal/peta/enrich"
	"github.com/Ibramnsh/backend-sidokepung/internal/peta/metrics"
	"github.com/Ibramnsh/backend-sidokepung/internal/peta/models"
	dErrors "github.com/Ibramnsh/backend-sidokepung/pkg/domain-errors"
	"github.com/Ibramnsh/backend-sidokepung/pkg/requestcontext"
)

// DefaultTimeout bounds both source reads of a run.
const DefaultTimeout = 8 * time.Second

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks BoundarySource,ResidentSource

// BoundarySource reads the stored boundary FeatureCollections in traversal order.
type BoundarySource interface {
	ListBoundaryDocuments(ctx context.Context) ([]models.BoundaryDocument, error)
}

// ResidentSource reads every resident record that has a gender.
type ResidentSource interface {
	ListResidents(ctx context.Context) ([]dominance.Resident, error)
}

// Service builds the enriched village map.
type Service struct {
	boundaries BoundarySource
	residents  ResidentSource
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
	timeout    time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// New constructs a Service.
func New(boundaries BoundarySource, residents ResidentSource, opts ...Option) *Service {
	s := &Service{
		boundaries: boundaries,
		residents:  residents,
		logger:     slog.Default(),
		tracer:     otel.Tracer("github.com/Ibramnsh/backend-sidokepung/internal/peta/service"),
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildMap reads both sources, aggregates residents once, and enriches every
// polygon of every well-formed document. It returns either the complete
// collection or a single error.
func (s *Service) BuildMap(ctx context.Context) (*models.FeatureCollection, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "peta.BuildMap")
	defer span.End()

	docs, residents, err := s.fetch(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "source read failed")
		return nil, err
	}

	table := dominance.Aggregate(residents)
	span.SetAttributes(
		attribute.Int("peta.documents", len(docs)),
		attribute.Int("peta.residents", len(residents)),
		attribute.Int("peta.unit_keys", len(table)),
	)

	out := models.NewFeatureCollection(0)
	misses := 0
	for _, doc := range docs {
		polygons, err := doc.Polygons()
		if err != nil {
			s.logger.WarnContext(ctx, "skipping boundary document",
				"request_id", requestcontext.RequestID(ctx),
				"document_id", doc.ID,
				"error", err,
			)
			s.incrementSkipped()
			continue
		}
		for _, p := range polygons {
			ef := enrich.Feature(p, table)
			if ef.Properties[models.PropDominantGender] == nil {
				misses++
			}
			out.Features = append(out.Features, ef)
		}
	}

	span.SetAttributes(attribute.Int("peta.features", len(out.Features)))
	if s.metrics != nil {
		s.metrics.AddEnriched(len(out.Features), misses)
		s.metrics.ObserveBuild(start)
	}
	return out, nil
}

// fetch issues both reads concurrently under the run timeout. Aggregation must
// not start until both have returned.
func (s *Service) fetch(ctx context.Context) ([]models.BoundaryDocument, []dominance.Resident, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	var docs []models.BoundaryDocument
	var residents []dominance.Resident

	g.Go(func() error {
		var err error
		docs, err = s.boundaries.ListBoundaryDocuments(gctx)
		if err != nil {
			return s.sourceError(ctx, err, "failed to fetch boundary documents")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		residents, err = s.residents.ListResidents(gctx)
		if err != nil {
			return s.sourceError(ctx, err, "failed to fetch resident records")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return docs, residents, nil
}

func (s *Service) sourceError(ctx context.Context, err error, msg string) error {
	if errors.Is(err, context.Canceled) && ctx.Err() == nil {
		// The sibling read failed first; its error is the one reported.
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		s.logger.ErrorContext(ctx, "map source timed out",
			"request_id", requestcontext.RequestID(ctx),
			"timeout", s.timeout.String(),
			"error", err,
		)
		return dErrors.Wrap(err, dErrors.CodeTimeout, "map data source timed out")
	}
	s.logger.ErrorContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func (s *Service) incrementSkipped() {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementSkippedDocuments()
}
