package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Ibramnsh/backend-sidokepung/internal/peta/models"
	"github.com/Ibramnsh/backend-sidokepung/internal/platform/metrics"
	"github.com/Ibramnsh/backend-sidokepung/internal/platform/middleware"
	"github.com/Ibramnsh/backend-sidokepung/pkg/platform/httputil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service builds the enriched map.
type Service interface {
	BuildMap(ctx context.Context) (*models.FeatureCollection, error)
}

// Handler serves /api/peta.
type Handler struct {
	logger  *slog.Logger
	peta    Service
	metrics *metrics.Metrics
}

func New(peta Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		logger:  logger,
		peta:    peta,
		metrics: metrics,
	}
}

// Register registers the map route with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.LatencyMiddleware(h.metrics))
		r.Get("/api/peta", h.handleGetMap)
	})
}

func (h *Handler) handleGetMap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fc, err := h.peta.BuildMap(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build map",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fc)
}
