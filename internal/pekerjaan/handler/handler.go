package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Ibramnsh/backend-sidokepung/internal/pekerjaan/models"
	"github.com/Ibramnsh/backend-sidokepung/internal/platform/metrics"
	"github.com/Ibramnsh/backend-sidokepung/internal/platform/middleware"
	dErrors "github.com/Ibramnsh/backend-sidokepung/pkg/domain-errors"
	"github.com/Ibramnsh/backend-sidokepung/pkg/platform/httputil"
	"github.com/Ibramnsh/backend-sidokepung/pkg/platform/numparse"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the resident record operations used by the handler.
type Service interface {
	List(ctx context.Context, filter models.Filter) ([]*models.Record, error)
	Create(ctx context.Context, req models.WriteRequest) (string, error)
	Update(ctx context.Context, id string, req models.WriteRequest) error
	Delete(ctx context.Context, id string) error
}

// Handler serves /api/pekerjaan.
type Handler struct {
	logger       *slog.Logger
	records      Service
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
	revocations  middleware.TokenRevocationChecker
}

// New creates a new pekerjaan Handler. revocations may be nil.
func New(
	records Service,
	logger *slog.Logger,
	metrics *metrics.Metrics,
	jwtValidator middleware.JWTValidator,
	revocations middleware.TokenRevocationChecker) *Handler {
	return &Handler{
		logger:       logger,
		records:      records,
		metrics:      metrics,
		jwtValidator: jwtValidator,
		revocations:  revocations,
	}
}

// Register registers the pekerjaan routes. Reads are public; writes need an
// admin token.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.LatencyMiddleware(h.metrics))
		r.Get("/api/pekerjaan", h.handleList)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(h.jwtValidator, h.revocations, h.logger))
			r.Post("/api/pekerjaan", h.handleCreate)
			r.Put("/api/pekerjaan/{id}", h.handleUpdate)
			r.Delete("/api/pekerjaan/{id}", h.handleDelete)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter, err := parseFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	records, err := h.records.List(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list resident records",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	resp := make([]models.RecordResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, models.ToResponse(rec))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.WriteRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid create record request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	id, err := h.records.Create(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to create resident record")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, models.CreateResponse{
		Message:    "Data added successfully",
		InsertedID: id,
	})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.WriteRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.records.Update(ctx, chi.URLParam(r, "id"), req); err != nil {
		h.writeServiceError(ctx, w, err, "failed to update resident record")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.MessageResponse{Message: "Data updated successfully."})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.records.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(ctx, w, err, "failed to delete resident record")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.MessageResponse{Message: "Data deleted successfully."})
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
	} else {
		h.logger.WarnContext(ctx, msg,
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}

// parseFilter reads ?rt=&rw=. The filter applies only when both are given.
func parseFilter(r *http.Request) (models.Filter, error) {
	q := r.URL.Query()
	rtRaw, rwRaw := strings.TrimSpace(q.Get("rt")), strings.TrimSpace(q.Get("rw"))
	if rtRaw == "" || rwRaw == "" {
		return models.Filter{}, nil
	}
	rt, ok1 := numparse.LeadingInt(rtRaw)
	rw, ok2 := numparse.LeadingInt(rwRaw)
	if !ok1 || !ok2 {
		return models.Filter{}, dErrors.New(dErrors.CodeBadRequest, "rt and rw must be integers")
	}
	return models.Filter{RT: &rt, RW: &rw}, nil
}
