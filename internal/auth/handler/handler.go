package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Ibramnsh/backend-sidokepung/internal/auth/models"
	"github.com/Ibramnsh/backend-sidokepung/internal/platform/metrics"
	"github.com/Ibramnsh/backend-sidokepung/internal/platform/middleware"
	dErrors "github.com/Ibramnsh/backend-sidokepung/pkg/domain-errors"
	"github.com/Ibramnsh/backend-sidokepung/pkg/platform/httputil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the admin authentication operations used by the handler.
type Service interface {
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error)
	CreateAdmin(ctx context.Context, creds models.Credentials) (*models.User, error)
	Verify(ctx context.Context, token string) (*models.Verification, error)
	Logout(ctx context.Context, token string) error
}

// Handler serves /api/auth.
type Handler struct {
	logger       *slog.Logger
	auth         Service
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
	revocations  middleware.TokenRevocationChecker
	limiter      func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithLimiter throttles login and create-admin.
func WithLimiter(limiter func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.limiter = limiter
	}
}

// New creates a new auth Handler. revocations may be nil.
func New(
	auth Service,
	logger *slog.Logger,
	metrics *metrics.Metrics,
	jwtValidator middleware.JWTValidator,
	revocations middleware.TokenRevocationChecker,
	opts ...Option) *Handler {
	h := &Handler{
		logger:       logger,
		auth:         auth,
		metrics:      metrics,
		jwtValidator: jwtValidator,
		revocations:  revocations,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the auth routes.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.LatencyMiddleware(h.metrics))
		r.Get("/api/auth/verify", h.handleVerify)

		r.Group(func(r chi.Router) {
			if h.limiter != nil {
				r.Use(h.limiter)
			}
			r.Post("/api/auth/login", h.handleLogin)
			r.Post("/api/auth/create-admin", h.handleCreateAdmin)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(h.jwtValidator, h.revocations, h.logger))
			r.Post("/api/auth/logout", h.handleLogout)
		})
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var creds models.Credentials
	if err := httputil.DecodeJSON(r, &creds); err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := h.auth.Login(ctx, creds)
	if err != nil {
		h.writeServiceError(ctx, w, err, "login failed")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.LoginResponse{
		Success: true,
		Message: "Login successful!",
		Token:   res.Token,
		User:    res.User.View(),
	})
}

func (h *Handler) handleCreateAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var creds models.Credentials
	if err := httputil.DecodeJSON(r, &creds); err != nil {
		httputil.WriteError(w, err)
		return
	}

	user, err := h.auth.CreateAdmin(ctx, creds)
	if err != nil {
		h.writeServiceError(ctx, w, err, "create admin failed")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, models.CreateAdminResponse{
		Success: true,
		Message: "Admin account created successfully!",
		User:    user.View(),
	})
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token, ok := middleware.BearerToken(r)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid Authorization header format. Use 'Bearer <token>'"))
		return
	}

	v, err := h.auth.Verify(ctx, token)
	if err != nil {
		h.writeServiceError(ctx, w, err, "token verification failed")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.VerifyResponse{
		Success: true,
		Message: "Token is valid",
		User:    v.User.View(),
		TokenInfo: models.TokenInfo{
			IssuedAt:  v.IssuedAt,
			ExpiresAt: v.ExpiresAt,
		},
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token, _ := middleware.BearerToken(r)
	if err := h.auth.Logout(ctx, token); err != nil {
		h.writeServiceError(ctx, w, err, "logout failed")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.LogoutResponse{
		Success: true,
		Message: "Logged out successfully.",
	})
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
