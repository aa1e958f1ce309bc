// Package health serves the liveness report at /health.
package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Ibramnsh/backend-sidokepung/pkg/platform/httputil"
)

const checkTimeout = 2 * time.Second

// Checker pings one dependency. A nil error means healthy.
type Checker func(ctx context.Context) error

// Report is the /health response body.
type Report struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Dependencies map[string]string `json:"dependencies"`
}

// Handler reports the status of each registered dependency.
type Handler struct {
	checks  map[string]Checker
	now     func() time.Time
	timeout time.Duration
}

func New() *Handler {
	return &Handler{checks: make(map[string]Checker), now: time.Now, timeout: checkTimeout}
}

// Add registers a check. Dependencies that are not configured are reported
// through AddDisabled instead.
func (h *Handler) Add(name string, check Checker) *Handler {
	h.checks[name] = check
	return h
}

// AddDisabled marks a dependency as not configured.
func (h *Handler) AddDisabled(name string) *Handler {
	h.checks[name] = nil
	return h
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.handleHealth)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	report := Report{
		Status:       "ok",
		Timestamp:    h.now().UTC(),
		Dependencies: make(map[string]string, len(names)),
	}
	for _, name := range names {
		check := h.checks[name]
		switch {
		case check == nil:
			report.Dependencies[name] = "disabled"
		case h.run(r.Context(), check) != nil:
			report.Dependencies[name] = "down"
			report.Status = "degraded"
		default:
			report.Dependencies[name] = "up"
		}
	}

	status := http.StatusOK
	if report.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, status, report)
}

// run bounds one check by its own deadline, independent of the checks
// before it.
func (h *Handler) run(ctx context.Context, check Checker) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return check(ctx)
}
