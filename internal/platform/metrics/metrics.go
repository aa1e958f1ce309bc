package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP and account Prometheus metrics for the application.
type Metrics struct {
	RequestLatency *prometheus.HistogramVec
	AdminsCreated  prometheus.Counter
	LoginAttempts  *prometheus.CounterVec
}

// New creates and registers the metrics. Call once per process.
func New() *Metrics {
	return &Metrics{
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sidokepung_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		AdminsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sidokepung_admins_created_total",
			Help: "Total number of admin accounts created",
		}),
		LoginAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sidokepung_login_attempts_total",
			Help: "Admin login attempts by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveRequest records one request's latency in seconds.
func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	m.RequestLatency.WithLabelValues(method, route, status).Observe(seconds)
}

// IncrementAdminsCreated increments the admins created counter by 1.
func (m *Metrics) IncrementAdminsCreated() {
	m.AdminsCreated.Inc()
}

// IncrementLogin records a login attempt with outcome "success" or "failure".
func (m *Metrics) IncrementLogin(outcome string) {
	m.LoginAttempts.WithLabelValues(outcome).Inc()
}
