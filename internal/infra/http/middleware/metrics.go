package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/xavierca1/ligue-funnel/internal/entity"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "funnel_leads_created_total",
			Help: "Total number of leads created",
		},
	)

	stageTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_stage_transitions_total",
			Help: "Total number of lead stage transitions",
		},
		[]string{"from", "to"},
	)

	mailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_mails_sent_total",
			Help: "Total number of e-mails sent",
		},
		[]string{"kind", "status"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern usa o padrão da rota do chi (/leads/{id}) para não explodir a
// cardinalidade com ids.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func RecordLeadCreated() {
	leadsCreated.Inc()
}

func RecordStageTransition(from, to string) {
	stageTransitions.WithLabelValues(from, to).Inc()
}

func RecordMail(kind, status string) {
	mailsSent.WithLabelValues(kind, status).Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}

// LeadEventMetrics conta criações e mudanças de etapa a partir dos eventos
// publicados pelo funil.
type LeadEventMetrics struct{}

func (LeadEventMetrics) PublishLeadEvent(_ context.Context, e entity.LeadEvent) error {
	switch e.Type {
	case entity.LeadCreated:
		RecordLeadCreated()
	case entity.LeadStageChanged:
		RecordStageTransition(string(e.FromStage), string(e.ToStage))
	}
	return nil
}
