// Package metrics exposes Prometheus counters for HTTP traffic and for the
// submission and migration paths.
package metrics

import (
	"bufio"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
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

	commitmentsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "commitments_submitted_total",
			Help: "Total number of daily commitments submitted",
		},
	)

	reportsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reports_submitted_total",
			Help: "Total number of daily reports submitted",
		},
	)

	duplicateSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duplicate_submissions_total",
			Help: "Total number of rejected same-day resubmissions",
		},
		[]string{"kind"},
	)

	migrationStageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "migration_stage_errors_total",
			Help: "Total number of aborted migration stages",
		},
		[]string{"stage"},
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

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Hijack is required by the websocket upgrade of the migration stream.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	rw.statusCode = http.StatusSwitchingProtocols
	return http.NewResponseController(rw.ResponseWriter).Hijack()
}

// Middleware records request counts and latency. Paths are labelled with the
// matched ServeMux pattern so ids do not explode label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func RecordCommitmentSubmitted() {
	commitmentsSubmitted.Inc()
}

func RecordReportSubmitted() {
	reportsSubmitted.Inc()
}

func RecordDuplicateSubmission(kind string) {
	duplicateSubmissions.WithLabelValues(kind).Inc()
}

func RecordMigrationStageError(stage string) {
	migrationStageErrors.WithLabelValues(stage).Inc()
}
