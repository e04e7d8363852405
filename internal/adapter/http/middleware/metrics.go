package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/surcofin/cajaflow/internal/infrastructure/metrics"
)

// MetricsMiddleware records request counts and latencies.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new MetricsMiddleware.
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Wrap wraps an http.Handler with metrics collection.
func (m *MetricsMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		path := normalizePath(r.URL.Path)

		m.metrics.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		m.metrics.HTTPDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// fixed sub-resources that must not be mistaken for ids
var fixedSegments = map[string]bool{
	"pending": true,
	"pair":    true,
}

// normalizePath collapses resource ids so label cardinality stays bounded.
// /api/v1/movements/01ABC -> /api/v1/movements/:id
func normalizePath(path string) string {
	prefixes := []string{
		"/api/v1/accounts/",
		"/api/v1/movements/",
		"/api/v1/counterparties/",
	}

	for _, prefix := range prefixes {
		if !strings.HasPrefix(path, prefix) || len(path) == len(prefix) {
			continue
		}

		rest := path[len(prefix):]
		first := rest
		suffix := ""
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			first = rest[:i]
			suffix = rest[i:]
		}

		if fixedSegments[first] {
			return path
		}

		return prefix + ":id" + suffix
	}

	return path
}
