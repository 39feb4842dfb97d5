package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "protostack",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "protostack",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "protostack",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Prototype registry metrics
	prototypesRegisteredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "protostack",
			Subsystem: "prototype",
			Name:      "registered_total",
			Help:      "Total number of prototypes registered",
		},
		[]string{"category"},
	)

	clonesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "protostack",
			Subsystem: "prototype",
			Name:      "clones_total",
			Help:      "Total number of successful clone operations",
		},
		[]string{"provider", "kind"},
	)

	cloneFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "protostack",
			Subsystem: "prototype",
			Name:      "clone_failures_total",
			Help:      "Total number of failed clone operations",
		},
		[]string{"reason"},
	)

	// Resource store metrics
	resourcesTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "protostack",
			Subsystem: "resource",
			Name:      "total_count",
			Help:      "Total number of stored resources",
		},
		[]string{"provider", "kind"},
	)
)

// RecordPrototypeRegistered records a prototype registration
func RecordPrototypeRegistered(category string) {
	prototypesRegisteredTotal.WithLabelValues(category).Inc()
}

// RecordClone records a successful clone operation
func RecordClone(provider, kind string) {
	clonesTotal.WithLabelValues(provider, kind).Inc()
}

// RecordCloneFailure records a failed clone operation
func RecordCloneFailure(reason string) {
	cloneFailuresTotal.WithLabelValues(reason).Inc()
}

// SetResourceCount sets the stored resource gauge for a provider/kind pair
func SetResourceCount(provider, kind string, count float64) {
	resourcesTotal.WithLabelValues(provider, kind).Set(count)
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		// Get route pattern from chi
		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = "unknown"
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
