package webserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatsConfig configures the Prometheus request statistics service.
type StatsConfig struct {
	// Registerer receives the collectors. Nil uses a fresh registry,
	// readable through Stats.Handler.
	Registerer prometheus.Registerer

	// Namespace prefixes every metric name. Default: "webserver".
	Namespace string

	// DurationBuckets for the request duration histogram, in seconds.
	DurationBuckets []float64

	// SkipPaths are paths that should not be recorded.
	SkipPaths []string
}

// Stats records request count, duration, response size, and in-flight
// requests for every dispatched request.
type Stats struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	responseBytes   *prometheus.CounterVec
	inFlight        prometheus.Gauge

	skipPaths map[string]bool
}

// NewStats creates the collectors and registers them. Registration
// conflicts surface as errors.
func NewStats(cfg StatsConfig) (*Stats, error) {
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "webserver"
	}
	buckets := cfg.DurationBuckets
	if len(buckets) == 0 {
		buckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	}

	s := &Stats{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of dispatched requests.",
		}, []string{"method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Request duration in seconds.",
			Buckets:   buckets,
		}, []string{"method", "status"}),
		responseBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "response_bytes_total",
			Help:      "Total bytes written to responses.",
		}, []string{"method"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "in_flight_requests",
			Help:      "Number of requests currently being served.",
		}),
		skipPaths: make(map[string]bool),
	}
	for _, path := range cfg.SkipPaths {
		s.skipPaths[path] = true
	}

	registerer := cfg.Registerer
	if registerer == nil {
		s.registry = prometheus.NewRegistry()
		registerer = s.registry
	}
	for _, collector := range []prometheus.Collector{
		s.requestsTotal, s.requestDuration, s.responseBytes, s.inFlight,
	} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Middleware returns the recording middleware.
func (s *Stats) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s.skipPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			s.inFlight.Inc()
			defer s.inFlight.Dec()

			wrapped := wrapResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			status := strconv.Itoa(wrapped.Status())
			s.requestsTotal.WithLabelValues(r.Method, status).Inc()
			s.requestDuration.WithLabelValues(r.Method, status).Observe(time.Since(start).Seconds())
			s.responseBytes.WithLabelValues(r.Method).Add(float64(wrapped.BytesWritten()))
		})
	}
}

// Handler serves the recorded metrics in Prometheus text format. When a
// custom Registerer was configured, the caller is expected to expose its
// own registry instead and Handler falls back to the default registry's
// handler.
func (s *Stats) Handler() http.Handler {
	if s.registry != nil {
		return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
	}
	return promhttp.Handler()
}
