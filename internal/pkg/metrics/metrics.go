package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AuthorizationDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hospital",
			Name:      "authorization_decisions_total",
			Help:      "Authorization decisions by resource, action and outcome.",
		},
		[]string{"resource", "action", "outcome"},
	)

	AuditWriteFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hospital",
		Name:      "audit_write_failures_total",
		Help:      "Audit log entries that could not be written.",
	})

	NotificationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hospital",
		Name:      "notification_failures_total",
		Help:      "Notifications that could not be handed to the mailer.",
	})

	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "hospital",
		Name:      "http_in_flight_requests",
		Help:      "In-flight HTTP requests.",
	})

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hospital",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Register adds every collector of the service to the given registerer.
func Register(registerer prometheus.Registerer) {
	registerer.MustRegister(
		AuthorizationDecisions,
		AuditWriteFailures,
		NotificationFailures,
		httpInFlight,
		httpRequestDuration,
	)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// Instrument records latency per chi route pattern, so ids in the path do not
// explode the label cardinality.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		httpRequestDuration.WithLabelValues(r.Method, route, strconv.Itoa(sw.code)).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
