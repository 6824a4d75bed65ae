package httptransport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ferrishop/commerce-core/internal/pkg/logging"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "commerce-core/http"

// Metrics holds the request-level instruments the middleware feeds.
type Metrics struct {
	Requests *prometheus.CounterVec   // labels: method, path, status
	Duration *prometheus.HistogramVec // labels: method, path
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP request handling in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
	reg.MustRegister(m.Requests, m.Duration)
	return m
}

// Instrument logs every request, records metrics and opens a span, binding a
// request-scoped logger onto the context for the handlers and services below.
func Instrument(logger *zap.Logger, metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx, span := otel.Tracer(tracerName).Start(r.Context(), r.Method+" "+r.URL.Path,
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.path", r.URL.Path),
				),
			)
			defer span.End()

			requestLogger := logger.With(
				zap.String("request_id", chimw.GetReqID(ctx)),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)
			ctx = logging.ContextWithLogger(ctx, requestLogger)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			elapsed := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			span.SetAttributes(attribute.Int("http.status_code", status))

			if metrics != nil {
				metrics.Requests.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(status)).Inc()
				metrics.Duration.WithLabelValues(r.Method, r.URL.Path).Observe(elapsed.Seconds())
			}

			requestLogger.Info("http_request_done",
				zap.Int("status", status),
				zap.Duration("elapsed", elapsed),
			)
		})
	}
}
