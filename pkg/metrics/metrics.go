package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	// HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// APIs externas (meta, shopify)
	ExternalAPICalls    *prometheus.CounterVec
	ExternalAPIDuration *prometheus.HistogramVec
	ExternalAPIFailures *prometheus.CounterVec

	// Relatórios
	InsightRecordsReturned *prometheus.CounterVec
	ThumbnailFailures      prometheus.Counter
	TokenRefreshes         *prometheus.CounterVec
}

// New cria as métricas num registry próprio (evita registro duplicado em testes)
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		ExternalAPICalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "external_api_calls_total",
				Help: "Total number of external API calls",
			},
			[]string{"api", "operation", "status"},
		),

		ExternalAPIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "external_api_duration_seconds",
				Help:    "External API call duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"api", "operation"},
		),

		ExternalAPIFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "external_api_failures_total",
				Help: "Total number of external API failures",
			},
			[]string{"api", "operation", "reason"},
		),

		InsightRecordsReturned: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insight_records_returned_total",
				Help: "Insight records returned to clients by entity level",
			},
			[]string{"level"},
		),

		ThumbnailFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "insight_thumbnail_failures_total",
				Help: "Creative thumbnail lookups that failed",
			},
		),

		TokenRefreshes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "facebook_token_refreshes_total",
				Help: "Long-lived Facebook token refresh attempts",
			},
			[]string{"status"},
		),
	}
}

// Handler expõe o registry no formato do prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) RecordExternalAPICall(api, operation, status string, duration time.Duration) {
	m.ExternalAPICalls.WithLabelValues(api, operation, status).Inc()
	m.ExternalAPIDuration.WithLabelValues(api, operation).Observe(duration.Seconds())
}

func (m *Metrics) RecordExternalAPIFailure(api, operation, reason string) {
	m.ExternalAPIFailures.WithLabelValues(api, operation, reason).Inc()
}
