package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "weather_insight"

// Metrics holds the Prometheus collectors for the API and the worker
type Metrics struct {
	HTTPRequests *prometheus.CounterVec   // labels: method, route, status
	HTTPDuration *prometheus.HistogramVec // labels: method, route

	WeatherLogsIngested *prometheus.CounterVec // labels: source={api,job,collector}
	CollectorFetches    *prometheus.CounterVec // labels: outcome={success,error}
	ConfigEvents        *prometheus.CounterVec // labels: outcome={published,failed,skipped}
	InsightsCache       *prometheus.CounterVec // labels: result={hit,miss}
}

func build() *Metrics {
	return &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route"}),
		WeatherLogsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_logs_ingested_total",
			Help:      "Weather logs stored, by source.",
		}, []string{"source"}),
		CollectorFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collector_fetches_total",
			Help:      "Open-Meteo fetches by outcome.",
		}, []string{"outcome"}),
		ConfigEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "config_events_total",
			Help:      "config_updated events by outcome.",
		}, []string{"outcome"}),
		InsightsCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "insights_cache_total",
			Help:      "Insights cache lookups by result.",
		}, []string{"result"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.HTTPRequests,
		m.HTTPDuration,
		m.WeatherLogsIngested,
		m.CollectorFetches,
		m.ConfigEvents,
		m.InsightsCache,
	}
}

// NewMetrics creates the collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := build()
	reg.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates unregistered collectors so tests can build as
// many instances as they like.
func NewMetricsForTesting() *Metrics {
	return build()
}
