package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_RegistersAll(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.HTTPRequests.WithLabelValues("GET", "/v1/weather/logs", "200").Inc()
	m.HTTPDuration.WithLabelValues("GET", "/v1/weather/logs").Observe(0.02)
	m.WeatherLogsIngested.WithLabelValues("api").Inc()
	m.CollectorFetches.WithLabelValues("success").Inc()
	m.ConfigEvents.WithLabelValues("published").Inc()
	m.InsightsCache.WithLabelValues("hit").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 6)
}

func TestNewMetrics_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	assert.Panics(t, func() { NewMetrics(reg) })
}

func TestNewMetricsForTesting_Independent(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()

	a.WeatherLogsIngested.WithLabelValues("job").Add(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(a.WeatherLogsIngested.WithLabelValues("job")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.WeatherLogsIngested.WithLabelValues("job")))
}
