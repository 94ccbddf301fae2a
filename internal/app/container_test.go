package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	weatherEntity "github.com/benedict-erwin/weather-insight/internal/entities/weather"
	"github.com/benedict-erwin/weather-insight/internal/services/health"
)

func newContainer(t *testing.T) *Container {
	t.Helper()
	c, err := NewForTesting(context.Background(), filepath.Join(t.TempDir(), "weather.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNew_WithoutRedis(t *testing.T) {
	c := newContainer(t)

	assert.Nil(t, c.Redis)
	assert.Nil(t, c.Queue)
	assert.Nil(t, c.Influx)
	assert.NotNil(t, c.Users)
	assert.NotNil(t, c.Collector)

	ready := c.Health.Ready(context.Background())
	assert.Equal(t, health.StatusReady, ready.Status)
	assert.Contains(t, ready.Services, "sqlite")
	assert.NotContains(t, ready.Services, "redis")
}

func TestDirectSink_StoresLog(t *testing.T) {
	c := newContainer(t)
	ctx := context.Background()
	temp, hum, wind := 22.0, 60.0, 4.0

	err := c.DirectSink().Submit(ctx, &weatherEntity.CreateLogRequest{
		City:        "Sao Paulo",
		Temperature: &temp,
		Humidity:    &hum,
		WindSpeed:   &wind,
		Condition:   "Clear sky",
	})
	require.NoError(t, err)

	logs, err := c.Weather.GetAllLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Sao Paulo", logs[0].City)
}

func TestEnsureDefaultAdmin_SkipsWithoutPassword(t *testing.T) {
	c := newContainer(t)
	require.NoError(t, c.EnsureDefaultAdmin(context.Background()))

	all, err := c.Users.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
