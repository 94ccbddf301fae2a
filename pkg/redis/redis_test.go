package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benedict-erwin/weather-insight/config"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.RedisConfig
		wantErr bool
	}{
		{name: "single ok", cfg: config.RedisConfig{Host: "localhost", Port: 6379}},
		{name: "single missing host", cfg: config.RedisConfig{Port: 6379}, wantErr: true},
		{name: "single bad port", cfg: config.RedisConfig{Host: "localhost", Port: 70000}, wantErr: true},
		{name: "unknown mode", cfg: config.RedisConfig{Mode: "sentinel", Host: "h", Port: 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateConfig_Cluster(t *testing.T) {
	cfg := config.RedisConfig{Mode: "cluster"}
	assert.Error(t, ValidateConfig(cfg))

	cfg.Cluster.Nodes = []string{"a:7000", ""}
	assert.Error(t, ValidateConfig(cfg))

	cfg.Cluster.Nodes = []string{"a:7000", "b:7001"}
	assert.NoError(t, ValidateConfig(cfg))
}

func TestOptionsFor(t *testing.T) {
	single, err := optionsFor(config.RedisConfig{Host: "redis", Port: 6380, Password: "pw"}, DBCache, PrefixCache)
	require.NoError(t, err)
	assert.Equal(t, ModeSingle, single.Mode)
	assert.Equal(t, []string{"redis:6380"}, single.Addrs)
	assert.Equal(t, DBCache, single.DB)
	assert.Empty(t, single.KeyPrefix)

	cfg := config.RedisConfig{Mode: "cluster"}
	cfg.Cluster.Nodes = []string{"n1:7000"}
	cluster, err := optionsFor(cfg, DBCache, PrefixCache)
	require.NoError(t, err)
	assert.Equal(t, PrefixCache, cluster.KeyPrefix)
	assert.Zero(t, cluster.DB)
}

func TestNewRedisClient_NoAddress(t *testing.T) {
	_, err := NewRedisClient(context.Background(), Options{})
	assert.Error(t, err)
}
