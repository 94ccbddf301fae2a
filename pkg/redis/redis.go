package redis

import (
	"context"
	"fmt"
	"sync"

	"github.com/benedict-erwin/weather-insight/config"
	"github.com/benedict-erwin/weather-insight/pkg/logger"
)

var (
	cacheClient Client
	mu          sync.RWMutex
)

// Init validates the configuration and connects the process-wide cache client
func Init(ctx context.Context, cfg config.RedisConfig) (Client, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid Redis configuration: %w", err)
	}

	client, err := NewClientForCache(ctx, cfg)
	if err != nil {
		return nil, err
	}

	mu.Lock()
	if cacheClient != nil {
		_ = cacheClient.Close()
	}
	cacheClient = client
	mu.Unlock()

	logger.Info().
		Str("mode", cfg.Mode).
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Msg("Redis client initialized successfully")

	return client, nil
}

// Close closes the process-wide client
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if cacheClient != nil {
		err := cacheClient.Close()
		cacheClient = nil
		return err
	}
	return nil
}

// ValidateConfig checks the fields required by the configured mode
func ValidateConfig(cfg config.RedisConfig) error {
	if cfg.Mode == "" {
		cfg.Mode = string(ModeSingle)
	}

	switch RedisMode(cfg.Mode) {
	case ModeSingle:
		if cfg.Host == "" {
			return fmt.Errorf("redis host not specified for single-node mode")
		}
		if cfg.Port <= 0 || cfg.Port > 65535 {
			return fmt.Errorf("invalid Redis port: %d", cfg.Port)
		}

	case ModeCluster:
		if len(cfg.Cluster.Nodes) == 0 {
			return fmt.Errorf("redis cluster nodes not specified")
		}
		for _, node := range cfg.Cluster.Nodes {
			if node == "" {
				return fmt.Errorf("empty Redis cluster node")
			}
		}

	default:
		return fmt.Errorf("unsupported Redis mode: %s", cfg.Mode)
	}

	return nil
}
