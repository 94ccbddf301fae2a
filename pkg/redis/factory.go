package redis

import (
	"context"
	"fmt"

	"github.com/benedict-erwin/weather-insight/config"
	"github.com/benedict-erwin/weather-insight/pkg/logger"
)

// optionsFor builds connection options for one logical database. Cluster mode
// ignores db and relies on the prefix instead.
func optionsFor(cfg config.RedisConfig, db int, prefix string) (Options, error) {
	mode := RedisMode(cfg.Mode)
	if mode == "" {
		mode = ModeSingle
	}

	opts := Options{Mode: mode, Pool: DefaultPool()}
	switch mode {
	case ModeSingle:
		opts.Addrs = []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)}
		opts.Password = cfg.Password
		opts.DB = db
	case ModeCluster:
		opts.Addrs = cfg.Cluster.Nodes
		opts.Password = cfg.Cluster.Password
		opts.KeyPrefix = prefix
	default:
		return Options{}, fmt.Errorf("unsupported Redis mode: %s", cfg.Mode)
	}
	return opts, nil
}

// NewClientForCache returns Redis client for the application cache
func NewClientForCache(ctx context.Context, cfg config.RedisConfig) (Client, error) {
	return newNamedClient(ctx, cfg, "cache", DBCache, PrefixCache)
}

func newNamedClient(ctx context.Context, cfg config.RedisConfig, name string, db int, prefix string) (Client, error) {
	opts, err := optionsFor(cfg, db, prefix)
	if err != nil {
		return nil, err
	}

	client, err := NewRedisClient(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s Redis client: %w", name, err)
	}

	logger.Debug().
		Str("mode", string(opts.Mode)).
		Str("prefix", opts.KeyPrefix).
		Int("db", opts.DB).
		Msgf("%s Redis client initialized", name)

	return client, nil
}
