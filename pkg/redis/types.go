package redis

import (
	"context"
	"time"
)

// RedisMode defines the Redis deployment mode
type RedisMode string

const (
	ModeSingle  RedisMode = "single"  // Single-node Redis
	ModeCluster RedisMode = "cluster" // Redis Cluster
)

// DBCache is the logical database for single-node Redis. Asynq uses asynq.db from config.
const DBCache = 2

// PrefixCache namespaces keys on Redis Cluster (no DB selection there)
const PrefixCache = "cache:"

// Client defines the unified Redis client interface
type Client interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	SetJSON(ctx context.Context, key string, value any, expiration time.Duration) error
	GetJSON(ctx context.Context, key string, dest any) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Health(ctx context.Context) error
	Close() error
}

// Options describes one logical connection
type Options struct {
	Mode      RedisMode
	Addrs     []string // host:port for single, node list for cluster
	Password  string
	DB        int
	KeyPrefix string
	Pool      PoolConfig
}

// PoolConfig holds connection pool configuration
type PoolConfig struct {
	Size         int
	Timeout      time.Duration
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultPool returns the pool settings used by every client
func DefaultPool() PoolConfig {
	return PoolConfig{
		Size:         10,
		Timeout:      30 * time.Second,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}
