package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// ErrNil is returned by Get and GetJSON when the key does not exist
var ErrNil = redis.Nil

// RedisClient implements Client on top of go-redis' UniversalClient, which
// covers both single-node and cluster deployments.
type RedisClient struct {
	rdb       redis.UniversalClient
	keyPrefix string
}

// NewRedisClient connects and pings
func NewRedisClient(ctx context.Context, opts Options) (*RedisClient, error) {
	if len(opts.Addrs) == 0 {
		return nil, fmt.Errorf("no Redis address configured")
	}

	uopts := &redis.UniversalOptions{
		Addrs:        opts.Addrs,
		Password:     opts.Password,
		PoolSize:     opts.Pool.Size,
		PoolTimeout:  opts.Pool.Timeout,
		DialTimeout:  opts.Pool.DialTimeout,
		ReadTimeout:  opts.Pool.ReadTimeout,
		WriteTimeout: opts.Pool.WriteTimeout,
	}

	var rdb redis.UniversalClient
	switch opts.Mode {
	case ModeSingle, "":
		uopts.DB = opts.DB
		rdb = redis.NewClient(uopts.Simple())
	case ModeCluster:
		rdb = redis.NewClusterClient(uopts.Cluster())
	default:
		return nil, fmt.Errorf("unsupported Redis mode: %s", opts.Mode)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisClient{rdb: rdb, keyPrefix: opts.KeyPrefix}, nil
}

func (r *RedisClient) buildKey(key string) string {
	return r.keyPrefix + key
}

// Set sets a key-value pair with expiration
func (r *RedisClient) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return r.rdb.Set(ctx, r.buildKey(key), value, expiration).Err()
}

// Get retrieves a value by key
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	return r.rdb.Get(ctx, r.buildKey(key)).Result()
}

// SetJSON stores JSON-serialized data with expiration
func (r *RedisClient) SetJSON(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return r.Set(ctx, key, data, expiration)
}

// GetJSON retrieves and deserializes JSON data
func (r *RedisClient) GetJSON(ctx context.Context, key string, dest any) error {
	data, err := r.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return nil
}

// Delete removes one or more keys. In cluster mode keys are deleted one by
// one since they may live in different slots.
func (r *RedisClient) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if _, ok := r.rdb.(*redis.ClusterClient); ok {
		var errs []error
		for _, key := range keys {
			if err := r.rdb.Del(ctx, r.buildKey(key)).Err(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	finalKeys := make([]string, len(keys))
	for i, key := range keys {
		finalKeys[i] = r.buildKey(key)
	}
	return r.rdb.Del(ctx, finalKeys...).Err()
}

// Exists checks if a key exists
func (r *RedisClient) Exists(ctx context.Context, key string) (bool, error) {
	count, err := r.rdb.Exists(ctx, r.buildKey(key)).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Health pings the server
func (r *RedisClient) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	if r.rdb == nil {
		return nil
	}
	return r.rdb.Close()
}
