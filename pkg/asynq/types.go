package asynq

import (
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/benedict-erwin/weather-insight/config"
)

// Payload describes one task to enqueue
type Payload struct {
	TaskId   string // Asynq TaskID metadata, optional
	TaskType string // Asynq TaskType metadata
	Queue    string // defaults to constants.QueueDefault
	Data     any    // The Task Payload (JSON)
}

// RedisOpt returns the asynq connection for the configured Redis deployment
func RedisOpt(cfg *config.Config) asynq.RedisConnOpt {
	if cfg.Redis.Mode == "cluster" {
		return asynq.RedisClusterClientOpt{
			Addrs:    cfg.Redis.Cluster.Nodes,
			Password: cfg.Redis.Cluster.Password,
		}
	}
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Asynq.DB,
		PoolSize: cfg.Asynq.PoolSize,
	}
}
