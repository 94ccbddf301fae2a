package asynq

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"github.com/benedict-erwin/weather-insight/internal/constants"
	"github.com/benedict-erwin/weather-insight/pkg/logger"
)

// NewServer creates the worker server processing every queue by weight
func NewServer(opt asynq.RedisConnOpt, concurrency int) *asynq.Server {
	log := logger.WithScope("asynq.Server")

	if concurrency <= 0 {
		concurrency = 10
	}

	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency:     concurrency,
		Queues:          constants.QueueWeights,
		ShutdownTimeout: 30 * time.Second,
		Logger:          NewLogger("asynq"),
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			log.Error().
				Err(err).
				Str("task_type", task.Type()).
				Int("retry", retried).
				Int("max_retry", maxRetry).
				Msg("Task processing failed")
		}),
	})

	log.Info().
		Int("concurrency", concurrency).
		Interface("queues", constants.QueueWeights).
		Msg("Asynq server initialized")
	return srv
}
