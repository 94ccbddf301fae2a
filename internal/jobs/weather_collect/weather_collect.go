package weathercollect

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/benedict-erwin/weather-insight/internal/constants"
	weatherEntity "github.com/benedict-erwin/weather-insight/internal/entities/weather"
	weatherlogs "github.com/benedict-erwin/weather-insight/internal/jobs/weather_logs"
	pkgAsynq "github.com/benedict-erwin/weather-insight/pkg/asynq"
	"github.com/benedict-erwin/weather-insight/pkg/logger"
)

// TypeCollect polls the weather provider for the configured location
const TypeCollect = "weather:collect"

// Collector runs one collection cycle
type Collector interface {
	Collect(ctx context.Context) (*weatherEntity.CreateLogRequest, error)
}

// Dispatcher enqueues a task
type Dispatcher interface {
	Dispatch(ctx context.Context, payload *pkgAsynq.Payload) error
}

// NewHandler returns the job processor for TypeCollect
func NewHandler(c Collector) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		req, err := c.Collect(ctx)
		if err != nil {
			return err
		}

		logger.WithScope(TypeCollect).Info().
			Str("task_type", t.Type()).
			Str("city", req.City).
			Msg("Job completed successfully")
		return nil
	}
}

// QueueSink hands collected readings to the ingest job
type QueueSink struct {
	dispatcher Dispatcher
}

func NewQueueSink(d Dispatcher) *QueueSink {
	return &QueueSink{dispatcher: d}
}

func (s *QueueSink) Submit(ctx context.Context, req *weatherEntity.CreateLogRequest) error {
	return s.dispatcher.Dispatch(ctx, &pkgAsynq.Payload{
		TaskType: weatherlogs.TypeIngest,
		Queue:    constants.QueueCritical,
		Data:     req,
	})
}
