package weatherlogs

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"

	weatherEntity "github.com/benedict-erwin/weather-insight/internal/entities/weather"
	weatherService "github.com/benedict-erwin/weather-insight/internal/services/weather"
	"github.com/benedict-erwin/weather-insight/pkg/apperror"
	"github.com/benedict-erwin/weather-insight/pkg/logger"
)

// TypeIngest stores one reading produced by a collector
const TypeIngest = "weather:ingest"

// Store persists a reading
type Store interface {
	CreateLog(ctx context.Context, req *weatherEntity.CreateLogRequest) (*weatherEntity.Log, error)
}

// NewHandler returns the job processor for TypeIngest
func NewHandler(store Store) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		log := logger.WithScope(TypeIngest)

		var req weatherEntity.CreateLogRequest
		if err := json.Unmarshal(t.Payload(), &req); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal payload")
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}

		l, err := store.CreateLog(weatherService.WithSource(ctx, weatherService.SourceJob), &req)
		if err != nil {
			// a malformed reading will never succeed
			if apperror.As(err).Kind == apperror.KindValidation {
				log.Warn().Err(err).Msg("Rejected invalid reading")
				return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
			}
			return err
		}

		log.Info().
			Str("task_id", taskID(t)).
			Str("task_type", t.Type()).
			Str("log_id", l.ID).
			Msg("Job completed successfully")
		return nil
	}
}

func taskID(t *asynq.Task) string {
	if w := t.ResultWriter(); w != nil {
		return w.TaskID()
	}
	return ""
}
