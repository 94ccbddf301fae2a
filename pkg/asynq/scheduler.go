package asynq

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/benedict-erwin/weather-insight/pkg/logger"
)

// PeriodicTask is a task the scheduler enqueues on a fixed interval
type PeriodicTask struct {
	TaskType string
	Queue    string
	Every    time.Duration
}

// Spec returns the cron spec for the interval
func (p PeriodicTask) Spec() string {
	return "@every " + p.Every.String()
}

// NewScheduler creates a scheduler and registers tasks on it
func NewScheduler(opt asynq.RedisConnOpt, loc *time.Location, tasks ...PeriodicTask) (*asynq.Scheduler, error) {
	log := logger.WithScope("asynq.Scheduler")

	for _, t := range tasks {
		if t.Every <= 0 {
			return nil, fmt.Errorf("interval for %s must be positive", t.TaskType)
		}
	}

	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{
		Location: loc,
		Logger:   NewLogger("asynq.scheduler"),
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				log.Error().Err(err).Msg("Failed to enqueue periodic task")
				return
			}
			log.Debug().Str("taskId", info.ID).Str("taskType", info.Type).Msg("Periodic task enqueued")
		},
	})

	for _, t := range tasks {
		var opts []asynq.Option
		if t.Queue != "" {
			opts = append(opts, asynq.Queue(t.Queue))
		}
		entryID, err := scheduler.Register(t.Spec(), asynq.NewTask(t.TaskType, nil), opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", t.TaskType, err)
		}
		log.Info().Str("entry", entryID).Str("taskType", t.TaskType).Str("spec", t.Spec()).Msg("Periodic task registered")
	}

	return scheduler, nil
}
