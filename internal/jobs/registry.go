package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/benedict-erwin/weather-insight/internal/constants"
	wc "github.com/benedict-erwin/weather-insight/internal/jobs/weather_collect"
	wl "github.com/benedict-erwin/weather-insight/internal/jobs/weather_logs"
	pkgAsynq "github.com/benedict-erwin/weather-insight/pkg/asynq"
)

// JobRegistration holds job metadata for registration and worker generation
type JobRegistration struct {
	TaskType string                                   `json:"task_type"`
	Handler  func(context.Context, *asynq.Task) error `json:"-"` // Not serialized
	Queue    string                                   `json:"queue"`
}

// Dependencies are the services job handlers call into
type Dependencies struct {
	Store     wl.Store
	Collector wc.Collector
}

// RegisterHandlers registers all job handlers with the asynq server mux and returns job metadata
func RegisterHandlers(mux *asynq.ServeMux, deps Dependencies) ([]JobRegistration, error) {
	jobs := []JobRegistration{
		// Critical
		{
			TaskType: wl.TypeIngest,
			Handler:  wl.NewHandler(deps.Store),
			Queue:    constants.QueueCritical,
		},

		// Default
		{
			TaskType: wc.TypeCollect,
			Handler:  wc.NewHandler(deps.Collector),
			Queue:    constants.QueueDefault,
		},

		// Low
	}

	// Validate queue names
	for _, job := range jobs {
		if !constants.IsValidQueue(job.Queue) {
			return nil, fmt.Errorf("invalid queue '%s' for job '%s'. Valid queues: %v",
				job.Queue, job.TaskType, constants.GetAllQueues())
		}
	}

	if mux != nil {
		if deps.Store == nil || deps.Collector == nil {
			return nil, fmt.Errorf("job dependencies are incomplete")
		}
		for _, job := range jobs {
			mux.HandleFunc(job.TaskType, job.Handler)
		}
	}

	return jobs, nil
}

// GetRegisteredJobs returns job metadata without handlers (for worker generation)
func GetRegisteredJobs() ([]JobRegistration, error) {
	return RegisterHandlers(nil, Dependencies{})
}

// PeriodicTasks lists the tasks the scheduler enqueues
func PeriodicTasks(collectEvery time.Duration) []pkgAsynq.PeriodicTask {
	return []pkgAsynq.PeriodicTask{
		{TaskType: wc.TypeCollect, Queue: constants.QueueDefault, Every: collectEvery},
	}
}
