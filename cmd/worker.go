package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/benedict-erwin/weather-insight/config"
	"github.com/benedict-erwin/weather-insight/internal/constants"
	"github.com/benedict-erwin/weather-insight/internal/jobs"
	asynqPkg "github.com/benedict-erwin/weather-insight/pkg/asynq"
	"github.com/benedict-erwin/weather-insight/pkg/logger"
	"github.com/benedict-erwin/weather-insight/pkg/utils"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Manage background job workers",
	Long:  `Manage Asynq background job workers and the collection scheduler`,
}

// Subcommands
var (
	workerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start background job worker",
		Long:  `Start Asynq worker to process background jobs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return startWorker(cmd)
		},
	}

	workerScheduleCmd = &cobra.Command{
		Use:   "schedule",
		Short: "Start the periodic collection scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startScheduler()
		},
	}

	workerJobsCmd = &cobra.Command{
		Use:   "jobs",
		Short: "List registered job types",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listJobs()
		},
	}

	workerStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show current queue status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showStatus(cmd)
		},
	}
)

// startWorker runs the Asynq worker server until SIGINT/SIGTERM
func startWorker(cmd *cobra.Command) error {
	log := logger.WithScope("startWorker")

	c, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer c.Close()

	if c.Queue == nil {
		return fmt.Errorf("worker requires redis to be enabled")
	}

	cfg := config.Get()
	server := asynqPkg.NewServer(asynqPkg.RedisOpt(cfg), cfg.Asynq.Concurrency)
	mux := asynq.NewServeMux()

	registered, err := jobs.RegisterHandlers(mux, jobs.Dependencies{
		Store:     c.Weather,
		Collector: c.Collector,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to register job handlers")
		return err
	}

	log.Info().Int("jobs", len(registered)).Int("concurrency", cfg.Asynq.Concurrency).Msg("Starting Asynq worker server...")
	if err := server.Start(mux); err != nil {
		log.Error().Err(err).Msg("Failed to start worker server")
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal, waiting for running tasks to complete (max 30s)...")

	server.Shutdown()
	log.Info().Msg("Worker server stopped gracefully")
	return nil
}

// startScheduler enqueues weather:collect on the configured interval
func startScheduler() error {
	log := logger.WithScope("startScheduler")
	cfg := config.Get()

	if !cfg.Redis.Enabled {
		return fmt.Errorf("scheduler requires redis to be enabled")
	}

	scheduler, err := asynqPkg.NewScheduler(
		asynqPkg.RedisOpt(cfg),
		utils.Location(),
		jobs.PeriodicTasks(cfg.Monitoring.CollectInterval)...,
	)
	if err != nil {
		return err
	}

	log.Info().Dur("interval", cfg.Monitoring.CollectInterval).Msg("Starting scheduler")
	// Run blocks until SIGINT/SIGTERM
	return scheduler.Run()
}

// listJobs prints the registered job types and their queues
func listJobs() error {
	registered, err := jobs.GetRegisteredJobs()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Task Type", "Queue", "Weight"})
	for _, j := range registered {
		if err := table.Append([]string{j.TaskType, j.Queue, strconv.Itoa(constants.QueueWeights[j.Queue])}); err != nil {
			return err
		}
	}
	return table.Render()
}

// showStatus prints per-queue task counts
func showStatus(cmd *cobra.Command) error {
	c, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer c.Close()

	if c.Queue == nil {
		return fmt.Errorf("queue status requires redis to be enabled")
	}

	stats, err := c.Queue.QueueStats()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Queue", "Size", "Pending", "Active", "Scheduled", "Retry", "Archived", "Processed", "Failed", "Paused"})
	for _, q := range stats {
		row := []string{
			q.Queue,
			strconv.Itoa(q.Size),
			strconv.Itoa(q.Pending),
			strconv.Itoa(q.Active),
			strconv.Itoa(q.Scheduled),
			strconv.Itoa(q.Retry),
			strconv.Itoa(q.Archived),
			strconv.Itoa(q.Processed),
			strconv.Itoa(q.Failed),
			strconv.FormatBool(q.Paused),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}

	fmt.Printf("Concurrency: %d workers\n\n", config.Get().Asynq.Concurrency)
	return table.Render()
}

// init registers all worker subcommands
func init() {
	workerCmd.AddCommand(workerStartCmd)
	workerCmd.AddCommand(workerScheduleCmd)
	workerCmd.AddCommand(workerJobsCmd)
	workerCmd.AddCommand(workerStatusCmd)
}
