package cmd

import (
	"context"
	"net"
	"os"

	"github.com/spf13/cobra"

	"github.com/benedict-erwin/weather-insight/config"
	"github.com/benedict-erwin/weather-insight/internal/app"
	"github.com/benedict-erwin/weather-insight/pkg/logger"
	"github.com/benedict-erwin/weather-insight/pkg/utils"
)

// listener is handed over by overseer for zero-downtime restarts
var listener net.Listener

var rootCmd = &cobra.Command{
	Use:   "weather-insight",
	Short: "Weather Insight service",
	Long:  `Weather Insight collects weather readings for a monitored city and serves logs and insights over HTTP`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(); err != nil {
			return err
		}
		cfg := config.Get()

		logger.Init(logger.Options{
			Timezone:    cfg.App.Timezone,
			Environment: cfg.App.Env,
			Level:       cfg.App.LogLevel,
		})

		if err := utils.InitTimezone(cfg.App.Timezone); err != nil {
			logger.Warn().Err(err).Msg("Timezone initialization failed, continuing with UTC")
		}
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("Failed to execute command")
		os.Exit(1)
	}
}

// ExecuteWithListener runs the root command serving on l
func ExecuteWithListener(l net.Listener) {
	listener = l
	Execute()
}

// bootstrap builds the application container from the loaded configuration
func bootstrap(ctx context.Context) (*app.Container, error) {
	c, err := app.New(ctx, config.Get())
	if err != nil {
		return nil, err
	}
	utils.SetClock(c.Clock)
	return c, nil
}

// init registers commands
func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(devCmd)
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(collectCmd)
}
