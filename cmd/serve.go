package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/benedict-erwin/weather-insight/config"
	"github.com/benedict-erwin/weather-insight/pkg/logger"
	"github.com/benedict-erwin/weather-insight/server"
)

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP Server",
		Long:  `Starts the Weather Insight HTTP Server`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}

	devCmd = &cobra.Command{
		Use:   "dev",
		Short: "Start HTTP Server without zero-downtime restarts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
)

func runServer(ctx context.Context) error {
	log := logger.WithScope("serveCmd")

	if ctx == nil {
		ctx = context.Background()
	}
	c, err := bootstrap(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize application")
		return err
	}
	defer c.Close()

	if err := c.EnsureDefaultAdmin(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to seed default admin")
		return err
	}

	if err := server.Start(c, config.Get().App.Port, listener); err != nil {
		log.Error().Err(err).Msg("Failed to start server")
		return err
	}
	return nil
}
