package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var collectQueue bool

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Poll the weather provider once",
	Long:  `Fetches current conditions for the configured location and stores them directly, or enqueues them with --queue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		collector := c.NewCollector(c.DirectSink())
		if collectQueue {
			if c.Queue == nil {
				return fmt.Errorf("--queue requires redis to be enabled")
			}
			collector = c.Collector
		}

		req, err := collector.Collect(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s: %.1f°C, %.0f%% humidity, wind %.1f km/h, %s\n",
			req.City, *req.Temperature, *req.Humidity, *req.WindSpeed, req.Condition)
		return nil
	},
}

func init() {
	collectCmd.Flags().BoolVar(&collectQueue, "queue", false, "enqueue the reading for the worker instead of storing it")
}
