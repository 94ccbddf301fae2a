package main

import (
	"os"

	"github.com/jpillora/overseer"

	"github.com/benedict-erwin/weather-insight/cmd"

	_ "github.com/benedict-erwin/weather-insight/http/v1/route"
)

// main starts the application; serve and worker start run under overseer for zero-downtime deployment
func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "serve":
			// HTTP server with overseer (:8080); the listener is handed to echo
			overseer.Run(overseer.Config{
				Program: func(state overseer.State) {
					cmd.ExecuteWithListener(state.Listener)
				},
				Address:          ":8080",
				RestartSignal:    overseer.SIGUSR2,
				TerminateTimeout: 30,
			})
			return
		case "worker":
			if len(os.Args) >= 3 && os.Args[2] == "start" {
				// Worker with overseer, no listener needed
				overseer.Run(overseer.Config{
					Program: func(state overseer.State) {
						cmd.Execute()
					},
					RestartSignal:    overseer.SIGUSR2,
					TerminateTimeout: 30,
				})
				return
			}
		}
	}

	// dev and CLI commands run without overseer
	cmd.Execute()
}
