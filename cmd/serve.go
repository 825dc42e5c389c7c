package main

import (
	"github.com/spf13/cobra"

	"github.com/adanyl0v/go-todo-widget/internal/app"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the widget over HTTP",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			app.InitDefaultLogger()
			app.MustReadConfig(configPath)
			app.MustInitApplicationLogger()

			app.MustConnectStorage()
			defer app.DisconnectStorage()

			app.MustListenAndServeHTTP()
		},
	}
}
