package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/go-todo-widget/internal/app"
	"github.com/adanyl0v/go-todo-widget/internal/config"
	"github.com/adanyl0v/go-todo-widget/internal/export"
	"github.com/adanyl0v/go-todo-widget/internal/records"
	"github.com/adanyl0v/go-todo-widget/internal/storage"
)

func exportCmd() *cobra.Command {
	var (
		sessionID string
		format    string
		out       string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the task list of a session",
		Long: `Export the task list stored for a browser session.

Examples:
  todo export --session 3f1c... --format yaml
  todo export --session 3f1c... --format pdf --out tasks.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.InitDefaultLogger()
			app.MustReadConfig(configPath)
			app.MustInitApplicationLogger()

			app.MustConnectStorage()
			defer app.DisconnectStorage()

			logger := app.Logger()
			store := records.New(
				logger,
				storage.Namespace(app.Storage(), sessionID),
				config.Global().Storage.Key,
			)

			data, err := export.NewExporter(store, "Tasks").Export(cmd.Context(), format)
			if err != nil {
				return err
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err = os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			logger.Info().
				Str("session_id", sessionID).
				Str("format", format).
				Str("path", out).
				Msg("exported tasks")
			return nil
		},
	}

	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "session id")
	cmd.Flags().StringVarP(&format, "format", "f", export.FormatJSON, "json, yaml or pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}
