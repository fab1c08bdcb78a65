package cmd

import (
	"context"
	"fmt"

	"botpanel/internal/app"

	"github.com/spf13/cobra"
)

func newPanelCmd() *cobra.Command {
	var (
		noTUI     bool
		debug     bool
		transport string
	)

	cmd := &cobra.Command{
		Use:   "panel",
		Short: "Open the bot control panel",
		Long: `Opens a session to the bot backend and shows the bot's state.

1. Interactive TUI Mode (default):
   - t / enter toggles the bot, 1 and 2 switch to test or deployment mode.
   - L shows the activity log, h lists every key.

2. Non-TUI / CLI Mode (using --no-tui flag):
   - Prints one status line whenever the panel changes.
   - Reads commands from stdin: toggle (t), test (1), deployment (2), quit (q).

The session reconnects with exponential backoff when it drops and gives up
after the configured number of attempts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.NewConfig(noTUI, debug)
			cfg.ConfigPath = configPath
			cfg.LogLevel = logLevel
			cfg.LogFormat = logFormat
			cfg.Endpoint = endpoint
			cfg.Transport = transport
			cfg.Stdin = cmd.InOrStdin()
			cfg.Stdout = cmd.OutOrStdout()

			application, err := app.NewApplication(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return application.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "Print status lines and read commands from stdin instead of the TUI")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&transport, "transport", "", "Session transport (websocket, rest); defaults to the configured one")

	return cmd
}
