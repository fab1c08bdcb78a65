package cmd

import (
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"botpanel/internal/bot"
	"botpanel/internal/devserver"

	"github.com/spf13/cobra"
)

func newDevServerCmd() *cobra.Command {
	var (
		listen  string
		mode    string
		enabled bool
	)

	cmd := &cobra.Command{
		Use:   "dev-server",
		Short: "Run a local bot backend for development",
		Long: `Runs an in-memory bot backend that speaks the same real-time protocol and
REST API as the production backend. Point the panel at it with
--endpoint http://<listen address>.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("listen") {
				listen = cfg.DevServer.Listen
			}
			if !cmd.Flags().Changed("mode") {
				mode = cfg.DevServer.InitialMode
			}
			if !cmd.Flags().Changed("enabled") {
				enabled = cfg.DevServer.InitialEnabled
			}
			initialMode, err := bot.ParseMode(mode)
			if err != nil {
				return err
			}

			srv := devserver.New(devserver.Config{
				InitialState: bot.State{IsEnabled: enabled, Mode: initialMode},
				PingInterval: cfg.DevServer.PingInterval,
				PingTimeout:  cfg.DevServer.PingTimeout,
				Path:         cfg.Endpoint.SocketPath,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, listen, func(addr net.Addr) {
				fmt.Fprintf(cmd.OutOrStdout(), "Bot backend listening on http://%s (Ctrl+C to stop)\n", addr)
			})
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Address to listen on (default from config, 127.0.0.1:8080)")
	cmd.Flags().StringVar(&mode, "mode", "", "Initial bot mode (test, deployment)")
	cmd.Flags().BoolVar(&enabled, "enabled", false, "Start with the bot enabled")

	return cmd
}
