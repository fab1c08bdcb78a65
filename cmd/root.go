package cmd

import (
	"fmt"
	"os"

	"botpanel/internal/config"
	"botpanel/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	logFormat  string
	endpoint   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "botpanel",
	Short: "Control panel for a remote bot",
	Long: `botpanel shows and changes the state of a remote bot: whether it is
enabled and whether it runs in test or deployment mode. The panel keeps a
real-time session to the bot backend open and reconnects when it drops.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. unreachable backend, invalid configuration)
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "botpanel version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

// loadConfig sets up CLI logging and returns the merged configuration with
// the --endpoint override applied.
func loadConfig() (config.Config, error) {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return config.Config{}, err
	}
	if err := logging.InitForCLI(level, os.Stderr, logFormat); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if endpoint != "" {
		cfg.SetEndpoint(endpoint)
		if err := cfg.Validate(); err != nil {
			return config.Config{}, fmt.Errorf("--endpoint: %w", err)
		}
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Extra config file, applied after ~/.config/botpanel and ./.botpanel")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format for CLI output (text, json)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Bot backend URL, overrides both socket and REST endpoints")

	rootCmd.AddCommand(newPanelCmd())
	rootCmd.AddCommand(newStateCmd())
	rootCmd.AddCommand(newDevServerCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
