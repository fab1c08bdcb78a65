package app

import (
	"io"

	"botpanel/internal/config"
)

// Config holds the application configuration
type Config struct {
	// UI mode
	NoTUI bool

	// Debug settings
	Debug     bool
	LogLevel  string
	LogFormat string

	// ConfigPath is overlaid on top of the user and project layers when set.
	ConfigPath string
	// Endpoint and Transport override the loaded configuration when set.
	Endpoint  string
	Transport string

	// Stdin and Stdout are used by CLI mode.
	Stdin  io.Reader
	Stdout io.Writer

	// BotConfig is filled in by NewApplication.
	BotConfig *config.Config
}

// NewConfig creates a new application configuration
func NewConfig(noTUI, debug bool) *Config {
	return &Config{
		NoTUI: noTUI,
		Debug: debug,
	}
}
