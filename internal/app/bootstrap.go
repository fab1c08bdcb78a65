package app

import (
	"context"
	"fmt"
	"os"

	"botpanel/internal/config"
	"botpanel/pkg/logging"
)

// Application is the main application structure that bootstraps and runs the panel
type Application struct {
	config    *Config
	transport Transport
}

// NewApplication loads the layered configuration, applies the command line
// overrides and builds the session transport. Nothing is dialed yet.
func NewApplication(cfg *Config) (*Application, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if cfg.Debug {
		level = logging.LevelDebug
	}
	if err := logging.InitForCLI(level, os.Stderr, cfg.LogFormat); err != nil {
		return nil, err
	}

	botCfg, err := config.LoadConfig(cfg.ConfigPath)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load configuration")
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Endpoint != "" {
		botCfg.SetEndpoint(cfg.Endpoint)
	}
	if cfg.Transport != "" {
		botCfg.Panel.Transport = cfg.Transport
	}
	if err := botCfg.Validate(); err != nil {
		return nil, err
	}
	cfg.BotConfig = &botCfg

	transport, err := NewTransport(botCfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to create %s transport", botCfg.Panel.Transport)
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}
	logging.Debug("Bootstrap", "using %s transport against %s", botCfg.Panel.Transport, endpointOf(botCfg))

	return &Application{
		config:    cfg,
		transport: transport,
	}, nil
}

// Run executes the application in the appropriate mode
func (a *Application) Run(ctx context.Context) error {
	if a.config.NoTUI {
		return runCLIMode(ctx, a.config, a.transport)
	}
	return runTUIMode(ctx, a.config, a.transport)
}

func endpointOf(c config.Config) string {
	if c.Panel.Transport == config.TransportREST {
		return c.Endpoint.BaseURL
	}
	return c.Endpoint.SocketURL
}
