package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"botpanel/internal/bot"
	"botpanel/internal/color"
	"botpanel/internal/panel"
	"botpanel/internal/tui/controller"
	"botpanel/internal/tui/model"
	"botpanel/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// runCLIMode drives the panel from line commands on stdin and prints every
// distinct presentation to stdout.
func runCLIMode(ctx context.Context, config *Config, transport Transport) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	in := config.Stdin
	if in == nil {
		in = os.Stdin
	}
	out := config.Stdout
	if out == nil {
		out = os.Stdout
	}

	logging.Info("CLI", "Running in no-TUI mode. Commands: toggle (t), test (1), deployment (2), quit (q).")
	if err := transport.Start(ctx); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	actions := make(chan panel.Action)
	go readActions(ctx, in, actions)

	runner := &panel.Runner{
		Transport:  transport,
		ResetDelay: config.BotConfig.Panel.LoadingResetDelay,
		Render: func(pr panel.Presentation) {
			fmt.Fprintln(out, FormatPresentation(pr))
		},
	}
	err := runner.Run(ctx, actions)
	logging.Info("CLI", "Session closed.")
	return err
}

// readActions closes actions on "quit". End of input only stops reading, so
// a detached stdin keeps the panel running until a signal arrives.
func readActions(ctx context.Context, in io.Reader, actions chan<- panel.Action) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		cmd := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if cmd == "" {
			continue
		}
		action, quit, err := ParseCommand(cmd)
		if err != nil {
			logging.Warn("CLI", "%v", err)
			continue
		}
		if quit {
			close(actions)
			return
		}
		select {
		case actions <- action:
		case <-ctx.Done():
			return
		}
	}
}

// ParseCommand maps one CLI line onto a panel action.
func ParseCommand(cmd string) (action panel.Action, quit bool, err error) {
	switch cmd {
	case "t", "toggle":
		return panel.ToggleAction(), false, nil
	case "1", string(bot.ModeTest):
		return panel.ModeAction(bot.ModeTest), false, nil
	case "2", string(bot.ModeDeployment):
		return panel.ModeAction(bot.ModeDeployment), false, nil
	case "q", "quit", "exit":
		return panel.Action{}, true, nil
	default:
		return panel.Action{}, false, fmt.Errorf("unknown command %q", cmd)
	}
}

// FormatPresentation renders a presentation as one status line.
func FormatPresentation(pr panel.Presentation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] bot: %s | mode: %s | toggle: %s", pr.Connection, pr.Status, pr.Mode.Label(), pr.Toggle.Label)
	if pr.Toggle.Hint != "" {
		fmt.Fprintf(&b, " (%s)", pr.Toggle.Hint)
	}
	if pr.Connected && pr.Modes[0].Disabled {
		fmt.Fprintf(&b, " | mode change: %s", pr.Modes[0].Label)
	}
	if pr.Error != "" {
		fmt.Fprintf(&b, " | error: %s", pr.Error)
	}
	return b.String()
}

// runTUIMode executes the interactive terminal UI mode
func runTUIMode(ctx context.Context, config *Config, transport Transport) error {
	logging.Info("CLI", "Starting TUI mode...")

	dark, err := color.ResolveTheme(config.BotConfig.Panel.Theme)
	if err != nil {
		return err
	}
	color.Initialize(dark)

	// Switch logging to channel-based system for TUI integration
	logLevel := logging.LevelInfo
	if config.Debug {
		logLevel = logging.LevelDebug
	}
	logChan := logging.InitForTUI(logLevel)
	defer logging.CloseTUIChannel()

	if err := transport.Start(ctx); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	defer transport.Close()

	p := controller.NewProgram(model.Options{
		Endpoint:          endpointOf(*config.BotConfig),
		Transport:         transport,
		LoadingResetDelay: config.BotConfig.Panel.LoadingResetDelay,
		DebugMode:         config.Debug,
		ColorMode:         color.Describe(),
		LogChannel:        logChan,
	}, true, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		logging.Error("TUI-Lifecycle", err, "Error running TUI program")
		return err
	}
	logging.Info("TUI-Lifecycle", "TUI exited.")
	return nil
}
