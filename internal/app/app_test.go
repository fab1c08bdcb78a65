package app

import (
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"botpanel/internal/bot"
	"botpanel/internal/config"
	"botpanel/internal/devserver"
	"botpanel/internal/panel"
	"botpanel/internal/rest"
	"botpanel/internal/session"
	"botpanel/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in      string
		want    panel.Action
		quit    bool
		wantErr bool
	}{
		{"t", panel.ToggleAction(), false, false},
		{"toggle", panel.ToggleAction(), false, false},
		{"1", panel.ModeAction(bot.ModeTest), false, false},
		{"deployment", panel.ModeAction(bot.ModeDeployment), false, false},
		{"q", panel.Action{}, true, false},
		{"restart", panel.Action{}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, quit, err := ParseCommand(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.quit, quit)
		})
	}
}

func TestFormatPresentation(t *testing.T) {
	line := FormatPresentation(panel.Present(panel.Snapshot{State: bot.DefaultState()}))
	assert.Equal(t, "[Disconnected] bot: Inactive | mode: Deployment | toggle: Enable Bot (Waiting for connection...)", line)

	line = FormatPresentation(panel.Present(panel.Snapshot{
		State:       bot.State{IsEnabled: true, Mode: bot.ModeTest},
		Status:      panel.Connected,
		ModeLoading: true,
		Err:         bot.NewError(bot.ActionSendFailure, bot.ActionMode, nil),
	}))
	assert.Equal(t, "[Connected] bot: Active | mode: Test | toggle: Disable Bot | mode change: Loading... | error: Failed to change mode", line)
}

func TestNewTransport(t *testing.T) {
	cfg := config.GetDefaultConfig()

	tr, err := NewTransport(cfg)
	require.NoError(t, err)
	assert.IsType(t, &session.Manager{}, tr)

	cfg.Panel.Transport = config.TransportREST
	tr, err = NewTransport(cfg)
	require.NoError(t, err)
	assert.IsType(t, &rest.PollingSession{}, tr)

	cfg.Panel.Transport = "carrier-pigeon"
	tr, err = NewTransport(cfg)
	assert.Error(t, err)
	assert.Nil(t, tr)
}

func TestNewApplication_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("panel:\n  pollInterval: 3s\n"), 0o644))

	cfg := NewConfig(true, false)
	cfg.ConfigPath = path
	cfg.Endpoint = "http://127.0.0.1:9"
	cfg.Transport = config.TransportREST
	cfg.LogLevel = "error"

	a, err := NewApplication(cfg)
	require.NoError(t, err)
	require.NotNil(t, cfg.BotConfig)
	assert.Equal(t, "http://127.0.0.1:9", cfg.BotConfig.Endpoint.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.BotConfig.Panel.PollInterval)
	assert.IsType(t, &rest.PollingSession{}, a.transport)
}

func TestNewApplication_Rejects(t *testing.T) {
	cfg := NewConfig(true, false)
	cfg.LogLevel = "loud"
	_, err := NewApplication(cfg)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("panel:\n  transport: smoke-signals\n"), 0o644))
	cfg = NewConfig(true, false)
	cfg.ConfigPath = path
	_, err = NewApplication(cfg)
	assert.Error(t, err)
}

// lineWriter hands every written line to a channel.
type lineWriter chan string

func (w lineWriter) Write(p []byte) (int, error) {
	for _, l := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		w <- l
	}
	return len(p), nil
}

func waitForLine(t *testing.T, lines lineWriter, substr string) string {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case l := <-lines:
			if strings.Contains(l, substr) {
				return l
			}
		case <-timeout:
			t.Fatalf("no line containing %q", substr)
			return ""
		}
	}
}

func TestRunCLIMode_AgainstDevServer(t *testing.T) {
	require.NoError(t, logging.InitForCLI(logging.LevelError, io.Discard, "text"))

	srv := devserver.New(devserver.Config{InitialState: bot.DefaultState(), PingInterval: time.Minute, PingTimeout: time.Minute})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	botCfg := config.GetDefaultConfig()
	botCfg.SetEndpoint(ts.URL)
	transport, err := NewTransport(botCfg)
	require.NoError(t, err)

	stdin, feed := io.Pipe()
	lines := make(lineWriter, 256)
	cfg := &Config{NoTUI: true, Stdin: stdin, Stdout: lines, BotConfig: &botCfg}

	done := make(chan error, 1)
	go func() { done <- runCLIMode(context.Background(), cfg, transport) }()

	waitForLine(t, lines, "[Connected] bot: Inactive")
	_, err = io.WriteString(feed, "t\n")
	require.NoError(t, err)
	waitForLine(t, lines, "bot: Active")
	assert.True(t, srv.State().IsEnabled)

	_, err = io.WriteString(feed, "test\n")
	require.NoError(t, err)
	waitForLine(t, lines, "mode: Test")
	assert.Equal(t, bot.ModeTest, srv.State().Mode)

	_, err = io.WriteString(feed, "q\n")
	require.NoError(t, err)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("CLI mode did not stop on quit")
	}
	assert.False(t, transport.IsOpen())
}
