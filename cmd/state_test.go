package cmd

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"botpanel/internal/bot"
	"botpanel/internal/devserver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useBackend points the persistent flags at a fresh in-memory backend.
func useBackend(t *testing.T) *devserver.Server {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	srv := devserver.New(devserver.Config{InitialState: bot.DefaultState(), PingInterval: time.Minute, PingTimeout: time.Minute})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	origEndpoint, origLevel := endpoint, logLevel
	endpoint, logLevel = ts.URL, "error"
	t.Cleanup(func() { endpoint, logLevel = origEndpoint, origLevel })
	return srv
}

func runStateCmd(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	c := newStateCmd()
	c.SetOut(&buf)
	c.SetErr(&buf)
	c.SetArgs(args)
	require.NoError(t, c.Execute())
	return buf.String()
}

func TestStateCommands(t *testing.T) {
	srv := useBackend(t)

	assert.Equal(t, "Bot Status: Inactive\nCurrent Mode: Deployment\n", runStateCmd(t, "get"))

	runStateCmd(t, "enable")
	assert.True(t, srv.State().IsEnabled)

	runStateCmd(t, "toggle")
	assert.False(t, srv.State().IsEnabled)

	out := runStateCmd(t, "enable", "--json")
	var st bot.State
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, bot.State{IsEnabled: true, Mode: bot.ModeDeployment}, st)

	runStateCmd(t, "disable")
	assert.False(t, srv.State().IsEnabled)
}

func TestConfigShow(t *testing.T) {
	useBackend(t)

	var buf bytes.Buffer
	c := newConfigCmd()
	c.SetOut(&buf)
	c.SetArgs([]string{"show"})
	require.NoError(t, c.Execute())

	assert.Contains(t, buf.String(), "socketURL:")
	assert.Contains(t, buf.String(), endpoint)
	assert.Contains(t, buf.String(), "maxAttempts: 5")
}
