package panel

import (
	"testing"

	"botpanel/internal/bot"

	"github.com/stretchr/testify/assert"
)

func TestPresent_ConnectedIdle(t *testing.T) {
	pr := Present(Snapshot{State: bot.State{IsEnabled: true, Mode: bot.ModeTest}, Status: Connected})

	assert.True(t, pr.Connected)
	assert.Equal(t, "Connected", pr.Connection)
	assert.Equal(t, "Active", pr.Status)
	assert.Equal(t, Button{Label: "Disable Bot"}, pr.Toggle)

	assert.Equal(t, bot.ModeTest, pr.Modes[0].Mode)
	assert.Equal(t, Button{Label: "Test", Active: true}, pr.Modes[0].Button)
	assert.Equal(t, Button{Label: "Deployment"}, pr.Modes[1].Button)
	assert.Empty(t, pr.Error)
}

func TestPresent_ToggleLabels(t *testing.T) {
	tests := []struct {
		name     string
		snap     Snapshot
		label    string
		disabled bool
		hint     string
	}{
		{
			name:  "disabled bot offers enable",
			snap:  Snapshot{State: bot.DefaultState(), Status: Connected},
			label: "Enable Bot",
		},
		{
			name:     "loading",
			snap:     Snapshot{State: bot.State{IsEnabled: true, Mode: bot.ModeTest}, Status: Connected, ActionLoading: true},
			label:    "Loading...",
			disabled: true,
		},
		{
			name:     "disconnected",
			snap:     Snapshot{State: bot.State{IsEnabled: true, Mode: bot.ModeTest}},
			label:    "Disable Bot",
			disabled: true,
			hint:     "Waiting for connection...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := Present(tt.snap)
			assert.Equal(t, tt.label, pr.Toggle.Label)
			assert.Equal(t, tt.disabled, pr.Toggle.Disabled)
			assert.Equal(t, tt.hint, pr.Toggle.Hint)
		})
	}
}

func TestPresent_ModeButtons(t *testing.T) {
	pr := Present(Snapshot{State: bot.DefaultState(), Status: Connected, ModeLoading: true})
	for _, b := range pr.Modes {
		assert.Equal(t, "Loading...", b.Label)
		assert.True(t, b.Disabled)
	}
	assert.True(t, pr.Modes[1].Active)
	assert.False(t, pr.Toggle.Disabled, "mode loading does not block the toggle")

	pr = Present(Snapshot{State: bot.DefaultState(), Status: Disconnected})
	for _, b := range pr.Modes {
		assert.True(t, b.Disabled)
		assert.NotEqual(t, "Loading...", b.Label)
	}
}

func TestPresent_StatusBadgeIgnoresConnection(t *testing.T) {
	on := Present(Snapshot{State: bot.State{IsEnabled: true, Mode: bot.ModeDeployment}})
	off := Present(Snapshot{State: bot.State{IsEnabled: false, Mode: bot.ModeDeployment}, Status: Connected})

	assert.Equal(t, "Active", on.Status)
	assert.Equal(t, "Disconnected", on.Connection)
	assert.Equal(t, "Inactive", off.Status)
	assert.Equal(t, "Connected", off.Connection)
}

func TestPresent_Error(t *testing.T) {
	pr := Present(Snapshot{Err: bot.NewError(bot.ConnectFailure, bot.ActionNone, nil)})
	assert.Equal(t, "Could not connect to server", pr.Error)
}

func TestPresent_Comparable(t *testing.T) {
	s := Snapshot{State: bot.DefaultState(), Status: Connected}
	assert.True(t, Present(s) == Present(s))
	s.ActionLoading = true
	assert.False(t, Present(s) == Present(Snapshot{State: bot.DefaultState(), Status: Connected}))
}
