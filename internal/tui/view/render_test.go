package view

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"botpanel/internal/bot"
	"botpanel/internal/panel"
	"botpanel/internal/session"
	"botpanel/internal/tui/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTransport struct {
	open   bool
	events chan session.Event
}

func (s *stubTransport) Events() <-chan session.Event { return s.events }

func (s *stubTransport) Send(event string, payload any) error { return nil }

func (s *stubTransport) IsOpen() bool { return s.open }

func (s *stubTransport) Close() error { return nil }

func (s *stubTransport) ID() string { return "stub" }

func newTestModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.InitialModel(model.Options{
		Endpoint:  "http://bot.local",
		Transport: &stubTransport{events: make(chan session.Event)},
	})
	m.Width = 100
	m.Height = 30
	m.CurrentAppMode = model.ModePanel
	return m
}

func statePush(t *testing.T, enabled bool, mode bot.Mode) session.Event {
	t.Helper()
	return session.Event{
		Kind:    session.Push,
		Name:    bot.EventBotState,
		Payload: []byte(fmt.Sprintf(`{"isEnabled":%t,"mode":%q}`, enabled, mode)),
	}
}

func TestRenderPanel_Disconnected(t *testing.T) {
	out := RenderPanel(panel.Present(panel.Snapshot{State: bot.DefaultState()}), 0)

	assert.Contains(t, out, "Bot Control Panel")
	assert.Contains(t, out, "Disconnected")
	assert.Contains(t, out, "Inactive")
	assert.Contains(t, out, "Enable Bot")
	assert.Contains(t, out, "Waiting for connection...")
	assert.Contains(t, out, "Deployment")
	assert.NotContains(t, out, IconCheck, "disabled mode buttons carry no active marker")
}

func TestRenderPanel_ConnectedWithError(t *testing.T) {
	snap := panel.Snapshot{
		State:  bot.State{IsEnabled: true, Mode: bot.ModeTest},
		Status: panel.Connected,
		Err:    bot.NewError(bot.ActionSendFailure, bot.ActionToggle, errors.New("boom")),
	}
	out := RenderPanel(panel.Present(snap), 80)

	assert.Contains(t, out, "Connected")
	assert.Contains(t, out, "Active")
	assert.Contains(t, out, "Disable Bot")
	assert.Contains(t, out, "Failed to toggle bot")
	assert.Contains(t, out, SafeIcon(IconCheck)+"Test")
	assert.NotContains(t, out, "Waiting for connection...")
}

func TestRenderPanel_LoadingLabels(t *testing.T) {
	snap := panel.Snapshot{Status: panel.Connected, ActionLoading: true, ModeLoading: true, State: bot.DefaultState()}
	out := RenderPanel(panel.Present(snap), 0)
	assert.Equal(t, 3, strings.Count(out, "Loading..."))
}

func TestRenderPanel_IsDeterministic(t *testing.T) {
	pr := panel.Present(panel.Snapshot{State: bot.State{IsEnabled: true, Mode: bot.ModeDeployment}, Status: panel.Connected})
	assert.Equal(t, RenderPanel(pr, 90), RenderPanel(pr, 90))
}

func TestRender_Modes(t *testing.T) {
	m := newTestModel(t)

	m.CurrentAppMode = model.ModeInitializing
	m.Width, m.Height = 0, 0
	assert.Contains(t, Render(m), "waiting for window size")

	m.Width, m.Height = 100, 30
	m.CurrentAppMode = model.ModeQuitting
	m.QuittingMessage = "Closing session..."
	assert.Contains(t, Render(m), "Closing session...")

	m.CurrentAppMode = model.ModePanel
	m.Panel.HandleEvent(session.Event{Kind: session.Open, SessionID: "s1"})
	m.Panel.HandleEvent(statePush(t, true, bot.ModeTest))
	out := Render(m)
	assert.Contains(t, out, "Disable Bot")
	assert.Contains(t, out, "http://bot.local")

	m.CurrentAppMode = model.ModeHelpOverlay
	out = Render(m)
	assert.Contains(t, out, "KEYBOARD SHORTCUTS")
	assert.Contains(t, out, "deployment mode")

	m.CurrentAppMode = model.AppMode(99)
	assert.Contains(t, Render(m), "Unhandled application mode")
}

func TestRender_LogOverlayRefreshesViewport(t *testing.T) {
	m := newTestModel(t)
	m.AddRawLineToActivityLog("12:00:00.000 [ERROR] [Session] dial failed")
	m.CurrentAppMode = model.ModeLogOverlay

	out := Render(m)
	require.False(t, m.ActivityLogDirty)
	assert.Contains(t, out, "Activity Log")
	assert.Contains(t, out, "dial failed")
	assert.Greater(t, m.LogViewport.Width, 0)
}

func TestStatusBar(t *testing.T) {
	m := newTestModel(t)
	assert.Contains(t, renderStatusBar(m, 100), "Disconnected")

	m.SessionStopped = true
	assert.Contains(t, renderStatusBar(m, 100), "Stopped")

	m.SessionStopped = false
	m.Panel.HandleEvent(session.Event{Kind: session.Open})
	m.StatusBarMessage = "Logs copied"
	m.StatusBarMessageType = model.StatusBarSuccess
	out := renderStatusBar(m, 100)
	assert.Contains(t, out, "Connected")
	assert.Contains(t, out, "Logs copied")
}

func TestSafeIcon(t *testing.T) {
	assert.Equal(t, "x ", SafeIcon("x"))
	assert.Equal(t, IconScroll+"  ", SafeIcon(IconScroll))
	assert.Equal(t, SafeIcon(IconInfo)+"hello", IconText(IconInfo, "hello"))
}

func TestPrepareLogContent(t *testing.T) {
	out := PrepareLogContent([]string{"a [WARN] x", "b [DEBUG] y", "c"})
	assert.Equal(t, 3, len(strings.Split(out, "\n")))
	assert.Contains(t, out, "a [WARN] x")
	assert.Contains(t, out, "c")
}

func TestDroppedSuffix(t *testing.T) {
	assert.Empty(t, droppedSuffix(0))
	assert.Equal(t, "  [7 dropped]", droppedSuffix(7))
}
