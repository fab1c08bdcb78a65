package model

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"botpanel/internal/panel"
	"botpanel/internal/session"
	"botpanel/pkg/logging"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRawLineToActivityLog_Caps(t *testing.T) {
	m := &Model{}
	for i := 0; i < MaxActivityLogLines+5; i++ {
		m.AddRawLineToActivityLog(fmt.Sprintf("line %d", i))
	}
	require.Len(t, m.ActivityLog, MaxActivityLogLines)
	assert.Equal(t, "line 5", m.ActivityLog[0])
	assert.True(t, m.ActivityLogDirty)
}

func TestFormatLogEntry(t *testing.T) {
	ts := time.Date(2024, 1, 2, 13, 4, 5, 6_000_000, time.UTC)
	line := FormatLogEntry(logging.LogEntry{
		Timestamp: ts,
		Level:     logging.LevelError,
		Subsystem: "Session",
		Message:   "dial failed",
		Err:       errors.New("refused"),
	})
	assert.Equal(t, "13:04:05.006 [ERROR] [Session] dial failed -- Error: refused", line)

	line = FormatLogEntry(logging.LogEntry{Timestamp: ts, Level: logging.LevelInfo, Subsystem: "Panel", Message: "ok"})
	assert.Equal(t, "13:04:05.006 [INFO] [Panel] ok", line)
}

func TestSetStatusMessage_NewerCancelsOlder(t *testing.T) {
	m := &Model{}
	first := m.SetStatusMessage("one", StatusBarInfo, time.Millisecond)
	firstCancel := m.StatusBarClearCancel
	second := m.SetStatusMessage("two", StatusBarError, time.Millisecond)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, "two", m.StatusBarMessage)
	assert.Equal(t, StatusBarError, m.StatusBarMessageType)

	select {
	case <-firstCancel:
	default:
		t.Fatal("first clear should be cancelled")
	}
	assert.Nil(t, first(), "a cancelled clear produces no message")
	assert.Equal(t, ClearStatusBarMsg{}, second())
}

func TestDefaultKeyMap(t *testing.T) {
	k := DefaultKeyMap()

	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")}, k.Toggle))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, k.Toggle))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")}, k.ModeTest))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")}, k.ModeDeployment))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, k.Quit))

	assert.Len(t, k.FullHelp(), 3)
	assert.NotEmpty(t, k.ShortHelp())
}

func TestScheduleResetCmd(t *testing.T) {
	assert.Nil(t, ScheduleResetCmd(panel.ResetTicket{}, false))

	ticket := panel.ResetTicket{Kind: panel.LoadingMode, Seq: 3, After: time.Millisecond}
	cmd := ScheduleResetCmd(ticket, true)
	require.NotNil(t, cmd)
	assert.Equal(t, ResetLoadingMsg{Ticket: ticket}, cmd())
}

func TestListenForSessionEventsCmd(t *testing.T) {
	assert.Nil(t, ListenForSessionEventsCmd(nil))

	ch := make(chan session.Event, 1)
	ch <- session.Event{Kind: session.Open, SessionID: "abc"}
	cmd := ListenForSessionEventsCmd(ch)
	assert.Equal(t, SessionEventMsg{Event: session.Event{Kind: session.Open, SessionID: "abc"}}, cmd())

	close(ch)
	assert.Equal(t, SessionStoppedMsg{}, cmd())
}

func TestListenForLogEntriesCmd(t *testing.T) {
	assert.Nil(t, ListenForLogEntriesCmd(nil))

	ch := make(chan logging.LogEntry, 1)
	ch <- logging.LogEntry{Message: "hi"}
	cmd := ListenForLogEntriesCmd(ch)
	assert.Equal(t, NewLogEntryMsg{Entry: logging.LogEntry{Message: "hi"}}, cmd())

	close(ch)
	assert.Nil(t, cmd())
}

func TestAppModeString(t *testing.T) {
	assert.Equal(t, "Panel", ModePanel.String())
	assert.Equal(t, "LogOverlay", ModeLogOverlay.String())
	assert.Equal(t, "Unknown", AppMode(42).String())
}
