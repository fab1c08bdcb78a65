package model

import (
	"time"

	"botpanel/internal/panel"
	"botpanel/internal/session"
	"botpanel/pkg/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// AppMode represents the current mode of the application
type AppMode int

const (
	ModeInitializing AppMode = iota
	ModePanel
	ModeHelpOverlay
	ModeLogOverlay
	ModeQuitting
)

// String provides a human-readable representation of the AppMode.
func (m AppMode) String() string {
	switch m {
	case ModeInitializing:
		return "Initializing"
	case ModePanel:
		return "Panel"
	case ModeHelpOverlay:
		return "HelpOverlay"
	case ModeLogOverlay:
		return "LogOverlay"
	case ModeQuitting:
		return "Quitting"
	default:
		return "Unknown"
	}
}

// MessageType represents the type of status bar message
type MessageType int

const (
	StatusBarInfo MessageType = iota
	StatusBarSuccess
	StatusBarError
	StatusBarWarning
)

// MaxActivityLogLines caps the in-memory activity log.
const MaxActivityLogLines = 1000

// KeyMap defines all the key bindings for the application
type KeyMap struct {
	Toggle         key.Binding
	ModeTest       key.Binding
	ModeDeployment key.Binding
	Up             key.Binding
	Down           key.Binding
	Esc            key.Binding
	Quit           key.Binding
	Help           key.Binding
	ToggleLog      key.Binding
	CopyLogs       key.Binding
	ToggleDark     key.Binding
	ToggleDebug    key.Binding
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.ModeTest, k.ModeDeployment, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap. Each inner slice is one column.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.ModeTest, k.ModeDeployment},
		{k.ToggleLog, k.CopyLogs, k.Up, k.Down},
		{k.Help, k.ToggleDark, k.ToggleDebug, k.Esc, k.Quit},
	}
}

// Model is the TUI state. The bot mirror itself lives in Panel; everything
// else here is presentation state.
type Model struct {
	Width  int
	Height int

	CurrentAppMode AppMode
	LastAppMode    AppMode
	DebugMode      bool
	ColorMode      string

	Endpoint  string
	Panel     *panel.Panel
	Transport session.Transport
	// SessionStopped is set once the transport gave up and closed its events.
	SessionStopped bool

	ActivityLog      []string
	ActivityLogDirty bool
	LogViewport      viewport.Model

	Spinner spinner.Model
	Keys    KeyMap
	Help    help.Model

	StatusBarMessage     string
	StatusBarMessageType MessageType
	StatusBarClearCancel chan struct{}

	QuittingMessage string
	LogChannel      <-chan logging.LogEntry
}

// Presentation is the view model of the current panel snapshot.
func (m *Model) Presentation() panel.Presentation {
	return panel.Present(m.Panel.Snapshot())
}

// SetStatusMessage updates the status bar message and schedules its removal.
// A newer message cancels the pending clear of an older one.
func (m *Model) SetStatusMessage(message string, msgType MessageType, clearAfter time.Duration) tea.Cmd {
	m.StatusBarMessage = message
	m.StatusBarMessageType = msgType

	if m.StatusBarClearCancel != nil {
		close(m.StatusBarClearCancel)
	}

	m.StatusBarClearCancel = make(chan struct{})
	captured := m.StatusBarClearCancel

	return tea.Tick(clearAfter, func(t time.Time) tea.Msg {
		select {
		case <-captured:
			return nil
		default:
			return ClearStatusBarMsg{}
		}
	})
}
