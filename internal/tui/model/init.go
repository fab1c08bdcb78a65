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

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("t", "enter", " "),
			key.WithHelp("t/enter", "enable/disable bot"),
		),
		ModeTest: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "test mode"),
		),
		ModeDeployment: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "deployment mode"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Esc: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close overlay"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h", "toggle help"),
		),
		ToggleLog: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "activity log"),
		),
		CopyLogs: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy log"),
		),
		ToggleDark: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "toggle dark mode"),
		),
		ToggleDebug: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "toggle debug"),
		),
	}
}

// Options configures InitialModel.
type Options struct {
	Endpoint          string
	Transport         session.Transport
	LoadingResetDelay time.Duration
	DebugMode         bool
	ColorMode         string
	LogChannel        <-chan logging.LogEntry
}

// InitialModel mounts a panel on the transport. The transport must already
// be started; the model only consumes its events.
func InitialModel(opts Options) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return &Model{
		CurrentAppMode: ModeInitializing,
		DebugMode:      opts.DebugMode,
		ColorMode:      opts.ColorMode,
		Endpoint:       opts.Endpoint,
		Panel:          panel.New(opts.Transport, opts.LoadingResetDelay),
		Transport:      opts.Transport,
		ActivityLog:    []string{},
		LogViewport:    viewport.New(0, 0),
		Spinner:        s,
		Keys:           DefaultKeyMap(),
		Help:           help.New(),
		LogChannel:     opts.LogChannel,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.Spinner.Tick}
	if m.Transport != nil {
		cmds = append(cmds, ListenForSessionEventsCmd(m.Transport.Events()))
	}
	if m.LogChannel != nil {
		cmds = append(cmds, ListenForLogEntriesCmd(m.LogChannel))
	}
	return tea.Batch(cmds...)
}
