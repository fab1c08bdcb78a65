package controller

import (
	"time"

	"botpanel/internal/session"
	"botpanel/internal/tui/model"
	"botpanel/pkg/logging"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const statusMessageTTL = 3 * time.Second

// Update is the single place model state changes. Panel mutations only ever
// happen here, on the Bubble Tea goroutine.
func Update(msg tea.Msg, m *model.Model) (*model.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		if m.CurrentAppMode == model.ModeInitializing {
			m.CurrentAppMode = model.ModePanel
		}
		return m, nil

	case tea.KeyMsg:
		return handleKeyMsgGlobal(m, msg)

	case model.SessionEventMsg:
		return handleSessionEvent(m, msg.Event)

	case model.SessionStoppedMsg:
		m.SessionStopped = true
		LogInfo("session stopped; restart the panel to reconnect")
		return m, m.SetStatusMessage("Session stopped, restart to reconnect", model.StatusBarWarning, statusMessageTTL)

	case model.ResetLoadingMsg:
		m.Panel.ResetLoading(msg.Ticket)
		return m, nil

	case model.NewLogEntryMsg:
		if msg.Entry.Level != logging.LevelDebug || m.DebugMode {
			m.AddRawLineToActivityLog(model.FormatLogEntry(msg.Entry))
		}
		return m, model.ListenForLogEntriesCmd(m.LogChannel)

	case model.ClearStatusBarMsg:
		m.StatusBarMessage = ""
		m.StatusBarClearCancel = nil
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func handleSessionEvent(m *model.Model, ev session.Event) (*model.Model, tea.Cmd) {
	before := m.Presentation()
	m.Panel.HandleEvent(ev)
	after := m.Presentation()

	cmds := []tea.Cmd{model.ListenForSessionEventsCmd(m.Transport.Events())}
	switch {
	case ev.Kind == session.Open && !before.Connected:
		cmds = append(cmds, m.SetStatusMessage("Connected to "+m.Endpoint, model.StatusBarSuccess, statusMessageTTL))
	case ev.Kind == session.Close && before.Connected:
		cmds = append(cmds, m.SetStatusMessage("Connection lost, reconnecting", model.StatusBarWarning, statusMessageTTL))
	case ev.Kind == session.Push && before.Enabled != after.Enabled:
		cmds = append(cmds, m.SetStatusMessage("Bot is now "+after.Status, model.StatusBarInfo, statusMessageTTL))
	}
	return m, tea.Batch(cmds...)
}

// quit tears the panel down before the transport, so that nothing the
// closing transport emits can reach it.
func quit(m *model.Model) tea.Cmd {
	m.CurrentAppMode = model.ModeQuitting
	m.QuittingMessage = "Closing session..."
	m.Panel.Close()
	transport := m.Transport
	return func() tea.Msg {
		if transport != nil {
			if err := transport.Close(); err != nil {
				LogError(err, "closing session")
			}
		}
		return tea.Quit()
	}
}
