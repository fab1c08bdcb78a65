package model

import (
	"time"

	"botpanel/internal/panel"
	"botpanel/internal/session"
	"botpanel/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenForSessionEventsCmd waits for the next transport event. The
// controller re-issues it after every SessionEventMsg.
func ListenForSessionEventsCmd(events <-chan session.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return SessionStoppedMsg{}
		}
		return SessionEventMsg{Event: ev}
	}
}

// ListenForLogEntriesCmd waits for the next log entry.
func ListenForLogEntriesCmd(ch <-chan logging.LogEntry) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		return NewLogEntryMsg{Entry: entry}
	}
}

// ScheduleResetCmd turns a panel ticket into a delayed ResetLoadingMsg.
func ScheduleResetCmd(t panel.ResetTicket, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	return tea.Tick(t.After, func(time.Time) tea.Msg {
		return ResetLoadingMsg{Ticket: t}
	})
}
