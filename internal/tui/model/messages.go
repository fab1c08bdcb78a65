package model

import (
	"botpanel/internal/panel"
	"botpanel/internal/session"
	"botpanel/pkg/logging"
)

// SessionEventMsg carries one event from the transport.
type SessionEventMsg struct {
	Event session.Event
}

// SessionStoppedMsg is sent once the transport closed its events channel.
type SessionStoppedMsg struct{}

// ResetLoadingMsg fires when a loading flag's reset delay elapsed.
type ResetLoadingMsg struct {
	Ticket panel.ResetTicket
}

// NewLogEntryMsg carries a log entry from pkg/logging.
type NewLogEntryMsg struct {
	Entry logging.LogEntry
}

// ClearStatusBarMsg is a message to clear the status bar
type ClearStatusBarMsg struct{}
