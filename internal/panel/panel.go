package panel

import (
	"time"

	"botpanel/internal/bot"
	"botpanel/internal/session"
	"botpanel/pkg/logging"
)

const subsystem = "Panel"

// DefaultLoadingResetDelay is how long a request shows as loading when no
// failure is reported.
const DefaultLoadingResetDelay = 500 * time.Millisecond

// ConnectionStatus is derived from session events only.
type ConnectionStatus int

const (
	Disconnected ConnectionStatus = iota
	Connected
)

func (s ConnectionStatus) String() string {
	if s == Connected {
		return "Connected"
	}
	return "Disconnected"
}

// Snapshot is everything the presentation depends on.
type Snapshot struct {
	State         bot.State
	Status        ConnectionStatus
	ActionLoading bool
	ModeLoading   bool
	// Err is the last error; nil when none is shown.
	Err *bot.Error
}

// ErrorMessage is the user-facing message of Err, or "".
func (s Snapshot) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Message()
}

// Sender is the part of session.Transport the panel sends through.
type Sender interface {
	Send(event string, payload any) error
	IsOpen() bool
}

// LoadingKind selects one of the two loading flags.
type LoadingKind int

const (
	LoadingAction LoadingKind = iota
	LoadingMode
)

// ResetTicket asks the owner loop to call ResetLoading after the delay.
// A ticket only clears the flag if no newer request has touched it since.
type ResetTicket struct {
	Kind  LoadingKind
	Seq   uint64
	After time.Duration
}

// Panel is the state synchronizer.
type Panel struct {
	sender     Sender
	resetDelay time.Duration

	snap   Snapshot
	seq    [2]uint64
	closed bool
}

// New mounts a panel on a session. The mirror starts at bot.DefaultState.
func New(sender Sender, resetDelay time.Duration) *Panel {
	if resetDelay <= 0 {
		resetDelay = DefaultLoadingResetDelay
	}
	return &Panel{
		sender:     sender,
		resetDelay: resetDelay,
		snap:       Snapshot{State: bot.DefaultState(), Status: Disconnected},
	}
}

func (p *Panel) Snapshot() Snapshot { return p.snap }

// Close is the teardown guard: afterwards nothing mutates the panel.
func (p *Panel) Close() { p.closed = true }

func (p *Panel) Closed() bool { return p.closed }

// HandleEvent applies a session event and reports whether the snapshot changed.
func (p *Panel) HandleEvent(ev session.Event) bool {
	if p.closed {
		return false
	}
	before := p.snap

	switch ev.Kind {
	case session.Open:
		p.snap.Status = Connected
		p.snap.Err = nil
		logging.Info(subsystem, "connected (session %s)", ev.SessionID)
	case session.Close:
		p.snap.Status = Disconnected
		logging.Info(subsystem, "disconnected from session %s", ev.SessionID)
	case session.TransportError:
		p.snap.Err = bot.Normalize(ev.Err, bot.TransportError)
		if p.snap.Err == nil {
			p.snap.Err = bot.NewError(bot.TransportError, bot.ActionNone, nil)
		}
		logging.Error(subsystem, ev.Err, "transport error")
	case session.ConnectError:
		p.snap.Status = Disconnected
		p.snap.Err = bot.NewError(bot.ConnectFailure, bot.ActionNone, ev.Err)
		logging.Error(subsystem, ev.Err, "connect error")
	case session.Push:
		p.handlePush(ev)
	}
	return !sameSnapshot(before, p.snap)
}

func (p *Panel) handlePush(ev session.Event) {
	if ev.Name != bot.EventBotState {
		logging.Debug(subsystem, "ignoring push %q", ev.Name)
		return
	}
	st, err := bot.DecodeState(ev.Payload)
	if err != nil {
		logging.Warn(subsystem, "ignoring malformed state push: %v", err)
		return
	}
	p.snap.State = st
	logging.Info(subsystem, "bot state: enabled=%t mode=%s", st.IsEnabled, st.Mode)
}

// RequestToggle asks the server to flip the enabled flag. The returned ticket
// is valid only when ok is true.
func (p *Panel) RequestToggle() (ticket ResetTicket, ok bool) {
	if p.closed {
		return ResetTicket{}, false
	}
	if !p.sender.IsOpen() {
		p.snap.Err = bot.NewError(bot.ConnectionLost, bot.ActionToggle, nil)
		return ResetTicket{}, false
	}
	if p.snap.ActionLoading {
		return ResetTicket{}, false
	}
	return p.request(LoadingAction, bot.ActionToggle, bot.EventToggleBot,
		bot.TogglePayload{IsEnabled: !p.snap.State.IsEnabled})
}

// RequestModeChange asks the server to switch to mode, sent verbatim.
func (p *Panel) RequestModeChange(mode bot.Mode) (ticket ResetTicket, ok bool) {
	if p.closed {
		return ResetTicket{}, false
	}
	if !p.sender.IsOpen() {
		p.snap.Err = bot.NewError(bot.ConnectionLost, bot.ActionMode, nil)
		return ResetTicket{}, false
	}
	if p.snap.ModeLoading {
		return ResetTicket{}, false
	}
	return p.request(LoadingMode, bot.ActionMode, bot.EventChangeMode, bot.ModePayload{Mode: mode})
}

func (p *Panel) request(kind LoadingKind, action bot.Action, event string, payload any) (ResetTicket, bool) {
	p.setLoading(kind, true)
	p.seq[kind]++

	if err := p.send(event, payload); err != nil {
		p.snap.Err = bot.NewError(bot.ActionSendFailure, action, err)
		p.setLoading(kind, false)
		logging.Error(subsystem, err, "sending %s", event)
		return ResetTicket{}, false
	}
	p.snap.Err = nil
	logging.Debug(subsystem, "sent %s %+v", event, payload)
	return ResetTicket{Kind: kind, Seq: p.seq[kind], After: p.resetDelay}, true
}

// send converts a panic in the transport into an error so that nothing
// escapes the handler.
func (p *Panel) send(event string, payload any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = bot.NewError(bot.ActionSendFailure, bot.ActionNone, nil)
			logging.Error(subsystem, nil, "send of %s panicked: %v", event, r)
		}
	}()
	return p.sender.Send(event, payload)
}

// ResetLoading clears the loading flag named by the ticket and reports
// whether anything changed.
func (p *Panel) ResetLoading(t ResetTicket) bool {
	if p.closed || t.Seq != p.seq[t.Kind] {
		return false
	}
	if !p.loading(t.Kind) {
		return false
	}
	p.setLoading(t.Kind, false)
	return true
}

func (p *Panel) loading(kind LoadingKind) bool {
	if kind == LoadingMode {
		return p.snap.ModeLoading
	}
	return p.snap.ActionLoading
}

func (p *Panel) setLoading(kind LoadingKind, v bool) {
	if kind == LoadingMode {
		p.snap.ModeLoading = v
		return
	}
	p.snap.ActionLoading = v
}

func sameSnapshot(a, b Snapshot) bool {
	if a.State != b.State || a.Status != b.Status || a.ActionLoading != b.ActionLoading || a.ModeLoading != b.ModeLoading {
		return false
	}
	return a.Err == b.Err
}
