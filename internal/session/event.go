package session

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind is the kind of session event.
type Kind int

const (
	// Open fires once per successful (re)connect.
	Open Kind = iota + 1
	// Close fires on any disconnect, graceful or not.
	Close
	// TransportError reports a fault of an open session. It does not imply Close.
	TransportError
	// ConnectError reports a failed (re)connect attempt.
	ConnectError
	// Push carries a server-initiated event.
	Push
)

func (k Kind) String() string {
	switch k {
	case Open:
		return "open"
	case Close:
		return "close"
	case TransportError:
		return "transport_error"
	case ConnectError:
		return "connect_error"
	case Push:
		return "push"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is a single thing that happened to the session. Err is always
// normalized into the bot error taxonomy.
type Event struct {
	Kind    Kind
	Name    string
	Payload json.RawMessage
	Err     error
	// SessionID is the server-assigned id of the connection the event belongs to.
	SessionID string
}

// Transport is the Connection Manager contract.
type Transport interface {
	// Events is closed when the transport stops for good.
	Events() <-chan Event
	// Send fails fast with ErrNotOpen when no session is open.
	Send(event string, payload any) error
	IsOpen() bool
	// Close tears the session down; a graceful close is attempted when open.
	// Calling it more than once is a no-op.
	Close() error
	ID() string
}

var (
	ErrNotOpen        = errors.New("session: not open")
	ErrSendBufferFull = errors.New("session: send buffer full")
	ErrAlreadyStarted = errors.New("session: already started")
)
