package bot

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every error the panel can show.
type ErrorKind int

const (
	// ConnectionLost: an action was attempted while the session was closed.
	ConnectionLost ErrorKind = iota + 1
	// TransportError: generic fault reported by an open or opening session.
	TransportError
	// ConnectFailure: a (re)connect attempt failed.
	ConnectFailure
	// ActionSendFailure: sending an action request failed.
	ActionSendFailure
)

func (k ErrorKind) String() string {
	switch k {
	case ConnectionLost:
		return "ConnectionLost"
	case TransportError:
		return "TransportError"
	case ConnectFailure:
		return "ConnectFailure"
	case ActionSendFailure:
		return "ActionSendFailure"
	default:
		return "Unknown"
	}
}

// Action identifies which user action an ActionSendFailure belongs to.
type Action string

const (
	ActionNone   Action = ""
	ActionToggle Action = "toggle"
	ActionMode   Action = "mode"
)

// Error is a classified, user-presentable error. Cause keeps the raw
// transport error for logs only; it is never shown.
type Error struct {
	Kind   ErrorKind
	Action Action
	Cause  error
}

// Message returns the single line shown to the user.
func (e *Error) Message() string {
	switch e.Kind {
	case ConnectionLost:
		return "Connection to server lost"
	case TransportError:
		return "Server connection error"
	case ConnectFailure:
		return "Could not connect to server"
	case ActionSendFailure:
		if e.Action == ActionMode {
			return "Failed to change mode"
		}
		return "Failed to toggle bot"
	default:
		return "Unknown error"
	}
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message()
	}
	return fmt.Sprintf("%s: %v", e.Message(), e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds a classified error.
func NewError(kind ErrorKind, action Action, cause error) *Error {
	return &Error{Kind: kind, Action: action, Cause: cause}
}

// Normalize converts an arbitrary error into the taxonomy. An error that is
// already classified keeps its kind; anything else becomes fallback.
func Normalize(err error, fallback ErrorKind) *Error {
	if err == nil {
		return nil
	}
	var be *Error
	if errors.As(err, &be) {
		return be
	}
	return &Error{Kind: fallback, Cause: err}
}

// KindOf reports the taxonomy kind of err, or 0 when it is unclassified.
func KindOf(err error) ErrorKind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return 0
}
