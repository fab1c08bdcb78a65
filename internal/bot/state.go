package bot

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mode is the operating mode of the remote bot.
type Mode string

const (
	ModeTest       Mode = "test"
	ModeDeployment Mode = "deployment"
)

// Modes lists the valid modes in display order.
var Modes = []Mode{ModeTest, ModeDeployment}

// ParseMode accepts the wire names of a mode, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeTest:
		return ModeTest, nil
	case ModeDeployment:
		return ModeDeployment, nil
	default:
		return "", fmt.Errorf("unknown mode %q (allowed: test, deployment)", s)
	}
}

func (m Mode) String() string { return string(m) }

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeTest || m == ModeDeployment
}

// Other returns the mode that is not m.
func (m Mode) Other() Mode {
	if m == ModeTest {
		return ModeDeployment
	}
	return ModeTest
}

// Label is the button caption for the mode.
func (m Mode) Label() string {
	switch m {
	case ModeTest:
		return "Test"
	case ModeDeployment:
		return "Deployment"
	default:
		return string(m)
	}
}

// State is the authoritative bot state as pushed by the server.
// The client only ever holds a mirror of it.
type State struct {
	IsEnabled bool `json:"isEnabled"`
	Mode      Mode `json:"mode"`
}

// DefaultState is the mirror value before the first push arrives.
func DefaultState() State {
	return State{IsEnabled: false, Mode: ModeDeployment}
}

// DecodeState parses a botState payload. Both fields are required so a
// partial payload can never half-update the mirror.
func DecodeState(raw json.RawMessage) (State, error) {
	var wire struct {
		IsEnabled *bool  `json:"isEnabled"`
		Mode      string `json:"mode"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return State{}, fmt.Errorf("decoding %s payload: %w", EventBotState, err)
	}
	if wire.IsEnabled == nil {
		return State{}, fmt.Errorf("decoding %s payload: missing isEnabled", EventBotState)
	}
	mode, err := ParseMode(wire.Mode)
	if err != nil {
		return State{}, fmt.Errorf("decoding %s payload: %w", EventBotState, err)
	}
	return State{IsEnabled: *wire.IsEnabled, Mode: mode}, nil
}

// StatusLabel is the badge caption for the enabled flag.
func (s State) StatusLabel() string {
	if s.IsEnabled {
		return "Active"
	}
	return "Inactive"
}
