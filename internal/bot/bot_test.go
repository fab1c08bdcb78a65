package bot

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Test")
	require.NoError(t, err)
	assert.Equal(t, ModeTest, m)

	m, err = ParseMode(" deployment ")
	require.NoError(t, err)
	assert.Equal(t, ModeDeployment, m)

	_, err = ParseMode("staging")
	assert.Error(t, err)
}

func TestModeHelpers(t *testing.T) {
	assert.Equal(t, ModeDeployment, ModeTest.Other())
	assert.Equal(t, ModeTest, ModeDeployment.Other())
	assert.Equal(t, "Test", ModeTest.Label())
	assert.Equal(t, "Deployment", ModeDeployment.Label())
	assert.True(t, ModeTest.Valid())
	assert.False(t, Mode("off").Valid())
}

func TestDefaultState(t *testing.T) {
	s := DefaultState()
	assert.False(t, s.IsEnabled)
	assert.Equal(t, ModeDeployment, s.Mode)
	assert.Equal(t, "Inactive", s.StatusLabel())
}

func TestDecodeState(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    State
		wantErr bool
	}{
		{name: "enabled test", payload: `{"isEnabled":true,"mode":"test"}`, want: State{IsEnabled: true, Mode: ModeTest}},
		{name: "disabled deployment", payload: `{"isEnabled":false,"mode":"deployment"}`, want: State{Mode: ModeDeployment}},
		{name: "extra fields ignored", payload: `{"isEnabled":true,"mode":"deployment","uptime":12}`, want: State{IsEnabled: true, Mode: ModeDeployment}},
		{name: "missing isEnabled", payload: `{"mode":"test"}`, wantErr: true},
		{name: "missing mode", payload: `{"isEnabled":true}`, wantErr: true},
		{name: "unknown mode", payload: `{"isEnabled":true,"mode":"off"}`, wantErr: true},
		{name: "not an object", payload: `"on"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeState(json.RawMessage(tt.payload))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPayloadWireShape(t *testing.T) {
	b, err := json.Marshal(TogglePayload{IsEnabled: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"isEnabled":true}`, string(b))

	b, err = json.Marshal(ModePayload{Mode: ModeTest})
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"test"}`, string(b))
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{NewError(ConnectionLost, ActionToggle, nil), "Connection to server lost"},
		{NewError(TransportError, ActionNone, errors.New("eof")), "Server connection error"},
		{NewError(ConnectFailure, ActionNone, nil), "Could not connect to server"},
		{NewError(ActionSendFailure, ActionToggle, nil), "Failed to toggle bot"},
		{NewError(ActionSendFailure, ActionMode, nil), "Failed to change mode"},
	}
	for _, tt := range tests {
		t.Run(tt.err.Kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Message())
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Nil(t, Normalize(nil, TransportError))

	raw := errors.New("websocket: close 1006")
	n := Normalize(raw, TransportError)
	require.NotNil(t, n)
	assert.Equal(t, TransportError, n.Kind)
	assert.ErrorIs(t, n, raw)
	assert.Contains(t, n.Error(), "websocket: close 1006")

	classified := NewError(ConnectFailure, ActionNone, raw)
	wrapped := fmt.Errorf("dial: %w", classified)
	assert.Equal(t, ConnectFailure, Normalize(wrapped, TransportError).Kind)
	assert.Equal(t, ConnectFailure, KindOf(wrapped))
	assert.Equal(t, ErrorKind(0), KindOf(raw))
}
