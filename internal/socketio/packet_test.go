package socketio

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Handshake(t *testing.T) {
	f, err := Decode([]byte(`0{"sid":"abc","upgrades":[],"pingInterval":25000,"pingTimeout":20000,"maxPayload":1000000}`))
	require.NoError(t, err)
	assert.Equal(t, EngineOpen, f.Type)

	h, err := DecodeHandshake(f)
	require.NoError(t, err)
	assert.Equal(t, "abc", h.SID)
	assert.Equal(t, "45s", h.ReadDeadline().String())
}

func TestDecodeHandshake_Rejects(t *testing.T) {
	_, err := DecodeHandshake(Frame{Type: EnginePing})
	assert.Error(t, err)

	_, err = DecodeHandshake(Frame{Type: EngineOpen, Data: []byte(`{"pingInterval":1}`)})
	assert.Error(t, err)
}

func TestDecode_ControlFrames(t *testing.T) {
	for _, in := range []string{"1", "2", "3", "6"} {
		f, err := Decode([]byte(in))
		require.NoError(t, err, in)
		assert.Nil(t, f.Packet)
		assert.Equal(t, EngineType(in[0]), f.Type)
	}

	_, err := Decode(nil)
	assert.ErrorIs(t, err, ErrEmptyFrame)

	_, err = Decode([]byte("9"))
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestDecode_Packets(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		typ       PacketType
		namespace string
		ackID     int
		data      string
	}{
		{name: "connect", in: "40", typ: PacketConnect, namespace: "/", ackID: -1},
		{name: "connect ack", in: `40{"sid":"s1"}`, typ: PacketConnect, namespace: "/", ackID: -1, data: `{"sid":"s1"}`},
		{name: "namespaced connect", in: "40/admin,", typ: PacketConnect, namespace: "/admin", ackID: -1},
		{name: "namespace without comma", in: "41/admin", typ: PacketDisconnect, namespace: "/admin", ackID: -1},
		{name: "event", in: `42["botState",{"isEnabled":true,"mode":"test"}]`, typ: PacketEvent, namespace: "/", ackID: -1, data: `["botState",{"isEnabled":true,"mode":"test"}]`},
		{name: "event with ack id", in: `42/ns,7["x"]`, typ: PacketEvent, namespace: "/ns", ackID: 7, data: `["x"]`},
		{name: "connect error", in: `44{"message":"nope"}`, typ: PacketConnectError, namespace: "/", ackID: -1, data: `{"message":"nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Decode([]byte(tt.in))
			require.NoError(t, err)
			require.NotNil(t, f.Packet)
			assert.Equal(t, tt.typ, f.Packet.Type)
			assert.Equal(t, tt.namespace, f.Packet.Namespace)
			assert.Equal(t, tt.ackID, f.Packet.AckID)
			assert.Equal(t, tt.data, string(f.Packet.Data))
		})
	}
}

func TestDecode_BadPackets(t *testing.T) {
	for _, in := range []string{"4", "49", `42{not json`} {
		_, err := Decode([]byte(in))
		assert.Error(t, err, in)
	}
}

func TestPacket_Event(t *testing.T) {
	f, err := Decode([]byte(`42["botState",{"isEnabled":false,"mode":"deployment"}]`))
	require.NoError(t, err)

	name, args, err := f.Packet.Event()
	require.NoError(t, err)
	assert.Equal(t, "botState", name)
	require.Len(t, args, 1)
	assert.JSONEq(t, `{"isEnabled":false,"mode":"deployment"}`, string(args[0]))

	_, _, err = Packet{Type: PacketEvent, Data: json.RawMessage(`[]`)}.Event()
	assert.ErrorIs(t, err, ErrMalformedEvent)

	_, _, err = Packet{Type: PacketEvent, Data: json.RawMessage(`[1]`)}.Event()
	assert.ErrorIs(t, err, ErrMalformedEvent)

	_, _, err = Packet{Type: PacketConnect}.Event()
	assert.ErrorIs(t, err, ErrMalformedEvent)
}

func TestPacket_ErrorMessageAndSID(t *testing.T) {
	assert.Equal(t, "nope", Packet{Data: json.RawMessage(`{"message":"nope"}`)}.ErrorMessage())
	assert.Equal(t, "plain", Packet{Data: json.RawMessage(`"plain"`)}.ErrorMessage())
	assert.Equal(t, "", Packet{}.ErrorMessage())
	assert.Equal(t, "s1", Packet{Data: json.RawMessage(`{"sid":"s1"}`)}.SID())
}
