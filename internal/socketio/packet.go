package socketio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// EngineType is the Engine.IO packet type.
type EngineType byte

const (
	EngineOpen    EngineType = '0'
	EngineClose   EngineType = '1'
	EnginePing    EngineType = '2'
	EnginePong    EngineType = '3'
	EngineMessage EngineType = '4'
	EngineUpgrade EngineType = '5'
	EngineNoop    EngineType = '6'
)

func (t EngineType) String() string {
	switch t {
	case EngineOpen:
		return "open"
	case EngineClose:
		return "close"
	case EnginePing:
		return "ping"
	case EnginePong:
		return "pong"
	case EngineMessage:
		return "message"
	case EngineUpgrade:
		return "upgrade"
	case EngineNoop:
		return "noop"
	default:
		return fmt.Sprintf("engine(%q)", byte(t))
	}
}

// PacketType is the Socket.IO packet type carried in an Engine.IO message.
type PacketType byte

const (
	PacketConnect      PacketType = '0'
	PacketDisconnect   PacketType = '1'
	PacketEvent        PacketType = '2'
	PacketAck          PacketType = '3'
	PacketConnectError PacketType = '4'
)

func (t PacketType) String() string {
	switch t {
	case PacketConnect:
		return "CONNECT"
	case PacketDisconnect:
		return "DISCONNECT"
	case PacketEvent:
		return "EVENT"
	case PacketAck:
		return "ACK"
	case PacketConnectError:
		return "CONNECT_ERROR"
	default:
		return fmt.Sprintf("packet(%q)", byte(t))
	}
}

// DefaultNamespace is the namespace used when none is given.
const DefaultNamespace = "/"

var (
	ErrEmptyFrame     = errors.New("socketio: empty frame")
	ErrUnknownType    = errors.New("socketio: unknown packet type")
	ErrMalformedEvent = errors.New("socketio: malformed event")
)

// Handshake is the body of the Engine.IO open packet. Durations are in
// milliseconds on the wire.
type Handshake struct {
	SID          string   `json:"sid"`
	Upgrades     []string `json:"upgrades"`
	PingInterval int      `json:"pingInterval"`
	PingTimeout  int      `json:"pingTimeout"`
	MaxPayload   int      `json:"maxPayload,omitempty"`
}

// Interval returns the server ping interval.
func (h Handshake) Interval() time.Duration {
	return time.Duration(h.PingInterval) * time.Millisecond
}

// Timeout returns how long the server waits for a pong.
func (h Handshake) Timeout() time.Duration {
	return time.Duration(h.PingTimeout) * time.Millisecond
}

// ReadDeadline is how long a client may go without hearing from the server
// before it considers the session dead.
func (h Handshake) ReadDeadline() time.Duration {
	return h.Interval() + h.Timeout()
}

// Packet is a decoded Socket.IO packet.
type Packet struct {
	Type      PacketType
	Namespace string
	// AckID is -1 when the packet carries no ack id.
	AckID int
	Data  json.RawMessage
}

// Frame is a decoded Engine.IO packet.
type Frame struct {
	Type EngineType
	// Data is the raw payload for non-message packets (handshake JSON, ping probe).
	Data []byte
	// Packet is set for EngineMessage frames.
	Packet *Packet
}

// Decode parses one websocket text message.
func Decode(frame []byte) (Frame, error) {
	if len(frame) == 0 {
		return Frame{}, ErrEmptyFrame
	}
	f := Frame{Type: EngineType(frame[0]), Data: frame[1:]}
	switch f.Type {
	case EngineOpen, EngineClose, EnginePing, EnginePong, EngineUpgrade, EngineNoop:
		return f, nil
	case EngineMessage:
		p, err := decodePacket(frame[1:])
		if err != nil {
			return Frame{}, err
		}
		f.Packet = &p
		f.Data = nil
		return f, nil
	default:
		return Frame{}, fmt.Errorf("%w: engine %q", ErrUnknownType, frame[0])
	}
}

func decodePacket(b []byte) (Packet, error) {
	if len(b) == 0 {
		return Packet{}, ErrEmptyFrame
	}
	p := Packet{Type: PacketType(b[0]), Namespace: DefaultNamespace, AckID: -1}
	switch p.Type {
	case PacketConnect, PacketDisconnect, PacketEvent, PacketAck, PacketConnectError:
	default:
		return Packet{}, fmt.Errorf("%w: socket %q", ErrUnknownType, b[0])
	}
	rest := b[1:]

	if len(rest) > 0 && rest[0] == '/' {
		end := bytes.IndexByte(rest, ',')
		if end < 0 {
			p.Namespace = string(rest)
			return p, nil
		}
		p.Namespace = string(rest[:end])
		rest = rest[end+1:]
	}

	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits > 0 {
		id, err := strconv.Atoi(string(rest[:digits]))
		if err != nil {
			return Packet{}, fmt.Errorf("socketio: ack id: %w", err)
		}
		p.AckID = id
		rest = rest[digits:]
	}

	if len(rest) > 0 {
		if !json.Valid(rest) {
			return Packet{}, fmt.Errorf("socketio: invalid %s body", p.Type)
		}
		p.Data = json.RawMessage(rest)
	}
	return p, nil
}

// Event splits an EVENT packet into its name and arguments.
func (p Packet) Event() (string, []json.RawMessage, error) {
	if p.Type != PacketEvent {
		return "", nil, fmt.Errorf("%w: packet is %s", ErrMalformedEvent, p.Type)
	}
	var parts []json.RawMessage
	if err := json.Unmarshal(p.Data, &parts); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if len(parts) == 0 {
		return "", nil, fmt.Errorf("%w: no event name", ErrMalformedEvent)
	}
	var name string
	if err := json.Unmarshal(parts[0], &name); err != nil {
		return "", nil, fmt.Errorf("%w: event name is not a string", ErrMalformedEvent)
	}
	return name, parts[1:], nil
}

// ErrorMessage extracts the message of a CONNECT_ERROR packet. Servers send
// either {"message":".."} or a bare string.
func (p Packet) ErrorMessage() string {
	if len(p.Data) == 0 {
		return ""
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(p.Data, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	var s string
	if err := json.Unmarshal(p.Data, &s); err == nil {
		return s
	}
	return string(p.Data)
}

// SID extracts the session id of a CONNECT acknowledgement.
func (p Packet) SID() string {
	var obj struct {
		SID string `json:"sid"`
	}
	_ = json.Unmarshal(p.Data, &obj)
	return obj.SID
}

// DecodeHandshake parses the body of an open frame.
func DecodeHandshake(f Frame) (Handshake, error) {
	if f.Type != EngineOpen {
		return Handshake{}, fmt.Errorf("socketio: expected open packet, got %s", f.Type)
	}
	var h Handshake
	if err := json.Unmarshal(f.Data, &h); err != nil {
		return Handshake{}, fmt.Errorf("socketio: handshake: %w", err)
	}
	if h.SID == "" {
		return Handshake{}, errors.New("socketio: handshake without sid")
	}
	return h, nil
}
