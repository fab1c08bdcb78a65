package socketio

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Ping is the Engine.IO ping frame, sent by servers.
func Ping() []byte { return []byte{byte(EnginePing)} }

// Pong is the Engine.IO pong frame, sent by clients in reply to a ping.
func Pong() []byte { return []byte{byte(EnginePong)} }

// EncodeOpen builds the server's Engine.IO open frame.
func EncodeOpen(h Handshake) ([]byte, error) {
	if h.Upgrades == nil {
		h.Upgrades = []string{}
	}
	b, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("socketio: encoding handshake: %w", err)
	}
	return append([]byte{byte(EngineOpen)}, b...), nil
}

// EncodeConnect builds a Socket.IO CONNECT request for namespace.
func EncodeConnect(namespace string) []byte {
	return packet(PacketConnect, namespace, nil)
}

// EncodeConnectAck builds the server reply to a CONNECT.
func EncodeConnectAck(namespace, sid string) ([]byte, error) {
	body, err := json.Marshal(map[string]string{"sid": sid})
	if err != nil {
		return nil, err
	}
	return packet(PacketConnect, namespace, body), nil
}

// EncodeConnectError builds a CONNECT_ERROR packet.
func EncodeConnectError(namespace, message string) ([]byte, error) {
	body, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return nil, err
	}
	return packet(PacketConnectError, namespace, body), nil
}

// EncodeDisconnect builds a DISCONNECT packet.
func EncodeDisconnect(namespace string) []byte {
	return packet(PacketDisconnect, namespace, nil)
}

// EncodeEvent builds an EVENT packet: ["name", args...].
func EncodeEvent(namespace, name string, args ...any) ([]byte, error) {
	parts := make([]any, 0, len(args)+1)
	parts = append(parts, name)
	parts = append(parts, args...)
	body, err := json.Marshal(parts)
	if err != nil {
		return nil, fmt.Errorf("socketio: encoding %s event: %w", name, err)
	}
	return packet(PacketEvent, namespace, body), nil
}

func packet(t PacketType, namespace string, body []byte) []byte {
	var b strings.Builder
	b.WriteByte(byte(EngineMessage))
	b.WriteByte(byte(t))
	if namespace != "" && namespace != DefaultNamespace {
		b.WriteString(namespace)
		b.WriteByte(',')
	}
	b.Write(body)
	return []byte(b.String())
}

// DefaultPath is the server mount point of Socket.IO.
const DefaultPath = "/socket.io/"

// URL turns an http(s) or ws(s) base endpoint into the websocket URL of the
// Engine.IO v4 endpoint.
func URL(base, path string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("socketio: parsing endpoint %q: %w", base, err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("socketio: unsupported scheme %q in %q", u.Scheme, base)
	}
	if u.Host == "" {
		return "", fmt.Errorf("socketio: endpoint %q has no host", base)
	}
	if path == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	q := u.Query()
	q.Set("EIO", "4")
	q.Set("transport", "websocket")
	u.RawQuery = q.Encode()
	return u.String(), nil
}
