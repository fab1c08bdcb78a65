package devserver

import (
	"net/http"
	"sync"
	"time"

	"botpanel/internal/bot"
	"botpanel/internal/socketio"
	"botpanel/pkg/logging"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Local development tool: any origin may connect.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type client struct {
	sid    string
	ws     *websocket.Conn
	send   chan []byte
	done   chan struct{}
	once   sync.Once
	joined bool
}

func (c *client) close() {
	c.once.Do(func() { close(c.done) })
}

// push queues a frame without blocking; a client that cannot keep up is dropped.
func (c *client) push(frame []byte) bool {
	select {
	case <-c.done:
		return false
	case c.send <- frame:
		return true
	default:
		logging.Warn(subsystem, "client %s is too slow, dropping it", c.sid)
		c.close()
		return false
	}
}

type hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

func newHub() *hub {
	return &hub{clients: make(map[*client]struct{})}
}

func (h *hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *hub) broadcast(frame []byte) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for c := range h.clients {
		if c.push(frame) {
			n++
		}
	}
	return n
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.close()
	}
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("EIO") != "4" || q.Get("transport") != "websocket" {
		writeError(w, http.StatusBadRequest, "only EIO=4 over transport=websocket is supported")
		return
	}
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error(subsystem, err, "upgrading %s", r.RemoteAddr)
		return
	}

	c := &client{
		sid:  uuid.NewString(),
		ws:   ws,
		send: make(chan []byte, 32),
		done: make(chan struct{}),
	}
	open, err := socketio.EncodeOpen(socketio.Handshake{
		SID:          c.sid,
		PingInterval: int(s.cfg.PingInterval / time.Millisecond),
		PingTimeout:  int(s.cfg.PingTimeout / time.Millisecond),
		MaxPayload:   1_000_000,
	})
	if err != nil {
		ws.Close()
		return
	}
	c.send <- open

	go s.writeLoop(c)
	s.readLoop(c)

	s.hub.remove(c)
	c.close()
	logging.Info(subsystem, "client %s left", c.sid)
}

func (s *Server) writeLoop(c *client) {
	ticker := time.NewTicker(s.cfg.PingInterval)
	defer ticker.Stop()
	defer c.ws.Close()

	const writeWait = 5 * time.Second
	write := func(frame []byte) bool {
		_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		return c.ws.WriteMessage(websocket.TextMessage, frame) == nil
	}

	for {
		select {
		case frame := <-c.send:
			if !write(frame) {
				c.close()
				return
			}
		case <-ticker.C:
			if !write(socketio.Ping()) {
				c.close()
				return
			}
		case <-c.done:
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		}
	}
}

func (s *Server) readLoop(c *client) {
	deadline := s.cfg.PingInterval + s.cfg.PingTimeout
	for {
		_ = c.ws.SetReadDeadline(time.Now().Add(deadline))
		_, msg, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		frame, err := socketio.Decode(msg)
		if err != nil {
			logging.Warn(subsystem, "client %s sent an undecodable frame: %v", c.sid, err)
			continue
		}
		switch frame.Type {
		case socketio.EnginePong:
		case socketio.EngineClose:
			return
		case socketio.EngineMessage:
			if !s.handlePacket(c, frame.Packet) {
				return
			}
		}
	}
}

// handlePacket returns false when the client should be dropped.
func (s *Server) handlePacket(c *client, p *socketio.Packet) bool {
	if p.Namespace != socketio.DefaultNamespace {
		frame, _ := socketio.EncodeConnectError(p.Namespace, "Invalid namespace")
		c.push(frame)
		return true
	}

	switch p.Type {
	case socketio.PacketConnect:
		ack, err := socketio.EncodeConnectAck(p.Namespace, c.sid)
		if err != nil {
			return false
		}
		state, err := socketio.EncodeEvent(p.Namespace, bot.EventBotState, s.store.Get())
		if err != nil {
			return false
		}
		c.push(ack)
		c.push(state)
		if !c.joined {
			c.joined = true
			s.hub.add(c)
			logging.Info(subsystem, "client %s joined", c.sid)
		}
	case socketio.PacketDisconnect:
		return false
	case socketio.PacketEvent:
		if !c.joined {
			return true
		}
		name, args, err := p.Event()
		if err != nil || len(args) == 0 {
			logging.Warn(subsystem, "client %s sent a malformed event", c.sid)
			return true
		}
		s.applyEvent(c.sid, name, args[0])
	}
	return true
}
