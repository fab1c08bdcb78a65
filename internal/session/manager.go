package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"botpanel/internal/bot"
	"botpanel/internal/socketio"
	"botpanel/pkg/logging"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const subsystem = "Session"

// Dialer opens websocket connections. *websocket.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, urlStr string, requestHeader http.Header) (*websocket.Conn, *http.Response, error)
}

// Options configures a Manager.
type Options struct {
	// Endpoint is the backend base URL (http, https, ws or wss).
	Endpoint string
	// Path is the Socket.IO mount point, "/socket.io/" when empty.
	Path      string
	Namespace string
	Policy    Policy
	Header    http.Header

	Dialer Dialer
	Clock  Clock
	// Rand feeds backoff randomization; math/rand/v2 when nil.
	Rand func() float64

	HandshakeTimeout time.Duration
	EventBuffer      int
	SendBuffer       int
}

// Manager is a websocket Socket.IO session with automatic reconnection.
type Manager struct {
	opts     Options
	url      string
	instance string

	events    chan Event
	closing   chan struct{}
	done      chan struct{}
	started   atomic.Bool
	closeOnce sync.Once
	cancel    context.CancelFunc

	open atomic.Bool
	mu   sync.Mutex
	conn *conn
}

// NewManager validates opts and prepares a manager. Nothing is dialed until Start.
func NewManager(opts Options) (*Manager, error) {
	if opts.Endpoint == "" {
		return nil, errors.New("session: endpoint is required")
	}
	if err := opts.Policy.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	wsURL, err := socketio.URL(opts.Endpoint, opts.Path)
	if err != nil {
		return nil, err
	}
	if opts.Namespace == "" {
		opts.Namespace = socketio.DefaultNamespace
	}
	if opts.Dialer == nil {
		opts.Dialer = websocket.DefaultDialer
	}
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.Float64
	}
	if opts.HandshakeTimeout <= 0 {
		opts.HandshakeTimeout = 10 * time.Second
	}
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = 64
	}
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 16
	}

	return &Manager{
		opts:     opts,
		url:      wsURL,
		instance: uuid.NewString(),
		events:   make(chan Event, opts.EventBuffer),
		closing:  make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// URL is the websocket URL the manager dials.
func (m *Manager) URL() string { return m.url }

// Start activates the manager: it dials in the background and keeps
// reconnecting according to the policy until Close or ctx is done.
func (m *Manager) Start(ctx context.Context) error {
	if m.stopped() {
		return ErrNotOpen
	}
	if !m.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.mu.Lock()
	m.cancel = cancel
	m.mu.Unlock()
	go m.run(runCtx)
	return nil
}

func (m *Manager) Events() <-chan Event { return m.events }

func (m *Manager) IsOpen() bool { return m.open.Load() }

// ID returns the server-assigned id of the open connection, or "".
func (m *Manager) ID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conn == nil {
		return ""
	}
	return m.conn.sid
}

// Send emits an event with a single JSON payload argument.
func (m *Manager) Send(event string, payload any) error {
	m.mu.Lock()
	c := m.conn
	m.mu.Unlock()
	if c == nil || !m.open.Load() {
		return ErrNotOpen
	}
	frame, err := socketio.EncodeEvent(m.opts.Namespace, event, payload)
	if err != nil {
		return err
	}
	return c.enqueue(frame)
}

// Close stops reconnecting and closes the open connection gracefully.
// It waits for the background loop to exit.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		close(m.closing)
		m.mu.Lock()
		c, cancel := m.conn, m.cancel
		m.mu.Unlock()
		if c != nil {
			c.shutdown()
		}
		if cancel != nil {
			cancel()
		}
	})
	if m.started.Load() {
		<-m.done
	}
	return nil
}

func (m *Manager) stopped() bool {
	select {
	case <-m.closing:
		return true
	default:
		return false
	}
}

func (m *Manager) emit(ev Event) {
	if m.stopped() {
		return
	}
	select {
	case m.events <- ev:
	case <-m.closing:
	}
}

// run owns the connection for the manager's lifetime. Every session end
// goes through the reconnect policy, including a disconnect initiated by the
// server (Engine.IO close or a namespace DISCONNECT packet); unlike
// socket.io-client, such a disconnect does not stop reconnection.
func (m *Manager) run(ctx context.Context) {
	defer close(m.done)
	defer close(m.events)

	attempt := 0
	for {
		if attempt > 0 {
			if attempt > m.opts.Policy.MaxAttempts {
				logging.Warn(subsystem, "giving up after %d reconnection attempts", m.opts.Policy.MaxAttempts)
				return
			}
			delay := Backoff(m.opts.Policy, attempt, m.opts.Rand)
			logging.Debug(subsystem, "reconnect attempt %d/%d in %s", attempt, m.opts.Policy.MaxAttempts, delay)
			select {
			case <-m.opts.Clock.After(delay):
			case <-ctx.Done():
				return
			case <-m.closing:
				return
			}
		}

		c, err := m.connect(ctx)
		if m.stopped() || ctx.Err() != nil {
			if c != nil {
				c.shutdown()
				<-c.writerDone
			}
			return
		}
		if err != nil {
			logging.Error(subsystem, err, "connecting to %s failed", m.url)
			m.emit(Event{Kind: ConnectError, Err: bot.Normalize(err, bot.ConnectFailure)})
			if !m.opts.Policy.Enabled {
				return
			}
			attempt++
			continue
		}

		attempt = 0
		m.serve(c)
		if m.stopped() || ctx.Err() != nil {
			return
		}
		if !m.opts.Policy.Enabled {
			return
		}
		attempt = 1
	}
}

// connect dials, reads the Engine.IO handshake and joins the namespace.
func (m *Manager) connect(ctx context.Context) (*conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, m.opts.HandshakeTimeout)
	defer cancel()

	ws, resp, err := m.opts.Dialer.DialContext(dialCtx, m.url, m.opts.Header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", m.url, err)
	}
	// Close must not wait for a slow handshake.
	stopWatch := context.AfterFunc(ctx, func() { ws.Close() })
	defer stopWatch()

	deadline := time.Now().Add(m.opts.HandshakeTimeout)
	_ = ws.SetReadDeadline(deadline)

	_, msg, err := ws.ReadMessage()
	if err != nil {
		ws.Close()
		return nil, fmt.Errorf("reading handshake: %w", err)
	}
	frame, err := socketio.Decode(msg)
	if err != nil {
		ws.Close()
		return nil, err
	}
	hs, err := socketio.DecodeHandshake(frame)
	if err != nil {
		ws.Close()
		return nil, err
	}

	_ = ws.SetWriteDeadline(deadline)
	if err := ws.WriteMessage(websocket.TextMessage, socketio.EncodeConnect(m.opts.Namespace)); err != nil {
		ws.Close()
		return nil, fmt.Errorf("joining namespace %s: %w", m.opts.Namespace, err)
	}
	_ = ws.SetWriteDeadline(time.Time{})

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			ws.Close()
			return nil, fmt.Errorf("waiting for namespace %s: %w", m.opts.Namespace, err)
		}
		frame, err := socketio.Decode(msg)
		if err != nil {
			logging.Warn(subsystem, "ignoring undecodable frame during connect: %v", err)
			continue
		}
		switch frame.Type {
		case socketio.EnginePing:
			if err := ws.WriteMessage(websocket.TextMessage, socketio.Pong()); err != nil {
				ws.Close()
				return nil, err
			}
			continue
		case socketio.EngineClose:
			ws.Close()
			return nil, errors.New("server closed the connection during connect")
		case socketio.EngineMessage:
		default:
			continue
		}
		p := frame.Packet
		if p.Namespace != m.opts.Namespace {
			continue
		}
		switch p.Type {
		case socketio.PacketConnect:
			c := newConn(ws, hs, p.SID(), m.opts.Namespace, m.opts.SendBuffer)
			m.mu.Lock()
			m.conn = c
			m.mu.Unlock()
			return c, nil
		case socketio.PacketConnectError:
			ws.Close()
			return nil, fmt.Errorf("namespace %s refused: %s", m.opts.Namespace, p.ErrorMessage())
		}
	}
}

var errServerDisconnect = errors.New("server disconnected the session")

// serve runs the read loop of an open connection until it ends.
func (m *Manager) serve(c *conn) {
	m.open.Store(true)
	logging.Info(subsystem, "connected to %s (sid %s, manager %s)", m.url, c.sid, m.instance)
	m.emit(Event{Kind: Open, SessionID: c.sid})

	err := m.readLoop(c)

	m.open.Store(false)
	c.shutdown()
	<-c.writerDone
	m.mu.Lock()
	if m.conn == c {
		m.conn = nil
	}
	m.mu.Unlock()

	if m.stopped() {
		return
	}
	if err != nil && !errors.Is(err, errServerDisconnect) && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		logging.Error(subsystem, err, "session %s failed", c.sid)
		m.emit(Event{Kind: TransportError, Err: bot.Normalize(err, bot.TransportError), SessionID: c.sid})
	} else {
		logging.Info(subsystem, "session %s disconnected", c.sid)
	}
	m.emit(Event{Kind: Close, SessionID: c.sid})
}

func (m *Manager) readLoop(c *conn) error {
	deadline := c.hs.ReadDeadline()
	for {
		if deadline > 0 {
			_ = c.ws.SetReadDeadline(time.Now().Add(deadline))
		} else {
			_ = c.ws.SetReadDeadline(time.Time{})
		}
		typ, msg, err := c.ws.ReadMessage()
		if err != nil {
			return err
		}
		if typ != websocket.TextMessage {
			logging.Debug(subsystem, "ignoring binary frame of %d bytes", len(msg))
			continue
		}
		frame, err := socketio.Decode(msg)
		if err != nil {
			logging.Warn(subsystem, "ignoring undecodable frame: %v", err)
			continue
		}

		switch frame.Type {
		case socketio.EnginePing:
			if err := c.enqueue(socketio.Pong()); err != nil {
				return err
			}
		case socketio.EngineClose:
			return errServerDisconnect
		case socketio.EngineMessage:
			p := frame.Packet
			if p.Namespace != m.opts.Namespace {
				continue
			}
			switch p.Type {
			case socketio.PacketEvent:
				name, args, err := p.Event()
				if err != nil {
					logging.Warn(subsystem, "ignoring malformed event: %v", err)
					continue
				}
				var payload json.RawMessage
				if len(args) > 0 {
					payload = args[0]
				}
				logging.Debug(subsystem, "received %s", name)
				m.emit(Event{Kind: Push, Name: name, Payload: payload, SessionID: c.sid})
			case socketio.PacketDisconnect:
				return errServerDisconnect
			case socketio.PacketConnectError:
				m.emit(Event{
					Kind:      TransportError,
					Err:       bot.NewError(bot.TransportError, bot.ActionNone, errors.New(p.ErrorMessage())),
					SessionID: c.sid,
				})
			}
		}
	}
}

// conn is one open websocket connection. All writes go through its writer
// goroutine because gorilla connections allow a single concurrent writer.
type conn struct {
	ws  *websocket.Conn
	hs  socketio.Handshake
	sid string

	out        chan []byte
	stop       chan struct{}
	stopOnce   sync.Once
	writerDone chan struct{}
	namespace  string
}

func newConn(ws *websocket.Conn, hs socketio.Handshake, sid, namespace string, buffer int) *conn {
	c := &conn{
		ws:         ws,
		hs:         hs,
		sid:        sid,
		namespace:  namespace,
		out:        make(chan []byte, buffer),
		stop:       make(chan struct{}),
		writerDone: make(chan struct{}),
	}
	go c.writer()
	return c
}

func (c *conn) enqueue(frame []byte) error {
	select {
	case <-c.stop:
		return ErrNotOpen
	default:
	}
	select {
	case c.out <- frame:
		return nil
	case <-c.stop:
		return ErrNotOpen
	default:
		return ErrSendBufferFull
	}
}

func (c *conn) shutdown() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *conn) writer() {
	defer close(c.writerDone)
	defer c.ws.Close()

	const writeWait = 5 * time.Second
	for {
		select {
		case frame := <-c.out:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				logging.Debug(subsystem, "write failed: %v", err)
				c.shutdown()
				return
			}
		case <-c.stop:
			// Best effort goodbye; the read side may already be gone.
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.ws.WriteMessage(websocket.TextMessage, socketio.EncodeDisconnect(c.namespace))
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

var _ Transport = (*Manager)(nil)
