package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"botpanel/internal/bot"
	"botpanel/internal/session"
	"botpanel/pkg/logging"

	"github.com/google/uuid"
)

// ErrUnsupportedEvent is returned by Send for events the REST surface has no
// endpoint for.
var ErrUnsupportedEvent = errors.New("rest: event not supported over HTTP")

// PollingOptions configures a PollingSession.
type PollingOptions struct {
	BaseURL  string
	Interval time.Duration
	Policy   session.Policy
	Timeout  time.Duration
}

type toggleRequest struct {
	enabled bool
}

// PollingSession is a session.Transport over the REST surface. Opening is a
// successful state read (retried per the policy), every poll pushes the state
// when it changed, and a failed poll closes the session and starts a new open
// cycle. Exhausting the retries stops the session for good.
type PollingSession struct {
	opts   PollingOptions
	client *Client

	events    chan session.Event
	requests  chan toggleRequest
	closing   chan struct{}
	done      chan struct{}
	started   atomic.Bool
	closeOnce sync.Once
	cancel    context.CancelFunc

	mu   sync.Mutex
	id   string
	open atomic.Bool
}

func NewPollingSession(opts PollingOptions) (*PollingSession, error) {
	if opts.Interval <= 0 {
		opts.Interval = 2 * time.Second
	}
	if err := opts.Policy.Validate(); err != nil {
		return nil, fmt.Errorf("rest: %w", err)
	}
	p := &PollingSession{
		opts:     opts,
		events:   make(chan session.Event, 64),
		requests: make(chan toggleRequest, 8),
		closing:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	client, err := NewClient(opts.BaseURL, ClientOptions{
		Retry:   opts.Policy,
		Timeout: opts.Timeout,
		OnFailedAttempt: func(err error) {
			if p.open.Load() {
				return
			}
			p.emit(session.Event{Kind: session.ConnectError, Err: bot.Normalize(err, bot.ConnectFailure)})
		},
	})
	if err != nil {
		return nil, err
	}
	p.client = client
	return p, nil
}

func (p *PollingSession) Start(ctx context.Context) error {
	if p.stopped() {
		return session.ErrNotOpen
	}
	if !p.started.CompareAndSwap(false, true) {
		return session.ErrAlreadyStarted
	}
	runCtx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()
	go p.run(runCtx)
	return nil
}

func (p *PollingSession) Events() <-chan session.Event { return p.events }

func (p *PollingSession) IsOpen() bool { return p.open.Load() }

func (p *PollingSession) ID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id
}

// Send queues a toggleBot request. changeMode has no REST endpoint.
func (p *PollingSession) Send(event string, payload any) error {
	if !p.open.Load() {
		return session.ErrNotOpen
	}
	if event != bot.EventToggleBot {
		return fmt.Errorf("%w: %s", ErrUnsupportedEvent, event)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s payload: %w", event, err)
	}
	var req struct {
		IsEnabled *bool `json:"isEnabled"`
	}
	if err := json.Unmarshal(raw, &req); err != nil || req.IsEnabled == nil {
		return fmt.Errorf("%s payload needs isEnabled", event)
	}
	select {
	case p.requests <- toggleRequest{enabled: *req.IsEnabled}:
		return nil
	case <-p.closing:
		return session.ErrNotOpen
	default:
		return session.ErrSendBufferFull
	}
}

func (p *PollingSession) Close() error {
	p.closeOnce.Do(func() {
		close(p.closing)
		p.mu.Lock()
		cancel := p.cancel
		p.mu.Unlock()
		if cancel != nil {
			cancel()
		}
	})
	if p.started.Load() {
		<-p.done
	}
	return nil
}

func (p *PollingSession) stopped() bool {
	select {
	case <-p.closing:
		return true
	default:
		return false
	}
}

func (p *PollingSession) emit(ev session.Event) {
	if p.stopped() {
		return
	}
	select {
	case p.events <- ev:
	case <-p.closing:
	}
}

func (p *PollingSession) run(ctx context.Context) {
	defer close(p.done)
	defer close(p.events)

	for {
		st, err := p.client.State(ctx)
		if p.stopped() || ctx.Err() != nil {
			return
		}
		if err != nil {
			logging.Warn(subsystem, "giving up on %s: %v", p.opts.BaseURL, err)
			return
		}

		p.mu.Lock()
		p.id = uuid.NewString()
		id := p.id
		p.mu.Unlock()
		p.open.Store(true)
		logging.Info(subsystem, "polling %s every %s (session %s)", p.opts.BaseURL, p.opts.Interval, id)
		p.emit(session.Event{Kind: session.Open, SessionID: id})
		p.pushState(id, st)

		err = p.poll(ctx, id, st)
		p.open.Store(false)
		if p.stopped() || ctx.Err() != nil {
			return
		}
		logging.Error(subsystem, err, "session %s lost", id)
		p.emit(session.Event{Kind: session.Close, SessionID: id})
		if !p.opts.Policy.Enabled {
			return
		}
	}
}

// poll runs an open session until a state read fails.
func (p *PollingSession) poll(ctx context.Context, id string, last bot.State) error {
	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.closing:
			return nil
		case req := <-p.requests:
			st, err := p.client.SetEnabled(ctx, req.enabled)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				p.emit(session.Event{
					Kind:      session.TransportError,
					Err:       bot.NewError(bot.TransportError, bot.ActionToggle, err),
					SessionID: id,
				})
				continue
			}
			last = st
			p.pushState(id, st)
		case <-ticker.C:
			st, err := p.client.StateOnce(ctx)
			if err != nil {
				return err
			}
			if st != last {
				last = st
				p.pushState(id, st)
			}
		}
	}
}

func (p *PollingSession) pushState(id string, st bot.State) {
	payload, err := json.Marshal(st)
	if err != nil {
		return
	}
	p.emit(session.Event{Kind: session.Push, Name: bot.EventBotState, Payload: payload, SessionID: id})
}

var _ session.Transport = (*PollingSession)(nil)
