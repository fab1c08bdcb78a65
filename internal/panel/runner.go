package panel

import (
	"context"
	"time"

	"botpanel/internal/bot"
	"botpanel/internal/session"
	"botpanel/pkg/logging"
)

// Action is a user request fed to a Runner.
type Action struct {
	Toggle bool
	Mode   bot.Mode
}

// ToggleAction requests a toggle of the enabled flag.
func ToggleAction() Action { return Action{Toggle: true} }

// ModeAction requests a switch to m.
func ModeAction(m bot.Mode) Action { return Action{Mode: m} }

// Clock schedules loading resets. session.RealClock satisfies it.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

// Runner drives a Panel without a terminal UI: a single select loop over
// session events, user actions and reset timers. Render is called with every
// distinct presentation, starting with the initial one.
type Runner struct {
	Transport  session.Transport
	ResetDelay time.Duration
	Clock      Clock
	Render     func(Presentation)
}

// Run mounts a panel and blocks until ctx is done or actions is closed. The
// transport is closed on return, whatever the exit path.
func (r *Runner) Run(ctx context.Context, actions <-chan Action) error {
	clock := r.Clock
	if clock == nil {
		clock = session.RealClock{}
	}
	p := New(r.Transport, r.ResetDelay)
	done := make(chan struct{})
	defer func() {
		p.Close()
		close(done)
		if err := r.Transport.Close(); err != nil {
			logging.Error(subsystem, err, "closing session")
		}
	}()

	last := Present(p.Snapshot())
	r.render(last)
	update := func() {
		cur := Present(p.Snapshot())
		if cur != last {
			last = cur
			r.render(cur)
		}
	}

	tickets := make(chan ResetTicket)
	schedule := func(t ResetTicket, ok bool) {
		if !ok {
			return
		}
		go func() {
			select {
			case <-clock.After(t.After):
				select {
				case tickets <- t:
				case <-done:
				}
			case <-done:
			}
		}()
	}

	events := r.Transport.Events()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				logging.Warn(subsystem, "session stopped; restart to reconnect")
				events = nil
				continue
			}
			p.HandleEvent(ev)
		case a, ok := <-actions:
			if !ok {
				return nil
			}
			if a.Toggle {
				schedule(p.RequestToggle())
			} else if a.Mode != "" {
				schedule(p.RequestModeChange(a.Mode))
			}
		case t := <-tickets:
			p.ResetLoading(t)
		}
		update()
	}
}

func (r *Runner) render(pr Presentation) {
	if r.Render != nil {
		r.Render(pr)
	}
}
