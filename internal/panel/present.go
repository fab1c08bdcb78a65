package panel

import "botpanel/internal/bot"

const (
	labelLoading       = "Loading..."
	labelEnable        = "Enable Bot"
	labelDisable       = "Disable Bot"
	hintWaitingForConn = "Waiting for connection..."
)

// Button is a rendered control.
type Button struct {
	Label    string
	Disabled bool
	// Active marks the mode button matching the mirrored mode.
	Active bool
	Hint   string
}

// ModeButton is a Button bound to the mode it requests.
type ModeButton struct {
	Mode bot.Mode
	Button
}

// Presentation is the pure view model of a Snapshot. It is comparable, so
// callers can skip re-rendering identical frames.
type Presentation struct {
	Connected  bool
	Connection string
	Enabled    bool
	Status     string
	Mode       bot.Mode
	Toggle     Button
	Modes      [2]ModeButton
	Error      string
}

// Present derives the view model from a snapshot.
func Present(s Snapshot) Presentation {
	connected := s.Status == Connected

	toggle := Button{Disabled: s.ActionLoading || !connected}
	switch {
	case s.ActionLoading:
		toggle.Label = labelLoading
	case s.State.IsEnabled:
		toggle.Label = labelDisable
	default:
		toggle.Label = labelEnable
	}
	if !connected {
		toggle.Hint = hintWaitingForConn
	}

	var modes [2]ModeButton
	for i, m := range bot.Modes {
		b := Button{
			Label:    m.Label(),
			Disabled: s.ModeLoading || !connected,
			Active:   s.State.Mode == m,
		}
		if s.ModeLoading {
			b.Label = labelLoading
		}
		modes[i] = ModeButton{Mode: m, Button: b}
	}

	return Presentation{
		Connected:  connected,
		Connection: s.Status.String(),
		Enabled:    s.State.IsEnabled,
		Status:     s.State.StatusLabel(),
		Mode:       s.State.Mode,
		Toggle:     toggle,
		Modes:      modes,
		Error:      s.ErrorMessage(),
	}
}
