package config

import (
	"fmt"
	"net/url"
	"strings"

	"botpanel/internal/bot"
	"botpanel/internal/session"
)

// Policy converts the reconnect section into a session policy.
func (c Config) Policy() session.Policy {
	return session.Policy{
		Enabled:             c.Reconnect.Enabled,
		InitialDelay:        c.Reconnect.InitialDelay,
		MaxDelay:            c.Reconnect.MaxDelay,
		MaxAttempts:         c.Reconnect.MaxAttempts,
		RandomizationFactor: c.Reconnect.RandomizationFactor,
	}
}

// SetEndpoint points both the socket and the REST endpoint at url.
func (c *Config) SetEndpoint(u string) {
	c.Endpoint.SocketURL = u
	c.Endpoint.BaseURL = u
}

// Validate rejects values no component can work with.
func (c Config) Validate() error {
	var problems []string

	checkURL := func(name, raw string) {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			problems = append(problems, fmt.Sprintf("%s %q is not an absolute URL", name, raw))
		}
	}
	checkURL("endpoint.socketURL", c.Endpoint.SocketURL)
	checkURL("endpoint.baseURL", c.Endpoint.BaseURL)
	if err := c.Policy().Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	switch c.Panel.Transport {
	case TransportWebsocket, TransportREST:
	default:
		problems = append(problems, fmt.Sprintf("panel.transport %q must be %q or %q", c.Panel.Transport, TransportWebsocket, TransportREST))
	}
	if c.Panel.LoadingResetDelay <= 0 {
		problems = append(problems, "panel.loadingResetDelay must be positive")
	}
	if c.Panel.PollInterval <= 0 {
		problems = append(problems, "panel.pollInterval must be positive")
	}
	switch strings.ToLower(c.Panel.Theme) {
	case "", "auto", "dark", "light":
	default:
		problems = append(problems, fmt.Sprintf("panel.theme %q must be auto, dark or light", c.Panel.Theme))
	}
	if _, err := bot.ParseMode(c.DevServer.InitialMode); err != nil {
		problems = append(problems, "devServer.initialMode: "+err.Error())
	}
	if c.DevServer.PingInterval <= 0 || c.DevServer.PingTimeout <= 0 {
		problems = append(problems, "devServer ping interval and timeout must be positive")
	}

	if r := c.Update.Repository; r != "" {
		if owner, name, ok := strings.Cut(r, "/"); !ok || owner == "" || name == "" || strings.Contains(name, "/") {
			problems = append(problems, fmt.Sprintf("update.repository %q must be \"owner/name\"", r))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
}
