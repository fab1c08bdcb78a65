package app

import (
	"context"
	"fmt"
	"net/http"

	"botpanel/internal/config"
	"botpanel/internal/rest"
	"botpanel/internal/session"
)

// Transport is a session transport that still has to be started.
type Transport interface {
	session.Transport
	Start(ctx context.Context) error
}

// NewTransport builds the transport named by cfg.Panel.Transport.
func NewTransport(cfg config.Config) (Transport, error) {
	switch cfg.Panel.Transport {
	case config.TransportWebsocket, "":
		header := http.Header{}
		header.Set("User-Agent", "botpanel")
		m, err := session.NewManager(session.Options{
			Endpoint:  cfg.Endpoint.SocketURL,
			Path:      cfg.Endpoint.SocketPath,
			Namespace: cfg.Endpoint.Namespace,
			Policy:    cfg.Policy(),
			Header:    header,
		})
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.TransportREST:
		p, err := rest.NewPollingSession(rest.PollingOptions{
			BaseURL:  cfg.Endpoint.BaseURL,
			Interval: cfg.Panel.PollInterval,
			Policy:   cfg.Policy(),
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Panel.Transport)
	}
}
