// Package rest talks to the backend's request/response surface
// (/api/bot/state, /enable, /disable, /toggle). Client backs the one-shot
// "state" commands; PollingSession wraps it as a session.Transport so the
// panel can run over plain HTTP when websockets are unavailable.
package rest
