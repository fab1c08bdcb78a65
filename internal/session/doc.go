// Package session implements the Connection Manager: one persistent,
// auto-reconnecting session to the bot backend.
//
// A Transport reports everything that happens to the session as Events on a
// single channel (open, close, transport error, connect error, push). The
// consumer drains that channel on its own loop, so handlers never run
// concurrently with each other.
//
// Manager is the websocket implementation speaking Socket.IO v4. The REST
// polling transport in internal/rest implements the same interface.
package session
