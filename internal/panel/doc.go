// Package panel is the state synchronizer behind the BotPanel.
//
// A Panel mirrors the bot state pushed over a session, issues toggle and mode
// requests through it and tracks the transient loading and error flags. It is
// not safe for concurrent use: every method must be called from the single
// loop that also drains the session's events (the bubbletea Update loop or
// Runner). Timers are handed back to that loop as ResetTickets, and every
// method is a no-op after Close.
package panel
