// Package devserver is a local stand-in for the bot backend. It keeps the
// authoritative bot state in memory, serves the REST surface and accepts
// Socket.IO websocket clients, pushing botState to every client on connect
// and after every change. It stores the two state fields and nothing else.
package devserver
