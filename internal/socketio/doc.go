// Package socketio encodes and decodes the Engine.IO v4 and Socket.IO v4 text
// framing used by the bot backend, for the websocket transport only.
//
// A websocket text message carries one Engine.IO packet. The first byte is the
// Engine.IO type; MESSAGE packets carry a Socket.IO packet whose first byte is
// the Socket.IO type, optionally followed by a "/namespace," prefix, an ack id
// and a JSON body:
//
//	0{"sid":"..","pingInterval":25000,"pingTimeout":20000}   open
//	2 / 3                                                    ping / pong
//	40 / 40{"sid":".."}                                      connect / ack
//	42["botState",{"isEnabled":true,"mode":"test"}]          event
//	44{"message":"not authorized"}                           connect error
//	41                                                       disconnect
//
// Binary attachments and HTTP long-polling are not supported.
package socketio
