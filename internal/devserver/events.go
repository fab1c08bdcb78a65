package devserver

import (
	"encoding/json"

	"botpanel/internal/bot"
	"botpanel/pkg/logging"
)

// applyEvent applies a client request to the store. Unknown events and bad
// payloads are logged and ignored, which leaves every client on the last
// pushed state.
func (s *Server) applyEvent(sid, name string, payload json.RawMessage) {
	switch name {
	case bot.EventToggleBot:
		var req struct {
			IsEnabled *bool `json:"isEnabled"`
		}
		if err := json.Unmarshal(payload, &req); err != nil || req.IsEnabled == nil {
			logging.Warn(subsystem, "client %s sent %s without isEnabled", sid, name)
			return
		}
		logging.Info(subsystem, "client %s requested isEnabled=%t", sid, *req.IsEnabled)
		s.store.SetEnabled(*req.IsEnabled)
	case bot.EventChangeMode:
		var req struct {
			Mode string `json:"mode"`
		}
		if err := json.Unmarshal(payload, &req); err != nil {
			logging.Warn(subsystem, "client %s sent an unreadable %s payload", sid, name)
			return
		}
		mode, err := bot.ParseMode(req.Mode)
		if err != nil {
			logging.Warn(subsystem, "client %s: %v", sid, err)
			return
		}
		logging.Info(subsystem, "client %s requested mode=%s", sid, mode)
		s.store.SetMode(mode)
	default:
		logging.Debug(subsystem, "client %s sent unknown event %q", sid, name)
	}
}
