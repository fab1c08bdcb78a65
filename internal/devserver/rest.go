package devserver

import (
	"encoding/json"
	"net/http"

	"botpanel/internal/bot"
	"botpanel/pkg/logging"
)

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	writeState(w, http.StatusOK, s.store.Get())
}

func (s *Server) handleEnable(w http.ResponseWriter, r *http.Request) {
	logging.Info(subsystem, "REST enable from %s", r.RemoteAddr)
	writeState(w, http.StatusOK, s.store.SetEnabled(true))
}

func (s *Server) handleDisable(w http.ResponseWriter, r *http.Request) {
	logging.Info(subsystem, "REST disable from %s", r.RemoteAddr)
	writeState(w, http.StatusOK, s.store.SetEnabled(false))
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	logging.Info(subsystem, "REST toggle from %s", r.RemoteAddr)
	writeState(w, http.StatusOK, s.store.Toggle())
}

func writeState(w http.ResponseWriter, status int, st bot.State) {
	writeJSON(w, status, bot.APIResponse[bot.State]{Success: true, Data: &st})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, bot.APIResponse[bot.State]{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error(subsystem, err, "writing response")
	}
}
