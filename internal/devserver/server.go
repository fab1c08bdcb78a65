package devserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"botpanel/internal/bot"
	"botpanel/internal/socketio"
	"botpanel/pkg/logging"

	"github.com/gorilla/mux"
)

const subsystem = "DevServer"

// Config configures the emulator.
type Config struct {
	InitialState bot.State
	PingInterval time.Duration
	PingTimeout  time.Duration
	// Path is the Socket.IO mount point, "/socket.io/" when empty.
	Path string
}

// DefaultConfig mirrors the timings of a stock Socket.IO v4 server.
func DefaultConfig() Config {
	return Config{
		InitialState: bot.DefaultState(),
		PingInterval: 25 * time.Second,
		PingTimeout:  20 * time.Second,
		Path:         socketio.DefaultPath,
	}
}

// Server is the backend emulator.
type Server struct {
	cfg    Config
	store  *Store
	hub    *hub
	router *mux.Router
}

func New(cfg Config) *Server {
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = DefaultConfig().PingInterval
	}
	if cfg.PingTimeout <= 0 {
		cfg.PingTimeout = DefaultConfig().PingTimeout
	}
	if cfg.Path == "" {
		cfg.Path = socketio.DefaultPath
	}
	if !cfg.InitialState.Mode.Valid() {
		cfg.InitialState.Mode = bot.ModeDeployment
	}

	s := &Server{cfg: cfg}
	s.hub = newHub()
	s.store = NewStore(cfg.InitialState, s.broadcastState)
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc(bot.PathState, s.handleGetState).Methods(http.MethodGet)
	r.HandleFunc(bot.PathEnable, s.handleEnable).Methods(http.MethodPost)
	r.HandleFunc(bot.PathDisable, s.handleDisable).Methods(http.MethodPost)
	r.HandleFunc(bot.PathToggle, s.handleToggle).Methods(http.MethodPost)
	r.PathPrefix(s.cfg.Path).HandlerFunc(s.handleSocket).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path))
	})
	return r
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler { return s.router }

// State returns the authoritative state.
func (s *Server) State() bot.State { return s.store.Get() }

// Clients returns the number of joined Socket.IO clients.
func (s *Server) Clients() int { return s.hub.count() }

func (s *Server) broadcastState(st bot.State) {
	frame, err := socketio.EncodeEvent(socketio.DefaultNamespace, bot.EventBotState, st)
	if err != nil {
		logging.Error(subsystem, err, "encoding state push")
		return
	}
	n := s.hub.broadcast(frame)
	logging.Info(subsystem, "state is now enabled=%t mode=%s (pushed to %d clients)", st.IsEnabled, st.Mode, n)
}

// ListenAndServe serves on addr until ctx is done. ready, when not nil,
// receives the bound address once the listener is up.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	logging.Info(subsystem, "listening on %s", ln.Addr())
	if ready != nil {
		ready(ln.Addr())
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.hub.closeAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logging.Info(subsystem, "stopped")
	return nil
}
