// Package server exposes bingo sessions over a JSON WebSocket protocol.
// Each connection owns one game; the client sends select, reset and state
// requests and receives a game_state message with fresh probabilities.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/bingobot/internal/session"
	"github.com/lox/bingobot/internal/sessionid"
)

// Server represents the WebSocket server
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	sessions    *session.Registry
	clock       quartz.Clock
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	httpServer  *http.Server
	started     time.Time

	estimations atomic.Int64
	requests    atomic.Int64
}

// Option configures a Server
type Option func(*Server)

// WithClock sets the clock used for timestamps and estimation timing
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// NewServer creates a new WebSocket server
func NewServer(addr string, settings session.Settings, logger *log.Logger, opts ...Option) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		clock:       quartz.NewReal(),
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sessions = session.NewRegistry(settings, s.clock)
	s.started = s.clock.Now()
	return s
}

// Handler returns the HTTP handler serving /ws, /health and /stats
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/stats", s.handleStats)
	return mux
}

// Start starts the WebSocket server and blocks until it stops
func (s *Server) Start() error {
	s.mu.Lock()
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	s.logger.Info("Starting WebSocket server", "addr", s.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop closes every connection and shuts the HTTP listener down
func (s *Server) Stop(ctx context.Context) error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close() // Ignore close errors during shutdown
	}
	srv := s.httpServer
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func (s *Server) register(conn *Connection) {
	s.mu.Lock()
	s.connections[conn] = true
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "session", conn.SessionID(), "total", total)
}

func (s *Server) unregister(conn *Connection) {
	s.mu.Lock()
	if _, ok := s.connections[conn]; ok {
		delete(s.connections, conn)
		s.sessions.Remove(conn.SessionID())
		_ = conn.Close() // Ignore close errors during unregistration
	}
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client disconnected", "session", conn.SessionID(), "total", total)
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id, err := sessionid.New()
	if err != nil {
		s.logger.Error("Failed to generate session id", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.sessions.Get(id), s, s.logger)
	s.register(client)
	client.Start()

	go func() {
		select {
		case <-client.ctx.Done():
		case <-s.ctx.Done():
		}
		s.unregister(client)
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}

// handleStats reports connection and estimation counters as plain text
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	settings := s.sessions.Settings()
	_, _ = fmt.Fprintf(w, "Connected clients: %d\n", s.ConnectionCount())
	_, _ = fmt.Fprintf(w, "Active sessions: %d\n", s.sessions.Len())
	_, _ = fmt.Fprintf(w, "Requests handled: %d\n", s.requests.Load())
	_, _ = fmt.Fprintf(w, "Estimations run: %d\n", s.estimations.Load())
	_, _ = fmt.Fprintf(w, "Attempts per game: %d\n", settings.Attempts)
	_, _ = fmt.Fprintf(w, "Trials per candidate: %d\n", settings.Trials)
	_, _ = fmt.Fprintf(w, "Uptime: %s\n", s.clock.Since(s.started).Truncate(time.Second))
}

// ConnectionCount returns the number of live connections
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}
