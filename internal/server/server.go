// Package server exposes the hand ranker over HTTP and WebSocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/fivecardstud/internal/config"
	"github.com/lox/fivecardstud/internal/protocol"
	"github.com/lox/fivecardstud/internal/showdown"
)

const shutdownTimeout = 5 * time.Second

// Server serves rank requests.
type Server struct {
	cfg      config.Server
	logger   zerolog.Logger
	clock    quartz.Clock
	started  time.Time
	dealer   *showdown.Dealer
	stats    *Stats
	upgrader websocket.Upgrader

	mu      sync.Mutex
	conns   map[*Connection]struct{}
	closing bool
	wg      sync.WaitGroup
}

// Option configures a Server.
type Option func(*Server)

// WithClock sets the clock used for uptime, timestamps and pings.
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// New creates a server from validated settings.
func New(cfg config.Server, logger zerolog.Logger, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		logger: logger.With().Str("component", "server").Logger(),
		clock:  quartz.NewReal(),
		stats:  NewStats(),
		conns:  make(map[*Connection]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	dealer, err := showdown.NewDealer(cfg.MaxHands, showdown.WithClock(s.clock))
	if err != nil {
		return nil, err
	}
	s.dealer = dealer
	s.started = s.clock.Now()
	return s, nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("POST /rank", s.handleRank)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	return mux
}

// ListenAndServe listens on the configured address and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then closes every
// WebSocket connection and shuts the HTTP server down.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	s.logger.Info().Str("addr", ln.Addr().String()).Int("max_hands", s.cfg.MaxHands).Msg("Starting rank server")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info().Msg("Shutting down rank server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.closeConnections()
		err := httpServer.Shutdown(shutdownCtx)
		s.wg.Wait()
		return err
	})
	return g.Wait()
}

// ConnectionCount returns the number of open WebSocket connections.
func (s *Server) ConnectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// Stats returns the server's request counters.
func (s *Server) Stats() *Stats { return s.stats }

// register tracks c. It reports false once shutdown has begun.
func (s *Server) register(c *Connection) bool {
	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		return false
	}
	s.conns[c] = struct{}{}
	total := len(s.conns)
	s.mu.Unlock()
	s.logger.Info().Str("conn", c.id).Int("total", total).Msg("Client connected")
	return true
}

func (s *Server) unregister(c *Connection) {
	s.mu.Lock()
	delete(s.conns, c)
	total := len(s.conns)
	s.mu.Unlock()
	s.logger.Info().Str("conn", c.id).Int("total", total).Msg("Client disconnected")
}

func (s *Server) closeConnections() {
	s.mu.Lock()
	s.closing = true
	conns := make([]*Connection, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		_ = c.Close()
	}
}

// rank answers one request. Exactly one of the results is non-nil.
func (s *Server) rank(req *protocol.RankRequest) (*protocol.RankResult, *protocol.Error) {
	hands, err := req.ParseHands(s.cfg.MaxHands)
	if err != nil {
		s.stats.recordError()
		return nil, protocol.ErrorFor(req.ID, err)
	}

	sd, err := s.dealer.FromHands(showdown.SourceManual, hands)
	if err != nil {
		s.stats.recordError()
		return nil, protocol.ErrorFor(req.ID, err)
	}

	id := req.ID
	if id == "" {
		id = sd.ID
	}
	s.stats.recordRanking(sd.Ranking)
	s.logger.Debug().Str("id", id).Int("hands", len(hands)).Str("winner", sd.Winner().String()).Msg("Ranked hands")
	return protocol.NewResult(id, sd.Ranking), nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"uptime":      s.clock.Now().Sub(s.started).Round(time.Second).String(),
		"connections": s.ConnectionCount(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxMessageSize))
	if err != nil {
		s.stats.recordError()
		writeJSON(w, http.StatusRequestEntityTooLarge, protocol.NewError("", protocol.CodeBadRequest, err.Error()))
		return
	}

	req, err := protocol.DecodeRequest(protocol.JSON, body)
	if err != nil {
		s.stats.recordError()
		writeJSON(w, http.StatusBadRequest, protocol.NewError(requestID(req), protocol.CodeBadRequest, err.Error()))
		return
	}

	res, perr := s.rank(req)
	if perr != nil {
		writeJSON(w, http.StatusBadRequest, perr)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to upgrade connection")
		return
	}

	c := newConnection(s, ws)
	if !s.register(c) {
		c.cancel()
		_ = ws.Close()
		return
	}
	c.start()
}

// requestID returns the id of a request that may have failed to decode.
func requestID(req *protocol.RankRequest) string {
	if req == nil {
		return ""
	}
	return req.ID
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
