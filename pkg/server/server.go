// Package server exposes boards and rosters over HTTP.
//
// The API is a thin layer over [pipeline.Runner] and [store.Store]:
//
//	GET    /healthz
//	GET    /v1/events
//	GET    /v1/events/{id}
//	PUT    /v1/events/{id}
//	DELETE /v1/events/{id}
//	GET    /v1/events/{id}/board?format=&day=&days=&extension_hours=&highlight=&refresh=
//	GET    /v1/events/{id}/qr
//	GET    /v1/events/{id}/watch
//	POST   /v1/events/{id}/games/{game}/join
//	POST   /v1/events/{id}/games/{game}/leave
//	POST   /v1/layout
//
// Errors are returned as JSON objects {"code": ..., "message": ...} with an
// HTTP status derived from the error code. Roster changes are pushed to
// clients connected to the watch endpoint over a WebSocket.
package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/signupboard/pkg/pipeline"
	"github.com/matzehuels/signupboard/pkg/schedule/store"
)

const (
	timeout         = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	store    store.Store
	logger   *log.Logger
	defaults pipeline.Options
	hub      *hub

	// rosterMu serializes read-modify-write cycles on events.
	rosterMu sync.Mutex
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaults sets the pipeline options board requests start from.
// Query parameters override them per request.
func WithDefaults(opts pipeline.Options) Option {
	return func(s *Server) { s.defaults = opts }
}

// New creates a server backed by runner and its store.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner: runner,
		store:  runner.Store,
		logger: log.New(io.Discard),
		hub:    newHub(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)

	r.Get("/healthz", s.health)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.layout)

		r.Get("/events", s.listEvents)
		r.Route("/events/{id}", func(r chi.Router) {
			r.Get("/", s.getEvent)
			r.Put("/", s.putEvent)
			r.Delete("/", s.deleteEvent)
			r.Get("/board", s.board)
			r.Get("/qr", s.qr)
			r.Get("/watch", s.watch)
			r.Post("/games/{game}/join", s.join)
			r.Post("/games/{game}/leave", s.leave)
		})
	})
	return r
}

// ListenAndServe serves on bind:port until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, bind string, port int) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(bind, strconv.Itoa(port)),
		Handler:           s.Handler(),
		IdleTimeout:       10 * time.Minute,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", "http://"+srv.Addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	s.hub.closeAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
