// Package server exposes the optimizer over HTTP.
//
// Routes:
//
//	POST /v1/optimize     body is a command document; returns the optimized
//	                      document or a rendered artifact (?format=)
//	GET  /v1/jobs         recent jobs, newest first
//	GET  /v1/jobs/{id}    one job record
//	GET  /v1/ws           websocket; each text frame is optimized in turn
//	GET  /healthz         liveness and build info
//
// Errors are JSON objects {code, message, fragments} with a status derived
// from the error code. The server can advertise itself on the local network
// as _penpath._tcp over mDNS.
package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/penpath/pkg/jobs"
	"github.com/matzehuels/penpath/pkg/pipeline"
)

// Defaults for [Config].
const (
	DefaultAddr           = ":8080"
	DefaultMaxBodyBytes   = 8 << 20
	DefaultRequestTimeout = 60 * time.Second
	shutdownTimeout       = 10 * time.Second
)

// Config configures a [Server].
type Config struct {
	Addr           string
	MaxBodyBytes   int64
	RequestTimeout time.Duration
	MDNS           bool
	Instance       string // mDNS instance name; hostname if empty
}

// SetDefaults fills zero fields.
func (c *Config) SetDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
}

// Server serves the optimizer API.
type Server struct {
	runner   *pipeline.Runner
	jobs     jobs.Store
	logger   *log.Logger
	cfg      Config
	router   chi.Router
	upgrader websocket.Upgrader
}

// New creates a server. A nil store falls back to an in-memory one and a
// nil logger discards output.
func New(runner *pipeline.Runner, store jobs.Store, logger *log.Logger, cfg Config) *Server {
	cfg.SetDefaults()
	if store == nil {
		store = jobs.NewMemoryStore()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{
		runner: runner,
		jobs:   store,
		logger: logger,
		cfg:    cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/ws", s.handleWebsocket)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(s.cfg.RequestTimeout))
			r.Post("/optimize", s.handleOptimize)
			r.Get("/jobs", s.handleListJobs)
			r.Get("/jobs/{id}", s.handleGetJob)
		})
	})
	return r
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is like [Server.ListenAndServe] on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.cfg.MDNS {
		port := ln.Addr().(*net.TCPAddr).Port
		adv, err := Advertise(s.cfg.Instance, port)
		if err != nil {
			s.logger.Warn("mdns advertisement failed", "err", err)
		} else {
			s.logger.Info("advertising", "service", ServiceType, "port", port)
			defer adv.Shutdown()
		}
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
