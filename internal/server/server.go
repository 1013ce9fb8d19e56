// Package server exposes the drawing engine over HTTP.
//
// Routes:
//
//	GET    /healthz          liveness and build version
//	POST   /synthesize       {shape, n, k, variant} -> drawing with crossing summary
//	POST   /crossings        drawing -> crossing list and summary
//	POST   /render?format=   drawing -> dot, svg, pdf or png
//	GET    /snapshots        stored snapshots, newest last
//	POST   /snapshots        {label, drawing} -> stored snapshot
//	GET    /snapshots/{id}   one snapshot with its drawing
//	DELETE /snapshots/{id}
//
// Errors are JSON objects {code, kind, message}. Rejected input answers 400,
// unsatisfiable synthesis requests 422 and unknown snapshots 404.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/thrackle/pkg/cache"
	"github.com/matzehuels/thrackle/pkg/history"
	"github.com/matzehuels/thrackle/pkg/thrackle"
	"github.com/matzehuels/thrackle/pkg/thrackle/synth"
)

// Options configures a Server.
type Options struct {
	Synthesizer *synth.Synthesizer
	GraphOpts   thrackle.Options

	Cache    cache.Cache // Nil disables caching
	Keyer    cache.Keyer
	CacheTTL time.Duration
	// KeyOpts fills in placement fields of drawing cache keys.
	KeyOpts func(synth.Request) cache.DrawingKeyOpts

	Store history.Store // Nil disables the snapshot routes

	Timeout time.Duration // Per-request timeout; zero means none
	Logger  *log.Logger
}

// Server handles HTTP requests.
type Server struct {
	opts   Options
	router chi.Router
	logger *log.Logger
}

// New creates a Server with its routes mounted.
func New(opts Options) *Server {
	if opts.Synthesizer == nil {
		opts.Synthesizer = synth.New(synth.DefaultOptions())
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewScopedKeyer(nil, "server:")
	}
	if opts.KeyOpts == nil {
		opts.KeyOpts = func(r synth.Request) cache.DrawingKeyOpts {
			return cache.DrawingKeyOpts{Shape: r.Shape, N: r.N, K: r.K, Variant: r.Variant}
		}
	}
	s := &Server{opts: opts, logger: opts.Logger}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	if s.opts.Timeout > 0 {
		r.Use(middleware.Timeout(s.opts.Timeout))
	}

	r.Get("/healthz", s.handleHealth)
	r.Post("/synthesize", s.handleSynthesize)
	r.Post("/crossings", s.handleCrossings)
	r.Post("/render", s.handleRender)

	if s.opts.Store != nil {
		r.Route("/snapshots", func(r chi.Router) {
			r.Get("/", s.handleListSnapshots)
			r.Post("/", s.handleSaveSnapshot)
			r.Get("/{id}", s.handleGetSnapshot)
			r.Delete("/{id}", s.handleDeleteSnapshot)
		})
	}
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Serve accepts connections on l until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout.
func (s *Server) Serve(ctx context.Context, l net.Listener, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Handler:           http.MaxBytesHandler(s, 8<<20),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(l)
	}()

	select {
	case err := <-done:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.logger.Info("listening", "addr", l.Addr().String())
	return s.Serve(ctx, l, shutdownTimeout)
}
