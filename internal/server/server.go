// Package server exposes the radial chart pipeline over HTTP.
//
// Routes:
//
//	GET  /health               liveness and build version
//	GET  /api/v1/options       editable style options with defaults
//	POST /api/v1/transform     table -> segment records
//	POST /api/v1/render        table -> chart (?format=svg|json|png|pdf)
//
// A render whose data leaves nothing to draw answers 200 with an empty SVG
// and the X-Radial-Skipped header; malformed requests answer 400.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/radialstack/pkg/observability"
	"github.com/matzehuels/radialstack/pkg/pipeline"
)

// Defaults for Options fields left zero.
const (
	DefaultMaxBodyBytes = 8 << 20
	DefaultTimeout      = 60 * time.Second
	shutdownTimeout     = 15 * time.Second
)

// Options configure a Server.
type Options struct {
	CORSOrigins  []string
	MaxBodyBytes int64
	Timeout      time.Duration
}

// Server is the HTTP host.
type Server struct {
	router chi.Router
	runner *pipeline.Runner
	logger *log.Logger
	opts   Options
}

// New creates a server backed by runner. A nil logger uses the runner's.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	s := &Server{runner: runner, logger: logger, opts: opts}
	s.router = s.buildRouter()
	return s
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: s.opts.Timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		if err := httpSrv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.Timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", pipeline.SkippedHeader},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/options", s.handleOptions)
		r.Post("/transform", s.handleTransform)
		r.Post("/render", s.handleRender)
	})

	return r
}

// requestLogger logs each request and reports it to the server hooks.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.Server()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, dur)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", dur,
			"request_id", middleware.GetReqID(r.Context()))
	})
}
