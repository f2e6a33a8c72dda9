// Package server exposes the kitchen configurator over HTTP.
//
// Stateless endpoints plan, price and render a module list in one call.
// Session endpoints keep a configurator alive between calls so a browser
// can stream pointer events at it and redraw from each returned scene.
//
// All responses are JSON except rendered SVG. Errors carry the code of the
// underlying [errors.Error]:
//
//	{"code": "MODULE_NOT_FOUND", "message": "unknown module \"ghost\""}
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/kitchenrun/pkg/catalog"
	"github.com/matzehuels/kitchenrun/pkg/pipeline"
	"github.com/matzehuels/kitchenrun/pkg/session"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	catalog  *catalog.Catalog
	sessions session.Store
	logger   *log.Logger
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithCatalog serves c instead of the built-in catalog.
func WithCatalog(c *catalog.Catalog) Option { return func(s *Server) { s.catalog = c } }

// WithSessions uses store for configurator sessions.
func WithSessions(store session.Store) Option { return func(s *Server) { s.sessions = store } }

// WithLogger sets the request and error logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// New creates a server that renders through runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{runner: runner}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	if s.sessions == nil {
		s.sessions = session.NewMemoryStore(session.DefaultTTL)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Post("/plan", s.handlePlan)
		r.Post("/price", s.handlePrice)
		r.Post("/render", s.handleRender)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleDeleteSession)
				r.Get("/render", s.handleRenderSession)
				r.Post("/modules", s.handleAddModule)
				r.Delete("/modules/{index}", s.handleRemoveModule)
				r.Put("/selection", s.handleSetSelection)
				r.Post("/reorder", s.handleReorder)
				r.Post("/list-drag", s.handleListDrag)
				r.Post("/pointer", s.handlePointer)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErrorStatus(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
	})
	return r
}

// ServeConfig tunes [Server.ListenAndServe].
type ServeConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, cfg ServeConfig) error {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if store, ok := s.sessions.(*session.MemoryStore); ok {
		go store.RunCleanup(ctx, time.Minute)
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
