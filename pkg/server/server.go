// Package server exposes blueprint editing over HTTP.
//
// Documents live in a [store.Store]. A document is loaded into a session on
// first use and stays resident; every request on a document holds the
// session lock for its whole read-modify-write, and each successful mutation
// is persisted before the response is written. Requests on different
// documents run in parallel.
//
// Routes:
//
//	POST   /blueprints                      import a blueprint document
//	GET    /blueprints                      list ids
//	GET    /blueprints/{id}                 linearized blueprint document
//	DELETE /blueprints/{id}                 delete a document
//	GET    /blueprints/{id}/tree            hierarchy forest
//	POST   /blueprints/{id}/structures      add a structure
//	DELETE /blueprints/{id}/structures/{sid} remove a structure
//	POST   /blueprints/{id}/dock            dock two ports
//	POST   /blueprints/{id}/undock          undock a port
//	GET    /healthz
//	GET    /metrics                         when a registry is configured
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/catalog"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/store"
)

// maxDocumentBytes bounds request bodies.
const maxDocumentBytes = 8 << 20

// Options configures a Server.
type Options struct {
	Store   store.Store
	Catalog *catalog.Catalog // nil selects catalog.Default()
	Logger  *log.Logger      // nil selects log.Default()
	// Registry is served on /metrics when set.
	Registry *prometheus.Registry
}

// Server is the HTTP editing service.
type Server struct {
	store    store.Store
	catalog  *catalog.Catalog
	logger   *log.Logger
	registry *prometheus.Registry

	mu       sync.Mutex
	sessions map[string]*session
}

// New creates a Server. opts.Store is required.
func New(opts Options) *Server {
	s := &Server{
		store:    opts.Store,
		catalog:  opts.Catalog,
		logger:   opts.Logger,
		registry: opts.Registry,
		sessions: make(map[string]*session),
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	if s.registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	r.Route("/blueprints", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Get("/tree", s.handleTree)
			r.Post("/structures", s.handleAddStructure)
			r.Delete("/structures/{sid}", s.handleRemoveStructure)
			r.Post("/dock", s.handleDock)
			r.Post("/undock", s.handleUndock)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
