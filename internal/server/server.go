package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hongminglow/va-ops-be/internal/airline"
	"github.com/hongminglow/va-ops-be/internal/auth"
	"github.com/hongminglow/va-ops-be/internal/config"
	"github.com/hongminglow/va-ops-be/internal/http/handlers"
	"github.com/hongminglow/va-ops-be/internal/logger"
	"github.com/hongminglow/va-ops-be/internal/metrics"
	"github.com/hongminglow/va-ops-be/internal/middleware"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Ops      airline.Operations
	Sessions *auth.Registry
	Log      logger.Logger
	Metrics  *metrics.Metrics
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, deps Deps) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewHandler(cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// NewHandler builds the full middleware chain and route table.
func NewHandler(cfg config.Config, deps Deps) http.Handler {
	r := mux.NewRouter()

	handlers.NewHealthHandler(time.Now()).Register(r)
	r.Handle("/metrics", promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	handlers.NewAuthHandler(deps.Ops, deps.Sessions, deps.Log).Register(api)
	handlers.NewFlightHandler(deps.Ops).Register(api)
	handlers.NewReservationHandler(deps.Ops).Register(api)
	handlers.NewApplicationHandler(deps.Ops).Register(api)

	logged := middleware.Logging(deps.Log, deps.Metrics, r)
	return middleware.CORS(cfg.CORSOrigins, middleware.Sessions(deps.Sessions, deps.Log, logged))
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
