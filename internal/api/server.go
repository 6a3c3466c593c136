// Package api wires the oracle's read-only HTTP surface: health,
// current snapshot, per-symbol proofs, and registry introspection.
// Grounded in the teacher's internal/api/server.go router/middleware
// assembly; the route table is new, since the teacher's vault routes
// have no equivalent here.
package api

import (
	"fmt"
	"net/http"
	"time"

	_ "github.com/orally-network/price-oracle/docs"
	"github.com/orally-network/price-oracle/internal/api/handlers"
	"github.com/orally-network/price-oracle/internal/api/middleware"
	"github.com/orally-network/price-oracle/internal/config"
	"github.com/orally-network/price-oracle/internal/merkletree"
	"github.com/orally-network/price-oracle/internal/registry"
	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Server is the oracle's HTTP server.
type Server struct {
	store    *merkletree.Store
	registry *registry.Registry
	logger   lgr.L
	config   *config.ServerConfig
}

// NewServer creates a new HTTP server over store and reg.
func NewServer(store *merkletree.Store, reg *registry.Registry, logger lgr.L, cfg *config.ServerConfig) *Server {
	return &Server{
		store:    store,
		registry: reg,
		logger:   logger,
		config:   cfg,
	}
}

// SetupRoutes configures all HTTP routes and middleware.
func (s *Server) SetupRoutes() http.Handler {
	healthHandler := handlers.NewHealthHandler(s.logger)
	oracleHandler := handlers.NewOracleHandler(s.store, s.registry, s.logger)

	router := routegroup.New(http.NewServeMux())

	router.Use(rest.RealIP)
	router.Use(rest.Trace)
	router.Use(rest.SizeLimit(1024 * 1024))
	router.Use(middleware.Logging(s.logger))
	router.Use(middleware.Recovery(s.logger))
	router.Use(rest.AppInfo("price-oracle", "orally-network", "1.0.0"))
	router.Use(rest.Ping)

	router.HandleFunc("GET /health", healthHandler.HandleHealth)
	router.HandleFunc("GET /swagger/*", httpSwagger.Handler())

	router.Group().Mount("/api").Route(func(apiRouter *routegroup.Bundle) {
		apiRouter.HandleFunc("GET /snapshot", oracleHandler.HandleSnapshot)
		apiRouter.HandleFunc("GET /assets/{symbol}", oracleHandler.HandleAsset)
		apiRouter.HandleFunc("GET /chains/{chainId}/subscriptions", oracleHandler.HandleChainSubscriptions)
	})

	return router
}

// Start starts the HTTP server with the teacher's security timeouts.
func (s *Server) Start() error {
	handler := s.SetupRoutes()
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Logf("INFO starting server on %s", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server.ListenAndServe()
}
