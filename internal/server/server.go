// Package server exposes the mosque API over HTTP. Every data-returning
// endpoint sits behind the rate-limit middleware; health, stats and
// metrics stay exempt so monitoring keeps working even under load.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Otabek9528/mosque-api/internal/metrics"
	"github.com/Otabek9528/mosque-api/internal/ratelimit"
	"github.com/Otabek9528/mosque-api/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP API server. It owns route wiring and translation
// between HTTP and the service layer.
type Server struct {
	log      *slog.Logger        // Logger for request and lifecycle events
	service  service.Interface   // Proximity query planner
	limiter  *ratelimit.Limiter  // Admission control for data endpoints
	metrics  *metrics.Metrics    // Application metrics
	gatherer prometheus.Gatherer // Registry exposed on /metrics
	version  string              // Service version reported by /health

	server *http.Server
}

// New creates a new Server instance wired to the given collaborators.
func New(
	log *slog.Logger,
	svc service.Interface,
	limiter *ratelimit.Limiter,
	appMetrics *metrics.Metrics,
	gatherer prometheus.Gatherer,
	version string,
) *Server {
	return &Server{
		log:      log,
		service:  svc,
		limiter:  limiter,
		metrics:  appMetrics,
		gatherer: gatherer,
		version:  version,
	}
}

// Run starts the HTTP server on the given port and blocks until the
// context is canceled, then shuts the server down gracefully.
func (s *Server) Run(ctx context.Context, port int) error {
	const (
		readTimeout     = 5 * time.Second
		writeTimeout    = 10 * time.Second
		shutdownTimeout = 10 * time.Second
	)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.setupRouter(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.InfoContext(ctx, "API server started", "port", port)

	select {
	case err := <-errCh:
		return fmt.Errorf("API server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down API server: %w", err)
	}

	return nil
}

// setupRouter wires all routes. CORS is fully permissive because the API
// serves browser-based clients from arbitrary origins.
func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(s.requestMetrics())

	router.GET("/health", s.health)
	router.GET("/stats", s.stats)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	limited := router.Group("", s.rateLimit())
	{
		limited.GET("/pois/nearby", s.nearby)
		limited.GET("/pois/by-address", s.byAddress)
		limited.GET("/poi/:id", s.details)
	}

	return router
}
