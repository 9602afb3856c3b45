// Package http provides the HTTP API server, the metrics server and the
// shared middleware stack.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/locksetdev/vault/internal/auth"
	"github.com/locksetdev/vault/internal/config"
	connectionsHTTP "github.com/locksetdev/vault/internal/connections/http"
	"github.com/locksetdev/vault/internal/metrics"
	secretsHTTP "github.com/locksetdev/vault/internal/secrets/http"
)

// Server represents the main HTTP API server.
type Server struct {
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
	db     *sql.DB
}

// NewServer creates a new HTTP server. Call SetupRouter before Start to
// register the API routes.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the Gin engine with the middleware stack and registers
// all API routes.
//
// A nil verifier disables request signature verification; this is intended
// for local development only. Health and readiness endpoints are always
// unauthenticated.
func (s *Server) SetupRouter(
	cfg *config.Config,
	verifier *auth.Verifier,
	metricsProvider *metrics.Provider,
	secretHandler *secretsHTTP.SecretHandler,
	connectionHandler *connectionsHTTP.ConnectionHandler,
) {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsEnabled && metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	if verifier != nil {
		v1.Use(auth.SignatureMiddleware(verifier, s.logger))
	} else {
		s.logger.Warn("request signature verification is disabled - all API requests are accepted")
	}
	if cfg.RateLimitEnabled {
		v1.Use(RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	secrets := v1.Group("/secrets")
	{
		secrets.POST("", secretHandler.CreateHandler)
		secrets.GET("", secretHandler.ListHandler)
		secrets.GET("/:name", secretHandler.GetHandler)
		secrets.DELETE("/:name", secretHandler.DeleteHandler)
		secrets.POST("/:name/versions", secretHandler.CreateVersionHandler)
		secrets.GET("/:name/versions/:tag", secretHandler.GetVersionHandler)
		secrets.DELETE("/:name/versions/:tag", secretHandler.DeleteVersionHandler)
	}

	connections := v1.Group("/vault-connections")
	{
		connections.POST("", connectionHandler.CreateHandler)
		connections.GET("/:public_id", connectionHandler.GetHandler)
		connections.PUT("/:public_id", connectionHandler.UpdateHandler)
		connections.DELETE("/:public_id", connectionHandler.DeleteHandler)
	}

	s.router = router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, checking
// each dependency individually.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			components["database"] = "error"
			ready = false
		} else {
			components["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// GetHandler returns the router as an http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
