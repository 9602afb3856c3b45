package app

import (
	"fmt"
	"sync"

	"github.com/locksetdev/vault/internal/auth"
	connectionsHTTP "github.com/locksetdev/vault/internal/connections/http"
	"github.com/locksetdev/vault/internal/http"
	secretsHTTP "github.com/locksetdev/vault/internal/secrets/http"
)

// serverComponents groups the HTTP-facing dependencies.
type serverComponents struct {
	verifier      *auth.Verifier
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	verifierInit      sync.Once
	httpServerInit    sync.Once
	metricsServerInit sync.Once
}

// Verifier returns the request signature verifier, or nil when no public
// key is configured (local development only).
func (c *Container) Verifier() (*auth.Verifier, error) {
	c.servers.verifierInit.Do(func() {
		if c.config.AuthPublicKey == "" {
			return
		}

		verifier, err := auth.NewVerifier(c.config.AuthPublicKey, c.config.AuthTimestampWindow)
		if err != nil {
			c.initErrors["verifier"] = fmt.Errorf("failed to create signature verifier: %w", err)
			return
		}
		c.servers.verifier = verifier
	})
	if storedErr, exists := c.initErrors["verifier"]; exists {
		return nil, storedErr
	}
	return c.servers.verifier, nil
}

// HTTPServer returns the API server with all routes registered.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.servers.httpServerInit.Do(func() {
		logger := c.Logger()

		db, err := c.DB()
		if err != nil {
			c.initErrors["httpServer"] = fmt.Errorf("failed to get database for http server: %w", err)
			return
		}

		verifier, err := c.Verifier()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}

		metricsProvider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}

		secretUseCase, err := c.SecretUseCase()
		if err != nil {
			c.initErrors["httpServer"] = fmt.Errorf("failed to get secret use case for http server: %w", err)
			return
		}

		connectionUseCase, err := c.ConnectionUseCase()
		if err != nil {
			c.initErrors["httpServer"] = fmt.Errorf("failed to get connection use case for http server: %w", err)
			return
		}

		server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
		server.SetupRouter(
			c.config,
			verifier,
			metricsProvider,
			secretsHTTP.NewSecretHandler(secretUseCase, logger),
			connectionsHTTP.NewConnectionHandler(connectionUseCase, logger),
		)

		c.servers.httpServer = server
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.servers.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are
// disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.servers.metricsServerInit.Do(func() {
		metricsProvider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		if metricsProvider == nil {
			return
		}

		c.servers.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			metricsProvider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.servers.metricsServer, nil
}
