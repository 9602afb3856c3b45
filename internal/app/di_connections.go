package app

import (
	"fmt"
	"sync"

	connectionsRepository "github.com/locksetdev/vault/internal/connections/repository"
	connectionsUseCase "github.com/locksetdev/vault/internal/connections/usecase"
)

// connectionComponents groups the vault connection domain dependencies.
type connectionComponents struct {
	repo    connectionsUseCase.ConnectionRepository
	useCase connectionsUseCase.ConnectionUseCase

	repoInit    sync.Once
	useCaseInit sync.Once
}

// ConnectionRepository returns the vault connection repository instance.
func (c *Container) ConnectionRepository() (connectionsUseCase.ConnectionRepository, error) {
	c.connections.repoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["connectionRepo"] = fmt.Errorf("failed to get database for connection repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.connections.repo = connectionsRepository.NewMySQLConnectionRepository(db)
		case "postgres":
			c.connections.repo = connectionsRepository.NewPostgreSQLConnectionRepository(db)
		default:
			c.initErrors["connectionRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["connectionRepo"]; exists {
		return nil, storedErr
	}
	return c.connections.repo, nil
}

// ConnectionUseCase returns the vault connection use case wrapped with
// operation metrics.
func (c *Container) ConnectionUseCase() (connectionsUseCase.ConnectionUseCase, error) {
	c.connections.useCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["connectionUseCase"] = fmt.Errorf("failed to get tx manager for connection use case: %w", err)
			return
		}

		connRepo, err := c.ConnectionRepository()
		if err != nil {
			c.initErrors["connectionUseCase"] = fmt.Errorf("failed to get connection repository for connection use case: %w", err)
			return
		}

		dekUseCase, err := c.DekUseCase()
		if err != nil {
			c.initErrors["connectionUseCase"] = fmt.Errorf("failed to get dek use case for connection use case: %w", err)
			return
		}

		dekAlgorithm, err := c.DekAlgorithm()
		if err != nil {
			c.initErrors["connectionUseCase"] = err
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["connectionUseCase"] = fmt.Errorf("failed to get business metrics for connection use case: %w", err)
			return
		}

		useCase := connectionsUseCase.NewConnectionUseCase(
			txManager,
			connRepo,
			dekUseCase,
			c.Envelope(),
			dekAlgorithm,
		)
		c.connections.useCase = connectionsUseCase.NewConnectionUseCaseWithMetrics(useCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["connectionUseCase"]; exists {
		return nil, storedErr
	}
	return c.connections.useCase, nil
}
