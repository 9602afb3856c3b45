package app

import (
	"fmt"
	"sync"

	secretsRepository "github.com/locksetdev/vault/internal/secrets/repository"
	secretsUseCase "github.com/locksetdev/vault/internal/secrets/usecase"
)

// secretComponents groups the secret domain dependencies.
type secretComponents struct {
	repo    secretsUseCase.SecretRepository
	useCase secretsUseCase.SecretUseCase

	repoInit    sync.Once
	useCaseInit sync.Once
}

// SecretRepository returns the secret repository instance.
func (c *Container) SecretRepository() (secretsUseCase.SecretRepository, error) {
	c.secrets.repoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["secretRepo"] = fmt.Errorf("failed to get database for secret repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.secrets.repo = secretsRepository.NewMySQLSecretRepository(db)
		case "postgres":
			c.secrets.repo = secretsRepository.NewPostgreSQLSecretRepository(db)
		default:
			c.initErrors["secretRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["secretRepo"]; exists {
		return nil, storedErr
	}
	return c.secrets.repo, nil
}

// SecretUseCase returns the secret use case wrapped with operation metrics.
func (c *Container) SecretUseCase() (secretsUseCase.SecretUseCase, error) {
	c.secrets.useCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["secretUseCase"] = fmt.Errorf("failed to get tx manager for secret use case: %w", err)
			return
		}

		secretRepo, err := c.SecretRepository()
		if err != nil {
			c.initErrors["secretUseCase"] = fmt.Errorf("failed to get secret repository for secret use case: %w", err)
			return
		}

		dekUseCase, err := c.DekUseCase()
		if err != nil {
			c.initErrors["secretUseCase"] = fmt.Errorf("failed to get dek use case for secret use case: %w", err)
			return
		}

		dekAlgorithm, err := c.DekAlgorithm()
		if err != nil {
			c.initErrors["secretUseCase"] = err
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["secretUseCase"] = fmt.Errorf("failed to get business metrics for secret use case: %w", err)
			return
		}

		useCase := secretsUseCase.NewSecretUseCase(
			txManager,
			secretRepo,
			dekUseCase,
			c.Envelope(),
			dekAlgorithm,
		)
		c.secrets.useCase = secretsUseCase.NewSecretUseCaseWithMetrics(useCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["secretUseCase"]; exists {
		return nil, storedErr
	}
	return c.secrets.useCase, nil
}
