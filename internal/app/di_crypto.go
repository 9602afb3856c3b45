package app

import (
	"fmt"
	"sync"

	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
	cryptoRepository "github.com/locksetdev/vault/internal/crypto/repository"
	cryptoService "github.com/locksetdev/vault/internal/crypto/service"
	cryptoUseCase "github.com/locksetdev/vault/internal/crypto/usecase"
)

// cryptoComponents groups the envelope encryption dependencies.
type cryptoComponents struct {
	keeperWrapper *cryptoService.KeeperWrapper
	envelope      cryptoService.Envelope
	dekCache      *cryptoUseCase.DekCache
	kekRepo       cryptoUseCase.KekRepository
	dekRepo       cryptoUseCase.DekRepository
	kekUseCase    cryptoUseCase.KekUseCase
	dekUseCase    cryptoUseCase.DekUseCase

	keeperWrapperInit sync.Once
	envelopeInit      sync.Once
	dekCacheInit      sync.Once
	kekRepoInit       sync.Once
	dekRepoInit       sync.Once
	kekUseCaseInit    sync.Once
	dekUseCaseInit    sync.Once
}

// KeeperWrapper returns the KMS keeper wrapper used to wrap and unwrap DEKs.
func (c *Container) KeeperWrapper() *cryptoService.KeeperWrapper {
	c.crypto.keeperWrapperInit.Do(func() {
		c.crypto.keeperWrapper = cryptoService.NewKeeperWrapper()
	})
	return c.crypto.keeperWrapper
}

// Envelope returns the payload seal/open service.
func (c *Container) Envelope() cryptoService.Envelope {
	c.crypto.envelopeInit.Do(func() {
		c.crypto.envelope = cryptoService.NewEnvelope(cryptoService.NewAEADManager())
	})
	return c.crypto.envelope
}

// DekCache returns the process-local plaintext DEK cache.
func (c *Container) DekCache() *cryptoUseCase.DekCache {
	c.crypto.dekCacheInit.Do(func() {
		c.crypto.dekCache = cryptoUseCase.NewDekCache(c.config.DekCacheTTL)
	})
	return c.crypto.dekCache
}

// KekRepository returns the KEK repository instance.
func (c *Container) KekRepository() (cryptoUseCase.KekRepository, error) {
	c.crypto.kekRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["kekRepo"] = fmt.Errorf("failed to get database for kek repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.crypto.kekRepo = cryptoRepository.NewMySQLKekRepository(db)
		case "postgres":
			c.crypto.kekRepo = cryptoRepository.NewPostgreSQLKekRepository(db)
		default:
			c.initErrors["kekRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["kekRepo"]; exists {
		return nil, storedErr
	}
	return c.crypto.kekRepo, nil
}

// DekRepository returns the DEK repository instance.
func (c *Container) DekRepository() (cryptoUseCase.DekRepository, error) {
	c.crypto.dekRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["dekRepo"] = fmt.Errorf("failed to get database for dek repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.crypto.dekRepo = cryptoRepository.NewMySQLDekRepository(db)
		case "postgres":
			c.crypto.dekRepo = cryptoRepository.NewPostgreSQLDekRepository(db)
		default:
			c.initErrors["dekRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["dekRepo"]; exists {
		return nil, storedErr
	}
	return c.crypto.dekRepo, nil
}

// KekUseCase returns the KEK registry use case.
func (c *Container) KekUseCase() (cryptoUseCase.KekUseCase, error) {
	c.crypto.kekUseCaseInit.Do(func() {
		kekRepo, err := c.KekRepository()
		if err != nil {
			c.initErrors["kekUseCase"] = fmt.Errorf("failed to get kek repository for kek use case: %w", err)
			return
		}
		c.crypto.kekUseCase = cryptoUseCase.NewKekUseCase(kekRepo)
	})
	if storedErr, exists := c.initErrors["kekUseCase"]; exists {
		return nil, storedErr
	}
	return c.crypto.kekUseCase, nil
}

// DekUseCase returns the DEK lifecycle use case.
func (c *Container) DekUseCase() (cryptoUseCase.DekUseCase, error) {
	c.crypto.dekUseCaseInit.Do(func() {
		kekRepo, err := c.KekRepository()
		if err != nil {
			c.initErrors["dekUseCase"] = fmt.Errorf("failed to get kek repository for dek use case: %w", err)
			return
		}

		dekRepo, err := c.DekRepository()
		if err != nil {
			c.initErrors["dekUseCase"] = fmt.Errorf("failed to get dek repository for dek use case: %w", err)
			return
		}

		c.crypto.dekUseCase = cryptoUseCase.NewDekUseCase(
			kekRepo,
			dekRepo,
			c.KeeperWrapper(),
			c.DekCache(),
			c.config.KMSTimeout,
		)
	})
	if storedErr, exists := c.initErrors["dekUseCase"]; exists {
		return nil, storedErr
	}
	return c.crypto.dekUseCase, nil
}

// DekAlgorithm returns the configured payload cipher for new DEKs.
func (c *Container) DekAlgorithm() (cryptoDomain.Algorithm, error) {
	switch c.config.DekAlgorithm {
	case "aes-gcm":
		return cryptoDomain.AESGCM, nil
	case "chacha20-poly1305":
		return cryptoDomain.ChaCha20, nil
	default:
		return "", fmt.Errorf(
			"invalid DEK algorithm: %s (valid options: aes-gcm, chacha20-poly1305)",
			c.config.DekAlgorithm,
		)
	}
}
