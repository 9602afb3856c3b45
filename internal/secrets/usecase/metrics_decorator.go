package usecase

import (
	"context"
	"time"

	"github.com/locksetdev/vault/internal/metrics"
	secretsDomain "github.com/locksetdev/vault/internal/secrets/domain"
)

// secretUseCaseWithMetrics decorates SecretUseCase with metrics instrumentation.
type secretUseCaseWithMetrics struct {
	next    SecretUseCase
	metrics metrics.BusinessMetrics
}

// NewSecretUseCaseWithMetrics wraps a SecretUseCase with metrics recording.
func NewSecretUseCaseWithMetrics(useCase SecretUseCase, m metrics.BusinessMetrics) SecretUseCase {
	return &secretUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *secretUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "secrets", operation, status)
	s.metrics.RecordDuration(ctx, "secrets", operation, time.Since(start), status)
}

func (s *secretUseCaseWithMetrics) Create(
	ctx context.Context,
	input *CreateSecretInput,
) (*secretsDomain.Secret, *secretsDomain.SecretVersion, error) {
	start := time.Now()
	secret, version, err := s.next.Create(ctx, input)
	s.record(ctx, "secret_create", start, err)
	return secret, version, err
}

func (s *secretUseCaseWithMetrics) CreateVersion(
	ctx context.Context,
	name string,
	input *CreateVersionInput,
) (*secretsDomain.SecretVersion, error) {
	start := time.Now()
	version, err := s.next.CreateVersion(ctx, name, input)
	s.record(ctx, "secret_create_version", start, err)
	return version, err
}

func (s *secretUseCaseWithMetrics) GetCurrent(
	ctx context.Context,
	name string,
) (*secretsDomain.Secret, *secretsDomain.SecretVersion, error) {
	start := time.Now()
	secret, version, err := s.next.GetCurrent(ctx, name)
	s.record(ctx, "secret_get", start, err)
	return secret, version, err
}

func (s *secretUseCaseWithMetrics) GetVersion(
	ctx context.Context,
	name, versionTag string,
) (*secretsDomain.Secret, *secretsDomain.SecretVersion, error) {
	start := time.Now()
	secret, version, err := s.next.GetVersion(ctx, name, versionTag)
	s.record(ctx, "secret_get_version", start, err)
	return secret, version, err
}

func (s *secretUseCaseWithMetrics) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := s.next.Delete(ctx, name)
	s.record(ctx, "secret_delete", start, err)
	return err
}

func (s *secretUseCaseWithMetrics) SoftDeleteVersion(ctx context.Context, name, versionTag string) error {
	start := time.Now()
	err := s.next.SoftDeleteVersion(ctx, name, versionTag)
	s.record(ctx, "secret_delete_version", start, err)
	return err
}

func (s *secretUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*secretsDomain.Secret, error) {
	start := time.Now()
	secrets, err := s.next.List(ctx, offset, limit)
	s.record(ctx, "secret_list", start, err)
	return secrets, err
}
