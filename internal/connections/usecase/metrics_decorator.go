package usecase

import (
	"context"
	"time"

	connectionsDomain "github.com/locksetdev/vault/internal/connections/domain"
	"github.com/locksetdev/vault/internal/metrics"
)

// connectionUseCaseWithMetrics decorates ConnectionUseCase with metrics
// instrumentation.
type connectionUseCaseWithMetrics struct {
	next    ConnectionUseCase
	metrics metrics.BusinessMetrics
}

// NewConnectionUseCaseWithMetrics wraps a ConnectionUseCase with metrics recording.
func NewConnectionUseCaseWithMetrics(useCase ConnectionUseCase, m metrics.BusinessMetrics) ConnectionUseCase {
	return &connectionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *connectionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "connections", operation, status)
	c.metrics.RecordDuration(ctx, "connections", operation, time.Since(start), status)
}

func (c *connectionUseCaseWithMetrics) Create(
	ctx context.Context,
	input *CreateConnectionInput,
) (*connectionsDomain.VaultConnection, error) {
	start := time.Now()
	conn, err := c.next.Create(ctx, input)
	c.record(ctx, "connection_create", start, err)
	return conn, err
}

func (c *connectionUseCaseWithMetrics) Get(
	ctx context.Context,
	publicID string,
) (*connectionsDomain.VaultConnection, error) {
	start := time.Now()
	conn, err := c.next.Get(ctx, publicID)
	c.record(ctx, "connection_get", start, err)
	return conn, err
}

func (c *connectionUseCaseWithMetrics) Update(
	ctx context.Context,
	publicID string,
	input *UpdateConnectionInput,
) (*connectionsDomain.VaultConnection, error) {
	start := time.Now()
	conn, err := c.next.Update(ctx, publicID, input)
	c.record(ctx, "connection_update", start, err)
	return conn, err
}

func (c *connectionUseCaseWithMetrics) Delete(ctx context.Context, publicID string) error {
	start := time.Now()
	err := c.next.Delete(ctx, publicID)
	c.record(ctx, "connection_delete", start, err)
	return err
}
