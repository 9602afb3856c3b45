package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	cryptoUseCase "github.com/locksetdev/vault/internal/crypto/usecase"
)

// RunRotateDek generates a new Data Encryption Key under the most recently
// registered KEK and makes it the active key for subsequent writes. Existing
// DEKs stay valid for decrypting data written under them.
//
// Requirements: Database must be migrated and at least one KEK registered.
func RunRotateDek(
	ctx context.Context,
	dekUseCase cryptoUseCase.DekUseCase,
	logger *slog.Logger,
	writer io.Writer,
	algorithmStr string,
) error {
	logger.Info("rotating DEK", slog.String("algorithm", algorithmStr))

	algorithm, err := parseAlgorithm(algorithmStr)
	if err != nil {
		return err
	}

	dek, err := dekUseCase.Rotate(ctx, algorithm)
	if err != nil {
		return fmt.Errorf("failed to rotate DEK: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "DEK rotated successfully\n")
	_, _ = fmt.Fprintf(writer, "ID:         %s\n", dek.ID)
	_, _ = fmt.Fprintf(writer, "Key ID:     %s\n", dek.KeyID)
	_, _ = fmt.Fprintf(writer, "KEK ID:     %s\n", dek.KekID)
	_, _ = fmt.Fprintf(writer, "Algorithm:  %s\n", dek.Algorithm)
	_, _ = fmt.Fprintf(writer, "Created At: %s\n", dek.CreatedAt.Format(time.RFC3339))

	logger.Info("DEK rotated successfully",
		slog.String("dek_id", dek.ID.String()),
		slog.String("algorithm", string(dek.Algorithm)),
	)

	return nil
}
