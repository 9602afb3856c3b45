package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	cryptoUseCase "github.com/locksetdev/vault/internal/crypto/usecase"
)

// RunRemoveKek deletes a Key Encryption Key from the catalog. Removal is
// refused while any DEK is still wrapped under the KEK, so data encrypted
// under it can never be orphaned.
//
// Requirements: Database must be migrated and accessible.
func RunRemoveKek(
	ctx context.Context,
	kekUseCase cryptoUseCase.KekUseCase,
	logger *slog.Logger,
	writer io.Writer,
	kekIDStr string,
) error {
	kekID, err := uuid.Parse(kekIDStr)
	if err != nil {
		return fmt.Errorf("invalid KEK ID: %w", err)
	}

	logger.Info("removing KEK", slog.String("kek_id", kekID.String()))

	if err := kekUseCase.Remove(ctx, kekID); err != nil {
		return fmt.Errorf("failed to remove KEK: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "KEK %s removed successfully\n", kekID)

	logger.Info("KEK removed successfully", slog.String("kek_id", kekID.String()))
	return nil
}
