package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	cryptoUseCase "github.com/locksetdev/vault/internal/crypto/usecase"
)

// RunRegisterKek registers a new Key Encryption Key referencing an external
// KMS key URI. The URI is validated and resolvable against the KMS only when
// a DEK is first wrapped under it; registration itself only catalogs the
// reference. Newly registered KEKs become the wrapping key for future DEKs.
//
// Requirements: Database must be migrated and accessible.
func RunRegisterKek(
	ctx context.Context,
	kekUseCase cryptoUseCase.KekUseCase,
	logger *slog.Logger,
	writer io.Writer,
	kmsKey string,
) error {
	kmsKey = strings.TrimSpace(kmsKey)
	if kmsKey == "" {
		return fmt.Errorf("kms-key is required (e.g., awskms://..., gcpkms://..., base64key://...)")
	}

	logger.Info("registering new KEK", slog.String("kms_key", kmsKey))

	kek, err := kekUseCase.Register(ctx, kmsKey)
	if err != nil {
		return fmt.Errorf("failed to register KEK: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "KEK registered successfully\n")
	_, _ = fmt.Fprintf(writer, "ID:         %s\n", kek.ID)
	_, _ = fmt.Fprintf(writer, "KMS Key:    %s\n", kek.KmsKey)
	_, _ = fmt.Fprintf(writer, "Created At: %s\n", kek.CreatedAt.Format(time.RFC3339))

	logger.Info("KEK registered successfully",
		slog.String("kek_id", kek.ID.String()),
	)

	return nil
}
