package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	cryptoDomain "github.com/locksetdev/vault/internal/crypto/domain"
	cryptoUseCase "github.com/locksetdev/vault/internal/crypto/usecase"
)

// RunListKeks prints all registered Key Encryption Keys, newest first.
// Supports both text and JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunListKeks(
	ctx context.Context,
	kekUseCase cryptoUseCase.KekUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	keks, err := kekUseCase.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list KEKs: %w", err)
	}

	if format == "json" {
		if err := outputKeksJSON(writer, keks); err != nil {
			return err
		}
	} else {
		outputKeksText(writer, keks)
	}

	logger.Info("KEKs listed", slog.Int("count", len(keks)))
	return nil
}

// outputKeksText writes the KEK list in human-readable text format.
func outputKeksText(writer io.Writer, keks []*cryptoDomain.Kek) {
	_, _ = fmt.Fprintf(writer, "Found %d KEK(s)\n", len(keks))
	for _, kek := range keks {
		_, _ = fmt.Fprintln(writer)
		_, _ = fmt.Fprintf(writer, "ID:         %s\n", kek.ID)
		_, _ = fmt.Fprintf(writer, "KMS Key:    %s\n", kek.KmsKey)
		_, _ = fmt.Fprintf(writer, "Created At: %s\n", kek.CreatedAt.Format(time.RFC3339))
	}
}

// outputKeksJSON writes the KEK list in JSON format for machine consumption.
func outputKeksJSON(writer io.Writer, keks []*cryptoDomain.Kek) error {
	result := make([]map[string]any, 0, len(keks))
	for _, kek := range keks {
		result = append(result, map[string]any{
			"id":         kek.ID.String(),
			"kms_key":    kek.KmsKey,
			"created_at": kek.CreatedAt.Format(time.RFC3339),
		})
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
	return nil
}
