package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"restaurant-pos-store/internal/repositories"
)

// snapshotService implements the SnapshotService interface
type snapshotService struct {
	store Store
}

// NewSnapshotService creates a new snapshot service instance
func NewSnapshotService(store Store) SnapshotService {
	return &snapshotService{store: store}
}

// ExportBase64 returns the database file using standard base64
func (s *snapshotService) ExportBase64(ctx context.Context) (string, error) {
	data, err := s.store.ExportSnapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to export database: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// ImportBase64 decodes a standard base64 payload and imports it
func (s *snapshotService) ImportBase64(ctx context.Context, encoded string) error {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return repositories.ValidationError("snapshot", "", fmt.Errorf("snapshot payload is empty"))
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return repositories.ValidationError("snapshot", "", fmt.Errorf("invalid base64: %w", err))
	}

	if err := s.store.ImportSnapshot(ctx, data); err != nil {
		return fmt.Errorf("failed to import database: %w", err)
	}
	return nil
}

// RestoreBackup restores the database file saved by the last import
func (s *snapshotService) RestoreBackup(ctx context.Context) error {
	if err := s.store.RestoreBackup(ctx); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}
	return nil
}
