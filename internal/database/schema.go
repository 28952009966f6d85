package database

import (
	"context"
	_ "embed"
	"fmt"

	"restaurant-pos-store/internal/models"
	"restaurant-pos-store/internal/repositories"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

//go:embed schema.sql
var schemaSQL string

// ExpectedTables lists the tables Initialize creates.
var ExpectedTables = []string{
	"settings",
	"products",
	"sales",
	"sale_items",
}

const seedSettingsQuery = `
	INSERT OR IGNORE INTO settings (id, restaurant_name, currency, receipt_footer)
	VALUES (?, ?, ?, ?)`

// Initialize creates any missing tables and the seed settings row. It is
// safe to call on every startup; existing data is never touched.
func Initialize(ctx context.Context, db *sqlx.DB, logger *logrus.Logger) error {
	if logger == nil {
		logger = logrus.New()
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		logger.WithError(err).Error("Failed to create schema")
		return repositories.NewRepositoryError("initialize", "schema", "", err)
	}

	result, err := db.ExecContext(ctx, seedSettingsQuery,
		models.SettingsID,
		models.DefaultRestaurantName,
		models.DefaultCurrency,
		models.DefaultReceiptFooter,
	)
	if err != nil {
		logger.WithError(err).Error("Failed to seed settings")
		return repositories.NewRepositoryError("seed", "settings", "1", err)
	}

	seeded, _ := result.RowsAffected()
	logger.WithFields(logrus.Fields{
		"tables":          len(ExpectedTables),
		"settings_seeded": seeded == 1,
	}).Debug("Schema initialized")

	return nil
}

// ValidateSchema checks that every expected table exists
func ValidateSchema(ctx context.Context, db *sqlx.DB, logger *logrus.Logger) error {
	if logger == nil {
		logger = logrus.New()
	}

	for _, table := range ExpectedTables {
		var count int
		query := `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`
		if err := db.GetContext(ctx, &count, query, table); err != nil {
			return repositories.NewRepositoryError("validate", "schema", table, err)
		}
		if count == 0 {
			return repositories.NewRepositoryError("validate", "schema", table,
				fmt.Errorf("expected table %s not found", table))
		}
	}

	var fkEnabled int
	if err := db.GetContext(ctx, &fkEnabled, "PRAGMA foreign_keys"); err != nil {
		return repositories.NewRepositoryError("validate", "schema", "", err)
	}
	if fkEnabled != 1 {
		logger.Warn("Foreign keys are not enabled")
	}

	return nil
}
