package repositories

import (
	"context"

	"restaurant-pos-store/internal/models"
)

// ProductRepository defines catalog operations
type ProductRepository interface {
	// List returns every product, most recently added first
	List(ctx context.Context) ([]*models.Product, error)

	// Create inserts a product and returns the stored row
	Create(ctx context.Context, product *models.Product) (*models.Product, error)

	// Delete removes a product; unknown ids are ignored
	Delete(ctx context.Context, id int64) error

	// Count returns the number of catalog entries
	Count(ctx context.Context) (int64, error)
}

// SettingsRepository defines operations on the settings singleton
type SettingsRepository interface {
	// Get returns the singleton row
	Get(ctx context.Context) (*models.Settings, error)

	// Save replaces every field of the singleton row
	Save(ctx context.Context, settings *models.Settings) error
}

// SaleRepository defines operations on sales and their items
type SaleRepository interface {
	// Create records a sale header and its items atomically, returning the new id
	Create(ctx context.Context, sale *models.Sale) (int64, error)

	// List returns every sale with its items, most recent first
	List(ctx context.Context) ([]*models.Transaction, error)

	// Delete removes a sale and its items; unknown ids are ignored
	Delete(ctx context.Context, id int64) error

	// CountItems returns the number of stored items for a sale
	CountItems(ctx context.Context, saleID int64) (int64, error)

	// CountOrphanItems returns items whose sale no longer exists
	CountOrphanItems(ctx context.Context) (int64, error)
}

// AnalyticsRepository computes read-only aggregates over sales
type AnalyticsRepository interface {
	// Get returns all dashboard aggregates computed from one consistent read
	Get(ctx context.Context) (*models.AnalyticsData, error)
}
