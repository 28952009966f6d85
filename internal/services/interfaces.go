package services

import (
	"context"

	"restaurant-pos-store/internal/database"
	"restaurant-pos-store/internal/models"
)

// Store is the subset of the data layer the services call
type Store interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	AddProduct(ctx context.Context, name string, price float64, unit string) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	GetSettings(ctx context.Context) (*models.Settings, error)
	SaveSettings(ctx context.Context, settings *models.Settings) error
	AddSale(ctx context.Context, items []models.SaleItem, totalAmount float64, currency string) (int64, error)
	ListTransactions(ctx context.Context) ([]*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
	CountOrphanItems(ctx context.Context) (int64, error)
	GetAnalytics(ctx context.Context) (*models.AnalyticsData, error)
	ExportSnapshot(ctx context.Context) ([]byte, error)
	ImportSnapshot(ctx context.Context, data []byte) error
	RestoreBackup(ctx context.Context) error
	Health(ctx context.Context) *database.HealthStatus
}

// ProductService defines catalog operations with input validation
type ProductService interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// SettingsService defines settings operations with input validation
type SettingsService interface {
	GetSettings(ctx context.Context) (*models.Settings, error)
	SaveSettings(ctx context.Context, req *SaveSettingsRequest) (*models.Settings, error)
}

// SaleService defines sale, transaction and analytics operations
type SaleService interface {
	RecordSale(ctx context.Context, req *RecordSaleRequest) (int64, error)
	ListTransactions(ctx context.Context) ([]*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
	GetAnalytics(ctx context.Context) (*models.AnalyticsData, error)
}

// SnapshotService moves database snapshots across text-only boundaries
type SnapshotService interface {
	// ExportBase64 returns the database file, base64 encoded
	ExportBase64(ctx context.Context) (string, error)
	// ImportBase64 decodes and imports a base64 encoded database file
	ImportBase64(ctx context.Context, encoded string) error
	// RestoreBackup restores the file saved by the last import
	RestoreBackup(ctx context.Context) error
}

// CreateProductRequest represents a request to add a catalog entry
type CreateProductRequest struct {
	Name  string  `json:"name" validate:"required,notblank,max=255"`
	Price float64 `json:"price" validate:"gte=0"`
	Unit  string  `json:"unit" validate:"omitempty,max=32"`
}

// SaleItemRequest is one line of a sale
type SaleItemRequest struct {
	Name     string  `json:"name" validate:"required,notblank,max=255"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity float64 `json:"quantity" validate:"gt=0"`
	Unit     string  `json:"unit" validate:"required,max=32"`
}

// RecordSaleRequest represents a completed order
type RecordSaleRequest struct {
	Products    []SaleItemRequest `json:"products" validate:"required,min=1,dive"`
	TotalAmount float64           `json:"total_amount" validate:"gte=0"`
	Currency    string            `json:"currency" validate:"required,max=8"`
}

// SaveSettingsRequest carries every settings field; absent fields are cleared
type SaveSettingsRequest struct {
	RestaurantName *string `json:"restaurant_name" validate:"omitempty,max=255"`
	Address        *string `json:"address" validate:"omitempty,max=500"`
	Phone          *string `json:"phone" validate:"omitempty,max=32"`
	Email          *string `json:"email" validate:"omitempty,email"`
	TaxRate        *string `json:"tax_rate" validate:"omitempty,numeric"`
	Currency       *string `json:"currency" validate:"omitempty,max=8"`
	OpeningTime    *string `json:"opening_time" validate:"omitempty,clock"`
	ClosingTime    *string `json:"closing_time" validate:"omitempty,clock"`
	ReceiptFooter  *string `json:"receipt_footer" validate:"omitempty,max=500"`
	Logo           *string `json:"logo"`
}
