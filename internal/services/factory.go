package services

import (
	"context"
	"fmt"

	"restaurant-pos-store/internal/database"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	ProductService  ProductService
	SettingsService SettingsService
	SaleService     SaleService
	SnapshotService SnapshotService

	store Store
}

// DiagnosticReport summarizes the state of the database file
type DiagnosticReport struct {
	Health      *database.HealthStatus `json:"health"`
	OrphanItems int64                  `json:"orphan_items"`
}

// Healthy reports whether the database answered and holds no orphaned items
func (r *DiagnosticReport) Healthy() bool {
	return r.Health != nil && r.Health.Healthy && r.OrphanItems == 0
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(store Store) (*ServiceContainer, error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}

	return &ServiceContainer{
		ProductService:  NewProductService(store),
		SettingsService: NewSettingsService(store),
		SaleService:     NewSaleService(store),
		SnapshotService: NewSnapshotService(store),
		store:           store,
	}, nil
}

// Validate validates that all services are properly initialized
func (sc *ServiceContainer) Validate() error {
	if sc.ProductService == nil {
		return fmt.Errorf("product service is nil")
	}
	if sc.SettingsService == nil {
		return fmt.Errorf("settings service is nil")
	}
	if sc.SaleService == nil {
		return fmt.Errorf("sale service is nil")
	}
	if sc.SnapshotService == nil {
		return fmt.Errorf("snapshot service is nil")
	}
	return nil
}

// Diagnose checks connectivity, the schema and sale item integrity
func (sc *ServiceContainer) Diagnose(ctx context.Context) (*DiagnosticReport, error) {
	report := &DiagnosticReport{Health: sc.store.Health(ctx)}
	if !report.Health.Healthy {
		return report, nil
	}

	orphans, err := sc.store.CountOrphanItems(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to count orphan items: %w", err)
	}
	report.OrphanItems = orphans

	return report, nil
}
