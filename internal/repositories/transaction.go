package repositories

import (
	"context"
)

// Transaction represents a database transaction that can be used across multiple repositories
type Transaction interface {
	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Context returns a context that routes repository calls through the transaction
	Context() context.Context
}

// TransactionManager manages database transactions
type TransactionManager interface {
	// BeginTransaction starts a new transaction
	BeginTransaction(ctx context.Context) (Transaction, error)

	// WithTransaction executes fn within a transaction. Repository calls made
	// with the context passed to fn join the transaction. fn returning an
	// error (or panicking) rolls everything back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// RepositoryManager provides access to all repositories and transaction management
type RepositoryManager interface {
	TransactionManager

	// Products returns the catalog repository
	Products() ProductRepository

	// Settings returns the settings repository
	Settings() SettingsRepository

	// Sales returns the sales repository
	Sales() SaleRepository

	// Analytics returns the analytics repository
	Analytics() AnalyticsRepository

	// Close closes the underlying connection
	Close() error

	// Health checks the health of the underlying connection
	Health(ctx context.Context) error
}
