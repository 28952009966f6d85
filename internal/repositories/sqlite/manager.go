package sqlite

import (
	"context"

	"restaurant-pos-store/internal/repositories"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// SQLiteRepositoryManager implements the RepositoryManager interface for SQLite
type SQLiteRepositoryManager struct {
	db                 *sqlx.DB
	logger             *logrus.Logger
	productRepo        repositories.ProductRepository
	settingsRepo       repositories.SettingsRepository
	saleRepo           repositories.SaleRepository
	analyticsRepo      repositories.AnalyticsRepository
	transactionManager *SQLiteTransactionManager
}

// NewSQLiteRepositoryManager creates a repository manager over an open database
func NewSQLiteRepositoryManager(db *sqlx.DB, logger *logrus.Logger) repositories.RepositoryManager {
	if logger == nil {
		logger = logrus.New()
	}

	return &SQLiteRepositoryManager{
		db:                 db,
		logger:             logger,
		productRepo:        NewProductRepository(db, logger),
		settingsRepo:       NewSettingsRepository(db, logger),
		saleRepo:           NewSaleRepository(db, logger),
		analyticsRepo:      NewAnalyticsRepository(db, logger),
		transactionManager: NewSQLiteTransactionManager(db, logger),
	}
}

// BeginTransaction starts a new transaction
func (m *SQLiteRepositoryManager) BeginTransaction(ctx context.Context) (repositories.Transaction, error) {
	return m.transactionManager.BeginTransaction(ctx)
}

// WithTransaction executes a function within a transaction
func (m *SQLiteRepositoryManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.transactionManager.WithTransaction(ctx, fn)
}

// Products returns the catalog repository
func (m *SQLiteRepositoryManager) Products() repositories.ProductRepository {
	return m.productRepo
}

// Settings returns the settings repository
func (m *SQLiteRepositoryManager) Settings() repositories.SettingsRepository {
	return m.settingsRepo
}

// Sales returns the sales repository
func (m *SQLiteRepositoryManager) Sales() repositories.SaleRepository {
	return m.saleRepo
}

// Analytics returns the analytics repository
func (m *SQLiteRepositoryManager) Analytics() repositories.AnalyticsRepository {
	return m.analyticsRepo
}

// Close closes the underlying connection
func (m *SQLiteRepositoryManager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// Health checks the health of the repository connection
func (m *SQLiteRepositoryManager) Health(ctx context.Context) error {
	if m.db == nil {
		return repositories.ConnectionError(repositories.ErrConnection)
	}

	if err := m.db.PingContext(ctx); err != nil {
		return repositories.ConnectionError(err)
	}

	var result int
	if err := m.db.GetContext(ctx, &result, "SELECT 1"); err != nil {
		return repositories.ConnectionError(err)
	}

	if result != 1 {
		return repositories.ConnectionError(repositories.ErrConnection)
	}

	return nil
}
