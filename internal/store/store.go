// Package store is the persistent data layer of the point-of-sale system.
// A Store owns one SQLite file and serializes every operation on it.
package store

import (
	"context"
	"sync"

	"restaurant-pos-store/internal/config"
	"restaurant-pos-store/internal/database"
	"restaurant-pos-store/internal/models"
	"restaurant-pos-store/internal/repositories"
	"restaurant-pos-store/internal/repositories/sqlite"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Options tune how a Store is opened
type Options struct {
	// BackupSuffix names the sibling backup file written by ImportSnapshot
	BackupSuffix string
	// Fs is the filesystem used for snapshots; nil uses the OS filesystem
	Fs afero.Fs
	// SkipInitialize opens the handle without pinging the file or creating
	// the schema, so a file replaced by a bad import can still be restored
	SkipInitialize bool
}

// Store is the single entry point to the database file
type Store struct {
	mu        sync.Mutex
	db        *database.Manager
	repos     repositories.RepositoryManager
	snapshots *database.SnapshotManager
	logger    *logrus.Logger
}

// Open resolves the database location from cfg, opens it and initializes the schema
func Open(ctx context.Context, cfg *config.Config, opts Options, logger *logrus.Logger) (*Store, error) {
	if logger == nil {
		logger = cfg.NewLogger()
	}

	path, err := cfg.Database.ResolveDatabasePath()
	if err != nil {
		return nil, err
	}

	if opts.BackupSuffix == "" {
		opts.BackupSuffix = cfg.Database.BackupSuffix
	}

	return OpenPath(ctx, cfg.RepositoryConfig(path), opts, logger)
}

// OpenPath opens the database described by repoConfig and initializes the schema
func OpenPath(ctx context.Context, repoConfig *repositories.Config, opts Options, logger *logrus.Logger) (*Store, error) {
	if logger == nil {
		logger = logrus.New()
	}

	manager := database.NewManager(repoConfig, logger)
	if opts.SkipInitialize {
		if err := manager.Reopen(); err != nil {
			return nil, err
		}
	} else if err := manager.Connect(ctx); err != nil {
		return nil, err
	}

	s := &Store{
		db:        manager,
		snapshots: database.NewSnapshotManager(opts.Fs, repoConfig.Database.Path, opts.BackupSuffix, logger),
		logger:    logger,
	}
	s.repos = sqlite.NewSQLiteRepositoryManager(manager.GetDB(), logger)

	logger.WithField("path", repoConfig.Database.Path).Info("Store opened")
	return s, nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.db.Path()
}

// BackupPath returns the path ImportSnapshot backs up to
func (s *Store) BackupPath() string {
	return s.snapshots.BackupPath()
}

// Initialize re-runs schema creation. It never touches existing data.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Initialize(ctx)
}

// ListProducts returns the catalog, most recently added first
func (s *Store) ListProducts(ctx context.Context) ([]*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repos.Products().List(ctx)
}

// AddProduct stores a product and returns it with its identity. Inputs are
// not validated here; see the services package.
func (s *Store) AddProduct(ctx context.Context, name string, price float64, unit string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repos.Products().Create(ctx, models.NewProduct(name, price, unit))
}

// DeleteProduct removes a product. Deleting an unknown id succeeds.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repos.Products().Delete(ctx, id)
}

// GetSettings returns the settings singleton
func (s *Store) GetSettings(ctx context.Context) (*models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repos.Settings().Get(ctx)
}

// SaveSettings replaces every settings field; nil fields are cleared
func (s *Store) SaveSettings(ctx context.Context, settings *models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repos.Settings().Save(ctx, settings)
}

// AddSale records a sale and its items atomically and returns the sale id
func (s *Store) AddSale(ctx context.Context, items []models.SaleItem, totalAmount float64, currency string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repos.Sales().Create(ctx, &models.Sale{
		Products:    items,
		TotalAmount: totalAmount,
		Currency:    currency,
	})
}

// ListTransactions returns every sale with its items, most recent first
func (s *Store) ListTransactions(ctx context.Context) ([]*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repos.Sales().List(ctx)
}

// DeleteTransaction removes a sale and its items. Deleting an unknown id succeeds.
func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repos.Sales().Delete(ctx, id)
}

// CountOrphanItems returns sale items whose sale no longer exists
func (s *Store) CountOrphanItems(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repos.Sales().CountOrphanItems(ctx)
}

// GetAnalytics computes the dashboard aggregates
func (s *Store) GetAnalytics(ctx context.Context) (*models.AnalyticsData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repos.Analytics().Get(ctx)
}

// ExportSnapshot returns the raw bytes of the database file
func (s *Store) ExportSnapshot(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshots.Export()
}

// ImportSnapshot replaces the database file with data, backing up the
// current file first. The contents are not validated; a bad file only
// fails on the next query. An error matching database.ErrRestoreFailed
// means the backup at BackupPath holds the previous data.
func (s *Store) ImportSnapshot(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.swapFile(func() error {
		return s.snapshots.Import(data)
	})
}

// RestoreBackup copies the backup file written by the last import back
// over the database file
func (s *Store) RestoreBackup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.swapFile(s.snapshots.RestoreBackup)
}

// swapFile closes the connection, runs replace and reopens lazily. The
// handle is reopened even when replace fails so the store stays usable.
func (s *Store) swapFile(replace func() error) error {
	if err := s.db.Disconnect(); err != nil {
		return err
	}

	replaceErr := replace()

	if err := s.db.Reopen(); err != nil {
		if replaceErr != nil {
			return replaceErr
		}
		return err
	}
	s.repos = sqlite.NewSQLiteRepositoryManager(s.db.GetDB(), s.logger)

	return replaceErr
}

// Health reports whether the database answers queries and has the expected tables
func (s *Store) Health(ctx context.Context) *database.HealthStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.GetHealthStatus(ctx)
}

// Close closes the database connection
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.WithField("path", s.db.Path()).Info("Store closed")
	return s.db.Close()
}
