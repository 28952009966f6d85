package database

import (
	"context"
	"fmt"
	"sync"

	"restaurant-pos-store/internal/repositories"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// Manager owns the single connection to the database file
type Manager struct {
	mu          sync.RWMutex
	config      *repositories.Config
	logger      *logrus.Logger
	factory     *ConnectionFactory
	db          *sqlx.DB
	isConnected bool
}

// NewManager creates a new database manager
func NewManager(config *repositories.Config, logger *logrus.Logger) *Manager {
	if logger == nil {
		logger = logrus.New()
	}

	return &Manager{
		config:  config,
		logger:  logger,
		factory: NewConnectionFactory(logger),
	}
}

// Connect opens the database and initializes the schema
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.isConnected {
		return fmt.Errorf("database already connected")
	}

	m.logger.WithField("path", m.config.Database.Path).Info("Connecting to database...")

	db, err := m.factory.CreateConnection(ctx, m.config)
	if err != nil {
		return err
	}

	if err := Initialize(ctx, db, m.logger); err != nil {
		db.Close()
		return err
	}

	m.db = db
	m.isConnected = true
	m.logger.Info("Database connection established successfully")

	return nil
}

// Reopen replaces the handle with a lazily opened one, without touching the
// file or the schema. Used after the file has been swapped underneath.
func (m *Manager) Reopen() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	db, err := m.factory.OpenLazy(m.config)
	if err != nil {
		return err
	}

	m.db = db
	m.isConnected = true
	m.logger.Debug("Database handle reopened")

	return nil
}

// Disconnect closes the database connection
func (m *Manager) Disconnect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.isConnected {
		return nil
	}

	var err error
	if m.db != nil {
		err = m.db.Close()
		m.db = nil
	}

	m.isConnected = false

	if err != nil {
		m.logger.WithError(err).Error("Error during database disconnection")
		return repositories.ConnectionError(fmt.Errorf("failed to disconnect from database: %w", err))
	}

	m.logger.Debug("Database disconnected")
	return nil
}

// GetDB returns the database connection, or nil when disconnected
func (m *Manager) GetDB() *sqlx.DB {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.isConnected {
		return nil
	}

	return m.db
}

// IsConnected returns true if the database is connected
func (m *Manager) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.isConnected
}

// Path returns the database file path
func (m *Manager) Path() string {
	return m.config.Database.Path
}

// Initialize re-runs schema creation on the current connection
func (m *Manager) Initialize(ctx context.Context) error {
	db := m.GetDB()
	if db == nil {
		return repositories.ConnectionError(repositories.ErrConnection)
	}
	return Initialize(ctx, db, m.logger)
}

// GetHealthStatus returns detailed health status
func (m *Manager) GetHealthStatus(ctx context.Context) *HealthStatus {
	db := m.GetDB()
	if db == nil {
		return &HealthStatus{Healthy: false, Message: "database not connected"}
	}
	return NewHealthChecker(db, m.logger).GetHealthStatus(ctx)
}

// Close closes the database manager
func (m *Manager) Close() error {
	return m.Disconnect()
}
