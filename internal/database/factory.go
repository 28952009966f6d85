package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"restaurant-pos-store/internal/repositories"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// DriverName is the database/sql driver registered by go-sqlite3.
const DriverName = "sqlite3"

// ConnectionFactory creates database connections
type ConnectionFactory struct {
	logger *logrus.Logger
}

// NewConnectionFactory creates a new connection factory
func NewConnectionFactory(logger *logrus.Logger) *ConnectionFactory {
	if logger == nil {
		logger = logrus.New()
	}
	return &ConnectionFactory{
		logger: logger,
	}
}

// CreateConnection opens the database file, creating its directory if needed,
// and verifies the connection with a ping.
func (f *ConnectionFactory) CreateConnection(ctx context.Context, config *repositories.Config) (*sqlx.DB, error) {
	db, err := f.OpenLazy(config)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, repositories.ConnectionError(err)
	}

	f.applySQLiteSettings(ctx, db)

	f.logger.WithField("path", config.Database.Path).Info("SQLite connection established")
	return db, nil
}

// OpenLazy prepares a handle without touching the file. The first query
// opens it, so a corrupt file only surfaces errors at that point.
func (f *ConnectionFactory) OpenLazy(config *repositories.Config) (*sqlx.DB, error) {
	if err := config.Validate(); err != nil {
		return nil, repositories.ConfigurationError("validate", config.Database.Path, err)
	}

	absPath, err := filepath.Abs(config.Database.Path)
	if err != nil {
		return nil, repositories.ConfigurationError("resolve", config.Database.Path, err)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, repositories.ConfigurationError("mkdir", absPath, err)
	}

	dsn := BuildSQLiteDSN(absPath, config)

	f.logger.WithFields(logrus.Fields{
		"driver": DriverName,
		"path":   absPath,
		"dsn":    dsn,
	}).Debug("Opening SQLite handle")

	db, err := sqlx.Open(DriverName, dsn)
	if err != nil {
		return nil, repositories.ConnectionError(fmt.Errorf("failed to open SQLite database: %w", err))
	}

	f.configureConnectionPool(db, config)
	return db, nil
}

// BuildSQLiteDSN builds a go-sqlite3 DSN with options
func BuildSQLiteDSN(path string, config *repositories.Config) string {
	var options []string

	if config.Database.JournalMode != "" {
		options = append(options, fmt.Sprintf("_journal_mode=%s", config.Database.JournalMode))
	}

	if config.Database.Synchronous != "" {
		options = append(options, fmt.Sprintf("_synchronous=%s", config.Database.Synchronous))
	}

	if config.Database.ForeignKeys {
		options = append(options, "_foreign_keys=on")
	}

	if config.Database.BusyTimeout > 0 {
		options = append(options, fmt.Sprintf("_busy_timeout=%d", config.Database.BusyTimeout))
	}

	if len(options) > 0 {
		return fmt.Sprintf("%s?%s", path, strings.Join(options, "&"))
	}

	return path
}

// applySQLiteSettings applies per-connection pragmas that have no DSN option.
// Failures are logged and ignored.
func (f *ConnectionFactory) applySQLiteSettings(ctx context.Context, db *sqlx.DB) {
	settings := []string{
		"PRAGMA temp_store = MEMORY",
	}

	for _, setting := range settings {
		if _, err := db.ExecContext(ctx, setting); err != nil {
			f.logger.WithError(err).WithField("setting", setting).Warn("Failed to apply SQLite setting")
		} else {
			f.logger.WithField("setting", setting).Debug("Applied SQLite setting")
		}
	}
}

// configureConnectionPool configures the database connection pool
func (f *ConnectionFactory) configureConnectionPool(db *sqlx.DB, config *repositories.Config) {
	db.SetMaxOpenConns(config.Pool.MaxOpenConns)
	db.SetMaxIdleConns(config.Pool.MaxIdleConns)
	db.SetConnMaxIdleTime(config.Pool.ConnMaxIdleTime)

	f.logger.WithFields(logrus.Fields{
		"max_open_conns":     config.Pool.MaxOpenConns,
		"max_idle_conns":     config.Pool.MaxIdleConns,
		"conn_max_idle_time": config.Pool.ConnMaxIdleTime,
	}).Debug("Configured connection pool")
}
