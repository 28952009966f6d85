package repositories

import (
	"errors"
	"time"
)

// Config represents repository configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig `json:"database" yaml:"database"`

	// Connection pool configuration
	Pool PoolConfig `json:"pool" yaml:"pool"`
}

// DatabaseConfig represents database-specific configuration
type DatabaseConfig struct {
	// Path is the database file path
	Path string `json:"path" yaml:"path"`

	// Foreign key constraints
	ForeignKeys bool `json:"foreign_keys" yaml:"foreign_keys"`

	// Synchronous mode for SQLite
	Synchronous string `json:"synchronous" yaml:"synchronous"`

	// Journal mode for SQLite. Must keep the main file self-contained
	// (DELETE or TRUNCATE) so snapshots can copy it directly.
	JournalMode string `json:"journal_mode" yaml:"journal_mode"`

	// Busy timeout for SQLite (in milliseconds)
	BusyTimeout int `json:"busy_timeout" yaml:"busy_timeout"`
}

// PoolConfig represents connection pool configuration
type PoolConfig struct {
	// MaxOpenConns is the maximum number of open connections
	MaxOpenConns int `json:"max_open_conns" yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections
	MaxIdleConns int `json:"max_idle_conns" yaml:"max_idle_conns"`

	// ConnMaxIdleTime is the maximum idle time of a connection
	ConnMaxIdleTime time.Duration `json:"conn_max_idle_time" yaml:"conn_max_idle_time"`
}

// DefaultConfig returns a default repository configuration for the given file
func DefaultConfig(path string) *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:        path,
			ForeignKeys: true,
			Synchronous: "FULL",
			JournalMode: "DELETE",
			BusyTimeout: 5000,
		},
		Pool: PoolConfig{
			MaxOpenConns: 1,
			MaxIdleConns: 1,
		},
	}
}

// Validate validates the repository configuration
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("database path is required")
	}

	switch c.Database.JournalMode {
	case "", "DELETE", "TRUNCATE":
	default:
		return errors.New("journal mode must be DELETE or TRUNCATE")
	}

	if c.Database.BusyTimeout < 0 {
		return errors.New("busy timeout cannot be negative")
	}

	if c.Pool.MaxOpenConns != 1 {
		return errors.New("the store requires exactly one open connection")
	}

	if c.Pool.MaxIdleConns < 0 {
		return errors.New("max idle connections cannot be negative")
	}

	if c.Pool.MaxIdleConns > c.Pool.MaxOpenConns {
		return errors.New("max idle connections cannot exceed max open connections")
	}

	return nil
}
