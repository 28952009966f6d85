package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"restaurant-pos-store/internal/repositories"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable key
const EnvPrefix = "POS"

// AppDirName is the directory created under the user config dir
const AppDirName = "restaurant-pos"

// Config holds all configuration for the store
type Config struct {
	Environment string
	LogLevel    string
	Database    DatabaseConfig
}

// DatabaseConfig holds database file configuration
type DatabaseConfig struct {
	// Path is an explicit database file; when empty DataDir/FileName is used
	Path         string
	DataDir      string
	FileName     string
	BackupSuffix string
	// BusyTimeout in milliseconds
	BusyTimeout int
}

// Load loads configuration from an optional config file, a .env file and
// POS_* environment variables, in increasing order of precedence.
func Load(configFile string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("db_path", "")
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("db_file", "restaurant.db")
	v.SetDefault("backup_suffix", ".backup")
	v.SetDefault("busy_timeout_ms", 5000)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, repositories.ConfigurationError("read_config", configFile, err)
		}
	}

	config := &Config{
		Environment: v.GetString("environment"),
		LogLevel:    v.GetString("log_level"),
		Database: DatabaseConfig{
			Path:         v.GetString("db_path"),
			DataDir:      v.GetString("data_dir"),
			FileName:     v.GetString("db_file"),
			BackupSuffix: v.GetString("backup_suffix"),
			BusyTimeout:  v.GetInt("busy_timeout_ms"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration for values the store cannot use
func (c *Config) Validate() error {
	var problems []string

	if c.Database.Path == "" && c.Database.DataDir == "" {
		problems = append(problems, "either db_path or data_dir is required")
	}
	if c.Database.Path == "" && strings.TrimSpace(c.Database.FileName) == "" {
		problems = append(problems, "db_file cannot be empty")
	}
	if strings.TrimSpace(c.Database.BackupSuffix) == "" {
		problems = append(problems, "backup_suffix cannot be empty")
	}
	if c.Database.BusyTimeout <= 0 {
		problems = append(problems, "busy_timeout_ms must be greater than 0")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("log_level: %v", err))
	}

	if len(problems) > 0 {
		return repositories.ConfigurationError("validate", c.Database.Path,
			errors.New(strings.Join(problems, "; ")))
	}
	return nil
}

// RepositoryConfig builds the connection configuration for a resolved path
func (c *Config) RepositoryConfig(path string) *repositories.Config {
	repoConfig := repositories.DefaultConfig(path)
	repoConfig.Database.BusyTimeout = c.Database.BusyTimeout
	return repoConfig
}

// NewLogger returns a logger writing to stderr at the configured level
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

// IsDevelopment returns true when running in development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "data")
	}
	return filepath.Join(dir, AppDirName)
}
