package config

import (
	"errors"
	"os"
	"path/filepath"

	"restaurant-pos-store/internal/repositories"
)

// ResolveDatabasePath returns the absolute database file path and creates
// its parent directories. Failures are configuration errors.
func (c *DatabaseConfig) ResolveDatabasePath() (string, error) {
	path := c.Path
	if path == "" {
		path = filepath.Join(c.DataDir, c.FileName)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", repositories.ConfigurationError("resolve", path, err)
	}

	if err := EnsureDirectories(filepath.Dir(absPath)); err != nil {
		return "", repositories.ConfigurationError("mkdir", absPath, err)
	}

	if info, err := os.Stat(absPath); err == nil && info.IsDir() {
		return "", repositories.ConfigurationError("resolve", absPath, errors.New("path is a directory"))
	}

	return absPath, nil
}

// EnsureDirectories creates each directory if it does not exist
func EnsureDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
