package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"restaurant-pos-store/internal/repositories"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel) // Reduce noise in tests
	return logger
}

func TestConnectionFactory_CreateSQLiteConnection(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "db_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	factory := NewConnectionFactory(testLogger())

	invalidJournal := repositories.DefaultConfig(filepath.Join(tempDir, "wal.db"))
	invalidJournal.Database.JournalMode = "WAL"

	tests := []struct {
		name    string
		config  *repositories.Config
		wantErr bool
	}{
		{
			name:    "default config",
			config:  repositories.DefaultConfig(filepath.Join(tempDir, "test.db")),
			wantErr: false,
		},
		{
			name:    "missing parent directories are created",
			config:  repositories.DefaultConfig(filepath.Join(tempDir, "nested", "deeper", "test.db")),
			wantErr: false,
		},
		{
			name:    "WAL journal rejected",
			config:  invalidJournal,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			db, err := factory.CreateConnection(ctx, tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateConnection() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr {
				return
			}
			defer db.Close()

			var result int
			if err := db.GetContext(ctx, &result, "SELECT 1"); err != nil {
				t.Errorf("Failed to execute test query: %v", err)
			}

			var fk int
			if err := db.GetContext(ctx, &fk, "PRAGMA foreign_keys"); err != nil {
				t.Errorf("Failed to read foreign_keys: %v", err)
			}
			if fk != 1 {
				t.Errorf("foreign_keys = %d, want 1", fk)
			}

			var journal string
			if err := db.GetContext(ctx, &journal, "PRAGMA journal_mode"); err != nil {
				t.Errorf("Failed to read journal_mode: %v", err)
			}
			if journal != "delete" {
				t.Errorf("journal_mode = %s, want delete", journal)
			}

			stats := db.Stats()
			if stats.MaxOpenConnections != 1 {
				t.Errorf("MaxOpenConnections = %d, want 1", stats.MaxOpenConnections)
			}
		})
	}
}

func TestConnectionFactory_UnusableDirectory(t *testing.T) {
	tempDir := t.TempDir()

	// a regular file where a directory is expected
	blocker := filepath.Join(tempDir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create blocker file: %v", err)
	}

	factory := NewConnectionFactory(testLogger())
	_, err := factory.CreateConnection(context.Background(),
		repositories.DefaultConfig(filepath.Join(blocker, "sub", "restaurant.db")))
	if err == nil {
		t.Fatal("CreateConnection() should fail when the directory cannot be created")
	}
	if !repositories.IsConfiguration(err) {
		t.Errorf("error = %v, want a configuration error", err)
	}
}

func TestBuildSQLiteDSN(t *testing.T) {
	tests := []struct {
		name     string
		config   *repositories.Config
		expected string
	}{
		{
			name:     "no options",
			config:   &repositories.Config{},
			expected: "/tmp/test.db",
		},
		{
			name: "with foreign keys",
			config: &repositories.Config{
				Database: repositories.DatabaseConfig{ForeignKeys: true},
			},
			expected: "/tmp/test.db?_foreign_keys=on",
		},
		{
			name:     "defaults",
			config:   repositories.DefaultConfig("/tmp/test.db"),
			expected: "/tmp/test.db?_journal_mode=DELETE&_synchronous=FULL&_foreign_keys=on&_busy_timeout=5000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildSQLiteDSN("/tmp/test.db", tt.config)
			if got != tt.expected {
				t.Errorf("BuildSQLiteDSN() = %s, want %s", got, tt.expected)
			}
		})
	}
}
