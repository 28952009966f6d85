package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"restaurant-pos-store/internal/database"
	"restaurant-pos-store/internal/models"
	"restaurant-pos-store/internal/repositories"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func setupTestDB(t *testing.T) (*sqlx.DB, func()) {
	tempDir, err := os.MkdirTemp("", "sqlite_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	logger := testLogger()
	config := repositories.DefaultConfig(filepath.Join(tempDir, "test.db"))

	db, err := database.NewConnectionFactory(logger).CreateConnection(context.Background(), config)
	if err != nil {
		os.RemoveAll(tempDir)
		t.Fatalf("Failed to open database: %v", err)
	}

	if err := database.Initialize(context.Background(), db, logger); err != nil {
		db.Close()
		os.RemoveAll(tempDir)
		t.Fatalf("Failed to initialize schema: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.RemoveAll(tempDir)
	}

	return db, cleanup
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return logger
}

func stringPtr(s string) *string {
	return &s
}

func teaSale() *models.Sale {
	return &models.Sale{
		Products:    []models.SaleItem{{Name: "Tea", Price: 2.5, Quantity: 3, Unit: "cup"}},
		TotalAmount: 7.5,
		Currency:    "PKR",
	}
}

// setSaleDate rewrites the stored date of a sale
func setSaleDate(t *testing.T, db *sqlx.DB, id int64, date string) {
	t.Helper()
	if _, err := db.Exec(`UPDATE sales SET date = ? WHERE id = ?`, date, id); err != nil {
		t.Fatalf("Failed to set sale date: %v", err)
	}
}
