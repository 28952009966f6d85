package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"restaurant-pos-store/internal/models"
	"restaurant-pos-store/internal/repositories"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// SettingsRepository implements the SettingsRepository interface for SQLite
type SettingsRepository struct {
	*BaseRepository[models.Settings]
}

// NewSettingsRepository creates a new SQLite settings repository
func NewSettingsRepository(db *sqlx.DB, logger *logrus.Logger) repositories.SettingsRepository {
	return &SettingsRepository{
		BaseRepository: NewBaseRepository[models.Settings](db, "settings", logger),
	}
}

// Get retrieves the settings singleton
func (r *SettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	query := `
		SELECT restaurant_name, address, phone, email, tax_rate, currency,
			   opening_time, closing_time, receipt_footer, logo
		FROM settings
		WHERE id = ?`

	settings := &models.Settings{}
	if err := r.getOne(ctx, "get", settings, query, models.SettingsID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.NotFoundError("settings", "1")
		}
		return nil, err
	}

	return settings, nil
}

// Save replaces the whole settings row. Nil fields become NULL.
func (r *SettingsRepository) Save(ctx context.Context, settings *models.Settings) error {
	query := `
		INSERT OR REPLACE INTO settings (
			id, restaurant_name, address, phone, email, tax_rate, currency,
			opening_time, closing_time, receipt_footer, logo
		) VALUES (
			1, :restaurant_name, :address, :phone, :email, :tax_rate, :currency,
			:opening_time, :closing_time, :receipt_footer, :logo
		)`

	_, err := r.executeNamed(ctx, "save", query, settings)
	return err
}
