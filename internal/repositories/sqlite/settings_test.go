package sqlite

import (
	"context"
	"testing"

	"restaurant-pos-store/internal/models"
	"restaurant-pos-store/internal/repositories"
)

func TestSettingsRepository_GetSeeded(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewSettingsRepository(db, testLogger())

	settings, err := repo.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	if models.StringValue(settings.RestaurantName) != models.DefaultRestaurantName {
		t.Errorf("RestaurantName = %v", settings.RestaurantName)
	}
	if models.StringValue(settings.Currency) != models.DefaultCurrency {
		t.Errorf("Currency = %v", settings.Currency)
	}
	if settings.Phone != nil {
		t.Errorf("Phone = %q, want nil", *settings.Phone)
	}
}

func TestSettingsRepository_SaveReplacesEveryField(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewSettingsRepository(db, testLogger())
	ctx := context.Background()

	saved := &models.Settings{
		RestaurantName: stringPtr("Karachi Grill"),
		Email:          stringPtr("owner@karachigrill.pk"),
		TaxRate:        stringPtr("16"),
		OpeningTime:    stringPtr("11:00"),
		// everything else nil, including fields that were seeded
	}

	if err := repo.Save(ctx, saved); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	tests := []struct {
		field string
		got   *string
		want  *string
	}{
		{"restaurant_name", got.RestaurantName, saved.RestaurantName},
		{"address", got.Address, nil},
		{"phone", got.Phone, nil},
		{"email", got.Email, saved.Email},
		{"tax_rate", got.TaxRate, saved.TaxRate},
		{"currency", got.Currency, nil},
		{"opening_time", got.OpeningTime, saved.OpeningTime},
		{"closing_time", got.ClosingTime, nil},
		{"receipt_footer", got.ReceiptFooter, nil},
		{"logo", got.Logo, nil},
	}

	for _, tt := range tests {
		if (tt.got == nil) != (tt.want == nil) {
			t.Errorf("%s = %v, want %v", tt.field, tt.got, tt.want)
			continue
		}
		if tt.got != nil && *tt.got != *tt.want {
			t.Errorf("%s = %q, want %q", tt.field, *tt.got, *tt.want)
		}
	}

	var rows int
	if err := db.Get(&rows, "SELECT COUNT(*) FROM settings"); err != nil {
		t.Fatalf("Failed to count settings: %v", err)
	}
	if rows != 1 {
		t.Errorf("settings rows = %d, want 1", rows)
	}
}

func TestSettingsRepository_MissingRow(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	if _, err := db.Exec("DELETE FROM settings"); err != nil {
		t.Fatalf("Failed to delete settings: %v", err)
	}

	repo := NewSettingsRepository(db, testLogger())
	_, err := repo.Get(context.Background())
	if !repositories.IsNotFound(err) {
		t.Errorf("Get() error = %v, want not found", err)
	}
}
