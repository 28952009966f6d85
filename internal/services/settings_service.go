package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"restaurant-pos-store/internal/models"
	"restaurant-pos-store/internal/repositories"
)

// settingsService implements the SettingsService interface
type settingsService struct {
	store     Store
	validator *validator.Validate
}

// NewSettingsService creates a new settings service instance
func NewSettingsService(store Store) SettingsService {
	return &settingsService{
		store:     store,
		validator: newValidator(),
	}
}

// GetSettings returns the current settings
func (s *settingsService) GetSettings(ctx context.Context) (*models.Settings, error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// SaveSettings validates and replaces the settings, returning what was stored
func (s *settingsService) SaveSettings(ctx context.Context, req *SaveSettingsRequest) (*models.Settings, error) {
	if req == nil {
		return nil, repositories.ValidationError("settings", "1", fmt.Errorf("save settings request cannot be nil"))
	}

	if err := validateRequest(s.validator, "settings", req); err != nil {
		return nil, err
	}

	settings := &models.Settings{
		RestaurantName: req.RestaurantName,
		Address:        req.Address,
		Phone:          req.Phone,
		Email:          req.Email,
		TaxRate:        req.TaxRate,
		Currency:       req.Currency,
		OpeningTime:    req.OpeningTime,
		ClosingTime:    req.ClosingTime,
		ReceiptFooter:  req.ReceiptFooter,
		Logo:           req.Logo,
	}

	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	return settings, nil
}
