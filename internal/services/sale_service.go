package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"restaurant-pos-store/internal/models"
	"restaurant-pos-store/internal/repositories"
)

// saleService implements the SaleService interface
type saleService struct {
	store     Store
	validator *validator.Validate
}

// NewSaleService creates a new sale service instance
func NewSaleService(store Store) SaleService {
	return &saleService{
		store:     store,
		validator: newValidator(),
	}
}

// RecordSale validates and stores a completed order. The total is stored
// as given; it is not recomputed from the items.
func (s *saleService) RecordSale(ctx context.Context, req *RecordSaleRequest) (int64, error) {
	if req == nil {
		return 0, repositories.ValidationError("sale", "", fmt.Errorf("record sale request cannot be nil"))
	}

	if err := validateRequest(s.validator, "sale", req); err != nil {
		return 0, err
	}

	items := make([]models.SaleItem, 0, len(req.Products))
	for _, p := range req.Products {
		items = append(items, models.SaleItem{
			Name:     strings.TrimSpace(p.Name),
			Price:    p.Price,
			Quantity: p.Quantity,
			Unit:     p.Unit,
		})
	}

	id, err := s.store.AddSale(ctx, items, req.TotalAmount, req.Currency)
	if err != nil {
		return 0, fmt.Errorf("failed to record sale: %w", err)
	}

	return id, nil
}

// ListTransactions returns every sale with its items
func (s *saleService) ListTransactions(ctx context.Context) ([]*models.Transaction, error) {
	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// DeleteTransaction removes a sale and its items
func (s *saleService) DeleteTransaction(ctx context.Context, id int64) error {
	if id <= 0 {
		return repositories.ValidationError("sale", fmt.Sprintf("%d", id), repositories.ErrInvalidID)
	}

	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// GetAnalytics returns the dashboard aggregates
func (s *saleService) GetAnalytics(ctx context.Context) (*models.AnalyticsData, error) {
	data, err := s.store.GetAnalytics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute analytics: %w", err)
	}
	return data, nil
}
