package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"restaurant-pos-store/internal/models"
	"restaurant-pos-store/internal/repositories"
)

// productService implements the ProductService interface
type productService struct {
	store     Store
	validator *validator.Validate
}

// NewProductService creates a new product service instance
func NewProductService(store Store) ProductService {
	return &productService{
		store:     store,
		validator: newValidator(),
	}
}

// ListProducts returns the catalog, newest first
func (s *productService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// CreateProduct validates and stores a new product
func (s *productService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	if req == nil {
		return nil, repositories.ValidationError("product", "", fmt.Errorf("create product request cannot be nil"))
	}

	if err := validateRequest(s.validator, "product", req); err != nil {
		return nil, err
	}

	product, err := s.store.AddProduct(ctx, strings.TrimSpace(req.Name), req.Price, req.Unit)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// DeleteProduct removes a product by id
func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return repositories.ValidationError("product", fmt.Sprintf("%d", id), repositories.ErrInvalidID)
	}

	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
