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

const productColumns = `id, name, price, unit, created_at`

// ProductRepository implements the ProductRepository interface for SQLite
type ProductRepository struct {
	*BaseRepository[models.Product]
}

// NewProductRepository creates a new SQLite product repository
func NewProductRepository(db *sqlx.DB, logger *logrus.Logger) repositories.ProductRepository {
	return &ProductRepository{
		BaseRepository: NewBaseRepository[models.Product](db, "products", logger),
	}
}

// List returns all products, newest identity first
func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id DESC`

	products := []*models.Product{}
	if err := r.selectAll(ctx, "list", &products, query); err != nil {
		return nil, err
	}

	return products, nil
}

// Create inserts a product and reads back the stored row so the caller
// gets the assigned identity and creation timestamp.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	query := `INSERT INTO products (name, price, unit) VALUES (?, ?, ?)`

	result, err := r.executeExec(ctx, "create", query, product.Name, product.Price, product.Unit)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, r.wrapError("create", "", err)
	}

	stored := &models.Product{}
	selectQuery := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	if err := r.getOne(ctx, "get_by_id", stored, selectQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.wrapError("get_by_id", formatID(id), err)
		}
		return nil, err
	}

	return stored, nil
}

// Delete removes a product by id. Unknown ids are not an error.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.executeExec(ctx, "delete", `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		r.logger.WithField("id", id).Debug("Product delete matched no rows")
	}

	return nil
}

// Count returns the number of products
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, "count", `SELECT COUNT(*) FROM products`)
}
