package sqlite

import (
	"context"

	"restaurant-pos-store/internal/models"
	"restaurant-pos-store/internal/repositories"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// SaleRepository implements the SaleRepository interface for SQLite.
// A sale is a row in sales plus its rows in sale_items.
type SaleRepository struct {
	*BaseRepository[models.Transaction]
	tm *SQLiteTransactionManager
}

// NewSaleRepository creates a new SQLite sale repository
func NewSaleRepository(db *sqlx.DB, logger *logrus.Logger) repositories.SaleRepository {
	return &SaleRepository{
		BaseRepository: NewBaseRepository[models.Transaction](db, "sales", logger),
		tm:             NewSQLiteTransactionManager(db, logger),
	}
}

// Create inserts the sale header and every item in one transaction and
// returns the new sale id. Items keep the order they were given in.
func (r *SaleRepository) Create(ctx context.Context, sale *models.Sale) (int64, error) {
	var saleID int64

	err := r.tm.WithTransaction(ctx, func(ctx context.Context) error {
		result, err := r.executeExec(ctx, "create",
			`INSERT INTO sales (total_amount, currency) VALUES (?, ?)`,
			sale.TotalAmount, sale.Currency)
		if err != nil {
			return err
		}

		saleID, err = result.LastInsertId()
		if err != nil {
			return r.wrapError("create", "", err)
		}

		itemQuery := `
			INSERT INTO sale_items (sale_id, product_name, price, quantity, unit)
			VALUES (?, ?, ?, ?, ?)`

		for _, item := range sale.Products {
			if _, err := r.executeExec(ctx, "create_item", itemQuery,
				saleID, item.Name, item.Price, item.Quantity, item.Unit); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	r.logger.WithFields(logrus.Fields{
		"sale_id": saleID,
		"items":   len(sale.Products),
		"total":   sale.TotalAmount,
	}).Debug("Sale recorded")

	return saleID, nil
}

// List returns every sale, newest first, each with its items in insertion order
func (r *SaleRepository) List(ctx context.Context) ([]*models.Transaction, error) {
	transactions := []*models.Transaction{}

	err := r.tm.WithTransaction(ctx, func(ctx context.Context) error {
		query := `
			SELECT id, total_amount, currency,
				   COALESCE(date, '') AS date, COALESCE(time, '') AS time
			FROM sales
			ORDER BY id DESC`

		if err := r.selectAll(ctx, "list", &transactions, query); err != nil {
			return err
		}

		itemQuery := `
			SELECT product_name, price, quantity, unit
			FROM sale_items
			WHERE sale_id = ?
			ORDER BY id ASC`

		for _, txn := range transactions {
			items := []models.SaleItem{}
			if err := r.selectAll(ctx, "list_items", &items, itemQuery, txn.ID); err != nil {
				return err
			}

			txn.Items = make([]models.TransactionItem, 0, len(items))
			for _, item := range items {
				txn.Items = append(txn.Items, models.NewTransactionItem(item))
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// Delete removes a sale and its items. Unknown ids are not an error.
func (r *SaleRepository) Delete(ctx context.Context, id int64) error {
	return r.tm.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := r.executeExec(ctx, "delete_items", `DELETE FROM sale_items WHERE sale_id = ?`, id); err != nil {
			return err
		}

		result, err := r.executeExec(ctx, "delete", `DELETE FROM sales WHERE id = ?`, id)
		if err != nil {
			return err
		}

		if affected, _ := result.RowsAffected(); affected == 0 {
			r.logger.WithField("id", id).Debug("Sale delete matched no rows")
		}

		return nil
	})
}

// CountItems returns the number of items stored for a sale
func (r *SaleRepository) CountItems(ctx context.Context, saleID int64) (int64, error) {
	return r.count(ctx, "count_items", `SELECT COUNT(*) FROM sale_items WHERE sale_id = ?`, saleID)
}

// CountOrphanItems returns items whose sale no longer exists
func (r *SaleRepository) CountOrphanItems(ctx context.Context) (int64, error) {
	return r.count(ctx, "count_orphans", `
		SELECT COUNT(*) FROM sale_items
		WHERE sale_id NOT IN (SELECT id FROM sales)`)
}
