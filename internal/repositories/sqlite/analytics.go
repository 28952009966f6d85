package sqlite

import (
	"context"
	"fmt"

	"restaurant-pos-store/internal/models"
	"restaurant-pos-store/internal/repositories"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// AnalyticsRepository computes dashboard aggregates over sales and sale_items.
// Products are grouped by the name stored on the item, so renamed or
// deleted catalog entries still show up under their historical name.
type AnalyticsRepository struct {
	*BaseRepository[models.AnalyticsData]
	tm *SQLiteTransactionManager
}

// NewAnalyticsRepository creates a new SQLite analytics repository
func NewAnalyticsRepository(db *sqlx.DB, logger *logrus.Logger) repositories.AnalyticsRepository {
	return &AnalyticsRepository{
		BaseRepository: NewBaseRepository[models.AnalyticsData](db, "sales", logger),
		tm:             NewSQLiteTransactionManager(db, logger),
	}
}

// Get runs every aggregation inside one read transaction
func (r *AnalyticsRepository) Get(ctx context.Context) (*models.AnalyticsData, error) {
	data := &models.AnalyticsData{}

	err := r.tm.WithTransaction(ctx, func(ctx context.Context) error {
		var err error

		if data.DailyRevenue, err = r.dailyRevenue(ctx); err != nil {
			return err
		}
		if data.TopProducts, err = r.topProducts(ctx); err != nil {
			return err
		}
		if data.ProductDistribution, err = r.productDistribution(ctx); err != nil {
			return err
		}

		summary, err := r.summary(ctx)
		if err != nil {
			return err
		}
		data.Summary = *summary

		return nil
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

// dailyRevenue returns the most recent dates with sales, oldest first
func (r *AnalyticsRepository) dailyRevenue(ctx context.Context) ([]models.DailyRevenue, error) {
	query := fmt.Sprintf(`
		SELECT date,
			   COALESCE(SUM(total_amount), 0.0) AS revenue,
			   COUNT(*) AS orders
		FROM sales
		WHERE date IS NOT NULL
		GROUP BY date
		ORDER BY date DESC
		LIMIT %d`, models.DailyRevenueDays)

	rows := []models.DailyRevenue{}
	if err := r.selectAll(ctx, "daily_revenue", &rows, query); err != nil {
		return nil, err
	}

	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}

	return rows, nil
}

// topProducts ranks product names by units sold
func (r *AnalyticsRepository) topProducts(ctx context.Context) ([]models.TopProduct, error) {
	query := fmt.Sprintf(`
		SELECT product_name AS name,
			   CAST(SUM(quantity) AS INTEGER) AS sales,
			   COALESCE(SUM(price * quantity), 0.0) AS revenue
		FROM sale_items
		GROUP BY product_name
		ORDER BY SUM(quantity) DESC, product_name ASC
		LIMIT %d`, models.TopProductsLimit)

	rows := []models.TopProduct{}
	if err := r.selectAll(ctx, "top_products", &rows, query); err != nil {
		return nil, err
	}

	return rows, nil
}

// productDistribution returns units sold for the leading product names
func (r *AnalyticsRepository) productDistribution(ctx context.Context) ([]models.ProductDistribution, error) {
	query := fmt.Sprintf(`
		SELECT product_name AS name,
			   CAST(SUM(quantity) AS INTEGER) AS value
		FROM sale_items
		GROUP BY product_name
		ORDER BY SUM(quantity) DESC, product_name ASC
		LIMIT %d`, models.DistributionLimit)

	rows := []models.ProductDistribution{}
	if err := r.selectAll(ctx, "product_distribution", &rows, query); err != nil {
		return nil, err
	}

	return rows, nil
}

// summary returns order count, revenue and average order value
func (r *AnalyticsRepository) summary(ctx context.Context) (*models.AnalyticsSummary, error) {
	query := `
		SELECT COUNT(*) AS total_orders,
			   COALESCE(SUM(total_amount), 0.0) AS total_revenue
		FROM sales`

	summary := &models.AnalyticsSummary{}
	if err := r.getOne(ctx, "summary", summary, query); err != nil {
		return nil, err
	}

	summary.CalculateAverage()
	return summary, nil
}
