package models

// Window sizes used by the analytics queries.
const (
	DailyRevenueDays  = 30
	TopProductsLimit  = 10
	DistributionLimit = 5
)

// DailyRevenue is the revenue and order count for one calendar date
type DailyRevenue struct {
	Date    string  `json:"date" db:"date"`
	Revenue float64 `json:"revenue" db:"revenue"`
	Orders  int64   `json:"orders" db:"orders"`
}

// TopProduct ranks a product name by units sold
type TopProduct struct {
	Name    string  `json:"name" db:"name"`
	Sales   int64   `json:"sales" db:"sales"`
	Revenue float64 `json:"revenue" db:"revenue"`
}

// ProductDistribution is the units-sold share of a product name
type ProductDistribution struct {
	Name  string `json:"name" db:"name"`
	Value int64  `json:"value" db:"value"`
}

// AnalyticsSummary holds the all-time totals
type AnalyticsSummary struct {
	TotalOrders       int64   `json:"total_orders" db:"total_orders"`
	TotalRevenue      float64 `json:"total_revenue" db:"total_revenue"`
	AverageOrderValue float64 `json:"average_order_value" db:"-"`
}

// CalculateAverage sets AverageOrderValue, which is zero when there are no orders.
func (s *AnalyticsSummary) CalculateAverage() {
	if s.TotalOrders == 0 {
		s.AverageOrderValue = 0
		return
	}
	s.AverageOrderValue = s.TotalRevenue / float64(s.TotalOrders)
}

// AnalyticsData bundles every dashboard aggregate
type AnalyticsData struct {
	DailyRevenue        []DailyRevenue        `json:"daily_revenue"`
	TopProducts         []TopProduct          `json:"top_products"`
	ProductDistribution []ProductDistribution `json:"product_distribution"`
	Summary             AnalyticsSummary      `json:"summary"`
}
