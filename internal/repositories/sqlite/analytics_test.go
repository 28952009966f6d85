package sqlite

import (
	"context"
	"fmt"
	"testing"

	"restaurant-pos-store/internal/models"
)

func TestAnalyticsRepository_Empty(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewAnalyticsRepository(db, testLogger())

	data, err := repo.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	if data.Summary.TotalOrders != 0 || data.Summary.TotalRevenue != 0 || data.Summary.AverageOrderValue != 0 {
		t.Errorf("Summary = %+v, want zeros", data.Summary)
	}
	if data.DailyRevenue == nil || len(data.DailyRevenue) != 0 {
		t.Errorf("DailyRevenue = %v, want empty slice", data.DailyRevenue)
	}
	if len(data.TopProducts) != 0 || len(data.ProductDistribution) != 0 {
		t.Errorf("product aggregates should be empty: %+v", data)
	}
}

func TestAnalyticsRepository_Summary(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	sales := NewSaleRepository(db, testLogger())
	repo := NewAnalyticsRepository(db, testLogger())
	ctx := context.Background()

	for _, total := range []float64{10, 20, 45} {
		if _, err := sales.Create(ctx, &models.Sale{TotalAmount: total, Currency: "PKR"}); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
	}

	data, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	if data.Summary.TotalOrders != 3 {
		t.Errorf("TotalOrders = %d, want 3", data.Summary.TotalOrders)
	}
	if data.Summary.TotalRevenue != 75 {
		t.Errorf("TotalRevenue = %v, want 75", data.Summary.TotalRevenue)
	}
	if data.Summary.AverageOrderValue != 25 {
		t.Errorf("AverageOrderValue = %v, want 25", data.Summary.AverageOrderValue)
	}
}

func TestAnalyticsRepository_DailyRevenueWindow(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	sales := NewSaleRepository(db, testLogger())
	repo := NewAnalyticsRepository(db, testLogger())
	ctx := context.Background()

	// 35 distinct dates, two sales on the last one
	for day := 1; day <= 35; day++ {
		id, err := sales.Create(ctx, &models.Sale{TotalAmount: float64(day), Currency: "PKR"})
		if err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
		date := fmt.Sprintf("2024-01-%02d", day)
		if day > 31 {
			date = fmt.Sprintf("2024-02-%02d", day-31)
		}
		setSaleDate(t, db, id, date)
	}
	extra, _ := sales.Create(ctx, &models.Sale{TotalAmount: 100, Currency: "PKR"})
	setSaleDate(t, db, extra, "2024-02-04")

	data, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	days := data.DailyRevenue
	if len(days) != models.DailyRevenueDays {
		t.Fatalf("DailyRevenue has %d entries, want %d", len(days), models.DailyRevenueDays)
	}

	// the 30 most recent dates, oldest first
	if days[0].Date != "2024-01-06" {
		t.Errorf("first date = %s, want 2024-01-06", days[0].Date)
	}
	last := days[len(days)-1]
	if last.Date != "2024-02-04" {
		t.Errorf("last date = %s, want 2024-02-04", last.Date)
	}
	if last.Orders != 2 || last.Revenue != 135 {
		t.Errorf("last day = %+v, want 2 orders and 135 revenue", last)
	}

	for i := 1; i < len(days); i++ {
		if days[i-1].Date >= days[i].Date {
			t.Errorf("dates not ascending at %d: %s >= %s", i, days[i-1].Date, days[i].Date)
		}
	}
}

func TestAnalyticsRepository_TopProductsAndDistribution(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	sales := NewSaleRepository(db, testLogger())
	products := NewProductRepository(db, testLogger())
	repo := NewAnalyticsRepository(db, testLogger())
	ctx := context.Background()

	// never sold, must not appear
	products.Create(ctx, models.NewProduct("Lassi", 150, "glass"))
	retired, _ := products.Create(ctx, models.NewProduct("Samosa", 40, "piece"))

	var items []models.SaleItem
	for i := 1; i <= 12; i++ {
		items = append(items, models.SaleItem{
			Name:     fmt.Sprintf("Dish %02d", i),
			Price:    10,
			Quantity: float64(i),
			Unit:     "plate",
		})
	}
	items = append(items,
		models.SaleItem{Name: "Samosa", Price: 40, Quantity: 20, Unit: "piece"},
		models.SaleItem{Name: "Samosa", Price: 40, Quantity: 5, Unit: "piece"},
	)
	if _, err := sales.Create(ctx, &models.Sale{Products: items, TotalAmount: 1780, Currency: "PKR"}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	// deleting the catalog entry keeps its sales history
	products.Delete(ctx, retired.ID)

	data, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	if len(data.TopProducts) != models.TopProductsLimit {
		t.Fatalf("TopProducts has %d entries, want %d", len(data.TopProducts), models.TopProductsLimit)
	}
	top := data.TopProducts[0]
	if top.Name != "Samosa" || top.Sales != 25 || top.Revenue != 1000 {
		t.Errorf("top product = %+v, want Samosa 25 units 1000 revenue", top)
	}
	if data.TopProducts[1].Name != "Dish 12" {
		t.Errorf("second product = %s, want Dish 12", data.TopProducts[1].Name)
	}

	for _, p := range data.TopProducts {
		if p.Name == "Lassi" {
			t.Error("unsold product should not appear in TopProducts")
		}
	}

	if len(data.ProductDistribution) != models.DistributionLimit {
		t.Fatalf("ProductDistribution has %d entries, want %d", len(data.ProductDistribution), models.DistributionLimit)
	}
	if data.ProductDistribution[0].Name != "Samosa" || data.ProductDistribution[0].Value != 25 {
		t.Errorf("distribution[0] = %+v", data.ProductDistribution[0])
	}
	if data.ProductDistribution[4].Name != "Dish 09" || data.ProductDistribution[4].Value != 9 {
		t.Errorf("distribution[4] = %+v, want Dish 09 with 9", data.ProductDistribution[4])
	}
}
