//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shabihhaider/waterbottle-admin/internal/constants"
	"github.com/shabihhaider/waterbottle-admin/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.InvoiceItem{},
		&models.Invoice{},
		&models.OrderItem{},
		&models.Order{},
		&models.InventoryMovement{},
		&models.Product{},
		&models.Customer{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.InventoryMovement{},
		&models.Order{},
		&models.OrderItem{},
		&models.Invoice{},
		&models.InvoiceItem{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresProductRepositoryQueries(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewProductRepository(db)

	product := &models.Product{
		SKU:          "PG-WB-19L",
		Name:         "19L 桶装纯净水",
		Unit:         "19L bottle",
		CostPrice:    models.NewMoneyFromDecimal(decimal.NewFromInt(80)),
		SalePrice:    models.NewMoneyFromDecimal(decimal.NewFromInt(150)),
		Stock:        3,
		ReorderLevel: 10,
		IsActive:     true,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	rows, total, err := repo.List(ProductListFilter{Page: 1, Search: "桶装"})
	if err != nil {
		t.Fatalf("product list search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("product search want 1 got total=%d len=%d", total, len(rows))
	}

	lowStock, err := repo.ListLowStock(5)
	if err != nil {
		t.Fatalf("list low stock failed: %v", err)
	}
	if len(lowStock) != 1 || lowStock[0].ID != product.ID {
		t.Fatalf("low stock list unexpected: %+v", lowStock)
	}

	if err := repo.AdjustStock(product.ID, -5); err != nil {
		t.Fatalf("adjust stock failed: %v", err)
	}
	got, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if got.Stock != -2 {
		t.Fatalf("stock want -2 got %d", got.Stock)
	}
}

func TestPostgresDashboardAndAnalyticsQueries(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	now := time.Now().UTC().Truncate(time.Second)

	customer := &models.Customer{
		Name:   "PG Customer",
		Phone:  "0300-9990001",
		Area:   "Gulberg",
		Status: constants.CustomerStatusActive,
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}

	product := &models.Product{
		SKU:       "PG-WB-PUMP",
		Name:      "手压抽水泵",
		SalePrice: models.NewMoneyFromDecimal(decimal.NewFromInt(160)),
		Stock:     20,
		IsActive:  true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	order := &models.Order{
		OrderNo:     "PG-ORD-001",
		CustomerID:  customer.ID,
		Status:      constants.OrderStatusDelivered,
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(160)),
		CreatedAt:   now,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	item := &models.OrderItem{
		OrderID:     order.ID,
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   models.NewMoneyFromDecimal(decimal.NewFromInt(160)),
		Quantity:    1,
		TotalPrice:  models.NewMoneyFromDecimal(decimal.NewFromInt(160)),
		CreatedAt:   now,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create order item failed: %v", err)
	}

	invoice := &models.Invoice{
		InvoiceNo:     "PG-INV-001",
		CustomerID:    customer.ID,
		OrderID:       &order.ID,
		Status:        constants.InvoiceStatusPending,
		TotalAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(160)),
		BalanceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(160)),
		CreatedAt:     now,
	}
	if err := db.Create(invoice).Error; err != nil {
		t.Fatalf("create invoice failed: %v", err)
	}

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	counters, err := NewDashboardRepository(db).GetCounters(todayStart)
	if err != nil {
		t.Fatalf("get counters failed: %v", err)
	}
	if counters.OrdersToday != 1 || counters.ActiveCustomers != 1 {
		t.Fatalf("unexpected counters: %+v", counters)
	}

	analyticsRepo := NewAnalyticsRepository(db)
	startAt := todayStart.AddDate(0, 0, -6)
	endAt := todayStart.AddDate(0, 0, 1)

	orderRows, err := analyticsRepo.ListOrderRows(startAt, endAt)
	if err != nil {
		t.Fatalf("list order rows failed: %v", err)
	}
	if len(orderRows) != 1 || orderRows[0].CustomerID != customer.ID {
		t.Fatalf("unexpected order rows: %+v", orderRows)
	}

	invoiceRows, err := analyticsRepo.ListInvoiceRows(startAt, endAt)
	if err != nil {
		t.Fatalf("list invoice rows failed: %v", err)
	}
	if len(invoiceRows) != 1 || invoiceRows[0].Total != 160 {
		t.Fatalf("unexpected invoice rows: %+v", invoiceRows)
	}

	itemRows, err := analyticsRepo.ListItemRows(startAt, endAt)
	if err != nil {
		t.Fatalf("list item rows failed: %v", err)
	}
	if len(itemRows) != 1 || itemRows[0].ProductID != product.ID {
		t.Fatalf("unexpected item rows: %+v", itemRows)
	}
}
