package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shabihhaider/waterbottle-admin/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.InventoryMovement{}); err != nil {
		t.Fatalf("migrate product models failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createTestProduct(t *testing.T, repo *GormProductRepository, sku string, stock, reorderLevel int, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		SKU:          sku,
		Name:         "测试商品 " + sku,
		Unit:         "19L bottle",
		CostPrice:    models.NewMoneyFromDecimal(decimal.NewFromInt(80)),
		SalePrice:    models.NewMoneyFromDecimal(decimal.NewFromInt(150)),
		Stock:        stock,
		ReorderLevel: reorderLevel,
		IsActive:     active,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if !active {
		product.IsActive = false
		if err := repo.Update(product); err != nil {
			t.Fatalf("deactivate product failed: %v", err)
		}
	}
	return product
}

func TestProductGetBySKUNotFoundReturnsNil(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)

	product, err := repo.GetBySKU("WB-MISSING")
	if err != nil {
		t.Fatalf("GetBySKU error: %v", err)
	}
	if product != nil {
		t.Fatalf("missing sku should return nil, got %+v", product)
	}

	product, err = repo.GetByID(99999)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if product != nil {
		t.Fatalf("missing id should return nil, got %+v", product)
	}
}

func TestProductListLowStockOrdering(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)

	createTestProduct(t, repo, "WB-OK", 50, 10, true)
	mid := createTestProduct(t, repo, "WB-MID", 8, 10, true)
	lowest := createTestProduct(t, repo, "WB-LOWEST", 1, 10, true)
	createTestProduct(t, repo, "WB-INACTIVE", 0, 10, false)

	products, err := repo.ListLowStock(10)
	if err != nil {
		t.Fatalf("ListLowStock error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("low stock want 2 got %d", len(products))
	}
	// 库存最少的排在最前，停售商品不出现
	if products[0].ID != lowest.ID || products[1].ID != mid.ID {
		t.Fatalf("unexpected ordering: %+v", products)
	}

	limited, err := repo.ListLowStock(1)
	if err != nil {
		t.Fatalf("ListLowStock error: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != lowest.ID {
		t.Fatalf("limit should keep lowest stock first, got %+v", limited)
	}
}

func TestProductAdjustStockDelta(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "WB-19L", 10, 5, true)

	if err := repo.AdjustStock(product.ID, -12); err != nil {
		t.Fatalf("AdjustStock error: %v", err)
	}

	got, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Stock != -2 {
		t.Fatalf("stock want -2 got %d", got.Stock)
	}

	// 零增量为空操作
	if err := repo.AdjustStock(product.ID, 0); err != nil {
		t.Fatalf("zero delta should be no-op: %v", err)
	}
}

func TestProductListFilters(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)

	createTestProduct(t, repo, "WB-19L", 50, 10, true)
	createTestProduct(t, repo, "WB-PUMP", 2, 10, true)
	createTestProduct(t, repo, "WB-OLD", 0, 10, false)

	products, total, err := repo.List(ProductListFilter{Search: "PUMP"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 1 || len(products) != 1 || products[0].SKU != "WB-PUMP" {
		t.Fatalf("search filter unexpected: total=%d products=%+v", total, products)
	}

	_, total, err = repo.List(ProductListFilter{OnlyActive: true})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 2 {
		t.Fatalf("active filter total want 2 got %d", total)
	}

	_, total, err = repo.List(ProductListFilter{LowStockOnly: true})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 2 {
		t.Fatalf("low stock filter total want 2 got %d", total)
	}
}
