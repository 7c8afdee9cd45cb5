package service

import (
	"errors"
	"testing"

	"github.com/shabihhaider/waterbottle-admin/internal/constants"
	"github.com/shabihhaider/waterbottle-admin/internal/models"
	"github.com/shabihhaider/waterbottle-admin/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newProductServiceForTest(db *gorm.DB) *ProductService {
	return NewProductService(
		repository.NewProductRepository(db),
		repository.NewInventoryMovementRepository(db),
	)
}

func TestCreateProductWritesInitialMovement(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newProductServiceForTest(db)

	product, err := svc.CreateProduct(CreateProductInput{
		SKU:          "WB-19L",
		Name:         "19L 桶装纯净水",
		Unit:         "19L bottle",
		CostPrice:    models.NewMoneyFromDecimal(decimal.NewFromInt(80)),
		SalePrice:    models.NewMoneyFromDecimal(decimal.NewFromInt(150)),
		Stock:        30,
		ReorderLevel: 10,
	})
	if err != nil {
		t.Fatalf("CreateProduct error: %v", err)
	}
	if !product.IsActive {
		t.Fatalf("product should default to active")
	}

	var movements []models.InventoryMovement
	if err := db.Where("product_id = ?", product.ID).Find(&movements).Error; err != nil {
		t.Fatalf("load movements failed: %v", err)
	}
	if len(movements) != 1 {
		t.Fatalf("movements want 1 got %d", len(movements))
	}
	if movements[0].Reason != constants.MovementReasonRestock || movements[0].QuantityChange != 30 {
		t.Fatalf("unexpected initial movement: %+v", movements[0])
	}

	// SKU 唯一
	if _, err := svc.CreateProduct(CreateProductInput{SKU: "WB-19L", Name: "重复"}); !errors.Is(err, ErrProductSKUExists) {
		t.Fatalf("duplicate sku want ErrProductSKUExists got %v", err)
	}
}

func TestCreateProductZeroStockSkipsMovement(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newProductServiceForTest(db)

	product, err := svc.CreateProduct(CreateProductInput{SKU: "WB-PUMP", Name: "手压抽水泵"})
	if err != nil {
		t.Fatalf("CreateProduct error: %v", err)
	}

	var count int64
	if err := db.Model(&models.InventoryMovement{}).Where("product_id = ?", product.ID).Count(&count).Error; err != nil {
		t.Fatalf("count movements failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("zero initial stock should not write movement, got %d", count)
	}
}

func TestAdjustStock(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newProductServiceForTest(db)
	product := seedProduct(t, db, "WB-19L", 150, 10, 5)

	// 入库
	got, err := svc.AdjustStock(product.ID, 15, "补货入库")
	if err != nil {
		t.Fatalf("AdjustStock error: %v", err)
	}
	if got.Stock != 25 {
		t.Fatalf("stock want 25 got %d", got.Stock)
	}

	// 出库允许负库存
	got, err = svc.AdjustStock(product.ID, -30, "盘亏")
	if err != nil {
		t.Fatalf("AdjustStock error: %v", err)
	}
	if got.Stock != -5 {
		t.Fatalf("stock want -5 got %d", got.Stock)
	}

	var movements []models.InventoryMovement
	if err := db.Where("product_id = ?", product.ID).Order("id asc").Find(&movements).Error; err != nil {
		t.Fatalf("load movements failed: %v", err)
	}
	if len(movements) != 2 {
		t.Fatalf("movements want 2 got %d", len(movements))
	}
	if movements[0].QuantityChange != 15 || movements[1].QuantityChange != -30 {
		t.Fatalf("unexpected movement deltas: %+v", movements)
	}
}

func TestAdjustStockRejectsZeroDelta(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newProductServiceForTest(db)
	product := seedProduct(t, db, "WB-19L", 150, 10, 5)

	if _, err := svc.AdjustStock(product.ID, 0, ""); !errors.Is(err, ErrInvalidStockAdjust) {
		t.Fatalf("zero delta want ErrInvalidStockAdjust got %v", err)
	}
	if _, err := svc.AdjustStock(99999, 5, ""); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("missing product want ErrProductNotFound got %v", err)
	}
}

func TestUpdateProductDoesNotTouchStock(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newProductServiceForTest(db)
	product := seedProduct(t, db, "WB-19L", 150, 10, 5)

	name := "19L 桶装矿物质水"
	reorder := 20
	updated, err := svc.UpdateProduct(product.ID, UpdateProductInput{
		Name:         &name,
		ReorderLevel: &reorder,
	})
	if err != nil {
		t.Fatalf("UpdateProduct error: %v", err)
	}
	if updated.Name != name || updated.ReorderLevel != 20 {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if updated.Stock != 10 {
		t.Fatalf("update should not change stock, got %d", updated.Stock)
	}
}

func TestListLowStock(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newProductServiceForTest(db)
	seedProduct(t, db, "WB-OK", 150, 50, 10)
	low := seedProduct(t, db, "WB-LOW", 150, 3, 10)

	products, err := svc.ListLowStock(20)
	if err != nil {
		t.Fatalf("ListLowStock error: %v", err)
	}
	if len(products) != 1 || products[0].ID != low.ID {
		t.Fatalf("low stock list unexpected: %+v", products)
	}
}
