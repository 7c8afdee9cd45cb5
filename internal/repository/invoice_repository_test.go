package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shabihhaider/waterbottle-admin/internal/constants"
	"github.com/shabihhaider/waterbottle-admin/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupInvoiceRepositoryTest(t *testing.T) (*GormInvoiceRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Order{},
		&models.Invoice{},
		&models.InvoiceItem{},
	); err != nil {
		t.Fatalf("migrate invoice models failed: %v", err)
	}
	return NewInvoiceRepository(db), db
}

func TestInvoiceCreateWithItems(t *testing.T) {
	repo, _ := setupInvoiceRepositoryTest(t)

	invoice := &models.Invoice{
		InvoiceNo:     "INV-1",
		CustomerID:    1,
		Status:        constants.InvoiceStatusPending,
		TotalAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(300)),
		BalanceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(300)),
	}
	items := []models.InvoiceItem{
		{Description: "19L 桶装纯净水", UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(150)), Quantity: 2, TotalPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(300))},
	}
	if err := repo.Create(invoice, items); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := repo.GetByID(invoice.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got == nil || len(got.Items) != 1 {
		t.Fatalf("invoice items not persisted: %+v", got)
	}
	if got.Items[0].InvoiceID != invoice.ID {
		t.Fatalf("item invoice_id want %d got %d", invoice.ID, got.Items[0].InvoiceID)
	}
}

func TestInvoiceGetByOrderIDNotFoundReturnsNil(t *testing.T) {
	repo, _ := setupInvoiceRepositoryTest(t)

	invoice, err := repo.GetByOrderID(12345)
	if err != nil {
		t.Fatalf("GetByOrderID error: %v", err)
	}
	if invoice != nil {
		t.Fatalf("missing order invoice should return nil, got %+v", invoice)
	}
}

func TestInvoiceListDuePending(t *testing.T) {
	repo, db := setupInvoiceRepositoryTest(t)
	now := time.Now()

	older := now.Add(-72 * time.Hour)
	recent := now.Add(-time.Hour)
	future := now.Add(72 * time.Hour)
	invoices := []models.Invoice{
		{InvoiceNo: "INV-RECENT", CustomerID: 1, Status: constants.InvoiceStatusPending, DueDate: &recent},
		{InvoiceNo: "INV-OLDER", CustomerID: 1, Status: constants.InvoiceStatusPending, DueDate: &older},
		{InvoiceNo: "INV-FUTURE", CustomerID: 1, Status: constants.InvoiceStatusPending, DueDate: &future},
		{InvoiceNo: "INV-PAID", CustomerID: 1, Status: constants.InvoiceStatusPaid, DueDate: &older},
		{InvoiceNo: "INV-NO-DUE", CustomerID: 1, Status: constants.InvoiceStatusPending},
	}
	for i := range invoices {
		if err := db.Create(&invoices[i]).Error; err != nil {
			t.Fatalf("create invoice failed: %v", err)
		}
	}

	due, err := repo.ListDuePending(now, 0)
	if err != nil {
		t.Fatalf("ListDuePending error: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("due pending want 2 got %d", len(due))
	}
	// 到期最早的排在最前
	if due[0].InvoiceNo != "INV-OLDER" || due[1].InvoiceNo != "INV-RECENT" {
		t.Fatalf("unexpected ordering: %+v", due)
	}

	limited, err := repo.ListDuePending(now, 1)
	if err != nil {
		t.Fatalf("ListDuePending error: %v", err)
	}
	if len(limited) != 1 || limited[0].InvoiceNo != "INV-OLDER" {
		t.Fatalf("limit should keep earliest due, got %+v", limited)
	}
}
