package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shabihhaider/waterbottle-admin/internal/config"
	"github.com/shabihhaider/waterbottle-admin/internal/constants"
	"github.com/shabihhaider/waterbottle-admin/internal/models"
	"github.com/shabihhaider/waterbottle-admin/internal/provider"
	"github.com/shabihhaider/waterbottle-admin/internal/queue"
	"github.com/shabihhaider/waterbottle-admin/internal/repository"
	"github.com/shabihhaider/waterbottle-admin/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func newConsumerForTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.Invoice{},
		&models.InvoiceItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	invoiceRepo := repository.NewInvoiceRepository(db)
	container := &provider.Container{
		ProductRepo: repository.NewProductRepository(db),
		InvoiceService: service.NewInvoiceService(
			invoiceRepo,
			repository.NewOrderRepository(db),
			repository.NewCustomerRepository(db),
			nil,
			config.InvoiceConfig{},
		),
	}
	return NewConsumer(container), db
}

func TestHandleInvoiceOverdueMarksInvoice(t *testing.T) {
	consumer, db := newConsumerForTest(t)

	due := time.Now().Add(-time.Hour)
	invoice := &models.Invoice{
		InvoiceNo:  "INV-TEST-1",
		CustomerID: 1,
		Status:     constants.InvoiceStatusPending,
		DueDate:    &due,
	}
	if err := db.Create(invoice).Error; err != nil {
		t.Fatalf("seed invoice failed: %v", err)
	}

	payload, _ := json.Marshal(queue.InvoiceOverduePayload{InvoiceID: invoice.ID})
	task := asynq.NewTask(queue.TaskInvoiceOverdue, payload)

	if err := consumer.handleInvoiceOverdue(context.Background(), task); err != nil {
		t.Fatalf("handleInvoiceOverdue error: %v", err)
	}

	var got models.Invoice
	if err := db.First(&got, invoice.ID).Error; err != nil {
		t.Fatalf("reload invoice failed: %v", err)
	}
	if got.Status != constants.InvoiceStatusOverdue {
		t.Fatalf("status want overdue got %s", got.Status)
	}
}

func TestHandleInvoiceOverdueSkipsMissingInvoice(t *testing.T) {
	consumer, _ := newConsumerForTest(t)

	payload, _ := json.Marshal(queue.InvoiceOverduePayload{InvoiceID: 99999})
	task := asynq.NewTask(queue.TaskInvoiceOverdue, payload)

	// 账单已删除时任务不重试
	if err := consumer.handleInvoiceOverdue(context.Background(), task); err != nil {
		t.Fatalf("missing invoice should be skipped, got %v", err)
	}
}

func TestHandleInvoiceOverdueInvalidPayload(t *testing.T) {
	consumer, _ := newConsumerForTest(t)

	task := asynq.NewTask(queue.TaskInvoiceOverdue, []byte("{not-json"))
	if err := consumer.handleInvoiceOverdue(context.Background(), task); err == nil {
		t.Fatalf("invalid payload should return error")
	}

	empty, _ := json.Marshal(queue.InvoiceOverduePayload{})
	task = asynq.NewTask(queue.TaskInvoiceOverdue, empty)
	if err := consumer.handleInvoiceOverdue(context.Background(), task); err != nil {
		t.Fatalf("zero invoice id should be skipped, got %v", err)
	}
}

func TestHandleProductStockAlert(t *testing.T) {
	consumer, db := newConsumerForTest(t)

	low := &models.Product{SKU: "WB-LOW", Name: "低库存", Stock: 2, ReorderLevel: 10, IsActive: true}
	ok := &models.Product{SKU: "WB-OK", Name: "库存充足", Stock: 50, ReorderLevel: 10, IsActive: true}
	for _, p := range []*models.Product{low, ok} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("seed product failed: %v", err)
		}
	}

	for _, id := range []uint{low.ID, ok.ID, 99999} {
		payload, _ := json.Marshal(queue.ProductStockAlertPayload{ProductID: id})
		task := asynq.NewTask(queue.TaskProductStockAlert, payload)
		if err := consumer.handleProductStockAlert(context.Background(), task); err != nil {
			t.Fatalf("handleProductStockAlert(%d) error: %v", id, err)
		}
	}
}

func TestRegisterNilSafe(t *testing.T) {
	var consumer *Consumer
	consumer.Register(nil)

	mux := asynq.NewServeMux()
	NewConsumer(nil).Register(mux)
}
