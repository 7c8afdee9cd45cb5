package service

import (
	"errors"
	"testing"
	"time"

	"github.com/shabihhaider/waterbottle-admin/internal/config"
	"github.com/shabihhaider/waterbottle-admin/internal/constants"
	"github.com/shabihhaider/waterbottle-admin/internal/models"
	"github.com/shabihhaider/waterbottle-admin/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newInvoiceServiceForTest(db *gorm.DB, cfg config.InvoiceConfig) *InvoiceService {
	return NewInvoiceService(
		repository.NewInvoiceRepository(db),
		repository.NewOrderRepository(db),
		repository.NewCustomerRepository(db),
		nil,
		cfg,
	)
}

func ptrUint(v uint) *uint { return &v }

func TestCreateInvoiceFromOrder(t *testing.T) {
	db := setupServiceTestDB(t)
	orderSvc := newOrderServiceForTest(db)
	invoiceSvc := newInvoiceServiceForTest(db, config.InvoiceConfig{TaxRatePercent: 10, DueDays: 7})
	customer := seedCustomer(t, db, "0300-1000001")
	product := seedProduct(t, db, "WB-19L", 100, 50, 5)

	order, err := orderSvc.CreateOrder(CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []CreateOrderItem{{ProductID: product.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}

	invoice, err := invoiceSvc.CreateInvoice(CreateInvoiceInput{OrderID: order.ID})
	if err != nil {
		t.Fatalf("CreateInvoice error: %v", err)
	}
	if invoice.Status != constants.InvoiceStatusPending {
		t.Fatalf("status want pending got %s", invoice.Status)
	}
	if !invoice.Subtotal.Decimal.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("subtotal want 200 got %s", invoice.Subtotal.String())
	}
	if !invoice.TaxAmount.Decimal.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("tax want 20 got %s", invoice.TaxAmount.String())
	}
	if !invoice.TotalAmount.Decimal.Equal(decimal.NewFromInt(220)) {
		t.Fatalf("total want 220 got %s", invoice.TotalAmount.String())
	}
	if !invoice.BalanceAmount.Decimal.Equal(invoice.TotalAmount.Decimal) {
		t.Fatalf("balance should equal total for new invoice")
	}
	if invoice.DueDate == nil {
		t.Fatalf("due date should default from config")
	}
	if len(invoice.Items) != 1 || invoice.Items[0].Description != product.Name {
		t.Fatalf("unexpected invoice items: %+v", invoice.Items)
	}

	// 同一订单不可重复开票
	if _, err := invoiceSvc.CreateInvoice(CreateInvoiceInput{OrderID: order.ID}); !errors.Is(err, ErrOrderHasInvoice) {
		t.Fatalf("duplicate invoice want ErrOrderHasInvoice got %v", err)
	}
}

func TestCreateInvoiceAdHocDiscountClamp(t *testing.T) {
	db := setupServiceTestDB(t)
	invoiceSvc := newInvoiceServiceForTest(db, config.InvoiceConfig{TaxRatePercent: 0, DueDays: 14})
	customer := seedCustomer(t, db, "0300-1000002")

	invoice, err := invoiceSvc.CreateInvoice(CreateInvoiceInput{
		CustomerID: customer.ID,
		Items: []CreateInvoiceItem{
			{Description: "饮水机押金", UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(50)), Quantity: 1},
		},
		DiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(80)),
	})
	if err != nil {
		t.Fatalf("CreateInvoice error: %v", err)
	}
	if !invoice.TotalAmount.Decimal.IsZero() {
		t.Fatalf("over-discount total should clamp to 0, got %s", invoice.TotalAmount.String())
	}
	if !invoice.BalanceAmount.Decimal.IsZero() {
		t.Fatalf("balance should be 0, got %s", invoice.BalanceAmount.String())
	}
}

func TestCreateInvoiceRejectsInvalidItems(t *testing.T) {
	db := setupServiceTestDB(t)
	invoiceSvc := newInvoiceServiceForTest(db, config.InvoiceConfig{})
	customer := seedCustomer(t, db, "0300-1000003")

	cases := []CreateInvoiceItem{
		{Description: "", UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(10)), Quantity: 1},
		{Description: "水", UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(10)), Quantity: 0},
		{Description: "水", UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(-1)), Quantity: 1},
	}
	for _, item := range cases {
		if _, err := invoiceSvc.CreateInvoice(CreateInvoiceInput{
			CustomerID: customer.ID,
			Items:      []CreateInvoiceItem{item},
		}); !errors.Is(err, ErrInvalidInvoiceItem) {
			t.Fatalf("item %+v want ErrInvalidInvoiceItem got %v", item, err)
		}
	}
}

func TestRecordPaymentPartialAndSettle(t *testing.T) {
	db := setupServiceTestDB(t)
	invoiceSvc := newInvoiceServiceForTest(db, config.InvoiceConfig{})
	customer := seedCustomer(t, db, "0300-1000004")

	invoice, err := invoiceSvc.CreateInvoice(CreateInvoiceInput{
		CustomerID: customer.ID,
		Items: []CreateInvoiceItem{
			{Description: "19L 桶装水", UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(100)), Quantity: 3},
		},
	})
	if err != nil {
		t.Fatalf("CreateInvoice error: %v", err)
	}

	// 部分收款
	invoice, err = invoiceSvc.RecordPayment(invoice.ID, RecordPaymentInput{
		Amount: models.NewMoneyFromDecimal(decimal.NewFromInt(120)),
	})
	if err != nil {
		t.Fatalf("RecordPayment error: %v", err)
	}
	if invoice.Status != constants.InvoiceStatusPending {
		t.Fatalf("partial payment status want pending got %s", invoice.Status)
	}
	if !invoice.BalanceAmount.Decimal.Equal(decimal.NewFromInt(180)) {
		t.Fatalf("balance want 180 got %s", invoice.BalanceAmount.String())
	}

	// 超额结清，balance 钳制为 0
	invoice, err = invoiceSvc.RecordPayment(invoice.ID, RecordPaymentInput{
		Amount: models.NewMoneyFromDecimal(decimal.NewFromInt(200)),
	})
	if err != nil {
		t.Fatalf("RecordPayment error: %v", err)
	}
	if invoice.Status != constants.InvoiceStatusPaid {
		t.Fatalf("status want paid got %s", invoice.Status)
	}
	if !invoice.BalanceAmount.Decimal.IsZero() {
		t.Fatalf("balance want 0 got %s", invoice.BalanceAmount.String())
	}
	if invoice.PaidAt == nil {
		t.Fatalf("paid_at should be set on settle")
	}

	// 已结清账单不可再收款
	if _, err := invoiceSvc.RecordPayment(invoice.ID, RecordPaymentInput{
		Amount: models.NewMoneyFromDecimal(decimal.NewFromInt(1)),
	}); !errors.Is(err, ErrInvoiceStatusInvalid) {
		t.Fatalf("payment on paid invoice want ErrInvoiceStatusInvalid got %v", err)
	}
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	db := setupServiceTestDB(t)
	invoiceSvc := newInvoiceServiceForTest(db, config.InvoiceConfig{})

	if _, err := invoiceSvc.RecordPayment(1, RecordPaymentInput{
		Amount: models.MoneyZero(),
	}); !errors.Is(err, ErrInvalidPaymentAmount) {
		t.Fatalf("zero amount want ErrInvalidPaymentAmount got %v", err)
	}
	if _, err := invoiceSvc.RecordPayment(1, RecordPaymentInput{
		Amount: models.NewMoneyFromDecimal(decimal.NewFromInt(-5)),
	}); !errors.Is(err, ErrInvalidPaymentAmount) {
		t.Fatalf("negative amount want ErrInvalidPaymentAmount got %v", err)
	}
}

func TestMarkOverdueIdempotent(t *testing.T) {
	db := setupServiceTestDB(t)
	invoiceSvc := newInvoiceServiceForTest(db, config.InvoiceConfig{})
	customer := seedCustomer(t, db, "0300-1000005")

	due := time.Now().Add(-time.Hour)
	invoice, err := invoiceSvc.CreateInvoice(CreateInvoiceInput{
		CustomerID: customer.ID,
		Items: []CreateInvoiceItem{
			{Description: "19L 桶装水", UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(100)), Quantity: 1},
		},
		DueDate: &due,
	})
	if err != nil {
		t.Fatalf("CreateInvoice error: %v", err)
	}

	marked, err := invoiceSvc.MarkOverdue(invoice.ID, time.Now())
	if err != nil {
		t.Fatalf("MarkOverdue error: %v", err)
	}
	if marked.Status != constants.InvoiceStatusOverdue {
		t.Fatalf("status want overdue got %s", marked.Status)
	}

	// 重复标记为空操作
	again, err := invoiceSvc.MarkOverdue(invoice.ID, time.Now())
	if err != nil {
		t.Fatalf("repeat MarkOverdue error: %v", err)
	}
	if again.Status != constants.InvoiceStatusOverdue {
		t.Fatalf("repeat mark should keep overdue, got %s", again.Status)
	}

	// 逾期账单仍可收款
	settled, err := invoiceSvc.RecordPayment(invoice.ID, RecordPaymentInput{
		Amount: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
	})
	if err != nil {
		t.Fatalf("payment on overdue invoice error: %v", err)
	}
	if settled.Status != constants.InvoiceStatusPaid {
		t.Fatalf("status want paid got %s", settled.Status)
	}
}

func TestMarkOverdueSkipsUndueInvoice(t *testing.T) {
	db := setupServiceTestDB(t)
	invoiceSvc := newInvoiceServiceForTest(db, config.InvoiceConfig{DueDays: 30})
	customer := seedCustomer(t, db, "0300-1000006")

	invoice, err := invoiceSvc.CreateInvoice(CreateInvoiceInput{
		CustomerID: customer.ID,
		Items: []CreateInvoiceItem{
			{Description: "19L 桶装水", UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(100)), Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("CreateInvoice error: %v", err)
	}

	got, err := invoiceSvc.MarkOverdue(invoice.ID, time.Now())
	if err != nil {
		t.Fatalf("MarkOverdue error: %v", err)
	}
	if got.Status != constants.InvoiceStatusPending {
		t.Fatalf("undue invoice should stay pending, got %s", got.Status)
	}
}

func TestSweepOverdue(t *testing.T) {
	db := setupServiceTestDB(t)
	invoiceSvc := newInvoiceServiceForTest(db, config.InvoiceConfig{})
	customer := seedCustomer(t, db, "0300-1000007")

	pastDue := time.Now().Add(-48 * time.Hour)
	futureDue := time.Now().Add(48 * time.Hour)
	for _, due := range []*time.Time{&pastDue, &pastDue, &futureDue} {
		if _, err := invoiceSvc.CreateInvoice(CreateInvoiceInput{
			CustomerID: customer.ID,
			Items: []CreateInvoiceItem{
				{Description: "19L 桶装水", UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(100)), Quantity: 1},
			},
			DueDate: due,
		}); err != nil {
			t.Fatalf("CreateInvoice error: %v", err)
		}
	}

	marked, err := invoiceSvc.SweepOverdue(time.Now(), 100)
	if err != nil {
		t.Fatalf("SweepOverdue error: %v", err)
	}
	if marked != 2 {
		t.Fatalf("marked want 2 got %d", marked)
	}

	var overdueCount int64
	if err := db.Model(&models.Invoice{}).
		Where("status = ?", constants.InvoiceStatusOverdue).
		Count(&overdueCount).Error; err != nil {
		t.Fatalf("count overdue failed: %v", err)
	}
	if overdueCount != 2 {
		t.Fatalf("overdue invoices want 2 got %d", overdueCount)
	}
}

func TestCancelInvoice(t *testing.T) {
	db := setupServiceTestDB(t)
	invoiceSvc := newInvoiceServiceForTest(db, config.InvoiceConfig{})
	customer := seedCustomer(t, db, "0300-1000008")

	invoice, err := invoiceSvc.CreateInvoice(CreateInvoiceInput{
		CustomerID: customer.ID,
		Items: []CreateInvoiceItem{
			{Description: "19L 桶装水", UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(100)), Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("CreateInvoice error: %v", err)
	}

	cancelled, err := invoiceSvc.CancelInvoice(invoice.ID)
	if err != nil {
		t.Fatalf("CancelInvoice error: %v", err)
	}
	if cancelled.Status != constants.InvoiceStatusCancelled {
		t.Fatalf("status want cancelled got %s", cancelled.Status)
	}

	// 重复作废为幂等
	if _, err := invoiceSvc.CancelInvoice(invoice.ID); err != nil {
		t.Fatalf("repeat cancel should be idempotent: %v", err)
	}
}

func TestCancelPaidInvoiceRejected(t *testing.T) {
	db := setupServiceTestDB(t)
	invoiceSvc := newInvoiceServiceForTest(db, config.InvoiceConfig{})
	customer := seedCustomer(t, db, "0300-1000009")

	invoice, err := invoiceSvc.CreateInvoice(CreateInvoiceInput{
		CustomerID: customer.ID,
		Items: []CreateInvoiceItem{
			{Description: "19L 桶装水", UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(100)), Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("CreateInvoice error: %v", err)
	}
	if _, err := invoiceSvc.RecordPayment(invoice.ID, RecordPaymentInput{
		Amount: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
	}); err != nil {
		t.Fatalf("RecordPayment error: %v", err)
	}

	if _, err := invoiceSvc.CancelInvoice(invoice.ID); !errors.Is(err, ErrInvoiceStatusInvalid) {
		t.Fatalf("cancelling paid invoice want ErrInvoiceStatusInvalid got %v", err)
	}
}
