package service

import (
	"strings"
	"time"

	"github.com/shabihhaider/waterbottle-admin/internal/config"
	"github.com/shabihhaider/waterbottle-admin/internal/constants"
	"github.com/shabihhaider/waterbottle-admin/internal/logger"
	"github.com/shabihhaider/waterbottle-admin/internal/models"
	"github.com/shabihhaider/waterbottle-admin/internal/queue"
	"github.com/shabihhaider/waterbottle-admin/internal/repository"

	"github.com/shopspring/decimal"
)

// InvoiceService 账单服务
// 金额口径：total = subtotal + tax - discount，balance = max(0, total - paid)。
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	queueClient  *queue.Client
	cfg          config.InvoiceConfig
}

// NewInvoiceService 创建账单服务
func NewInvoiceService(invoiceRepo repository.InvoiceRepository, orderRepo repository.OrderRepository, customerRepo repository.CustomerRepository, queueClient *queue.Client, cfg config.InvoiceConfig) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		queueClient:  queueClient,
		cfg:          cfg,
	}
}

// CreateInvoiceInput 创建账单输入
// OrderID 非零时按订单项开票，否则按 Items 手工开票。
type CreateInvoiceInput struct {
	CustomerID     uint
	OrderID        uint
	Items          []CreateInvoiceItem
	DiscountAmount models.Money
	DueDate        *time.Time
	Notes          string
}

// CreateInvoiceItem 手工账单项输入
type CreateInvoiceItem struct {
	ProductID   *uint
	Description string
	UnitPrice   models.Money
	Quantity    int
}

// RecordPaymentInput 收款输入
type RecordPaymentInput struct {
	Amount models.Money
	PaidAt *time.Time
}

// CreateInvoice 创建账单
func (s *InvoiceService) CreateInvoice(input CreateInvoiceInput) (*models.Invoice, error) {
	var (
		customerID uint
		orderID    *uint
		items      []models.InvoiceItem
	)

	if input.OrderID != 0 {
		order, err := s.orderRepo.GetByID(input.OrderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, ErrOrderNotFound
		}
		if order.Status == constants.OrderStatusCancelled {
			return nil, ErrOrderStatusInvalid
		}
		existing, err := s.invoiceRepo.GetByOrderID(order.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrOrderHasInvoice
		}

		customerID = order.CustomerID
		id := order.ID
		orderID = &id
		items = make([]models.InvoiceItem, 0, len(order.Items))
		for _, item := range order.Items {
			productID := item.ProductID
			items = append(items, models.InvoiceItem{
				ProductID:   &productID,
				Description: item.ProductName,
				UnitPrice:   item.UnitPrice,
				Quantity:    item.Quantity,
				TotalPrice:  item.TotalPrice,
			})
		}
	} else {
		if input.CustomerID == 0 || len(input.Items) == 0 {
			return nil, ErrInvalidInvoiceItem
		}
		customer, err := s.customerRepo.GetByID(input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, ErrCustomerNotFound
		}

		customerID = customer.ID
		items = make([]models.InvoiceItem, 0, len(input.Items))
		for _, item := range input.Items {
			description := strings.TrimSpace(item.Description)
			if description == "" || item.Quantity <= 0 || item.UnitPrice.Decimal.IsNegative() {
				return nil, ErrInvalidInvoiceItem
			}
			linePrice := item.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
			items = append(items, models.InvoiceItem{
				ProductID:   item.ProductID,
				Description: description,
				UnitPrice:   item.UnitPrice,
				Quantity:    item.Quantity,
				TotalPrice:  models.NewMoneyFromDecimal(linePrice),
			})
		}
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.TotalPrice.Decimal)
	}
	taxRate := decimal.NewFromFloat(s.cfg.TaxRatePercent).Div(decimal.NewFromInt(100))
	tax := subtotal.Mul(taxRate).Round(2)
	discount := input.DiscountAmount.Decimal
	if discount.IsNegative() {
		return nil, ErrInvalidInvoiceItem
	}
	total := subtotal.Add(tax).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	dueDate := input.DueDate
	if dueDate == nil {
		due := time.Now().AddDate(0, 0, s.cfg.DueDays)
		dueDate = &due
	}

	invoice := &models.Invoice{
		InvoiceNo:      generateInvoiceNo(),
		CustomerID:     customerID,
		OrderID:        orderID,
		Status:         constants.InvoiceStatusPending,
		Subtotal:       models.NewMoneyFromDecimal(subtotal),
		TaxAmount:      models.NewMoneyFromDecimal(tax),
		DiscountAmount: models.NewMoneyFromDecimal(discount),
		TotalAmount:    models.NewMoneyFromDecimal(total),
		PaidAmount:     models.MoneyZero(),
		BalanceAmount:  models.NewMoneyFromDecimal(total),
		DueDate:        dueDate,
		Notes:          input.Notes,
	}

	if err := s.invoiceRepo.Create(invoice, items); err != nil {
		logger.Errorw("invoice_create_failed", "customer_id", customerID, "error", err)
		return nil, err
	}

	if err := s.queueClient.EnqueueInvoiceOverdue(queue.InvoiceOverduePayload{InvoiceID: invoice.ID}, time.Until(*dueDate)); err != nil {
		logger.Warnw("invoice_overdue_enqueue_failed", "invoice_id", invoice.ID, "error", err)
	}
	if err := s.queueClient.EnqueueInvoicePDFRender(queue.InvoicePDFRenderPayload{InvoiceID: invoice.ID}); err != nil {
		logger.Warnw("invoice_pdf_enqueue_failed", "invoice_id", invoice.ID, "error", err)
	}

	logger.Infow("invoice_created", "invoice_id", invoice.ID, "invoice_no", invoice.InvoiceNo, "total_amount", invoice.TotalAmount.String())
	return s.GetInvoice(invoice.ID)
}

// GetInvoice 获取账单详情
func (s *InvoiceService) GetInvoice(id uint) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}
	return invoice, nil
}

// ListInvoices 获取账单列表
func (s *InvoiceService) ListInvoices(filter repository.InvoiceListFilter) ([]models.Invoice, int64, error) {
	return s.invoiceRepo.List(filter)
}

// RecordPayment 记录收款
// 结清后状态置为 paid，超额收款时 balance 钳制为 0。
func (s *InvoiceService) RecordPayment(id uint, input RecordPaymentInput) (*models.Invoice, error) {
	if !input.Amount.Decimal.IsPositive() {
		return nil, ErrInvalidPaymentAmount
	}

	invoice, err := s.GetInvoice(id)
	if err != nil {
		return nil, err
	}
	if invoice.Status != constants.InvoiceStatusPending && invoice.Status != constants.InvoiceStatusOverdue {
		return nil, ErrInvoiceStatusInvalid
	}

	paid := invoice.PaidAmount.Decimal.Add(input.Amount.Decimal)
	balance := invoice.TotalAmount.Decimal.Sub(paid)
	if balance.IsNegative() {
		balance = decimal.Zero
	}

	invoice.PaidAmount = models.NewMoneyFromDecimal(paid)
	invoice.BalanceAmount = models.NewMoneyFromDecimal(balance)
	if balance.IsZero() {
		invoice.Status = constants.InvoiceStatusPaid
		paidAt := time.Now()
		if input.PaidAt != nil {
			paidAt = *input.PaidAt
		}
		invoice.PaidAt = &paidAt
	}

	if err := s.invoiceRepo.Update(invoice); err != nil {
		return nil, err
	}

	logger.Infow("invoice_payment_recorded", "invoice_id", invoice.ID, "amount", input.Amount.String(), "balance", invoice.BalanceAmount.String(), "status", invoice.Status)
	return s.GetInvoice(id)
}

// MarkOverdue 将到期未付的 pending 账单标记为 overdue
// 幂等：状态或到期时间不满足时静默返回。
func (s *InvoiceService) MarkOverdue(id uint, now time.Time) (*models.Invoice, error) {
	invoice, err := s.GetInvoice(id)
	if err != nil {
		return nil, err
	}
	if invoice.Status != constants.InvoiceStatusPending {
		return invoice, nil
	}
	if invoice.DueDate == nil || !invoice.DueDate.Before(now) {
		return invoice, nil
	}

	invoice.Status = constants.InvoiceStatusOverdue
	if err := s.invoiceRepo.Update(invoice); err != nil {
		return nil, err
	}
	logger.Infow("invoice_marked_overdue", "invoice_id", invoice.ID, "invoice_no", invoice.InvoiceNo)
	return invoice, nil
}

// SweepOverdue 批量标记到期未付账单，返回处理数量
func (s *InvoiceService) SweepOverdue(now time.Time, limit int) (int, error) {
	invoices, err := s.invoiceRepo.ListDuePending(now, limit)
	if err != nil {
		return 0, err
	}
	marked := 0
	for i := range invoices {
		invoice := invoices[i]
		invoice.Status = constants.InvoiceStatusOverdue
		if err := s.invoiceRepo.Update(&invoice); err != nil {
			logger.Warnw("invoice_overdue_sweep_failed", "invoice_id", invoice.ID, "error", err)
			continue
		}
		marked++
	}
	return marked, nil
}

// CancelInvoice 作废账单
func (s *InvoiceService) CancelInvoice(id uint) (*models.Invoice, error) {
	invoice, err := s.GetInvoice(id)
	if err != nil {
		return nil, err
	}
	if invoice.Status == constants.InvoiceStatusCancelled {
		return invoice, nil
	}
	if invoice.Status == constants.InvoiceStatusPaid {
		return nil, ErrInvoiceStatusInvalid
	}

	invoice.Status = constants.InvoiceStatusCancelled
	if err := s.invoiceRepo.Update(invoice); err != nil {
		return nil, err
	}
	logger.Infow("invoice_cancelled", "invoice_id", invoice.ID, "invoice_no", invoice.InvoiceNo)
	return invoice, nil
}
