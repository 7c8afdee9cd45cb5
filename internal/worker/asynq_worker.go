package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shabihhaider/waterbottle-admin/internal/logger"
	"github.com/shabihhaider/waterbottle-admin/internal/provider"
	"github.com/shabihhaider/waterbottle-admin/internal/queue"
	"github.com/shabihhaider/waterbottle-admin/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskInvoiceOverdue, c.handleInvoiceOverdue)
	mux.HandleFunc(queue.TaskInvoicePDFRender, c.handleInvoicePDFRender)
	mux.HandleFunc(queue.TaskProductStockAlert, c.handleProductStockAlert)
}

func (c *Consumer) handleInvoiceOverdue(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_invoice_overdue_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.InvoiceOverduePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_invoice_overdue_unmarshal_failed", "error", err)
		return err
	}
	if payload.InvoiceID == 0 {
		logger.Debugw("worker_invoice_overdue_skip_invalid_payload", "invoice_id", payload.InvoiceID)
		return nil
	}
	if c.InvoiceService == nil {
		logger.Warnw("worker_invoice_overdue_skip_service_nil", "invoice_id", payload.InvoiceID)
		return nil
	}

	_, err := c.InvoiceService.MarkOverdue(payload.InvoiceID, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrInvoiceNotFound) {
			logger.Debugw("worker_invoice_overdue_skip_not_found", "invoice_id", payload.InvoiceID)
			return nil
		}
		logger.Warnw("worker_invoice_overdue_failed", "invoice_id", payload.InvoiceID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleInvoicePDFRender(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_invoice_pdf_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.InvoicePDFRenderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_invoice_pdf_unmarshal_failed", "error", err)
		return err
	}
	if payload.InvoiceID == 0 {
		logger.Debugw("worker_invoice_pdf_skip_invalid_payload", "invoice_id", payload.InvoiceID)
		return nil
	}
	if c.InvoicePDFService == nil {
		logger.Warnw("worker_invoice_pdf_skip_service_nil", "invoice_id", payload.InvoiceID)
		return nil
	}

	_, err := c.InvoicePDFService.RenderInvoicePDF(ctx, payload.InvoiceID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvoiceNotFound):
			logger.Debugw("worker_invoice_pdf_skip_not_found", "invoice_id", payload.InvoiceID)
			return nil
		case errors.Is(err, service.ErrPDFRenderFailed):
			logger.Warnw("worker_invoice_pdf_render_failed", "invoice_id", payload.InvoiceID, "error", err)
			return err
		default:
			logger.Warnw("worker_invoice_pdf_failed", "invoice_id", payload.InvoiceID, "error", err)
			return err
		}
	}
	return nil
}

func (c *Consumer) handleProductStockAlert(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_stock_alert_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ProductStockAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_stock_alert_unmarshal_failed", "error", err)
		return err
	}
	if payload.ProductID == 0 {
		logger.Debugw("worker_stock_alert_skip_invalid_payload", "product_id", payload.ProductID)
		return nil
	}
	if c.ProductRepo == nil {
		logger.Warnw("worker_stock_alert_skip_repo_nil", "product_id", payload.ProductID)
		return nil
	}

	product, err := c.ProductRepo.GetByID(payload.ProductID)
	if err != nil {
		logger.Warnw("worker_stock_alert_fetch_failed", "product_id", payload.ProductID, "error", err)
		return err
	}
	if product == nil {
		logger.Debugw("worker_stock_alert_skip_not_found", "product_id", payload.ProductID)
		return nil
	}
	if !product.IsLowStock() {
		logger.Debugw("worker_stock_alert_skip_recovered", "product_id", product.ID, "stock", product.Stock)
		return nil
	}

	logger.Warnw("worker_stock_alert_low_stock",
		"product_id", product.ID,
		"sku", product.SKU,
		"name", product.Name,
		"stock", product.Stock,
		"reorder_level", product.ReorderLevel,
	)
	return nil
}
