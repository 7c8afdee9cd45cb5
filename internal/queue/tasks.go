package queue

import (
	"encoding/json"

	"github.com/shabihhaider/waterbottle-admin/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskInvoiceOverdue 账单逾期标记任务
	TaskInvoiceOverdue = constants.TaskInvoiceOverdue
	// TaskInvoicePDFRender 账单 PDF 预渲染任务
	TaskInvoicePDFRender = constants.TaskInvoicePDFRender
	// TaskProductStockAlert 商品低库存提醒任务
	TaskProductStockAlert = constants.TaskProductStockAlert
)

// InvoiceOverduePayload 账单逾期标记任务载荷
type InvoiceOverduePayload struct {
	InvoiceID uint `json:"invoice_id"`
}

// InvoicePDFRenderPayload 账单 PDF 预渲染任务载荷
type InvoicePDFRenderPayload struct {
	InvoiceID uint `json:"invoice_id"`
}

// ProductStockAlertPayload 商品低库存提醒任务载荷
type ProductStockAlertPayload struct {
	ProductID uint `json:"product_id"`
}

// NewInvoiceOverdueTask 创建账单逾期标记任务
func NewInvoiceOverdueTask(payload InvoiceOverduePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInvoiceOverdue, body), nil
}

// NewInvoicePDFRenderTask 创建账单 PDF 预渲染任务
func NewInvoicePDFRenderTask(payload InvoicePDFRenderPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInvoicePDFRender, body), nil
}

// NewProductStockAlertTask 创建商品低库存提醒任务
func NewProductStockAlertTask(payload ProductStockAlertPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskProductStockAlert, body), nil
}
