package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/shabihhaider/waterbottle-admin/internal/http/response"
	"github.com/shabihhaider/waterbottle-admin/internal/models"
	"github.com/shabihhaider/waterbottle-admin/internal/repository"
	"github.com/shabihhaider/waterbottle-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateInvoiceRequest 创建账单请求
type CreateInvoiceRequest struct {
	CustomerID     uint                       `json:"customer_id"`
	OrderID        uint                       `json:"order_id"`
	Items          []CreateInvoiceItemRequest `json:"items"`
	DiscountAmount models.Money               `json:"discount_amount"`
	DueDate        *time.Time                 `json:"due_date"`
	Notes          string                     `json:"notes"`
}

// CreateInvoiceItemRequest 手工账单项请求
type CreateInvoiceItemRequest struct {
	ProductID   *uint        `json:"product_id"`
	Description string       `json:"description"`
	UnitPrice   models.Money `json:"unit_price"`
	Quantity    int          `json:"quantity"`
}

// RecordPaymentRequest 收款请求
type RecordPaymentRequest struct {
	Amount models.Money `json:"amount" binding:"required"`
	PaidAt *time.Time   `json:"paid_at"`
}

// GetInvoices 获取账单列表
func (h *Handler) GetInvoices(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	customerID, _ := strconv.ParseUint(c.Query("customer_id"), 10, 64)

	invoices, total, err := h.InvoiceService.ListInvoices(repository.InvoiceListFilter{
		Page:        page,
		PageSize:    pageSize,
		CustomerID:  uint(customerID),
		Status:      c.Query("status"),
		InvoiceNo:   c.Query("invoice_no"),
		CreatedFrom: parseTimeQuery(c, "created_from"),
		CreatedTo:   parseTimeQuery(c, "created_to"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取账单列表失败", err)
		return
	}

	response.SuccessWithPage(c, invoices, buildPagination(page, pageSize, total))
}

// GetInvoice 获取账单详情
func (h *Handler) GetInvoice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.InvoiceService.GetInvoice(id)
	if err != nil {
		if errors.Is(err, service.ErrInvoiceNotFound) {
			respondError(c, response.CodeNotFound, "账单不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "获取账单失败", err)
		return
	}

	response.Success(c, invoice)
}

// CreateInvoice 创建账单
func (h *Handler) CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	items := make([]service.CreateInvoiceItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CreateInvoiceItem{
			ProductID:   item.ProductID,
			Description: item.Description,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}

	invoice, err := h.InvoiceService.CreateInvoice(service.CreateInvoiceInput{
		CustomerID:     req.CustomerID,
		OrderID:        req.OrderID,
		Items:          items,
		DiscountAmount: req.DiscountAmount,
		DueDate:        req.DueDate,
		Notes:          req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "订单不存在", nil)
		case errors.Is(err, service.ErrCustomerNotFound):
			respondError(c, response.CodeNotFound, "客户不存在", nil)
		case errors.Is(err, service.ErrOrderHasInvoice):
			respondError(c, response.CodeBadRequest, "订单已开具账单", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "已取消订单不可开票", nil)
		case errors.Is(err, service.ErrInvalidInvoiceItem):
			respondError(c, response.CodeBadRequest, "账单项不合法", nil)
		default:
			respondError(c, response.CodeInternal, "创建账单失败", err)
		}
		return
	}

	response.Success(c, invoice)
}

// RecordInvoicePayment 记录收款
func (h *Handler) RecordInvoicePayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	invoice, err := h.InvoiceService.RecordPayment(id, service.RecordPaymentInput{
		Amount: req.Amount,
		PaidAt: req.PaidAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvoiceNotFound):
			respondError(c, response.CodeNotFound, "账单不存在", nil)
		case errors.Is(err, service.ErrInvalidPaymentAmount):
			respondError(c, response.CodeBadRequest, "收款金额不合法", nil)
		case errors.Is(err, service.ErrInvoiceStatusInvalid):
			respondError(c, response.CodeBadRequest, "账单当前状态不可收款", nil)
		default:
			respondError(c, response.CodeInternal, "记录收款失败", err)
		}
		return
	}

	requestLog(c).Infow("invoice_payment_received", "invoice_id", id, "amount", req.Amount.String())
	response.Success(c, invoice)
}

// CancelInvoice 作废账单
func (h *Handler) CancelInvoice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.InvoiceService.CancelInvoice(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvoiceNotFound):
			respondError(c, response.CodeNotFound, "账单不存在", nil)
		case errors.Is(err, service.ErrInvoiceStatusInvalid):
			respondError(c, response.CodeBadRequest, "已结清账单不可作废", nil)
		default:
			respondError(c, response.CodeInternal, "作废账单失败", err)
		}
		return
	}

	response.Success(c, invoice)
}

// GetInvoicePDF 获取账单 PDF 下载地址
func (h *Handler) GetInvoicePDF(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	url, err := h.InvoicePDFService.GetInvoicePDFURL(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvoiceNotFound):
			respondError(c, response.CodeNotFound, "账单不存在", nil)
		case errors.Is(err, service.ErrPDFRenderFailed):
			respondError(c, response.CodeInternal, "PDF 渲染失败", err)
		default:
			respondError(c, response.CodeInternal, "获取账单 PDF 失败", err)
		}
		return
	}

	response.Success(c, gin.H{"url": url})
}

// RenderInvoicePDF 强制重渲账单 PDF
func (h *Handler) RenderInvoicePDF(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	url, err := h.InvoicePDFService.RenderInvoicePDF(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvoiceNotFound):
			respondError(c, response.CodeNotFound, "账单不存在", nil)
		case errors.Is(err, service.ErrPDFRenderFailed):
			respondError(c, response.CodeInternal, "PDF 渲染失败", err)
		default:
			respondError(c, response.CodeInternal, "账单 PDF 渲染失败", err)
		}
		return
	}

	requestLog(c).Infow("invoice_pdf_rerendered", "invoice_id", id)
	response.Success(c, gin.H{"url": url})
}
