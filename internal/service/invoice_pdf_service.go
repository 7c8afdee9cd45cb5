package service

import (
	"context"
	"fmt"

	"github.com/shabihhaider/waterbottle-admin/internal/logger"
	"github.com/shabihhaider/waterbottle-admin/internal/models"
	"github.com/shabihhaider/waterbottle-admin/internal/pdf"
	"github.com/shabihhaider/waterbottle-admin/internal/repository"
	"github.com/shabihhaider/waterbottle-admin/internal/storage"
)

// InvoicePDFService 账单 PDF 渲染与存储
// 渲染结果写入对象存储，地址回填到账单记录。
type InvoicePDFService struct {
	invoiceRepo repository.InvoiceRepository
	renderer    *pdf.Client
	store       storage.Store
}

// NewInvoicePDFService 创建账单 PDF 服务
func NewInvoicePDFService(invoiceRepo repository.InvoiceRepository, renderer *pdf.Client, store storage.Store) *InvoicePDFService {
	return &InvoicePDFService{
		invoiceRepo: invoiceRepo,
		renderer:    renderer,
		store:       store,
	}
}

func invoicePDFKey(invoice *models.Invoice) string {
	return fmt.Sprintf("invoices/%s.pdf", invoice.InvoiceNo)
}

// RenderInvoicePDF 渲染账单 PDF 并上传
// 重复调用会覆盖旧文件，账单内容变化后可强制重渲。
func (s *InvoicePDFService) RenderInvoicePDF(ctx context.Context, invoiceID uint) (string, error) {
	invoice, err := s.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return "", err
	}
	if invoice == nil {
		return "", ErrInvoiceNotFound
	}

	html, err := pdf.InvoiceHTML(invoice)
	if err != nil {
		return "", err
	}

	data, err := s.renderer.RenderHTML(ctx, html)
	if err != nil {
		logger.Errorw("invoice_pdf_render_failed", "invoice_id", invoiceID, "error", err)
		return "", ErrPDFRenderFailed
	}

	key := invoicePDFKey(invoice)
	if err := s.store.Put(ctx, key, data, "application/pdf"); err != nil {
		logger.Errorw("invoice_pdf_store_failed", "invoice_id", invoiceID, "error", err)
		return "", err
	}

	url, err := s.store.URL(ctx, key)
	if err != nil {
		return "", err
	}
	if err := s.invoiceRepo.UpdatePDFURL(invoice.ID, url); err != nil {
		return "", err
	}

	logger.Infow("invoice_pdf_rendered", "invoice_id", invoiceID, "invoice_no", invoice.InvoiceNo, "bytes", len(data))
	return url, nil
}

// GetInvoicePDFURL 获取账单 PDF 下载地址
// 尚未渲染时即时渲染一次；预签名地址每次重新生成以避免过期。
func (s *InvoicePDFService) GetInvoicePDFURL(ctx context.Context, invoiceID uint) (string, error) {
	invoice, err := s.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return "", err
	}
	if invoice == nil {
		return "", ErrInvoiceNotFound
	}

	if invoice.PDFURL == "" {
		return s.RenderInvoicePDF(ctx, invoiceID)
	}
	return s.store.URL(ctx, invoicePDFKey(invoice))
}
