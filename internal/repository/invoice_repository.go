package repository

import (
	"errors"
	"time"

	"github.com/shabihhaider/waterbottle-admin/internal/constants"
	"github.com/shabihhaider/waterbottle-admin/internal/models"

	"gorm.io/gorm"
)

// InvoiceRepository 账单数据访问接口
type InvoiceRepository interface {
	Create(invoice *models.Invoice, items []models.InvoiceItem) error
	GetByID(id uint) (*models.Invoice, error)
	GetByOrderID(orderID uint) (*models.Invoice, error)
	List(filter InvoiceListFilter) ([]models.Invoice, int64, error)
	Update(invoice *models.Invoice) error
	UpdatePDFURL(id uint, url string) error
	ListDuePending(before time.Time, limit int) ([]models.Invoice, error)
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormInvoiceRepository
}

// GormInvoiceRepository GORM 实现
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository 创建账单仓库
func NewInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// WithTx 绑定事务
func (r *GormInvoiceRepository) WithTx(tx *gorm.DB) *GormInvoiceRepository {
	if tx == nil {
		return r
	}
	return &GormInvoiceRepository{db: tx}
}

// Create 创建账单与账单项
func (r *GormInvoiceRepository) Create(invoice *models.Invoice, items []models.InvoiceItem) error {
	if err := r.db.Create(invoice).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].InvoiceID = invoice.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID 根据 ID 获取账单
func (r *GormInvoiceRepository) GetByID(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	query := r.db.Preload("Items").Preload("Customer").Preload("Order")
	if err := query.First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

// GetByOrderID 根据订单 ID 获取账单（一单一账单）
func (r *GormInvoiceRepository) GetByOrderID(orderID uint) (*models.Invoice, error) {
	if orderID == 0 {
		return nil, nil
	}
	var invoice models.Invoice
	if err := r.db.Where("order_id = ?", orderID).First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

// List 获取账单列表
func (r *GormInvoiceRepository) List(filter InvoiceListFilter) ([]models.Invoice, int64, error) {
	var invoices []models.Invoice
	query := r.db.Model(&models.Invoice{})

	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.InvoiceNo != "" {
		query = query.Where("invoice_no LIKE ?", "%"+filter.InvoiceNo+"%")
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at < ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Customer").Order("id desc").Find(&invoices).Error; err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

// Update 更新账单
func (r *GormInvoiceRepository) Update(invoice *models.Invoice) error {
	return r.db.Save(invoice).Error
}

// UpdatePDFURL 记录已生成的 PDF 地址
func (r *GormInvoiceRepository) UpdatePDFURL(id uint, url string) error {
	return r.db.Model(&models.Invoice{}).Where("id = ?", id).Update("pdf_url", url).Error
}

// ListDuePending 获取已过期但仍为 pending 的账单（逾期扫描用）
func (r *GormInvoiceRepository) ListDuePending(before time.Time, limit int) ([]models.Invoice, error) {
	invoices := make([]models.Invoice, 0)
	query := r.db.Model(&models.Invoice{}).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", constants.InvoiceStatusPending, before).
		Order("due_date asc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Delete 删除账单（软删除）
func (r *GormInvoiceRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Invoice{}, id).Error
}
