package repository

import (
	"time"

	"github.com/shabihhaider/waterbottle-admin/internal/constants"
	"github.com/shabihhaider/waterbottle-admin/internal/models"

	"gorm.io/gorm"
)

// AnalyticsRepository 分析聚合查询接口
// 说明：仅拉取窗口内的精简行集，归并计算放在 service 层。
type AnalyticsRepository interface {
	ListOrderRows(startAt, endAt time.Time) ([]AnalyticsOrderRow, error)
	ListInvoiceRows(startAt, endAt time.Time) ([]AnalyticsInvoiceRow, error)
	ListItemRows(startAt, endAt time.Time) ([]AnalyticsItemRow, error)
}

// AnalyticsOrderRow 窗口内订单精简行
type AnalyticsOrderRow struct {
	OrderID    uint
	CustomerID uint
	Status     string
	RouteCode  string
	CreatedAt  time.Time
}

// AnalyticsInvoiceRow 窗口内计入营收的账单精简行
type AnalyticsInvoiceRow struct {
	InvoiceID  uint
	CustomerID uint
	OrderID    *uint
	Total      float64
	CreatedAt  time.Time
}

// AnalyticsItemRow 窗口内订单项精简行（按下单时间归档）
type AnalyticsItemRow struct {
	ProductID   uint
	ProductName string
	Quantity    int64
	Revenue     float64
	CreatedAt   time.Time
}

// GormAnalyticsRepository GORM 实现
type GormAnalyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository 创建分析仓库
func NewAnalyticsRepository(db *gorm.DB) *GormAnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

// revenueInvoiceStatuses 计入营收的账单状态
func revenueInvoiceStatuses() []string {
	return []string{
		constants.InvoiceStatusPaid,
		constants.InvoiceStatusPending,
		constants.InvoiceStatusOverdue,
	}
}

// ListOrderRows 拉取窗口内订单行
func (r *GormAnalyticsRepository) ListOrderRows(startAt, endAt time.Time) ([]AnalyticsOrderRow, error) {
	rows := make([]AnalyticsOrderRow, 0)
	if err := r.db.Model(&models.Order{}).
		Select("id as order_id, customer_id, status, route_code, created_at").
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Order("id asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListInvoiceRows 拉取窗口内账单行（paid/pending/overdue 计入营收）
func (r *GormAnalyticsRepository) ListInvoiceRows(startAt, endAt time.Time) ([]AnalyticsInvoiceRow, error) {
	rows := make([]AnalyticsInvoiceRow, 0)
	if err := r.db.Model(&models.Invoice{}).
		Select("id as invoice_id, customer_id, order_id, total_amount as total, created_at").
		Where("created_at >= ? AND created_at < ? AND status IN ?", startAt, endAt, revenueInvoiceStatuses()).
		Order("id asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListItemRows 拉取窗口内订单项行（归并商品排行与销量）
func (r *GormAnalyticsRepository) ListItemRows(startAt, endAt time.Time) ([]AnalyticsItemRow, error) {
	rows := make([]AnalyticsItemRow, 0)
	if err := r.db.Model(&models.OrderItem{}).
		Select(`
			order_items.product_id as product_id,
			order_items.product_name as product_name,
			order_items.quantity as quantity,
			order_items.total_price as revenue,
			orders.created_at as created_at
		`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ? AND orders.created_at < ? AND orders.deleted_at IS NULL",
			startAt, endAt).
		Order("order_items.id asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
