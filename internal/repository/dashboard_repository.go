package repository

import (
	"time"

	"github.com/shabihhaider/waterbottle-admin/internal/constants"
	"github.com/shabihhaider/waterbottle-admin/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘运营计数查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetCounters(todayStart time.Time) (DashboardCounterRow, error)
	GetUnpaidInvoiceTotals() (DashboardInvoiceTotalsRow, error)
}

// DashboardCounterRow 运营计数原始统计结果
type DashboardCounterRow struct {
	OrdersToday      int64
	PendingOrders    int64
	OutForDelivery   int64
	OverdueInvoices  int64
	ActiveCustomers  int64
	LowStockProducts int64
}

// DashboardInvoiceTotalsRow 未结清账单金额统计
type DashboardInvoiceTotalsRow struct {
	UnpaidTotal   float64
	UnpaidBalance float64
}

// GormDashboardRepository GORM 实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetCounters 获取运营计数
func (r *GormDashboardRepository) GetCounters(todayStart time.Time) (DashboardCounterRow, error) {
	result := DashboardCounterRow{}

	if err := r.db.Model(&models.Order{}).
		Where("created_at >= ?", todayStart).
		Count(&result.OrdersToday).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Order{}).
		Where("status = ?", constants.OrderStatusPending).
		Count(&result.PendingOrders).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Order{}).
		Where("status = ?", constants.OrderStatusOutForDelivery).
		Count(&result.OutForDelivery).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Invoice{}).
		Where("status = ?", constants.InvoiceStatusOverdue).
		Count(&result.OverdueInvoices).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Customer{}).
		Where("status IN ?", []string{constants.CustomerStatusActive, constants.CustomerStatusVIP}).
		Count(&result.ActiveCustomers).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Product{}).
		Where("is_active = ? AND stock <= reorder_level", true).
		Count(&result.LowStockProducts).Error; err != nil {
		return result, err
	}

	return result, nil
}

// GetUnpaidInvoiceTotals 获取未结清账单金额统计（pending + overdue）
func (r *GormDashboardRepository) GetUnpaidInvoiceTotals() (DashboardInvoiceTotalsRow, error) {
	result := DashboardInvoiceTotalsRow{}
	unpaid := []string{constants.InvoiceStatusPending, constants.InvoiceStatusOverdue}

	if err := r.db.Model(&models.Invoice{}).
		Where("status IN ?", unpaid).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.UnpaidTotal).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Invoice{}).
		Where("status IN ?", unpaid).
		Select("COALESCE(SUM(balance_amount), 0)").
		Scan(&result.UnpaidBalance).Error; err != nil {
		return result, err
	}

	return result, nil
}
