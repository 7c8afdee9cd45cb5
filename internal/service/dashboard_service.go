package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shabihhaider/waterbottle-admin/internal/cache"
	"github.com/shabihhaider/waterbottle-admin/internal/constants"
	"github.com/shabihhaider/waterbottle-admin/internal/models"
	"github.com/shabihhaider/waterbottle-admin/internal/repository"
)

const (
	dashboardCacheTTL      = 45 * time.Second
	dashboardLowStockLimit = 10
)

// DashboardService 仪表盘服务
// 说明：聚合后台首页运营计数与最近 30 天经营指标。
type DashboardService struct {
	repo        repository.DashboardRepository
	productRepo repository.ProductRepository
	analytics   *AnalyticsService
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(repo repository.DashboardRepository, productRepo repository.ProductRepository, analytics *AnalyticsService) *DashboardService {
	return &DashboardService{repo: repo, productRepo: productRepo, analytics: analytics}
}

// DashboardQueryInput 仪表盘查询输入
type DashboardQueryInput struct {
	ForceRefresh bool
}

// DashboardResponse 仪表盘响应
type DashboardResponse struct {
	Counters  DashboardCounters      `json:"counters"`
	Unpaid    DashboardUnpaid        `json:"unpaid"`
	Last30    DashboardTrailingStats `json:"last_30"`
	LowStock  []DashboardLowStock    `json:"low_stock"`
	Generated string                 `json:"generated_at"`
}

// DashboardCounters 运营计数
type DashboardCounters struct {
	OrdersToday      int64 `json:"orders_today"`
	PendingOrders    int64 `json:"pending_orders"`
	OutForDelivery   int64 `json:"out_for_delivery"`
	OverdueInvoices  int64 `json:"overdue_invoices"`
	ActiveCustomers  int64 `json:"active_customers"`
	LowStockProducts int64 `json:"low_stock_products"`
}

// DashboardUnpaid 未结清账单统计
type DashboardUnpaid struct {
	Total   string `json:"total"`
	Balance string `json:"balance"`
}

// DashboardTrailingStats 最近 30 天经营指标
type DashboardTrailingStats struct {
	RevenueTotal     string `json:"revenue_total"`
	OrdersTotal      int64  `json:"orders_total"`
	DeliveredOrders  int64  `json:"delivered_orders"`
	AvgOrderValue    string `json:"avg_order_value"`
	RevenueGrowthPct string `json:"revenue_growth_pct"`
	OrdersGrowthPct  string `json:"orders_growth_pct"`
}

// DashboardLowStock 低库存商品项
type DashboardLowStock struct {
	ProductID    uint   `json:"product_id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Stock        int    `json:"stock"`
	ReorderLevel int    `json:"reorder_level"`
}

// GetDashboard 获取仪表盘数据
func (s *DashboardService) GetDashboard(ctx context.Context, input DashboardQueryInput) (*DashboardResponse, error) {
	if s == nil || s.repo == nil {
		return &DashboardResponse{}, nil
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	cacheKey := fmt.Sprintf("dashboard:%d", todayStart.Unix())
	if !input.ForceRefresh {
		var cached DashboardResponse
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	counters, err := s.repo.GetCounters(todayStart)
	if err != nil {
		return nil, err
	}
	unpaid, err := s.repo.GetUnpaidInvoiceTotals()
	if err != nil {
		return nil, err
	}

	var lowStock []models.Product
	if s.productRepo != nil {
		lowStock, err = s.productRepo.ListLowStock(dashboardLowStockLimit)
		if err != nil {
			return nil, err
		}
	}

	trailing := DashboardTrailingStats{
		RevenueTotal:  formatMoneyValue(0),
		AvgOrderValue: formatMoneyValue(0),
	}
	if s.analytics != nil {
		overview, err := s.analytics.GetOverview(ctx, AnalyticsQueryInput{
			Range:        constants.RangePresetLast30,
			ForceRefresh: input.ForceRefresh,
		})
		if err != nil {
			return nil, err
		}
		trailing = DashboardTrailingStats{
			RevenueTotal:     overview.KPI.RevenueTotal,
			OrdersTotal:      overview.KPI.OrdersTotal,
			DeliveredOrders:  overview.KPI.DeliveredOrders,
			AvgOrderValue:    overview.KPI.AvgOrderValue,
			RevenueGrowthPct: overview.KPI.RevenueGrowthPct,
			OrdersGrowthPct:  overview.KPI.OrdersGrowthPct,
		}
	}

	lowStockItems := make([]DashboardLowStock, 0, len(lowStock))
	for _, product := range lowStock {
		lowStockItems = append(lowStockItems, DashboardLowStock{
			ProductID:    product.ID,
			SKU:          product.SKU,
			Name:         product.Name,
			Stock:        product.Stock,
			ReorderLevel: product.ReorderLevel,
		})
	}

	response := &DashboardResponse{
		Counters: DashboardCounters{
			OrdersToday:      counters.OrdersToday,
			PendingOrders:    counters.PendingOrders,
			OutForDelivery:   counters.OutForDelivery,
			OverdueInvoices:  counters.OverdueInvoices,
			ActiveCustomers:  counters.ActiveCustomers,
			LowStockProducts: counters.LowStockProducts,
		},
		Unpaid: DashboardUnpaid{
			Total:   formatMoneyValue(unpaid.UnpaidTotal),
			Balance: formatMoneyValue(unpaid.UnpaidBalance),
		},
		Last30:    trailing,
		LowStock:  lowStockItems,
		Generated: now.Format(time.RFC3339),
	}

	_ = cache.SetJSON(ctx, cacheKey, response, dashboardCacheTTL)
	return response, nil
}

func formatMoneyValue(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatPercentValue(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
