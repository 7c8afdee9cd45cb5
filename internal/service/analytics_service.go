package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shabihhaider/waterbottle-admin/internal/cache"
	"github.com/shabihhaider/waterbottle-admin/internal/constants"
	"github.com/shabihhaider/waterbottle-admin/internal/repository"
)

const (
	analyticsCacheTTL = 45 * time.Second
	analyticsTopLimit = 10
)

// AnalyticsService 经营分析服务
// 仓库层只拉取窗口内精简行集，归并与排序在内存完成。
type AnalyticsService struct {
	repo         repository.AnalyticsRepository
	customerRepo repository.CustomerRepository
}

// NewAnalyticsService 创建分析服务
func NewAnalyticsService(repo repository.AnalyticsRepository, customerRepo repository.CustomerRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo, customerRepo: customerRepo}
}

// AnalyticsQueryInput 分析查询输入
type AnalyticsQueryInput struct {
	Range        string
	From         *time.Time
	To           *time.Time
	ForceRefresh bool
}

// AnalyticsOverviewResponse 分析总览响应
type AnalyticsOverviewResponse struct {
	Range        string                  `json:"range"`
	From         string                  `json:"from"`
	To           string                  `json:"to"`
	KPI          AnalyticsKPI            `json:"kpi"`
	Series       []AnalyticsSeriesPoint  `json:"series"`
	StatusCounts []AnalyticsStatusCount  `json:"status_counts"`
	TopProducts  []AnalyticsProductRank  `json:"top_products"`
	TopCustomers []AnalyticsCustomerRank `json:"top_customers"`
	Channels     []AnalyticsChannelRank  `json:"channels"`
}

// AnalyticsKPI 窗口核心指标
type AnalyticsKPI struct {
	RevenueTotal     string `json:"revenue_total"`
	OrdersTotal      int64  `json:"orders_total"`
	DeliveredOrders  int64  `json:"delivered_orders"`
	CancelledOrders  int64  `json:"cancelled_orders"`
	ActiveCustomers  int64  `json:"active_customers"`
	AvgOrderValue    string `json:"avg_order_value"`
	RevenueGrowthPct string `json:"revenue_growth_pct"`
	OrdersGrowthPct  string `json:"orders_growth_pct"`
}

// AnalyticsSeriesPoint 按日序列点（窗口内逐日补零）
type AnalyticsSeriesPoint struct {
	Date    string `json:"date"`
	Orders  int64  `json:"orders"`
	Revenue string `json:"revenue"`
}

// AnalyticsStatusCount 订单状态分布项
type AnalyticsStatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// AnalyticsProductRank 商品排行项
type AnalyticsProductRank struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	Revenue   string `json:"revenue"`
}

// AnalyticsCustomerRank 客户排行项
type AnalyticsCustomerRank struct {
	CustomerID uint   `json:"customer_id"`
	Name       string `json:"name"`
	Orders     int64  `json:"orders"`
	Revenue    string `json:"revenue"`
}

// AnalyticsChannelRank 配送路线（渠道）排行项
type AnalyticsChannelRank struct {
	RouteCode string `json:"route_code"`
	Orders    int64  `json:"orders"`
	Revenue   string `json:"revenue"`
}

type analyticsWindow struct {
	rangeKey string
	startAt  time.Time
	endAt    time.Time
}

// dayKey 以窗口时区生成序列日键，保证与补零游标一致
func (w analyticsWindow) dayKey(t time.Time) string {
	return t.In(w.startAt.Location()).Format("2006-01-02")
}

// resolveAnalyticsWindow 解析查询窗口
// 无错误路径：未命中预设时优先使用显式日期，否则回退到最近 30 天。
func resolveAnalyticsWindow(input AnalyticsQueryInput, now time.Time) analyticsWindow {
	rangeKey := strings.ToLower(strings.TrimSpace(input.Range))
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endAt := todayStart.AddDate(0, 0, 1)

	switch rangeKey {
	case constants.RangePresetLast7:
		return analyticsWindow{rangeKey: rangeKey, startAt: todayStart.AddDate(0, 0, -6), endAt: endAt}
	case constants.RangePresetLast30:
		return analyticsWindow{rangeKey: rangeKey, startAt: todayStart.AddDate(0, 0, -29), endAt: endAt}
	case constants.RangePresetLast90:
		return analyticsWindow{rangeKey: rangeKey, startAt: todayStart.AddDate(0, 0, -89), endAt: endAt}
	case constants.RangePresetYTD:
		yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return analyticsWindow{rangeKey: rangeKey, startAt: yearStart, endAt: endAt}
	}

	// custom 或未指定预设时，显式 from/to 优先生效
	if input.From != nil && input.To != nil {
		from := input.From.In(now.Location())
		to := input.To.In(now.Location())
		startAt := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, now.Location())
		customEnd := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
		if customEnd.After(startAt) {
			return analyticsWindow{rangeKey: constants.RangePresetCustom, startAt: startAt, endAt: customEnd}
		}
	}
	return analyticsWindow{rangeKey: constants.RangePresetLast30, startAt: todayStart.AddDate(0, 0, -29), endAt: endAt}
}

// GetOverview 获取窗口经营总览
func (s *AnalyticsService) GetOverview(ctx context.Context, input AnalyticsQueryInput) (*AnalyticsOverviewResponse, error) {
	if s == nil || s.repo == nil {
		return &AnalyticsOverviewResponse{}, nil
	}

	window := resolveAnalyticsWindow(input, time.Now())

	cacheKey := fmt.Sprintf("analytics:overview:%s:%d:%d", window.rangeKey, window.startAt.Unix(), window.endAt.Unix())
	if !input.ForceRefresh {
		var cached AnalyticsOverviewResponse
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	orderRows, err := s.repo.ListOrderRows(window.startAt, window.endAt)
	if err != nil {
		return nil, err
	}
	invoiceRows, err := s.repo.ListInvoiceRows(window.startAt, window.endAt)
	if err != nil {
		return nil, err
	}
	itemRows, err := s.repo.ListItemRows(window.startAt, window.endAt)
	if err != nil {
		return nil, err
	}

	prevStart := window.startAt.Add(-window.endAt.Sub(window.startAt))
	prevOrderRows, err := s.repo.ListOrderRows(prevStart, window.startAt)
	if err != nil {
		return nil, err
	}
	prevInvoiceRows, err := s.repo.ListInvoiceRows(prevStart, window.startAt)
	if err != nil {
		return nil, err
	}

	response := s.buildOverview(window, orderRows, invoiceRows, itemRows, prevOrderRows, prevInvoiceRows)

	_ = cache.SetJSON(ctx, cacheKey, response, analyticsCacheTTL)
	return response, nil
}

func (s *AnalyticsService) buildOverview(window analyticsWindow, orderRows []repository.AnalyticsOrderRow, invoiceRows []repository.AnalyticsInvoiceRow, itemRows []repository.AnalyticsItemRow, prevOrderRows []repository.AnalyticsOrderRow, prevInvoiceRows []repository.AnalyticsInvoiceRow) *AnalyticsOverviewResponse {
	var revenueTotal float64
	statusCounts := make(map[string]int64)
	ordersByDay := make(map[string]int64)
	revenueByDay := make(map[string]float64)
	customersSeen := make(map[uint]bool)
	orderRoute := make(map[uint]string, len(orderRows))
	channelOrders := make(map[string]int64)
	channelRevenue := make(map[string]float64)
	customerOrders := make(map[uint]int64)
	customerRevenue := make(map[uint]float64)

	// 窗口内所有订单计入计数类指标，取消订单不另行剔除
	for _, row := range orderRows {
		statusCounts[row.Status]++
		route := strings.TrimSpace(row.RouteCode)
		if route == "" {
			route = constants.ChannelUnassigned
		}
		orderRoute[row.OrderID] = route

		ordersByDay[window.dayKey(row.CreatedAt)]++
		customersSeen[row.CustomerID] = true
		channelOrders[route]++
		customerOrders[row.CustomerID]++
	}
	ordersTotal := int64(len(orderRows))

	for _, row := range invoiceRows {
		revenueTotal += row.Total
		revenueByDay[window.dayKey(row.CreatedAt)] += row.Total
		customerRevenue[row.CustomerID] += row.Total

		route := constants.ChannelUnassigned
		if row.OrderID != nil {
			if r, ok := orderRoute[*row.OrderID]; ok {
				route = r
			}
		}
		channelRevenue[route] += row.Total
	}

	prevRevenue := 0.0
	for _, row := range prevInvoiceRows {
		prevRevenue += row.Total
	}
	prevOrders := int64(len(prevOrderRows))

	avgOrderValue := 0.0
	if ordersTotal > 0 {
		avgOrderValue = revenueTotal / float64(ordersTotal)
	}

	points := make([]AnalyticsSeriesPoint, 0)
	for cursor := window.startAt; cursor.Before(window.endAt); cursor = cursor.AddDate(0, 0, 1) {
		day := cursor.Format("2006-01-02")
		points = append(points, AnalyticsSeriesPoint{
			Date:    day,
			Orders:  ordersByDay[day],
			Revenue: formatMoneyValue(revenueByDay[day]),
		})
	}

	statuses := make([]AnalyticsStatusCount, 0, len(statusCounts))
	for _, status := range []string{
		constants.OrderStatusPending,
		constants.OrderStatusScheduled,
		constants.OrderStatusOutForDelivery,
		constants.OrderStatusDelivered,
		constants.OrderStatusCancelled,
	} {
		if count, ok := statusCounts[status]; ok {
			statuses = append(statuses, AnalyticsStatusCount{Status: status, Count: count})
		}
	}
	deliveredOrders := statusCounts[constants.OrderStatusDelivered]
	cancelledOrders := statusCounts[constants.OrderStatusCancelled]

	productAgg := make(map[uint]*AnalyticsProductRank)
	productRevenue := make(map[uint]float64)
	for _, row := range itemRows {
		entry, ok := productAgg[row.ProductID]
		if !ok {
			entry = &AnalyticsProductRank{ProductID: row.ProductID, Name: row.ProductName}
			productAgg[row.ProductID] = entry
		}
		entry.Quantity += row.Quantity
		productRevenue[row.ProductID] += row.Revenue
	}
	topProducts := make([]AnalyticsProductRank, 0, len(productAgg))
	for id, entry := range productAgg {
		entry.Revenue = formatMoneyValue(productRevenue[id])
		topProducts = append(topProducts, *entry)
	}
	sort.Slice(topProducts, func(i, j int) bool {
		ri, rj := productRevenue[topProducts[i].ProductID], productRevenue[topProducts[j].ProductID]
		if ri == rj {
			return topProducts[i].ProductID < topProducts[j].ProductID
		}
		return ri > rj
	})
	if len(topProducts) > analyticsTopLimit {
		topProducts = topProducts[:analyticsTopLimit]
	}

	topCustomers := make([]AnalyticsCustomerRank, 0, len(customerRevenue))
	for id, revenue := range customerRevenue {
		topCustomers = append(topCustomers, AnalyticsCustomerRank{
			CustomerID: id,
			Orders:     customerOrders[id],
			Revenue:    formatMoneyValue(revenue),
		})
	}
	sort.Slice(topCustomers, func(i, j int) bool {
		ri, rj := customerRevenue[topCustomers[i].CustomerID], customerRevenue[topCustomers[j].CustomerID]
		if ri == rj {
			return topCustomers[i].CustomerID < topCustomers[j].CustomerID
		}
		return ri > rj
	})
	if len(topCustomers) > analyticsTopLimit {
		topCustomers = topCustomers[:analyticsTopLimit]
	}
	s.fillCustomerNames(topCustomers)

	channelKeys := make([]string, 0, len(channelOrders)+len(channelRevenue))
	seenChannel := make(map[string]bool)
	for key := range channelOrders {
		if !seenChannel[key] {
			seenChannel[key] = true
			channelKeys = append(channelKeys, key)
		}
	}
	for key := range channelRevenue {
		if !seenChannel[key] {
			seenChannel[key] = true
			channelKeys = append(channelKeys, key)
		}
	}
	channels := make([]AnalyticsChannelRank, 0, len(channelKeys))
	for _, key := range channelKeys {
		channels = append(channels, AnalyticsChannelRank{
			RouteCode: key,
			Orders:    channelOrders[key],
			Revenue:   formatMoneyValue(channelRevenue[key]),
		})
	}
	sort.Slice(channels, func(i, j int) bool {
		ri, rj := channelRevenue[channels[i].RouteCode], channelRevenue[channels[j].RouteCode]
		if ri == rj {
			return channels[i].RouteCode < channels[j].RouteCode
		}
		return ri > rj
	})

	return &AnalyticsOverviewResponse{
		Range: window.rangeKey,
		From:  window.startAt.Format(time.RFC3339),
		To:    window.endAt.Add(-time.Second).Format(time.RFC3339),
		KPI: AnalyticsKPI{
			RevenueTotal:     formatMoneyValue(revenueTotal),
			OrdersTotal:      ordersTotal,
			DeliveredOrders:  deliveredOrders,
			CancelledOrders:  cancelledOrders,
			ActiveCustomers:  int64(len(customersSeen)),
			AvgOrderValue:    formatMoneyValue(avgOrderValue),
			RevenueGrowthPct: formatPercentValue(growthPercent(prevRevenue, revenueTotal)),
			OrdersGrowthPct:  formatPercentValue(growthPercent(float64(prevOrders), float64(ordersTotal))),
		},
		Series:       points,
		StatusCounts: statuses,
		TopProducts:  topProducts,
		TopCustomers: topCustomers,
		Channels:     channels,
	}
}

// growthPercent 环比增长率
// 上期为 0 且本期为 0 返回 0，上期为 0 且本期大于 0 返回 100。
func growthPercent(previous, current float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (current - previous) / previous * 100
}

func (s *AnalyticsService) fillCustomerNames(ranks []AnalyticsCustomerRank) {
	if s == nil || s.customerRepo == nil {
		return
	}
	for i := range ranks {
		customer, err := s.customerRepo.GetByID(ranks[i].CustomerID)
		if err != nil || customer == nil {
			continue
		}
		ranks[i].Name = customer.Name
	}
}
