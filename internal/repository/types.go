package repository

import "time"

// CustomerListFilter 查询客户列表的过滤条件
type CustomerListFilter struct {
	Page     int
	PageSize int
	Search   string
	Status   string
	Area     string
}

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	Search       string
	OnlyActive   bool
	LowStockOnly bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	CustomerID  uint
	Status      string
	OrderNo     string
	RouteCode   string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// InvoiceListFilter 查询账单列表的过滤条件
type InvoiceListFilter struct {
	Page        int
	PageSize    int
	CustomerID  uint
	Status      string
	InvoiceNo   string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// DeliveryListFilter 查询配送列表的过滤条件
type DeliveryListFilter struct {
	Page          int
	PageSize      int
	DriverID      uint
	Status        string
	ScheduledFrom *time.Time
	ScheduledTo   *time.Time
}

// DriverListFilter 查询司机列表的过滤条件
type DriverListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}

// MovementListFilter 查询库存流水列表的过滤条件
type MovementListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
	Reason    string
}
