package constants

// 订单状态常量
const (
	OrderStatusPending        = "pending"
	OrderStatusScheduled      = "scheduled"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// 账单状态常量
const (
	InvoiceStatusPending   = "pending"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// 配送状态常量
const (
	DeliveryStatusPending        = "pending"
	DeliveryStatusScheduled      = "scheduled"
	DeliveryStatusOutForDelivery = "out_for_delivery"
	DeliveryStatusDelivered      = "delivered"
	DeliveryStatusFailed         = "failed"
	DeliveryStatusCancelled      = "cancelled"
)

// 客户状态常量
const (
	CustomerStatusActive   = "active"
	CustomerStatusInactive = "inactive"
	CustomerStatusVIP      = "vip"
)

// 库存流水原因常量
const (
	MovementReasonSale    = "sale"
	MovementReasonCancel  = "cancel"
	MovementReasonRestock = "restock"
)

// 分析时间范围预设常量
const (
	RangePresetLast7  = "last_7"
	RangePresetLast30 = "last_30"
	RangePresetLast90 = "last_90"
	RangePresetYTD    = "ytd"
	RangePresetCustom = "custom"
)

// 渠道兜底分组（订单未指定线路时）
const ChannelUnassigned = "unassigned"

// 队列常量
const (
	QueueDefault          = "default"
	QueueCritical         = "critical"
	TaskInvoiceOverdue    = "invoice:overdue_mark"
	TaskInvoicePDFRender  = "invoice:pdf_render"
	TaskProductStockAlert = "product:stock_alert"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "hp"
)

// 单号前缀常量
const (
	OrderNoPrefix   = "ORD"
	InvoiceNoPrefix = "INV"
)
