package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo      string         `gorm:"uniqueIndex;not null" json:"order_no"`                      // 订单编号
	CustomerID   uint           `gorm:"index;not null" json:"customer_id"`                         // 客户ID
	Status       string         `gorm:"index;not null" json:"status"`                              // 订单状态
	RouteCode    string         `gorm:"type:varchar(50);index" json:"route_code,omitempty"`        // 配送线路编码
	TotalAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 订单金额
	DeliveryDate *time.Time     `gorm:"index" json:"delivery_date"`                                // 期望配送日期
	Notes        string         `json:"notes,omitempty"`                                           // 备注
	CancelledAt  *time.Time     `gorm:"index" json:"cancelled_at"`                                 // 取消时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	// 关联
	Customer Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"` // 客户信息
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`       // 订单项
	Invoice  *Invoice    `gorm:"foreignKey:OrderID" json:"invoice,omitempty"`     // 关联账单
	Delivery *Delivery   `gorm:"foreignKey:OrderID" json:"delivery,omitempty"`    // 配送记录
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
