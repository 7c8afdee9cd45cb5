package models

import "time"

// InvoiceItem 账单项表
type InvoiceItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                     // 主键
	InvoiceID   uint      `gorm:"index;not null" json:"invoice_id"`                         // 账单ID
	ProductID   *uint     `gorm:"index" json:"product_id,omitempty"`                        // 商品ID（手工账单项可为空）
	Description string    `gorm:"not null" json:"description"`                              // 描述
	UnitPrice   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`  // 单价
	Quantity    int       `gorm:"not null" json:"quantity"`                                 // 数量
	TotalPrice  Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 小计
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                                  // 创建时间
}

// TableName 指定表名
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
