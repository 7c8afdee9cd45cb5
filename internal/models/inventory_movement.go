package models

import "time"

// InventoryMovement 库存流水表（只追加，不修改）
type InventoryMovement struct {
	ID             uint      `gorm:"primarykey" json:"id"`              // 主键
	ProductID      uint      `gorm:"index;not null" json:"product_id"`  // 商品ID
	OrderID        *uint     `gorm:"index" json:"order_id,omitempty"`   // 关联订单ID（销售/取消时记录）
	QuantityChange int       `gorm:"not null" json:"quantity_change"`   // 带符号变动量（出库为负）
	Reason         string    `gorm:"index;not null" json:"reason"`      // 变动原因（sale/cancel/restock）
	Note           string    `json:"note,omitempty"`                    // 备注
	CreatedAt      time.Time `gorm:"index" json:"created_at"`           // 创建时间

	// 关联
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 商品信息
}

// TableName 指定表名
func (InventoryMovement) TableName() string {
	return "inventory_movements"
}
