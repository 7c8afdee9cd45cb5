package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表（桶装水及相关产品）
type Product struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                    // 主键
	SKU          string         `gorm:"uniqueIndex;not null" json:"sku"`                         // 商品编码（唯一）
	Name         string         `gorm:"not null;index" json:"name"`                              // 商品名称
	Unit         string         `gorm:"type:varchar(50)" json:"unit,omitempty"`                  // 计量单位（如 19L bottle）
	CostPrice    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"cost_price"` // 成本价
	SalePrice    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"sale_price"` // 销售价
	Stock        int            `gorm:"not null;default:0" json:"stock"`                         // 当前库存（允许为负，代表欠发）
	ReorderLevel int            `gorm:"not null;default:0" json:"reorder_level"`                 // 补货阈值
	IsActive     bool           `gorm:"default:true;index" json:"is_active"`                     // 是否在售
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                                              // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间

	// 关联
	Movements []InventoryMovement `gorm:"foreignKey:ProductID" json:"movements,omitempty"` // 库存流水
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// IsLowStock 库存是否到达补货阈值
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.ReorderLevel
}
