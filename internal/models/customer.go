package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer 客户表
type Customer struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	Name        string         `gorm:"not null;index" json:"name"`                                // 客户名称
	Phone       string         `gorm:"uniqueIndex;not null" json:"phone"`                         // 联系电话（唯一）
	Email       string         `gorm:"index" json:"email,omitempty"`                              // 邮箱
	Address     string         `json:"address,omitempty"`                                         // 配送地址
	Area        string         `gorm:"index" json:"area,omitempty"`                               // 配送区域
	Status      string         `gorm:"index;not null;default:'active'" json:"status"`             // 客户状态（active/inactive/vip）
	CreditLimit Money          `gorm:"type:decimal(20,2);not null;default:0" json:"credit_limit"` // 信用额度
	Notes       string         `json:"notes,omitempty"`                                           // 备注
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	// 关联
	Orders   []Order   `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`   // 历史订单
	Invoices []Invoice `gorm:"foreignKey:CustomerID" json:"invoices,omitempty"` // 历史账单
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}
