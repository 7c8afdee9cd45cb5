package models

import "time"

// Delivery 配送记录表（一单一配送）
type Delivery struct {
	ID            uint       `gorm:"primarykey" json:"id"`                           // 主键
	OrderID       uint       `gorm:"uniqueIndex;not null" json:"order_id"`           // 订单ID
	DriverID      *uint      `gorm:"index" json:"driver_id,omitempty"`               // 配送司机ID
	Status        string     `gorm:"index;not null;default:'pending'" json:"status"` // 配送状态
	ScheduledDate *time.Time `gorm:"index" json:"scheduled_date"`                    // 计划配送日期
	DeliveredAt   *time.Time `gorm:"index" json:"delivered_at"`                      // 送达时间
	Notes         string     `json:"notes,omitempty"`                                // 备注
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`                        // 创建时间
	UpdatedAt     time.Time  `json:"updated_at"`                                     // 更新时间

	// 关联
	Order  Order   `gorm:"foreignKey:OrderID" json:"order,omitempty"`   // 订单信息
	Driver *Driver `gorm:"foreignKey:DriverID" json:"driver,omitempty"` // 司机信息
}

// TableName 指定表名
func (Delivery) TableName() string {
	return "deliveries"
}
