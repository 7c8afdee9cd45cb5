package models

import (
	"time"

	"gorm.io/gorm"
)

// Driver 配送司机表
type Driver struct {
	ID        uint           `gorm:"primarykey" json:"id"`                    // 主键
	Name      string         `gorm:"not null;index" json:"name"`              // 姓名
	Phone     string         `gorm:"uniqueIndex;not null" json:"phone"`       // 联系电话（唯一）
	VehicleNo string         `gorm:"type:varchar(50)" json:"vehicle_no"`      // 车牌号
	IsActive  bool           `gorm:"default:true;index" json:"is_active"`     // 是否在职
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                              // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间

	// 关联
	Deliveries []Delivery `gorm:"foreignKey:DriverID" json:"deliveries,omitempty"` // 配送记录
}

// TableName 指定表名
func (Driver) TableName() string {
	return "drivers"
}
