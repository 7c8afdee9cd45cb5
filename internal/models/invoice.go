package models

import (
	"time"

	"gorm.io/gorm"
)

// Invoice 账单表
type Invoice struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                         // 主键
	InvoiceNo      string         `gorm:"uniqueIndex;not null" json:"invoice_no"`                       // 账单编号
	CustomerID     uint           `gorm:"index;not null" json:"customer_id"`                            // 客户ID
	OrderID        *uint          `gorm:"uniqueIndex" json:"order_id,omitempty"`                        // 关联订单ID（一单一账单）
	Status         string         `gorm:"index;not null" json:"status"`                                 // 账单状态
	Subtotal       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`        // 商品小计
	TaxAmount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax_amount"`      // 税额
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 优惠金额
	TotalAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`    // 应收总额
	PaidAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"paid_amount"`     // 已收金额
	BalanceAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"balance_amount"`  // 未收余额（不为负）
	DueDate        *time.Time     `gorm:"index" json:"due_date"`                                        // 到期日
	PaidAt         *time.Time     `gorm:"index" json:"paid_at"`                                         // 结清时间
	PDFURL         string         `json:"pdf_url,omitempty"`                                            // 已生成 PDF 地址
	Notes          string         `json:"notes,omitempty"`                                              // 备注
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	// 关联
	Customer Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"` // 客户信息
	Order    *Order        `gorm:"foreignKey:OrderID" json:"order,omitempty"`       // 关联订单
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`     // 账单项
}

// TableName 指定表名
func (Invoice) TableName() string {
	return "invoices"
}
