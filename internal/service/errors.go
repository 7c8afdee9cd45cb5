package service

import "errors"

// 服务层哨兵错误，handler 通过 errors.Is 映射为 HTTP 状态码
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrInvalidInput       = errors.New("请求参数不合法")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrInvalidPassword    = errors.New("原密码错误")
	ErrWeakPassword       = errors.New("密码强度不足")

	ErrCustomerNotFound    = errors.New("客户不存在")
	ErrCustomerPhoneExists = errors.New("客户电话已存在")

	ErrProductNotFound  = errors.New("商品不存在")
	ErrProductSKUExists = errors.New("商品 SKU 已存在")
	ErrProductInactive  = errors.New("商品已停用")

	ErrOrderNotFound        = errors.New("订单不存在")
	ErrOrderStatusInvalid   = errors.New("订单状态流转不合法")
	ErrInvalidOrderItem     = errors.New("订单项不合法")
	ErrOrderCreateFailed    = errors.New("订单创建失败")
	ErrOrderHasInvoice      = errors.New("订单已开具账单")
	ErrOrderNotDeliverable  = errors.New("订单当前状态不可配送")

	ErrInvoiceNotFound      = errors.New("账单不存在")
	ErrInvoiceStatusInvalid = errors.New("账单状态流转不合法")
	ErrInvalidInvoiceItem   = errors.New("账单项不合法")
	ErrInvalidPaymentAmount = errors.New("收款金额不合法")
	ErrInvoiceHasNoPDF      = errors.New("账单尚未生成 PDF")

	ErrDeliveryNotFound      = errors.New("配送记录不存在")
	ErrDeliveryExists        = errors.New("订单已存在配送记录")
	ErrDeliveryStatusInvalid = errors.New("配送状态流转不合法")

	ErrDriverNotFound    = errors.New("司机不存在")
	ErrDriverPhoneExists = errors.New("司机电话已存在")
	ErrDriverInactive    = errors.New("司机已停用")

	ErrInvalidStockAdjust = errors.New("库存调整数量不合法")
	ErrPDFRenderFailed    = errors.New("PDF 渲染失败")
)
