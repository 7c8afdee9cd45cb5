package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shabihhaider/waterbottle-admin/internal/constants"
	"github.com/shabihhaider/waterbottle-admin/internal/logger"
	"github.com/shabihhaider/waterbottle-admin/internal/models"
	"github.com/shabihhaider/waterbottle-admin/internal/queue"
	"github.com/shabihhaider/waterbottle-admin/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
// 下单时按当前售价快照订单项并同步扣减库存。
type OrderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	movementRepo repository.InventoryMovementRepository
	queueClient  *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, customerRepo repository.CustomerRepository, productRepo repository.ProductRepository, movementRepo repository.InventoryMovementRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		queueClient:  queueClient,
	}
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	CustomerID   uint
	Items        []CreateOrderItem
	RouteCode    string
	DeliveryDate *time.Time
	Notes        string
}

// CreateOrderItem 创建订单项输入
type CreateOrderItem struct {
	ProductID uint
	Quantity  int
}

// UpdateOrderInput 更新订单输入（nil 字段保持不变）
type UpdateOrderInput struct {
	RouteCode    *string
	DeliveryDate *time.Time
	Notes        *string
}

// 订单主链路状态流转表，取消路径单独处理
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusScheduled:      true,
		constants.OrderStatusOutForDelivery: true,
	},
	constants.OrderStatusScheduled: {
		constants.OrderStatusOutForDelivery: true,
	},
	constants.OrderStatusOutForDelivery: {
		constants.OrderStatusDelivered: true,
	},
}

func isTransitionAllowed(from, to string) bool {
	if to == constants.OrderStatusCancelled {
		return from != constants.OrderStatusDelivered
	}
	targets, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

// CreateOrder 创建订单
// 事务内写入订单与订单项、扣减库存并记录 sale 流水，允许库存扣为负。
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if input.CustomerID == 0 || len(input.Items) == 0 {
		return nil, ErrInvalidOrderItem
	}

	customer, err := s.customerRepo.GetByID(input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	items, err := mergeCreateOrderItems(input.Items)
	if err != nil {
		return nil, err
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	total := decimal.Zero
	lowStockIDs := make([]uint, 0)
	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, ErrProductNotFound
		}
		if !product.IsActive {
			return nil, ErrProductInactive
		}

		unitPrice := product.SalePrice.Decimal
		linePrice := unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(linePrice)

		orderItems = append(orderItems, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   models.NewMoneyFromDecimal(unitPrice),
			Quantity:    item.Quantity,
			TotalPrice:  models.NewMoneyFromDecimal(linePrice),
		})

		if product.Stock-item.Quantity <= product.ReorderLevel {
			lowStockIDs = append(lowStockIDs, product.ID)
		}
	}

	order := &models.Order{
		OrderNo:      generateOrderNo(),
		CustomerID:   customer.ID,
		Status:       constants.OrderStatusPending,
		RouteCode:    strings.TrimSpace(input.RouteCode),
		TotalAmount:  models.NewMoneyFromDecimal(total),
		DeliveryDate: input.DeliveryDate,
		Notes:        input.Notes,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		movementRepo := s.movementRepo.WithTx(tx)

		if err := orderRepo.Create(order, orderItems); err != nil {
			return err
		}
		for _, item := range orderItems {
			if err := productRepo.AdjustStock(item.ProductID, -item.Quantity); err != nil {
				return err
			}
			orderID := order.ID
			movement := &models.InventoryMovement{
				ProductID:      item.ProductID,
				OrderID:        &orderID,
				QuantityChange: -item.Quantity,
				Reason:         constants.MovementReasonSale,
				Note:           order.OrderNo,
			}
			if err := movementRepo.Create(movement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Errorw("order_create_failed", "customer_id", input.CustomerID, "error", err)
		return nil, err
	}

	for _, productID := range lowStockIDs {
		if err := s.queueClient.EnqueueProductStockAlert(queue.ProductStockAlertPayload{ProductID: productID}); err != nil {
			logger.Warnw("stock_alert_enqueue_failed", "product_id", productID, "error", err)
		}
	}

	logger.Infow("order_created", "order_id", order.ID, "order_no", order.OrderNo, "customer_id", customer.ID, "total_amount", order.TotalAmount.String())
	return s.GetOrder(order.ID)
}

// GetOrder 获取订单详情
func (s *OrderService) GetOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderByNo 根据订单号获取订单
func (s *OrderService) GetOrderByNo(orderNo string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(strings.TrimSpace(orderNo))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrders 获取订单列表
func (s *OrderService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// UpdateOrder 更新订单备注、路线与配送日期
// 已送达或已取消的订单不可再修改。
func (s *OrderService) UpdateOrder(id uint, input UpdateOrderInput) (*models.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}
	if order.Status == constants.OrderStatusDelivered || order.Status == constants.OrderStatusCancelled {
		return nil, ErrOrderStatusInvalid
	}

	updates := map[string]interface{}{}
	if input.RouteCode != nil {
		updates["route_code"] = strings.TrimSpace(*input.RouteCode)
	}
	if input.DeliveryDate != nil {
		updates["delivery_date"] = *input.DeliveryDate
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if len(updates) == 0 {
		return order, nil
	}

	if err := s.orderRepo.UpdateStatus(id, order.Status, updates); err != nil {
		return nil, err
	}
	return s.GetOrder(id)
}

// UpdateOrderStatus 推进订单主链路状态
// 取消请走 CancelOrder，保证库存回补。
func (s *OrderService) UpdateOrderStatus(id uint, status string) (*models.Order, error) {
	status = strings.TrimSpace(status)
	if status == constants.OrderStatusCancelled {
		return s.CancelOrder(id)
	}

	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}
	if order.Status == status {
		return order, nil
	}
	if !isTransitionAllowed(order.Status, status) {
		return nil, ErrOrderStatusInvalid
	}

	if err := s.orderRepo.UpdateStatus(id, status, nil); err != nil {
		return nil, err
	}
	logger.Infow("order_status_updated", "order_id", id, "from", order.Status, "to", status)
	return s.GetOrder(id)
}

// CancelOrder 取消订单并回补库存
// 幂等：重复取消直接返回当前订单，不会二次回补。
func (s *OrderService) CancelOrder(id uint) (*models.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}
	if order.Status == constants.OrderStatusCancelled {
		return order, nil
	}
	if order.Status == constants.OrderStatusDelivered {
		return nil, ErrOrderStatusInvalid
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		movementRepo := s.movementRepo.WithTx(tx)

		updates := map[string]interface{}{"cancelled_at": now}
		if err := orderRepo.UpdateStatus(id, constants.OrderStatusCancelled, updates); err != nil {
			return err
		}
		for _, item := range order.Items {
			if err := productRepo.AdjustStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
			orderID := order.ID
			movement := &models.InventoryMovement{
				ProductID:      item.ProductID,
				OrderID:        &orderID,
				QuantityChange: item.Quantity,
				Reason:         constants.MovementReasonCancel,
				Note:           order.OrderNo,
			}
			if err := movementRepo.Create(movement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Errorw("order_cancel_failed", "order_id", id, "error", err)
		return nil, err
	}

	logger.Infow("order_cancelled", "order_id", id, "order_no", order.OrderNo)
	return s.GetOrder(id)
}

// mergeCreateOrderItems 合并重复商品的下单项
func mergeCreateOrderItems(items []CreateOrderItem) ([]CreateOrderItem, error) {
	merged := make([]CreateOrderItem, 0, len(items))
	index := make(map[uint]int, len(items))
	for _, item := range items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return nil, ErrInvalidOrderItem
		}
		if pos, ok := index[item.ProductID]; ok {
			merged[pos].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	return merged, nil
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("%s%s%s", constants.OrderNoPrefix, now, randNumeric(6))
}

func generateInvoiceNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("%s%s%s", constants.InvoiceNoPrefix, now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
