package service

import (
	"strings"
	"time"

	"github.com/shabihhaider/waterbottle-admin/internal/constants"
	"github.com/shabihhaider/waterbottle-admin/internal/logger"
	"github.com/shabihhaider/waterbottle-admin/internal/models"
	"github.com/shabihhaider/waterbottle-admin/internal/repository"

	"gorm.io/gorm"
)

// DeliveryService 配送服务
// 配送状态变化会在同一事务内同步订单主链路状态。
type DeliveryService struct {
	deliveryRepo repository.DeliveryRepository
	orderRepo    repository.OrderRepository
	driverRepo   repository.DriverRepository
}

// NewDeliveryService 创建配送服务
func NewDeliveryService(deliveryRepo repository.DeliveryRepository, orderRepo repository.OrderRepository, driverRepo repository.DriverRepository) *DeliveryService {
	return &DeliveryService{
		deliveryRepo: deliveryRepo,
		orderRepo:    orderRepo,
		driverRepo:   driverRepo,
	}
}

// CreateDeliveryInput 创建配送输入
type CreateDeliveryInput struct {
	OrderID       uint
	DriverID      *uint
	ScheduledDate *time.Time
	Notes         string
}

var allowedDeliveryTransitions = map[string]map[string]bool{
	constants.DeliveryStatusPending: {
		constants.DeliveryStatusScheduled:      true,
		constants.DeliveryStatusOutForDelivery: true,
	},
	constants.DeliveryStatusScheduled: {
		constants.DeliveryStatusOutForDelivery: true,
	},
	constants.DeliveryStatusOutForDelivery: {
		constants.DeliveryStatusDelivered: true,
		constants.DeliveryStatusFailed:    true,
	},
	constants.DeliveryStatusFailed: {
		constants.DeliveryStatusOutForDelivery: true,
	},
}

func isDeliveryTransitionAllowed(from, to string) bool {
	if to == constants.DeliveryStatusCancelled {
		return from != constants.DeliveryStatusDelivered
	}
	targets, ok := allowedDeliveryTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

// CreateDelivery 为订单创建配送记录（一单一配送）
func (s *DeliveryService) CreateDelivery(input CreateDeliveryInput) (*models.Delivery, error) {
	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == constants.OrderStatusCancelled || order.Status == constants.OrderStatusDelivered {
		return nil, ErrOrderNotDeliverable
	}

	existing, err := s.deliveryRepo.GetByOrderID(order.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDeliveryExists
	}

	if input.DriverID != nil {
		if err := s.checkDriverAssignable(*input.DriverID); err != nil {
			return nil, err
		}
	}

	status := constants.DeliveryStatusPending
	if input.ScheduledDate != nil {
		status = constants.DeliveryStatusScheduled
	}

	delivery := &models.Delivery{
		OrderID:       order.ID,
		DriverID:      input.DriverID,
		Status:        status,
		ScheduledDate: input.ScheduledDate,
		Notes:         input.Notes,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		deliveryRepo := s.deliveryRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		if err := deliveryRepo.Create(delivery); err != nil {
			return err
		}
		if status == constants.DeliveryStatusScheduled && order.Status == constants.OrderStatusPending {
			if err := orderRepo.UpdateStatus(order.ID, constants.OrderStatusScheduled, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Errorw("delivery_create_failed", "order_id", order.ID, "error", err)
		return nil, err
	}

	logger.Infow("delivery_created", "delivery_id", delivery.ID, "order_id", order.ID, "status", delivery.Status)
	return s.GetDelivery(delivery.ID)
}

// GetDelivery 获取配送详情
func (s *DeliveryService) GetDelivery(id uint) (*models.Delivery, error) {
	delivery, err := s.deliveryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if delivery == nil {
		return nil, ErrDeliveryNotFound
	}
	return delivery, nil
}

// ListDeliveries 获取配送列表
func (s *DeliveryService) ListDeliveries(filter repository.DeliveryListFilter) ([]models.Delivery, int64, error) {
	return s.deliveryRepo.List(filter)
}

// AssignDriver 指派司机
func (s *DeliveryService) AssignDriver(id uint, driverID uint) (*models.Delivery, error) {
	delivery, err := s.GetDelivery(id)
	if err != nil {
		return nil, err
	}
	if delivery.Status == constants.DeliveryStatusDelivered || delivery.Status == constants.DeliveryStatusCancelled {
		return nil, ErrDeliveryStatusInvalid
	}
	if err := s.checkDriverAssignable(driverID); err != nil {
		return nil, err
	}

	delivery.DriverID = &driverID
	if err := s.deliveryRepo.Update(delivery); err != nil {
		return nil, err
	}
	logger.Infow("delivery_driver_assigned", "delivery_id", delivery.ID, "driver_id", driverID)
	return s.GetDelivery(id)
}

// UpdateDeliveryStatus 推进配送状态并同步订单
// delivered 会在同一事务内把订单推进到 delivered 并记录送达时间。
func (s *DeliveryService) UpdateDeliveryStatus(id uint, status string) (*models.Delivery, error) {
	status = strings.TrimSpace(status)
	delivery, err := s.GetDelivery(id)
	if err != nil {
		return nil, err
	}
	if delivery.Status == status {
		return delivery, nil
	}
	if !isDeliveryTransitionAllowed(delivery.Status, status) {
		return nil, ErrDeliveryStatusInvalid
	}

	order, err := s.orderRepo.GetByID(delivery.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	previous := delivery.Status
	delivery.Status = status
	var deliveredAt *time.Time
	if status == constants.DeliveryStatusDelivered {
		now := time.Now()
		deliveredAt = &now
		delivery.DeliveredAt = deliveredAt
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		deliveryRepo := s.deliveryRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		if err := deliveryRepo.Update(delivery); err != nil {
			return err
		}

		switch status {
		case constants.DeliveryStatusScheduled:
			if order.Status == constants.OrderStatusPending {
				return orderRepo.UpdateStatus(order.ID, constants.OrderStatusScheduled, nil)
			}
		case constants.DeliveryStatusOutForDelivery:
			if isTransitionAllowed(order.Status, constants.OrderStatusOutForDelivery) {
				return orderRepo.UpdateStatus(order.ID, constants.OrderStatusOutForDelivery, nil)
			}
		case constants.DeliveryStatusDelivered:
			if isTransitionAllowed(order.Status, constants.OrderStatusDelivered) {
				return orderRepo.UpdateStatus(order.ID, constants.OrderStatusDelivered, nil)
			}
		}
		return nil
	})
	if err != nil {
		delivery.Status = previous
		delivery.DeliveredAt = nil
		logger.Errorw("delivery_status_update_failed", "delivery_id", id, "to", status, "error", err)
		return nil, err
	}

	logger.Infow("delivery_status_updated", "delivery_id", id, "order_id", order.ID, "from", previous, "to", status)
	return s.GetDelivery(id)
}

func (s *DeliveryService) checkDriverAssignable(driverID uint) error {
	driver, err := s.driverRepo.GetByID(driverID)
	if err != nil {
		return err
	}
	if driver == nil {
		return ErrDriverNotFound
	}
	if !driver.IsActive {
		return ErrDriverInactive
	}
	return nil
}
