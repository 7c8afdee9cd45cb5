package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/shabihhaider/waterbottle-admin/internal/http/response"
	"github.com/shabihhaider/waterbottle-admin/internal/repository"
	"github.com/shabihhaider/waterbottle-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateDeliveryRequest 创建配送请求
type CreateDeliveryRequest struct {
	OrderID       uint       `json:"order_id" binding:"required"`
	DriverID      *uint      `json:"driver_id"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	Notes         string     `json:"notes"`
}

// AssignDriverRequest 指派司机请求
type AssignDriverRequest struct {
	DriverID uint `json:"driver_id" binding:"required"`
}

// UpdateDeliveryStatusRequest 配送状态更新请求
type UpdateDeliveryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetDeliveries 获取配送列表
func (h *Handler) GetDeliveries(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	driverID, _ := strconv.ParseUint(c.Query("driver_id"), 10, 64)

	deliveries, total, err := h.DeliveryService.ListDeliveries(repository.DeliveryListFilter{
		Page:          page,
		PageSize:      pageSize,
		DriverID:      uint(driverID),
		Status:        c.Query("status"),
		ScheduledFrom: parseTimeQuery(c, "scheduled_from"),
		ScheduledTo:   parseTimeQuery(c, "scheduled_to"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取配送列表失败", err)
		return
	}

	response.SuccessWithPage(c, deliveries, buildPagination(page, pageSize, total))
}

// GetDelivery 获取配送详情
func (h *Handler) GetDelivery(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	delivery, err := h.DeliveryService.GetDelivery(id)
	if err != nil {
		if errors.Is(err, service.ErrDeliveryNotFound) {
			respondError(c, response.CodeNotFound, "配送记录不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "获取配送记录失败", err)
		return
	}

	response.Success(c, delivery)
}

// CreateDelivery 创建配送记录
func (h *Handler) CreateDelivery(c *gin.Context) {
	var req CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	delivery, err := h.DeliveryService.CreateDelivery(service.CreateDeliveryInput{
		OrderID:       req.OrderID,
		DriverID:      req.DriverID,
		ScheduledDate: req.ScheduledDate,
		Notes:         req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "订单不存在", nil)
		case errors.Is(err, service.ErrOrderNotDeliverable):
			respondError(c, response.CodeBadRequest, "订单当前状态不可配送", nil)
		case errors.Is(err, service.ErrDeliveryExists):
			respondError(c, response.CodeBadRequest, "订单已有配送记录", nil)
		case errors.Is(err, service.ErrDriverNotFound):
			respondError(c, response.CodeNotFound, "司机不存在", nil)
		case errors.Is(err, service.ErrDriverInactive):
			respondError(c, response.CodeBadRequest, "司机已停用", nil)
		default:
			respondError(c, response.CodeInternal, "创建配送记录失败", err)
		}
		return
	}

	response.Success(c, delivery)
}

// AssignDeliveryDriver 指派配送司机
func (h *Handler) AssignDeliveryDriver(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	delivery, err := h.DeliveryService.AssignDriver(id, req.DriverID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDeliveryNotFound):
			respondError(c, response.CodeNotFound, "配送记录不存在", nil)
		case errors.Is(err, service.ErrDeliveryStatusInvalid):
			respondError(c, response.CodeBadRequest, "配送当前状态不可指派司机", nil)
		case errors.Is(err, service.ErrDriverNotFound):
			respondError(c, response.CodeNotFound, "司机不存在", nil)
		case errors.Is(err, service.ErrDriverInactive):
			respondError(c, response.CodeBadRequest, "司机已停用", nil)
		default:
			respondError(c, response.CodeInternal, "指派司机失败", err)
		}
		return
	}

	requestLog(c).Infow("delivery_driver_assigned", "delivery_id", id, "driver_id", req.DriverID)
	response.Success(c, delivery)
}

// UpdateDeliveryStatus 推进配送状态
func (h *Handler) UpdateDeliveryStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateDeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	delivery, err := h.DeliveryService.UpdateDeliveryStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDeliveryNotFound):
			respondError(c, response.CodeNotFound, "配送记录不存在", nil)
		case errors.Is(err, service.ErrDeliveryStatusInvalid):
			respondError(c, response.CodeBadRequest, "配送状态流转不合法", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "订单状态不允许该配送流转", nil)
		default:
			respondError(c, response.CodeInternal, "更新配送状态失败", err)
		}
		return
	}

	response.Success(c, delivery)
}
