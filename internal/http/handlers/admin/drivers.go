package admin

import (
	"errors"
	"strconv"

	"github.com/shabihhaider/waterbottle-admin/internal/http/response"
	"github.com/shabihhaider/waterbottle-admin/internal/repository"
	"github.com/shabihhaider/waterbottle-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateDriverRequest 创建司机请求
type CreateDriverRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	VehicleNo string `json:"vehicle_no"`
	IsActive  *bool  `json:"is_active"`
}

// UpdateDriverRequest 更新司机请求
type UpdateDriverRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	VehicleNo *string `json:"vehicle_no"`
	IsActive  *bool   `json:"is_active"`
}

// GetDrivers 获取司机列表
func (h *Handler) GetDrivers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	drivers, total, err := h.DriverService.ListDrivers(repository.DriverListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     c.Query("search"),
		OnlyActive: queryBool(c, "only_active"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取司机列表失败", err)
		return
	}

	response.SuccessWithPage(c, drivers, buildPagination(page, pageSize, total))
}

// GetDriver 获取司机详情
func (h *Handler) GetDriver(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	driver, err := h.DriverService.GetDriver(id)
	if err != nil {
		if errors.Is(err, service.ErrDriverNotFound) {
			respondError(c, response.CodeNotFound, "司机不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "获取司机失败", err)
		return
	}

	response.Success(c, driver)
}

// CreateDriver 创建司机
func (h *Handler) CreateDriver(c *gin.Context) {
	var req CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	driver, err := h.DriverService.CreateDriver(service.CreateDriverInput{
		Name:      req.Name,
		Phone:     req.Phone,
		VehicleNo: req.VehicleNo,
		IsActive:  req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDriverPhoneExists):
			respondError(c, response.CodeBadRequest, "司机电话已存在", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "请求参数不合法", nil)
		default:
			respondError(c, response.CodeInternal, "创建司机失败", err)
		}
		return
	}

	response.Success(c, driver)
}

// UpdateDriver 更新司机
func (h *Handler) UpdateDriver(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	driver, err := h.DriverService.UpdateDriver(id, service.UpdateDriverInput{
		Name:      req.Name,
		Phone:     req.Phone,
		VehicleNo: req.VehicleNo,
		IsActive:  req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDriverNotFound):
			respondError(c, response.CodeNotFound, "司机不存在", nil)
		case errors.Is(err, service.ErrDriverPhoneExists):
			respondError(c, response.CodeBadRequest, "司机电话已存在", nil)
		default:
			respondError(c, response.CodeInternal, "更新司机失败", err)
		}
		return
	}

	response.Success(c, driver)
}

// DeleteDriver 删除司机
func (h *Handler) DeleteDriver(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.DriverService.DeleteDriver(id); err != nil {
		if errors.Is(err, service.ErrDriverNotFound) {
			respondError(c, response.CodeNotFound, "司机不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "删除司机失败", err)
		return
	}

	response.Success(c, nil)
}
