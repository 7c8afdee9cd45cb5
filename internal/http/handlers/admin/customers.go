package admin

import (
	"errors"
	"strconv"

	"github.com/shabihhaider/waterbottle-admin/internal/http/response"
	"github.com/shabihhaider/waterbottle-admin/internal/models"
	"github.com/shabihhaider/waterbottle-admin/internal/repository"
	"github.com/shabihhaider/waterbottle-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateCustomerRequest 创建客户请求
type CreateCustomerRequest struct {
	Name        string       `json:"name" binding:"required"`
	Phone       string       `json:"phone" binding:"required"`
	Email       string       `json:"email"`
	Address     string       `json:"address"`
	Area        string       `json:"area"`
	Status      string       `json:"status"`
	CreditLimit models.Money `json:"credit_limit"`
	Notes       string       `json:"notes"`
}

// UpdateCustomerRequest 更新客户请求
type UpdateCustomerRequest struct {
	Name        *string       `json:"name"`
	Phone       *string       `json:"phone"`
	Email       *string       `json:"email"`
	Address     *string       `json:"address"`
	Area        *string       `json:"area"`
	Status      *string       `json:"status"`
	CreditLimit *models.Money `json:"credit_limit"`
	Notes       *string       `json:"notes"`
}

// GetCustomers 获取客户列表
func (h *Handler) GetCustomers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	customers, total, err := h.CustomerService.ListCustomers(repository.CustomerListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Area:     c.Query("area"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取客户列表失败", err)
		return
	}

	response.SuccessWithPage(c, customers, buildPagination(page, pageSize, total))
}

// GetCustomer 获取客户详情
func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.CustomerService.GetCustomer(id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			respondError(c, response.CodeNotFound, "客户不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "获取客户失败", err)
		return
	}

	response.Success(c, customer)
}

// CreateCustomer 创建客户
func (h *Handler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	customer, err := h.CustomerService.CreateCustomer(service.CreateCustomerInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		Area:        req.Area,
		Status:      req.Status,
		CreditLimit: req.CreditLimit,
		Notes:       req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCustomerPhoneExists):
			respondError(c, response.CodeBadRequest, "客户电话已存在", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "请求参数不合法", nil)
		default:
			respondError(c, response.CodeInternal, "创建客户失败", err)
		}
		return
	}

	response.Success(c, customer)
}

// UpdateCustomer 更新客户
func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	customer, err := h.CustomerService.UpdateCustomer(id, service.UpdateCustomerInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		Area:        req.Area,
		Status:      req.Status,
		CreditLimit: req.CreditLimit,
		Notes:       req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCustomerNotFound):
			respondError(c, response.CodeNotFound, "客户不存在", nil)
		case errors.Is(err, service.ErrCustomerPhoneExists):
			respondError(c, response.CodeBadRequest, "客户电话已存在", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "请求参数不合法", nil)
		default:
			respondError(c, response.CodeInternal, "更新客户失败", err)
		}
		return
	}

	response.Success(c, customer)
}

// DeleteCustomer 删除客户
func (h *Handler) DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.CustomerService.DeleteCustomer(id); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			respondError(c, response.CodeNotFound, "客户不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "删除客户失败", err)
		return
	}

	response.Success(c, nil)
}
