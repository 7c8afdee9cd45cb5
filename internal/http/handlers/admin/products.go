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

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	SKU          string       `json:"sku" binding:"required"`
	Name         string       `json:"name" binding:"required"`
	Unit         string       `json:"unit"`
	CostPrice    models.Money `json:"cost_price"`
	SalePrice    models.Money `json:"sale_price"`
	Stock        int          `json:"stock"`
	ReorderLevel int          `json:"reorder_level"`
	IsActive     *bool        `json:"is_active"`
}

// UpdateProductRequest 更新商品请求
type UpdateProductRequest struct {
	SKU          *string       `json:"sku"`
	Name         *string       `json:"name"`
	Unit         *string       `json:"unit"`
	CostPrice    *models.Money `json:"cost_price"`
	SalePrice    *models.Money `json:"sale_price"`
	ReorderLevel *int          `json:"reorder_level"`
	IsActive     *bool         `json:"is_active"`
}

// AdjustStockRequest 库存调整请求
type AdjustStockRequest struct {
	Delta int    `json:"delta" binding:"required"`
	Note  string `json:"note"`
}

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	products, total, err := h.ProductService.ListProducts(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		Search:       c.Query("search"),
		OnlyActive:   queryBool(c, "only_active"),
		LowStockOnly: queryBool(c, "low_stock_only"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取商品列表失败", err)
		return
	}

	response.SuccessWithPage(c, products, buildPagination(page, pageSize, total))
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.ProductService.GetProduct(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "商品不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "获取商品失败", err)
		return
	}

	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	product, err := h.ProductService.CreateProduct(service.CreateProductInput{
		SKU:          req.SKU,
		Name:         req.Name,
		Unit:         req.Unit,
		CostPrice:    req.CostPrice,
		SalePrice:    req.SalePrice,
		Stock:        req.Stock,
		ReorderLevel: req.ReorderLevel,
		IsActive:     req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductSKUExists):
			respondError(c, response.CodeBadRequest, "商品 SKU 已存在", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "请求参数不合法", nil)
		default:
			respondError(c, response.CodeInternal, "创建商品失败", err)
		}
		return
	}

	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	product, err := h.ProductService.UpdateProduct(id, service.UpdateProductInput{
		SKU:          req.SKU,
		Name:         req.Name,
		Unit:         req.Unit,
		CostPrice:    req.CostPrice,
		SalePrice:    req.SalePrice,
		ReorderLevel: req.ReorderLevel,
		IsActive:     req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "商品不存在", nil)
		case errors.Is(err, service.ErrProductSKUExists):
			respondError(c, response.CodeBadRequest, "商品 SKU 已存在", nil)
		default:
			respondError(c, response.CodeInternal, "更新商品失败", err)
		}
		return
	}

	response.Success(c, product)
}

// AdjustProductStock 手工调整库存
func (h *Handler) AdjustProductStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	product, err := h.ProductService.AdjustStock(id, req.Delta, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "商品不存在", nil)
		case errors.Is(err, service.ErrInvalidStockAdjust):
			respondError(c, response.CodeBadRequest, "库存调整数量不合法", nil)
		default:
			respondError(c, response.CodeInternal, "库存调整失败", err)
		}
		return
	}

	requestLog(c).Infow("product_stock_adjusted", "product_id", id, "delta", req.Delta)
	response.Success(c, product)
}

// GetProductMovements 获取商品库存流水
func (h *Handler) GetProductMovements(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	movements, total, err := h.ProductService.ListMovements(repository.MovementListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProductID: id,
		Reason:    c.Query("reason"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取库存流水失败", err)
		return
	}

	response.SuccessWithPage(c, movements, buildPagination(page, pageSize, total))
}

// GetLowStockProducts 获取低库存商品列表
func (h *Handler) GetLowStockProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	products, err := h.ProductService.ListLowStock(limit)
	if err != nil {
		respondError(c, response.CodeInternal, "获取低库存商品失败", err)
		return
	}

	response.Success(c, products)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ProductService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "商品不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "删除商品失败", err)
		return
	}

	response.Success(c, nil)
}
