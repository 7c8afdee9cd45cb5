package service

import (
	"strings"

	"github.com/shabihhaider/waterbottle-admin/internal/constants"
	"github.com/shabihhaider/waterbottle-admin/internal/models"
	"github.com/shabihhaider/waterbottle-admin/internal/repository"

	"gorm.io/gorm"
)

// ProductService 商品业务服务
// 库存只通过流水调整，商品更新接口不直接改 Stock。
type ProductService struct {
	repo         repository.ProductRepository
	movementRepo repository.InventoryMovementRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, movementRepo repository.InventoryMovementRepository) *ProductService {
	return &ProductService{repo: repo, movementRepo: movementRepo}
}

// CreateProductInput 创建商品输入
type CreateProductInput struct {
	SKU          string
	Name         string
	Unit         string
	CostPrice    models.Money
	SalePrice    models.Money
	Stock        int
	ReorderLevel int
	IsActive     *bool
}

// UpdateProductInput 更新商品输入（nil 字段保持不变）
type UpdateProductInput struct {
	SKU          *string
	Name         *string
	Unit         *string
	CostPrice    *models.Money
	SalePrice    *models.Money
	ReorderLevel *int
	IsActive     *bool
}

// CreateProduct 创建商品
// 初始库存大于零时写入一条 restock 流水。
func (s *ProductService) CreateProduct(input CreateProductInput) (*models.Product, error) {
	sku := strings.TrimSpace(input.SKU)
	name := strings.TrimSpace(input.Name)
	if sku == "" || name == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.repo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProductSKUExists
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	product := &models.Product{
		SKU:          sku,
		Name:         name,
		Unit:         strings.TrimSpace(input.Unit),
		CostPrice:    input.CostPrice,
		SalePrice:    input.SalePrice,
		Stock:        input.Stock,
		ReorderLevel: input.ReorderLevel,
		IsActive:     isActive,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		productRepo := s.repo.WithTx(tx)
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if input.Stock != 0 {
			movementRepo := s.movementRepo.WithTx(tx)
			movement := &models.InventoryMovement{
				ProductID:      product.ID,
				QuantityChange: input.Stock,
				Reason:         constants.MovementReasonRestock,
				Note:           "initial stock",
			}
			if err := movementRepo.Create(movement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct 获取商品详情
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListProducts 获取商品列表
func (s *ProductService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.List(filter)
}

// ListLowStock 获取低库存商品列表
func (s *ProductService) ListLowStock(limit int) ([]models.Product, error) {
	return s.repo.ListLowStock(limit)
}

// UpdateProduct 更新商品
func (s *ProductService) UpdateProduct(id uint, input UpdateProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if sku != "" && sku != product.SKU {
			existing, err := s.repo.GetBySKU(sku)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != product.ID {
				return nil, ErrProductSKUExists
			}
			product.SKU = sku
		}
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Unit != nil {
		product.Unit = strings.TrimSpace(*input.Unit)
	}
	if input.CostPrice != nil {
		product.CostPrice = *input.CostPrice
	}
	if input.SalePrice != nil {
		product.SalePrice = *input.SalePrice
	}
	if input.ReorderLevel != nil {
		product.ReorderLevel = *input.ReorderLevel
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// AdjustStock 手工调整库存并写入流水
// delta 为正表示入库，为负表示出库，允许调整后库存为负。
func (s *ProductService) AdjustStock(id uint, delta int, note string) (*models.Product, error) {
	if delta == 0 {
		return nil, ErrInvalidStockAdjust
	}

	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		productRepo := s.repo.WithTx(tx)
		movementRepo := s.movementRepo.WithTx(tx)

		if err := productRepo.AdjustStock(id, delta); err != nil {
			return err
		}
		movement := &models.InventoryMovement{
			ProductID:      id,
			QuantityChange: delta,
			Reason:         constants.MovementReasonRestock,
			Note:           strings.TrimSpace(note),
		}
		return movementRepo.Create(movement)
	})
	if err != nil {
		return nil, err
	}

	return s.GetProduct(id)
}

// ListMovements 获取库存流水列表
func (s *ProductService) ListMovements(filter repository.MovementListFilter) ([]models.InventoryMovement, int64, error) {
	return s.movementRepo.List(filter)
}

// DeleteProduct 删除商品（软删除）
func (s *ProductService) DeleteProduct(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.repo.Delete(id)
}
