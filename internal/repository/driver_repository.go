package repository

import (
	"errors"

	"github.com/shabihhaider/waterbottle-admin/internal/models"

	"gorm.io/gorm"
)

// DriverRepository 司机数据访问接口
type DriverRepository interface {
	Create(driver *models.Driver) error
	GetByID(id uint) (*models.Driver, error)
	GetByPhone(phone string) (*models.Driver, error)
	List(filter DriverListFilter) ([]models.Driver, int64, error)
	Update(driver *models.Driver) error
	Delete(id uint) error
}

// GormDriverRepository GORM 实现
type GormDriverRepository struct {
	db *gorm.DB
}

// NewDriverRepository 创建司机仓库
func NewDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

// Create 创建司机
func (r *GormDriverRepository) Create(driver *models.Driver) error {
	return r.db.Create(driver).Error
}

// GetByID 根据 ID 获取司机
func (r *GormDriverRepository) GetByID(id uint) (*models.Driver, error) {
	var driver models.Driver
	if err := r.db.First(&driver, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &driver, nil
}

// GetByPhone 根据电话获取司机（用于唯一性校验）
func (r *GormDriverRepository) GetByPhone(phone string) (*models.Driver, error) {
	var driver models.Driver
	if err := r.db.Where("phone = ?", phone).First(&driver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &driver, nil
}

// List 获取司机列表
func (r *GormDriverRepository) List(filter DriverListFilter) ([]models.Driver, int64, error) {
	var drivers []models.Driver
	query := r.db.Model(&models.Driver{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ? OR vehicle_no LIKE ?", like, like, like)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&drivers).Error; err != nil {
		return nil, 0, err
	}
	return drivers, total, nil
}

// Update 更新司机
func (r *GormDriverRepository) Update(driver *models.Driver) error {
	return r.db.Save(driver).Error
}

// Delete 删除司机（软删除）
func (r *GormDriverRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Driver{}, id).Error
}
