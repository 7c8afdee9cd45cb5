package service

import (
	"strings"

	"github.com/shabihhaider/waterbottle-admin/internal/models"
	"github.com/shabihhaider/waterbottle-admin/internal/repository"
)

// DriverService 司机服务
type DriverService struct {
	driverRepo repository.DriverRepository
}

// NewDriverService 创建司机服务
func NewDriverService(driverRepo repository.DriverRepository) *DriverService {
	return &DriverService{driverRepo: driverRepo}
}

// CreateDriverInput 创建司机输入
type CreateDriverInput struct {
	Name      string
	Phone     string
	VehicleNo string
	IsActive  *bool
}

// UpdateDriverInput 更新司机输入（nil 字段保持不变）
type UpdateDriverInput struct {
	Name      *string
	Phone     *string
	VehicleNo *string
	IsActive  *bool
}

// CreateDriver 创建司机
func (s *DriverService) CreateDriver(input CreateDriverInput) (*models.Driver, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	if name == "" || phone == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.driverRepo.GetByPhone(phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDriverPhoneExists
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	driver := &models.Driver{
		Name:      name,
		Phone:     phone,
		VehicleNo: strings.TrimSpace(input.VehicleNo),
		IsActive:  isActive,
	}
	if err := s.driverRepo.Create(driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// GetDriver 获取司机详情
func (s *DriverService) GetDriver(id uint) (*models.Driver, error) {
	driver, err := s.driverRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrDriverNotFound
	}
	return driver, nil
}

// ListDrivers 获取司机列表
func (s *DriverService) ListDrivers(filter repository.DriverListFilter) ([]models.Driver, int64, error) {
	return s.driverRepo.List(filter)
}

// UpdateDriver 更新司机
func (s *DriverService) UpdateDriver(id uint, input UpdateDriverInput) (*models.Driver, error) {
	driver, err := s.driverRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrDriverNotFound
	}

	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if phone != "" && phone != driver.Phone {
			existing, err := s.driverRepo.GetByPhone(phone)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != driver.ID {
				return nil, ErrDriverPhoneExists
			}
			driver.Phone = phone
		}
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		driver.Name = strings.TrimSpace(*input.Name)
	}
	if input.VehicleNo != nil {
		driver.VehicleNo = strings.TrimSpace(*input.VehicleNo)
	}
	if input.IsActive != nil {
		driver.IsActive = *input.IsActive
	}

	if err := s.driverRepo.Update(driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// DeleteDriver 删除司机（软删除）
func (s *DriverService) DeleteDriver(id uint) error {
	driver, err := s.driverRepo.GetByID(id)
	if err != nil {
		return err
	}
	if driver == nil {
		return ErrDriverNotFound
	}
	return s.driverRepo.Delete(id)
}
