package service

import (
	"strings"

	"github.com/shabihhaider/waterbottle-admin/internal/constants"
	"github.com/shabihhaider/waterbottle-admin/internal/models"
	"github.com/shabihhaider/waterbottle-admin/internal/repository"
)

// CustomerService 客户服务
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService 创建客户服务
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput 创建客户输入
type CreateCustomerInput struct {
	Name        string
	Phone       string
	Email       string
	Address     string
	Area        string
	Status      string
	CreditLimit models.Money
	Notes       string
}

// UpdateCustomerInput 更新客户输入（nil 字段保持不变）
type UpdateCustomerInput struct {
	Name        *string
	Phone       *string
	Email       *string
	Address     *string
	Area        *string
	Status      *string
	CreditLimit *models.Money
	Notes       *string
}

var customerStatuses = map[string]bool{
	constants.CustomerStatusActive:   true,
	constants.CustomerStatusInactive: true,
	constants.CustomerStatusVIP:      true,
}

// CreateCustomer 创建客户
func (s *CustomerService) CreateCustomer(input CreateCustomerInput) (*models.Customer, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	if name == "" || phone == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.customerRepo.GetByPhone(phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCustomerPhoneExists
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = constants.CustomerStatusActive
	}
	if !customerStatuses[status] {
		return nil, ErrInvalidInput
	}

	customer := &models.Customer{
		Name:        name,
		Phone:       phone,
		Email:       strings.TrimSpace(input.Email),
		Address:     strings.TrimSpace(input.Address),
		Area:        strings.TrimSpace(input.Area),
		Status:      status,
		CreditLimit: input.CreditLimit,
		Notes:       input.Notes,
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer 获取客户详情
func (s *CustomerService) GetCustomer(id uint) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

// ListCustomers 获取客户列表
func (s *CustomerService) ListCustomers(filter repository.CustomerListFilter) ([]models.Customer, int64, error) {
	return s.customerRepo.List(filter)
}

// UpdateCustomer 更新客户
func (s *CustomerService) UpdateCustomer(id uint, input UpdateCustomerInput) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if phone != "" && phone != customer.Phone {
			existing, err := s.customerRepo.GetByPhone(phone)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != customer.ID {
				return nil, ErrCustomerPhoneExists
			}
			customer.Phone = phone
		}
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		customer.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		customer.Email = strings.TrimSpace(*input.Email)
	}
	if input.Address != nil {
		customer.Address = strings.TrimSpace(*input.Address)
	}
	if input.Area != nil {
		customer.Area = strings.TrimSpace(*input.Area)
	}
	if input.Status != nil {
		status := strings.TrimSpace(*input.Status)
		if !customerStatuses[status] {
			return nil, ErrInvalidInput
		}
		customer.Status = status
	}
	if input.CreditLimit != nil {
		customer.CreditLimit = *input.CreditLimit
	}
	if input.Notes != nil {
		customer.Notes = *input.Notes
	}

	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer 删除客户（软删除）
func (s *CustomerService) DeleteCustomer(id uint) error {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return ErrCustomerNotFound
	}
	return s.customerRepo.Delete(id)
}
