package service

import (
	"errors"
	"testing"

	"github.com/shabihhaider/waterbottle-admin/internal/constants"
	"github.com/shabihhaider/waterbottle-admin/internal/repository"

	"gorm.io/gorm"
)

func newCustomerServiceForTest(db *gorm.DB) *CustomerService {
	return NewCustomerService(repository.NewCustomerRepository(db))
}

func TestCreateCustomerPhoneUnique(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newCustomerServiceForTest(db)

	customer, err := svc.CreateCustomer(CreateCustomerInput{
		Name:  "Gulberg Traders",
		Phone: "0300-1110001",
		Area:  "Gulberg",
	})
	if err != nil {
		t.Fatalf("CreateCustomer error: %v", err)
	}
	if customer.Status != constants.CustomerStatusActive {
		t.Fatalf("status should default to active, got %s", customer.Status)
	}

	if _, err := svc.CreateCustomer(CreateCustomerInput{
		Name:  "重复客户",
		Phone: "0300-1110001",
	}); !errors.Is(err, ErrCustomerPhoneExists) {
		t.Fatalf("duplicate phone want ErrCustomerPhoneExists got %v", err)
	}

	if _, err := svc.CreateCustomer(CreateCustomerInput{Name: "", Phone: ""}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty input want ErrInvalidInput got %v", err)
	}
}

func TestUpdateCustomerStatusAndPhone(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newCustomerServiceForTest(db)

	first := seedCustomer(t, db, "0300-1110002")
	second := seedCustomer(t, db, "0300-1110003")

	// 换成已占用号码被拒
	phone := first.Phone
	if _, err := svc.UpdateCustomer(second.ID, UpdateCustomerInput{Phone: &phone}); !errors.Is(err, ErrCustomerPhoneExists) {
		t.Fatalf("taken phone want ErrCustomerPhoneExists got %v", err)
	}

	status := constants.CustomerStatusVIP
	updated, err := svc.UpdateCustomer(second.ID, UpdateCustomerInput{Status: &status})
	if err != nil {
		t.Fatalf("UpdateCustomer error: %v", err)
	}
	if updated.Status != constants.CustomerStatusVIP {
		t.Fatalf("status want vip got %s", updated.Status)
	}

	bad := "frozen"
	if _, err := svc.UpdateCustomer(second.ID, UpdateCustomerInput{Status: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown status want ErrInvalidInput got %v", err)
	}
}

func TestDeleteCustomer(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newCustomerServiceForTest(db)
	customer := seedCustomer(t, db, "0300-1110004")

	if err := svc.DeleteCustomer(customer.ID); err != nil {
		t.Fatalf("DeleteCustomer error: %v", err)
	}
	if _, err := svc.GetCustomer(customer.ID); !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("deleted customer want ErrCustomerNotFound got %v", err)
	}
	if err := svc.DeleteCustomer(customer.ID); !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("repeat delete want ErrCustomerNotFound got %v", err)
	}
}
