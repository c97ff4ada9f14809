package service

import (
	"errors"

	"github.com/ecoenergi/meu-contrato-solar/internal/app/model"
	"github.com/ecoenergi/meu-contrato-solar/internal/app/repository"
	"github.com/ecoenergi/meu-contrato-solar/pkg/logger"
	"gorm.io/gorm"
)

// CustomerService serves the customer list screen and record management
// outside the wizard flow.
type CustomerService interface {
	Search(query string, page, pageSize int) ([]model.Customer, int64, error)
	GetFull(id uint) (*model.Customer, error)
	Delete(id uint) error
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) Search(query string, page, pageSize int) ([]model.Customer, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.customerRepo.Search(query, page, pageSize)
}

func (s *customerService) GetFull(id uint) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByIDFull(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Delete(id uint) error {
	if _, err := s.customerRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}

	if err := s.customerRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Customer record deleted", map[string]interface{}{
		"customer_id": id,
	})
	return nil
}
