package service

import (
	"errors"

	"github.com/ecoenergi/meu-contrato-solar/internal/app/model"
	"github.com/ecoenergi/meu-contrato-solar/internal/app/repository"
	"github.com/ecoenergi/meu-contrato-solar/internal/app/schema"
	"github.com/ecoenergi/meu-contrato-solar/pkg/logger"
	"gorm.io/gorm"
)

var ErrPowerOfAttorneyNotFound = errors.New("power of attorney not found")

type PowerOfAttorneyService interface {
	Create(in schema.PowerOfAttorneyInput) (*model.PowerOfAttorney, map[string]string, error)
	CreateFromCustomer(customerID uint) (*model.PowerOfAttorney, error)
	Get(id uint) (*model.PowerOfAttorney, error)
	List(page, pageSize int) ([]model.PowerOfAttorney, int64, error)
	Delete(id uint) error
}

type powerOfAttorneyService struct {
	poaRepo      repository.PowerOfAttorneyRepository
	customerRepo repository.CustomerRepository
}

func NewPowerOfAttorneyService(
	poaRepo repository.PowerOfAttorneyRepository,
	customerRepo repository.CustomerRepository,
) PowerOfAttorneyService {
	return &powerOfAttorneyService{poaRepo: poaRepo, customerRepo: customerRepo}
}

func (s *powerOfAttorneyService) Create(in schema.PowerOfAttorneyInput) (*model.PowerOfAttorney, map[string]string, error) {
	poa, fields := schema.ValidatePowerOfAttorney(in)
	if fields != nil {
		return nil, fields, nil
	}

	if poa.CustomerID != nil {
		if _, err := s.customerRepo.FindByID(*poa.CustomerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrCustomerNotFound
			}
			return nil, nil, err
		}
	}

	if err := s.poaRepo.Create(poa); err != nil {
		return nil, nil, err
	}

	logger.Info("Power of attorney issued", map[string]interface{}{
		"poa_id":         poa.ID,
		"grantor_tax_id": poa.GrantorTaxID,
	})
	return poa, nil, nil
}

// CreateFromCustomer issues a procuração prefilled from a customer record and
// its installation address.
func (s *powerOfAttorneyService) CreateFromCustomer(customerID uint) (*model.PowerOfAttorney, error) {
	customer, err := s.customerRepo.FindByIDFull(customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	poa := &model.PowerOfAttorney{
		CustomerID:              &customer.ID,
		GrantorName:             customer.FullName,
		GrantorNationality:      customer.Nationality,
		GrantorMaritalStatus:    customer.MaritalStatus,
		GrantorProfession:       customer.Profession,
		GrantorTaxID:            customer.TaxID,
		GrantorRG:               customer.RG,
		GrantorIssuingAuthority: customer.IssuingAuthority,
		IssuedAt:                timeNow(),
	}
	if customer.Location != nil {
		poa.Street = customer.Location.Street
		poa.Number = customer.Location.Number
		poa.District = customer.Location.District
		poa.City = customer.Location.City
		poa.State = customer.Location.State
		poa.CEP = customer.Location.CEP
		poa.UtilityCompany = customer.Location.UtilityCompany
		poa.UtilityCode = customer.Location.UtilityCode
	}

	if err := s.poaRepo.Create(poa); err != nil {
		return nil, err
	}

	logger.Info("Power of attorney issued from customer record", map[string]interface{}{
		"poa_id":      poa.ID,
		"customer_id": customerID,
	})
	return poa, nil
}

func (s *powerOfAttorneyService) Get(id uint) (*model.PowerOfAttorney, error) {
	poa, err := s.poaRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPowerOfAttorneyNotFound
		}
		return nil, err
	}
	return poa, nil
}

func (s *powerOfAttorneyService) List(page, pageSize int) ([]model.PowerOfAttorney, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.poaRepo.List(page, pageSize)
}

func (s *powerOfAttorneyService) Delete(id uint) error {
	if _, err := s.poaRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPowerOfAttorneyNotFound
		}
		return err
	}
	return s.poaRepo.Delete(id)
}
