package service

import (
	"context"
	"errors"
	"time"

	"github.com/ecoenergi/meu-contrato-solar/internal/app/model"
	"github.com/ecoenergi/meu-contrato-solar/internal/app/repository"
	"github.com/ecoenergi/meu-contrato-solar/internal/app/schema"
	"github.com/ecoenergi/meu-contrato-solar/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrNoProgress       = errors.New("no wizard session in progress")
	ErrStepIncomplete   = errors.New("customer info must be saved first")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrTaxIDConflict    = errors.New("tax id already registered to another customer")
)

// Stubbed in tests.
var timeNow = time.Now

// WizardService drives the multi-step contract flow. Each operator has at
// most one session at a time; the session lives in the progress store while
// step data is persisted to the database on every save.
type WizardService interface {
	StartNew(ctx context.Context, operatorID uint) (*model.FormProgress, error)
	GetProgress(ctx context.Context, operatorID uint) (*model.FormProgress, error)
	Navigate(ctx context.Context, operatorID uint, target model.Step) (*model.FormProgress, error)
	SaveCustomerInfo(ctx context.Context, operatorID uint, in schema.CustomerInfoInput) (*model.FormProgress, map[string]string, error)
	SaveLocation(ctx context.Context, operatorID uint, in schema.LocationInput) (*model.FormProgress, map[string]string, error)
	SaveTechnical(ctx context.Context, operatorID uint, in schema.TechnicalInput) (*model.FormProgress, map[string]string, error)
	SaveFinancial(ctx context.Context, operatorID uint, in schema.FinancialInput) (*model.FormProgress, map[string]string, error)
	Resume(ctx context.Context, operatorID, customerID uint) (*model.FormProgress, error)
}

type wizardService struct {
	customerRepo  repository.CustomerRepository
	locationRepo  repository.LocationRepository
	technicalRepo repository.TechnicalRepository
	financialRepo repository.FinancialRepository
	store         ProgressStore
}

func NewWizardService(
	customerRepo repository.CustomerRepository,
	locationRepo repository.LocationRepository,
	technicalRepo repository.TechnicalRepository,
	financialRepo repository.FinancialRepository,
	store ProgressStore,
) WizardService {
	return &wizardService{
		customerRepo:  customerRepo,
		locationRepo:  locationRepo,
		technicalRepo: technicalRepo,
		financialRepo: financialRepo,
		store:         store,
	}
}

func (s *wizardService) StartNew(ctx context.Context, operatorID uint) (*model.FormProgress, error) {
	logger.Info("Starting new wizard session", map[string]interface{}{
		"operator_id": operatorID,
	})

	progress := model.NewFormProgress()
	if err := s.store.Save(ctx, operatorID, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *wizardService) GetProgress(ctx context.Context, operatorID uint) (*model.FormProgress, error) {
	progress, err := s.store.Load(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		return nil, ErrNoProgress
	}
	return progress, nil
}

// Navigate moves the session to the target step when the gate allows it. A
// denied move is not an error: the session simply stays where it was.
func (s *wizardService) Navigate(ctx context.Context, operatorID uint, target model.Step) (*model.FormProgress, error) {
	progress, err := s.GetProgress(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	if !progress.GoTo(target) {
		logger.Debug("Wizard navigation denied, session unchanged", map[string]interface{}{
			"operator_id": operatorID,
			"current":     progress.CurrentStep,
			"target":      target,
		})
		return progress, nil
	}

	if err := s.store.Save(ctx, operatorID, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// SaveCustomerInfo persists the first step. A session holding a customer id
// updates that record; the first save of a session looks the tax id up and
// refuses to silently take over an existing customer.
func (s *wizardService) SaveCustomerInfo(ctx context.Context, operatorID uint, in schema.CustomerInfoInput) (*model.FormProgress, map[string]string, error) {
	customer, fields := schema.ValidateCustomerInfo(in)
	if fields != nil {
		return nil, fields, nil
	}

	progress, err := s.store.Load(ctx, operatorID)
	if err != nil {
		return nil, nil, err
	}
	if progress == nil {
		// Saving the first step implicitly opens a session.
		progress = model.NewFormProgress()
	}

	if sessionID, ok := progress.Data.CustomerID(); ok {
		existing, err := s.customerRepo.FindByTaxID(customer.TaxID)
		if err != nil {
			return nil, nil, err
		}
		if existing != nil && existing.ID != sessionID {
			logger.Warn("Customer save rejected: tax id held by another record", map[string]interface{}{
				"operator_id": operatorID,
				"customer_id": sessionID,
				"other_id":    existing.ID,
			})
			return nil, nil, ErrTaxIDConflict
		}

		customer.ID = sessionID
		if current, err := s.customerRepo.FindByID(sessionID); err == nil {
			customer.CreatedAt = current.CreatedAt
		}
		if err := s.customerRepo.Update(customer); err != nil {
			return nil, nil, err
		}
	} else {
		existing, err := s.customerRepo.FindByTaxID(customer.TaxID)
		if err != nil {
			return nil, nil, err
		}
		if existing != nil {
			logger.Warn("Customer save rejected: tax id already registered", map[string]interface{}{
				"operator_id": operatorID,
				"tax_id":      customer.TaxID,
				"existing_id": existing.ID,
			})
			return nil, nil, ErrTaxIDConflict
		}
		if err := s.customerRepo.Create(customer); err != nil {
			return nil, nil, err
		}
	}

	progress.AdvanceCustomer(customer)
	if err := s.store.Save(ctx, operatorID, progress); err != nil {
		return nil, nil, err
	}

	logger.Info("Customer info step saved", map[string]interface{}{
		"operator_id": operatorID,
		"customer_id": customer.ID,
	})
	return progress, nil, nil
}

func (s *wizardService) SaveLocation(ctx context.Context, operatorID uint, in schema.LocationInput) (*model.FormProgress, map[string]string, error) {
	location, fields := schema.ValidateLocation(in)
	if fields != nil {
		return nil, fields, nil
	}

	progress, customerID, err := s.sessionWithCustomer(ctx, operatorID)
	if err != nil {
		return nil, nil, err
	}
	location.CustomerID = customerID

	existing, err := s.locationRepo.FindByCustomerID(customerID)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		location.ID = existing.ID
		location.CreatedAt = existing.CreatedAt
		if err := s.locationRepo.Update(location); err != nil {
			return nil, nil, err
		}
	} else {
		if err := s.locationRepo.Create(location); err != nil {
			return nil, nil, err
		}
	}

	progress.AdvanceLocation(location)
	if err := s.store.Save(ctx, operatorID, progress); err != nil {
		return nil, nil, err
	}

	logger.Info("Installation location step saved", map[string]interface{}{
		"operator_id": operatorID,
		"customer_id": customerID,
		"location_id": location.ID,
	})
	return progress, nil, nil
}

func (s *wizardService) SaveTechnical(ctx context.Context, operatorID uint, in schema.TechnicalInput) (*model.FormProgress, map[string]string, error) {
	config, fields := schema.ValidateTechnical(in)
	if fields != nil {
		return nil, fields, nil
	}

	progress, customerID, err := s.sessionWithCustomer(ctx, operatorID)
	if err != nil {
		return nil, nil, err
	}
	config.CustomerID = customerID

	existing, err := s.technicalRepo.FindByCustomerID(customerID)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		config.ID = existing.ID
		config.CreatedAt = existing.CreatedAt
		if err := s.technicalRepo.Update(config); err != nil {
			return nil, nil, err
		}
	} else {
		if err := s.technicalRepo.Create(config); err != nil {
			return nil, nil, err
		}
	}

	progress.AdvanceTechnical(config)
	if err := s.store.Save(ctx, operatorID, progress); err != nil {
		return nil, nil, err
	}

	logger.Info("Technical config step saved", map[string]interface{}{
		"operator_id": operatorID,
		"customer_id": customerID,
		"config_id":   config.ID,
	})
	return progress, nil, nil
}

func (s *wizardService) SaveFinancial(ctx context.Context, operatorID uint, in schema.FinancialInput) (*model.FormProgress, map[string]string, error) {
	terms, fields := schema.ValidateFinancial(in)
	if fields != nil {
		return nil, fields, nil
	}

	progress, customerID, err := s.sessionWithCustomer(ctx, operatorID)
	if err != nil {
		return nil, nil, err
	}
	terms.CustomerID = customerID

	existing, err := s.financialRepo.FindByCustomerID(customerID)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		terms.ID = existing.ID
		terms.CreatedAt = existing.CreatedAt
		if err := s.financialRepo.ReplaceTerms(terms); err != nil {
			return nil, nil, err
		}
	} else {
		if err := s.financialRepo.Create(terms); err != nil {
			return nil, nil, err
		}
	}

	progress.AdvanceFinancial(terms)
	if err := s.store.Save(ctx, operatorID, progress); err != nil {
		return nil, nil, err
	}

	logger.Info("Financial terms step saved", map[string]interface{}{
		"operator_id":  operatorID,
		"customer_id":  customerID,
		"terms_id":     terms.ID,
		"installments": len(terms.Installments),
	})
	return progress, nil, nil
}

// Resume loads a persisted customer into a fresh session. Completed steps are
// recomputed from the sub entities actually present in the record.
func (s *wizardService) Resume(ctx context.Context, operatorID, customerID uint) (*model.FormProgress, error) {
	customer, err := s.customerRepo.FindByIDFull(customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	aggregate := model.FormAggregate{
		Customer:  customer,
		Location:  customer.Location,
		Technical: customer.Technical,
		Financial: customer.Financial,
	}
	// The aggregate carries its own copies; drop the nested ones.
	customer.Location = nil
	customer.Technical = nil
	customer.Financial = nil

	if aggregate.Financial != nil {
		for i, inst := range aggregate.Financial.Installments {
			if inst.DueDate.IsZero() {
				// A schedule without a due date cannot round-trip through
				// the forms, so substitute today and flag it.
				logger.Warn("Installment without due date on resume, using today", map[string]interface{}{
					"customer_id": customerID,
					"terms_id":    aggregate.Financial.ID,
					"number":      inst.Number,
				})
				aggregate.Financial.Installments[i].DueDate = timeNow()
			}
		}
	}

	progress := model.NewFormProgress()
	progress.Resume(aggregate)

	if err := s.store.Save(ctx, operatorID, progress); err != nil {
		return nil, err
	}

	logger.Info("Wizard session resumed from customer record", map[string]interface{}{
		"operator_id":     operatorID,
		"customer_id":     customerID,
		"completed_steps": len(progress.CompletedSteps),
	})
	return progress, nil
}

// sessionWithCustomer loads the operator's session and requires the customer
// step to have been saved already.
func (s *wizardService) sessionWithCustomer(ctx context.Context, operatorID uint) (*model.FormProgress, uint, error) {
	progress, err := s.store.Load(ctx, operatorID)
	if err != nil {
		return nil, 0, err
	}
	if progress == nil {
		return nil, 0, ErrNoProgress
	}

	customerID, ok := progress.Data.CustomerID()
	if !ok {
		return nil, 0, ErrStepIncomplete
	}
	return progress, customerID, nil
}
