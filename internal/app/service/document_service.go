package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecoenergi/meu-contrato-solar/internal/app/repository"
	"github.com/ecoenergi/meu-contrato-solar/internal/document"
	"github.com/ecoenergi/meu-contrato-solar/internal/storage"
	"github.com/ecoenergi/meu-contrato-solar/pkg/logger"
	"gorm.io/gorm"
)

// DocumentService composes the final PDFs from persisted records. When an
// archive is configured every generated document is also copied there.
type DocumentService interface {
	GenerateContract(ctx context.Context, customerID uint) ([]byte, string, error)
	GeneratePowerOfAttorney(ctx context.Context, poaID uint) ([]byte, string, error)
}

type documentService struct {
	customerRepo repository.CustomerRepository
	poaRepo      repository.PowerOfAttorneyRepository
	company      document.CompanyInfo
	archive      storage.DocumentArchive // nil when archival is disabled
}

func NewDocumentService(
	customerRepo repository.CustomerRepository,
	poaRepo repository.PowerOfAttorneyRepository,
	company document.CompanyInfo,
	archive storage.DocumentArchive,
) DocumentService {
	return &documentService{
		customerRepo: customerRepo,
		poaRepo:      poaRepo,
		company:      company,
		archive:      archive,
	}
}

func (s *documentService) GenerateContract(ctx context.Context, customerID uint) ([]byte, string, error) {
	customer, err := s.customerRepo.FindByIDFull(customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrCustomerNotFound
		}
		return nil, "", err
	}

	data := &document.ContractData{
		Customer:  customer,
		Location:  customer.Location,
		Technical: customer.Technical,
		Financial: customer.Financial,
		Company:   s.company,
		Date:      timeNow(),
	}

	pdf, err := document.BuildServicesContract(data)
	if err != nil {
		logger.Error("Failed to compose services contract", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, "", err
	}

	filename := fmt.Sprintf("contrato-%s.pdf", customer.TaxID)
	s.archiveCopy(ctx, "contracts", filename, pdf)

	logger.Info("Services contract generated", map[string]interface{}{
		"customer_id": customerID,
		"bytes":       len(pdf),
	})
	return pdf, filename, nil
}

func (s *documentService) GeneratePowerOfAttorney(ctx context.Context, poaID uint) ([]byte, string, error) {
	poa, err := s.poaRepo.FindByID(poaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrPowerOfAttorneyNotFound
		}
		return nil, "", err
	}

	pdf, err := document.BuildPowerOfAttorney(poa, s.company)
	if err != nil {
		logger.Error("Failed to compose power of attorney", err, map[string]interface{}{
			"poa_id": poaID,
		})
		return nil, "", err
	}

	filename := fmt.Sprintf("procuracao-%s.pdf", poa.GrantorTaxID)
	s.archiveCopy(ctx, "powers-of-attorney", filename, pdf)

	logger.Info("Power of attorney generated", map[string]interface{}{
		"poa_id": poaID,
		"bytes":  len(pdf),
	})
	return pdf, filename, nil
}

// archiveCopy uploads a copy of the PDF when an archive is configured. A
// failed upload is logged and otherwise ignored.
func (s *documentService) archiveCopy(ctx context.Context, folder, filename string, pdf []byte) {
	if s.archive == nil {
		return
	}

	url, err := s.archive.Store(ctx, folder, filename, pdf)
	if err != nil {
		logger.Warn("Document archival failed", map[string]interface{}{
			"filename": filename,
			"error":    err.Error(),
		})
		return
	}

	logger.Debug("Document archived", map[string]interface{}{
		"filename": filename,
		"url":      url,
	})
}
