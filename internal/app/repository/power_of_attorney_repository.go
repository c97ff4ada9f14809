package repository

import (
	"github.com/ecoenergi/meu-contrato-solar/internal/app/model"
	"github.com/ecoenergi/meu-contrato-solar/pkg/logger"
	"gorm.io/gorm"
)

type PowerOfAttorneyRepository interface {
	Create(poa *model.PowerOfAttorney) error
	FindByID(id uint) (*model.PowerOfAttorney, error)
	List(page, pageSize int) ([]model.PowerOfAttorney, int64, error)
	ListByCustomerID(customerID uint) ([]model.PowerOfAttorney, error)
	Delete(id uint) error
}

type powerOfAttorneyRepository struct {
	db *gorm.DB
}

func NewPowerOfAttorneyRepository(db *gorm.DB) PowerOfAttorneyRepository {
	return &powerOfAttorneyRepository{db: db}
}

func (r *powerOfAttorneyRepository) Create(poa *model.PowerOfAttorney) error {
	logger.Debug("Creating power of attorney in database", map[string]interface{}{
		"grantor_tax_id": poa.GrantorTaxID,
	})

	if err := r.db.Create(poa).Error; err != nil {
		logger.Error("Failed to create power of attorney in database", err, map[string]interface{}{
			"grantor_tax_id": poa.GrantorTaxID,
		})
		return err
	}

	logger.Debug("Power of attorney created in database", map[string]interface{}{
		"poa_id": poa.ID,
	})
	return nil
}

func (r *powerOfAttorneyRepository) FindByID(id uint) (*model.PowerOfAttorney, error) {
	logger.Debug("Finding power of attorney by ID in database", map[string]interface{}{
		"poa_id": id,
	})

	var poa model.PowerOfAttorney
	if err := r.db.First(&poa, id).Error; err != nil {
		logger.Error("Failed to find power of attorney in database", err, map[string]interface{}{
			"poa_id": id,
		})
		return nil, err
	}

	return &poa, nil
}

func (r *powerOfAttorneyRepository) List(page, pageSize int) ([]model.PowerOfAttorney, int64, error) {
	logger.Debug("Listing powers of attorney in database", map[string]interface{}{
		"page":      page,
		"page_size": pageSize,
	})

	var total int64
	if err := r.db.Model(&model.PowerOfAttorney{}).Count(&total).Error; err != nil {
		logger.Error("Failed to count powers of attorney in database", err)
		return nil, 0, err
	}

	var poas []model.PowerOfAttorney
	offset := (page - 1) * pageSize
	err := r.db.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&poas).Error
	if err != nil {
		logger.Error("Failed to list powers of attorney in database", err)
		return nil, 0, err
	}

	return poas, total, nil
}

func (r *powerOfAttorneyRepository) ListByCustomerID(customerID uint) ([]model.PowerOfAttorney, error) {
	logger.Debug("Listing powers of attorney by customer in database", map[string]interface{}{
		"customer_id": customerID,
	})

	var poas []model.PowerOfAttorney
	err := r.db.Where("customer_id = ?", customerID).Order("created_at DESC").Find(&poas).Error
	if err != nil {
		logger.Error("Failed to list powers of attorney by customer", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}

	return poas, nil
}

func (r *powerOfAttorneyRepository) Delete(id uint) error {
	logger.Debug("Deleting power of attorney from database", map[string]interface{}{
		"poa_id": id,
	})

	if err := r.db.Delete(&model.PowerOfAttorney{}, id).Error; err != nil {
		logger.Error("Failed to delete power of attorney from database", err, map[string]interface{}{
			"poa_id": id,
		})
		return err
	}

	return nil
}
