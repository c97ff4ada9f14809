package repository

import (
	"errors"

	"github.com/ecoenergi/meu-contrato-solar/internal/app/model"
	"github.com/ecoenergi/meu-contrato-solar/pkg/logger"
	"gorm.io/gorm"
)

type TechnicalRepository interface {
	Create(config *model.TechnicalConfig) error
	FindByCustomerID(customerID uint) (*model.TechnicalConfig, error)
	Update(config *model.TechnicalConfig) error
}

type technicalRepository struct {
	db *gorm.DB
}

func NewTechnicalRepository(db *gorm.DB) TechnicalRepository {
	return &technicalRepository{db: db}
}

func (r *technicalRepository) Create(config *model.TechnicalConfig) error {
	logger.Debug("Creating technical config in database", map[string]interface{}{
		"customer_id": config.CustomerID,
	})

	if err := r.db.Create(config).Error; err != nil {
		logger.Error("Failed to create technical config in database", err, map[string]interface{}{
			"customer_id": config.CustomerID,
		})
		return err
	}

	logger.Debug("Technical config created in database", map[string]interface{}{
		"config_id":   config.ID,
		"customer_id": config.CustomerID,
	})
	return nil
}

// FindByCustomerID returns (nil, nil) when the customer has no config yet.
func (r *technicalRepository) FindByCustomerID(customerID uint) (*model.TechnicalConfig, error) {
	logger.Debug("Finding technical config by customer in database", map[string]interface{}{
		"customer_id": customerID,
	})

	var config model.TechnicalConfig
	err := r.db.Where("customer_id = ?", customerID).First(&config).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.Error("Failed to find technical config in database", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}

	return &config, nil
}

func (r *technicalRepository) Update(config *model.TechnicalConfig) error {
	logger.Debug("Updating technical config in database", map[string]interface{}{
		"config_id":   config.ID,
		"customer_id": config.CustomerID,
	})

	// Save skips nil pointer columns on updates, so clearing the second
	// inverter must write the NULLs explicitly.
	err := r.db.Model(config).
		Select("*").
		Omit("id", "customer_id", "created_at", "deleted_at").
		Updates(config).Error
	if err != nil {
		logger.Error("Failed to update technical config in database", err, map[string]interface{}{
			"config_id": config.ID,
		})
		return err
	}

	return nil
}
