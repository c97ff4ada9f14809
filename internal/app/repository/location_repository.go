package repository

import (
	"errors"

	"github.com/ecoenergi/meu-contrato-solar/internal/app/model"
	"github.com/ecoenergi/meu-contrato-solar/pkg/logger"
	"gorm.io/gorm"
)

type LocationRepository interface {
	Create(location *model.InstallationLocation) error
	FindByCustomerID(customerID uint) (*model.InstallationLocation, error)
	Update(location *model.InstallationLocation) error
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(location *model.InstallationLocation) error {
	logger.Debug("Creating installation location in database", map[string]interface{}{
		"customer_id": location.CustomerID,
	})

	if err := r.db.Create(location).Error; err != nil {
		logger.Error("Failed to create installation location in database", err, map[string]interface{}{
			"customer_id": location.CustomerID,
		})
		return err
	}

	logger.Debug("Installation location created in database", map[string]interface{}{
		"location_id": location.ID,
		"customer_id": location.CustomerID,
	})
	return nil
}

// FindByCustomerID returns (nil, nil) when the customer has no location yet.
func (r *locationRepository) FindByCustomerID(customerID uint) (*model.InstallationLocation, error) {
	logger.Debug("Finding installation location by customer in database", map[string]interface{}{
		"customer_id": customerID,
	})

	var location model.InstallationLocation
	err := r.db.Where("customer_id = ?", customerID).First(&location).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.Error("Failed to find installation location in database", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}

	return &location, nil
}

func (r *locationRepository) Update(location *model.InstallationLocation) error {
	logger.Debug("Updating installation location in database", map[string]interface{}{
		"location_id": location.ID,
		"customer_id": location.CustomerID,
	})

	if err := r.db.Save(location).Error; err != nil {
		logger.Error("Failed to update installation location in database", err, map[string]interface{}{
			"location_id": location.ID,
		})
		return err
	}

	return nil
}
