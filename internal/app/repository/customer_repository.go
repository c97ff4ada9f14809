package repository

import (
	"errors"
	"time"

	"github.com/ecoenergi/meu-contrato-solar/internal/app/model"
	"github.com/ecoenergi/meu-contrato-solar/pkg/logger"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	BulkCreate(customers []model.Customer, batchSize int) error
	FindByID(id uint) (*model.Customer, error)
	FindByIDFull(id uint) (*model.Customer, error)
	FindByTaxID(taxID string) (*model.Customer, error)
	Update(customer *model.Customer) error
	Search(query string, page, pageSize int) ([]model.Customer, int64, error)
	Delete(id uint) error
	PurgeDeletedBefore(cutoff time.Time) (int64, error)
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(customer *model.Customer) error {
	logger.Debug("Creating customer in database", map[string]interface{}{
		"tax_id": customer.TaxID,
	})

	if err := r.db.Create(customer).Error; err != nil {
		logger.Error("Failed to create customer in database", err, map[string]interface{}{
			"tax_id": customer.TaxID,
		})
		return err
	}

	logger.Debug("Customer created in database", map[string]interface{}{
		"customer_id": customer.ID,
		"tax_id":      customer.TaxID,
	})
	return nil
}

// BulkCreate inserts customers in batches. Used by the import tool.
func (r *customerRepository) BulkCreate(customers []model.Customer, batchSize int) error {
	logger.Debug("Bulk creating customers in database", map[string]interface{}{
		"count":      len(customers),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(customers, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create customers in database", err, map[string]interface{}{
			"count": len(customers),
		})
		return err
	}

	logger.Debug("Customers bulk created in database", map[string]interface{}{
		"count": len(customers),
	})
	return nil
}

func (r *customerRepository) FindByID(id uint) (*model.Customer, error) {
	logger.Debug("Finding customer by ID in database", map[string]interface{}{
		"customer_id": id,
	})

	var customer model.Customer
	err := r.db.First(&customer, id).Error
	if err != nil {
		logger.Error("Failed to find customer by ID in database", err, map[string]interface{}{
			"customer_id": id,
		})
		return nil, err
	}

	return &customer, nil
}

// FindByIDFull loads the customer with every wizard sub entity attached.
func (r *customerRepository) FindByIDFull(id uint) (*model.Customer, error) {
	logger.Debug("Finding full customer record in database", map[string]interface{}{
		"customer_id": id,
	})

	var customer model.Customer
	err := r.db.
		Preload("Location").
		Preload("Technical").
		Preload("Financial").
		Preload("Financial.Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("installments.number ASC")
		}).
		First(&customer, id).Error
	if err != nil {
		logger.Error("Failed to find full customer record in database", err, map[string]interface{}{
			"customer_id": id,
		})
		return nil, err
	}

	logger.Debug("Full customer record found in database", map[string]interface{}{
		"customer_id":   customer.ID,
		"has_location":  customer.Location != nil,
		"has_technical": customer.Technical != nil,
		"has_financial": customer.Financial != nil,
	})
	return &customer, nil
}

// FindByTaxID looks a customer up by bare CPF/CNPJ. A missing customer is
// not an error: the caller gets (nil, nil).
func (r *customerRepository) FindByTaxID(taxID string) (*model.Customer, error) {
	logger.Debug("Finding customer by tax id in database", map[string]interface{}{
		"tax_id": taxID,
	})

	var customer model.Customer
	err := r.db.Where("tax_id = ?", taxID).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.Error("Failed to find customer by tax id in database", err, map[string]interface{}{
			"tax_id": taxID,
		})
		return nil, err
	}

	return &customer, nil
}

func (r *customerRepository) Update(customer *model.Customer) error {
	logger.Debug("Updating customer in database", map[string]interface{}{
		"customer_id": customer.ID,
	})

	if err := r.db.Save(customer).Error; err != nil {
		logger.Error("Failed to update customer in database", err, map[string]interface{}{
			"customer_id": customer.ID,
		})
		return err
	}

	logger.Debug("Customer updated in database", map[string]interface{}{
		"customer_id": customer.ID,
	})
	return nil
}

// Search lists customers matching the query on name or tax id, newest first.
func (r *customerRepository) Search(query string, page, pageSize int) ([]model.Customer, int64, error) {
	logger.Debug("Searching customers in database", map[string]interface{}{
		"query":     query,
		"page":      page,
		"page_size": pageSize,
	})

	db := r.db.Model(&model.Customer{})
	if query != "" {
		like := "%" + query + "%"
		db = db.Where("full_name LIKE ? OR tax_id LIKE ?", like, like)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		logger.Error("Failed to count customers in database", err, map[string]interface{}{
			"query": query,
		})
		return nil, 0, err
	}

	var customers []model.Customer
	offset := (page - 1) * pageSize
	err := db.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&customers).Error
	if err != nil {
		logger.Error("Failed to search customers in database", err, map[string]interface{}{
			"query": query,
		})
		return nil, 0, err
	}

	logger.Debug("Customers searched in database", map[string]interface{}{
		"query": query,
		"count": len(customers),
		"total": total,
	})
	return customers, total, nil
}

// Delete soft deletes the customer and its wizard sub entities in one
// transaction.
func (r *customerRepository) Delete(id uint) error {
	logger.Debug("Deleting customer from database", map[string]interface{}{
		"customer_id": id,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var terms model.FinancialTerms
		err := tx.Where("customer_id = ?", id).First(&terms).Error
		if err == nil {
			if err := tx.Where("financial_terms_id = ?", terms.ID).Delete(&model.Installment{}).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Where("customer_id = ?", id).Delete(&model.FinancialTerms{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", id).Delete(&model.TechnicalConfig{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", id).Delete(&model.InstallationLocation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Customer{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete customer from database", err, map[string]interface{}{
			"customer_id": id,
		})
		return err
	}

	logger.Debug("Customer deleted from database", map[string]interface{}{
		"customer_id": id,
	})
	return nil
}

// PurgeDeletedBefore hard deletes customers soft deleted before the cutoff,
// together with their sub entities. Returns how many customers were purged.
func (r *customerRepository) PurgeDeletedBefore(cutoff time.Time) (int64, error) {
	logger.Debug("Purging soft deleted customers from database", map[string]interface{}{
		"cutoff": cutoff,
	})

	var purged int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var customers []model.Customer
		err := tx.Unscoped().
			Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
			Find(&customers).Error
		if err != nil {
			return err
		}

		for _, customer := range customers {
			var terms model.FinancialTerms
			err := tx.Unscoped().Where("customer_id = ?", customer.ID).First(&terms).Error
			if err == nil {
				if err := tx.Unscoped().Where("financial_terms_id = ?", terms.ID).Delete(&model.Installment{}).Error; err != nil {
					return err
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			if err := tx.Unscoped().Where("customer_id = ?", customer.ID).Delete(&model.FinancialTerms{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("customer_id = ?", customer.ID).Delete(&model.TechnicalConfig{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("customer_id = ?", customer.ID).Delete(&model.InstallationLocation{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Delete(&model.Customer{}, customer.ID).Error; err != nil {
				return err
			}
			purged++
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to purge soft deleted customers", err, map[string]interface{}{
			"cutoff": cutoff,
		})
		return 0, err
	}

	logger.Debug("Soft deleted customers purged from database", map[string]interface{}{
		"purged": purged,
	})
	return purged, nil
}
