package repository

import (
	"errors"

	"github.com/ecoenergi/meu-contrato-solar/internal/app/model"
	"github.com/ecoenergi/meu-contrato-solar/pkg/logger"
	"gorm.io/gorm"
)

type FinancialRepository interface {
	Create(terms *model.FinancialTerms) error
	FindByCustomerID(customerID uint) (*model.FinancialTerms, error)
	ReplaceTerms(terms *model.FinancialTerms) error
}

type financialRepository struct {
	db *gorm.DB
}

func NewFinancialRepository(db *gorm.DB) FinancialRepository {
	return &financialRepository{db: db}
}

func (r *financialRepository) Create(terms *model.FinancialTerms) error {
	logger.Debug("Creating financial terms in database", map[string]interface{}{
		"customer_id":  terms.CustomerID,
		"installments": len(terms.Installments),
	})

	if err := r.db.Create(terms).Error; err != nil {
		logger.Error("Failed to create financial terms in database", err, map[string]interface{}{
			"customer_id": terms.CustomerID,
		})
		return err
	}

	logger.Debug("Financial terms created in database", map[string]interface{}{
		"terms_id":    terms.ID,
		"customer_id": terms.CustomerID,
	})
	return nil
}

// FindByCustomerID loads terms with installments ordered by number. Returns
// (nil, nil) when the customer has no terms yet.
func (r *financialRepository) FindByCustomerID(customerID uint) (*model.FinancialTerms, error) {
	logger.Debug("Finding financial terms by customer in database", map[string]interface{}{
		"customer_id": customerID,
	})

	var terms model.FinancialTerms
	err := r.db.
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("installments.number ASC")
		}).
		Where("customer_id = ?", customerID).
		First(&terms).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.Error("Failed to find financial terms in database", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}

	return &terms, nil
}

// ReplaceTerms rewrites the terms row and its whole installment schedule in
// one transaction. The schedule is replaced, never merged.
func (r *financialRepository) ReplaceTerms(terms *model.FinancialTerms) error {
	logger.Debug("Replacing financial terms in database", map[string]interface{}{
		"terms_id":     terms.ID,
		"customer_id":  terms.CustomerID,
		"installments": len(terms.Installments),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("financial_terms_id = ?", terms.ID).Delete(&model.Installment{}).Error; err != nil {
			return err
		}

		err := tx.Model(&model.FinancialTerms{}).
			Where("id = ?", terms.ID).
			Updates(map[string]interface{}{
				"total_cents": terms.TotalCents,
				"notes":       terms.Notes,
			}).Error
		if err != nil {
			return err
		}

		for i := range terms.Installments {
			terms.Installments[i].ID = 0
			terms.Installments[i].FinancialTermsID = terms.ID
		}
		if len(terms.Installments) > 0 {
			if err := tx.Create(&terms.Installments).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to replace financial terms in database", err, map[string]interface{}{
			"terms_id": terms.ID,
		})
		return err
	}

	logger.Debug("Financial terms replaced in database", map[string]interface{}{
		"terms_id": terms.ID,
	})
	return nil
}
