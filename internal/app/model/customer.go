package model

import (
	"time"

	"github.com/ecoenergi/meu-contrato-solar/pkg/util"
	"gorm.io/gorm"
)

type MaritalStatus string // civil status (individuals only)

const (
	MaritalSingle   MaritalStatus = "single"   // solteiro(a)
	MaritalMarried  MaritalStatus = "married"  // casado(a)
	MaritalDivorced MaritalStatus = "divorced" // divorciado(a)
	MaritalWidowed  MaritalStatus = "widowed"  // viúvo(a)
)

// Customer is the contracting party. TaxID holds a bare CPF (11 digits) or
// CNPJ (14 digits); MaritalStatus is nil for companies.
type Customer struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                                     // customer ID
	FullName         string         `gorm:"not null" json:"full_name"`                                                // full name or company name
	Nationality      string         `json:"nationality"`                                                              // e.g. brasileiro(a)
	Profession       string         `json:"profession"`                                                               // profession or company activity
	MaritalStatus    *MaritalStatus `gorm:"type:varchar(20)" json:"marital_status,omitempty"`                         // nil for CNPJ customers
	TaxID            string         `gorm:"type:varchar(14);uniqueIndex:idx_customers_tax_id;not null" json:"tax_id"` // CPF/CNPJ, digits only
	RG               string         `gorm:"type:varchar(20)" json:"rg"`                                               // identity card number
	IssuingAuthority string         `gorm:"type:varchar(50)" json:"issuing_authority"`                                // RG issuing body, e.g. SSP/MS
	Phone            string         `json:"phone"`                                                                    // phone, digits only
	Email            string         `json:"email"`                                                                    // contact email
	CreatedAt        time.Time      `json:"created_at"`                                                               // creation time
	UpdatedAt        time.Time      `json:"updated_at"`                                                               // last update time
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                                           // soft delete time

	Location  *InstallationLocation `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"location,omitempty"`  // installation address
	Technical *TechnicalConfig      `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"technical,omitempty"` // system configuration
	Financial *FinancialTerms       `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"financial,omitempty"` // payment terms
}

func (Customer) TableName() string {
	return "customers"
}

// DocumentType reports whether the customer is registered under CPF or CNPJ.
func (c *Customer) DocumentType() util.DocumentType {
	return util.DetectDocumentType(c.TaxID)
}

// IsCompany reports whether the customer is a CNPJ holder.
func (c *Customer) IsCompany() bool {
	return c.DocumentType() == util.DocumentCNPJ
}
