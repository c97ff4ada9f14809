package model

import (
	"fmt"
	"time"

	"github.com/ecoenergi/meu-contrato-solar/pkg/util"
	"gorm.io/gorm"
)

// PowerOfAttorney records a procuração issued by a grantor so the company can
// represent them before the utility. Grantor data is denormalized because the
// document must keep what was printed even if the customer record changes.
type PowerOfAttorney struct {
	ID                      uint           `gorm:"primarykey" json:"id"`                                     // document ID
	CustomerID              *uint          `gorm:"index" json:"customer_id,omitempty"`                       // linked customer, when any
	GrantorName             string         `gorm:"not null" json:"grantor_name"`                             // outorgante name
	GrantorNationality      string         `json:"grantor_nationality"`                                      // nationality
	GrantorMaritalStatus    *MaritalStatus `gorm:"type:varchar(20)" json:"grantor_marital_status,omitempty"` // nil for companies
	GrantorProfession       string         `json:"grantor_profession"`                                       // profession
	GrantorTaxID            string         `gorm:"type:varchar(14);not null" json:"grantor_tax_id"`          // CPF/CNPJ, digits only
	GrantorRG               string         `gorm:"type:varchar(20)" json:"grantor_rg"`                       // identity card number
	GrantorIssuingAuthority string         `gorm:"type:varchar(50)" json:"grantor_issuing_authority"`        // RG issuing body
	UtilityCompany          string         `gorm:"not null" json:"utility_company"`                          // concessionária the mandate targets
	UtilityCode             string         `gorm:"type:varchar(20)" json:"utility_code"`                     // consumer unit code, when known
	Street                  string         `gorm:"not null" json:"street"`                                   // grantor address street
	Number                  string         `json:"number"`                                                   // street number
	District                string         `json:"district"`                                                 // bairro
	City                    string         `gorm:"not null" json:"city"`                                     // city
	State                   string         `gorm:"type:varchar(2);not null" json:"state"`                    // UF
	CEP                     string         `gorm:"type:varchar(8)" json:"cep"`                               // postal code, digits only
	IssuedAt                time.Time      `gorm:"not null" json:"issued_at"`                                // date printed on the document
	CreatedAt               time.Time      `json:"created_at"`                                               // creation time
	UpdatedAt               time.Time      `json:"updated_at"`                                               // last update time
	DeletedAt               gorm.DeletedAt `gorm:"index" json:"-"`                                           // soft delete time
}

func (PowerOfAttorney) TableName() string {
	return "power_of_attorneys"
}

// FullAddress renders the grantor address as a single line for the document.
func (p *PowerOfAttorney) FullAddress() string {
	addr := p.Street
	if p.Number != "" {
		addr += ", " + p.Number
	}
	if p.District != "" {
		addr += ", " + p.District
	}
	addr += fmt.Sprintf(", %s/%s", p.City, p.State)
	if p.CEP != "" {
		addr += ", CEP " + util.FormatCEP(p.CEP)
	}
	return addr
}
