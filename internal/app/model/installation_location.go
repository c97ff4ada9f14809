package model

import (
	"fmt"
	"time"

	"github.com/ecoenergi/meu-contrato-solar/pkg/util"
	"gorm.io/gorm"
)

type InstallationType string // property usage class

const (
	InstallationResidential InstallationType = "residential" // residencial
	InstallationCommercial  InstallationType = "commercial"  // comercial
	InstallationIndustrial  InstallationType = "industrial"  // industrial
	InstallationRural       InstallationType = "rural"       // rural
)

// InstallationLocation is the address where the photovoltaic system will be
// installed. A customer has at most one.
type InstallationLocation struct {
	ID               uint             `gorm:"primarykey" json:"id"`                               // location ID
	CustomerID       uint             `gorm:"not null;uniqueIndex" json:"customer_id"`            // owning customer
	Street           string           `gorm:"not null" json:"street"`                             // street name
	Number           string           `json:"number"`                                             // street number (may be s/n)
	Complement       string           `json:"complement"`                                         // unit, block, etc.
	District         string           `json:"district"`                                           // bairro
	City             string           `gorm:"not null" json:"city"`                               // city
	State            string           `gorm:"type:varchar(2);not null" json:"state"`              // UF, two letters
	CEP              string           `gorm:"type:varchar(8)" json:"cep"`                         // postal code, digits only
	UtilityCompany   string           `gorm:"not null" json:"utility_company"`                    // concessionária name
	UtilityCode      string           `gorm:"type:varchar(20)" json:"utility_code"`               // consumer unit code at the utility
	InstallationType InstallationType `gorm:"type:varchar(20);not null" json:"installation_type"` // property class
	CreatedAt        time.Time        `json:"created_at"`                                         // creation time
	UpdatedAt        time.Time        `json:"updated_at"`                                         // last update time
	DeletedAt        gorm.DeletedAt   `gorm:"index" json:"-"`                                     // soft delete time
}

func (InstallationLocation) TableName() string {
	return "installation_locations"
}

// FullAddress renders the address as a single line for documents.
func (l *InstallationLocation) FullAddress() string {
	addr := l.Street
	if l.Number != "" {
		addr += ", " + l.Number
	}
	if l.Complement != "" {
		addr += ", " + l.Complement
	}
	if l.District != "" {
		addr += ", " + l.District
	}
	addr += fmt.Sprintf(", %s/%s", l.City, l.State)
	if l.CEP != "" {
		addr += ", CEP " + util.FormatCEP(l.CEP)
	}
	return addr
}
