package model

import (
	"time"

	"gorm.io/gorm"
)

type MountType string // structure the modules are mounted on

const (
	MountRoof   MountType = "roof"   // telhado
	MountGround MountType = "ground" // solo
	MountOther  MountType = "other"  // see MountTypeOther
)

// Inverter describes one inverter line item. Used as a value type when
// reading the optional second inverter out of a TechnicalConfig.
type Inverter struct {
	Brand         string  `json:"brand"`          // manufacturer
	PowerKW       float64 `json:"power_kw"`       // rated power in kW
	Quantity      int     `json:"quantity"`       // unit count
	WarrantyYears int     `json:"warranty_years"` // manufacturer warranty
}

// TechnicalConfig holds the equipment list for a customer's system. The
// second inverter is optional and its fields are set all together or not at
// all.
type TechnicalConfig struct {
	ID                     uint           `gorm:"primarykey" json:"id"`                       // config ID
	CustomerID             uint           `gorm:"not null;uniqueIndex" json:"customer_id"`    // owning customer
	Inverter1Brand         string         `gorm:"not null" json:"inverter1_brand"`            // primary inverter brand
	Inverter1PowerKW       float64        `gorm:"not null" json:"inverter1_power_kw"`         // primary inverter power (kW)
	Inverter1Quantity      int            `gorm:"not null" json:"inverter1_quantity"`         // primary inverter count
	Inverter1WarrantyYears int            `json:"inverter1_warranty_years"`                   // primary inverter warranty
	Inverter2Brand         *string        `json:"inverter2_brand,omitempty"`                  // secondary inverter brand
	Inverter2PowerKW       *float64       `json:"inverter2_power_kw,omitempty"`               // secondary inverter power (kW)
	Inverter2Quantity      *int           `json:"inverter2_quantity,omitempty"`               // secondary inverter count
	Inverter2WarrantyYears *int           `json:"inverter2_warranty_years,omitempty"`         // secondary inverter warranty
	ModuleBrand            string         `gorm:"not null" json:"module_brand"`               // PV module brand
	ModulePowerW           int            `gorm:"not null" json:"module_power_w"`             // PV module power (W)
	ModuleQuantity         int            `gorm:"not null" json:"module_quantity"`            // PV module count
	MountType              MountType      `gorm:"type:varchar(20);not null" json:"mount_type"` // mounting structure
	MountTypeOther         string         `json:"mount_type_other,omitempty"`                 // description when MountType is other
	InstallationDays       int            `json:"installation_days"`                          // estimated installation time
	CreatedAt              time.Time      `json:"created_at"`                                 // creation time
	UpdatedAt              time.Time      `json:"updated_at"`                                 // last update time
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`                             // soft delete time
}

func (TechnicalConfig) TableName() string {
	return "technical_configs"
}

// SecondaryInverter returns the second inverter when one is configured.
func (t *TechnicalConfig) SecondaryInverter() *Inverter {
	if t.Inverter2Brand == nil || t.Inverter2PowerKW == nil || t.Inverter2Quantity == nil {
		return nil
	}
	inv := Inverter{
		Brand:    *t.Inverter2Brand,
		PowerKW:  *t.Inverter2PowerKW,
		Quantity: *t.Inverter2Quantity,
	}
	if t.Inverter2WarrantyYears != nil {
		inv.WarrantyYears = *t.Inverter2WarrantyYears
	}
	return &inv
}

// SetSecondaryInverter sets or clears the optional second inverter.
func (t *TechnicalConfig) SetSecondaryInverter(inv *Inverter) {
	if inv == nil {
		t.Inverter2Brand = nil
		t.Inverter2PowerKW = nil
		t.Inverter2Quantity = nil
		t.Inverter2WarrantyYears = nil
		return
	}
	brand := inv.Brand
	power := inv.PowerKW
	qty := inv.Quantity
	warranty := inv.WarrantyYears
	t.Inverter2Brand = &brand
	t.Inverter2PowerKW = &power
	t.Inverter2Quantity = &qty
	t.Inverter2WarrantyYears = &warranty
}

// SystemPowerKWP computes the installed module power in kWp.
func (t *TechnicalConfig) SystemPowerKWP() float64 {
	return float64(t.ModulePowerW*t.ModuleQuantity) / 1000
}
