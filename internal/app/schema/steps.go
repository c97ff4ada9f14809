package schema

import (
	"strings"
	"time"

	"github.com/ecoenergi/meu-contrato-solar/internal/app/model"
	"github.com/ecoenergi/meu-contrato-solar/pkg/util"
)

// CustomerInfoInput is the customer-info step payload.
type CustomerInfoInput struct {
	FullName         string `json:"full_name" validate:"required,min=3,max=120"`
	Nationality      string `json:"nationality" validate:"omitempty,max=60"`
	Profession       string `json:"profession" validate:"omitempty,max=80"`
	MaritalStatus    string `json:"marital_status" validate:"omitempty,oneof=single married divorced widowed"`
	TaxID            string `json:"tax_id" validate:"required,taxid"`
	RG               string `json:"rg" validate:"required,max=20"`
	IssuingAuthority string `json:"issuing_authority" validate:"required,max=50"`
	Phone            string `json:"phone" validate:"omitempty,brphone"`
	Email            string `json:"email" validate:"omitempty,email"`
}

// ValidateCustomerInfo checks the payload and builds a Customer. Marital
// status is required for individuals and silently dropped for companies.
func ValidateCustomerInfo(in CustomerInfoInput) (*model.Customer, map[string]string) {
	if err := validate.Struct(in); err != nil {
		return nil, fieldErrors(err)
	}

	taxID := util.Digits(in.TaxID)
	docType := util.DetectDocumentType(taxID)

	customer := &model.Customer{
		FullName:         strings.TrimSpace(in.FullName),
		Nationality:      strings.TrimSpace(in.Nationality),
		Profession:       strings.TrimSpace(in.Profession),
		TaxID:            taxID,
		RG:               strings.TrimSpace(in.RG),
		IssuingAuthority: strings.TrimSpace(in.IssuingAuthority),
		Phone:            util.Digits(in.Phone),
		Email:            strings.TrimSpace(in.Email),
	}

	if docType == util.DocumentCPF {
		if in.MaritalStatus == "" {
			return nil, map[string]string{"marital_status": "Estado civil é obrigatório para pessoa física"}
		}
		status := model.MaritalStatus(in.MaritalStatus)
		customer.MaritalStatus = &status
	}
	// CNPJ customers never carry a marital status.

	return customer, nil
}

// LocationInput is the installation-location step payload.
type LocationInput struct {
	Street           string `json:"street" validate:"required,max=120"`
	Number           string `json:"number" validate:"omitempty,max=20"`
	Complement       string `json:"complement" validate:"omitempty,max=60"`
	District         string `json:"district" validate:"omitempty,max=60"`
	City             string `json:"city" validate:"required,max=80"`
	State            string `json:"state" validate:"required,uf"`
	CEP              string `json:"cep" validate:"required,cep"`
	UtilityCompany   string `json:"utility_company" validate:"required,max=80"`
	UtilityCode      string `json:"utility_code" validate:"omitempty,max=20"`
	InstallationType string `json:"installation_type" validate:"required,oneof=residential commercial industrial rural"`
}

// ValidateLocation checks the payload and builds an InstallationLocation.
func ValidateLocation(in LocationInput) (*model.InstallationLocation, map[string]string) {
	in.State = strings.ToUpper(strings.TrimSpace(in.State))

	if err := validate.Struct(in); err != nil {
		return nil, fieldErrors(err)
	}

	return &model.InstallationLocation{
		Street:           strings.TrimSpace(in.Street),
		Number:           strings.TrimSpace(in.Number),
		Complement:       strings.TrimSpace(in.Complement),
		District:         strings.TrimSpace(in.District),
		City:             strings.TrimSpace(in.City),
		State:            in.State,
		CEP:              util.Digits(in.CEP),
		UtilityCompany:   strings.TrimSpace(in.UtilityCompany),
		UtilityCode:      strings.TrimSpace(in.UtilityCode),
		InstallationType: model.InstallationType(in.InstallationType),
	}, nil
}

// TechnicalInput is the technical-config step payload. The second inverter
// block is optional but must be filled all together.
type TechnicalInput struct {
	Inverter1Brand         string   `json:"inverter1_brand" validate:"required,max=60"`
	Inverter1PowerKW       float64  `json:"inverter1_power_kw" validate:"gt=0"`
	Inverter1Quantity      int      `json:"inverter1_quantity" validate:"gt=0"`
	Inverter1WarrantyYears int      `json:"inverter1_warranty_years" validate:"gte=0"`
	Inverter2Brand         *string  `json:"inverter2_brand" validate:"omitempty,max=60"`
	Inverter2PowerKW       *float64 `json:"inverter2_power_kw" validate:"omitempty,gt=0"`
	Inverter2Quantity      *int     `json:"inverter2_quantity" validate:"omitempty,gt=0"`
	Inverter2WarrantyYears *int     `json:"inverter2_warranty_years" validate:"omitempty,gte=0"`
	ModuleBrand            string   `json:"module_brand" validate:"required,max=60"`
	ModulePowerW           int      `json:"module_power_w" validate:"gt=0"`
	ModuleQuantity         int      `json:"module_quantity" validate:"gt=0"`
	MountType              string   `json:"mount_type" validate:"required,oneof=roof ground other"`
	MountTypeOther         string   `json:"mount_type_other" validate:"omitempty,max=60"`
	InstallationDays       int      `json:"installation_days" validate:"gte=0"`
}

// ValidateTechnical checks the payload and builds a TechnicalConfig.
func ValidateTechnical(in TechnicalInput) (*model.TechnicalConfig, map[string]string) {
	if err := validate.Struct(in); err != nil {
		return nil, fieldErrors(err)
	}

	hasAny := in.Inverter2Brand != nil || in.Inverter2PowerKW != nil || in.Inverter2Quantity != nil
	hasAll := in.Inverter2Brand != nil && in.Inverter2PowerKW != nil && in.Inverter2Quantity != nil
	if hasAny && !hasAll {
		return nil, map[string]string{"inverter2": "Informe marca, potência e quantidade do segundo inversor, ou nenhum deles"}
	}

	if in.MountType == string(model.MountOther) && strings.TrimSpace(in.MountTypeOther) == "" {
		return nil, map[string]string{"mount_type_other": "Descreva o tipo de estrutura"}
	}

	cfg := &model.TechnicalConfig{
		Inverter1Brand:         strings.TrimSpace(in.Inverter1Brand),
		Inverter1PowerKW:       in.Inverter1PowerKW,
		Inverter1Quantity:      in.Inverter1Quantity,
		Inverter1WarrantyYears: in.Inverter1WarrantyYears,
		ModuleBrand:            strings.TrimSpace(in.ModuleBrand),
		ModulePowerW:           in.ModulePowerW,
		ModuleQuantity:         in.ModuleQuantity,
		MountType:              model.MountType(in.MountType),
		InstallationDays:       in.InstallationDays,
	}
	if cfg.MountType == model.MountOther {
		cfg.MountTypeOther = strings.TrimSpace(in.MountTypeOther)
	}
	if hasAll {
		inv := model.Inverter{
			Brand:    strings.TrimSpace(*in.Inverter2Brand),
			PowerKW:  *in.Inverter2PowerKW,
			Quantity: *in.Inverter2Quantity,
		}
		if in.Inverter2WarrantyYears != nil {
			inv.WarrantyYears = *in.Inverter2WarrantyYears
		}
		cfg.SetSecondaryInverter(&inv)
	}

	return cfg, nil
}

// InstallmentInput is one scheduled payment inside FinancialInput.
type InstallmentInput struct {
	Method      string `json:"method" validate:"required,oneof=Transferência Boleto Pix Financiamento"`
	AmountCents int64  `json:"amount_cents" validate:"gt=0"`
	DueDate     string `json:"due_date" validate:"required,datetime=2006-01-02"`
}

// FinancialInput is the financial-terms step payload. A single payment is a
// one-installment schedule; the total is always recomputed as the sum of the
// installment amounts, never taken from the client.
type FinancialInput struct {
	Installments []InstallmentInput `json:"installments" validate:"max=120,dive"`
	Notes        string             `json:"notes" validate:"omitempty,max=2000"`
}

// ValidateFinancial checks the payload and builds FinancialTerms.
func ValidateFinancial(in FinancialInput) (*model.FinancialTerms, map[string]string) {
	if err := validate.Struct(in); err != nil {
		return nil, fieldErrors(err)
	}
	if len(in.Installments) == 0 {
		return nil, map[string]string{"installments": "Informe ao menos uma parcela"}
	}

	terms := &model.FinancialTerms{
		Notes: strings.TrimSpace(in.Notes),
	}

	for i, inst := range in.Installments {
		due, err := time.Parse("2006-01-02", inst.DueDate)
		if err != nil {
			return nil, map[string]string{"installments": "Data de vencimento inválida"}
		}
		terms.Installments = append(terms.Installments, model.Installment{
			Number:      i + 1,
			Method:      model.PaymentMethod(inst.Method),
			AmountCents: model.Cents(inst.AmountCents),
			DueDate:     due,
		})
	}
	terms.RecomputeTotal()

	return terms, nil
}

// PowerOfAttorneyInput is the payload for issuing a procuração.
type PowerOfAttorneyInput struct {
	CustomerID              *uint  `json:"customer_id"`
	GrantorName             string `json:"grantor_name" validate:"required,min=3,max=120"`
	GrantorNationality      string `json:"grantor_nationality" validate:"omitempty,max=60"`
	GrantorMaritalStatus    string `json:"grantor_marital_status" validate:"omitempty,oneof=single married divorced widowed"`
	GrantorProfession       string `json:"grantor_profession" validate:"omitempty,max=80"`
	GrantorTaxID            string `json:"grantor_tax_id" validate:"required,taxid"`
	GrantorRG               string `json:"grantor_rg" validate:"omitempty,max=20"`
	GrantorIssuingAuthority string `json:"grantor_issuing_authority" validate:"omitempty,max=50"`
	UtilityCompany          string `json:"utility_company" validate:"required,max=80"`
	UtilityCode             string `json:"utility_code" validate:"omitempty,max=20"`
	Street                  string `json:"street" validate:"required,max=120"`
	Number                  string `json:"number" validate:"omitempty,max=20"`
	District                string `json:"district" validate:"omitempty,max=60"`
	City                    string `json:"city" validate:"required,max=80"`
	State                   string `json:"state" validate:"required,uf"`
	CEP                     string `json:"cep" validate:"omitempty,cep"`
	IssuedAt                string `json:"issued_at" validate:"omitempty,datetime=2006-01-02"`
}

// ValidatePowerOfAttorney checks the payload and builds a PowerOfAttorney.
// IssuedAt defaults to today when absent.
func ValidatePowerOfAttorney(in PowerOfAttorneyInput) (*model.PowerOfAttorney, map[string]string) {
	in.State = strings.ToUpper(strings.TrimSpace(in.State))

	if err := validate.Struct(in); err != nil {
		return nil, fieldErrors(err)
	}

	poa := &model.PowerOfAttorney{
		CustomerID:              in.CustomerID,
		GrantorName:             strings.TrimSpace(in.GrantorName),
		GrantorNationality:      strings.TrimSpace(in.GrantorNationality),
		GrantorProfession:       strings.TrimSpace(in.GrantorProfession),
		GrantorTaxID:            util.Digits(in.GrantorTaxID),
		GrantorRG:               strings.TrimSpace(in.GrantorRG),
		GrantorIssuingAuthority: strings.TrimSpace(in.GrantorIssuingAuthority),
		UtilityCompany:          strings.TrimSpace(in.UtilityCompany),
		UtilityCode:             strings.TrimSpace(in.UtilityCode),
		Street:                  strings.TrimSpace(in.Street),
		Number:                  strings.TrimSpace(in.Number),
		District:                strings.TrimSpace(in.District),
		City:                    strings.TrimSpace(in.City),
		State:                   in.State,
		CEP:                     util.Digits(in.CEP),
		IssuedAt:                time.Now(),
	}

	if util.DetectDocumentType(poa.GrantorTaxID) == util.DocumentCPF && in.GrantorMaritalStatus != "" {
		status := model.MaritalStatus(in.GrantorMaritalStatus)
		poa.GrantorMaritalStatus = &status
	}

	if in.IssuedAt != "" {
		issued, err := time.Parse("2006-01-02", in.IssuedAt)
		if err == nil {
			poa.IssuedAt = issued
		}
	}

	return poa, nil
}
