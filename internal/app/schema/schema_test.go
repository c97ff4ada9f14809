package schema

import (
	"testing"

	"github.com/ecoenergi/meu-contrato-solar/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomerInput() CustomerInfoInput {
	return CustomerInfoInput{
		FullName:         "João da Silva",
		Nationality:      "brasileiro",
		Profession:       "engenheiro",
		MaritalStatus:    "married",
		TaxID:            "123.456.789-01",
		RG:               "1234567",
		IssuingAuthority: "SSP/MS",
		Phone:            "(67) 99999-1234",
		Email:            "joao@example.com",
	}
}

func TestValidateCustomerInfo_CPF(t *testing.T) {
	customer, fields := ValidateCustomerInfo(validCustomerInput())
	require.Empty(t, fields)
	require.NotNil(t, customer)

	// Masks are stripped before persistence.
	assert.Equal(t, "12345678901", customer.TaxID)
	assert.Equal(t, "67999991234", customer.Phone)
	assert.Equal(t, "1234567", customer.RG)
	assert.Equal(t, "SSP/MS", customer.IssuingAuthority)
	require.NotNil(t, customer.MaritalStatus)
	assert.Equal(t, model.MaritalMarried, *customer.MaritalStatus)
	assert.False(t, customer.IsCompany())
}

func TestValidateCustomerInfo_CPFRequiresMaritalStatus(t *testing.T) {
	in := validCustomerInput()
	in.MaritalStatus = ""

	customer, fields := ValidateCustomerInfo(in)
	assert.Nil(t, customer)
	assert.Contains(t, fields, "marital_status")
}

func TestValidateCustomerInfo_CNPJDropsMaritalStatus(t *testing.T) {
	in := validCustomerInput()
	in.TaxID = "12.276.329/0001-69"
	in.MaritalStatus = "married"

	customer, fields := ValidateCustomerInfo(in)
	require.Empty(t, fields)
	require.NotNil(t, customer)

	assert.Equal(t, "12276329000169", customer.TaxID)
	assert.Nil(t, customer.MaritalStatus)
	assert.True(t, customer.IsCompany())
}

func TestValidateCustomerInfo_FieldErrors(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*CustomerInfoInput)
		field string
	}{
		{
			name:  "Missing name",
			mut:   func(in *CustomerInfoInput) { in.FullName = "" },
			field: "full_name",
		},
		{
			name:  "Tax id with wrong length",
			mut:   func(in *CustomerInfoInput) { in.TaxID = "1234567890" },
			field: "tax_id",
		},
		{
			name:  "Bad email",
			mut:   func(in *CustomerInfoInput) { in.Email = "not-an-email" },
			field: "email",
		},
		{
			name:  "Bad phone",
			mut:   func(in *CustomerInfoInput) { in.Phone = "12345" },
			field: "phone",
		},
		{
			name:  "Unknown marital status",
			mut:   func(in *CustomerInfoInput) { in.MaritalStatus = "engaged" },
			field: "marital_status",
		},
		{
			name:  "Missing RG",
			mut:   func(in *CustomerInfoInput) { in.RG = "" },
			field: "rg",
		},
		{
			name:  "Missing issuing authority",
			mut:   func(in *CustomerInfoInput) { in.IssuingAuthority = "" },
			field: "issuing_authority",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCustomerInput()
			tt.mut(&in)

			customer, fields := ValidateCustomerInfo(in)
			assert.Nil(t, customer)
			assert.Contains(t, fields, tt.field)
		})
	}
}

func validLocationInput() LocationInput {
	return LocationInput{
		Street:           "Rua das Palmeiras",
		Number:           "120",
		District:         "Centro",
		City:             "Campo Grande",
		State:            "ms",
		CEP:              "79002-000",
		UtilityCompany:   "Energisa MS",
		UtilityCode:      "10/12345-6",
		InstallationType: "residential",
	}
}

func TestValidateLocation(t *testing.T) {
	location, fields := ValidateLocation(validLocationInput())
	require.Empty(t, fields)
	require.NotNil(t, location)

	assert.Equal(t, "MS", location.State)
	assert.Equal(t, "79002000", location.CEP)
	assert.Equal(t, "Energisa MS", location.UtilityCompany)
	assert.Equal(t, "10/12345-6", location.UtilityCode)
	assert.Equal(t, model.InstallationResidential, location.InstallationType)
}

func TestValidateLocation_Errors(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*LocationInput)
		field string
	}{
		{
			name:  "Missing street",
			mut:   func(in *LocationInput) { in.Street = "" },
			field: "street",
		},
		{
			name:  "Unknown UF",
			mut:   func(in *LocationInput) { in.State = "XX" },
			field: "state",
		},
		{
			name:  "Short CEP",
			mut:   func(in *LocationInput) { in.CEP = "790" },
			field: "cep",
		},
		{
			name:  "Missing utility company",
			mut:   func(in *LocationInput) { in.UtilityCompany = "" },
			field: "utility_company",
		},
		{
			name:  "Unknown installation type",
			mut:   func(in *LocationInput) { in.InstallationType = "floating" },
			field: "installation_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validLocationInput()
			tt.mut(&in)

			location, fields := ValidateLocation(in)
			assert.Nil(t, location)
			assert.Contains(t, fields, tt.field)
		})
	}
}

func validTechnicalInput() TechnicalInput {
	return TechnicalInput{
		Inverter1Brand:         "Growatt",
		Inverter1PowerKW:       8,
		Inverter1Quantity:      1,
		Inverter1WarrantyYears: 10,
		ModuleBrand:            "Canadian Solar",
		ModulePowerW:           555,
		ModuleQuantity:         20,
		MountType:              "roof",
		InstallationDays:       5,
	}
}

func TestValidateTechnical(t *testing.T) {
	cfg, fields := ValidateTechnical(validTechnicalInput())
	require.Empty(t, fields)
	require.NotNil(t, cfg)

	assert.Nil(t, cfg.SecondaryInverter())
	assert.InDelta(t, 11.1, cfg.SystemPowerKWP(), 0.0001)
}

func TestValidateTechnical_SecondInverterAllOrNothing(t *testing.T) {
	brand := "Fronius"
	power := 5.0
	qty := 1

	// Partial block is rejected.
	in := validTechnicalInput()
	in.Inverter2Brand = &brand
	cfg, fields := ValidateTechnical(in)
	assert.Nil(t, cfg)
	assert.Contains(t, fields, "inverter2")

	// Complete block is accepted.
	in = validTechnicalInput()
	in.Inverter2Brand = &brand
	in.Inverter2PowerKW = &power
	in.Inverter2Quantity = &qty
	cfg, fields = ValidateTechnical(in)
	require.Empty(t, fields)
	require.NotNil(t, cfg.SecondaryInverter())
	assert.Equal(t, "Fronius", cfg.SecondaryInverter().Brand)
}

func TestValidateTechnical_OtherMountNeedsDescription(t *testing.T) {
	in := validTechnicalInput()
	in.MountType = "other"

	cfg, fields := ValidateTechnical(in)
	assert.Nil(t, cfg)
	assert.Contains(t, fields, "mount_type_other")

	in.MountTypeOther = "Carport"
	cfg, fields = ValidateTechnical(in)
	require.Empty(t, fields)
	assert.Equal(t, "Carport", cfg.MountTypeOther)
}

func TestValidateFinancial_SinglePayment(t *testing.T) {
	terms, fields := ValidateFinancial(FinancialInput{
		Installments: []InstallmentInput{
			{Method: "Pix", AmountCents: 2500000, DueDate: "2026-01-10"},
		},
	})
	require.Empty(t, fields)
	require.NotNil(t, terms)

	assert.True(t, terms.IsSinglePayment())
	assert.Equal(t, model.Cents(2500000), terms.TotalCents)
	require.Len(t, terms.Installments, 1)
	assert.Equal(t, model.PaymentPix, terms.Installments[0].Method)
}

func TestValidateFinancial_RecomputesTotalFromSchedule(t *testing.T) {
	terms, fields := ValidateFinancial(FinancialInput{
		Installments: []InstallmentInput{
			{Method: "Pix", AmountCents: 500000, DueDate: "2026-01-10"},
			{Method: "Boleto", AmountCents: 250000, DueDate: "2026-02-10"},
			{Method: "Boleto", AmountCents: 250000, DueDate: "2026-03-10"},
		},
	})
	require.Empty(t, fields)
	require.NotNil(t, terms)

	assert.Equal(t, model.Cents(1000000), terms.TotalCents)
	require.Len(t, terms.Installments, 3)
	assert.Equal(t, 1, terms.Installments[0].Number)
	assert.Equal(t, 3, terms.Installments[2].Number)
	assert.Equal(t, model.PaymentBoleto, terms.Installments[1].Method)
}

func TestValidateFinancial_Errors(t *testing.T) {
	// Empty schedule.
	terms, fields := ValidateFinancial(FinancialInput{})
	assert.Nil(t, terms)
	assert.Contains(t, fields, "installments")

	// Unknown payment method.
	terms, fields = ValidateFinancial(FinancialInput{
		Installments: []InstallmentInput{{Method: "Cheque", AmountCents: 100, DueDate: "2026-01-10"}},
	})
	assert.Nil(t, terms)
	assert.Contains(t, fields, "method")

	// Bad installment due date.
	terms, fields = ValidateFinancial(FinancialInput{
		Installments: []InstallmentInput{{Method: "Boleto", AmountCents: 100, DueDate: "10/01/2026"}},
	})
	assert.Nil(t, terms)
	assert.NotEmpty(t, fields)
}

func TestValidatePowerOfAttorney(t *testing.T) {
	poa, fields := ValidatePowerOfAttorney(PowerOfAttorneyInput{
		GrantorName:             "Maria Souza",
		GrantorNationality:      "brasileira",
		GrantorMaritalStatus:    "single",
		GrantorProfession:       "empresária",
		GrantorTaxID:            "987.654.321-00",
		GrantorRG:               "987654",
		GrantorIssuingAuthority: "SSP/MS",
		UtilityCompany:          "Energisa MS",
		Street:                  "Av. Afonso Pena",
		Number:                  "1500",
		City:                    "Campo Grande",
		State:                   "MS",
		CEP:                     "79002-000",
		IssuedAt:                "2026-03-05",
	})
	require.Empty(t, fields)
	require.NotNil(t, poa)

	assert.Equal(t, "98765432100", poa.GrantorTaxID)
	assert.Equal(t, "987654", poa.GrantorRG)
	assert.Equal(t, "SSP/MS", poa.GrantorIssuingAuthority)
	assert.Equal(t, "Energisa MS", poa.UtilityCompany)
	require.NotNil(t, poa.GrantorMaritalStatus)
	assert.Equal(t, model.MaritalSingle, *poa.GrantorMaritalStatus)
	assert.Equal(t, 2026, poa.IssuedAt.Year())
}

func TestValidatePowerOfAttorney_Errors(t *testing.T) {
	poa, fields := ValidatePowerOfAttorney(PowerOfAttorneyInput{
		GrantorName:    "Maria Souza",
		GrantorTaxID:   "123",
		UtilityCompany: "Energisa MS",
		Street:         "Av. Afonso Pena",
		City:           "Campo Grande",
		State:          "MS",
	})
	assert.Nil(t, poa)
	assert.Contains(t, fields, "grantor_tax_id")

	// The utility the mandate targets is not optional.
	poa, fields = ValidatePowerOfAttorney(PowerOfAttorneyInput{
		GrantorName:  "Maria Souza",
		GrantorTaxID: "987.654.321-00",
		Street:       "Av. Afonso Pena",
		City:         "Campo Grande",
		State:        "MS",
	})
	assert.Nil(t, poa)
	assert.Contains(t, fields, "utility_company")
}
