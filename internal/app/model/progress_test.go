package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormProgress(t *testing.T) {
	p := NewFormProgress()

	assert.Equal(t, StepCustomerInfo, p.CurrentStep)
	assert.Empty(t, p.CompletedSteps)
	assert.Nil(t, p.Data.Customer)
}

func TestFormProgress_AdvanceWalksTheSequence(t *testing.T) {
	p := NewFormProgress()

	p.AdvanceCustomer(&Customer{ID: 1, FullName: "João da Silva", TaxID: "12345678901"})
	assert.Equal(t, StepInstallationLocation, p.CurrentStep)
	assert.True(t, p.CompletedSteps.Has(StepCustomerInfo))

	p.AdvanceLocation(&InstallationLocation{ID: 2, CustomerID: 1, City: "Campo Grande", State: "MS"})
	assert.Equal(t, StepTechnicalConfig, p.CurrentStep)

	p.AdvanceTechnical(&TechnicalConfig{ID: 3, CustomerID: 1, ModuleBrand: "Canadian Solar"})
	assert.Equal(t, StepFinancialTerms, p.CurrentStep)

	p.AdvanceFinancial(&FinancialTerms{ID: 4, CustomerID: 1, TotalCents: 2500000})
	assert.Equal(t, StepReview, p.CurrentStep)

	assert.Equal(t, []Step{
		StepCustomerInfo,
		StepInstallationLocation,
		StepTechnicalConfig,
		StepFinancialTerms,
	}, p.CompletedSteps.Ordered())
}

func TestFormProgress_StartNewResetsEverything(t *testing.T) {
	p := NewFormProgress()
	p.AdvanceCustomer(&Customer{ID: 1, FullName: "João da Silva"})
	p.AdvanceLocation(&InstallationLocation{ID: 2})

	p.StartNew()

	assert.Equal(t, StepCustomerInfo, p.CurrentStep)
	assert.Empty(t, p.CompletedSteps)
	assert.Nil(t, p.Data.Customer)
	assert.Nil(t, p.Data.Location)
}

func TestFormProgress_AdvanceKeepsEarlierStepData(t *testing.T) {
	p := NewFormProgress()
	p.AdvanceCustomer(&Customer{ID: 1, FullName: "João da Silva"})
	p.AdvanceLocation(&InstallationLocation{ID: 2, CustomerID: 1})

	// Saving customer-info again must not drop the location.
	p.AdvanceCustomer(&Customer{ID: 1, FullName: "João da Silva Santos"})

	require.NotNil(t, p.Data.Location)
	assert.Equal(t, uint(2), p.Data.Location.ID)
	assert.Equal(t, "João da Silva Santos", p.Data.Customer.FullName)
}

func TestCanNavigate(t *testing.T) {
	tests := []struct {
		name      string
		target    Step
		current   Step
		completed StepSet
		want      bool
	}{
		{
			name:      "Same step is always allowed",
			target:    StepTechnicalConfig,
			current:   StepTechnicalConfig,
			completed: StepSet{},
			want:      true,
		},
		{
			name:      "Completed step is allowed",
			target:    StepCustomerInfo,
			current:   StepTechnicalConfig,
			completed: StepSet{StepCustomerInfo: true, StepInstallationLocation: true},
			want:      true,
		},
		{
			name:      "Successor of completed current step is allowed",
			target:    StepInstallationLocation,
			current:   StepCustomerInfo,
			completed: StepSet{StepCustomerInfo: true},
			want:      true,
		},
		{
			name:      "Successor of incomplete current step is locked",
			target:    StepInstallationLocation,
			current:   StepCustomerInfo,
			completed: StepSet{},
			want:      false,
		},
		{
			name:      "Skipping ahead is locked",
			target:    StepFinancialTerms,
			current:   StepCustomerInfo,
			completed: StepSet{StepCustomerInfo: true},
			want:      false,
		},
		{
			name:      "Review is locked until financial terms complete",
			target:    StepReview,
			current:   StepFinancialTerms,
			completed: StepSet{StepCustomerInfo: true, StepInstallationLocation: true, StepTechnicalConfig: true},
			want:      false,
		},
		{
			name:      "Review opens after financial terms complete",
			target:    StepReview,
			current:   StepFinancialTerms,
			completed: StepSet{StepCustomerInfo: true, StepInstallationLocation: true, StepTechnicalConfig: true, StepFinancialTerms: true},
			want:      true,
		},
		{
			name:      "Unknown target is locked",
			target:    Step("payment"),
			current:   StepCustomerInfo,
			completed: StepSet{StepCustomerInfo: true},
			want:      false,
		},
		{
			name:      "Unknown current is locked",
			target:    StepCustomerInfo,
			current:   Step(""),
			completed: StepSet{StepCustomerInfo: true},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanNavigate(tt.target, tt.current, tt.completed))
		})
	}
}

func TestFormProgress_GoTo(t *testing.T) {
	p := NewFormProgress()
	p.AdvanceCustomer(&Customer{ID: 1})
	p.AdvanceLocation(&InstallationLocation{ID: 2})

	// Back to a completed step.
	assert.True(t, p.GoTo(StepCustomerInfo))
	assert.Equal(t, StepCustomerInfo, p.CurrentStep)

	// Forward to another completed step.
	assert.True(t, p.GoTo(StepInstallationLocation))
	assert.Equal(t, StepInstallationLocation, p.CurrentStep)

	// Jumping past the frontier is rejected and leaves the session alone.
	assert.False(t, p.GoTo(StepFinancialTerms))
	assert.Equal(t, StepInstallationLocation, p.CurrentStep)
}

func TestFormProgress_Resume(t *testing.T) {
	marital := MaritalMarried
	data := FormAggregate{
		Customer: &Customer{
			ID:            7,
			FullName:      "Maria Souza",
			TaxID:         "98765432100",
			MaritalStatus: &marital,
		},
		Location:  &InstallationLocation{ID: 8, CustomerID: 7, City: "Dourados", State: "MS"},
		Financial: &FinancialTerms{ID: 9, CustomerID: 7, TotalCents: 1800000},
	}

	p := NewFormProgress()
	p.Resume(data)

	assert.Equal(t, StepCustomerInfo, p.CurrentStep)
	assert.True(t, p.CompletedSteps.Has(StepCustomerInfo))
	assert.True(t, p.CompletedSteps.Has(StepInstallationLocation))
	assert.False(t, p.CompletedSteps.Has(StepTechnicalConfig))
	assert.True(t, p.CompletedSteps.Has(StepFinancialTerms))
	assert.Equal(t, uint(7), p.Data.Customer.ID)
}

func TestFormProgress_ResumeIsIdempotent(t *testing.T) {
	data := FormAggregate{
		Customer: &Customer{ID: 7, FullName: "Maria Souza", TaxID: "98765432100"},
		Location: &InstallationLocation{ID: 8, CustomerID: 7},
	}

	p := NewFormProgress()
	p.Resume(data)
	first := p.CompletedSteps.Ordered()

	p.Resume(data)
	assert.Equal(t, first, p.CompletedSteps.Ordered())
	assert.Equal(t, StepCustomerInfo, p.CurrentStep)
}

func TestNextStep(t *testing.T) {
	assert.Equal(t, StepInstallationLocation, NextStep(StepCustomerInfo))
	assert.Equal(t, StepReview, NextStep(StepFinancialTerms))
	// The last step has no successor.
	assert.Equal(t, StepReview, NextStep(StepReview))
}

func TestFinancialTerms_RecomputeTotal(t *testing.T) {
	due := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

	// Whatever total the caller carried is overwritten by the exact sum.
	terms := FinancialTerms{
		TotalCents: 999,
		Installments: []Installment{
			{Number: 1, Method: PaymentPix, AmountCents: 250000, DueDate: due},
			{Number: 2, Method: PaymentBoleto, AmountCents: 250000, DueDate: due.AddDate(0, 1, 0)},
			{Number: 3, Method: PaymentBoleto, AmountCents: 250001, DueDate: due.AddDate(0, 2, 0)},
		},
	}
	terms.RecomputeTotal()
	assert.Equal(t, Cents(1250001), terms.TotalCents)
	assert.False(t, terms.IsSinglePayment())

	// A single payment is a one-installment schedule.
	single := FinancialTerms{
		TotalCents:   1,
		Installments: []Installment{{Number: 1, Method: PaymentPix, AmountCents: 2000000, DueDate: due}},
	}
	single.RecomputeTotal()
	assert.Equal(t, Cents(2000000), single.TotalCents)
	assert.True(t, single.IsSinglePayment())
}

func TestTechnicalConfig_SecondaryInverter(t *testing.T) {
	cfg := TechnicalConfig{ModulePowerW: 555, ModuleQuantity: 20}
	assert.Nil(t, cfg.SecondaryInverter())
	assert.InDelta(t, 11.1, cfg.SystemPowerKWP(), 0.0001)

	cfg.SetSecondaryInverter(&Inverter{Brand: "Growatt", PowerKW: 5, Quantity: 1, WarrantyYears: 10})
	inv := cfg.SecondaryInverter()
	require.NotNil(t, inv)
	assert.Equal(t, "Growatt", inv.Brand)
	assert.Equal(t, 5.0, inv.PowerKW)

	cfg.SetSecondaryInverter(nil)
	assert.Nil(t, cfg.SecondaryInverter())
	assert.Nil(t, cfg.Inverter2Brand)
}

func TestCustomer_DocumentType(t *testing.T) {
	individual := Customer{TaxID: "12345678901"}
	assert.False(t, individual.IsCompany())

	company := Customer{TaxID: "12276329000169"}
	assert.True(t, company.IsCompany())
}
