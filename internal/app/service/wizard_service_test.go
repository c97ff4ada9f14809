package service

import (
	"context"
	"testing"

	"github.com/ecoenergi/meu-contrato-solar/internal/app/model"
	"github.com/ecoenergi/meu-contrato-solar/internal/app/repository"
	"github.com/ecoenergi/meu-contrato-solar/internal/app/schema"
	"github.com/ecoenergi/meu-contrato-solar/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testOperatorID = uint(1)

func setupWizardTest(t *testing.T) (*gorm.DB, WizardService, repository.CustomerRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	customerRepo := repository.NewCustomerRepository(testDB)
	svc := NewWizardService(
		customerRepo,
		repository.NewLocationRepository(testDB),
		repository.NewTechnicalRepository(testDB),
		repository.NewFinancialRepository(testDB),
		NewMemoryProgressStore(),
	)
	return testDB, svc, customerRepo
}

func customerStepInput() schema.CustomerInfoInput {
	return schema.CustomerInfoInput{
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

func locationStepInput() schema.LocationInput {
	return schema.LocationInput{
		Street:           "Rua das Palmeiras",
		Number:           "120",
		District:         "Centro",
		City:             "Campo Grande",
		State:            "MS",
		CEP:              "79002-000",
		UtilityCompany:   "Energisa MS",
		InstallationType: "residential",
	}
}

func technicalStepInput() schema.TechnicalInput {
	return schema.TechnicalInput{
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

func financialStepInput() schema.FinancialInput {
	return schema.FinancialInput{
		Installments: []schema.InstallmentInput{
			{Method: "Pix", AmountCents: 500000, DueDate: "2025-12-10"},
			{Method: "Boleto", AmountCents: 1000000, DueDate: "2026-01-10"},
			{Method: "Boleto", AmountCents: 1000000, DueDate: "2026-02-10"},
		},
	}
}

func TestWizardService_FullFlow(t *testing.T) {
	_, svc, _ := setupWizardTest(t)
	ctx := context.Background()

	progress, err := svc.StartNew(ctx, testOperatorID)
	require.NoError(t, err)
	assert.Equal(t, model.StepCustomerInfo, progress.CurrentStep)

	progress, fields, err := svc.SaveCustomerInfo(ctx, testOperatorID, customerStepInput())
	require.NoError(t, err)
	require.Empty(t, fields)
	assert.Equal(t, model.StepInstallationLocation, progress.CurrentStep)
	customerID, ok := progress.Data.CustomerID()
	require.True(t, ok)
	assert.NotZero(t, customerID)

	progress, fields, err = svc.SaveLocation(ctx, testOperatorID, locationStepInput())
	require.NoError(t, err)
	require.Empty(t, fields)
	assert.Equal(t, model.StepTechnicalConfig, progress.CurrentStep)

	progress, fields, err = svc.SaveTechnical(ctx, testOperatorID, technicalStepInput())
	require.NoError(t, err)
	require.Empty(t, fields)
	assert.Equal(t, model.StepFinancialTerms, progress.CurrentStep)

	progress, fields, err = svc.SaveFinancial(ctx, testOperatorID, financialStepInput())
	require.NoError(t, err)
	require.Empty(t, fields)
	assert.Equal(t, model.StepReview, progress.CurrentStep)

	// The stored total is the installment sum.
	require.NotNil(t, progress.Data.Financial)
	assert.Equal(t, model.Cents(2500000), progress.Data.Financial.TotalCents)

	// The session survives a reload.
	reloaded, err := svc.GetProgress(ctx, testOperatorID)
	require.NoError(t, err)
	assert.Equal(t, model.StepReview, reloaded.CurrentStep)
	assert.Len(t, reloaded.CompletedSteps, 4)
}

func TestWizardService_GetProgressWithoutSession(t *testing.T) {
	_, svc, _ := setupWizardTest(t)

	progress, err := svc.GetProgress(context.Background(), testOperatorID)
	assert.ErrorIs(t, err, ErrNoProgress)
	assert.Nil(t, progress)
}

func TestWizardService_SaveCustomerInfoOpensSession(t *testing.T) {
	_, svc, _ := setupWizardTest(t)
	ctx := context.Background()

	// No explicit StartNew call.
	progress, fields, err := svc.SaveCustomerInfo(ctx, testOperatorID, customerStepInput())
	require.NoError(t, err)
	require.Empty(t, fields)
	assert.Equal(t, model.StepInstallationLocation, progress.CurrentStep)
}

func TestWizardService_SaveLocationWithoutCustomer(t *testing.T) {
	_, svc, _ := setupWizardTest(t)
	ctx := context.Background()

	_, err := svc.StartNew(ctx, testOperatorID)
	require.NoError(t, err)

	progress, fields, err := svc.SaveLocation(ctx, testOperatorID, locationStepInput())
	assert.ErrorIs(t, err, ErrStepIncomplete)
	assert.Nil(t, progress)
	assert.Nil(t, fields)
}

func TestWizardService_SaveCustomerInfoValidation(t *testing.T) {
	_, svc, _ := setupWizardTest(t)

	in := customerStepInput()
	in.TaxID = "123"

	progress, fields, err := svc.SaveCustomerInfo(context.Background(), testOperatorID, in)
	require.NoError(t, err)
	assert.Nil(t, progress)
	assert.Contains(t, fields, "tax_id")
}

func TestWizardService_ResaveUpdatesSameCustomer(t *testing.T) {
	testDB, svc, _ := setupWizardTest(t)
	ctx := context.Background()

	_, fields, err := svc.SaveCustomerInfo(ctx, testOperatorID, customerStepInput())
	require.NoError(t, err)
	require.Empty(t, fields)

	// Saving the step again inside the session updates in place.
	in := customerStepInput()
	in.FullName = "João da Silva Santos"
	progress, fields, err := svc.SaveCustomerInfo(ctx, testOperatorID, in)
	require.NoError(t, err)
	require.Empty(t, fields)

	var count int64
	require.NoError(t, testDB.Model(&model.Customer{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, "João da Silva Santos", progress.Data.Customer.FullName)
}

func TestWizardService_TaxIDConflictOnFirstSave(t *testing.T) {
	_, svc, customerRepo := setupWizardTest(t)
	ctx := context.Background()

	// Another record already holds the tax id.
	status := model.MaritalSingle
	require.NoError(t, customerRepo.Create(&model.Customer{
		FullName:      "Outro Cliente",
		TaxID:         "12345678901",
		MaritalStatus: &status,
	}))

	progress, fields, err := svc.SaveCustomerInfo(ctx, testOperatorID, customerStepInput())
	assert.ErrorIs(t, err, ErrTaxIDConflict)
	assert.Nil(t, progress)
	assert.Nil(t, fields)
}

func TestWizardService_TaxIDConflictOnEdit(t *testing.T) {
	_, svc, customerRepo := setupWizardTest(t)
	ctx := context.Background()

	status := model.MaritalSingle
	require.NoError(t, customerRepo.Create(&model.Customer{
		FullName:      "Outro Cliente",
		TaxID:         "98765432100",
		MaritalStatus: &status,
	}))

	_, fields, err := svc.SaveCustomerInfo(ctx, testOperatorID, customerStepInput())
	require.NoError(t, err)
	require.Empty(t, fields)

	// Editing the session customer onto the other record's tax id fails.
	in := customerStepInput()
	in.TaxID = "987.654.321-00"
	_, _, err = svc.SaveCustomerInfo(ctx, testOperatorID, in)
	assert.ErrorIs(t, err, ErrTaxIDConflict)
}

func TestWizardService_Navigate(t *testing.T) {
	_, svc, _ := setupWizardTest(t)
	ctx := context.Background()

	_, fields, err := svc.SaveCustomerInfo(ctx, testOperatorID, customerStepInput())
	require.NoError(t, err)
	require.Empty(t, fields)

	// Back to a completed step.
	progress, err := svc.Navigate(ctx, testOperatorID, model.StepCustomerInfo)
	require.NoError(t, err)
	assert.Equal(t, model.StepCustomerInfo, progress.CurrentStep)

	// Skipping ahead is a no-op, not an error.
	progress, err = svc.Navigate(ctx, testOperatorID, model.StepFinancialTerms)
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.Equal(t, model.StepCustomerInfo, progress.CurrentStep)

	// The denied move left the stored session alone too.
	reloaded, err := svc.GetProgress(ctx, testOperatorID)
	require.NoError(t, err)
	assert.Equal(t, model.StepCustomerInfo, reloaded.CurrentStep)
}

func TestWizardService_ResumeRecomputesCompletedSteps(t *testing.T) {
	_, svc, _ := setupWizardTest(t)
	ctx := context.Background()

	_, fields, err := svc.SaveCustomerInfo(ctx, testOperatorID, customerStepInput())
	require.NoError(t, err)
	require.Empty(t, fields)
	progress, fields, err := svc.SaveLocation(ctx, testOperatorID, locationStepInput())
	require.NoError(t, err)
	require.Empty(t, fields)

	customerID, _ := progress.Data.CustomerID()

	// A different operator resumes the record later.
	resumed, err := svc.Resume(ctx, uint(2), customerID)
	require.NoError(t, err)

	assert.Equal(t, model.StepCustomerInfo, resumed.CurrentStep)
	assert.True(t, resumed.CompletedSteps.Has(model.StepCustomerInfo))
	assert.True(t, resumed.CompletedSteps.Has(model.StepInstallationLocation))
	assert.False(t, resumed.CompletedSteps.Has(model.StepTechnicalConfig))
	assert.False(t, resumed.CompletedSteps.Has(model.StepFinancialTerms))
}

func TestWizardService_ResumeRoundTrip(t *testing.T) {
	_, svc, _ := setupWizardTest(t)
	ctx := context.Background()

	_, fields, err := svc.SaveCustomerInfo(ctx, testOperatorID, customerStepInput())
	require.NoError(t, err)
	require.Empty(t, fields)
	_, fields, err = svc.SaveLocation(ctx, testOperatorID, locationStepInput())
	require.NoError(t, err)
	require.Empty(t, fields)
	_, fields, err = svc.SaveTechnical(ctx, testOperatorID, technicalStepInput())
	require.NoError(t, err)
	require.Empty(t, fields)
	progress, fields, err := svc.SaveFinancial(ctx, testOperatorID, financialStepInput())
	require.NoError(t, err)
	require.Empty(t, fields)

	customerID, _ := progress.Data.CustomerID()

	resumed, err := svc.Resume(ctx, testOperatorID, customerID)
	require.NoError(t, err)

	// Everything saved comes back.
	assert.Equal(t, "João da Silva", resumed.Data.Customer.FullName)
	assert.Equal(t, "12345678901", resumed.Data.Customer.TaxID)
	assert.Equal(t, "1234567", resumed.Data.Customer.RG)
	assert.Equal(t, "Campo Grande", resumed.Data.Location.City)
	assert.Equal(t, "Energisa MS", resumed.Data.Location.UtilityCompany)
	assert.Equal(t, "Growatt", resumed.Data.Technical.Inverter1Brand)
	require.NotNil(t, resumed.Data.Financial)
	assert.Equal(t, model.Cents(2500000), resumed.Data.Financial.TotalCents)
	require.Len(t, resumed.Data.Financial.Installments, 3)
	assert.Equal(t, model.PaymentPix, resumed.Data.Financial.Installments[0].Method)
	assert.Len(t, resumed.CompletedSteps, 4)

	// Resuming twice gives the same state.
	again, err := svc.Resume(ctx, testOperatorID, customerID)
	require.NoError(t, err)
	assert.Equal(t, resumed.CompletedSteps.Ordered(), again.CompletedSteps.Ordered())
	assert.Equal(t, resumed.Data.Customer.ID, again.Data.Customer.ID)
}

func TestWizardService_ResumeUnknownCustomer(t *testing.T) {
	_, svc, _ := setupWizardTest(t)

	progress, err := svc.Resume(context.Background(), testOperatorID, 9999)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
	assert.Nil(t, progress)
}

func TestWizardService_ResumeThenEditUpdatesRecord(t *testing.T) {
	testDB, svc, _ := setupWizardTest(t)
	ctx := context.Background()

	_, fields, err := svc.SaveCustomerInfo(ctx, testOperatorID, customerStepInput())
	require.NoError(t, err)
	require.Empty(t, fields)
	progress, fields, err := svc.SaveLocation(ctx, testOperatorID, locationStepInput())
	require.NoError(t, err)
	require.Empty(t, fields)

	customerID, _ := progress.Data.CustomerID()

	_, err = svc.Resume(ctx, testOperatorID, customerID)
	require.NoError(t, err)

	// Editing the location after resume updates the existing row.
	in := locationStepInput()
	in.City = "Dourados"
	_, fields, err = svc.SaveLocation(ctx, testOperatorID, in)
	require.NoError(t, err)
	require.Empty(t, fields)

	var count int64
	require.NoError(t, testDB.Model(&model.InstallationLocation{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var location model.InstallationLocation
	require.NoError(t, testDB.Where("customer_id = ?", customerID).First(&location).Error)
	assert.Equal(t, "Dourados", location.City)
}

func TestWizardService_StartNewDiscardsSession(t *testing.T) {
	_, svc, _ := setupWizardTest(t)
	ctx := context.Background()

	_, fields, err := svc.SaveCustomerInfo(ctx, testOperatorID, customerStepInput())
	require.NoError(t, err)
	require.Empty(t, fields)

	progress, err := svc.StartNew(ctx, testOperatorID)
	require.NoError(t, err)

	assert.Equal(t, model.StepCustomerInfo, progress.CurrentStep)
	assert.Empty(t, progress.CompletedSteps)
	assert.Nil(t, progress.Data.Customer)
}
