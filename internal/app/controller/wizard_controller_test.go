package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/ecoenergi/meu-contrato-solar/internal/app/model"
	"github.com/ecoenergi/meu-contrato-solar/internal/app/repository"
	"github.com/ecoenergi/meu-contrato-solar/internal/app/service"
	"github.com/ecoenergi/meu-contrato-solar/internal/db"
	"github.com/ecoenergi/meu-contrato-solar/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setUserIDInContext(c *gin.Context, userID uint) {
	c.Set(middleware.UserIDKey, userID)
}

func setupWizardControllerTest(t *testing.T) (*WizardController, *gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	customerRepo := repository.NewCustomerRepository(testDB)
	wizardService := service.NewWizardService(
		customerRepo,
		repository.NewLocationRepository(testDB),
		repository.NewTechnicalRepository(testDB),
		repository.NewFinancialRepository(testDB),
		service.NewMemoryProgressStore(),
	)
	wizardController := NewWizardController(wizardService)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return wizardController, router, testDB
}

func registerWizardRoutes(router *gin.Engine, controller *WizardController, operatorID uint) {
	asOperator := func(handler gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			setUserIDInContext(c, operatorID)
			handler(c)
		}
	}

	router.GET("/wizard/progress", asOperator(controller.GetProgress))
	router.POST("/wizard/new", asOperator(controller.StartNew))
	router.POST("/wizard/navigate", asOperator(controller.Navigate))
	router.POST("/wizard/steps/customer", asOperator(controller.SaveCustomerInfo))
	router.POST("/wizard/steps/location", asOperator(controller.SaveLocation))
	router.POST("/wizard/steps/technical", asOperator(controller.SaveTechnical))
	router.POST("/wizard/steps/financial", asOperator(controller.SaveFinancial))
	router.POST("/wizard/resume/:customer_id", asOperator(controller.Resume))
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func customerPayload() map[string]interface{} {
	return map[string]interface{}{
		"full_name":         "João da Silva",
		"nationality":       "brasileiro",
		"profession":        "engenheiro",
		"marital_status":    "married",
		"tax_id":            "123.456.789-01",
		"rg":                "1234567",
		"issuing_authority": "SSP/MS",
		"phone":             "(67) 99999-1234",
		"email":             "joao@example.com",
	}
}

func TestWizardController_GetProgress_NoSession(t *testing.T) {
	controller, router, _ := setupWizardControllerTest(t)
	registerWizardRoutes(router, controller, 1)

	req := httptest.NewRequest(http.MethodGet, "/wizard/progress", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	response := decodeBody(t, w)
	assert.Equal(t, "WIZARD_NO_PROGRESS", response["error"])
}

func TestWizardController_StartNew(t *testing.T) {
	controller, router, _ := setupWizardControllerTest(t)
	registerWizardRoutes(router, controller, 1)

	w := postJSON(t, router, "/wizard/new", nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	response := decodeBody(t, w)
	progress := response["progress"].(map[string]interface{})
	assert.Equal(t, "customer-info", progress["current_step"])
}

func TestWizardController_SaveCustomerInfo(t *testing.T) {
	controller, router, testDB := setupWizardControllerTest(t)
	registerWizardRoutes(router, controller, 1)

	w := postJSON(t, router, "/wizard/steps/customer", customerPayload())

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeBody(t, w)
	progress := response["progress"].(map[string]interface{})
	assert.Equal(t, "installation-location", progress["current_step"])

	var count int64
	require.NoError(t, testDB.Model(&model.Customer{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWizardController_SaveCustomerInfo_ValidationFields(t *testing.T) {
	controller, router, _ := setupWizardControllerTest(t)
	registerWizardRoutes(router, controller, 1)

	payload := customerPayload()
	payload["tax_id"] = "123"

	w := postJSON(t, router, "/wizard/steps/customer", payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_INVALID_INPUT", response["error"])
	fields := response["fields"].(map[string]interface{})
	assert.Contains(t, fields, "tax_id")
}

func TestWizardController_SaveCustomerInfo_TaxIDConflict(t *testing.T) {
	controller, router, testDB := setupWizardControllerTest(t)
	registerWizardRoutes(router, controller, 1)

	status := model.MaritalSingle
	require.NoError(t, testDB.Create(&model.Customer{
		FullName:      "Outro Cliente",
		TaxID:         "12345678901",
		MaritalStatus: &status,
	}).Error)

	w := postJSON(t, router, "/wizard/steps/customer", customerPayload())

	assert.Equal(t, http.StatusConflict, w.Code)
	response := decodeBody(t, w)
	assert.Equal(t, "CUSTOMER_TAXID_EXISTS", response["error"])
}

func TestWizardController_SaveLocation_WithoutCustomer(t *testing.T) {
	controller, router, _ := setupWizardControllerTest(t)
	registerWizardRoutes(router, controller, 1)

	w := postJSON(t, router, "/wizard/new", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/wizard/steps/location", map[string]interface{}{
		"street":            "Rua das Palmeiras",
		"city":              "Campo Grande",
		"state":             "MS",
		"cep":               "79002-000",
		"utility_company":   "Energisa MS",
		"installation_type": "residential",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decodeBody(t, w)
	assert.Equal(t, "WIZARD_STEP_INCOMPLETE", response["error"])
}

func TestWizardController_Navigate(t *testing.T) {
	controller, router, _ := setupWizardControllerTest(t)
	registerWizardRoutes(router, controller, 1)

	w := postJSON(t, router, "/wizard/steps/customer", customerPayload())
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, router, "/wizard/navigate", map[string]interface{}{"step": "customer-info"})
	assert.Equal(t, http.StatusOK, w.Code)

	// A locked target is a no-op: same status, session still where it was.
	w = postJSON(t, router, "/wizard/navigate", map[string]interface{}{"step": "financial-terms"})
	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeBody(t, w)
	progress := response["progress"].(map[string]interface{})
	assert.Equal(t, "customer-info", progress["current_step"])

	w = postJSON(t, router, "/wizard/navigate", map[string]interface{}{"step": "no-such-step"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWizardController_Resume(t *testing.T) {
	controller, router, _ := setupWizardControllerTest(t)
	registerWizardRoutes(router, controller, 1)

	w := postJSON(t, router, "/wizard/steps/customer", customerPayload())
	require.Equal(t, http.StatusOK, w.Code)

	response := decodeBody(t, w)
	progress := response["progress"].(map[string]interface{})
	data := progress["data"].(map[string]interface{})
	customer := data["customer"].(map[string]interface{})
	customerID := int(customer["id"].(float64))

	w = postJSON(t, router, "/wizard/resume/"+strconv.Itoa(customerID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response = decodeBody(t, w)
	progress = response["progress"].(map[string]interface{})
	assert.Equal(t, "customer-info", progress["current_step"])

	w = postJSON(t, router, "/wizard/resume/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	response = decodeBody(t, w)
	assert.Equal(t, "CUSTOMER_NOT_FOUND", response["error"])
}

func TestWizardController_Unauthorized(t *testing.T) {
	controller, router, _ := setupWizardControllerTest(t)

	// No user id in context.
	router.GET("/wizard/progress", controller.GetProgress)

	req := httptest.NewRequest(http.MethodGet, "/wizard/progress", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
