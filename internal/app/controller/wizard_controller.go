package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ecoenergi/meu-contrato-solar/internal/app/model"
	"github.com/ecoenergi/meu-contrato-solar/internal/app/schema"
	"github.com/ecoenergi/meu-contrato-solar/internal/app/service"
	apperrors "github.com/ecoenergi/meu-contrato-solar/internal/errors"
	"github.com/ecoenergi/meu-contrato-solar/internal/middleware"
	"github.com/gin-gonic/gin"
)

// WizardController drives the contract wizard: one session per operator,
// one endpoint per step.
type WizardController struct {
	wizardService service.WizardService
}

func NewWizardController(wizardService service.WizardService) *WizardController {
	return &WizardController{wizardService: wizardService}
}

type NavigateRequest struct {
	Step string `json:"step" binding:"required"`
}

// progressPayload renders the session state the frontend drives the
// stepper with.
func progressPayload(progress *model.FormProgress) gin.H {
	return gin.H{
		"current_step":    progress.CurrentStep,
		"completed_steps": progress.CompletedSteps.Ordered(),
		"data":            progress.Data,
	}
}

// GetProgress returns the operator's wizard session
// GET /api/v1/wizard/progress
func (ctrl *WizardController) GetProgress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	operatorID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	progress, err := ctrl.wizardService.GetProgress(c.Request.Context(), operatorID)
	if err != nil {
		if errors.Is(err, service.ErrNoProgress) {
			apperrors.NotFound(c, apperrors.WizardNoProgress, "Nenhum contrato em andamento")
			return
		}
		log.Error("Failed to load wizard progress", err, map[string]interface{}{
			"operator_id": operatorID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progressPayload(progress)})
}

// StartNew discards any session in flight and opens a fresh one
// POST /api/v1/wizard/new
func (ctrl *WizardController) StartNew(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	operatorID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	progress, err := ctrl.wizardService.StartNew(c.Request.Context(), operatorID)
	if err != nil {
		log.Error("Failed to start wizard session", err, map[string]interface{}{
			"operator_id": operatorID,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Wizard session started", map[string]interface{}{
		"operator_id": operatorID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Novo contrato iniciado",
		"progress": progressPayload(progress),
	})
}

// Navigate moves the session to another step
// POST /api/v1/wizard/navigate
func (ctrl *WizardController) Navigate(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	operatorID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Os dados informados são inválidos")
		return
	}

	target := model.Step(req.Step)
	if !target.Valid() {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Etapa desconhecida")
		return
	}

	// A gate-denied move comes back as the unchanged session, not an error.
	progress, err := ctrl.wizardService.Navigate(c.Request.Context(), operatorID, target)
	if err != nil {
		if errors.Is(err, service.ErrNoProgress) {
			apperrors.NotFound(c, apperrors.WizardNoProgress, "Nenhum contrato em andamento")
			return
		}
		log.Error("Failed to navigate wizard", err, map[string]interface{}{
			"operator_id": operatorID,
			"target":      req.Step,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progressPayload(progress)})
}

// SaveCustomerInfo saves the customer-info step
// POST /api/v1/wizard/steps/customer
func (ctrl *WizardController) SaveCustomerInfo(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	operatorID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var in schema.CustomerInfoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Os dados informados são inválidos")
		return
	}

	progress, fields, err := ctrl.wizardService.SaveCustomerInfo(c.Request.Context(), operatorID, in)
	if err != nil {
		if errors.Is(err, service.ErrTaxIDConflict) {
			log.Warn("Customer step rejected: tax id already registered", map[string]interface{}{
				"operator_id": operatorID,
			})
			apperrors.Conflict(c, apperrors.CustomerTaxIDExists, "Já existe um cliente cadastrado com este CPF/CNPJ")
			return
		}
		log.Error("Failed to save customer step", err, map[string]interface{}{
			"operator_id": operatorID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "save customer")
		return
	}
	if fields != nil {
		apperrors.RespondWithValidationError(c, fields)
		return
	}

	log.Info("Customer step saved", map[string]interface{}{
		"operator_id": operatorID,
	})

	c.JSON(http.StatusOK, gin.H{"progress": progressPayload(progress)})
}

// SaveLocation saves the installation-location step
// POST /api/v1/wizard/steps/location
func (ctrl *WizardController) SaveLocation(c *gin.Context) {
	var in schema.LocationInput
	ctrl.saveStep(c, "location", &in, func(c *gin.Context, operatorID uint) (*model.FormProgress, map[string]string, error) {
		return ctrl.wizardService.SaveLocation(c.Request.Context(), operatorID, in)
	})
}

// SaveTechnical saves the technical-config step
// POST /api/v1/wizard/steps/technical
func (ctrl *WizardController) SaveTechnical(c *gin.Context) {
	var in schema.TechnicalInput
	ctrl.saveStep(c, "technical", &in, func(c *gin.Context, operatorID uint) (*model.FormProgress, map[string]string, error) {
		return ctrl.wizardService.SaveTechnical(c.Request.Context(), operatorID, in)
	})
}

// SaveFinancial saves the financial-terms step
// POST /api/v1/wizard/steps/financial
func (ctrl *WizardController) SaveFinancial(c *gin.Context) {
	var in schema.FinancialInput
	ctrl.saveStep(c, "financial", &in, func(c *gin.Context, operatorID uint) (*model.FormProgress, map[string]string, error) {
		return ctrl.wizardService.SaveFinancial(c.Request.Context(), operatorID, in)
	})
}

// saveStep binds the payload and runs the shared error mapping for the
// steps that require an open session with a saved customer.
func (ctrl *WizardController) saveStep(
	c *gin.Context,
	stepName string,
	payload interface{},
	save func(c *gin.Context, operatorID uint) (*model.FormProgress, map[string]string, error),
) {
	log := middleware.GetLoggerFromContext(c)

	operatorID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := c.ShouldBindJSON(payload); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Os dados informados são inválidos")
		return
	}

	progress, fields, err := save(c, operatorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoProgress):
			apperrors.NotFound(c, apperrors.WizardNoProgress, "Nenhum contrato em andamento")
		case errors.Is(err, service.ErrStepIncomplete):
			apperrors.BadRequest(c, apperrors.WizardStepIncomplete, "Preencha os dados do cliente antes desta etapa")
		default:
			log.Error("Failed to save wizard step", err, map[string]interface{}{
				"operator_id": operatorID,
				"step":        stepName,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "save step")
		}
		return
	}
	if fields != nil {
		apperrors.RespondWithValidationError(c, fields)
		return
	}

	log.Info("Wizard step saved", map[string]interface{}{
		"operator_id": operatorID,
		"step":        stepName,
	})

	c.JSON(http.StatusOK, gin.H{"progress": progressPayload(progress)})
}

// Resume loads a stored customer record into a fresh session
// POST /api/v1/wizard/resume/:customer_id
func (ctrl *WizardController) Resume(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	operatorID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	customerID, err := strconv.ParseUint(c.Param("customer_id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de cliente inválido")
		return
	}

	progress, err := ctrl.wizardService.Resume(c.Request.Context(), operatorID, uint(customerID))
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			apperrors.NotFound(c, apperrors.CustomerNotFound, "Cliente não encontrado")
			return
		}
		log.Error("Failed to resume wizard session", err, map[string]interface{}{
			"operator_id": operatorID,
			"customer_id": customerID,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Wizard session resumed", map[string]interface{}{
		"operator_id": operatorID,
		"customer_id": customerID,
	})

	c.JSON(http.StatusOK, gin.H{"progress": progressPayload(progress)})
}
