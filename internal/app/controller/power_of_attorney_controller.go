package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ecoenergi/meu-contrato-solar/internal/app/schema"
	"github.com/ecoenergi/meu-contrato-solar/internal/app/service"
	apperrors "github.com/ecoenergi/meu-contrato-solar/internal/errors"
	"github.com/ecoenergi/meu-contrato-solar/internal/middleware"
	"github.com/gin-gonic/gin"
)

type PowerOfAttorneyController struct {
	poaService service.PowerOfAttorneyService
}

func NewPowerOfAttorneyController(poaService service.PowerOfAttorneyService) *PowerOfAttorneyController {
	return &PowerOfAttorneyController{poaService: poaService}
}

// Create issues a procuração from a free-form payload
// POST /api/v1/power-of-attorneys
func (ctrl *PowerOfAttorneyController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var in schema.PowerOfAttorneyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Os dados informados são inválidos")
		return
	}

	poa, fields, err := ctrl.poaService.Create(in)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			apperrors.NotFound(c, apperrors.CustomerNotFound, "Cliente não encontrado")
			return
		}
		log.Error("Failed to create power of attorney", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create power of attorney")
		return
	}
	if fields != nil {
		apperrors.RespondWithValidationError(c, fields)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":           "Procuração emitida com sucesso",
		"power_of_attorney": poa,
	})
}

// CreateFromCustomer issues a procuração prefilled from a customer record
// POST /api/v1/customers/:id/power-of-attorney
func (ctrl *PowerOfAttorneyController) CreateFromCustomer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de cliente inválido")
		return
	}

	poa, err := ctrl.poaService.CreateFromCustomer(uint(customerID))
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			apperrors.NotFound(c, apperrors.CustomerNotFound, "Cliente não encontrado")
			return
		}
		log.Error("Failed to create power of attorney from customer", err, map[string]interface{}{
			"customer_id": customerID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create power of attorney")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":           "Procuração emitida com sucesso",
		"power_of_attorney": poa,
	})
}

// List returns stored procurações
// GET /api/v1/power-of-attorneys?page=&page_size=
func (ctrl *PowerOfAttorneyController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	items, total, err := ctrl.poaService.List(page, pageSize)
	if err != nil {
		log.Error("Failed to list powers of attorney", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"power_of_attorneys": items,
		"total":              total,
		"page":               page,
		"page_size":          pageSize,
	})
}

// Get returns one stored procuração
// GET /api/v1/power-of-attorneys/:id
func (ctrl *PowerOfAttorneyController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de procuração inválido")
		return
	}

	poa, err := ctrl.poaService.Get(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrPowerOfAttorneyNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Procuração não encontrada")
			return
		}
		log.Error("Failed to get power of attorney", err, map[string]interface{}{
			"poa_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"power_of_attorney": poa})
}

// Delete removes a stored procuração
// DELETE /api/v1/power-of-attorneys/:id
func (ctrl *PowerOfAttorneyController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de procuração inválido")
		return
	}

	if err := ctrl.poaService.Delete(uint(id)); err != nil {
		if errors.Is(err, service.ErrPowerOfAttorneyNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Procuração não encontrada")
			return
		}
		log.Error("Failed to delete power of attorney", err, map[string]interface{}{
			"poa_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Procuração removida com sucesso"})
}
