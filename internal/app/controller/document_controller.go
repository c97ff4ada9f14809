package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ecoenergi/meu-contrato-solar/internal/app/service"
	"github.com/ecoenergi/meu-contrato-solar/internal/document"
	apperrors "github.com/ecoenergi/meu-contrato-solar/internal/errors"
	"github.com/ecoenergi/meu-contrato-solar/internal/middleware"
	"github.com/gin-gonic/gin"
)

// DocumentController serves the generated PDFs for download.
type DocumentController struct {
	documentService service.DocumentService
}

func NewDocumentController(documentService service.DocumentService) *DocumentController {
	return &DocumentController{documentService: documentService}
}

// GetContract renders the services contract for a customer
// GET /api/v1/documents/contract/:customer_id
func (ctrl *DocumentController) GetContract(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customerID, err := strconv.ParseUint(c.Param("customer_id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de cliente inválido")
		return
	}

	pdf, filename, err := ctrl.documentService.GenerateContract(c.Request.Context(), uint(customerID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCustomerNotFound):
			apperrors.NotFound(c, apperrors.CustomerNotFound, "Cliente não encontrado")
		case errors.Is(err, document.ErrMissingCustomer):
			apperrors.BadRequest(c, apperrors.DocumentIncompleteData, "Dados insuficientes para gerar o contrato")
		default:
			log.Error("Failed to generate contract", err, map[string]interface{}{
				"customer_id": customerID,
			})
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.DocumentRenderFailed, "Não foi possível gerar o contrato")
		}
		return
	}

	log.Info("Contract downloaded", map[string]interface{}{
		"customer_id": customerID,
		"filename":    filename,
	})

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GetPowerOfAttorney renders a stored procuração
// GET /api/v1/documents/power-of-attorney/:id
func (ctrl *DocumentController) GetPowerOfAttorney(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de procuração inválido")
		return
	}

	pdf, filename, err := ctrl.documentService.GeneratePowerOfAttorney(c.Request.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPowerOfAttorneyNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Procuração não encontrada")
		case errors.Is(err, document.ErrMissingGrantor):
			apperrors.BadRequest(c, apperrors.DocumentIncompleteData, "Dados insuficientes para gerar a procuração")
		default:
			log.Error("Failed to generate power of attorney", err, map[string]interface{}{
				"poa_id": id,
			})
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.DocumentRenderFailed, "Não foi possível gerar a procuração")
		}
		return
	}

	log.Info("Power of attorney downloaded", map[string]interface{}{
		"poa_id":   id,
		"filename": filename,
	})

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
