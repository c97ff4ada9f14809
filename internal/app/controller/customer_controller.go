package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ecoenergi/meu-contrato-solar/internal/app/service"
	apperrors "github.com/ecoenergi/meu-contrato-solar/internal/errors"
	"github.com/ecoenergi/meu-contrato-solar/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CustomerController struct {
	customerService service.CustomerService
}

func NewCustomerController(customerService service.CustomerService) *CustomerController {
	return &CustomerController{customerService: customerService}
}

// Search lists stored customers
// GET /api/v1/customers?q=&page=&page_size=
func (ctrl *CustomerController) Search(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	query := c.Query("q")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	customers, total, err := ctrl.customerService.Search(query, page, pageSize)
	if err != nil {
		log.Error("Failed to search customers", err, map[string]interface{}{
			"query": query,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": customers,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Get returns one customer with every saved step
// GET /api/v1/customers/:id
func (ctrl *CustomerController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de cliente inválido")
		return
	}

	customer, err := ctrl.customerService.GetFull(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			apperrors.NotFound(c, apperrors.CustomerNotFound, "Cliente não encontrado")
			return
		}
		log.Error("Failed to get customer", err, map[string]interface{}{
			"customer_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

// Delete removes a customer record and its steps
// DELETE /api/v1/customers/:id
func (ctrl *CustomerController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de cliente inválido")
		return
	}

	if err := ctrl.customerService.Delete(uint(id)); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			apperrors.NotFound(c, apperrors.CustomerNotFound, "Cliente não encontrado")
			return
		}
		log.Error("Failed to delete customer", err, map[string]interface{}{
			"customer_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Customer deleted", map[string]interface{}{
		"customer_id": id,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Cliente removido com sucesso"})
}
