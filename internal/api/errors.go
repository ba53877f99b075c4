package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// errorResponse — единый формат ошибок HTTP API.
type errorResponse struct {
	Error string `json:"error"`
}

// respondServiceError переводит доменную ошибку в HTTP-статус.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrEmailInUse),
		errors.Is(err, domain.ErrProductNameInUse):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case isValidationError(err):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func isValidationError(err error) bool {
	for _, target := range []error{
		domain.ErrCustomerRequired,
		domain.ErrItemsRequired,
		domain.ErrItemProductRequired,
		domain.ErrItemQtyInvalid,
		domain.ErrItemPriceInvalid,
		domain.ErrCustomerNameRequired,
		domain.ErrCustomerEmailRequired,
		domain.ErrProductNameRequired,
		domain.ErrProductPriceInvalid,
		domain.ErrProductQuantityNegative,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
