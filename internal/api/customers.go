package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/service/customers"
)

// CustomerAPI связывает HTTP-транспорт с сервисом покупателей.
type CustomerAPI struct {
	service *customers.Service
}

// NewCustomerAPI создаёт обработчики покупателей.
func NewCustomerAPI(service *customers.Service) CustomerAPI {
	return CustomerAPI{service: service}
}

type createCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type customerView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCustomerView(customer domain.Customer) customerView {
	return customerView{
		ID:        customer.ID,
		Name:      customer.Name,
		Email:     customer.Email,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
}

// Post /customers
// Регистрация покупателя.
func (api *CustomerAPI) CreateCustomer(c *gin.Context) {
	var payload createCustomerRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}

	customer, err := api.service.CreateCustomer(c.Request.Context(), customers.CreateCustomerInput{
		Name:  payload.Name,
		Email: payload.Email,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCustomerView(customer))
}
