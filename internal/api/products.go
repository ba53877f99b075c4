package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/service/products"
)

// ProductAPI связывает HTTP-транспорт с сервисом каталога.
type ProductAPI struct {
	service *products.Service
}

// NewProductAPI создаёт обработчики каталога.
func NewProductAPI(service *products.Service) ProductAPI {
	return ProductAPI{service: service}
}

type createProductRequest struct {
	Name       string `json:"name"`
	PriceMinor int64  `json:"price_minor"`
	Quantity   int32  `json:"quantity"`
}

type productView struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	PriceMinor int64     `json:"price_minor"`
	Quantity   int32     `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toProductView(product domain.Product) productView {
	return productView{
		ID:         product.ID,
		Name:       product.Name,
		PriceMinor: product.PriceMinor,
		Quantity:   product.Quantity,
		CreatedAt:  product.CreatedAt,
		UpdatedAt:  product.UpdatedAt,
	}
}

// Post /products
// Добавление товара в каталог.
func (api *ProductAPI) CreateProduct(c *gin.Context) {
	var payload createProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}

	product, err := api.service.CreateProduct(c.Request.Context(), products.CreateProductInput{
		Name:       payload.Name,
		PriceMinor: payload.PriceMinor,
		Quantity:   payload.Quantity,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProductView(product))
}
