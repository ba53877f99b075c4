package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/service/orders"
)

// OrderAPI связывает HTTP-транспорт с сервисом заказов.
type OrderAPI struct {
	service *orders.Service
}

// NewOrderAPI создаёт обработчики заказов.
func NewOrderAPI(service *orders.Service) OrderAPI {
	return OrderAPI{service: service}
}

type orderItemRequest struct {
	ID       string `json:"id"`
	Quantity int32  `json:"quantity"`
}

type createOrderRequest struct {
	CustomerID string             `json:"customer_id"`
	Products   []orderItemRequest `json:"products"`
}

type orderItemView struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	Quantity   int32     `json:"quantity"`
	PriceMinor int64     `json:"price_minor"`
	CreatedAt  time.Time `json:"created_at"`
}

type orderView struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	AmountMinor   int64           `json:"amount_minor"`
	OrderProducts []orderItemView `json:"order_products"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func toOrderView(order domain.Order) orderView {
	items := make([]orderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemView{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Qty,
			PriceMinor: item.PriceMinor,
			CreatedAt:  item.CreatedAt,
		})
	}
	return orderView{
		ID:            order.ID,
		CustomerID:    order.CustomerID,
		AmountMinor:   order.AmountMinor,
		OrderProducts: items,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

// Post /orders
// Оформление заказа: проверка покупателя, товаров и остатков, списание.
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	var payload createOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}

	items := make([]orders.OrderItemInput, 0, len(payload.Products))
	for _, item := range payload.Products {
		items = append(items, orders.OrderItemInput{ProductID: item.ID, Qty: item.Quantity})
	}

	order, err := api.service.CreateOrder(c.Request.Context(), orders.CreateOrderInput{
		CustomerID: payload.CustomerID,
		Items:      items,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderView(order))
}

// Get /orders/:id
// Просмотр заказа с позициями.
func (api *OrderAPI) GetOrder(c *gin.Context) {
	order, err := api.service.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderView(order))
}
