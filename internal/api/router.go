package api

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/service/customers"
	"github.com/vladislavdragonenkov/shop/internal/service/orders"
	"github.com/vladislavdragonenkov/shop/internal/service/products"
)

// Handlers объединяет HTTP-обработчики магазина.
type Handlers struct {
	Customers CustomerAPI
	Products  ProductAPI
	Orders    OrderAPI
}

// NewHandlers собирает обработчики поверх сервисного слоя.
func NewHandlers(
	customerSvc *customers.Service,
	productSvc *products.Service,
	orderSvc *orders.Service,
) Handlers {
	return Handlers{
		Customers: NewCustomerAPI(customerSvc),
		Products:  NewProductAPI(productSvc),
		Orders:    NewOrderAPI(orderSvc),
	}
}

// NewRouter создаёт gin-роутер с маршрутами магазина.
func NewRouter(handlers Handlers, logger *log.Entry) *gin.Engine {
	if logger == nil {
		logger = log.New().WithField("component", "api")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	router.POST("/customers", handlers.Customers.CreateCustomer)
	router.POST("/products", handlers.Products.CreateProduct)
	router.POST("/orders", handlers.Orders.CreateOrder)
	router.GET("/orders/:id", handlers.Orders.GetOrder)

	return router
}

// requestLogger пишет компактную строку на каждый запрос.
func requestLogger(logger *log.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(log.Fields{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("http request")
	}
}
