package integration

import (
	"context"
	"errors"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/service/customers"
	"github.com/vladislavdragonenkov/shop/internal/service/orders"
	"github.com/vladislavdragonenkov/shop/internal/service/products"
	"github.com/vladislavdragonenkov/shop/internal/storage/memory"
)

// OrderFlowTestSuite проверяет полный путь оформления заказа
// поверх сервисного слоя и in-memory хранилищ.
type OrderFlowTestSuite struct {
	suite.Suite
	customers *customers.Service
	products  *products.Service
	orders    *orders.Service
	repo      domain.ProductRepository
}

func (suite *OrderFlowTestSuite) SetupTest() {
	baseLogger := log.New()
	baseLogger.SetLevel(log.WarnLevel) // Уменьшаем шум в тестах
	logger := baseLogger.WithField("component", "integration-test")

	customerRepo := memory.NewCustomerRepository()
	productRepo := memory.NewProductRepository()
	orderRepo := memory.NewOrderRepository()

	suite.repo = productRepo
	suite.customers = customers.NewService(customerRepo, logger)
	suite.products = products.NewService(productRepo, logger)
	suite.orders = orders.NewServiceWithoutMetrics(customerRepo, productRepo, orderRepo, logger)
}

func (suite *OrderFlowTestSuite) registerCustomer(name, email string) domain.Customer {
	customer, err := suite.customers.CreateCustomer(context.Background(), customers.CreateCustomerInput{
		Name:  name,
		Email: email,
	})
	require.NoError(suite.T(), err)
	return customer
}

func (suite *OrderFlowTestSuite) registerProduct(name string, priceMinor int64, quantity int32) domain.Product {
	product, err := suite.products.CreateProduct(context.Background(), products.CreateProductInput{
		Name:       name,
		PriceMinor: priceMinor,
		Quantity:   quantity,
	})
	require.NoError(suite.T(), err)
	return product
}

func (suite *OrderFlowTestSuite) TestFullOrderFlow() {
	customer := suite.registerCustomer("Ada Lovelace", "ada@example.com")
	keyboard := suite.registerProduct("keyboard", 4500, 10)
	mouse := suite.registerProduct("mouse", 1500, 4)

	order, err := suite.orders.CreateOrder(context.Background(), orders.CreateOrderInput{
		CustomerID: customer.ID,
		Items: []orders.OrderItemInput{
			{ProductID: keyboard.ID, Qty: 2},
			{ProductID: mouse.ID, Qty: 1},
		},
	})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), customer.ID, order.CustomerID)
	require.Len(suite.T(), order.Items, 2)
	require.Equal(suite.T(), int64(2*4500+1500), order.AmountMinor)

	// Цены зафиксированы из каталога на момент заказа.
	require.Equal(suite.T(), int64(4500), order.Items[0].PriceMinor)
	require.Equal(suite.T(), int64(1500), order.Items[1].PriceMinor)

	// Остатки уменьшены на заказанное количество.
	left, err := suite.repo.FindAllByID([]string{keyboard.ID, mouse.ID})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), int32(8), left[0].Quantity)
	require.Equal(suite.T(), int32(3), left[1].Quantity)

	stored, err := suite.orders.GetOrder(context.Background(), order.ID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), order.ID, stored.ID)

	listed, err := suite.orders.ListOrders(context.Background(), customer.ID, 0)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), listed, 1)
}

func (suite *OrderFlowTestSuite) TestRepeatedOrdersDrainStock() {
	customer := suite.registerCustomer("Grace Hopper", "grace@example.com")
	product := suite.registerProduct("monitor", 30000, 5)

	input := orders.CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []orders.OrderItemInput{{ProductID: product.ID, Qty: 2}},
	}

	first, err := suite.orders.CreateOrder(context.Background(), input)
	require.NoError(suite.T(), err)
	second, err := suite.orders.CreateOrder(context.Background(), input)
	require.NoError(suite.T(), err)
	require.NotEqual(suite.T(), first.ID, second.ID)

	// Третий заказ не проходит: осталась одна единица.
	_, err = suite.orders.CreateOrder(context.Background(), input)
	require.ErrorIs(suite.T(), err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.True(suite.T(), errors.As(err, &stockErr))
	require.Equal(suite.T(), product.ID, stockErr.ProductID)
	require.Equal(suite.T(), int32(2), stockErr.Requested)
	require.Equal(suite.T(), int32(1), stockErr.Available)
}

func (suite *OrderFlowTestSuite) TestRejectionsLeaveStateUntouched() {
	customer := suite.registerCustomer("Linus", "linus@example.com")
	product := suite.registerProduct("cable", 500, 3)

	cases := []struct {
		name  string
		input orders.CreateOrderInput
		want  error
	}{
		{
			name: "unknown customer",
			input: orders.CreateOrderInput{
				CustomerID: "ghost-customer",
				Items:      []orders.OrderItemInput{{ProductID: product.ID, Qty: 1}},
			},
			want: domain.ErrCustomerNotFound,
		},
		{
			name: "unknown product",
			input: orders.CreateOrderInput{
				CustomerID: customer.ID,
				Items:      []orders.OrderItemInput{{ProductID: "ghost-product", Qty: 1}},
			},
			want: domain.ErrNoProductsFound,
		},
		{
			name: "insufficient stock",
			input: orders.CreateOrderInput{
				CustomerID: customer.ID,
				Items:      []orders.OrderItemInput{{ProductID: product.ID, Qty: 10}},
			},
			want: domain.ErrInsufficientStock,
		},
	}

	for _, tc := range cases {
		_, err := suite.orders.CreateOrder(context.Background(), tc.input)
		require.ErrorIs(suite.T(), err, tc.want, tc.name)
	}

	left, err := suite.repo.FindAllByID([]string{product.ID})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), int32(3), left[0].Quantity)

	listed, err := suite.orders.ListOrders(context.Background(), customer.ID, 0)
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), listed)
}

func (suite *OrderFlowTestSuite) TestDuplicateRegistrations() {
	suite.registerCustomer("Dup", "dup@example.com")
	_, err := suite.customers.CreateCustomer(context.Background(), customers.CreateCustomerInput{
		Name:  "Other",
		Email: "dup@example.com",
	})
	require.ErrorIs(suite.T(), err, domain.ErrEmailInUse)

	suite.registerProduct("dup-product", 100, 1)
	_, err = suite.products.CreateProduct(context.Background(), products.CreateProductInput{
		Name:       "dup-product",
		PriceMinor: 200,
		Quantity:   5,
	})
	require.ErrorIs(suite.T(), err, domain.ErrProductNameInUse)
}

func TestOrderFlowTestSuite(t *testing.T) {
	suite.Run(t, new(OrderFlowTestSuite))
}
