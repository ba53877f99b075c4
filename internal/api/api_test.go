package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shop/internal/api"
	"github.com/vladislavdragonenkov/shop/internal/service/customers"
	"github.com/vladislavdragonenkov/shop/internal/service/orders"
	"github.com/vladislavdragonenkov/shop/internal/service/products"
	"github.com/vladislavdragonenkov/shop/internal/storage/memory"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	entry := logger.WithField("component", "test")

	customerRepo := memory.NewCustomerRepository()
	productRepo := memory.NewProductRepository()
	orderRepo := memory.NewOrderRepository()

	handlers := api.NewHandlers(
		customers.NewService(customerRepo, entry),
		products.NewService(productRepo, entry),
		orders.NewServiceWithoutMetrics(customerRepo, productRepo, orderRepo, entry),
	)
	return api.NewRouter(handlers, entry)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func createCustomer(t *testing.T, router *gin.Engine) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/customers", gin.H{
		"name":  "Alice",
		"email": "alice@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody(t, rec)["id"].(string)
}

func createProduct(t *testing.T, router *gin.Engine, name string, price int64, qty int32) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/products", gin.H{
		"name":        name,
		"price_minor": price,
		"quantity":    qty,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody(t, rec)["id"].(string)
}

func TestCreateCustomerEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/customers", gin.H{
		"name":  "Alice",
		"email": "alice@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	require.NotEmpty(t, body["id"])
	require.Equal(t, "alice@example.com", body["email"])

	// Повторный email — конфликт.
	rec = doJSON(t, router, http.MethodPost, "/customers", gin.H{
		"name":  "Another",
		"email": "alice@example.com",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	// Пустое имя — bad request.
	rec = doJSON(t, router, http.MethodPost, "/customers", gin.H{"email": "x@y.z"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProductEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/products", gin.H{
		"name":        "keyboard",
		"price_minor": 500,
		"quantity":    10,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, float64(500), body["price_minor"])
	require.Equal(t, float64(10), body["quantity"])

	rec = doJSON(t, router, http.MethodPost, "/products", gin.H{
		"name":        "keyboard",
		"price_minor": 100,
		"quantity":    1,
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/products", gin.H{
		"name":        "mouse",
		"price_minor": -5,
		"quantity":    1,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderEndpoint(t *testing.T) {
	router := newTestRouter()
	customerID := createCustomer(t, router)
	productID := createProduct(t, router, "keyboard", 500, 10)

	rec := doJSON(t, router, http.MethodPost, "/orders", gin.H{
		"customer_id": customerID,
		"products": []gin.H{
			{"id": productID, "quantity": 3},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	require.Equal(t, customerID, body["customer_id"])
	require.Equal(t, float64(1500), body["amount_minor"])

	items := body["order_products"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	require.Equal(t, productID, item["product_id"])
	require.Equal(t, float64(3), item["quantity"])
	require.Equal(t, float64(500), item["price_minor"])

	// Заказ читается обратно по id.
	orderID := body["id"].(string)
	rec = doJSON(t, router, http.MethodGet, "/orders/"+orderID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, orderID, decodeBody(t, rec)["id"])
}

func TestCreateOrderEndpoint_Failures(t *testing.T) {
	router := newTestRouter()
	customerID := createCustomer(t, router)
	productID := createProduct(t, router, "keyboard", 500, 2)

	cases := []struct {
		name string
		body gin.H
		want int
	}{
		{
			name: "unknown customer",
			body: gin.H{"customer_id": "missing", "products": []gin.H{{"id": productID, "quantity": 1}}},
			want: http.StatusNotFound,
		},
		{
			name: "unknown product",
			body: gin.H{"customer_id": customerID, "products": []gin.H{{"id": "missing", "quantity": 1}}},
			want: http.StatusNotFound,
		},
		{
			name: "insufficient stock",
			body: gin.H{"customer_id": customerID, "products": []gin.H{{"id": productID, "quantity": 5}}},
			want: http.StatusConflict,
		},
		{
			name: "empty items",
			body: gin.H{"customer_id": customerID, "products": []gin.H{}},
			want: http.StatusBadRequest,
		},
		{
			name: "non-positive quantity",
			body: gin.H{"customer_id": customerID, "products": []gin.H{{"id": productID, "quantity": 0}}},
			want: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/orders", tc.body)
			require.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}

func TestCreateOrderEndpoint_MalformedJSON(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrderEndpoint_NotFound(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodGet, fmt.Sprintf("/orders/%s", "missing"), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
