package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/metrics"
)

// OrderItemInput — одна запрошенная позиция: товар и количество.
type OrderItemInput struct {
	ProductID string
	Qty       int32
}

// CreateOrderInput — входные данные workflow создания заказа.
type CreateOrderInput struct {
	CustomerID string
	Items      []OrderItemInput
}

// Service реализует оформление заказа поверх трёх репозиториев:
// покупатели (чтение), каталог (чтение и списание остатков), заказы (запись).
type Service struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	orders    domain.OrderRepository
	logger    *log.Entry
	metrics   *metrics.OrderMetrics
}

// NewService создаёт рабочий экземпляр сервиса заказов.
func NewService(
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "orders")
	}
	return &Service{
		customers: customers,
		products:  products,
		orders:    orders,
		logger:    logger,
		metrics:   metrics.NewOrderMetrics(),
	}
}

// NewServiceWithoutMetrics создаёт сервис без метрик (для тестов).
func NewServiceWithoutMetrics(
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	logger *log.Entry,
) *Service {
	svc := NewService(customers, products, orders, logger)
	svc.metrics = nil
	return svc
}

// CreateOrder проводит полный цикл оформления заказа:
// валидация входа, проверка покупателя, батч-чтение товаров, проверка
// остатков, запись заказа и списание остатков. До записи заказа
// выполняются только чтения — при любой ошибке валидации состояние
// хранилищ не меняется.
func (s *Service) CreateOrder(ctx context.Context, input CreateOrderInput) (domain.Order, error) {
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordCreateDuration(time.Since(start))
		}
	}()

	if err := validateInput(input); err != nil {
		s.reject(metrics.RejectReasonInvalidInput)
		return domain.Order{}, err
	}

	customer, err := s.customers.FindByID(input.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			s.reject(metrics.RejectReasonCustomerNotFound)
			s.logger.WithField("customer_id", input.CustomerID).Warn("customer not found")
			return domain.Order{}, err
		}
		s.reject(metrics.RejectReasonStorage)
		return domain.Order{}, fmt.Errorf("find customer: %w", err)
	}

	ids := make([]string, 0, len(input.Items))
	for _, item := range input.Items {
		ids = append(ids, item.ProductID)
	}

	found, err := s.products.FindAllByID(ids)
	if err != nil {
		s.reject(metrics.RejectReasonStorage)
		return domain.Order{}, fmt.Errorf("find products: %w", err)
	}
	if len(found) == 0 {
		s.reject(metrics.RejectReasonProductNotFound)
		return domain.Order{}, domain.ErrNoProductsFound
	}

	byID := make(map[string]domain.Product, len(found))
	for _, product := range found {
		byID[product.ID] = product
	}

	// Первый отсутствующий товар в порядке запроса.
	for _, item := range input.Items {
		if _, ok := byID[item.ProductID]; !ok {
			s.reject(metrics.RejectReasonProductNotFound)
			s.logger.WithField("product_id", item.ProductID).Warn("requested product not found")
			return domain.Order{}, &domain.ProductNotFoundError{ProductID: item.ProductID}
		}
	}

	// Собираем все позиции с нехваткой, но наружу отдаём первую.
	var short []*domain.InsufficientStockError
	for _, item := range input.Items {
		if product := byID[item.ProductID]; item.Qty > product.Quantity {
			short = append(short, &domain.InsufficientStockError{
				ProductID: item.ProductID,
				Requested: item.Qty,
				Available: product.Quantity,
			})
		}
	}
	if len(short) > 0 {
		s.reject(metrics.RejectReasonInsufficientStock)
		s.logger.WithFields(log.Fields{
			"product_id": short[0].ProductID,
			"requested":  short[0].Requested,
			"available":  short[0].Available,
			"shortages":  len(short),
		}).Warn("insufficient stock")
		return domain.Order{}, short[0]
	}

	// Цена фиксируется из снимка шага чтения, не перечитывается.
	now := time.Now().UTC()
	items := make([]domain.OrderItem, 0, len(input.Items))
	var amount int64
	for _, item := range input.Items {
		product := byID[item.ProductID]
		items = append(items, domain.OrderItem{
			ID:         uuid.NewString(),
			ProductID:  item.ProductID,
			Qty:        item.Qty,
			PriceMinor: product.PriceMinor,
			CreatedAt:  now,
		})
		amount += int64(item.Qty) * product.PriceMinor
	}

	order := domain.Order{
		ID:          uuid.NewString(),
		CustomerID:  customer.ID,
		AmountMinor: amount,
		Items:       items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if errs := order.ValidateInvariants(); len(errs) > 0 {
		s.reject(metrics.RejectReasonInvalidInput)
		return domain.Order{}, fmt.Errorf("order invariants violated: %w", errs[0])
	}

	if err := s.orders.Create(order); err != nil {
		s.reject(metrics.RejectReasonStorage)
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}

	// Новый остаток считается от снимка: available − ordered.
	updates := make([]domain.StockUpdate, 0, len(order.Items))
	var units int64
	for _, item := range order.Items {
		product := byID[item.ProductID]
		updates = append(updates, domain.StockUpdate{
			ProductID: item.ProductID,
			Quantity:  product.Quantity - item.Qty,
		})
		units += int64(item.Qty)
	}
	if err := s.products.UpdateQuantities(updates); err != nil {
		// Заказ уже записан, остатки не списаны. Компенсации нет,
		// ошибка уходит наверх вместе с id заказа.
		s.reject(metrics.RejectReasonStorage)
		s.logger.WithError(err).WithField("order_id", order.ID).
			Error("order created but stock update failed")
		return domain.Order{}, fmt.Errorf("update stock for order %s: %w", order.ID, err)
	}

	if s.metrics != nil {
		s.metrics.RecordOrderCreated(len(order.Items))
		s.metrics.RecordStockDecremented(units)
	}
	s.logger.WithFields(log.Fields{
		"order_id":     order.ID,
		"customer_id":  order.CustomerID,
		"items":        len(order.Items),
		"amount_minor": order.AmountMinor,
	}).Info("order created")

	return order, nil
}

// GetOrder возвращает заказ по идентификатору.
func (s *Service) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return s.orders.Get(id)
}

// ListOrders возвращает заказы покупателя, новые первыми.
func (s *Service) ListOrders(ctx context.Context, customerID string, limit int) ([]domain.Order, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, domain.ErrCustomerRequired
	}
	return s.orders.ListByCustomer(customerID, limit)
}

// validateInput отсекает заведомо некорректные запросы до обращений к хранилищам.
func validateInput(input CreateOrderInput) error {
	if strings.TrimSpace(input.CustomerID) == "" {
		return domain.ErrCustomerRequired
	}
	if len(input.Items) == 0 {
		return domain.ErrItemsRequired
	}
	for _, item := range input.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			return domain.ErrItemProductRequired
		}
		if item.Qty <= 0 {
			return fmt.Errorf("%w: product %s", domain.ErrItemQtyInvalid, item.ProductID)
		}
	}
	return nil
}

func (s *Service) reject(reason string) {
	if s.metrics != nil {
		s.metrics.RecordOrderRejected(reason)
	}
}
