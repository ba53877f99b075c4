package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics содержит метрики оформления заказов.
type OrderMetrics struct {
	// Счётчики исходов
	ordersCreated  prometheus.Counter
	ordersRejected *prometheus.CounterVec

	// Гистограммы
	createDuration prometheus.Histogram
	itemsPerOrder  prometheus.Histogram

	// Счётчик списанных со склада единиц
	stockDecremented prometheus.Counter
}

// Причины отказа для метрики shop_orders_rejected_total.
const (
	RejectReasonInvalidInput      = "invalid_input"
	RejectReasonCustomerNotFound  = "customer_not_found"
	RejectReasonProductNotFound   = "product_not_found"
	RejectReasonInsufficientStock = "insufficient_stock"
	RejectReasonStorage           = "storage"
)

// NewOrderMetrics создаёт новый экземпляр метрик заказов.
func NewOrderMetrics() *OrderMetrics {
	return newOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shop_orders_created_total",
			Help: "Total number of orders created successfully",
		}),
		ordersRejected: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "shop_orders_rejected_total",
			Help: "Total number of order creation attempts rejected, by reason",
		}, []string{"reason"}),
		createDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "shop_order_create_duration_seconds",
			Help:    "Duration of the order creation workflow in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		itemsPerOrder: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "shop_order_items",
			Help:    "Number of line items per created order",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		}),
		stockDecremented: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shop_stock_decremented_units_total",
			Help: "Total number of stock units decremented by created orders",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderCreated фиксирует успешно созданный заказ и его размер.
func (m *OrderMetrics) RecordOrderCreated(items int) {
	m.ordersCreated.Inc()
	m.itemsPerOrder.Observe(float64(items))
}

// RecordOrderRejected увеличивает счётчик отказов по причине.
func (m *OrderMetrics) RecordOrderRejected(reason string) {
	m.ordersRejected.WithLabelValues(reason).Inc()
}

// RecordCreateDuration записывает длительность workflow создания заказа.
func (m *OrderMetrics) RecordCreateDuration(duration time.Duration) {
	m.createDuration.Observe(duration.Seconds())
}

// RecordStockDecremented фиксирует количество списанных единиц товара.
func (m *OrderMetrics) RecordStockDecremented(units int64) {
	m.stockDecremented.Add(float64(units))
}
