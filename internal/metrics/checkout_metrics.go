package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// CheckoutMetrics содержит метрики горячего пути чекаута.
type CheckoutMetrics struct {
	// Счётчики операций
	checkoutsStarted   prometheus.Counter
	checkoutsCompleted prometheus.Counter
	checkoutsFailed    *prometheus.CounterVec
	discountsApplied   *prometheus.CounterVec

	// Гистограммы
	checkoutDuration prometheus.Histogram
	orderAmount      prometheus.Histogram

	// Gauge для выполняющихся чекаутов
	activeCheckouts prometheus.Gauge
}

// NewCheckoutMetrics создаёт новый экземпляр метрик чекаута.
func NewCheckoutMetrics() *CheckoutMetrics {
	return newCheckoutMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newCheckoutMetricsWithRegisterer(registerer prometheus.Registerer) *CheckoutMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &CheckoutMetrics{
		checkoutsStarted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "gamestore_checkouts_started_total",
			Help: "Total number of checkout attempts started",
		}),
		checkoutsCompleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "gamestore_checkouts_completed_total",
			Help: "Total number of checkouts that produced an order",
		}),
		checkoutsFailed: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "gamestore_checkouts_failed_total",
			Help: "Total number of failed checkouts grouped by error kind",
		}, []string{"kind"}),
		discountsApplied: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "gamestore_checkout_discounts_applied_total",
			Help: "Total number of orders created with a promotion discount",
		}, []string{"discount_type"}),
		checkoutDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "gamestore_checkout_duration_seconds",
			Help:    "Duration of checkout operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		orderAmount: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "gamestore_checkout_order_amount",
			Help:    "Final order amount in whole currency units",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}),
		activeCheckouts: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "gamestore_active_checkouts",
			Help: "Number of checkout operations currently in flight",
		}),
	}
}

// RecordCheckoutStarted инкрементирует счётчик начатых чекаутов.
func (m *CheckoutMetrics) RecordCheckoutStarted() {
	m.checkoutsStarted.Inc()
	m.activeCheckouts.Inc()
}

// RecordCheckoutCompleted фиксирует успешный чекаут и итоговую сумму заказа.
func (m *CheckoutMetrics) RecordCheckoutCompleted(amount decimal.Decimal) {
	m.checkoutsCompleted.Inc()
	m.activeCheckouts.Dec()
	value, _ := amount.Float64()
	m.orderAmount.Observe(value)
}

// RecordCheckoutFailed фиксирует неуспешный чекаут с видом ошибки.
func (m *CheckoutMetrics) RecordCheckoutFailed(kind string) {
	m.checkoutsFailed.WithLabelValues(kind).Inc()
	m.activeCheckouts.Dec()
}

// RecordDiscountApplied фиксирует применённую скидку по типу.
func (m *CheckoutMetrics) RecordDiscountApplied(discountType string) {
	m.discountsApplied.WithLabelValues(discountType).Inc()
}

// RecordCheckoutDuration фиксирует длительность чекаута.
func (m *CheckoutMetrics) RecordCheckoutDuration(d time.Duration) {
	m.checkoutDuration.Observe(d.Seconds())
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

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
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
