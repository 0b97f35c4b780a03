package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutMetricsCounters(t *testing.T) {
	m := newCheckoutMetricsWithRegisterer(prometheus.NewRegistry())

	m.RecordCheckoutStarted()
	m.RecordCheckoutStarted()
	m.RecordCheckoutCompleted(decimal.RequireFromString("49.99"))
	m.RecordCheckoutFailed("conflict")
	m.RecordDiscountApplied("PERCENTAGE")
	m.RecordCheckoutDuration(120 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.checkoutsStarted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.checkoutsCompleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.checkoutsFailed.WithLabelValues("conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.discountsApplied.WithLabelValues("PERCENTAGE")))

	// Начато два, завершён один и один упал: в полёте ничего не осталось.
	assert.Equal(t, 0.0, testutil.ToFloat64(m.activeCheckouts))
}

func TestCheckoutMetricsReregistration(t *testing.T) {
	registry := prometheus.NewRegistry()

	first := newCheckoutMetricsWithRegisterer(registry)
	require.NotNil(t, first)

	// Повторная инициализация в том же registry переиспользует коллекторы.
	second := newCheckoutMetricsWithRegisterer(registry)
	require.NotNil(t, second)

	first.RecordCheckoutStarted()
	second.RecordCheckoutStarted()
	assert.Equal(t, 2.0, testutil.ToFloat64(second.checkoutsStarted))
}
