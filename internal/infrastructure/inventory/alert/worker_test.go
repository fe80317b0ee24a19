package alert

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domain "github.com/zenmart/fulfillment/internal/domain/inventory"
	"github.com/zenmart/fulfillment/internal/infrastructure/eventbus"
)

func TestWorkerCountsAlertsByLevel(t *testing.T) {
	bus := eventbus.NewBus(nil)
	bus.Start(context.Background())
	t.Cleanup(func() { bus.Stop(context.Background()) })

	alerts := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "test_stock_alerts_total"},
		[]string{"level"},
	)
	New(bus, alerts).Start()

	item := &domain.Item{ID: "P1", Name: "Laptop", Quantity: 8}
	require.NoError(t, bus.Publish(context.Background(), domain.NewStockLowEvent(item)))
	require.NoError(t, bus.Publish(context.Background(), domain.NewStockLowEvent(item)))
	require.NoError(t, bus.Publish(context.Background(), domain.NewStockDepletedEvent(item)))

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(alerts.WithLabelValues("low")) == 2 &&
			testutil.ToFloat64(alerts.WithLabelValues("depleted")) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestWorkerIgnoresForeignEvents(t *testing.T) {
	worker := New(eventbus.NewBus(nil), nil)
	assert.NoError(t, worker.handleStockLow(context.Background(), domain.StockDepletedEvent{}))
	assert.NoError(t, worker.handleStockDepleted(context.Background(), domain.StockLowEvent{}))
}
