package alert

import (
	"context"

	"github.com/zenmart/fulfillment/internal/domain/event"
	domain "github.com/zenmart/fulfillment/internal/domain/inventory"
	"github.com/zenmart/fulfillment/internal/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Worker surfaces stock alerts raised by inventory deductions so operators
// can see items running low before orders start failing decrements.
type Worker struct {
	subscriber event.Subscriber

	// stock_alerts_total{level}; supplied via DI, may be nil in tests.
	alerts *prometheus.CounterVec
}

func New(subscriber event.Subscriber, alerts *prometheus.CounterVec) *Worker {
	return &Worker{
		subscriber: subscriber,
		alerts:     alerts,
	}
}

func (w *Worker) Start() {
	w.subscriber.Subscribe(domain.StockLowEvent{}.EventName(), w.handleStockLow)
	w.subscriber.Subscribe(domain.StockDepletedEvent{}.EventName(), w.handleStockDepleted)
}

func (w *Worker) handleStockLow(ctx context.Context, e event.Event) error {
	evt, ok := e.(domain.StockLowEvent)
	if !ok {
		return nil
	}

	logging.FromContext(ctx).Warn("stock_low",
		zap.String("product_id", evt.ProductID),
		zap.String("name", evt.Name),
		zap.Int("remaining", evt.Remaining),
	)
	if w.alerts != nil {
		w.alerts.WithLabelValues("low").Inc()
	}
	return nil
}

func (w *Worker) handleStockDepleted(ctx context.Context, e event.Event) error {
	evt, ok := e.(domain.StockDepletedEvent)
	if !ok {
		return nil
	}

	logging.FromContext(ctx).Warn("stock_depleted",
		zap.String("product_id", evt.ProductID),
		zap.String("name", evt.Name),
	)
	if w.alerts != nil {
		w.alerts.WithLabelValues("depleted").Inc()
	}
	return nil
}
