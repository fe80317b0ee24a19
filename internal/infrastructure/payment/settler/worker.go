package settler

import (
	"context"
	"time"

	apppayment "github.com/zenmart/fulfillment/internal/application/payment"
	"github.com/zenmart/fulfillment/internal/domain/event"
	domain "github.com/zenmart/fulfillment/internal/domain/payment"
	"github.com/zenmart/fulfillment/internal/pkg/logging"
	"go.uber.org/zap"
)

// Worker resolves settlement requests off the event bus. It applies the
// policy's processing delay, draws an outcome, and hands the result to the
// payment service.
type Worker struct {
	subscriber event.Subscriber
	service    *apppayment.Service
	policy     *apppayment.SettlementPolicy
}

func New(subscriber event.Subscriber, service *apppayment.Service, policy *apppayment.SettlementPolicy) *Worker {
	return &Worker{
		subscriber: subscriber,
		service:    service,
		policy:     policy,
	}
}

func (w *Worker) Start() {
	w.subscriber.Subscribe(domain.SettlementRequestedEvent{}.EventName(), w.handleSettlementRequested)
}

func (w *Worker) handleSettlementRequested(ctx context.Context, e event.Event) error {
	logger := logging.FromContext(ctx).With(zap.String("component", "settlement_worker"))

	evt, ok := e.(domain.SettlementRequestedEvent)
	if !ok {
		return nil
	}

	// The delay models gateway latency. If it is cut short the payment is
	// left in its last persisted status; PROCESSING stays re-checkable.
	if w.policy.Delay > 0 {
		timer := time.NewTimer(w.policy.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			logger.Warn("settlement_interrupted",
				zap.String("payment_id", evt.PaymentID),
				zap.Error(ctx.Err()),
			)
			return nil
		}
	}

	approved := w.policy.Authorize()
	if err := w.service.Settle(ctx, evt.PaymentID, approved); err != nil {
		logger.Warn("settlement_failed",
			zap.String("payment_id", evt.PaymentID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
