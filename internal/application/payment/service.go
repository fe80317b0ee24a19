package payment

import (
	"context"
	"fmt"

	"github.com/zenmart/fulfillment/internal/domain/event"
	domorder "github.com/zenmart/fulfillment/internal/domain/order"
	domain "github.com/zenmart/fulfillment/internal/domain/payment"
	"github.com/zenmart/fulfillment/internal/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Service struct {
	repo      domain.Repository
	idGen     IDGenerator
	notifier  OrderNotifier
	publisher event.Publisher
	tracer    trace.Tracer

	// settlement_outcomes_total{outcome} and callback_failures_total;
	// supplied via DI, may be nil in tests.
	settlementOutcomes *prometheus.CounterVec
	callbackFailures   prometheus.Counter
}

func NewService(
	repo domain.Repository,
	idGen IDGenerator,
	notifier OrderNotifier,
	publisher event.Publisher,
	settlementOutcomes *prometheus.CounterVec,
	callbackFailures prometheus.Counter,
) *Service {
	return &Service{
		repo:               repo,
		idGen:              idGen,
		notifier:           notifier,
		publisher:          publisher,
		tracer:             otel.Tracer("payment-service"),
		settlementOutcomes: settlementOutcomes,
		callbackFailures:   callbackFailures,
	}
}

type ProcessPaymentInput struct {
	OrderID    string
	CustomerID string
	Amount     decimal.Decimal
	Method     string
	Gateway    string
	Actor      string
}

// ProcessPayment persists a PROCESSING record and requests asynchronous
// settlement. The record is readable before settlement resolves; the caller
// never waits for the settlement delay. If the settlement request cannot be
// enqueued the payment stays PROCESSING, a pending and re-checkable state.
func (s *Service) ProcessPayment(ctx context.Context, in ProcessPaymentInput) (_ *domain.Payment, err error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "payment_service"))

	ctx, span := s.tracer.Start(ctx, "ProcessPayment",
		trace.WithAttributes(attribute.String("payment.order_id", in.OrderID)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	method, err := domain.ParseMethod(in.Method)
	if err != nil {
		return nil, err
	}

	entity, err := domain.New(
		s.idGen.NewID(),
		in.OrderID,
		in.CustomerID,
		in.Amount,
		method,
		s.idGen.NewID(),
		in.Gateway,
		in.Actor,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, entity); err != nil {
		logger.Error("payment_insert_failed", zap.String("payment_id", entity.ID), zap.Error(err))
		return nil, fmt.Errorf("payment: insert: %w", err)
	}
	span.SetAttributes(attribute.String("payment.id", entity.ID))

	if s.publisher != nil {
		if perr := s.publisher.Publish(ctx, domain.NewSettlementRequestedEvent(entity)); perr != nil {
			logger.Warn("settlement_request_publish_failed",
				zap.String("payment_id", entity.ID),
				zap.Error(perr),
			)
		}
	}

	logger.Info("payment_processing",
		zap.String("payment_id", entity.ID),
		zap.String("order_id", entity.OrderID),
		zap.String("transaction_id", entity.TransactionID),
	)
	return entity, nil
}

// Settle resolves a pending payment to its terminal status. A payment that
// already left the pending states is skipped, so a redelivered settlement
// request cannot flip a terminal outcome.
func (s *Service) Settle(ctx context.Context, paymentID string, approved bool) error {
	logger := logging.FromContext(ctx).With(zap.String("component", "payment_service"))

	entity, err := s.repo.Get(ctx, paymentID)
	if err != nil {
		return err
	}
	if !entity.Settleable() {
		logger.Info("settlement_skipped",
			zap.String("payment_id", entity.ID),
			zap.String("status", string(entity.Status)),
		)
		return nil
	}

	outcome := "failed"
	if approved {
		entity.Settle()
		outcome = "completed"
	} else {
		entity.Decline()
	}
	if err := s.repo.Update(ctx, entity); err != nil {
		return fmt.Errorf("payment: update: %w", err)
	}
	if s.settlementOutcomes != nil {
		s.settlementOutcomes.WithLabelValues(outcome).Inc()
	}

	logger.Info("payment_settled",
		zap.String("payment_id", entity.ID),
		zap.String("order_id", entity.OrderID),
		zap.String("status", string(entity.Status)),
	)

	if approved {
		s.notifyOrder(ctx, entity.OrderID, string(domorder.MarkerPaid))
	}
	return nil
}

func (s *Service) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	found, err := s.repo.Find(ctx, func(p *domain.Payment) bool {
		return p.OrderID == orderID
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, domain.ErrNotFound
	}
	return found[0], nil
}

func (s *Service) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Payment, error) {
	return s.repo.Find(ctx, func(p *domain.Payment) bool {
		return p.CustomerID == customerID
	})
}

func (s *Service) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Payment, error) {
	return s.repo.Find(ctx, func(p *domain.Payment) bool {
		return p.Status == status
	})
}

// UpdatePaymentStatus overwrites the status directly, bypassing the
// settlement machine; the upstream surface allows it and collaborators rely
// on it. Setting COMPLETED triggers the order callback exactly as settlement
// does.
func (s *Service) UpdatePaymentStatus(ctx context.Context, id string, status domain.Status) (*domain.Payment, error) {
	entity, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	entity.OverrideStatus(status)
	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, fmt.Errorf("payment: update: %w", err)
	}

	if status == domain.StatusCompleted {
		s.notifyOrder(ctx, entity.OrderID, string(domorder.MarkerPaid))
	}
	return entity, nil
}

// RefundPayment transitions a COMPLETED payment to REFUNDED and best-effort
// notifies the order side.
func (s *Service) RefundPayment(ctx context.Context, id, actor string) (*domain.Payment, error) {
	_ = actor
	logger := logging.FromContext(ctx).With(zap.String("component", "payment_service"))

	entity, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := entity.Refund(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, fmt.Errorf("payment: update: %w", err)
	}

	logger.Info("payment_refunded",
		zap.String("payment_id", entity.ID),
		zap.String("order_id", entity.OrderID),
	)

	s.notifyOrder(ctx, entity.OrderID, string(domorder.MarkerRefunded))
	return entity, nil
}

// notifyOrder pushes the marker to the order side. The payment's own state
// is already durable; a callback failure is logged for reconciliation and
// swallowed.
func (s *Service) notifyOrder(ctx context.Context, orderID, marker string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.MarkPaymentStatus(ctx, orderID, marker); err != nil {
		logging.FromContext(ctx).Warn("order_callback_failed",
			zap.String("order_id", orderID),
			zap.String("marker", marker),
			zap.Error(err),
		)
		if s.callbackFailures != nil {
			s.callbackFailures.Inc()
		}
	}
}
