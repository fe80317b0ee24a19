package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	invdomain "github.com/zenmart/fulfillment/internal/domain/inventory"
	domain "github.com/zenmart/fulfillment/internal/domain/order"
	"github.com/zenmart/fulfillment/internal/infrastructure/cache"
	"github.com/zenmart/fulfillment/internal/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	orderIDPrefix = "ORD-"
	orderIDToken  = 8

	orderCacheTTL = 30 * time.Second
)

type Service struct {
	repo    domain.Repository
	idGen   IDGenerator
	gateway InventoryGateway
	cache   cache.Cache
	tracer  trace.Tracer

	// decrement_failures_total{reason}; supplied via DI, may be nil in tests.
	decrementFailures *prometheus.CounterVec
}

func NewService(
	repo domain.Repository,
	idGen IDGenerator,
	gateway InventoryGateway,
	readCache cache.Cache,
	decrementFailures *prometheus.CounterVec,
) *Service {
	if readCache == nil {
		readCache = cache.Noop{}
	}
	return &Service{
		repo:              repo,
		idGen:             idGen,
		gateway:           gateway,
		cache:             readCache,
		tracer:            otel.Tracer("order-service"),
		decrementFailures: decrementFailures,
	}
}

type CreateOrderInput struct {
	CustomerID   string
	CustomerName string
	Items        []domain.ItemInput
	Actor        string
}

// CreateOrder persists the order first and only then attempts the per-item
// inventory decrements. A decrement failure of any kind is logged and
// swallowed: the order's existence is never contingent on inventory, and one
// failed item does not stop the remaining items. There is no distributed
// transaction here; inventory correctness is advisory until reconciled
// out of band.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (_ *domain.Order, err error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "order_service"))

	ctx, span := s.tracer.Start(ctx, "CreateOrder",
		trace.WithAttributes(attribute.String("order.customer_id", in.CustomerID)),
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

	entity, err := domain.New(s.newOrderID(), in.CustomerID, in.CustomerName, in.Items, in.Actor)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, entity); err != nil {
		logger.Error("order_insert_failed", zap.String("order_id", entity.ID), zap.Error(err))
		return nil, fmt.Errorf("order: insert: %w", err)
	}
	span.SetAttributes(attribute.String("order.id", entity.ID))

	for _, item := range entity.Items {
		if derr := s.gateway.Decrement(ctx, item.ProductID, item.Quantity); derr != nil {
			logger.Warn("inventory_decrement_failed",
				zap.String("order_id", entity.ID),
				zap.String("product_id", item.ProductID),
				zap.Int("quantity", item.Quantity),
				zap.Error(derr),
			)
			if s.decrementFailures != nil {
				s.decrementFailures.WithLabelValues(decrementFailureReason(derr)).Inc()
			}
		}
	}

	s.cachePut(ctx, entity)
	logger.Info("order_created",
		zap.String("order_id", entity.ID),
		zap.String("customer_id", entity.CustomerID),
		zap.String("total", entity.TotalAmount.String()),
	)
	return entity, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if key := s.cache.Key("order", id); key != "" {
		if raw, err := s.cache.Get(ctx, key); err == nil && raw != "" {
			var cached domain.Order
			if jerr := json.Unmarshal([]byte(raw), &cached); jerr == nil {
				return &cached, nil
			}
		}
	}

	entity, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cachePut(ctx, entity)
	return entity, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.Find(ctx, nil)
}

func (s *Service) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	return s.repo.Find(ctx, func(o *domain.Order) bool {
		return o.CustomerID == customerID
	})
}

func (s *Service) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Order, error) {
	return s.repo.Find(ctx, func(o *domain.Order) bool {
		return o.Status == status
	})
}

// UpdateOrderStatus overwrites the lifecycle status without a transition
// check, matching the permissive legacy surface. Ship, Cancel and Complete
// are the guarded alternatives.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status domain.Status, actor string) (*domain.Order, error) {
	_ = actor

	entity, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	entity.SetStatus(status)
	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, fmt.Errorf("order: update: %w", err)
	}
	s.cachePut(ctx, entity)
	return entity, nil
}

func (s *Service) Ship(ctx context.Context, id, actor string) (*domain.Order, error) {
	return s.transition(ctx, id, actor, (*domain.Order).Ship)
}

func (s *Service) Cancel(ctx context.Context, id, actor string) (*domain.Order, error) {
	return s.transition(ctx, id, actor, (*domain.Order).Cancel)
}

func (s *Service) Complete(ctx context.Context, id, actor string) (*domain.Order, error) {
	return s.transition(ctx, id, actor, (*domain.Order).Complete)
}

func (s *Service) transition(ctx context.Context, id, actor string, apply func(*domain.Order) error) (*domain.Order, error) {
	_ = actor

	entity, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(entity); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, fmt.Errorf("order: update: %w", err)
	}
	s.cachePut(ctx, entity)
	return entity, nil
}

// MarkPaymentStatus is the narrow callback surface the payment side pushes
// "PAID"/"REFUNDED" markers through. Re-applying the current marker is a
// no-op, so retried callbacks cannot corrupt the order.
func (s *Service) MarkPaymentStatus(ctx context.Context, orderID, marker string) (*domain.Order, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "order_service"))

	parsed, err := domain.ParseMarker(marker)
	if err != nil {
		return nil, err
	}

	entity, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	entity.ApplyPaymentMarker(parsed)
	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, fmt.Errorf("order: update: %w", err)
	}

	s.cachePut(ctx, entity)
	logger.Info("order_payment_status_marked",
		zap.String("order_id", entity.ID),
		zap.String("marker", marker),
	)
	return entity, nil
}

func (s *Service) newOrderID() string {
	token := s.idGen.NewID()
	if len(token) > orderIDToken {
		token = token[:orderIDToken]
	}
	return orderIDPrefix + token
}

func (s *Service) cachePut(ctx context.Context, entity *domain.Order) {
	key := s.cache.Key("order", entity.ID)
	if key == "" {
		return
	}
	raw, err := json.Marshal(entity)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), orderCacheTTL); err != nil {
		logging.FromContext(ctx).Debug("order_cache_set_failed",
			zap.String("order_id", entity.ID),
			zap.Error(err),
		)
	}
}

func decrementFailureReason(err error) string {
	switch {
	case errors.Is(err, invdomain.ErrNotFound):
		return "not_found"
	case errors.Is(err, invdomain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrInventoryUnavailable):
		return "transient"
	default:
		return "other"
	}
}
