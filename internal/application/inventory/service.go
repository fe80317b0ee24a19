package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/zenmart/fulfillment/internal/domain/event"
	domain "github.com/zenmart/fulfillment/internal/domain/inventory"
	"github.com/zenmart/fulfillment/internal/pkg/logging"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// IDGenerator issues identities for new inventory items.
type IDGenerator interface {
	NewID() string
}

type Service struct {
	repo      domain.Repository
	idGen     IDGenerator
	publisher event.Publisher
}

func NewService(repo domain.Repository, idGen IDGenerator, publisher event.Publisher) *Service {
	return &Service{
		repo:      repo,
		idGen:     idGen,
		publisher: publisher,
	}
}

type ItemInput struct {
	Name        string
	Category    string
	Description string
	Quantity    int
	Price       decimal.Decimal
}

func (s *Service) Create(ctx context.Context, in ItemInput, actor string) (*domain.Item, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "inventory_service"))

	item, err := domain.NewItem(s.idGen.NewID(), in.Name, in.Category, in.Description, in.Quantity, in.Price, actor)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, item); err != nil {
		return nil, fmt.Errorf("inventory: insert: %w", err)
	}

	logger.Info("inventory_item_created",
		zap.String("item_id", item.ID),
		zap.String("name", item.Name),
		zap.Int("quantity", item.Quantity),
	)
	return item, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Item, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*domain.Item, error) {
	return s.repo.Find(ctx, nil)
}

func (s *Service) ListByCategory(ctx context.Context, category string) ([]*domain.Item, error) {
	return s.repo.Find(ctx, func(item *domain.Item) bool {
		return item.Category == category
	})
}

func (s *Service) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Item, error) {
	return s.repo.Find(ctx, func(item *domain.Item) bool {
		return item.Status == status
	})
}

// Search matches item names case-insensitively against the keyword.
func (s *Service) Search(ctx context.Context, keyword string) ([]*domain.Item, error) {
	needle := strings.ToLower(keyword)
	return s.repo.Find(ctx, func(item *domain.Item) bool {
		return strings.Contains(strings.ToLower(item.Name), needle)
	})
}

func (s *Service) Update(ctx context.Context, id string, in ItemInput, actor string) (*domain.Item, error) {
	_ = actor

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := item.ApplyUpdate(in.Name, in.Category, in.Description, in.Quantity, in.Price); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("inventory: update: %w", err)
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Decrement atomically lowers an item's quantity. The repository applies the
// mutation under its per-store write lock, so two concurrent decrements can
// never both succeed on stock that only covers one of them. Nothing is
// persisted when the deduction fails.
func (s *Service) Decrement(ctx context.Context, id string, quantity int) (*domain.Item, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "inventory_service"))

	item, err := s.repo.Mutate(ctx, id, func(it *domain.Item) error {
		return it.Deduct(quantity)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("inventory_decremented",
		zap.String("item_id", item.ID),
		zap.Int("deducted", quantity),
		zap.Int("remaining", item.Quantity),
		zap.String("status", string(item.Status)),
	)

	s.alertOnStockLevel(ctx, item)
	return item, nil
}

// alertOnStockLevel emits stock alerts after a deduction. Publishing is a
// secondary effect; a failure is logged and swallowed.
func (s *Service) alertOnStockLevel(ctx context.Context, item *domain.Item) {
	if s.publisher == nil {
		return
	}

	var err error
	switch item.Status {
	case domain.StatusOutOfStock:
		err = s.publisher.Publish(ctx, domain.NewStockDepletedEvent(item))
	case domain.StatusLowStock:
		err = s.publisher.Publish(ctx, domain.NewStockLowEvent(item))
	default:
		return
	}
	if err != nil {
		logging.FromContext(ctx).Warn("stock_alert_publish_failed",
			zap.String("item_id", item.ID),
			zap.Error(err),
		)
	}
}
