package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/zenmart/fulfillment/internal/domain/inventory"
)

type InventoryRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Item
}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		items: make(map[string]*domain.Item),
	}
}

func (r *InventoryRepository) Insert(ctx context.Context, item *domain.Item) error {
	_ = ctx
	if item == nil || item.ID == "" {
		return fmt.Errorf("inventory repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return domain.ErrConflict
	}
	r.items[item.ID] = item.Clone()
	return nil
}

func (r *InventoryRepository) Get(ctx context.Context, id string) (*domain.Item, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return item.Clone(), nil
}

func (r *InventoryRepository) Find(ctx context.Context, match func(*domain.Item) bool) ([]*domain.Item, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	var found []*domain.Item
	for _, item := range r.items {
		if match == nil || match(item) {
			found = append(found, item.Clone())
		}
	}
	return found, nil
}

func (r *InventoryRepository) Update(ctx context.Context, item *domain.Item) error {
	_ = ctx
	if item == nil || item.ID == "" {
		return fmt.Errorf("inventory repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return domain.ErrNotFound
	}
	r.items[item.ID] = item.Clone()
	return nil
}

func (r *InventoryRepository) Delete(ctx context.Context, id string) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// Mutate runs fn against the stored item while holding the write lock, so a
// concurrent read-modify-write on the same item can never observe stale
// quantity. fn works on a copy; it is persisted only when fn succeeds.
func (r *InventoryRepository) Mutate(ctx context.Context, id string, fn func(*domain.Item) error) (*domain.Item, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	next := item.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	r.items[id] = next
	return next.Clone(), nil
}
