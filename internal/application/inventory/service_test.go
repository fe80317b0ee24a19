package inventory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenmart/fulfillment/internal/domain/event"
	domain "github.com/zenmart/fulfillment/internal/domain/inventory"
	"github.com/zenmart/fulfillment/internal/infrastructure/memory"
)

type countingID struct {
	mu sync.Mutex
	n  int
}

func (c *countingID) NewID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return fmt.Sprintf("item-%d", c.n)
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *capturingPublisher) Publish(ctx context.Context, e event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *capturingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventName())
	}
	return out
}

func newTestService() (*Service, *capturingPublisher) {
	publisher := &capturingPublisher{}
	svc := NewService(memory.NewInventoryRepository(), &countingID{}, publisher)
	return svc, publisher
}

func laptopInput(quantity int) ItemInput {
	return ItemInput{
		Name:        "Laptop",
		Category:    "electronics",
		Description: "14 inch",
		Quantity:    quantity,
		Price:       decimal.RequireFromString("999.99"),
	}
}

func TestCreateDerivesStatus(t *testing.T) {
	svc, _ := newTestService()

	item, err := svc.Create(context.Background(), laptopInput(50), "tester")
	require.NoError(t, err)
	assert.Equal(t, "item-1", item.ID)
	assert.Equal(t, domain.StatusInStock, item.Status)

	low, err := svc.Create(context.Background(), ItemInput{
		Name: "Cable", Category: "electronics", Quantity: 5,
		Price: decimal.RequireFromString("3.50"),
	}, "tester")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusLowStock, low.Status)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc, _ := newTestService()

	in := laptopInput(-1)
	_, err := svc.Create(context.Background(), in, "tester")
	assert.ErrorIs(t, err, domain.ErrNegativeQuantity)

	in = laptopInput(10)
	in.Price = decimal.RequireFromString("-1")
	_, err = svc.Create(context.Background(), in, "tester")
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestQueries(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), laptopInput(50), "tester")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), ItemInput{
		Name: "Desk Lamp", Category: "home", Quantity: 4,
		Price: decimal.RequireFromString("19.00"),
	}, "tester")
	require.NoError(t, err)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	electronics, err := svc.ListByCategory(context.Background(), "electronics")
	require.NoError(t, err)
	require.Len(t, electronics, 1)
	assert.Equal(t, "Laptop", electronics[0].Name)

	low, err := svc.ListByStatus(context.Background(), domain.StatusLowStock)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Desk Lamp", low[0].Name)

	// Keyword match is case-insensitive and partial.
	hits, err := svc.Search(context.Background(), "lAmP")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Desk Lamp", hits[0].Name)

	none, err := svc.Search(context.Background(), "tractor")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateRecomputesStatus(t *testing.T) {
	svc, _ := newTestService()

	item, err := svc.Create(context.Background(), laptopInput(50), "tester")
	require.NoError(t, err)

	in := laptopInput(0)
	updated, err := svc.Update(context.Background(), item.ID, in, "tester")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOutOfStock, updated.Status)

	_, err = svc.Update(context.Background(), "missing", in, "tester")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService()

	item, err := svc.Create(context.Background(), laptopInput(50), "tester")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), item.ID))
	_, err = svc.Get(context.Background(), item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDecrementEmitsAlerts(t *testing.T) {
	svc, publisher := newTestService()

	item, err := svc.Create(context.Background(), laptopInput(12), "tester")
	require.NoError(t, err)

	// 12 -> 11 stays IN_STOCK, no alert.
	got, err := svc.Decrement(context.Background(), item.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInStock, got.Status)
	assert.Empty(t, publisher.names())

	// 11 -> 10 crosses into LOW_STOCK.
	got, err = svc.Decrement(context.Background(), item.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusLowStock, got.Status)
	assert.Equal(t, []string{"inventory.stock_low"}, publisher.names())

	// 10 -> 0 depletes the item.
	got, err = svc.Decrement(context.Background(), item.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOutOfStock, got.Status)
	assert.Equal(t, []string{"inventory.stock_low", "inventory.stock_depleted"}, publisher.names())

	depleted, ok := publisher.events[1].(domain.StockDepletedEvent)
	require.True(t, ok)
	assert.Equal(t, item.ID, depleted.ProductID)
}

func TestDecrementFailureLeavesStockAndStaysQuiet(t *testing.T) {
	svc, publisher := newTestService()

	item, err := svc.Create(context.Background(), laptopInput(5), "tester")
	require.NoError(t, err)

	_, err = svc.Decrement(context.Background(), item.ID, 6)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = svc.Decrement(context.Background(), item.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.Decrement(context.Background(), "missing", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	unchanged, err := svc.Get(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, unchanged.Quantity)
	assert.Empty(t, publisher.names())
}
