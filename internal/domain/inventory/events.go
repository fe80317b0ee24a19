package inventory

import "time"

// StockLowEvent is emitted when a deduction leaves an item at or below the
// low-stock threshold.
type StockLowEvent struct {
	ProductID  string
	Name       string
	Remaining  int
	OccurredAt time.Time
}

func (StockLowEvent) EventName() string { return "inventory.stock_low" }

func NewStockLowEvent(item *Item) StockLowEvent {
	return StockLowEvent{
		ProductID:  item.ID,
		Name:       item.Name,
		Remaining:  item.Quantity,
		OccurredAt: time.Now().UTC(),
	}
}

// StockDepletedEvent is emitted when a deduction drives an item to zero.
type StockDepletedEvent struct {
	ProductID  string
	Name       string
	OccurredAt time.Time
}

func (StockDepletedEvent) EventName() string { return "inventory.stock_depleted" }

func NewStockDepletedEvent(item *Item) StockDepletedEvent {
	return StockDepletedEvent{
		ProductID:  item.ID,
		Name:       item.Name,
		OccurredAt: time.Now().UTC(),
	}
}
