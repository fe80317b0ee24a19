package inventory

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("inventory: item not found")
	ErrConflict          = errors.New("inventory: item already exists")
	ErrInvalidQuantity   = errors.New("inventory: quantity must be greater than zero")
	ErrNegativeQuantity  = errors.New("inventory: quantity must be zero or greater")
	ErrInvalidPrice      = errors.New("inventory: price must be zero or greater")
	ErrInsufficientStock = errors.New("inventory: insufficient stock")
	ErrInvalidStatus     = errors.New("inventory: unknown status")
)

type Status string

const (
	StatusInStock    Status = "IN_STOCK"
	StatusLowStock   Status = "LOW_STOCK"
	StatusOutOfStock Status = "OUT_OF_STOCK"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusInStock, StatusLowStock, StatusOutOfStock:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// lowStockThreshold is the quantity at or below which an item counts as
// running low.
const lowStockThreshold = 10

// DeriveStatus maps a quantity onto a stock status. Total over all integers;
// negative quantities are reported as out of stock even though mutations
// never persist them.
func DeriveStatus(quantity int) Status {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity <= lowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

type Item struct {
	ID          string
	Name        string
	Category    string
	Description string
	Quantity    int
	Price       decimal.Decimal
	Status      Status
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewItem(id, name, category, description string, quantity int, price decimal.Decimal, createdBy string) (*Item, error) {
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	if price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	now := time.Now().UTC()
	return &Item{
		ID:          id,
		Name:        name,
		Category:    category,
		Description: description,
		Quantity:    quantity,
		Price:       price,
		Status:      DeriveStatus(quantity),
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ApplyUpdate replaces the mutable attributes wholesale and recomputes the
// derived status.
func (i *Item) ApplyUpdate(name, category, description string, quantity int, price decimal.Decimal) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	if price.IsNegative() {
		return ErrInvalidPrice
	}
	i.Name = name
	i.Category = category
	i.Description = description
	i.Quantity = quantity
	i.Price = price
	i.Status = DeriveStatus(i.Quantity)
	i.touch()
	return nil
}

// Deduct lowers the quantity, refusing any deduction that would go negative.
// Nothing is mutated on failure.
func (i *Item) Deduct(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > i.Quantity {
		return ErrInsufficientStock
	}
	i.Quantity -= quantity
	i.Status = DeriveStatus(i.Quantity)
	i.touch()
	return nil
}

func (i *Item) Clone() *Item {
	clone := *i
	return &clone
}

func (i *Item) touch() {
	i.UpdatedAt = time.Now().UTC()
}
