package order

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("order: not found")
	ErrConflict      = errors.New("order: already exists")
	ErrEmptyItems    = errors.New("order: at least one line item is required")
	ErrInvalidItem   = errors.New("order: line item quantity must be positive and unit price must be zero or greater")
	ErrInvalidStatus = errors.New("order: unknown status")
	ErrInvalidState  = errors.New("order: operation not allowed in current status")
	ErrInvalidMarker = errors.New("order: unknown payment marker")
)

type Status string

const (
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusCancelled  Status = "CANCELLED"
	StatusCompleted  Status = "COMPLETED"
)

// ParseStatus maps the wire representation onto a known status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusProcessing, StatusShipped, StatusCancelled, StatusCompleted:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// PaymentMarker is the label the payment side pushes back onto an order.
// It lives next to, not inside, the order lifecycle status.
type PaymentMarker string

const (
	MarkerPaid     PaymentMarker = "PAID"
	MarkerRefunded PaymentMarker = "REFUNDED"
)

func ParseMarker(s string) (PaymentMarker, error) {
	switch PaymentMarker(s) {
	case MarkerPaid, MarkerRefunded:
		return PaymentMarker(s), nil
	default:
		return "", ErrInvalidMarker
	}
}

// LineItem is a product entry within an order. Subtotal is snapshotted at
// creation time and never recomputed.
type LineItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

type Order struct {
	ID            string
	CustomerID    string
	CustomerName  string
	OrderedAt     time.Time
	Items         []LineItem
	TotalAmount   decimal.Decimal
	Status        Status
	PaymentStatus PaymentMarker
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ItemInput is the caller-supplied shape of a line item before subtotals are
// computed.
type ItemInput struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// New builds an order in the initial PROCESSING status. Subtotals and the
// order total are computed here exactly once; items and total are immutable
// afterwards.
func New(id, customerID, customerName string, items []ItemInput, createdBy string) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	lineItems := make([]LineItem, 0, len(items))
	total := decimal.Zero
	for _, in := range items {
		if in.Quantity <= 0 || in.UnitPrice.IsNegative() {
			return nil, ErrInvalidItem
		}
		subtotal := in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))
		lineItems = append(lineItems, LineItem{
			ProductID:   in.ProductID,
			ProductName: in.ProductName,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			Subtotal:    subtotal,
		})
		total = total.Add(subtotal)
	}

	now := time.Now().UTC()
	return &Order{
		ID:           id,
		CustomerID:   customerID,
		CustomerName: customerName,
		OrderedAt:    now,
		Items:        lineItems,
		TotalAmount:  total,
		Status:       StatusProcessing,
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// SetStatus overwrites the lifecycle status without consulting the transition
// table. Collaborators depend on this permissive behaviour; the guarded
// transitions below are the preferred surface.
func (o *Order) SetStatus(s Status) {
	o.Status = s
	o.touch()
}

func (o *Order) Ship() error {
	if o.Status != StatusProcessing {
		return ErrInvalidState
	}
	o.Status = StatusShipped
	o.touch()
	return nil
}

func (o *Order) Cancel() error {
	if o.Status != StatusProcessing {
		return ErrInvalidState
	}
	o.Status = StatusCancelled
	o.touch()
	return nil
}

func (o *Order) Complete() error {
	if o.Status != StatusShipped {
		return ErrInvalidState
	}
	o.Status = StatusCompleted
	o.touch()
	return nil
}

// ApplyPaymentMarker records the payment-side marker. Applying the same
// marker again is a no-op so the callback stays idempotent.
func (o *Order) ApplyPaymentMarker(m PaymentMarker) {
	if o.PaymentStatus == m {
		return
	}
	o.PaymentStatus = m
	o.touch()
}

func (o *Order) Clone() *Order {
	clone := *o
	clone.Items = append([]LineItem(nil), o.Items...)
	return &clone
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now().UTC()
}
