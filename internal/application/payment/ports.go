package payment

import (
	"context"
	"errors"
)

// ErrOrderUnavailable marks a payment-marker callback that failed for
// reasons other than the order side's own business rules.
var ErrOrderUnavailable = errors.New("payment: order unavailable")

// IDGenerator issues payment and transaction identities.
type IDGenerator interface {
	NewID() string
}

// OrderNotifier pushes a payment-status marker back onto an order.
type OrderNotifier interface {
	MarkPaymentStatus(ctx context.Context, orderID, marker string) error
}
