package order

import (
	"context"
	"errors"
)

// ErrInventoryUnavailable marks a decrement attempt that failed for reasons
// other than the inventory service's own business rules (timeout, transport).
var ErrInventoryUnavailable = errors.New("order: inventory unavailable")

// IDGenerator issues the random token an order identity is derived from.
type IDGenerator interface {
	NewID() string
}

// InventoryGateway is the order workflow's outbound call to decrement stock
// on the separately owned inventory resource.
type InventoryGateway interface {
	Decrement(ctx context.Context, productID string, quantity int) error
}
