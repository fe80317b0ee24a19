package inventorygw

import (
	"context"
	"errors"
	"fmt"
	"time"

	appinventory "github.com/zenmart/fulfillment/internal/application/inventory"
	apporder "github.com/zenmart/fulfillment/internal/application/order"
	domain "github.com/zenmart/fulfillment/internal/domain/inventory"
)

const defaultTimeout = 2 * time.Second

// Client adapts the inventory service to the order workflow's decrement
// port. Each call is bounded by a timeout; business failures pass through
// untouched while everything else is folded into the transient bucket.
type Client struct {
	svc     *appinventory.Service
	timeout time.Duration
}

func New(svc *appinventory.Service, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{svc: svc, timeout: timeout}
}

func (c *Client) Decrement(ctx context.Context, productID string, quantity int) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.svc.Decrement(ctx, productID, quantity)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInvalidQuantity):
		return err
	default:
		return fmt.Errorf("%w: %w", apporder.ErrInventoryUnavailable, err)
	}
}
