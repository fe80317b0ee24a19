package ordergw

import (
	"context"
	"errors"
	"fmt"
	"time"

	apporder "github.com/zenmart/fulfillment/internal/application/order"
	apppayment "github.com/zenmart/fulfillment/internal/application/payment"
	domain "github.com/zenmart/fulfillment/internal/domain/order"
)

const defaultTimeout = 2 * time.Second

// Notifier adapts the order service's callback receiver to the payment
// side's order-marker port, with the same timeout and error-folding rules as
// the inventory gateway.
type Notifier struct {
	svc     *apporder.Service
	timeout time.Duration
}

func New(svc *apporder.Service, timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Notifier{svc: svc, timeout: timeout}
}

func (n *Notifier) MarkPaymentStatus(ctx context.Context, orderID, marker string) error {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	_, err := n.svc.MarkPaymentStatus(ctx, orderID, marker)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidMarker):
		return err
	default:
		return fmt.Errorf("%w: %w", apppayment.ErrOrderUnavailable, err)
	}
}
