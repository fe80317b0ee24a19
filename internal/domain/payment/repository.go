package payment

import "context"

type Repository interface {
	Insert(ctx context.Context, payment *Payment) error
	Get(ctx context.Context, id string) (*Payment, error)
	Find(ctx context.Context, match func(*Payment) bool) ([]*Payment, error)
	Update(ctx context.Context, payment *Payment) error
	Delete(ctx context.Context, id string) error
}
