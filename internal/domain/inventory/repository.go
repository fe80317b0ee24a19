package inventory

import "context"

type Repository interface {
	Insert(ctx context.Context, item *Item) error
	Get(ctx context.Context, id string) (*Item, error)
	Find(ctx context.Context, match func(*Item) bool) ([]*Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id string) error

	// Mutate applies fn to the stored item under the store's write lock so
	// concurrent read-modify-write cycles on the same item cannot interleave.
	// If fn returns an error nothing is persisted.
	Mutate(ctx context.Context, id string, fn func(*Item) error) (*Item, error)
}
