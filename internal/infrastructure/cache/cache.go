package cache

import (
	"context"
	"time"
)

// Cache is a best-effort read cache. A miss is reported as an empty string
// with a nil error; failures never carry business meaning.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Key(parts ...string) string
}

// Noop satisfies Cache without storing anything. It is the default when no
// cache backend is configured.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string) (string, error) { return "", nil }

func (Noop) Set(ctx context.Context, key, value string, ttl time.Duration) error { return nil }

func (Noop) Key(parts ...string) string { return "" }
