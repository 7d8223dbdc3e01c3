package metadata

import (
	"context"
)

// Repository is a small key/value store backing session persistence and
// legacy storage keys. A missing key reads as (nil, nil), not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
