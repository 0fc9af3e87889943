package localstore

import "context"

// Repository is durable key→value storage scoped to one device.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every key that starts with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
