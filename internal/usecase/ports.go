package usecase

import "context"

// EventPublisher is satisfied by the NATS adapter.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// Cache is satisfied by the redis entity cache. Mutating usecases invalidate
// affected keys after every write; they never write merged state back.
type Cache interface {
	Get(ctx context.Context, key string, out interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
	Invalidate(ctx context.Context, keys ...string) error
}

// PhotoStorage is satisfied by the MinIO adapter. Upload hands back the
// opaque object key; URL resolves a key to its public address.
type PhotoStorage interface {
	Upload(ctx context.Context, originalFileName string, data []byte) (key string, err error)
	URL(key string) string
}
