package store

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key has never been written
var ErrKeyNotFound = errors.New("key not found")

// KV is the narrow contract every collection backend is adapted to. Each
// concrete client (JetStream bucket, Postgres table, local JSON file) exposes
// a different shape; the adapters below reduce them all to exists/get/set
// by key so the team store can treat them uniformly.
type KV interface {
	Exists(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
