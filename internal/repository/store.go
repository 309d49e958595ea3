package repository

import "context"

// Store is a small key/value layer holding whole serialized records, the
// equivalent of the browser local storage the original demo persisted into.
type Store interface {
	Init(ctx context.Context) error
	// Get returns the record for key, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
