// Package metadata persists small string key/value pairs in the local SQLite
// database. The session store keeps its token and username here.
package metadata

import (
	"context"
)

// Repository is the key/value contract. Get returns ("", false, nil) for a
// missing key; Put writes all pairs atomically.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, pairs map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}
