// Package store persists session snapshots. Every backend keeps values as
// JSON documents keyed by session id.
package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Store is a keyed document store.
type Store[T any] interface {
	Get(ctx context.Context, id string) (T, error)
	Put(ctx context.Context, id string, v T) error
	Delete(ctx context.Context, id string) error
}
