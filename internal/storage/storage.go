package storage

import (
	"context"
	"errors"
)

// Namespace is the bucket holding every persisted storefront collection.
const Namespace = "tracketo"

var (
	// ErrKeyNotFound is returned when a key has never been written.
	ErrKeyNotFound = errors.New("storage: key not found")
	// ErrCorrupted is returned when a persisted value cannot be decoded.
	ErrCorrupted = errors.New("storage: persisted data corrupted")
)

// Store is a durable key-value store holding whole collections as single
// values, one bucket per namespace.
type Store interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Put(ctx context.Context, bucket, key string, value []byte) error
	Delete(ctx context.Context, bucket, key string) error
	Close() error
}
