package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"
)

// Bolt is a Store backed by a single bbolt file.
type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens (creating if necessary) the store file at path.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to open store at %s: %w", path, err)
	}

	log.Info().Str("path", path).Msg("Store opened")
	return &Bolt{db: db}, nil
}

func (b *Bolt) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(bucket))
		if bkt == nil {
			return ErrKeyNotFound
		}
		raw := bkt.Get([]byte(key))
		if raw == nil {
			return ErrKeyNotFound
		}
		// The slice is only valid inside the transaction.
		value = append([]byte(nil), raw...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (b *Bolt) Put(ctx context.Context, bucket, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return fmt.Errorf("storage: failed to create bucket %s: %w", bucket, err)
		}
		return bkt.Put([]byte(key), value)
	})
}

func (b *Bolt) Delete(ctx context.Context, bucket, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(bucket))
		if bkt == nil {
			return nil
		}
		return bkt.Delete([]byte(key))
	})
}

func (b *Bolt) Close() error {
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("storage: failed to close store: %w", err)
	}

	log.Info().Msg("Store closed")
	return nil
}
