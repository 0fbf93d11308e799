package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetJSON reads a collection blob and decodes it into v. A value that fails
// to decode surfaces as ErrCorrupted rather than an empty collection, so
// callers can apply their own recovery policy.
func GetJSON(ctx context.Context, s Store, bucket, key string, v any) error {
	raw, err := s.Get(ctx, bucket, key)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %s/%s: %v", ErrCorrupted, bucket, key, err)
	}

	return nil
}

// PutJSON encodes v and writes it as the whole value for the key.
func PutJSON(ctx context.Context, s Store, bucket, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: failed to encode %s/%s: %w", bucket, key, err)
	}

	return s.Put(ctx, bucket, key, raw)
}
