package storage

import (
	"context"
	"sync"
)

// Memory is an in-memory Store used by tests.
type Memory struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{buckets: make(map[string]map[string][]byte)}
}

func (m *Memory) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	bkt, ok := m.buckets[bucket]
	if !ok {
		return nil, ErrKeyNotFound
	}
	value, ok := bkt[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	return append([]byte(nil), value...), nil
}

func (m *Memory) Put(ctx context.Context, bucket, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	bkt, ok := m.buckets[bucket]
	if !ok {
		bkt = make(map[string][]byte)
		m.buckets[bucket] = bkt
	}
	bkt[key] = append([]byte(nil), value...)

	return nil
}

func (m *Memory) Delete(ctx context.Context, bucket, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if bkt, ok := m.buckets[bucket]; ok {
		delete(bkt, key)
	}

	return nil
}

func (m *Memory) Close() error {
	return nil
}
