package inmemory

import (
	"context"
	"sync"

	"pg-connect/internal/store"
)

// SlotBackend keeps slot payloads in process memory. Contents die with the process.
type SlotBackend struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewSlotBackend() *SlotBackend {
	return &SlotBackend{
		items: make(map[string][]byte),
	}
}

func (b *SlotBackend) Get(ctx context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	payload, ok := b.items[key]
	b.mu.RUnlock()
	if !ok {
		return nil, store.ErrNotFound
	}

	return append([]byte(nil), payload...), nil
}

func (b *SlotBackend) Put(ctx context.Context, key string, payload []byte) error {
	b.mu.Lock()
	b.items[key] = append([]byte(nil), payload...)
	b.mu.Unlock()
	return nil
}

func (b *SlotBackend) Close() error {
	b.mu.Lock()
	b.items = make(map[string][]byte)
	b.mu.Unlock()
	return nil
}
