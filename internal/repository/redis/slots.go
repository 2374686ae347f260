package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/go-redis/redis/v8"
	"pg-connect/internal/store"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

// SlotBackend keeps each slot under a plain string key without expiry.
type SlotBackend struct {
	client *goredis.Client
}

func New(ctx context.Context, cfg Config) (*SlotBackend, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &SlotBackend{client: client}, nil
}

func (b *SlotBackend) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := b.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return payload, nil
}

func (b *SlotBackend) Put(ctx context.Context, key string, payload []byte) error {
	if err := b.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (b *SlotBackend) Close() error {
	return b.client.Close()
}
