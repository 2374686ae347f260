// Package store keeps named JSON slots in a pluggable key/value backend and
// exposes them as in-process collections with a single writer per slot.
package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("slot not found")

// Backend is a flat key/value store. Get returns ErrNotFound for absent keys.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, payload []byte) error
	Close() error
}

// Notifier is told about every committed collection change.
type Notifier interface {
	SlotChanged(ctx context.Context, key string, count int)
}

// Recorder observes slot traffic, typically for metrics.
type Recorder interface {
	ObserveSlotLoad(key string, outcome LoadOutcome)
	ObserveSlotWrite(key string, err error)
}

type nopNotifier struct{}

func (nopNotifier) SlotChanged(context.Context, string, int) {}

type nopRecorder struct{}

func (nopRecorder) ObserveSlotLoad(string, LoadOutcome) {}
func (nopRecorder) ObserveSlotWrite(string, error)      {}
