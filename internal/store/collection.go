package store

import (
	"context"
	"sync"
	"time"

	"pg-connect/pkg/logger"
)

// WriteTimeout bounds a slot write once it has started. Writes do not follow
// the caller's cancellation, since the in-memory state has already changed.
const WriteTimeout = 10 * time.Second

type Option func(*options)

type options struct {
	log      logger.Logger
	notifier Notifier
	recorder Recorder
}

func WithLogger(log logger.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(o *options) {
		if n != nil {
			o.notifier = n
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

// Collection owns a slot holding a list of records. Every change replaces the
// whole list and is written through before the writer lock is released.
type Collection[T any] struct {
	mu       sync.RWMutex
	slot     *Slot[[]T]
	idOf     func(T) int64
	items    []T
	seq      int64
	log      logger.Logger
	notifier Notifier
	recorder Recorder
}

// Open loads the slot once. Defaults are used when the slot is absent or unreadable.
func Open[T any](ctx context.Context, backend Backend, key string, defaults []T, idOf func(T) int64, opts ...Option) *Collection[T] {
	o := options{log: logger.Nop(), notifier: nopNotifier{}, recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}

	slot := NewSlot[[]T](backend, key, o.log)
	items, meta := slot.Load(ctx, cloneItems(defaults))
	if items == nil {
		items = []T{}
	}
	o.recorder.ObserveSlotLoad(key, meta.Outcome)

	c := &Collection[T]{
		slot:     slot,
		idOf:     idOf,
		items:    items,
		log:      o.log.With("slot", key),
		notifier: o.notifier,
		recorder: o.recorder,
	}
	c.seq = max(meta.Seq, c.maxID(items))
	return c
}

func (c *Collection[T]) Key() string {
	return c.slot.Key()
}

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneItems(c.items), nil
}

// Update hands fn a copy of the current list and an id allocator. The returned
// list becomes the new state. An error from fn leaves state and sequence untouched.
// Write failures are logged and counted, the in-process state still advances.
func (c *Collection[T]) Update(ctx context.Context, fn func(items []T, nextID func() int64) ([]T, error)) error {
	c.mu.Lock()
	seq := c.seq
	nextID := func() int64 {
		seq++
		return seq
	}

	next, err := fn(cloneItems(c.items), nextID)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if next == nil {
		next = []T{}
	}

	writeCtx, cancel := detached(ctx)
	defer cancel()

	c.items = next
	c.seq = max(seq, c.maxID(next))
	if err := c.persistLocked(writeCtx); err != nil {
		c.log.InternalError("store.update: write failed, keeping in-memory state", err)
	}
	count := len(c.items)
	c.mu.Unlock()

	c.notifier.SlotChanged(writeCtx, c.Key(), count)
	return nil
}

// Reset replaces the whole list and reports write errors to the caller.
func (c *Collection[T]) Reset(ctx context.Context, items []T) error {
	writeCtx, cancel := detached(ctx)
	defer cancel()

	c.mu.Lock()
	c.items = cloneItems(items)
	if c.items == nil {
		c.items = []T{}
	}
	c.seq = max(c.seq, c.maxID(c.items))
	err := c.persistLocked(writeCtx)
	count := len(c.items)
	c.mu.Unlock()

	if err != nil {
		return err
	}
	c.notifier.SlotChanged(writeCtx, c.Key(), count)
	return nil
}

// detached keeps the caller's values but not its cancellation.
func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), WriteTimeout)
}

func (c *Collection[T]) persistLocked(ctx context.Context) error {
	err := c.slot.Save(ctx, c.items, c.seq)
	c.recorder.ObserveSlotWrite(c.Key(), err)
	return err
}

func (c *Collection[T]) maxID(items []T) int64 {
	var result int64
	for _, item := range items {
		if id := c.idOf(item); id > result {
			result = id
		}
	}
	return result
}

func cloneItems[T any](items []T) []T {
	if items == nil {
		return nil
	}
	result := make([]T, len(items))
	copy(result, items)
	return result
}
