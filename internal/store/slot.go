package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"pg-connect/pkg/logger"
)

type LoadOutcome string

const (
	LoadFound    LoadOutcome = "found"
	LoadMissing  LoadOutcome = "missing"
	LoadCorrupt  LoadOutcome = "corrupt"
	LoadMigrated LoadOutcome = "migrated"
	LoadFailed   LoadOutcome = "failed"
)

type Meta struct {
	Seq     int64
	Outcome LoadOutcome
}

// Slot is one named value in a Backend.
type Slot[T any] struct {
	backend Backend
	key     string
	log     logger.Logger
}

func NewSlot[T any](backend Backend, key string, log logger.Logger) *Slot[T] {
	if log == nil {
		log = logger.Nop()
	}
	return &Slot[T]{backend: backend, key: key, log: log.With("slot", key)}
}

func (s *Slot[T]) Key() string {
	return s.key
}

// Load never fails: a missing, unreadable or undecodable slot yields fallback.
func (s *Slot[T]) Load(ctx context.Context, fallback T) (T, Meta) {
	payload, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.log.Debug("store.load: slot missing, using default")
			return fallback, Meta{Outcome: LoadMissing}
		}
		s.log.InternalError("store.load: backend read failed, using default", err)
		return fallback, Meta{Outcome: LoadFailed}
	}

	env, migrated, err := decodeEnvelope(payload)
	if err != nil {
		s.log.InternalError("store.load: slot payload corrupt, using default", err)
		return fallback, Meta{Outcome: LoadCorrupt}
	}

	var value T
	if err := json.Unmarshal(env.Data, &value); err != nil {
		s.log.InternalError("store.load: slot data corrupt, using default", err)
		return fallback, Meta{Outcome: LoadCorrupt}
	}

	if migrated {
		s.log.Info("store.load: slot migrated", "version", CurrentVersion)
		return value, Meta{Seq: env.Seq, Outcome: LoadMigrated}
	}
	return value, Meta{Seq: env.Seq, Outcome: LoadFound}
}

func (s *Slot[T]) Save(ctx context.Context, value T, seq int64) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", s.key, err)
	}
	payload, err := encodeEnvelope(data, seq)
	if err != nil {
		return fmt.Errorf("encode envelope %s: %w", s.key, err)
	}
	if err := s.backend.Put(ctx, s.key, payload); err != nil {
		return fmt.Errorf("write slot %s: %w", s.key, err)
	}
	return nil
}
