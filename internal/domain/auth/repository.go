package auth

import (
	"context"
	"time"

	residentsdomain "pg-connect/internal/domain/residents"
)

type SessionStore interface {
	Get(token string) (*Session, bool)
	Set(session *Session, ttl time.Duration)
	// Update applies fn to a live session atomically and returns the result.
	Update(token string, fn func(*Session)) (*Session, bool)
	Delete(token string)
}

type ResidentFinder interface {
	FindByPhone(ctx context.Context, phone string) (*residentsdomain.Resident, error)
}
