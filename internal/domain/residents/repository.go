package residents

import (
	"context"

	feesdomain "pg-connect/internal/domain/fees"
)

type Repository interface {
	List(ctx context.Context) ([]Resident, error)
	Update(ctx context.Context, fn func(items []Resident, nextID func() int64) ([]Resident, error)) error
}

// FeeCreator raises the joining fee for a new resident.
type FeeCreator interface {
	CreateInitialFee(ctx context.Context, residentID int64) (*feesdomain.FeeRecord, error)
}
