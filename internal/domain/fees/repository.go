package fees

import "context"

type Repository interface {
	List(ctx context.Context) ([]FeeRecord, error)
	Update(ctx context.Context, fn func(items []FeeRecord, nextID func() int64) ([]FeeRecord, error)) error
}
