package messages

import "context"

type Repository interface {
	List(ctx context.Context) ([]ChatMessage, error)
	Update(ctx context.Context, fn func(items []ChatMessage, nextID func() int64) ([]ChatMessage, error)) error
}
