package tickets

import "context"

type Repository interface {
	List(ctx context.Context) ([]SupportTicket, error)
	Update(ctx context.Context, fn func(items []SupportTicket, nextID func() int64) ([]SupportTicket, error)) error
}
