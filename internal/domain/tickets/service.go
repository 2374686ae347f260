package tickets

import (
	"context"
	"strings"
	"time"
)

const DefaultCategory = "General"

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]SupportTicket, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByResident(ctx context.Context, residentID int64) ([]SupportTicket, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]SupportTicket, 0)
	for _, item := range items {
		if item.ResidentID == residentID {
			result = append(result, item)
		}
	}
	return result, nil
}

// Create opens a ticket dated today.
func (s *Service) Create(ctx context.Context, input CreateTicketInput) (*SupportTicket, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = DefaultCategory
	}

	var created SupportTicket
	err := s.repo.Update(ctx, func(items []SupportTicket, nextID func() int64) ([]SupportTicket, error) {
		created = SupportTicket{
			ID:          nextID(),
			ResidentID:  input.ResidentID,
			Category:    category,
			Description: description,
			Status:      StatusOpen,
			CreatedAt:   s.now().Format(time.DateOnly),
		}
		return append(items, created), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStatus allows any transition, including reopening.
func (s *Service) UpdateStatus(ctx context.Context, ticketID int64, status Status) (*SupportTicket, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	var updated SupportTicket
	err := s.repo.Update(ctx, func(items []SupportTicket, _ func() int64) ([]SupportTicket, error) {
		for i := range items {
			if items[i].ID == ticketID {
				items[i].Status = status
				updated = items[i]
				return items, nil
			}
		}
		return nil, ErrTicketNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
