package messages

import (
	"context"
	"strings"
	"time"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]ChatMessage, error) {
	return s.repo.List(ctx)
}

// ListByRoom returns the room thread in insertion order.
func (s *Service) ListByRoom(ctx context.Context, roomID int64) ([]ChatMessage, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]ChatMessage, 0)
	for _, item := range items {
		if item.RoomID == roomID {
			result = append(result, item)
		}
	}
	return result, nil
}

// Send appends a message with its text as typed. Blank text and room 0 are
// rejected before anything is stored.
func (s *Service) Send(ctx context.Context, input SendInput) (*ChatMessage, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrEmptyMessage
	}
	if input.RoomID == 0 {
		return nil, ErrRoomRequired
	}
	if !input.Sender.Valid() {
		return nil, ErrInvalidSender
	}

	var created ChatMessage
	err := s.repo.Update(ctx, func(items []ChatMessage, nextID func() int64) ([]ChatMessage, error) {
		created = ChatMessage{
			ID:        nextID(),
			RoomID:    input.RoomID,
			Sender:    input.Sender,
			Text:      input.Text,
			Timestamp: s.now().Format(TimestampLayout),
		}
		return append(items, created), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}
