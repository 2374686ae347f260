package tickets

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeTicketRepo struct {
	items []SupportTicket
	seq   int64
}

func (r *fakeTicketRepo) List(ctx context.Context) ([]SupportTicket, error) {
	result := make([]SupportTicket, len(r.items))
	copy(result, r.items)
	return result, nil
}

func (r *fakeTicketRepo) Update(ctx context.Context, fn func([]SupportTicket, func() int64) ([]SupportTicket, error)) error {
	current := make([]SupportTicket, len(r.items))
	copy(current, r.items)
	seq := r.seq
	next, err := fn(current, func() int64 { seq++; return seq })
	if err != nil {
		return err
	}
	r.items = next
	r.seq = seq
	return nil
}

func newTestService() (*Service, *fakeTicketRepo) {
	repo := &fakeTicketRepo{
		items: []SupportTicket{
			{ID: 1, ResidentID: 1, Category: "Plumbing", Description: "Leaky faucet in bathroom", Status: StatusOpen, CreatedAt: "2023-10-25"},
			{ID: 2, ResidentID: 2, Category: "Wifi", Description: "Internet is slow", Status: StatusResolved, CreatedAt: "2023-10-20"},
		},
		seq: 2,
	}
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2026, 7, 9, 18, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestCreateOpensTicketDatedToday(t *testing.T) {
	svc, repo := newTestService()

	before, _ := svc.ListByResident(context.Background(), 1)
	ticket, err := svc.Create(context.Background(), CreateTicketInput{ResidentID: 1, Category: "Electrical", Description: " Fan is noisy "})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ticket.Status != StatusOpen || ticket.CreatedAt != "2026-07-09" || ticket.ID != 3 {
		t.Fatalf("unexpected ticket %+v", ticket)
	}
	if ticket.Description != "Fan is noisy" {
		t.Fatalf("expected trimmed description, got %q", ticket.Description)
	}

	after, _ := svc.ListByResident(context.Background(), 1)
	if len(after) != len(before)+1 {
		t.Fatalf("expected resident list to grow by one, got %d -> %d", len(before), len(after))
	}
	if len(repo.items) != 3 {
		t.Fatalf("expected 3 tickets, got %d", len(repo.items))
	}
}

func TestCreateDefaultsCategoryAndRequiresDescription(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Create(context.Background(), CreateTicketInput{ResidentID: 1}); !errors.Is(err, ErrDescriptionRequired) {
		t.Fatalf("expected ErrDescriptionRequired, got %v", err)
	}

	ticket, err := svc.Create(context.Background(), CreateTicketInput{ResidentID: 1, Description: "Door"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ticket.Category != DefaultCategory {
		t.Fatalf("expected default category, got %q", ticket.Category)
	}
}

func TestUpdateStatusHasNoTransitionGuard(t *testing.T) {
	svc, _ := newTestService()

	reopened, err := svc.UpdateStatus(context.Background(), 2, StatusOpen)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reopened.Status != StatusOpen {
		t.Fatalf("expected reopened ticket, got %s", reopened.Status)
	}

	if _, err := svc.UpdateStatus(context.Background(), 9, StatusResolved); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), 1, "CLOSED"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}
