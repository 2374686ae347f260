package residents

import (
	"context"
	"fmt"
	"strings"
	"time"

	feesdomain "pg-connect/internal/domain/fees"
)

type Service struct {
	repo Repository
	fees FeeCreator
	now  func() time.Time
}

func NewService(repo Repository, fees FeeCreator) *Service {
	return &Service{
		repo: repo,
		fees: fees,
		now:  time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]Resident, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, residentID int64) (*Resident, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == residentID {
			return &item, nil
		}
	}
	return nil, ErrResidentNotFound
}

// FindByPhone returns the first resident whose phone matches exactly.
func (s *Service) FindByPhone(ctx context.Context, phone string) (*Resident, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.Phone == phone {
			return &item, nil
		}
	}
	return nil, ErrResidentNotFound
}

func (s *Service) ListByRoom(ctx context.Context, roomID int64) ([]Resident, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]Resident, 0)
	for _, item := range items {
		if item.RoomID == roomID {
			result = append(result, item)
		}
	}
	return result, nil
}

// Add stores the resident and raises their joining fee. The room is not
// checked against the catalog or its capacity.
func (s *Service) Add(ctx context.Context, input AddResidentInput) (*Resident, *feesdomain.FeeRecord, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)
	if input.Name == "" {
		return nil, nil, ErrNameRequired
	}
	if input.Phone == "" {
		return nil, nil, ErrPhoneRequired
	}
	joinDate := strings.TrimSpace(input.JoinDate)
	if joinDate == "" {
		joinDate = s.now().Format(time.DateOnly)
	}

	var created Resident
	err := s.repo.Update(ctx, func(items []Resident, nextID func() int64) ([]Resident, error) {
		created = Resident{
			ID:       nextID(),
			RoomID:   input.RoomID,
			Name:     input.Name,
			Phone:    input.Phone,
			Email:    strings.TrimSpace(input.Email),
			JoinDate: joinDate,
			State:    strings.TrimSpace(input.State),
		}
		return append(items, created), nil
	})
	if err != nil {
		return nil, nil, err
	}

	fee, err := s.fees.CreateInitialFee(ctx, created.ID)
	if err != nil {
		return &created, nil, fmt.Errorf("create initial fee: %w", err)
	}
	return &created, fee, nil
}
