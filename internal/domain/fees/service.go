package fees

import (
	"context"
	"time"
)

const DefaultInitialAmount = 5000

type Service struct {
	repo          Repository
	initialAmount float64
	now           func() time.Time
}

func NewService(repo Repository, initialAmount float64) *Service {
	if initialAmount <= 0 {
		initialAmount = DefaultInitialAmount
	}
	return &Service{
		repo:          repo,
		initialAmount: initialAmount,
		now:           time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]FeeRecord, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByResident(ctx context.Context, residentID int64) ([]FeeRecord, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]FeeRecord, 0)
	for _, item := range items {
		if item.ResidentID == residentID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, feeID int64) (*FeeRecord, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == feeID {
			return &item, nil
		}
	}
	return nil, ErrFeeNotFound
}

// CreateInitialFee records the joining fee: the configured amount, due today, PENDING.
func (s *Service) CreateInitialFee(ctx context.Context, residentID int64) (*FeeRecord, error) {
	return s.Create(ctx, CreateFeeInput{
		ResidentID: residentID,
		Amount:     s.initialAmount,
		DueDate:    s.today(),
		Status:     StatusPending,
	})
}

// Create appends a fee. The resident is not checked for existence.
func (s *Service) Create(ctx context.Context, input CreateFeeInput) (*FeeRecord, error) {
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if input.Status == "" {
		input.Status = StatusPending
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if input.DueDate == "" {
		input.DueDate = s.today()
	}

	var created FeeRecord
	err := s.repo.Update(ctx, func(items []FeeRecord, nextID func() int64) ([]FeeRecord, error) {
		created = FeeRecord{
			ID:         nextID(),
			ResidentID: input.ResidentID,
			Amount:     input.Amount,
			DueDate:    input.DueDate,
			Status:     input.Status,
		}
		if created.Status == StatusPaid {
			created.PaymentDate = s.today()
		}
		return append(items, created), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStatus sets the status. Moving to PAID stamps today's date as the
// payment date, any other status clears it.
func (s *Service) UpdateStatus(ctx context.Context, feeID int64, status PaymentStatus) (*FeeRecord, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	var updated FeeRecord
	err := s.repo.Update(ctx, func(items []FeeRecord, _ func() int64) ([]FeeRecord, error) {
		for i := range items {
			if items[i].ID != feeID {
				continue
			}
			items[i] = s.withStatus(items[i], status)
			updated = items[i]
			return items, nil
		}
		return nil, ErrFeeNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// PayOutstanding marks every PENDING or OVERDUE fee of the resident as PAID.
func (s *Service) PayOutstanding(ctx context.Context, residentID int64) ([]FeeRecord, error) {
	paid := make([]FeeRecord, 0)
	err := s.repo.Update(ctx, func(items []FeeRecord, _ func() int64) ([]FeeRecord, error) {
		for i := range items {
			if items[i].ResidentID != residentID || !items[i].Status.Outstanding() {
				continue
			}
			items[i] = s.withStatus(items[i], StatusPaid)
			paid = append(paid, items[i])
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}

func (s *Service) withStatus(fee FeeRecord, status PaymentStatus) FeeRecord {
	fee.Status = status
	if status == StatusPaid {
		fee.PaymentDate = s.today()
	} else {
		fee.PaymentDate = ""
	}
	return fee
}

func (s *Service) today() string {
	return s.now().Format(time.DateOnly)
}
