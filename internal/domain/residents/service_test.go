package residents

import (
	"context"
	"errors"
	"testing"
	"time"

	feesdomain "pg-connect/internal/domain/fees"
)

type fakeResidentRepo struct {
	items []Resident
	seq   int64
}

func (r *fakeResidentRepo) List(ctx context.Context) ([]Resident, error) {
	result := make([]Resident, len(r.items))
	copy(result, r.items)
	return result, nil
}

func (r *fakeResidentRepo) Update(ctx context.Context, fn func([]Resident, func() int64) ([]Resident, error)) error {
	current := make([]Resident, len(r.items))
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

type fakeFeeCreator struct {
	residentIDs []int64
	err         error
}

func (f *fakeFeeCreator) CreateInitialFee(ctx context.Context, residentID int64) (*feesdomain.FeeRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.residentIDs = append(f.residentIDs, residentID)
	return &feesdomain.FeeRecord{ID: 100, ResidentID: residentID, Amount: 5000, Status: feesdomain.StatusPending}, nil
}

func seededRepo() *fakeResidentRepo {
	return &fakeResidentRepo{
		items: []Resident{
			{ID: 1, RoomID: 101, Name: "Aarav Patel", Phone: "9876543210"},
			{ID: 2, RoomID: 101, Name: "Rohan Sharma", Phone: "9876543211"},
			{ID: 3, RoomID: 102, Name: "Arjun Reddy", Phone: "9876543210"},
		},
		seq: 3,
	}
}

func TestAddDefaultsJoinDateAndRaisesFee(t *testing.T) {
	repo := seededRepo()
	fees := &fakeFeeCreator{}
	svc := NewService(repo, fees)
	svc.now = func() time.Time { return time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC) }

	resident, fee, err := svc.Add(context.Background(), AddResidentInput{
		RoomID: 104,
		Name:   "  Meera Iyer ",
		Phone:  "9000000001",
		State:  "Tamil Nadu",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resident.ID != 4 || resident.Name != "Meera Iyer" || resident.JoinDate != "2026-05-02" {
		t.Fatalf("unexpected resident %+v", resident)
	}
	if fee == nil || fee.ResidentID != 4 {
		t.Fatalf("expected initial fee for resident 4, got %+v", fee)
	}
	if len(repo.items) != 4 {
		t.Fatalf("expected 4 residents, got %d", len(repo.items))
	}
}

func TestAddKeepsProvidedJoinDateAndUnknownRoom(t *testing.T) {
	svc := NewService(seededRepo(), &fakeFeeCreator{})

	resident, _, err := svc.Add(context.Background(), AddResidentInput{
		RoomID:   999,
		Name:     "Dev",
		Phone:    "1",
		JoinDate: "2024-01-15",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resident.JoinDate != "2024-01-15" || resident.RoomID != 999 {
		t.Fatalf("unexpected resident %+v", resident)
	}
}

func TestAddRequiresNameAndPhone(t *testing.T) {
	svc := NewService(seededRepo(), &fakeFeeCreator{})

	if _, _, err := svc.Add(context.Background(), AddResidentInput{Phone: "1"}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if _, _, err := svc.Add(context.Background(), AddResidentInput{Name: "x", Phone: " "}); !errors.Is(err, ErrPhoneRequired) {
		t.Fatalf("expected ErrPhoneRequired, got %v", err)
	}
}

func TestAddReportsFeeFailureButKeepsResident(t *testing.T) {
	repo := seededRepo()
	boom := errors.New("fee slot unavailable")
	svc := NewService(repo, &fakeFeeCreator{err: boom})

	resident, fee, err := svc.Add(context.Background(), AddResidentInput{Name: "Dev", Phone: "1"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped fee error, got %v", err)
	}
	if resident == nil || fee != nil {
		t.Fatalf("expected resident without fee, got %+v %+v", resident, fee)
	}
	if len(repo.items) != 4 {
		t.Fatalf("expected resident to be stored, got %d", len(repo.items))
	}
}

func TestFindByPhoneReturnsFirstMatch(t *testing.T) {
	svc := NewService(seededRepo(), &fakeFeeCreator{})

	resident, err := svc.FindByPhone(context.Background(), "9876543210")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resident.ID != 1 {
		t.Fatalf("expected first match id 1, got %d", resident.ID)
	}

	if _, err := svc.FindByPhone(context.Background(), "0000"); !errors.Is(err, ErrResidentNotFound) {
		t.Fatalf("expected ErrResidentNotFound, got %v", err)
	}
}

func TestGetAndListByRoom(t *testing.T) {
	svc := NewService(seededRepo(), &fakeFeeCreator{})

	if _, err := svc.Get(context.Background(), 42); !errors.Is(err, ErrResidentNotFound) {
		t.Fatalf("expected ErrResidentNotFound, got %v", err)
	}

	items, err := svc.ListByRoom(context.Background(), 101)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 residents in room 101, got %d", len(items))
	}
}
