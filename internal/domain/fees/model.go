package fees

type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "PAID"
	StatusPending PaymentStatus = "PENDING"
	StatusOverdue PaymentStatus = "OVERDUE"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case StatusPaid, StatusPending, StatusOverdue:
		return true
	}
	return false
}

// Outstanding reports whether the fee still counts as owed.
func (s PaymentStatus) Outstanding() bool {
	return s == StatusPending || s == StatusOverdue
}

// FeeRecord dates are YYYY-MM-DD. PaymentDate is empty unless Status is PAID.
type FeeRecord struct {
	ID          int64         `json:"fee_id" yaml:"fee_id"`
	ResidentID  int64         `json:"resident_id" yaml:"resident_id"`
	Amount      float64       `json:"amount" yaml:"amount"`
	DueDate     string        `json:"due_date" yaml:"due_date"`
	PaymentDate string        `json:"payment_date,omitempty" yaml:"payment_date,omitempty"`
	Status      PaymentStatus `json:"status" yaml:"status"`
}

type CreateFeeInput struct {
	ResidentID int64
	Amount     float64
	DueDate    string
	Status     PaymentStatus
}
