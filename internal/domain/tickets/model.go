package tickets

type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

type SupportTicket struct {
	ID          int64  `json:"ticket_id" yaml:"ticket_id"`
	ResidentID  int64  `json:"resident_id" yaml:"resident_id"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description" yaml:"description"`
	Status      Status `json:"status" yaml:"status"`
	CreatedAt   string `json:"created_at" yaml:"created_at"`
}

type CreateTicketInput struct {
	ResidentID  int64
	Category    string
	Description string
}
