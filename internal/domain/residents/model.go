package residents

// Resident dates are YYYY-MM-DD. Phone is the login identifier.
type Resident struct {
	ID       int64  `json:"resident_id" yaml:"resident_id"`
	RoomID   int64  `json:"room_id" yaml:"room_id"`
	Name     string `json:"name" yaml:"name"`
	Phone    string `json:"phone" yaml:"phone"`
	Email    string `json:"email" yaml:"email"`
	JoinDate string `json:"join_date" yaml:"join_date"`
	State    string `json:"state" yaml:"state"`
}

type AddResidentInput struct {
	RoomID   int64
	Name     string
	Phone    string
	Email    string
	JoinDate string
	State    string
}
