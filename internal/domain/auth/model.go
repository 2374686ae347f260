package auth

import "time"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleResident Role = "RESIDENT"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleResident
}

const (
	DefaultAdminView    = "dashboard"
	DefaultResidentView = "home"
)

// Session is one signed-in user. ResidentID is zero for admins.
type Session struct {
	Token              string    `json:"token"`
	Role               Role      `json:"role"`
	ResidentID         int64     `json:"resident_id,omitempty"`
	ActiveView         string    `json:"active_view"`
	SelectedResidentID int64     `json:"selected_resident_id,omitempty"`
	SelectedChatRoom   int64     `json:"selected_chat_room,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	ExpiresAt          time.Time `json:"expires_at"`
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

type LoginInput struct {
	Role       Role
	Identifier string
	Password   string
}
