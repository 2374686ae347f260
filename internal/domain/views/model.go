package views

import (
	authdomain "pg-connect/internal/domain/auth"
	dashboarddomain "pg-connect/internal/domain/dashboard"
	insightdomain "pg-connect/internal/domain/insight"
	messagesdomain "pg-connect/internal/domain/messages"
	roomsdomain "pg-connect/internal/domain/rooms"
)

const (
	Dashboard      = "dashboard"
	Residents      = "residents"
	ResidentDetail = "resident-detail"
	Messages       = "messages"
	Blueprint      = "blueprint"
	Home           = "home"
)

const ResidentNotFound = "Resident not found"

var byRole = map[authdomain.Role][]string{
	authdomain.RoleAdmin:    {Dashboard, Residents, ResidentDetail, Messages, Blueprint},
	authdomain.RoleResident: {Home, Messages},
}

func Allowed(role authdomain.Role, view string) bool {
	for _, v := range byRole[role] {
		if v == view {
			return true
		}
	}
	return false
}

// Selection carries the optional record a view points at.
type Selection struct {
	ResidentID int64
	RoomID     int64
}

type Rendered struct {
	View     string `json:"view"`
	Data     any    `json:"data,omitempty"`
	NotFound string `json:"not_found,omitempty"`
}

type DashboardView struct {
	Dashboard dashboarddomain.AdminDashboard `json:"dashboard"`
	Insight   insightdomain.Latest           `json:"insight"`
}

type ResidentsView struct {
	PendingDues    []dashboarddomain.ResidentFeeSummary `json:"pending_dues"`
	ClearDues      []dashboarddomain.ResidentFeeSummary `json:"clear_dues"`
	AvailableRooms []roomsdomain.Room                   `json:"available_rooms"`
}

type AdminMessagesView struct {
	Conversations []dashboarddomain.Conversation `json:"conversations"`
	SelectedRoom  int64                          `json:"selected_room,omitempty"`
	Thread        []messagesdomain.ChatMessage   `json:"thread,omitempty"`
}

type ResidentMessagesView struct {
	RoomID     int64                        `json:"room_id"`
	RoomNumber string                       `json:"room_number"`
	Thread     []messagesdomain.ChatMessage `json:"thread"`
}

type BlueprintView struct {
	Components []insightdomain.Component `json:"components"`
	Code       string                    `json:"code"`
}
