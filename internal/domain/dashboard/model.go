package dashboard

import (
	feesdomain "pg-connect/internal/domain/fees"
	messagesdomain "pg-connect/internal/domain/messages"
	residentsdomain "pg-connect/internal/domain/residents"
	roomsdomain "pg-connect/internal/domain/rooms"
	ticketsdomain "pg-connect/internal/domain/tickets"
)

type RoomStatus string

const (
	RoomVacant    RoomStatus = "VACANT"
	RoomAttention RoomStatus = "ATTENTION"
	RoomGood      RoomStatus = "GOOD"
)

func (s RoomStatus) Label() string {
	switch s {
	case RoomVacant:
		return "Vacant"
	case RoomAttention:
		return "Fees Pending"
	default:
		return "All Clear"
	}
}

const (
	EmptyRoomStates   = "Empty"
	NoMessagesPreview = "No messages yet"
	FallbackName      = "Resident"
)

// Snapshot is one consistent read of every collection.
type Snapshot struct {
	Rooms     []roomsdomain.Room
	Residents []residentsdomain.Resident
	Fees      []feesdomain.FeeRecord
	Tickets   []ticketsdomain.SupportTicket
	Messages  []messagesdomain.ChatMessage
}

type RoomCard struct {
	Room            roomsdomain.Room `json:"room"`
	Occupancy       int              `json:"occupancy"`
	Status          RoomStatus       `json:"status"`
	StatusLabel     string           `json:"status_label"`
	ResidentStates  string           `json:"resident_states"`
	FirstResidentID int64            `json:"first_resident_id,omitempty"`
}

type ResidentFeeSummary struct {
	Resident           residentsdomain.Resident `json:"resident"`
	RoomNumber         string                   `json:"room_number"`
	IsPending          bool                     `json:"is_pending"`
	TotalPendingAmount float64                  `json:"total_pending_amount"`
	PendingFeeIDs      []int64                  `json:"pending_fee_ids"`
}

type Notification struct {
	Ticket       ticketsdomain.SupportTicket `json:"ticket"`
	ResidentName string                      `json:"resident_name,omitempty"`
	RoomNumber   string                      `json:"room_number,omitempty"`
}

type Distribution struct {
	Occupied int `json:"occupied"`
	Vacant   int `json:"vacant"`
}

type MonthlyRevenue struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type Conversation struct {
	Room          roomsdomain.Room `json:"room"`
	Occupancy     int              `json:"occupancy"`
	LastMessage   string           `json:"last_message"`
	LastTimestamp string           `json:"last_timestamp,omitempty"`
}

type AdminDashboard struct {
	TotalResidents   int                  `json:"total_residents"`
	TotalCapacity    int                  `json:"total_capacity"`
	OccupancyRate    int                  `json:"occupancy_rate"`
	Revenue          float64              `json:"revenue"`
	PendingAmount    float64              `json:"pending_amount"`
	OpenTickets      int                  `json:"open_tickets"`
	Distribution     Distribution         `json:"distribution"`
	MonthlyRevenue   []MonthlyRevenue     `json:"monthly_revenue"`
	TicketCategories []CategoryCount      `json:"ticket_categories"`
	Rooms            []RoomCard           `json:"rooms"`
	PendingDues      []ResidentFeeSummary `json:"pending_dues"`
	ClearDues        []ResidentFeeSummary `json:"clear_dues"`
	Notifications    []Notification       `json:"notifications"`
}

type ResidentHome struct {
	Resident          *residentsdomain.Resident     `json:"resident,omitempty"`
	DisplayName       string                        `json:"display_name"`
	RoomID            int64                         `json:"room_id"`
	RoomNumber        string                        `json:"room_number"`
	Fees              []feesdomain.FeeRecord        `json:"fees"`
	OutstandingAmount float64                       `json:"outstanding_amount"`
	Tickets           []ticketsdomain.SupportTicket `json:"tickets"`
	Notifications     []Notification                `json:"notifications"`
}

type ResidentDetail struct {
	Resident   residentsdomain.Resident      `json:"resident"`
	RoomNumber string                        `json:"room_number"`
	Fees       []feesdomain.FeeRecord        `json:"fees"`
	Tickets    []ticketsdomain.SupportTicket `json:"tickets"`
	Summary    ResidentFeeSummary            `json:"fee_summary"`
}
