package dashboard

import (
	"context"

	feesdomain "pg-connect/internal/domain/fees"
	messagesdomain "pg-connect/internal/domain/messages"
	residentsdomain "pg-connect/internal/domain/residents"
	roomsdomain "pg-connect/internal/domain/rooms"
	ticketsdomain "pg-connect/internal/domain/tickets"
)

const ConversationLimit = 10

type RoomCatalog interface {
	List() []roomsdomain.Room
}

type ResidentLister interface {
	List(ctx context.Context) ([]residentsdomain.Resident, error)
}

type FeeLister interface {
	List(ctx context.Context) ([]feesdomain.FeeRecord, error)
}

type TicketLister interface {
	List(ctx context.Context) ([]ticketsdomain.SupportTicket, error)
}

type MessageLister interface {
	List(ctx context.Context) ([]messagesdomain.ChatMessage, error)
}

// Service recomputes every derived view from the current collections on each call.
type Service struct {
	rooms     RoomCatalog
	residents ResidentLister
	fees      FeeLister
	tickets   TicketLister
	messages  MessageLister
}

func NewService(rooms RoomCatalog, residents ResidentLister, fees FeeLister, tickets TicketLister, messages MessageLister) *Service {
	return &Service{
		rooms:     rooms,
		residents: residents,
		fees:      fees,
		tickets:   tickets,
		messages:  messages,
	}
}

func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	residents, err := s.residents.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	fees, err := s.fees.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	messages, err := s.messages.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Rooms:     s.rooms.List(),
		Residents: residents,
		Fees:      fees,
		Tickets:   tickets,
		Messages:  messages,
	}, nil
}

func (s *Service) Admin(ctx context.Context) (AdminDashboard, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return AdminDashboard{}, err
	}
	return BuildAdmin(snap), nil
}

func BuildAdmin(snap Snapshot) AdminDashboard {
	capacity := TotalCapacity(snap.Rooms)
	pending, settled := PartitionByPending(SummarizeResidentFees(snap.Residents, snap.Fees, snap.Rooms))

	return AdminDashboard{
		TotalResidents:   len(snap.Residents),
		TotalCapacity:    capacity,
		OccupancyRate:    OccupancyRate(len(snap.Residents), capacity),
		Revenue:          Revenue(snap.Fees),
		PendingAmount:    PendingAmount(snap.Fees),
		OpenTickets:      OpenTicketCount(snap.Tickets),
		Distribution:     OccupancyDistribution(len(snap.Residents), capacity),
		MonthlyRevenue:   MonthlyRevenueSeries(snap.Fees),
		TicketCategories: OpenTicketCategories(snap.Tickets),
		Rooms:            RoomCards(snap.Rooms, snap.Residents, snap.Fees),
		PendingDues:      pending,
		ClearDues:        settled,
		Notifications:    AdminNotifications(snap.Tickets, snap.Residents, snap.Rooms),
	}
}

// Resident builds the resident home. A resident record that no longer exists
// yields the fallback name and room rather than an error.
func (s *Service) Resident(ctx context.Context, residentID int64) (ResidentHome, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return ResidentHome{}, err
	}
	return BuildResidentHome(snap, residentID), nil
}

func BuildResidentHome(snap Snapshot, residentID int64) ResidentHome {
	home := ResidentHome{
		DisplayName: FallbackName,
		RoomID:      roomsdomain.DefaultRoomID,
	}
	for _, r := range snap.Residents {
		if r.ID == residentID {
			resident := r
			home.Resident = &resident
			home.DisplayName = r.Name
			home.RoomID = r.RoomID
			break
		}
	}
	home.RoomNumber = roomNumbers(snap.Rooms)[home.RoomID]

	home.Fees = make([]feesdomain.FeeRecord, 0)
	for _, f := range snap.Fees {
		if f.ResidentID == residentID {
			home.Fees = append(home.Fees, f)
		}
	}
	home.OutstandingAmount = PendingAmount(home.Fees)

	home.Tickets = make([]ticketsdomain.SupportTicket, 0)
	for _, t := range snap.Tickets {
		if t.ResidentID == residentID {
			home.Tickets = append(home.Tickets, t)
		}
	}
	home.Notifications = ResidentNotifications(residentID, snap.Tickets, snap.Residents, snap.Rooms)
	return home
}

func (s *Service) ResidentDetail(ctx context.Context, residentID int64) (ResidentDetail, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return ResidentDetail{}, err
	}
	return BuildResidentDetail(snap, residentID)
}

func BuildResidentDetail(snap Snapshot, residentID int64) (ResidentDetail, error) {
	home := BuildResidentHome(snap, residentID)
	if home.Resident == nil {
		return ResidentDetail{}, residentsdomain.ErrResidentNotFound
	}
	return ResidentDetail{
		Resident:   *home.Resident,
		RoomNumber: home.RoomNumber,
		Fees:       home.Fees,
		Tickets:    home.Tickets,
		Summary:    SummarizeResidentFee(*home.Resident, snap.Fees, roomNumbers(snap.Rooms)),
	}, nil
}

// Notifications returns every OPEN ticket for admins, or the resident's own.
func (s *Service) Notifications(ctx context.Context, admin bool, residentID int64) ([]Notification, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if admin {
		return AdminNotifications(snap.Tickets, snap.Residents, snap.Rooms), nil
	}
	return ResidentNotifications(residentID, snap.Tickets, snap.Residents, snap.Rooms), nil
}

func (s *Service) RoomCards(ctx context.Context) ([]RoomCard, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return RoomCards(snap.Rooms, snap.Residents, snap.Fees), nil
}

func (s *Service) AvailableRooms(ctx context.Context) ([]roomsdomain.Room, error) {
	residents, err := s.residents.List(ctx)
	if err != nil {
		return nil, err
	}
	return AvailableRooms(s.rooms.List(), residents), nil
}

func (s *Service) Conversations(ctx context.Context) ([]Conversation, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return Conversations(snap.Rooms, snap.Residents, snap.Messages, ConversationLimit), nil
}

// InsightContext describes the current admin dashboard for the insight prompt.
func (s *Service) InsightContext(ctx context.Context) (string, error) {
	d, err := s.Admin(ctx)
	if err != nil {
		return "", err
	}
	return InsightContext(d), nil
}
