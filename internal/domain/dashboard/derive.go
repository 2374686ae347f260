package dashboard

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	feesdomain "pg-connect/internal/domain/fees"
	messagesdomain "pg-connect/internal/domain/messages"
	residentsdomain "pg-connect/internal/domain/residents"
	roomsdomain "pg-connect/internal/domain/rooms"
	ticketsdomain "pg-connect/internal/domain/tickets"
)

// Everything in this file is a pure function of its arguments.

func Occupancy(roomID int64, residents []residentsdomain.Resident) int {
	return lo.CountBy(residents, func(r residentsdomain.Resident) bool {
		return r.RoomID == roomID
	})
}

func occupantsOf(roomID int64, residents []residentsdomain.Resident) []residentsdomain.Resident {
	return lo.Filter(residents, func(r residentsdomain.Resident, _ int) bool {
		return r.RoomID == roomID
	})
}

// ClassifyRoom is VACANT with no residents, ATTENTION when any resident of the
// room owes a PENDING or OVERDUE fee, GOOD otherwise.
func ClassifyRoom(roomID int64, residents []residentsdomain.Resident, fees []feesdomain.FeeRecord) RoomStatus {
	occupants := occupantsOf(roomID, residents)
	if len(occupants) == 0 {
		return RoomVacant
	}

	ids := lo.Map(occupants, func(r residentsdomain.Resident, _ int) int64 { return r.ID })
	owing := lo.SomeBy(fees, func(f feesdomain.FeeRecord) bool {
		return f.Status.Outstanding() && lo.Contains(ids, f.ResidentID)
	})
	if owing {
		return RoomAttention
	}
	return RoomGood
}

// RoomResidentStates lists distinct home states of the occupants in
// first-seen order, or "Empty" for a vacant room.
func RoomResidentStates(roomID int64, residents []residentsdomain.Resident) string {
	occupants := occupantsOf(roomID, residents)
	if len(occupants) == 0 {
		return EmptyRoomStates
	}
	states := lo.Uniq(lo.FilterMap(occupants, func(r residentsdomain.Resident, _ int) (string, bool) {
		state := strings.TrimSpace(r.State)
		return state, state != ""
	}))
	return strings.Join(states, ", ")
}

func RoomCards(rooms []roomsdomain.Room, residents []residentsdomain.Resident, fees []feesdomain.FeeRecord) []RoomCard {
	return lo.Map(rooms, func(room roomsdomain.Room, _ int) RoomCard {
		status := ClassifyRoom(room.ID, residents, fees)
		card := RoomCard{
			Room:           room,
			Occupancy:      Occupancy(room.ID, residents),
			Status:         status,
			StatusLabel:    status.Label(),
			ResidentStates: RoomResidentStates(room.ID, residents),
		}
		if first, ok := lo.Find(residents, func(r residentsdomain.Resident) bool { return r.RoomID == room.ID }); ok {
			card.FirstResidentID = first.ID
		}
		return card
	})
}

// AvailableRooms keeps rooms whose counted occupancy is below capacity.
func AvailableRooms(rooms []roomsdomain.Room, residents []residentsdomain.Resident) []roomsdomain.Room {
	return lo.Filter(rooms, func(room roomsdomain.Room, _ int) bool {
		return Occupancy(room.ID, residents) < room.MaxCapacity
	})
}

func roomNumbers(rooms []roomsdomain.Room) map[int64]string {
	return lo.MapValues(lo.KeyBy(rooms, func(r roomsdomain.Room) int64 { return r.ID }), func(r roomsdomain.Room, _ int64) string {
		return r.Number
	})
}

func SummarizeResidentFee(resident residentsdomain.Resident, fees []feesdomain.FeeRecord, numbers map[int64]string) ResidentFeeSummary {
	owed := lo.Filter(fees, func(f feesdomain.FeeRecord, _ int) bool {
		return f.ResidentID == resident.ID && f.Status.Outstanding()
	})
	return ResidentFeeSummary{
		Resident:           resident,
		RoomNumber:         numbers[resident.RoomID],
		IsPending:          len(owed) > 0,
		TotalPendingAmount: lo.SumBy(owed, func(f feesdomain.FeeRecord) float64 { return f.Amount }),
		PendingFeeIDs:      lo.Map(owed, func(f feesdomain.FeeRecord, _ int) int64 { return f.ID }),
	}
}

func SummarizeResidentFees(residents []residentsdomain.Resident, fees []feesdomain.FeeRecord, rooms []roomsdomain.Room) []ResidentFeeSummary {
	numbers := roomNumbers(rooms)
	return lo.Map(residents, func(r residentsdomain.Resident, _ int) ResidentFeeSummary {
		return SummarizeResidentFee(r, fees, numbers)
	})
}

// PartitionByPending splits summaries into residents owing money and the rest.
func PartitionByPending(summaries []ResidentFeeSummary) (pending, settled []ResidentFeeSummary) {
	isPending := func(s ResidentFeeSummary, _ int) bool { return s.IsPending }
	return lo.Filter(summaries, isPending), lo.Reject(summaries, isPending)
}

func notifications(tickets []ticketsdomain.SupportTicket, residents []residentsdomain.Resident, rooms []roomsdomain.Room, keep func(ticketsdomain.SupportTicket) bool) []Notification {
	byID := lo.KeyBy(residents, func(r residentsdomain.Resident) int64 { return r.ID })
	numbers := roomNumbers(rooms)

	return lo.FilterMap(tickets, func(t ticketsdomain.SupportTicket, _ int) (Notification, bool) {
		if t.Status != ticketsdomain.StatusOpen || !keep(t) {
			return Notification{}, false
		}
		n := Notification{Ticket: t}
		if resident, ok := byID[t.ResidentID]; ok {
			n.ResidentName = resident.Name
			n.RoomNumber = numbers[resident.RoomID]
		}
		return n, true
	})
}

// AdminNotifications covers every OPEN ticket.
func AdminNotifications(tickets []ticketsdomain.SupportTicket, residents []residentsdomain.Resident, rooms []roomsdomain.Room) []Notification {
	return notifications(tickets, residents, rooms, func(ticketsdomain.SupportTicket) bool { return true })
}

// ResidentNotifications covers the resident's own OPEN tickets.
func ResidentNotifications(residentID int64, tickets []ticketsdomain.SupportTicket, residents []residentsdomain.Resident, rooms []roomsdomain.Room) []Notification {
	return notifications(tickets, residents, rooms, func(t ticketsdomain.SupportTicket) bool {
		return t.ResidentID == residentID
	})
}

// Revenue sums PAID amounts.
func Revenue(fees []feesdomain.FeeRecord) float64 {
	return lo.SumBy(fees, func(f feesdomain.FeeRecord) float64 {
		if f.Status == feesdomain.StatusPaid {
			return f.Amount
		}
		return 0
	})
}

func PendingAmount(fees []feesdomain.FeeRecord) float64 {
	return lo.SumBy(fees, func(f feesdomain.FeeRecord) float64 {
		if f.Status.Outstanding() {
			return f.Amount
		}
		return 0
	})
}

func OpenTicketCount(tickets []ticketsdomain.SupportTicket) int {
	return lo.CountBy(tickets, func(t ticketsdomain.SupportTicket) bool {
		return t.Status == ticketsdomain.StatusOpen
	})
}

// OccupancyRate is residents over total beds as a rounded percentage.
func OccupancyRate(residentCount, totalCapacity int) int {
	if totalCapacity <= 0 {
		return 0
	}
	return int(math.Round(float64(residentCount) / float64(totalCapacity) * 100))
}

// OccupancyDistribution never reports negative vacant beds.
func OccupancyDistribution(residentCount, totalCapacity int) Distribution {
	return Distribution{
		Occupied: residentCount,
		Vacant:   max(totalCapacity-residentCount, 0),
	}
}

func TotalCapacity(rooms []roomsdomain.Room) int {
	return lo.SumBy(rooms, func(r roomsdomain.Room) int { return r.MaxCapacity })
}

// MonthlyRevenueSeries buckets PAID fees by payment month, falling back to the
// due month when no payment date was recorded. Months are ascending.
func MonthlyRevenueSeries(fees []feesdomain.FeeRecord) []MonthlyRevenue {
	buckets := make(map[string]*MonthlyRevenue)
	for _, fee := range fees {
		if fee.Status != feesdomain.StatusPaid {
			continue
		}
		month, ok := monthOf(fee.PaymentDate)
		if !ok {
			month, ok = monthOf(fee.DueDate)
		}
		if !ok {
			continue
		}
		bucket, exists := buckets[month]
		if !exists {
			bucket = &MonthlyRevenue{Month: month}
			buckets[month] = bucket
		}
		bucket.Total += fee.Amount
		bucket.Count++
	}

	result := lo.Map(lo.Values(buckets), func(b *MonthlyRevenue, _ int) MonthlyRevenue { return *b })
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result
}

func monthOf(date string) (string, bool) {
	parsed, err := time.Parse(time.DateOnly, strings.TrimSpace(date))
	if err != nil {
		return "", false
	}
	return parsed.Format("2006-01"), true
}

// OpenTicketCategories counts OPEN tickets per category, most frequent first.
func OpenTicketCategories(tickets []ticketsdomain.SupportTicket) []CategoryCount {
	open := lo.Filter(tickets, func(t ticketsdomain.SupportTicket, _ int) bool {
		return t.Status == ticketsdomain.StatusOpen
	})
	counts := lo.CountValuesBy(open, func(t ticketsdomain.SupportTicket) string { return t.Category })

	result := lo.MapToSlice(counts, func(category string, count int) CategoryCount {
		return CategoryCount{Category: category, Count: count}
	})
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Category < result[j].Category
	})
	return result
}

// Conversations lists occupied rooms in catalog order, at most limit of them,
// each with the last message of its thread.
func Conversations(rooms []roomsdomain.Room, residents []residentsdomain.Resident, messages []messagesdomain.ChatMessage, limit int) []Conversation {
	occupied := lo.Filter(rooms, func(room roomsdomain.Room, _ int) bool {
		return Occupancy(room.ID, residents) > 0
	})
	if limit > 0 && len(occupied) > limit {
		occupied = occupied[:limit]
	}

	return lo.Map(occupied, func(room roomsdomain.Room, _ int) Conversation {
		conv := Conversation{
			Room:        room,
			Occupancy:   Occupancy(room.ID, residents),
			LastMessage: NoMessagesPreview,
		}
		thread := lo.Filter(messages, func(m messagesdomain.ChatMessage, _ int) bool { return m.RoomID == room.ID })
		if len(thread) > 0 {
			last := thread[len(thread)-1]
			conv.LastMessage = last.Text
			conv.LastTimestamp = last.Timestamp
		}
		return conv
	})
}

// InsightContext renders the figures the insight prompt is grounded on.
func InsightContext(d AdminDashboard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Occupancy: %d%% (%d of %d beds filled). ", d.OccupancyRate, d.TotalResidents, d.TotalCapacity)
	fmt.Fprintf(&b, "Revenue collected: %.0f. ", d.Revenue)
	fmt.Fprintf(&b, "Pending dues: %.0f across %d residents. ", d.PendingAmount, len(d.PendingDues))
	fmt.Fprintf(&b, "Open tickets: %d", d.OpenTickets)
	if len(d.TicketCategories) > 0 {
		parts := lo.Map(d.TicketCategories, func(c CategoryCount, _ int) string {
			return fmt.Sprintf("%s: %d", c.Category, c.Count)
		})
		fmt.Fprintf(&b, " (%s)", strings.Join(parts, ", "))
	}
	b.WriteString(".")
	return b.String()
}
