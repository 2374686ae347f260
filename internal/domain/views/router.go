package views

import (
	"context"
	"errors"

	authdomain "pg-connect/internal/domain/auth"
	dashboarddomain "pg-connect/internal/domain/dashboard"
	insightdomain "pg-connect/internal/domain/insight"
	messagesdomain "pg-connect/internal/domain/messages"
	residentsdomain "pg-connect/internal/domain/residents"
)

type SessionUpdater interface {
	UpdateSession(token string, fn func(*authdomain.Session)) (*authdomain.Session, error)
}

type DashboardReader interface {
	Snapshot(ctx context.Context) (dashboarddomain.Snapshot, error)
	InsightContext(ctx context.Context) (string, error)
}

type InsightPanel interface {
	Latest() insightdomain.Latest
	RefreshAsync(build func(ctx context.Context) (string, error)) <-chan struct{}
}

type Router struct {
	sessions  SessionUpdater
	dashboard DashboardReader
	insight   InsightPanel
}

func NewRouter(sessions SessionUpdater, dashboard DashboardReader, insight InsightPanel) *Router {
	return &Router{
		sessions:  sessions,
		dashboard: dashboard,
		insight:   insight,
	}
}

// Select moves the session to view. Selecting the admin dashboard starts one
// background insight refresh.
func (r *Router) Select(token string, role authdomain.Role, view string, sel Selection) (*authdomain.Session, error) {
	if !Allowed(role, view) {
		return nil, ErrUnknownView
	}

	session, err := r.sessions.UpdateSession(token, func(s *authdomain.Session) {
		s.ActiveView = view
		if sel.ResidentID != 0 {
			s.SelectedResidentID = sel.ResidentID
		}
		if sel.RoomID != 0 {
			s.SelectedChatRoom = sel.RoomID
		}
	})
	if err != nil {
		return nil, err
	}

	if role == authdomain.RoleAdmin && view == Dashboard && r.insight != nil {
		r.insight.RefreshAsync(r.dashboard.InsightContext)
	}
	return session, nil
}

// Render builds the payload for the session's active view. A referenced
// record that no longer exists renders a placeholder instead of failing.
func (r *Router) Render(ctx context.Context, session authdomain.Session) (Rendered, error) {
	view := session.ActiveView
	if view == "" {
		view = authdomain.DefaultResidentView
		if session.IsAdmin() {
			view = authdomain.DefaultAdminView
		}
	}
	if !Allowed(session.Role, view) {
		return Rendered{}, ErrUnknownView
	}

	snap, err := r.dashboard.Snapshot(ctx)
	if err != nil {
		return Rendered{}, err
	}

	out := Rendered{View: view}
	switch {
	case view == Dashboard:
		data := DashboardView{Dashboard: dashboarddomain.BuildAdmin(snap)}
		if r.insight != nil {
			data.Insight = r.insight.Latest()
		}
		out.Data = data
	case view == Residents:
		pending, settled := dashboarddomain.PartitionByPending(dashboarddomain.SummarizeResidentFees(snap.Residents, snap.Fees, snap.Rooms))
		out.Data = ResidentsView{
			PendingDues:    pending,
			ClearDues:      settled,
			AvailableRooms: dashboarddomain.AvailableRooms(snap.Rooms, snap.Residents),
		}
	case view == ResidentDetail:
		detail, err := dashboarddomain.BuildResidentDetail(snap, session.SelectedResidentID)
		if errors.Is(err, residentsdomain.ErrResidentNotFound) {
			out.NotFound = ResidentNotFound
			return out, nil
		}
		if err != nil {
			return Rendered{}, err
		}
		out.Data = detail
	case view == Messages && session.IsAdmin():
		data := AdminMessagesView{
			Conversations: dashboarddomain.Conversations(snap.Rooms, snap.Residents, snap.Messages, dashboarddomain.ConversationLimit),
		}
		if session.SelectedChatRoom != 0 {
			data.SelectedRoom = session.SelectedChatRoom
			data.Thread = thread(snap.Messages, session.SelectedChatRoom)
		}
		out.Data = data
	case view == Messages:
		home := dashboarddomain.BuildResidentHome(snap, session.ResidentID)
		out.Data = ResidentMessagesView{
			RoomID:     home.RoomID,
			RoomNumber: home.RoomNumber,
			Thread:     thread(snap.Messages, home.RoomID),
		}
	case view == Blueprint:
		out.Data = BlueprintView{
			Components: insightdomain.Components(),
			Code:       insightdomain.BlueprintPlaceholder,
		}
	case view == Home:
		out.Data = dashboarddomain.BuildResidentHome(snap, session.ResidentID)
	}
	return out, nil
}

func thread(messages []messagesdomain.ChatMessage, roomID int64) []messagesdomain.ChatMessage {
	result := make([]messagesdomain.ChatMessage, 0)
	for _, m := range messages {
		if m.RoomID == roomID {
			result = append(result, m)
		}
	}
	return result
}
