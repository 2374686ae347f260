package views

import (
	"context"
	"errors"
	"testing"

	authdomain "pg-connect/internal/domain/auth"
	dashboarddomain "pg-connect/internal/domain/dashboard"
	feesdomain "pg-connect/internal/domain/fees"
	insightdomain "pg-connect/internal/domain/insight"
	messagesdomain "pg-connect/internal/domain/messages"
	residentsdomain "pg-connect/internal/domain/residents"
	roomsdomain "pg-connect/internal/domain/rooms"
)

type fakeSessions struct {
	items map[string]authdomain.Session
}

func (f *fakeSessions) UpdateSession(token string, fn func(*authdomain.Session)) (*authdomain.Session, error) {
	s, ok := f.items[token]
	if !ok {
		return nil, authdomain.ErrSessionNotFound
	}
	fn(&s)
	f.items[token] = s
	return &s, nil
}

type fakeDashboard struct {
	snap    dashboarddomain.Snapshot
	err     error
	context int
}

func (f *fakeDashboard) Snapshot(ctx context.Context) (dashboarddomain.Snapshot, error) {
	return f.snap, f.err
}

func (f *fakeDashboard) InsightContext(ctx context.Context) (string, error) {
	f.context++
	return "ctx", nil
}

type fakePanel struct {
	refreshes int
	latest    insightdomain.Latest
}

func (p *fakePanel) Latest() insightdomain.Latest { return p.latest }

func (p *fakePanel) RefreshAsync(build func(ctx context.Context) (string, error)) <-chan struct{} {
	p.refreshes++
	done := make(chan struct{})
	close(done)
	return done
}

func snapshot() dashboarddomain.Snapshot {
	return dashboarddomain.Snapshot{
		Rooms: []roomsdomain.Room{
			{ID: 101, Number: "101", MaxCapacity: 4},
			{ID: 102, Number: "102", MaxCapacity: 4},
		},
		Residents: []residentsdomain.Resident{
			{ID: 1, RoomID: 101, Name: "Aarav Patel", Phone: "9876543210"},
			{ID: 3, RoomID: 102, Name: "Arjun Reddy", Phone: "9876543212"},
		},
		Fees: []feesdomain.FeeRecord{
			{ID: 1, ResidentID: 3, Amount: 6000, DueDate: "2023-09-01", Status: feesdomain.StatusOverdue},
		},
		Messages: []messagesdomain.ChatMessage{
			{ID: 1, RoomID: 101, Sender: messagesdomain.SenderResident, Text: "Gate?", Timestamp: "10:30 AM"},
			{ID: 2, RoomID: 102, Sender: messagesdomain.SenderAdmin, Text: "Water off at 3", Timestamp: "11:00 AM"},
		},
	}
}

func newTestRouter() (*Router, *fakeSessions, *fakePanel) {
	sessions := &fakeSessions{items: map[string]authdomain.Session{
		"admin":    {Token: "admin", Role: authdomain.RoleAdmin, ActiveView: Dashboard},
		"resident": {Token: "resident", Role: authdomain.RoleResident, ResidentID: 3, ActiveView: Home},
	}}
	panel := &fakePanel{latest: insightdomain.Latest{Text: "All clear."}}
	return NewRouter(sessions, &fakeDashboard{snap: snapshot()}, panel), sessions, panel
}

func TestSelectValidatesViewPerRole(t *testing.T) {
	router, _, _ := newTestRouter()

	if _, err := router.Select("resident", authdomain.RoleResident, Dashboard, Selection{}); !errors.Is(err, ErrUnknownView) {
		t.Fatalf("expected ErrUnknownView for resident dashboard, got %v", err)
	}
	if _, err := router.Select("admin", authdomain.RoleAdmin, Home, Selection{}); !errors.Is(err, ErrUnknownView) {
		t.Fatalf("expected ErrUnknownView for admin home, got %v", err)
	}
	if _, err := router.Select("missing", authdomain.RoleAdmin, Residents, Selection{}); !errors.Is(err, authdomain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSelectStoresSelectionAndRefreshesDashboard(t *testing.T) {
	router, sessions, panel := newTestRouter()

	session, err := router.Select("admin", authdomain.RoleAdmin, ResidentDetail, Selection{ResidentID: 3})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session.ActiveView != ResidentDetail || session.SelectedResidentID != 3 {
		t.Fatalf("unexpected session %+v", session)
	}
	if panel.refreshes != 0 {
		t.Fatalf("expected no refresh yet, got %d", panel.refreshes)
	}

	if _, err := router.Select("admin", authdomain.RoleAdmin, Dashboard, Selection{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if panel.refreshes != 1 {
		t.Fatalf("expected one refresh, got %d", panel.refreshes)
	}
	if sessions.items["admin"].SelectedResidentID != 3 {
		t.Fatalf("expected earlier selection to be kept")
	}
}

func TestRenderResidentDetailPlaceholder(t *testing.T) {
	router, _, _ := newTestRouter()

	out, err := router.Render(context.Background(), authdomain.Session{Role: authdomain.RoleAdmin, ActiveView: ResidentDetail, SelectedResidentID: 99})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.NotFound != ResidentNotFound || out.Data != nil {
		t.Fatalf("expected placeholder, got %+v", out)
	}

	out, err = router.Render(context.Background(), authdomain.Session{Role: authdomain.RoleAdmin, ActiveView: ResidentDetail, SelectedResidentID: 3})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	detail, ok := out.Data.(dashboarddomain.ResidentDetail)
	if !ok || detail.Resident.Name != "Arjun Reddy" || !detail.Summary.IsPending {
		t.Fatalf("unexpected detail %+v", out.Data)
	}
}

func TestRenderDashboardIncludesInsight(t *testing.T) {
	router, _, _ := newTestRouter()

	out, err := router.Render(context.Background(), authdomain.Session{Role: authdomain.RoleAdmin})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	data, ok := out.Data.(DashboardView)
	if out.View != Dashboard || !ok {
		t.Fatalf("expected dashboard view, got %+v", out)
	}
	if data.Insight.Text != "All clear." || data.Dashboard.TotalResidents != 2 || data.Dashboard.PendingAmount != 6000 {
		t.Fatalf("unexpected dashboard %+v", data)
	}
}

func TestRenderMessagesPerRole(t *testing.T) {
	router, _, _ := newTestRouter()

	out, err := router.Render(context.Background(), authdomain.Session{Role: authdomain.RoleAdmin, ActiveView: Messages})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	admin := out.Data.(AdminMessagesView)
	if len(admin.Conversations) != 2 || admin.Thread != nil {
		t.Fatalf("expected conversations without thread, got %+v", admin)
	}

	out, _ = router.Render(context.Background(), authdomain.Session{Role: authdomain.RoleAdmin, ActiveView: Messages, SelectedChatRoom: 102})
	admin = out.Data.(AdminMessagesView)
	if len(admin.Thread) != 1 || admin.Thread[0].Text != "Water off at 3" {
		t.Fatalf("unexpected thread %+v", admin.Thread)
	}

	out, _ = router.Render(context.Background(), authdomain.Session{Role: authdomain.RoleResident, ResidentID: 3, ActiveView: Messages})
	own := out.Data.(ResidentMessagesView)
	if own.RoomID != 102 || len(own.Thread) != 1 {
		t.Fatalf("unexpected resident thread %+v", own)
	}

	out, _ = router.Render(context.Background(), authdomain.Session{Role: authdomain.RoleResident, ResidentID: 42, ActiveView: Messages})
	own = out.Data.(ResidentMessagesView)
	if own.RoomID != roomsdomain.DefaultRoomID || len(own.Thread) != 1 || own.Thread[0].Text != "Gate?" {
		t.Fatalf("expected fallback room thread, got %+v", own)
	}
}

func TestRenderResidentsAndBlueprint(t *testing.T) {
	router, _, _ := newTestRouter()

	out, _ := router.Render(context.Background(), authdomain.Session{Role: authdomain.RoleAdmin, ActiveView: Residents})
	residents := out.Data.(ResidentsView)
	if len(residents.PendingDues) != 1 || len(residents.ClearDues) != 1 || len(residents.AvailableRooms) != 2 {
		t.Fatalf("unexpected residents view %+v", residents)
	}

	out, _ = router.Render(context.Background(), authdomain.Session{Role: authdomain.RoleAdmin, ActiveView: Blueprint})
	blueprint := out.Data.(BlueprintView)
	if blueprint.Code != insightdomain.BlueprintPlaceholder || len(blueprint.Components) != 5 {
		t.Fatalf("unexpected blueprint view %+v", blueprint)
	}
}

func TestRenderRejectsForeignView(t *testing.T) {
	router, _, _ := newTestRouter()

	if _, err := router.Render(context.Background(), authdomain.Session{Role: authdomain.RoleResident, ActiveView: Blueprint}); !errors.Is(err, ErrUnknownView) {
		t.Fatalf("expected ErrUnknownView, got %v", err)
	}
}
