package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	residentsdomain "pg-connect/internal/domain/residents"
)

type mapSessions struct {
	items map[string]Session
}

func newMapSessions() *mapSessions {
	return &mapSessions{items: make(map[string]Session)}
}

func (m *mapSessions) Get(token string) (*Session, bool) {
	s, ok := m.items[token]
	if !ok {
		return nil, false
	}
	return &s, true
}

func (m *mapSessions) Set(session *Session, ttl time.Duration) {
	m.items[session.Token] = *session
}

func (m *mapSessions) Update(token string, fn func(*Session)) (*Session, bool) {
	s, ok := m.items[token]
	if !ok {
		return nil, false
	}
	fn(&s)
	m.items[token] = s
	return &s, true
}

func (m *mapSessions) Delete(token string) {
	delete(m.items, token)
}

type fakeDirectory struct {
	residents []residentsdomain.Resident
	err       error
}

func (d fakeDirectory) FindByPhone(ctx context.Context, phone string) (*residentsdomain.Resident, error) {
	if d.err != nil {
		return nil, d.err
	}
	for _, r := range d.residents {
		if r.Phone == phone {
			return &r, nil
		}
	}
	return nil, residentsdomain.ErrResidentNotFound
}

func newTestService(t *testing.T) (*Service, *mapSessions) {
	t.Helper()
	sessions := newMapSessions()
	directory := fakeDirectory{residents: []residentsdomain.Resident{
		{ID: 1, RoomID: 101, Name: "Aarav Patel", Phone: "9876543210"},
		{ID: 7, RoomID: 102, Name: "Duplicate", Phone: "9876543210"},
		{ID: 2, RoomID: 101, Name: "Rohan Sharma", Phone: "9876543211"},
	}}
	svc, err := NewService(sessions, directory, AdminCredentials{Username: "admin", Password: "admin123"}, time.Hour)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.now = func() time.Time { return time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC) }
	return svc, sessions
}

func TestLoginAdminRequiresExactPair(t *testing.T) {
	svc, sessions := newTestService(t)

	session, err := svc.LoginAdmin("admin", "admin123")
	if err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}
	if session.Role != RoleAdmin || session.ActiveView != DefaultAdminView || session.Token == "" {
		t.Fatalf("unexpected session %+v", session)
	}
	if !session.ExpiresAt.Equal(session.CreatedAt.Add(time.Hour)) {
		t.Fatalf("expected expiry after ttl, got %v", session.ExpiresAt)
	}
	if _, ok := sessions.items[session.Token]; !ok {
		t.Fatalf("expected session to be stored")
	}

	attempts := [][2]string{{"Admin", "admin123"}, {"admin", "admin1234"}, {"admin ", "admin123"}, {"", ""}}
	for _, pair := range attempts {
		if _, err := svc.LoginAdmin(pair[0], pair[1]); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for %q/%q, got %v", pair[0], pair[1], err)
		}
	}
}

func TestLoginAdminWithConfiguredHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	svc, err := NewService(newMapSessions(), fakeDirectory{}, AdminCredentials{Username: "warden", PasswordHash: string(hash), Password: "ignored"}, 0)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.LoginAdmin("warden", "s3cret"); err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}
	if _, err := svc.LoginAdmin("warden", "ignored"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected plain password to be ignored when a hash is set, got %v", err)
	}
	if svc.ttl != DefaultSessionTTL {
		t.Fatalf("expected default ttl, got %v", svc.ttl)
	}
}

func TestNewServiceRejectsMalformedHash(t *testing.T) {
	if _, err := NewService(newMapSessions(), fakeDirectory{}, AdminCredentials{Username: "admin", PasswordHash: "plain"}, time.Hour); err == nil {
		t.Fatalf("expected malformed hash to fail")
	}
}

func TestLoginResidentIgnoresPassword(t *testing.T) {
	svc, _ := newTestService(t)

	session, err := svc.Login(context.Background(), LoginInput{Role: RoleResident, Identifier: "9876543210", Password: "anything"})
	if err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}
	if session.ResidentID != 1 || session.ActiveView != DefaultResidentView {
		t.Fatalf("expected first matching resident, got %+v", session)
	}

	if _, err := svc.Login(context.Background(), LoginInput{Role: RoleResident, Identifier: "0000000000"}); !errors.Is(err, ErrPhoneNotFound) {
		t.Fatalf("expected ErrPhoneNotFound, got %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginInput{Role: "GUEST"}); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestLoginResidentPropagatesLookupErrors(t *testing.T) {
	boom := errors.New("directory unavailable")
	svc, err := NewService(newMapSessions(), fakeDirectory{err: boom}, AdminCredentials{Username: "admin", Password: "admin123"}, time.Hour)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if _, err := svc.LoginResident(context.Background(), "9876543210"); !errors.Is(err, boom) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}

func TestLogoutDropsSessionOnly(t *testing.T) {
	svc, sessions := newTestService(t)

	session, _ := svc.LoginAdmin("admin", "admin123")
	svc.Logout(session.Token)

	if _, err := svc.Session(session.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if len(sessions.items) != 0 {
		t.Fatalf("expected no sessions, got %d", len(sessions.items))
	}
	if _, err := svc.Session(""); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected empty token to be rejected, got %v", err)
	}
}

func TestUpdateSession(t *testing.T) {
	svc, _ := newTestService(t)
	session, _ := svc.LoginAdmin("admin", "admin123")

	updated, err := svc.UpdateSession(session.Token, func(s *Session) { s.ActiveView = "residents" })
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.ActiveView != "residents" {
		t.Fatalf("expected residents view, got %q", updated.ActiveView)
	}
	if _, err := svc.UpdateSession("missing", func(*Session) {}); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
