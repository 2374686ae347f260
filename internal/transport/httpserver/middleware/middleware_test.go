package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	authdomain "pg-connect/internal/domain/auth"
	"pg-connect/pkg/logger"
)

type fakeResolver map[string]authdomain.Session

func (f fakeResolver) Session(token string) (*authdomain.Session, error) {
	s, ok := f[token]
	if !ok {
		return nil, authdomain.ErrSessionNotFound
	}
	return &s, nil
}

func protected(role authdomain.Role) http.Handler {
	auth := NewSessionAuth(fakeResolver{
		"admin-token":    {Token: "admin-token", Role: authdomain.RoleAdmin},
		"resident-token": {Token: "resident-token", Role: authdomain.RoleResident, ResidentID: 2},
	}, logger.Nop())
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("X-Role", string(session.Role))
		w.WriteHeader(http.StatusOK)
	})
	return auth.Middleware(RequireRole(role)(final))
}

func TestSessionAuth(t *testing.T) {
	cases := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic admin-token", status: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "wrong role", header: "Bearer resident-token", status: http.StatusForbidden},
		{name: "admin", header: "bearer admin-token", status: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			protected(authdomain.RoleAdmin).ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	handler := NewCORS([]string{"http://localhost:5173/", " "})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/residents", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected preflight 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Fatalf("expected allowed origin header, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/residents", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTeapot || rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("expected pass-through without CORS headers, got %d %q", rec.Code, rec.Header().Get("Access-Control-Allow-Origin"))
	}

	wildcard := NewCORS([]string{"*"})(http.NotFoundHandler())
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://any.example")
	rec = httptest.NewRecorder()
	wildcard.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://any.example" {
		t.Fatalf("expected wildcard to echo origin")
	}
}
