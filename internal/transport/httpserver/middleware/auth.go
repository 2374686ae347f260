package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	authdomain "pg-connect/internal/domain/auth"
	"pg-connect/pkg/logger"
)

type SessionResolver interface {
	Session(token string) (*authdomain.Session, error)
}

type SessionAuth struct {
	sessions SessionResolver
	log      logger.Logger
}

type contextKey int

const sessionKey contextKey = iota

func NewSessionAuth(sessions SessionResolver, log logger.Logger) *SessionAuth {
	return &SessionAuth{sessions: sessions, log: log}
}

func (a *SessionAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		session, err := a.sessions.Session(token)
		if err != nil {
			a.log.Debug("auth: session rejected", "error", err)
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), *session)))
	})
}

// RequireRole must run after SessionAuth.Middleware.
func RequireRole(role authdomain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := SessionFromContext(r.Context())
			if !ok {
				unauthorized(w)
				return
			}
			if session.Role != role {
				writeError(w, http.StatusForbidden, "forbidden", "not allowed for this role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_session", "invalid or expired session")
}

func WithSession(ctx context.Context, session authdomain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

func SessionFromContext(ctx context.Context) (authdomain.Session, bool) {
	session, ok := ctx.Value(sessionKey).(authdomain.Session)
	if !ok || session.Token == "" {
		return authdomain.Session{}, false
	}
	return session, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
