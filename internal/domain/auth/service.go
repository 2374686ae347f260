package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	residentsdomain "pg-connect/internal/domain/residents"
)

const DefaultSessionTTL = 12 * time.Hour

type AdminCredentials struct {
	Username string
	// PasswordHash is a bcrypt hash. When empty, Password is hashed at startup.
	PasswordHash string
	Password     string
}

type Service struct {
	sessions  SessionStore
	residents ResidentFinder
	username  string
	hash      []byte
	ttl       time.Duration
	now       func() time.Time
	newToken  func() string
}

func NewService(sessions SessionStore, residents ResidentFinder, admin AdminCredentials, ttl time.Duration) (*Service, error) {
	hash := []byte(strings.TrimSpace(admin.PasswordHash))
	if len(hash) == 0 {
		generated, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		hash = generated
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("admin password hash: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return &Service{
		sessions:  sessions,
		residents: residents,
		username:  admin.Username,
		hash:      hash,
		ttl:       ttl,
		now:       time.Now,
		newToken:  func() string { return uuid.NewString() },
	}, nil
}

func (s *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	switch input.Role {
	case RoleAdmin:
		return s.LoginAdmin(input.Identifier, input.Password)
	case RoleResident:
		return s.LoginResident(ctx, input.Identifier)
	default:
		return nil, ErrInvalidRole
	}
}

// LoginAdmin requires the exact username and a password matching the hash.
// There is no lockout.
func (s *Service) LoginAdmin(username, password string) (*Session, error) {
	if username != s.username {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.open(RoleAdmin, 0, DefaultAdminView), nil
}

// LoginResident matches the first resident with exactly this phone number.
// No password is checked.
func (s *Service) LoginResident(ctx context.Context, phone string) (*Session, error) {
	resident, err := s.residents.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, residentsdomain.ErrResidentNotFound) {
			return nil, ErrPhoneNotFound
		}
		return nil, err
	}
	return s.open(RoleResident, resident.ID, DefaultResidentView), nil
}

func (s *Service) open(role Role, residentID int64, view string) *Session {
	now := s.now()
	session := &Session{
		Token:      s.newToken(),
		Role:       role,
		ResidentID: residentID,
		ActiveView: view,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.ttl),
	}
	s.sessions.Set(session, s.ttl)
	return session
}

func (s *Service) Session(token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	session, ok := s.sessions.Get(token)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *Service) UpdateSession(token string, fn func(*Session)) (*Session, error) {
	session, ok := s.sessions.Update(token, fn)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Logout drops the session. Stored collections are untouched.
func (s *Service) Logout(token string) {
	s.sessions.Delete(token)
}
