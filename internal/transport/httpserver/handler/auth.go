package handler

import (
	"errors"
	"net/http"
	"strings"

	authdomain "pg-connect/internal/domain/auth"
	"pg-connect/internal/transport/httpserver/middleware"
)

type loginRequest struct {
	Role       string `json:"role"`
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type loginResponse struct {
	Token   string             `json:"token"`
	Session authdomain.Session `json:"session"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json")
		return
	}

	role := authdomain.Role(strings.ToUpper(strings.TrimSpace(req.Role)))
	session, err := h.Auth.Login(r.Context(), authdomain.LoginInput{
		Role:       role,
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrInvalidRole):
			writeError(w, http.StatusBadRequest, "invalid_request", "role must be ADMIN or RESIDENT")
		case errors.Is(err, authdomain.ErrInvalidCredentials):
			h.log.BusinessError("auth.login: invalid credentials", err, "role", role)
			writeError(w, http.StatusUnauthorized, "invalid_credentials", authdomain.InvalidCredentialsMessage)
		case errors.Is(err, authdomain.ErrPhoneNotFound):
			h.log.BusinessError("auth.login: phone not found", err, "role", role)
			writeError(w, http.StatusUnauthorized, "phone_not_found", authdomain.PhoneNotFoundMessage)
		default:
			h.log.InternalError("auth.login: login failed", err, "role", role)
			writeInternal(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: session.Token, Session: *session})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid or expired session")
		return
	}
	h.Auth.Logout(session.Token)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid or expired session")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handlers) Notifications(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid or expired session")
		return
	}

	items, err := h.Dashboard.Notifications(r.Context(), session.IsAdmin(), session.ResidentID)
	if err != nil {
		h.log.InternalError("auth.notifications: derive failed", err, "role", session.Role)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, newItems(items))
}
