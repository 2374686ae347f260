package handler

import (
	"errors"
	"net/http"
	"strings"

	authdomain "pg-connect/internal/domain/auth"
	viewsdomain "pg-connect/internal/domain/views"
	"pg-connect/internal/transport/httpserver/middleware"
)

type selectViewRequest struct {
	View       string `json:"view"`
	ResidentID int64  `json:"resident_id"`
	RoomID     int64  `json:"room_id"`
}

func (h *Handlers) SelectView(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid or expired session")
		return
	}
	var req selectViewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json")
		return
	}

	view := strings.ToLower(strings.TrimSpace(req.View))
	updated, err := h.Views.Select(session.Token, session.Role, view, viewsdomain.Selection{
		ResidentID: req.ResidentID,
		RoomID:     req.RoomID,
	})
	if err != nil {
		switch {
		case errors.Is(err, viewsdomain.ErrUnknownView):
			writeError(w, http.StatusBadRequest, "unknown_view", "unknown view for this role")
		case errors.Is(err, authdomain.ErrSessionNotFound):
			writeError(w, http.StatusUnauthorized, "invalid_session", "invalid or expired session")
		default:
			h.log.InternalError("views.select: update session failed", err, "view", view)
			writeInternal(w)
		}
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) RenderView(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid or expired session")
		return
	}

	rendered, err := h.Views.Render(r.Context(), session)
	if err != nil {
		if errors.Is(err, viewsdomain.ErrUnknownView) {
			writeError(w, http.StatusBadRequest, "unknown_view", "unknown view for this role")
			return
		}
		h.log.InternalError("views.render: render failed", err, "view", session.ActiveView)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, rendered)
}
