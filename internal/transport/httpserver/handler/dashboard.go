package handler

import (
	"net/http"

	"pg-connect/internal/transport/httpserver/middleware"
)

func (h *Handlers) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.Dashboard.Admin(r.Context())
	if err != nil {
		h.log.InternalError("dashboard.admin: derive failed", err)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (h *Handlers) ResidentHome(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid or expired session")
		return
	}

	home, err := h.Dashboard.Resident(r.Context(), session.ResidentID)
	if err != nil {
		h.log.InternalError("dashboard.home: derive failed", err, "resident_id", session.ResidentID)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, home)
}

func (h *Handlers) ListRooms(w http.ResponseWriter, r *http.Request) {
	cards, err := h.Dashboard.RoomCards(r.Context())
	if err != nil {
		h.log.InternalError("dashboard.list_rooms: derive failed", err)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, newItems(cards))
}

func (h *Handlers) ListAvailableRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Dashboard.AvailableRooms(r.Context())
	if err != nil {
		h.log.InternalError("dashboard.available_rooms: derive failed", err)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, newItems(rooms))
}

func (h *Handlers) ListConversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.Dashboard.Conversations(r.Context())
	if err != nil {
		h.log.InternalError("dashboard.conversations: derive failed", err)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, newItems(conversations))
}
