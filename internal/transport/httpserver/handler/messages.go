package handler

import (
	"context"
	"errors"
	"net/http"

	authdomain "pg-connect/internal/domain/auth"
	messagesdomain "pg-connect/internal/domain/messages"
	residentsdomain "pg-connect/internal/domain/residents"
	roomsdomain "pg-connect/internal/domain/rooms"
	"pg-connect/internal/transport/httpserver/middleware"
)

type sendMessageRequest struct {
	Text string `json:"text"`
}

// ListRoomMessages returns one room's thread. Residents may only read their own room.
func (h *Handlers) ListRoomMessages(w http.ResponseWriter, r *http.Request) {
	session, roomID, ok := h.resolveRoom(w, r)
	if !ok {
		return
	}
	h.writeThread(w, r, session, roomID)
}

func (h *Handlers) SendRoomMessage(w http.ResponseWriter, r *http.Request) {
	session, roomID, ok := h.resolveRoom(w, r)
	if !ok {
		return
	}
	h.send(w, r, session, roomID)
}

// ListOwnMessages is the resident's room thread.
func (h *Handlers) ListOwnMessages(w http.ResponseWriter, r *http.Request) {
	session, roomID, ok := h.ownRoom(w, r)
	if !ok {
		return
	}
	h.writeThread(w, r, session, roomID)
}

func (h *Handlers) SendOwnMessage(w http.ResponseWriter, r *http.Request) {
	session, roomID, ok := h.ownRoom(w, r)
	if !ok {
		return
	}
	h.send(w, r, session, roomID)
}

func (h *Handlers) resolveRoom(w http.ResponseWriter, r *http.Request) (authdomain.Session, int64, bool) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid or expired session")
		return authdomain.Session{}, 0, false
	}
	roomID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return authdomain.Session{}, 0, false
	}
	if session.IsAdmin() {
		return session, roomID, true
	}

	own, err := h.residentRoom(r.Context(), session.ResidentID)
	if err != nil {
		h.log.InternalError("messages.resolve_room: lookup failed", err, "resident_id", session.ResidentID)
		writeInternal(w)
		return authdomain.Session{}, 0, false
	}
	if own != roomID {
		writeError(w, http.StatusForbidden, "forbidden", "residents may only use their own room")
		return authdomain.Session{}, 0, false
	}
	return session, roomID, true
}

func (h *Handlers) ownRoom(w http.ResponseWriter, r *http.Request) (authdomain.Session, int64, bool) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid or expired session")
		return authdomain.Session{}, 0, false
	}
	roomID, err := h.residentRoom(r.Context(), session.ResidentID)
	if err != nil {
		h.log.InternalError("messages.own_room: lookup failed", err, "resident_id", session.ResidentID)
		writeInternal(w)
		return authdomain.Session{}, 0, false
	}
	return session, roomID, true
}

// residentRoom falls back to the default room when the resident record is gone.
func (h *Handlers) residentRoom(ctx context.Context, residentID int64) (int64, error) {
	resident, err := h.Residents.Get(ctx, residentID)
	if errors.Is(err, residentsdomain.ErrResidentNotFound) {
		return roomsdomain.DefaultRoomID, nil
	}
	if err != nil {
		return 0, err
	}
	return resident.RoomID, nil
}

func (h *Handlers) writeThread(w http.ResponseWriter, r *http.Request, session authdomain.Session, roomID int64) {
	thread, err := h.Messages.ListByRoom(r.Context(), roomID)
	if err != nil {
		h.log.InternalError("messages.list: list failed", err, "room_id", roomID, "role", session.Role)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, newItems(thread))
}

func (h *Handlers) send(w http.ResponseWriter, r *http.Request, session authdomain.Session, roomID int64) {
	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json")
		return
	}

	sender := messagesdomain.SenderResident
	if session.IsAdmin() {
		sender = messagesdomain.SenderAdmin
	}
	msg, err := h.Messages.Send(r.Context(), messagesdomain.SendInput{
		RoomID: roomID,
		Sender: sender,
		Text:   req.Text,
	})
	if err != nil {
		if errors.Is(err, messagesdomain.ErrEmptyMessage) || errors.Is(err, messagesdomain.ErrRoomRequired) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		h.log.InternalError("messages.send: send failed", err, "room_id", roomID)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}
