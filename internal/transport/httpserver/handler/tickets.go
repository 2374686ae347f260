package handler

import (
	"errors"
	"net/http"
	"strings"

	ticketsdomain "pg-connect/internal/domain/tickets"
	"pg-connect/internal/transport/httpserver/middleware"
)

type createTicketRequest struct {
	ResidentID  int64  `json:"resident_id"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type updateTicketRequest struct {
	Status string `json:"status"`
}

func (h *Handlers) ListTickets(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid or expired session")
		return
	}

	var (
		items []ticketsdomain.SupportTicket
		err   error
	)
	if session.IsAdmin() {
		items, err = h.Tickets.List(r.Context())
	} else {
		items, err = h.Tickets.ListByResident(r.Context(), session.ResidentID)
	}
	if err != nil {
		h.log.InternalError("tickets.list: list failed", err, "role", session.Role)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, newItems(items))
}

// CreateTicket files a ticket for the calling resident. Admins name the
// resident explicitly.
func (h *Handlers) CreateTicket(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid or expired session")
		return
	}
	var req createTicketRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json")
		return
	}

	residentID := session.ResidentID
	if session.IsAdmin() {
		if req.ResidentID <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_request", "resident_id is required")
			return
		}
		residentID = req.ResidentID
	}

	ticket, err := h.Tickets.Create(r.Context(), ticketsdomain.CreateTicketInput{
		ResidentID:  residentID,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, ticketsdomain.ErrDescriptionRequired) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		h.log.InternalError("tickets.create: create failed", err, "resident_id", residentID)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}

func (h *Handlers) UpdateTicketStatus(w http.ResponseWriter, r *http.Request) {
	ticketID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	var req updateTicketRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json")
		return
	}

	ticket, err := h.Tickets.UpdateStatus(r.Context(), ticketID, ticketsdomain.Status(strings.ToUpper(strings.TrimSpace(req.Status))))
	if err != nil {
		switch {
		case errors.Is(err, ticketsdomain.ErrTicketNotFound):
			h.log.BusinessError("tickets.update_status: ticket not found", err, "ticket_id", ticketID)
			writeError(w, http.StatusNotFound, "ticket_not_found", "ticket not found")
		case errors.Is(err, ticketsdomain.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			h.log.InternalError("tickets.update_status: update failed", err, "ticket_id", ticketID)
			writeInternal(w)
		}
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}
