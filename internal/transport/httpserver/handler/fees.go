package handler

import (
	"errors"
	"net/http"
	"strings"

	feesdomain "pg-connect/internal/domain/fees"
	"pg-connect/internal/transport/httpserver/middleware"
)

type createFeeRequest struct {
	ResidentID int64   `json:"resident_id"`
	Amount     float64 `json:"amount"`
	DueDate    string  `json:"due_date"`
	Status     string  `json:"status"`
}

type updateFeeRequest struct {
	Status string `json:"status"`
}

// ListFees returns every fee for admins and the caller's own fees for residents.
func (h *Handlers) ListFees(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid or expired session")
		return
	}

	var (
		items []feesdomain.FeeRecord
		err   error
	)
	if session.IsAdmin() {
		items, err = h.Fees.List(r.Context())
	} else {
		items, err = h.Fees.ListByResident(r.Context(), session.ResidentID)
	}
	if err != nil {
		h.log.InternalError("fees.list: list failed", err, "role", session.Role)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, newItems(items))
}

func (h *Handlers) CreateFee(w http.ResponseWriter, r *http.Request) {
	var req createFeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json")
		return
	}
	dueDate, err := parseDateParam(req.DueDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid due_date")
		return
	}

	fee, err := h.Fees.Create(r.Context(), feesdomain.CreateFeeInput{
		ResidentID: req.ResidentID,
		Amount:     req.Amount,
		DueDate:    dueDate,
		Status:     feesdomain.PaymentStatus(strings.ToUpper(strings.TrimSpace(req.Status))),
	})
	if err != nil {
		if errors.Is(err, feesdomain.ErrInvalidAmount) || errors.Is(err, feesdomain.ErrInvalidStatus) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		h.log.InternalError("fees.create: create failed", err, "resident_id", req.ResidentID)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusCreated, fee)
}

// UpdateFeeStatus lets admins set any status. Residents may only mark their
// own fees PAID.
func (h *Handlers) UpdateFeeStatus(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid or expired session")
		return
	}
	feeID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	var req updateFeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json")
		return
	}
	status := feesdomain.PaymentStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	if !session.IsAdmin() {
		fee, err := h.Fees.Get(r.Context(), feeID)
		if err != nil {
			h.feeError(w, "fees.update_status", err, feeID)
			return
		}
		if fee.ResidentID != session.ResidentID || status != feesdomain.StatusPaid {
			writeError(w, http.StatusForbidden, "forbidden", "residents may only pay their own fees")
			return
		}
	}

	updated, err := h.Fees.UpdateStatus(r.Context(), feeID, status)
	if err != nil {
		h.feeError(w, "fees.update_status", err, feeID)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) feeError(w http.ResponseWriter, op string, err error, feeID int64) {
	switch {
	case errors.Is(err, feesdomain.ErrFeeNotFound):
		h.log.BusinessError(op+": fee not found", err, "fee_id", feeID)
		writeError(w, http.StatusNotFound, "fee_not_found", "fee not found")
	case errors.Is(err, feesdomain.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		h.log.InternalError(op+": update failed", err, "fee_id", feeID)
		writeInternal(w)
	}
}
