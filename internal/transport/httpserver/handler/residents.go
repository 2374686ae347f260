package handler

import (
	"errors"
	"net/http"

	feesdomain "pg-connect/internal/domain/fees"
	residentsdomain "pg-connect/internal/domain/residents"
)

type addResidentRequest struct {
	RoomID   int64  `json:"room_id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	JoinDate string `json:"join_date"`
	State    string `json:"state"`
}

type addResidentResponse struct {
	Resident   residentsdomain.Resident `json:"resident"`
	InitialFee *feesdomain.FeeRecord    `json:"initial_fee,omitempty"`
}

func (h *Handlers) ListResidents(w http.ResponseWriter, r *http.Request) {
	items, err := h.Residents.List(r.Context())
	if err != nil {
		h.log.InternalError("residents.list: list failed", err)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, newItems(items))
}

func (h *Handlers) AddResident(w http.ResponseWriter, r *http.Request) {
	var req addResidentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json")
		return
	}
	joinDate, err := parseDateParam(req.JoinDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid join_date")
		return
	}

	resident, fee, err := h.Residents.Add(r.Context(), residentsdomain.AddResidentInput{
		RoomID:   req.RoomID,
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		JoinDate: joinDate,
		State:    req.State,
	})
	if err != nil {
		switch {
		case errors.Is(err, residentsdomain.ErrNameRequired), errors.Is(err, residentsdomain.ErrPhoneRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		case resident != nil:
			// Stored, but the joining fee was not raised.
			h.log.InternalError("residents.add: initial fee failed", err, "resident_id", resident.ID)
		default:
			h.log.InternalError("residents.add: add failed", err)
			writeInternal(w)
			return
		}
	}

	writeJSON(w, http.StatusCreated, addResidentResponse{Resident: *resident, InitialFee: fee})
}

func (h *Handlers) GetResident(w http.ResponseWriter, r *http.Request) {
	residentID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	detail, err := h.Dashboard.ResidentDetail(r.Context(), residentID)
	if err != nil {
		if errors.Is(err, residentsdomain.ErrResidentNotFound) {
			h.log.BusinessError("residents.get: resident not found", err, "resident_id", residentID)
			writeError(w, http.StatusNotFound, "resident_not_found", "resident not found")
			return
		}
		h.log.InternalError("residents.get: derive failed", err, "resident_id", residentID)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *Handlers) PayResidentFees(w http.ResponseWriter, r *http.Request) {
	residentID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	paid, err := h.Fees.PayOutstanding(r.Context(), residentID)
	if err != nil {
		h.log.InternalError("residents.pay_fees: update failed", err, "resident_id", residentID)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, newItems(paid))
}
