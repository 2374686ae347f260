package handler

import (
	"errors"
	"net/http"
	"strings"

	insightdomain "pg-connect/internal/domain/insight"
)

type insightResponse struct {
	Text string `json:"text"`
}

type blueprintRequest struct {
	Component string `json:"component"`
}

type blueprintResponse struct {
	Component string `json:"component"`
	Code      string `json:"code"`
}

func (h *Handlers) GetInsight(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Insight.Latest())
}

// RefreshInsight generates synchronously. Generation failures still answer
// 200 with the fallback text.
func (h *Handlers) RefreshInsight(w http.ResponseWriter, r *http.Request) {
	dataContext, err := h.Dashboard.InsightContext(r.Context())
	if err != nil {
		h.log.InternalError("insight.refresh: derive context failed", err)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, insightResponse{Text: h.Insight.AdminInsight(r.Context(), dataContext)})
}

func (h *Handlers) GenerateBlueprint(w http.ResponseWriter, r *http.Request) {
	var req blueprintRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json")
		return
	}
	component := strings.ToLower(strings.TrimSpace(req.Component))

	code, err := h.Insight.Blueprint(r.Context(), component)
	if err != nil {
		if errors.Is(err, insightdomain.ErrUnknownComponent) {
			writeError(w, http.StatusBadRequest, "unknown_component", "component must be one of sql, entity, repo, service, controller")
			return
		}
		h.log.InternalError("insight.blueprint: generate failed", err, "component", component)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, blueprintResponse{Component: component, Code: code})
}
