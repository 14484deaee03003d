package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"textile-finance/internal/ai"
	"textile-finance/internal/app"
	"textile-finance/internal/core"

	"github.com/go-chi/chi/v5"
)

// schemaTypes lists the request bodies whose JSON schema is served at /api/schema/{name}.
var schemaTypes = map[string]any{
	"commission":       core.CommissionInput{},
	"commission-post":  app.PostCommissionRequest{},
	"landed-cost-item": core.LandedCostItem{},
	"profit":           app.ProfitRequest{},
	"revaluation":      app.RevaluationRequest{},
	"fx-post":          app.FxPostRequest{},
}

// decodeJSON decodes the request body into v and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, "request body too large", "BODY_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON: "+err.Error(), "INVALID_JSON", http.StatusBadRequest)
		return false
	}
	return true
}

// schema handles GET /api/schema/{name}.
func (h *Handler) schema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	v, ok := schemaTypes[name]
	if !ok {
		writeError(w, r, "unknown schema "+name, "NOT_FOUND", http.StatusNotFound)
		return
	}
	s, err := ai.GenerateSchema(v)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, s)
}

// calculateCommission handles POST /api/commissions/calculate.
func (h *Handler) calculateCommission(w http.ResponseWriter, r *http.Request) {
	var in core.CommissionInput
	if !decodeJSON(w, r, &in) {
		return
	}
	res, err := h.svc.CalculateCommission(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// postCommission handles POST /api/commissions/post.
func (h *Handler) postCommission(w http.ResponseWriter, r *http.Request) {
	var req app.PostCommissionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.PostCommission(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// calculateLandedCost handles POST /api/landed-cost/calculate.
func (h *Handler) calculateLandedCost(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Items []core.LandedCostItem `json:"items"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	res, err := h.svc.CalculateLandedCost(r.Context(), body.Items)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// classifyCostLine handles POST /api/landed-cost/classify.
func (h *Handler) classifyCostLine(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Text == "" {
		writeError(w, r, "text is required", "INVALID_INPUT", http.StatusBadRequest)
		return
	}
	res, err := h.svc.ClassifyCostLine(r.Context(), body.Text)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// analyzeProfit handles POST /api/profit/analyze.
func (h *Handler) analyzeProfit(w http.ResponseWriter, r *http.Request) {
	var req app.ProfitRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.AnalyzeProfit(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// revalue handles POST /api/fx/revalue.
func (h *Handler) revalue(w http.ResponseWriter, r *http.Request) {
	var req app.RevaluationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.RevalueBalances(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// postFx handles POST /api/fx/post.
func (h *Handler) postFx(w http.ResponseWriter, r *http.Request) {
	var req app.FxPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.PostFxRevaluation(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// balances handles GET /api/ledger/balances.
func (h *Handler) balances(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.GetBalances(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// cancelPosting handles POST /api/ledger/postings/{id}/cancel.
func (h *Handler) cancelPosting(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Reason string `json:"reason"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.svc.CancelPosting(r.Context(), id, body.Reason); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "cancelled", "posting_id": id})
}
