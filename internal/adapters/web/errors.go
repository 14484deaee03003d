package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"textile-finance/internal/app"
	"textile-finance/internal/core"
	"textile-finance/internal/money"
	"textile-finance/internal/rates"
	"textile-finance/internal/store"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps service errors onto HTTP statuses.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, money.ErrInvalidDecimalFormat),
		errors.Is(err, money.ErrInvalidCurrency),
		errors.Is(err, core.ErrInvalidCommissionInput),
		errors.Is(err, core.ErrUnknownCostType),
		errors.Is(err, core.ErrNegativeAmount),
		errors.Is(err, core.ErrMixedCurrency),
		errors.Is(err, store.ErrUnbalanced),
		errors.Is(err, store.ErrMissingAccount),
		errors.Is(err, store.ErrNoAccountRule):
		writeError(w, r, err.Error(), "INVALID_INPUT", http.StatusBadRequest)
	case errors.Is(err, core.ErrNothingToPost):
		writeError(w, r, err.Error(), "NOTHING_TO_POST", http.StatusUnprocessableEntity)
	case errors.Is(err, store.ErrDuplicatePosting), errors.Is(err, store.ErrAlreadyCancelled):
		writeError(w, r, err.Error(), "CONFLICT", http.StatusConflict)
	case errors.Is(err, store.ErrPostingNotFound), errors.Is(err, rates.ErrRateNotFound):
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
	case errors.Is(err, app.ErrLedgerUnavailable),
		errors.Is(err, app.ErrRatesUnavailable),
		errors.Is(err, app.ErrClassifierUnavailable):
		writeError(w, r, err.Error(), "UNAVAILABLE", http.StatusServiceUnavailable)
	default:
		h.logger.Error("request failed",
			zapRequestID(r),
			zap.Error(err))
		writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}
