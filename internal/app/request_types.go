package app

import (
	"time"

	"textile-finance/internal/core"
)

// PostCommissionRequest is the input for posting an order's commission.
// The agency and staff payables are credited; the expense account takes the contra side.
type PostCommissionRequest struct {
	Commission            core.CommissionInput `json:"commission"`
	OrderNo               string               `json:"order_no"`
	Currency              string               `json:"currency"`
	ExchangeRate          string               `json:"exchange_rate"`
	AgencyPayableAccount  string               `json:"agency_payable_account"`
	StaffPayableAccount   string               `json:"staff_payable_account,omitempty"`
	CommissionExpenseAcct string               `json:"commission_expense_account"`
}

// ProfitRequest is the input for a per-order profit analysis.
type ProfitRequest struct {
	OrderID      string                `json:"order_id"`
	OrderNo      string                `json:"order_no"`
	SellingPrice string                `json:"selling_price"`
	Items        []core.LandedCostItem `json:"items"`
}

// OpenBalance is one open foreign-currency receivable to revalue.
// CurrentRate is optional; when empty the rate source is consulted.
type OpenBalance struct {
	ReferenceID string `json:"reference_id"`
	Currency    string `json:"currency"`
	Amount      string `json:"amount"`
	BookingRate string `json:"booking_rate"`
	CurrentRate string `json:"current_rate,omitempty"`
}

// RevaluationRequest is the input for a batch revaluation.
type RevaluationRequest struct {
	AsOf     time.Time     `json:"as_of"`
	Balances []OpenBalance `json:"balances"`
}

// FxPostRequest is the input for posting the revaluation of one balance.
type FxPostRequest struct {
	Balance           OpenBalance `json:"balance"`
	AsOf              time.Time   `json:"as_of"`
	ReceivableAccount string      `json:"receivable_account"`
	FxResultAccount   string      `json:"fx_result_account"`
}
