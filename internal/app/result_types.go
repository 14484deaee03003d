package app

import (
	"textile-finance/internal/ai"
	"textile-finance/internal/core"
	"textile-finance/internal/store"
)

// PostingResult is returned by posting operations.
type PostingResult struct {
	Commission *core.CommissionResult `json:"commission,omitempty"`
	Fx         *core.FxGainLossResult `json:"fx,omitempty"`
	Postings   []store.Posting        `json:"postings"`
}

// RevaluedBalance pairs an open balance with its revaluation.
type RevaluedBalance struct {
	Balance OpenBalance           `json:"balance"`
	Result  core.FxGainLossResult `json:"result"`
}

// RevaluationResult is returned by RevalueBalances.
type RevaluationResult struct {
	Balances    []RevaluedBalance `json:"balances"`
	NetMovement string            `json:"net_movement"`
}

// ClassifyResult is returned by ClassifyCostLine.
type ClassifyResult struct {
	Item       core.LandedCostItem   `json:"item"`
	Suggestion ai.CostLineSuggestion `json:"suggestion"`
}

// BalancesResult is returned by GetBalances.
type BalancesResult struct {
	Accounts []store.AccountBalance `json:"accounts"`
}
