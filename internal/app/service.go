package app

import (
	"context"

	"textile-finance/internal/core"
)

// ApplicationService is the single interface all UI adapters (CLI, Web) call.
// It decouples presentation from the calculation core and the ledger store.
// Implementations must contain no fmt.Println and no display logic of any kind.
type ApplicationService interface {
	// CalculateCommission validates the input at the boundary and returns the commission split.
	CalculateCommission(ctx context.Context, in core.CommissionInput) (*core.CommissionResult, error)

	// PostCommission calculates the split and posts the agency and staff payables to the ledger.
	PostCommission(ctx context.Context, req PostCommissionRequest) (*PostingResult, error)

	// CalculateLandedCost aggregates cost items per type. Unclassified items are logged.
	CalculateLandedCost(ctx context.Context, items []core.LandedCostItem) (*core.LandedCostBreakdown, error)

	// AnalyzeProfit returns gross/net profit and margins for one order.
	AnalyzeProfit(ctx context.Context, req ProfitRequest) (*core.ProfitAnalysis, error)

	// RevalueBalances revalues open foreign-currency balances. Balances without a
	// current rate are revalued at the rate source's rate for AsOf.
	RevalueBalances(ctx context.Context, req RevaluationRequest) (*RevaluationResult, error)

	// PostFxRevaluation revalues one balance and posts the unrealized gain or loss.
	// A zero movement returns core.ErrNothingToPost.
	PostFxRevaluation(ctx context.Context, req FxPostRequest) (*PostingResult, error)

	// ClassifyCostLine asks the AI classifier to turn a free-text cost line into a cost item.
	// The result is a suggestion and must be confirmed by a person before use.
	ClassifyCostLine(ctx context.Context, text string) (*ClassifyResult, error)

	// GetBalances returns per-account balances of non-cancelled ledger entries.
	GetBalances(ctx context.Context) (*BalancesResult, error)

	// CancelPosting marks both halves of a posting as cancelled.
	CancelPosting(ctx context.Context, postingID, reason string) error
}
