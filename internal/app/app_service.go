package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"textile-finance/internal/ai"
	"textile-finance/internal/core"
	"textile-finance/internal/money"
	"textile-finance/internal/rates"
	"textile-finance/internal/store"

	"go.uber.org/zap"
)

var (
	ErrLedgerUnavailable     = errors.New("ledger store not configured")
	ErrRatesUnavailable      = errors.New("exchange rate source not configured")
	ErrClassifierUnavailable = errors.New("cost line classifier not configured")
)

type appService struct {
	ledger     store.LedgerStore
	rules      store.AccountResolver
	rates      rates.Source
	classifier ai.CostClassifier
	logger     *zap.Logger
}

// NewAppService constructs an appService that satisfies ApplicationService.
// ledger, rateSource and classifier may be nil; operations that need them then
// return the matching Err*Unavailable error while pure calculations keep working.
// With rules nil, posting requests must name every account.
func NewAppService(
	ledger store.LedgerStore,
	rules store.AccountResolver,
	rateSource rates.Source,
	classifier ai.CostClassifier,
	logger *zap.Logger,
) ApplicationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &appService{
		ledger:     ledger,
		rules:      rules,
		rates:      rateSource,
		classifier: classifier,
		logger:     logger,
	}
}

func (s *appService) CalculateCommission(ctx context.Context, in core.CommissionInput) (*core.CommissionResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	res, err := core.CalculateCommission(in)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *appService) PostCommission(ctx context.Context, req PostCommissionRequest) (*PostingResult, error) {
	if s.ledger == nil {
		return nil, ErrLedgerUnavailable
	}
	if _, err := money.ValidateCurrency(req.Currency); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidCommissionInput, err)
	}

	res, err := s.CalculateCommission(ctx, req.Commission)
	if err != nil {
		return nil, err
	}

	agencyAcct, err := s.account(ctx, req.AgencyPayableAccount, store.RuleAgencyPayable)
	if err != nil {
		return nil, err
	}
	expenseAcct, err := s.account(ctx, req.CommissionExpenseAcct, store.RuleCommissionExpense)
	if err != nil {
		return nil, err
	}
	if agencyAcct == "" || expenseAcct == "" {
		return nil, fmt.Errorf("%w: agency payable and commission expense accounts are required", core.ErrInvalidCommissionInput)
	}

	staffAcct := req.StaffPayableAccount
	if staffAcct == "" && res.StaffCommission != money.Zero(money.AmountPrecision) {
		if staffAcct, err = s.account(ctx, "", store.RuleStaffPayable); err != nil {
			return nil, err
		}
		if staffAcct == "" {
			return nil, fmt.Errorf("%w: staff payable account is required when a staff share is due", core.ErrInvalidCommissionInput)
		}
	}

	posting := core.CommissionPosting{
		OrderID:         req.Commission.OrderID,
		OrderNo:         req.OrderNo,
		AccountID:       agencyAcct,
		ContraAccountID: expenseAcct,
		Amount:          res.AgencyCommission,
		Currency:        req.Currency,
		ExchangeRate:    req.ExchangeRate,
	}

	var entries []core.LedgerEntry
	agencyEntry, err := core.BuildCommissionLedgerEntry(posting)
	switch {
	case err == nil:
		entries = append(entries, agencyEntry)
	case !errors.Is(err, core.ErrNothingToPost):
		return nil, err
	}

	if staffAcct != "" {
		posting.AccountID = staffAcct
		posting.Amount = res.StaffCommission
		staffEntry, err := core.BuildStaffCommissionLedgerEntry(posting)
		switch {
		case err == nil:
			entries = append(entries, staffEntry)
		case !errors.Is(err, core.ErrNothingToPost):
			return nil, err
		}
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("commission for order %s: %w", req.OrderNo, core.ErrNothingToPost)
	}

	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = commissionKey(req.Commission.OrderID, e.CostCenter)
	}
	postings, err := s.ledger.PostBatch(ctx, entries, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to post commission for order %s: %w", req.OrderNo, err)
	}
	for i, p := range postings {
		s.logger.Info("commission posted",
			zap.String("order_no", req.OrderNo),
			zap.String("posting_id", p.ID),
			zap.String("cost_center", entries[i].CostCenter),
			zap.String("amount", entries[i].Credit),
			zap.String("currency", entries[i].Currency))
	}
	return &PostingResult{Commission: res, Postings: postings}, nil
}

// fxKey makes a repeated revaluation of the same balance, day and rate a duplicate.
// A zero asOf means today.
func fxKey(referenceID string, asOf time.Time, rate string) string {
	if referenceID == "" {
		return ""
	}
	if asOf.IsZero() {
		asOf = time.Now()
	}
	return "fx:" + referenceID + ":" + asOf.Format("2006-01-02") + ":" + rate
}

// account returns given, or the account configured for rule when given is empty.
func (s *appService) account(ctx context.Context, given, rule string) (string, error) {
	if given != "" || s.rules == nil {
		return given, nil
	}
	return s.rules.ResolveAccount(ctx, rule)
}

// commissionKey makes a repeated post of the same order and cost centre a duplicate.
func commissionKey(orderID, costCenter string) string {
	if orderID == "" {
		return ""
	}
	return "commission:" + orderID + ":" + costCenter
}

func (s *appService) CalculateLandedCost(ctx context.Context, items []core.LandedCostItem) (*core.LandedCostBreakdown, error) {
	b, err := core.CalculateLandedCost(items)
	if err != nil {
		return nil, err
	}
	s.warnUnclassified("", b.Unclassified)
	return &b, nil
}

func (s *appService) AnalyzeProfit(ctx context.Context, req ProfitRequest) (*core.ProfitAnalysis, error) {
	pa, err := core.CalculateProfitAnalysis(req.OrderID, req.OrderNo, req.SellingPrice, req.Items)
	if err != nil {
		return nil, err
	}
	s.warnUnclassified(req.OrderNo, pa.Costs.Unclassified)
	return &pa, nil
}

func (s *appService) warnUnclassified(orderNo string, refs []string) {
	for _, ref := range refs {
		s.logger.Warn("cost item with unknown cost type counted as other costs",
			zap.String("order_no", orderNo),
			zap.String("item", ref))
	}
}

func (s *appService) RevalueBalances(ctx context.Context, req RevaluationRequest) (*RevaluationResult, error) {
	inputs := make([]core.FxGainLossInput, len(req.Balances))
	for i, b := range req.Balances {
		in, err := s.fxInput(ctx, b, req.AsOf)
		if err != nil {
			return nil, err
		}
		inputs[i] = in
	}

	results, net, err := core.RevalueAll(inputs)
	if err != nil {
		return nil, err
	}

	out := &RevaluationResult{NetMovement: net, Balances: make([]RevaluedBalance, len(results))}
	for i, r := range results {
		b := req.Balances[i]
		b.CurrentRate = inputs[i].CurrentRate
		out.Balances[i] = RevaluedBalance{Balance: b, Result: r}
	}
	return out, nil
}

func (s *appService) fxInput(ctx context.Context, b OpenBalance, asOf time.Time) (core.FxGainLossInput, error) {
	code, err := money.ValidateCurrency(b.Currency)
	if err != nil {
		return core.FxGainLossInput{}, fmt.Errorf("balance %s: %w", b.ReferenceID, err)
	}
	b.Currency = code
	current := b.CurrentRate
	if current == "" {
		if s.rates == nil {
			return core.FxGainLossInput{}, ErrRatesUnavailable
		}
		if asOf.IsZero() {
			asOf = time.Now()
		}
		rate, err := s.rates.Rate(ctx, b.Currency, asOf)
		if err != nil {
			return core.FxGainLossInput{}, fmt.Errorf("balance %s: %w", b.ReferenceID, err)
		}
		current = rate
	}
	return core.FxGainLossInput{
		OriginalAmount: b.Amount,
		OriginalRate:   b.BookingRate,
		CurrentRate:    current,
		Currency:       b.Currency,
	}, nil
}

func (s *appService) PostFxRevaluation(ctx context.Context, req FxPostRequest) (*PostingResult, error) {
	if s.ledger == nil {
		return nil, ErrLedgerUnavailable
	}
	in, err := s.fxInput(ctx, req.Balance, req.AsOf)
	if err != nil {
		return nil, err
	}
	res, err := core.CalculateFxGainLoss(in)
	if err != nil {
		return nil, err
	}
	if res.Movement == core.FxUnchanged {
		s.logger.Info("fx revaluation unchanged, nothing posted", zap.String("reference_id", req.Balance.ReferenceID))
		return nil, fmt.Errorf("balance %s: %w", req.Balance.ReferenceID, core.ErrNothingToPost)
	}

	resultAcct, err := s.account(ctx, req.FxResultAccount, store.RuleFxResult)
	if err != nil {
		return nil, err
	}
	receivableAcct, err := s.account(ctx, req.ReceivableAccount, store.RuleFxReceivable)
	if err != nil {
		return nil, err
	}
	if resultAcct == "" || receivableAcct == "" {
		return nil, fmt.Errorf("%w: fx result and receivable accounts are required", store.ErrMissingAccount)
	}

	entry, err := core.BuildFxLedgerEntry(core.FxPosting{
		AccountID:       resultAcct,
		ContraAccountID: receivableAcct,
		GainOrLoss:      res.GainOrLoss,
		IsGain:          res.IsGain,
		Currency:        in.Currency,
		ExchangeRate:    in.CurrentRate,
		ReferenceID:     req.Balance.ReferenceID,
	})
	if err != nil {
		return nil, err
	}

	p, err := s.ledger.Post(ctx, entry, fxKey(req.Balance.ReferenceID, req.AsOf, entry.ExchangeRate))
	if err != nil {
		return nil, fmt.Errorf("failed to post fx revaluation: %w", err)
	}
	s.logger.Info("fx revaluation posted",
		zap.String("reference_id", req.Balance.ReferenceID),
		zap.String("posting_id", p.ID),
		zap.String("movement", string(res.Movement)),
		zap.String("gain_or_loss", res.GainOrLoss))

	return &PostingResult{Fx: &res, Postings: []store.Posting{*p}}, nil
}

func (s *appService) ClassifyCostLine(ctx context.Context, text string) (*ClassifyResult, error) {
	if s.classifier == nil {
		return nil, ErrClassifierUnavailable
	}
	suggestion, err := s.classifier.ClassifyCostLine(ctx, text)
	if err != nil {
		return nil, err
	}
	item, err := suggestion.ToItem()
	if err != nil {
		return nil, fmt.Errorf("classifier suggestion rejected: %w", err)
	}
	if suggestion.Confidence < 0.6 {
		s.logger.Warn("low confidence cost classification",
			zap.String("cost_type", string(item.CostType)),
			zap.Float64("confidence", suggestion.Confidence))
	}
	return &ClassifyResult{Item: item, Suggestion: *suggestion}, nil
}

func (s *appService) GetBalances(ctx context.Context) (*BalancesResult, error) {
	if s.ledger == nil {
		return nil, ErrLedgerUnavailable
	}
	balances, err := s.ledger.GetBalances(ctx)
	if err != nil {
		return nil, err
	}
	return &BalancesResult{Accounts: balances}, nil
}

func (s *appService) CancelPosting(ctx context.Context, postingID, reason string) error {
	if s.ledger == nil {
		return ErrLedgerUnavailable
	}
	if err := s.ledger.Cancel(ctx, postingID, reason); err != nil {
		return err
	}
	s.logger.Info("posting cancelled", zap.String("posting_id", postingID), zap.String("reason", reason))
	return nil
}
