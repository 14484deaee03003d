package core

import (
	"fmt"
	"strings"

	"textile-finance/internal/money"

	"github.com/shopspring/decimal"
)

// CommissionPosting carries what is needed to book a commission payable.
type CommissionPosting struct {
	OrderID         string `json:"order_id"`
	OrderNo         string `json:"order_no"`
	AccountID       string `json:"account_id"`
	ContraAccountID string `json:"contra_account_id"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	ExchangeRate    string `json:"exchange_rate"`
}

// FxPosting carries what is needed to book an unrealized FX gain or loss.
type FxPosting struct {
	AccountID       string `json:"account_id"`
	ContraAccountID string `json:"contra_account_id"`
	GainOrLoss      string `json:"gain_or_loss"`
	IsGain          bool   `json:"is_gain"`
	Currency        string `json:"currency"`
	ExchangeRate    string `json:"exchange_rate"`
	ReferenceID     string `json:"reference_id"`
}

// BuildCommissionLedgerEntry credits the full commission to the payable account.
func BuildCommissionLedgerEntry(p CommissionPosting) (LedgerEntry, error) {
	return buildCommissionEntry(p, CostCenterAgencyCommission, "Agency commission")
}

// BuildStaffCommissionLedgerEntry credits the staff share carved out of the agency commission.
func BuildStaffCommissionLedgerEntry(p CommissionPosting) (LedgerEntry, error) {
	return buildCommissionEntry(p, CostCenterStaffCommission, "Staff commission")
}

func buildCommissionEntry(p CommissionPosting, costCenter, label string) (LedgerEntry, error) {
	amount, err := creditAmount(p.Amount)
	if err != nil {
		return LedgerEntry{}, fmt.Errorf("commission for order %s: %w", p.OrderNo, err)
	}
	rate, err := postingRate(p.ExchangeRate)
	if err != nil {
		return LedgerEntry{}, err
	}

	return LedgerEntry{
		Type:            EntryCommission,
		AccountID:       p.AccountID,
		ContraAccountID: p.ContraAccountID,
		Debit:           money.Zero(money.AmountPrecision),
		Credit:          amount,
		Currency:        strings.ToUpper(strings.TrimSpace(p.Currency)),
		ExchangeRate:    rate,
		CostCenter:      costCenter,
		Description:     fmt.Sprintf("%s for order %s", label, p.OrderNo),
		ReferenceID:     p.OrderID,
		ReferenceType:   ReferenceOrder,
		IsCancelled:     false,
	}, nil
}

// BuildFxLedgerEntry credits a gain and debits a loss (sign stripped).
// A zero movement returns ErrNothingToPost.
func BuildFxLedgerEntry(p FxPosting) (LedgerEntry, error) {
	amount, err := postingAmount(p.GainOrLoss)
	if err != nil {
		return LedgerEntry{}, fmt.Errorf("fx movement for %s: %w", p.ReferenceID, err)
	}
	rate, err := postingRate(p.ExchangeRate)
	if err != nil {
		return LedgerEntry{}, err
	}

	e := LedgerEntry{
		Type:            EntryFxGainLoss,
		AccountID:       p.AccountID,
		ContraAccountID: p.ContraAccountID,
		Debit:           money.Zero(money.AmountPrecision),
		Credit:          money.Zero(money.AmountPrecision),
		Currency:        strings.ToUpper(strings.TrimSpace(p.Currency)),
		ExchangeRate:    rate,
		CostCenter:      CostCenterFxGainLoss,
		ReferenceID:     p.ReferenceID,
		ReferenceType:   ReferenceCollection,
		IsCancelled:     false,
	}
	if p.IsGain {
		e.Credit = amount
		e.Description = fmt.Sprintf("Unrealized FX gain on %s collection %s", e.Currency, p.ReferenceID)
	} else {
		e.Debit = amount
		e.Description = fmt.Sprintf("Unrealized FX loss on %s collection %s", e.Currency, p.ReferenceID)
	}
	return e, nil
}

// creditAmount returns s at two decimals. A negative amount is ErrNegativeAmount
// and zero is ErrNothingToPost.
func creditAmount(s string) (string, error) {
	amount, err := money.Normalize(s, money.AmountPrecision)
	if err != nil {
		return "", err
	}
	if amount == money.Zero(money.AmountPrecision) {
		return "", ErrNothingToPost
	}
	if strings.HasPrefix(amount, "-") {
		return "", fmt.Errorf("%w: %s", ErrNegativeAmount, amount)
	}
	return amount, nil
}

// postingAmount returns |s| at two decimals, or ErrNothingToPost when it is zero.
func postingAmount(s string) (string, error) {
	amount, err := money.Abs(s, money.AmountPrecision)
	if err != nil {
		return "", err
	}
	if amount == money.Zero(money.AmountPrecision) {
		return "", ErrNothingToPost
	}
	return amount, nil
}

// postingRate normalises the exchange rate; an empty rate means the local currency (1.0000).
func postingRate(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		s = "1"
	}
	rate, err := money.Normalize(s, money.RatePrecision)
	if err != nil {
		return "", fmt.Errorf("exchange rate: %w", err)
	}
	return rate, nil
}

// Contra returns the mirrored half of e: the contra account receives the opposite side.
func (e LedgerEntry) Contra() LedgerEntry {
	c := e
	c.AccountID, c.ContraAccountID = e.ContraAccountID, e.AccountID
	c.Debit, c.Credit = e.Credit, e.Debit
	return c
}

// Pair returns e followed by its contra half, ready to be written as one balanced posting.
func (e LedgerEntry) Pair() []LedgerEntry {
	return []LedgerEntry{e, e.Contra()}
}

// Balanced reports whether the entries' debits equal their credits.
func Balanced(entries ...LedgerEntry) (bool, error) {
	debit, credit := decimal.Zero, decimal.Zero
	for _, e := range entries {
		d, err := money.Parse(e.Debit)
		if err != nil {
			return false, err
		}
		c, err := money.Parse(e.Credit)
		if err != nil {
			return false, err
		}
		debit = debit.Add(d)
		credit = credit.Add(c)
	}
	return debit.Equal(credit), nil
}
