package core_test

import (
	"errors"
	"testing"

	"textile-finance/internal/core"
	"textile-finance/internal/money"
)

func assertSingleSided(t *testing.T, e core.LedgerEntry) {
	t.Helper()
	debitZero := e.Debit == "0.00"
	creditZero := e.Credit == "0.00"
	if debitZero == creditZero {
		t.Errorf("entry must have exactly one non-zero side: debit=%s credit=%s", e.Debit, e.Credit)
	}
	if e.IsCancelled {
		t.Error("new entry must not be cancelled")
	}
}

func TestBuildCommissionLedgerEntry(t *testing.T) {
	e, err := core.BuildCommissionLedgerEntry(core.CommissionPosting{
		OrderID:         "o-77",
		OrderNo:         "EXP-77",
		AccountID:       "2150",
		ContraAccountID: "6100",
		Amount:          "4488",
		Currency:        "usd",
		ExchangeRate:    "32.45",
	})
	if err != nil {
		t.Fatal(err)
	}
	assertSingleSided(t, e)
	if e.Credit != "4488.00" || e.Debit != "0.00" {
		t.Errorf("debit/credit = %s/%s", e.Debit, e.Credit)
	}
	if e.Type != core.EntryCommission || e.CostCenter != core.CostCenterAgencyCommission || e.ReferenceType != core.ReferenceOrder {
		t.Errorf("tags = %s/%s/%s", e.Type, e.CostCenter, e.ReferenceType)
	}
	if e.ReferenceID != "o-77" || e.Currency != "USD" || e.ExchangeRate != "32.4500" {
		t.Errorf("got %+v", e)
	}
	if e.Description != "Agency commission for order EXP-77" {
		t.Errorf("description = %q", e.Description)
	}
}

func TestBuildStaffCommissionLedgerEntry(t *testing.T) {
	e, err := core.BuildStaffCommissionLedgerEntry(core.CommissionPosting{OrderID: "o", OrderNo: "n", AccountID: "2151", ContraAccountID: "6101", Amount: "1683.00", Currency: "USD"})
	if err != nil {
		t.Fatal(err)
	}
	assertSingleSided(t, e)
	if e.CostCenter != core.CostCenterStaffCommission || e.ExchangeRate != "1.0000" {
		t.Errorf("got %+v", e)
	}
}

func TestBuildCommissionLedgerEntry_Zero(t *testing.T) {
	_, err := core.BuildCommissionLedgerEntry(core.CommissionPosting{Amount: "0.00"})
	if !errors.Is(err, core.ErrNothingToPost) {
		t.Errorf("expected ErrNothingToPost, got %v", err)
	}
	_, err = core.BuildCommissionLedgerEntry(core.CommissionPosting{Amount: "four"})
	if !errors.Is(err, money.ErrInvalidDecimalFormat) {
		t.Errorf("expected ErrInvalidDecimalFormat, got %v", err)
	}
}

func TestBuildCommissionLedgerEntry_NegativeRejected(t *testing.T) {
	for _, build := range []func(core.CommissionPosting) (core.LedgerEntry, error){
		core.BuildCommissionLedgerEntry,
		core.BuildStaffCommissionLedgerEntry,
	} {
		e, err := build(core.CommissionPosting{OrderNo: "EXP-9", AccountID: "2150", ContraAccountID: "6100", Amount: "-100.00", Currency: "USD"})
		if !errors.Is(err, core.ErrNegativeAmount) {
			t.Errorf("expected ErrNegativeAmount, got %v (credit=%s)", err, e.Credit)
		}
	}
}

func TestBuildFxLedgerEntry_Polarity(t *testing.T) {
	gain, err := core.BuildFxLedgerEntry(core.FxPosting{AccountID: "1200", ContraAccountID: "6460", GainOrLoss: "30150.00", IsGain: true, Currency: "USD", ExchangeRate: "33.12", ReferenceID: "col-1"})
	if err != nil {
		t.Fatal(err)
	}
	assertSingleSided(t, gain)
	if gain.Credit != "30150.00" || gain.Debit != "0.00" {
		t.Errorf("gain debit/credit = %s/%s", gain.Debit, gain.Credit)
	}

	loss, err := core.BuildFxLedgerEntry(core.FxPosting{AccountID: "1200", ContraAccountID: "6460", GainOrLoss: "-5000.00", IsGain: false, Currency: "EUR", ExchangeRate: "35.5", ReferenceID: "col-2"})
	if err != nil {
		t.Fatal(err)
	}
	assertSingleSided(t, loss)
	if loss.Debit != "5000.00" || loss.Credit != "0.00" {
		t.Errorf("loss debit/credit = %s/%s", loss.Debit, loss.Credit)
	}
	if loss.Type != core.EntryFxGainLoss || loss.CostCenter != core.CostCenterFxGainLoss || loss.ReferenceType != core.ReferenceCollection {
		t.Errorf("tags = %s/%s/%s", loss.Type, loss.CostCenter, loss.ReferenceType)
	}
}

func TestBuildFxLedgerEntry_ZeroMovementSuppressed(t *testing.T) {
	_, err := core.BuildFxLedgerEntry(core.FxPosting{GainOrLoss: "0.00", IsGain: false})
	if !errors.Is(err, core.ErrNothingToPost) {
		t.Errorf("expected ErrNothingToPost, got %v", err)
	}
}

func TestBuildFxLedgerEntry_FromCalculation(t *testing.T) {
	res, err := core.CalculateFxGainLoss(core.FxGainLossInput{OriginalAmount: "2000.00", OriginalRate: "40.0000", CurrentRate: "39.2500", Currency: "GBP"})
	if err != nil {
		t.Fatal(err)
	}
	e, err := core.BuildFxLedgerEntry(core.FxPosting{AccountID: "1200", ContraAccountID: "6460", GainOrLoss: res.GainOrLoss, IsGain: res.IsGain, Currency: "GBP", ExchangeRate: "39.25", ReferenceID: "col-3"})
	if err != nil {
		t.Fatal(err)
	}
	if e.Debit != "1500.00" {
		t.Errorf("debit = %s, want 1500.00", e.Debit)
	}
}

func TestLedgerEntry_ContraPairBalances(t *testing.T) {
	e, err := core.BuildCommissionLedgerEntry(core.CommissionPosting{OrderID: "o", OrderNo: "n", AccountID: "2150", ContraAccountID: "6100", Amount: "2805.00", Currency: "USD"})
	if err != nil {
		t.Fatal(err)
	}
	pair := e.Pair()
	if len(pair) != 2 {
		t.Fatalf("pair length %d", len(pair))
	}
	c := pair[1]
	assertSingleSided(t, c)
	if c.AccountID != "6100" || c.ContraAccountID != "2150" || c.Debit != "2805.00" || c.Credit != "0.00" {
		t.Errorf("contra = %+v", c)
	}

	ok, err := core.Balanced(pair...)
	if err != nil || !ok {
		t.Errorf("pair not balanced: %v", err)
	}
	ok, _ = core.Balanced(e)
	if ok {
		t.Error("a single half-posting must not be balanced")
	}
}
