package core_test

import (
	"errors"
	"testing"

	"textile-finance/internal/core"
	"textile-finance/internal/money"
)

func TestCalculateFxGainLoss_Gain(t *testing.T) {
	res, err := core.CalculateFxGainLoss(core.FxGainLossInput{
		OriginalAmount: "45000.00",
		OriginalRate:   "32.4500",
		CurrentRate:    "33.1200",
		Currency:       "USD",
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.OriginalValueLocal != "1460250.00" || res.CurrentValueLocal != "1490400.00" {
		t.Errorf("local values = %s / %s", res.OriginalValueLocal, res.CurrentValueLocal)
	}
	if res.GainOrLoss != "30150.00" || !res.IsGain || res.Movement != core.FxGain {
		t.Errorf("got %+v", res)
	}
}

func TestCalculateFxGainLoss_SignConsistency(t *testing.T) {
	tests := []struct {
		name     string
		booking  string
		current  string
		movement core.FxMovement
	}{
		{"rate up EUR/TRY", "35.1000", "35.4000", core.FxGain},
		{"rate down GBP/TRY", "41.2000", "40.9000", core.FxLoss},
		{"rate unchanged", "1.0850", "1.0850", core.FxUnchanged},
		{"tiny increase", "1.0000", "1.0001", core.FxGain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := core.CalculateFxGainLoss(core.FxGainLossInput{
				OriginalAmount: "12500.00",
				OriginalRate:   tt.booking,
				CurrentRate:    tt.current,
			})
			if err != nil {
				t.Fatal(err)
			}
			if res.Movement != tt.movement {
				t.Errorf("movement = %s, want %s", res.Movement, tt.movement)
			}
			positive, _ := money.IsPositive(res.GainOrLoss)
			if res.IsGain != positive {
				t.Errorf("IsGain %v disagrees with gain %s", res.IsGain, res.GainOrLoss)
			}
			diff, _ := money.Subtract(res.CurrentValueLocal, res.OriginalValueLocal, money.AmountPrecision)
			if diff != res.GainOrLoss {
				t.Errorf("gain %s != current - original %s", res.GainOrLoss, diff)
			}
		})
	}
}

func TestCalculateFxGainLoss_ZeroIsNotGain(t *testing.T) {
	res, err := core.CalculateFxGainLoss(core.FxGainLossInput{OriginalAmount: "100.00", OriginalRate: "30", CurrentRate: "30.0000"})
	if err != nil {
		t.Fatal(err)
	}
	if res.IsGain || res.GainOrLoss != "0.00" || res.Movement != core.FxUnchanged {
		t.Errorf("got %+v", res)
	}
}

func TestCalculateFxGainLoss_InvalidRate(t *testing.T) {
	_, err := core.CalculateFxGainLoss(core.FxGainLossInput{OriginalAmount: "100.00", OriginalRate: "", CurrentRate: "30"})
	if !errors.Is(err, money.ErrInvalidDecimalFormat) {
		t.Errorf("expected ErrInvalidDecimalFormat, got %v", err)
	}
}

func TestRevalueAll(t *testing.T) {
	results, net, err := core.RevalueAll([]core.FxGainLossInput{
		{OriginalAmount: "45000.00", OriginalRate: "32.4500", CurrentRate: "33.1200", Currency: "USD"},
		{OriginalAmount: "10000.00", OriginalRate: "36.0000", CurrentRate: "35.5000", Currency: "EUR"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[1].GainOrLoss != "-5000.00" || results[1].Movement != core.FxLoss {
		t.Errorf("second result %+v", results[1])
	}
	if net != "25150.00" {
		t.Errorf("net = %s, want 25150.00", net)
	}

	if _, _, err := core.RevalueAll([]core.FxGainLossInput{{OriginalAmount: "x", OriginalRate: "1", CurrentRate: "1"}}); err == nil {
		t.Error("expected error for malformed amount")
	}
}
