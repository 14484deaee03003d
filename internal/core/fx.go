package core

import (
	"fmt"

	"textile-finance/internal/money"
)

// CalculateFxGainLoss revalues an open foreign-currency balance at the current rate.
// A rate increase on the balance is a gain, a decrease a loss; no movement is
// reported as FxUnchanged with IsGain false.
func CalculateFxGainLoss(in FxGainLossInput) (FxGainLossResult, error) {
	original, err := money.Multiply(in.OriginalAmount, in.OriginalRate, money.AmountPrecision)
	if err != nil {
		return FxGainLossResult{}, fmt.Errorf("booking value: %w", err)
	}
	current, err := money.Multiply(in.OriginalAmount, in.CurrentRate, money.AmountPrecision)
	if err != nil {
		return FxGainLossResult{}, fmt.Errorf("current value: %w", err)
	}
	diff, err := money.Subtract(current, original, money.AmountPrecision)
	if err != nil {
		return FxGainLossResult{}, err
	}

	sign, err := money.Cmp(diff, "0")
	if err != nil {
		return FxGainLossResult{}, err
	}
	movement := FxUnchanged
	switch {
	case sign > 0:
		movement = FxGain
	case sign < 0:
		movement = FxLoss
	}

	return FxGainLossResult{
		OriginalValueLocal: original,
		CurrentValueLocal:  current,
		GainOrLoss:         diff,
		IsGain:             movement == FxGain,
		Movement:           movement,
	}, nil
}

// RevalueAll revalues every balance and returns the individual results together
// with the net movement across all of them.
func RevalueAll(inputs []FxGainLossInput) ([]FxGainLossResult, string, error) {
	results := make([]FxGainLossResult, 0, len(inputs))
	movements := make([]string, 0, len(inputs))
	for i, in := range inputs {
		r, err := CalculateFxGainLoss(in)
		if err != nil {
			return nil, "", fmt.Errorf("balance %d (%s): %w", i, in.Currency, err)
		}
		results = append(results, r)
		movements = append(movements, r.GainOrLoss)
	}
	net, err := money.Sum(movements...)
	if err != nil {
		return nil, "", err
	}
	return results, net, nil
}
