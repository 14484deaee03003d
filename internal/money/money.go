// Package money is the fixed-point arithmetic kernel used by every financial
// calculation in the system. Values cross package boundaries as decimal strings
// ("1234.50"), never as floats; each operation parses its operands, computes
// exactly with shopspring/decimal and rounds once, half away from zero, to the
// requested number of fractional digits.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// AmountPrecision is the number of fractional digits of a monetary amount.
	AmountPrecision int32 = 2
	// RatePrecision is the number of fractional digits of an exchange or commission rate
	// carried through an intermediate division.
	RatePrecision int32 = 4
)

// ErrInvalidDecimalFormat is returned when a caller-supplied string is not a decimal number.
var ErrInvalidDecimalFormat = errors.New("invalid decimal format")

// Amount is a monetary value in a single currency.
type Amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// NewAmount normalizes value to two fractional digits.
func NewAmount(value, currency string) (Amount, error) {
	v, err := Normalize(value, AmountPrecision)
	if err != nil {
		return Amount{}, err
	}
	return Amount{Value: v, Currency: strings.ToUpper(strings.TrimSpace(currency))}, nil
}

func (a Amount) String() string {
	return a.Value + " " + a.Currency
}

// Parse converts a decimal string into a decimal.Decimal.
// Empty strings, "NaN", "Inf" and anything else that is not a plain decimal are rejected.
func Parse(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", ErrInvalidDecimalFormat)
	}
	if strings.ContainsAny(trimmed, "eE") {
		return decimal.Zero, fmt.Errorf("%w: exponent notation %q", ErrInvalidDecimalFormat, s)
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidDecimalFormat, s)
	}
	return d, nil
}

// Normalize rounds s to precision fractional digits and returns its canonical string.
func Normalize(s string, precision int32) (string, error) {
	d, err := Parse(s)
	if err != nil {
		return "", err
	}
	return d.StringFixed(precision), nil
}

// Zero returns the zero value rendered at precision, e.g. "0.00".
func Zero(precision int32) string {
	return decimal.Zero.StringFixed(precision)
}
