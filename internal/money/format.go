package money

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/currency"
)

var ErrInvalidCurrency = errors.New("invalid currency")

// ValidateCurrency checks that code is a recognised ISO 4217 currency and returns it upper-cased.
func ValidateCurrency(code string) (string, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidCurrency, code, err)
	}
	return unit.String(), nil
}

// FormatCurrency renders value for display with thousands grouping, e.g. "56,100.00 USD".
// The output is for reports only and must never be fed back into a calculation.
func FormatCurrency(value, currencyCode string) (string, error) {
	d, err := Parse(value)
	if err != nil {
		return "", err
	}
	code, err := ValidateCurrency(currencyCode)
	if err != nil {
		return "", err
	}
	return group(d.StringFixed(AmountPrecision)) + " " + code, nil
}

// group inserts a comma every three digits of the integer part of a fixed-point string.
func group(fixed string) string {
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// FormatPercent renders value as a percentage with two fractional digits, e.g. "12.50%".
func FormatPercent(value string) (string, error) {
	d, err := Parse(value)
	if err != nil {
		return "", err
	}
	return d.StringFixed(AmountPrecision) + "%", nil
}
