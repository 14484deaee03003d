package money

import "github.com/shopspring/decimal"

func parsePair(a, b string) (decimal.Decimal, decimal.Decimal, error) {
	x, err := Parse(a)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	y, err := Parse(b)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return x, y, nil
}

// Add returns a + b rounded to precision.
func Add(a, b string, precision int32) (string, error) {
	x, y, err := parsePair(a, b)
	if err != nil {
		return "", err
	}
	return x.Add(y).StringFixed(precision), nil
}

// Subtract returns a - b rounded to precision.
func Subtract(a, b string, precision int32) (string, error) {
	x, y, err := parsePair(a, b)
	if err != nil {
		return "", err
	}
	return x.Sub(y).StringFixed(precision), nil
}

// Multiply returns a * b rounded to precision.
func Multiply(a, b string, precision int32) (string, error) {
	x, y, err := parsePair(a, b)
	if err != nil {
		return "", err
	}
	return x.Mul(y).StringFixed(precision), nil
}

// Divide returns a / b rounded to precision.
// A zero divisor yields the zero value at precision instead of an error so that a
// missing rate degrades a report rather than aborting it.
func Divide(a, b string, precision int32) (string, error) {
	x, y, err := parsePair(a, b)
	if err != nil {
		return "", err
	}
	if y.IsZero() {
		return Zero(precision), nil
	}
	return x.DivRound(y, precision).StringFixed(precision), nil
}

// Percentage applies ratePercent (e.g. "12.5" for 12.5%) to amount.
// The rate is carried at RatePrecision through the division so fractional
// percentages survive before being applied.
func Percentage(amount, ratePercent string) (string, error) {
	rate, err := Divide(ratePercent, "100", RatePrecision)
	if err != nil {
		return "", err
	}
	return Multiply(amount, rate, AmountPrecision)
}

// Sum adds values at AmountPrecision. An empty list sums to "0.00".
func Sum(values ...string) (string, error) {
	total := decimal.Zero
	for _, v := range values {
		d, err := Parse(v)
		if err != nil {
			return "", err
		}
		total = total.Add(d)
	}
	return total.StringFixed(AmountPrecision), nil
}

// Abs strips the sign of a and rounds to precision.
func Abs(a string, precision int32) (string, error) {
	d, err := Parse(a)
	if err != nil {
		return "", err
	}
	return d.Abs().StringFixed(precision), nil
}

// Cmp compares a and b numerically: -1 if a < b, 0 if equal, +1 if a > b.
func Cmp(a, b string) (int, error) {
	x, y, err := parsePair(a, b)
	if err != nil {
		return 0, err
	}
	return x.Cmp(y), nil
}

// IsZero reports whether a is numerically zero.
func IsZero(a string) (bool, error) {
	d, err := Parse(a)
	if err != nil {
		return false, err
	}
	return d.IsZero(), nil
}

// IsPositive reports whether a is strictly greater than zero.
func IsPositive(a string) (bool, error) {
	d, err := Parse(a)
	if err != nil {
		return false, err
	}
	return d.IsPositive(), nil
}
