package money_test

import (
	"errors"
	"strings"
	"testing"

	"textile-finance/internal/money"
)

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name string
		op   func(a, b string, p int32) (string, error)
		a, b string
		prec int32
		want string
	}{
		{"add", money.Add, "100.10", "0.20", 2, "100.30"},
		{"add negative", money.Add, "-5.00", "2.50", 2, "-2.50"},
		{"subtract", money.Subtract, "1500.00", "1200.00", 2, "300.00"},
		{"subtract below zero", money.Subtract, "10.00", "10.01", 2, "-0.01"},
		{"multiply rounds half away from zero", money.Multiply, "0.125", "1", 2, "0.13"},
		{"multiply negative rounds away from zero", money.Multiply, "-0.125", "1", 2, "-0.13"},
		{"multiply rate", money.Multiply, "45000.00", "32.4500", 2, "1460250.00"},
		{"divide", money.Divide, "10.00", "3", 2, "3.33"},
		{"divide rate precision", money.Divide, "12.5", "100", 4, "0.1250"},
		{"divide by zero", money.Divide, "10.00", "0.00", 2, "0.00"},
		{"divide by zero rate precision", money.Divide, "10.00", "0", 4, "0.0000"},
		{"float drift avoided", money.Add, "0.1", "0.2", 2, "0.30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(tt.a, tt.b, tt.prec)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAdd_ZeroIsIdentity(t *testing.T) {
	for _, s := range []string{"0.00", "0.01", "-0.01", "56100.00", "999999999999.99", "-4488.37"} {
		got, err := money.Add(s, "0.00", money.AmountPrecision)
		if err != nil {
			t.Fatalf("Add(%s): %v", s, err)
		}
		if got != s {
			t.Errorf("Add(%s, 0.00) = %s", s, got)
		}
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		amount, rate, want string
	}{
		{"56100.00", "8", "4488.00"},
		{"56100.00", "3", "1683.00"},
		{"1000.00", "12.5", "125.00"},
		{"200.00", "0", "0.00"},
		{"333.33", "33.3333", "111.10"},
	}
	for _, tt := range tests {
		got, err := money.Percentage(tt.amount, tt.rate)
		if err != nil {
			t.Fatalf("Percentage(%s, %s): %v", tt.amount, tt.rate, err)
		}
		if got != tt.want {
			t.Errorf("Percentage(%s, %s) = %s, want %s", tt.amount, tt.rate, got, tt.want)
		}
	}
}

func TestSum(t *testing.T) {
	got, err := money.Sum("1000.00", "200.00", "0.10", "0.20")
	if err != nil {
		t.Fatal(err)
	}
	if got != "1200.30" {
		t.Errorf("got %s, want 1200.30", got)
	}

	empty, err := money.Sum()
	if err != nil {
		t.Fatal(err)
	}
	if empty != "0.00" {
		t.Errorf("empty sum = %s, want 0.00", empty)
	}
}

func TestInvalidDecimalFormat(t *testing.T) {
	inputs := []string{"", "   ", "abc", "NaN", "Infinity", "1,000.00", "12.5%", "1e2", "2.5E-3"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			if _, err := money.Add(in, "1.00", money.AmountPrecision); !errors.Is(err, money.ErrInvalidDecimalFormat) {
				t.Errorf("Add(%q) error = %v, want ErrInvalidDecimalFormat", in, err)
			}
			if _, err := money.Divide("1.00", in, money.AmountPrecision); !errors.Is(err, money.ErrInvalidDecimalFormat) {
				t.Errorf("Divide(_, %q) error = %v, want ErrInvalidDecimalFormat", in, err)
			}
			if _, err := money.Sum("1.00", in); !errors.Is(err, money.ErrInvalidDecimalFormat) {
				t.Errorf("Sum(%q) error = %v, want ErrInvalidDecimalFormat", in, err)
			}
		})
	}
}

func TestNewAmount(t *testing.T) {
	a, err := money.NewAmount("12.5", "usd")
	if err != nil {
		t.Fatal(err)
	}
	if a.Value != "12.50" || a.Currency != "USD" {
		t.Errorf("got %+v", a)
	}
	if a.String() != "12.50 USD" {
		t.Errorf("String() = %s", a.String())
	}
}

func TestHelpers(t *testing.T) {
	abs, err := money.Abs("-30150.004", money.AmountPrecision)
	if err != nil || abs != "30150.00" {
		t.Errorf("Abs = %s, %v", abs, err)
	}
	c, err := money.Cmp("1.00", "1")
	if err != nil || c != 0 {
		t.Errorf("Cmp = %d, %v", c, err)
	}
	zero, _ := money.IsZero("0.000")
	if !zero {
		t.Error("expected 0.000 to be zero")
	}
	pos, _ := money.IsPositive("0.00")
	if pos {
		t.Error("0.00 must not be positive")
	}
}

func TestFormatting(t *testing.T) {
	s, err := money.FormatCurrency("56100", "usd")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(s, "56,100.00") || !strings.HasSuffix(s, "USD") {
		t.Errorf("FormatCurrency = %q", s)
	}

	if _, err := money.FormatCurrency("1.00", "XXXX"); !errors.Is(err, money.ErrInvalidCurrency) {
		t.Errorf("expected ErrInvalidCurrency, got %v", err)
	}

	p, err := money.FormatPercent("12.5")
	if err != nil || p != "12.50%" {
		t.Errorf("FormatPercent = %q, %v", p, err)
	}
}

func TestFormatCurrency_Exact(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"12345678901234567.89", "12,345,678,901,234,567.89 USD"},
		{"999.995", "1,000.00 USD"},
		{"-1234567.5", "-1,234,567.50 USD"},
		{"0", "0.00 USD"},
		{"100", "100.00 USD"},
	}
	for _, tt := range tests {
		got, err := money.FormatCurrency(tt.value, "USD")
		if err != nil {
			t.Fatalf("FormatCurrency(%q): %v", tt.value, err)
		}
		if got != tt.want {
			t.Errorf("FormatCurrency(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
