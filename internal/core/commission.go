package core

import (
	"fmt"
	"strings"

	"textile-finance/internal/money"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func (in CommissionInput) hasStaff() bool {
	return in.AgencyStaffID != nil && strings.TrimSpace(*in.AgencyStaffID) != ""
}

// CalculateCommission splits the order total into the gross agency commission and
// the staff share carved out of it. The agency keeps total - staff, so the three
// figures always reconcile exactly.
func CalculateCommission(in CommissionInput) (CommissionResult, error) {
	total, err := money.Percentage(in.OrderTotal, in.AgencyCommissionRate)
	if err != nil {
		return CommissionResult{}, fmt.Errorf("agency commission for order %s: %w", in.OrderID, err)
	}

	staff := money.Zero(money.AmountPrecision)
	if in.hasStaff() {
		staff, err = money.Percentage(in.OrderTotal, in.StaffCommissionRate)
		if err != nil {
			return CommissionResult{}, fmt.Errorf("staff commission for order %s: %w", in.OrderID, err)
		}
	}

	agency, err := money.Subtract(total, staff, money.AmountPrecision)
	if err != nil {
		return CommissionResult{}, err
	}

	return CommissionResult{
		AgencyCommission: agency,
		StaffCommission:  staff,
		TotalCommission:  total,
	}, nil
}

// Validate enforces the business bounds the calculator itself accepts silently:
// rates within 0..100, the staff share not exceeding the agency rate, and a
// non-negative order total. It is meant for the caller boundary.
func (in CommissionInput) Validate() error {
	if strings.TrimSpace(in.AgencyID) == "" {
		return fmt.Errorf("%w: agency id is required", ErrInvalidCommissionInput)
	}

	total, err := money.Parse(in.OrderTotal)
	if err != nil {
		return fmt.Errorf("order total: %w", err)
	}
	if total.IsNegative() {
		return fmt.Errorf("%w: order total cannot be negative", ErrInvalidCommissionInput)
	}

	agencyRate, err := money.Parse(in.AgencyCommissionRate)
	if err != nil {
		return fmt.Errorf("agency commission rate: %w", err)
	}
	if agencyRate.IsNegative() || agencyRate.GreaterThan(hundred) {
		return fmt.Errorf("%w: agency commission rate %s outside 0..100", ErrInvalidCommissionInput, in.AgencyCommissionRate)
	}

	if !in.hasStaff() {
		return nil
	}

	staffRate, err := money.Parse(in.StaffCommissionRate)
	if err != nil {
		return fmt.Errorf("staff commission rate: %w", err)
	}
	if staffRate.IsNegative() {
		return fmt.Errorf("%w: staff commission rate cannot be negative", ErrInvalidCommissionInput)
	}
	if staffRate.GreaterThan(agencyRate) {
		return fmt.Errorf("%w: staff rate %s exceeds agency rate %s", ErrInvalidCommissionInput, in.StaffCommissionRate, in.AgencyCommissionRate)
	}
	return nil
}
