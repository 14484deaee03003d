package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Account roles a posting request may leave empty and have resolved from account_rules.
const (
	RuleAgencyPayable     = "AGENCY_PAYABLE"
	RuleStaffPayable      = "STAFF_PAYABLE"
	RuleCommissionExpense = "COMMISSION_EXPENSE"
	RuleFxReceivable      = "FX_RECEIVABLE"
	RuleFxResult          = "FX_RESULT"
)

var ErrNoAccountRule = errors.New("no account rule")

// AccountResolver maps an account role to the account currently configured for it.
type AccountResolver interface {
	ResolveAccount(ctx context.Context, ruleType string) (string, error)
}

type accountRules struct {
	pool *pgxpool.Pool
}

// NewAccountRules constructs an AccountResolver backed by the account_rules table.
func NewAccountRules(pool *pgxpool.Pool) AccountResolver {
	return &accountRules{pool: pool}
}

// ResolveAccount returns the highest priority account for ruleType that has not expired.
func (r *accountRules) ResolveAccount(ctx context.Context, ruleType string) (string, error) {
	var accountID string
	err := r.pool.QueryRow(ctx, `
		SELECT account_id
		FROM account_rules
		WHERE rule_type = $1
		  AND (effective_to IS NULL OR effective_to >= CURRENT_DATE)
		ORDER BY priority DESC
		LIMIT 1
	`, ruleType).Scan(&accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w for %q, seed account_rules or pass the account explicitly", ErrNoAccountRule, ruleType)
		}
		return "", fmt.Errorf("failed to resolve account rule %q: %w", ruleType, err)
	}
	return accountID, nil
}
