package store

import (
	"context"
	"errors"
	"fmt"

	"textile-finance/internal/core"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrPostingNotFound  = errors.New("posting not found")
	ErrAlreadyCancelled = errors.New("posting already cancelled")
	ErrDuplicatePosting = errors.New("duplicate posting")
	ErrUnbalanced       = errors.New("posting is not balanced")
	ErrMissingAccount   = errors.New("posting requires both an account and a contra account")
)

// LedgerStore writes half-postings built by core as balanced pairs.
type LedgerStore interface {
	Post(ctx context.Context, entry core.LedgerEntry, idempotencyKey string) (*Posting, error)
	// PostBatch writes every entry as its own posting in one transaction: either all
	// of them are booked or none. keys is empty or has one key per entry.
	PostBatch(ctx context.Context, entries []core.LedgerEntry, keys []string) ([]Posting, error)
	Cancel(ctx context.Context, postingID, reason string) error
	GetBalances(ctx context.Context) ([]AccountBalance, error)
}

// Posting is one balanced pair as stored: the built entry and its contra half.
type Posting struct {
	ID      string             `json:"id"`
	Entries []core.LedgerEntry `json:"entries"`
}

type AccountBalance struct {
	AccountID string          `json:"account_id"`
	Currency  string          `json:"currency"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Balance   decimal.Decimal `json:"balance"`
}

type Ledger struct {
	pool *pgxpool.Pool
}

var _ LedgerStore = (*Ledger)(nil)

func NewLedger(pool *pgxpool.Pool) *Ledger {
	return &Ledger{pool: pool}
}

// Post writes entry and its contra half in one transaction.
// A non-empty idempotencyKey that was already used yields ErrDuplicatePosting.
func (l *Ledger) Post(ctx context.Context, entry core.LedgerEntry, idempotencyKey string) (*Posting, error) {
	postings, err := l.PostBatch(ctx, []core.LedgerEntry{entry}, []string{idempotencyKey})
	if err != nil {
		return nil, err
	}
	return &postings[0], nil
}

// PostBatch writes each entry and its contra half, all in one transaction.
// A duplicate key anywhere in the batch rolls back the whole batch.
func (l *Ledger) PostBatch(ctx context.Context, entries []core.LedgerEntry, keys []string) ([]Posting, error) {
	if len(keys) != 0 && len(keys) != len(entries) {
		return nil, fmt.Errorf("got %d idempotency keys for %d entries", len(keys), len(entries))
	}
	pairs := make([][]core.LedgerEntry, len(entries))
	for i, entry := range entries {
		pair, err := balancedPair(entry)
		if err != nil {
			return nil, err
		}
		pairs[i] = pair
	}

	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	postings := make([]Posting, len(entries))
	for i, pair := range pairs {
		var key string
		if len(keys) > 0 {
			key = keys[i]
		}
		id, err := insertPosting(ctx, tx, pair, key)
		if err != nil {
			return nil, err
		}
		postings[i] = Posting{ID: id, Entries: pair}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return postings, nil
}

// balancedPair checks entry's accounts and returns it with its contra half.
func balancedPair(entry core.LedgerEntry) ([]core.LedgerEntry, error) {
	if entry.AccountID == "" || entry.ContraAccountID == "" {
		return nil, fmt.Errorf("%w: %s %s", ErrMissingAccount, entry.Type, entry.ReferenceID)
	}
	pair := entry.Pair()
	ok, err := core.Balanced(pair...)
	if err != nil {
		return nil, fmt.Errorf("posting validation failed: %w", err)
	}
	if !ok {
		return nil, ErrUnbalanced
	}
	return pair, nil
}

func insertPosting(ctx context.Context, tx pgx.Tx, pair []core.LedgerEntry, idempotencyKey string) (string, error) {
	entry := pair[0]
	postingID := uuid.NewString()
	var key *string
	if idempotencyKey != "" {
		key = &idempotencyKey
	}

	var insertedID string
	err := tx.QueryRow(ctx, `
		INSERT INTO postings (id, idempotency_key, entry_type, reference_type, reference_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (idempotency_key) DO NOTHING
		RETURNING id
	`, postingID, key, string(entry.Type), entry.ReferenceType, entry.ReferenceID).Scan(&insertedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: idempotency key %s already exists", ErrDuplicatePosting, idempotencyKey)
		}
		return "", fmt.Errorf("failed to insert posting: %w", err)
	}

	for _, e := range pair {
		_, err := tx.Exec(ctx, `
			INSERT INTO ledger_entries (id, posting_id, entry_type, account_id, contra_account_id, debit, credit,
				currency, exchange_rate, cost_center, description, reference_id, reference_type, is_cancelled)
			VALUES ($1, $2, $3, $4, $5, $6::text::numeric, $7::text::numeric, $8, $9::text::numeric, $10, $11, $12, $13, FALSE)
		`, uuid.NewString(), postingID, string(e.Type), e.AccountID, e.ContraAccountID, e.Debit, e.Credit,
			e.Currency, e.ExchangeRate, e.CostCenter, e.Description, e.ReferenceID, e.ReferenceType)
		if err != nil {
			return "", fmt.Errorf("failed to insert ledger entry for account %s: %w", e.AccountID, err)
		}
	}
	return postingID, nil
}

// Cancel marks both halves of a posting as cancelled. Cancelled rows stay in the
// table and are excluded from balances.
func (l *Ledger) Cancel(ctx context.Context, postingID, reason string) error {
	if _, err := uuid.Parse(postingID); err != nil {
		return fmt.Errorf("%w: %s", ErrPostingNotFound, postingID)
	}
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var cancelled bool
	err = tx.QueryRow(ctx, "SELECT is_cancelled FROM postings WHERE id = $1 FOR UPDATE", postingID).Scan(&cancelled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrPostingNotFound, postingID)
		}
		return fmt.Errorf("failed to fetch posting %s: %w", postingID, err)
	}
	if cancelled {
		return fmt.Errorf("%w: %s", ErrAlreadyCancelled, postingID)
	}

	if _, err := tx.Exec(ctx,
		"UPDATE postings SET is_cancelled = TRUE, cancel_reason = $2, cancelled_at = NOW() WHERE id = $1",
		postingID, reason); err != nil {
		return fmt.Errorf("failed to cancel posting: %w", err)
	}
	if _, err := tx.Exec(ctx, "UPDATE ledger_entries SET is_cancelled = TRUE WHERE posting_id = $1", postingID); err != nil {
		return fmt.Errorf("failed to cancel ledger entries: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit cancellation: %w", err)
	}
	return nil
}

// GetBalances returns debit, credit and net-debit balance per account and currency,
// ignoring cancelled entries.
func (l *Ledger) GetBalances(ctx context.Context) ([]AccountBalance, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT account_id, currency,
		       COALESCE(SUM(debit), 0)::text, COALESCE(SUM(credit), 0)::text,
		       (COALESCE(SUM(debit), 0) - COALESCE(SUM(credit), 0))::text AS balance
		FROM ledger_entries
		WHERE NOT is_cancelled
		GROUP BY account_id, currency
		ORDER BY account_id, currency
	`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var balances []AccountBalance
	for rows.Next() {
		var b AccountBalance
		if err := rows.Scan(&b.AccountID, &b.Currency, &b.Debit, &b.Credit, &b.Balance); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balances: %w", err)
	}
	return balances, nil
}
