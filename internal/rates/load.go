package rates

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"textile-finance/internal/money"

	"github.com/jackc/pgx/v5"
)

// Quote is one daily rate of a foreign currency against the base currency.
type Quote struct {
	Currency string
	Date     time.Time
	Rate     string
}

// ParseCSV reads quotes from "currency,date,rate" rows. A first row whose
// date column is not a date is treated as a header and skipped.
func ParseCSV(r io.Reader) ([]Quote, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	var quotes []Quote
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return quotes, nil
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(rec[1]))
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("line %d: invalid date %q", line, rec[1])
		}
		code, err := money.ValidateCurrency(rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rate, err := money.Normalize(strings.TrimSpace(rec[2]), money.RatePrecision)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if pos, _ := money.IsPositive(rate); !pos {
			return nil, fmt.Errorf("line %d: rate must be positive", line)
		}
		quotes = append(quotes, Quote{Currency: code, Date: date, Rate: rate})
	}
}

// Beginner starts a transaction; *pgxpool.Pool satisfies it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// SaveQuotes upserts quotes in one transaction and returns the number written.
func SaveQuotes(ctx context.Context, db Beginner, quotes []Quote) (int, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, q := range quotes {
		_, err := tx.Exec(ctx, `
			INSERT INTO exchange_rates (currency, rate_date, rate)
			VALUES ($1, $2, $3::text::numeric)
			ON CONFLICT (currency, rate_date) DO UPDATE SET rate = EXCLUDED.rate
		`, q.Currency, q.Date.Format("2006-01-02"), q.Rate)
		if err != nil {
			return 0, fmt.Errorf("failed to save %s rate for %s: %w", q.Currency, q.Date.Format("2006-01-02"), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit rates: %w", err)
	}
	return len(quotes), nil
}
