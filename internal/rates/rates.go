// Package rates looks up exchange rates to the base currency for revaluation.
package rates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"textile-finance/internal/money"

	"github.com/jackc/pgx/v5"
	"github.com/patrickmn/go-cache"
)

var ErrRateNotFound = errors.New("exchange rate not found")

// Source returns the rate of currency to the base currency effective on a date,
// as a decimal string at money.RatePrecision.
type Source interface {
	Rate(ctx context.Context, currency string, on time.Time) (string, error)
}

// Querier is the subset of *pgxpool.Pool used by DBSource.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DBSource reads the exchange_rates table and memoises results in memory.
type DBSource struct {
	q     Querier
	base  string
	cache *cache.Cache
}

func NewDBSource(q Querier, baseCurrency string, ttl time.Duration) *DBSource {
	return &DBSource{
		q:     q,
		base:  strings.ToUpper(baseCurrency),
		cache: cache.New(ttl, 2*ttl),
	}
}

// Rate returns the latest rate on or before the given date.
func (s *DBSource) Rate(ctx context.Context, currency string, on time.Time) (string, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == s.base {
		return money.Normalize("1", money.RatePrecision)
	}

	date := on.Format("2006-01-02")
	key := currency + "|" + date
	if v, ok := s.cache.Get(key); ok {
		return v.(string), nil
	}

	var raw string
	err := s.q.QueryRow(ctx, `
		SELECT rate::text
		FROM exchange_rates
		WHERE currency = $1 AND rate_date <= $2
		ORDER BY rate_date DESC
		LIMIT 1
	`, currency, date).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: %s on %s", ErrRateNotFound, currency, date)
		}
		return "", fmt.Errorf("failed to fetch %s rate: %w", currency, err)
	}

	rate, err := money.Normalize(raw, money.RatePrecision)
	if err != nil {
		return "", fmt.Errorf("stored %s rate: %w", currency, err)
	}
	s.cache.Set(key, rate, cache.DefaultExpiration)
	return rate, nil
}
