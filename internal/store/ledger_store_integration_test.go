package store_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"textile-finance/internal/core"
	"textile-finance/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Integration tests run only against a dedicated database.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	for _, f := range []string{"001_ledger.sql", "002_account_rules.sql"} {
		schema, err := os.ReadFile("../../migrations/" + f)
		if err != nil {
			t.Fatalf("Failed to read migration %s: %v", f, err)
		}
		if _, err := pool.Exec(ctx, string(schema)); err != nil {
			t.Fatalf("Failed to apply migration %s: %v", f, err)
		}
	}
	if _, err := pool.Exec(ctx, "TRUNCATE TABLE ledger_entries, postings, exchange_rates, account_rules CASCADE"); err != nil {
		t.Fatalf("Failed to clean test database: %v", err)
	}
	return pool
}

func commissionEntry(t *testing.T, amount string) core.LedgerEntry {
	t.Helper()
	e, err := core.BuildCommissionLedgerEntry(core.CommissionPosting{
		OrderID: "o-1", OrderNo: "EXP-1", AccountID: "2150", ContraAccountID: "6100",
		Amount: amount, Currency: "USD", ExchangeRate: "32.45",
	})
	if err != nil {
		t.Fatalf("build entry: %v", err)
	}
	return e
}

func TestLedger_PostAndBalances(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ledger := store.NewLedger(pool)
	ctx := context.Background()

	posting, err := ledger.Post(ctx, commissionEntry(t, "4488.00"), uuid.NewString())
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if len(posting.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(posting.Entries))
	}

	balances, err := ledger.GetBalances(ctx)
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}
	got := map[string]string{}
	for _, b := range balances {
		got[b.AccountID] = b.Balance.StringFixed(2)
	}
	if got["2150"] != "-4488.00" || got["6100"] != "4488.00" {
		t.Errorf("unexpected balances: %v", got)
	}
}

func TestLedger_Idempotency(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ledger := store.NewLedger(pool)
	ctx := context.Background()
	key := uuid.NewString()

	if _, err := ledger.Post(ctx, commissionEntry(t, "100.00"), key); err != nil {
		t.Fatalf("first post failed: %v", err)
	}
	_, err := ledger.Post(ctx, commissionEntry(t, "100.00"), key)
	if !errors.Is(err, store.ErrDuplicatePosting) {
		t.Errorf("expected ErrDuplicatePosting, got %v", err)
	}
}

func TestLedger_Cancel(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ledger := store.NewLedger(pool)
	ctx := context.Background()

	posting, err := ledger.Post(ctx, commissionEntry(t, "250.00"), "")
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if err := ledger.Cancel(ctx, posting.ID, "order cancelled"); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if err := ledger.Cancel(ctx, posting.ID, "again"); !errors.Is(err, store.ErrAlreadyCancelled) {
		t.Errorf("expected ErrAlreadyCancelled, got %v", err)
	}
	if err := ledger.Cancel(ctx, uuid.NewString(), "missing"); !errors.Is(err, store.ErrPostingNotFound) {
		t.Errorf("expected ErrPostingNotFound, got %v", err)
	}

	balances, err := ledger.GetBalances(ctx)
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}
	if len(balances) != 0 {
		t.Errorf("cancelled posting still in balances: %+v", balances)
	}
}

func TestLedger_PostBatchIsAtomic(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ledger := store.NewLedger(pool)
	ctx := context.Background()

	agency := commissionEntry(t, "2805.00")
	staff := commissionEntry(t, "1683.00")
	staff.AccountID = "2151"
	staff.CostCenter = core.CostCenterStaffCommission

	taken := "commission:o-1:" + core.CostCenterStaffCommission
	if _, err := ledger.Post(ctx, commissionEntry(t, "1.00"), taken); err != nil {
		t.Fatalf("seed post failed: %v", err)
	}

	// The staff key is taken, so the agency half must not be booked either.
	_, err := ledger.PostBatch(ctx, []core.LedgerEntry{agency, staff},
		[]string{"commission:o-1:" + core.CostCenterAgencyCommission, taken})
	if !errors.Is(err, store.ErrDuplicatePosting) {
		t.Fatalf("expected ErrDuplicatePosting, got %v", err)
	}

	var n int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM postings").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected only the seed posting, found %d postings", n)
	}

	postings, err := ledger.PostBatch(ctx, []core.LedgerEntry{agency, staff},
		[]string{"commission:o-2:" + core.CostCenterAgencyCommission, "commission:o-2:" + core.CostCenterStaffCommission})
	if err != nil {
		t.Fatalf("PostBatch failed: %v", err)
	}
	if len(postings) != 2 || postings[0].ID == postings[1].ID {
		t.Errorf("expected two distinct postings, got %+v", postings)
	}
}
