package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"textile-finance/internal/app"
	"textile-finance/internal/core"
	"textile-finance/internal/money"
)

// Run executes a one-shot CLI command.
// args is os.Args[1:]; the first element is the subcommand name.
// Commands that take a request read it as JSON from in and write JSON to out.
func Run(ctx context.Context, svc app.ApplicationService, args []string, in io.Reader, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("no command given\n" + usage)
	}

	switch args[0] {
	case "commission", "comm":
		var input core.CommissionInput
		if err := decode(in, &input); err != nil {
			return err
		}
		res, err := svc.CalculateCommission(ctx, input)
		if err != nil {
			return fmt.Errorf("commission: %w", err)
		}
		return encode(out, res)

	case "post-commission":
		var req app.PostCommissionRequest
		if err := decode(in, &req); err != nil {
			return err
		}
		res, err := svc.PostCommission(ctx, req)
		if err != nil {
			return fmt.Errorf("post commission: %w", err)
		}
		return encode(out, res)

	case "landed-cost", "lc":
		var items []core.LandedCostItem
		if err := decode(in, &items); err != nil {
			return err
		}
		res, err := svc.CalculateLandedCost(ctx, items)
		if err != nil {
			return fmt.Errorf("landed cost: %w", err)
		}
		return encode(out, res)

	case "profit":
		var req app.ProfitRequest
		if err := decode(in, &req); err != nil {
			return err
		}
		res, err := svc.AnalyzeProfit(ctx, req)
		if err != nil {
			return fmt.Errorf("profit: %w", err)
		}
		return encode(out, res)

	case "fx", "revalue":
		var req app.RevaluationRequest
		if err := decode(in, &req); err != nil {
			return err
		}
		res, err := svc.RevalueBalances(ctx, req)
		if err != nil {
			return fmt.Errorf("revalue: %w", err)
		}
		return encode(out, res)

	case "post-fx":
		var req app.FxPostRequest
		if err := decode(in, &req); err != nil {
			return err
		}
		res, err := svc.PostFxRevaluation(ctx, req)
		if errors.Is(err, core.ErrNothingToPost) {
			fmt.Fprintln(out, "No FX movement, nothing posted.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("post fx: %w", err)
		}
		return encode(out, res)

	case "classify":
		if len(args) < 2 {
			return errors.New(`usage: app classify "<cost line text>"`)
		}
		res, err := svc.ClassifyCostLine(ctx, strings.Join(args[1:], " "))
		if err != nil {
			return fmt.Errorf("classify: %w", err)
		}
		return encode(out, res)

	case "cancel":
		if len(args) < 3 {
			return errors.New(`usage: app cancel <posting-id> "<reason>"`)
		}
		if err := svc.CancelPosting(ctx, args[1], strings.Join(args[2:], " ")); err != nil {
			return fmt.Errorf("cancel: %w", err)
		}
		fmt.Fprintf(out, "Posting %s cancelled.\n", args[1])
		return nil

	case "bal", "balances":
		res, err := svc.GetBalances(ctx)
		if err != nil {
			return fmt.Errorf("balances: %w", err)
		}
		PrintBalances(out, res)
		return nil

	default:
		return fmt.Errorf("unknown command: %s\n%s", args[0], usage)
	}
}

const usage = "Available: commission, post-commission, landed-cost, profit, fx, post-fx, classify, cancel, bal"

func decode(in io.Reader, v any) error {
	dec := json.NewDecoder(in)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func encode(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintBalances writes the per-account balance table.
func PrintBalances(out io.Writer, result *app.BalancesResult) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 66))
	fmt.Fprintf(out, "  %-62s\n", "ACCOUNT BALANCES")
	fmt.Fprintln(out, strings.Repeat("=", 66))
	fmt.Fprintf(out, "  %-10s %-5s %15s %15s %15s\n", "ACCOUNT", "CCY", "DEBIT", "CREDIT", "BALANCE")
	fmt.Fprintln(out, strings.Repeat("-", 66))
	for _, b := range result.Accounts {
		fmt.Fprintf(out, "  %-10s %-5s %15s %15s %15s\n",
			b.AccountID, b.Currency,
			b.Debit.StringFixed(money.AmountPrecision),
			b.Credit.StringFixed(money.AmountPrecision),
			b.Balance.StringFixed(money.AmountPrecision))
	}
	fmt.Fprintln(out, strings.Repeat("=", 66))
}
