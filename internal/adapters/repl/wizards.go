package repl

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"textile-finance/internal/app"
	"textile-finance/internal/core"
	"textile-finance/internal/money"
)

// handleAddCosts reads cost lines by hand until the user types done or cancel.
func handleAddCosts(reader *bufio.Reader, ws *worksheet) {
	fmt.Println("Enter cost lines. Type 'done' when finished, 'cancel' to abort.")
	fmt.Println("Format per line: <cost-type> <amount> [currency] [description...]")
	fmt.Println("  Example: FREIGHT 1250.00 USD sea freight Izmir-Hamburg")
	fmt.Printf("  Cost types: %s\n", costTypeList())

	var lines []core.LandedCostItem
	for {
		fmt.Printf("  Line %d: ", len(ws.items)+len(lines)+1)
		raw, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		raw = strings.TrimSpace(raw)
		switch strings.ToLower(raw) {
		case "cancel":
			fmt.Println("Nothing added.")
			return
		case "done":
			ws.items = append(ws.items, lines...)
			fmt.Printf("%d line(s) added.\n", len(lines))
			return
		case "":
			continue
		}

		item, err := parseCostLine(raw)
		if err != nil {
			fmt.Printf("  Error: %v\n", err)
			continue
		}
		lines = append(lines, item)
	}
}

// parseCostLine parses "<cost-type> <amount> [currency] [description...]".
// An unknown cost type is kept as typed; the calculator counts it as other costs.
func parseCostLine(raw string) (core.LandedCostItem, error) {
	parts := strings.Fields(raw)
	if len(parts) < 2 {
		return core.LandedCostItem{}, fmt.Errorf("expected at least a cost type and an amount")
	}
	amt, err := money.Normalize(parts[1], money.AmountPrecision)
	if err != nil {
		return core.LandedCostItem{}, err
	}

	item := core.LandedCostItem{CostType: core.CostType(strings.ToUpper(parts[0])), Amount: amt}
	if ct, err := core.ParseCostType(parts[0]); err == nil {
		item.CostType = ct
	} else {
		fmt.Printf("  Warning: %v, line will count as OTHER\n", err)
	}

	rest := parts[2:]
	if len(rest) > 0 {
		if code, err := money.ValidateCurrency(rest[0]); err == nil {
			item.Currency = code
			rest = rest[1:]
		}
	}
	item.Description = strings.Join(rest, " ")
	return item, nil
}

func costTypeList() string {
	names := make([]string, len(core.CostTypes))
	for i, ct := range core.CostTypes {
		names[i] = string(ct)
	}
	return strings.Join(names, ", ")
}

// handleRevaluation collects open balances and revalues them.
// Leaving the current rate empty asks the rate source for today's rate.
func handleRevaluation(ctx context.Context, reader *bufio.Reader, svc app.ApplicationService) {
	fmt.Println("Enter open balances. Type 'done' when finished, 'cancel' to abort.")
	fmt.Println("Format per line: <reference> <currency> <amount> <booking-rate> [current-rate]")
	fmt.Println("  Example: COL-118 USD 45000 32.45 33.12")

	var balances []app.OpenBalance
	for {
		fmt.Printf("  Balance %d: ", len(balances)+1)
		raw, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		raw = strings.TrimSpace(raw)
		switch strings.ToLower(raw) {
		case "cancel":
			fmt.Println("Revaluation cancelled.")
			return
		case "done":
			if len(balances) == 0 {
				fmt.Println("No balances entered.")
				return
			}
			res, err := svc.RevalueBalances(ctx, app.RevaluationRequest{AsOf: time.Now(), Balances: balances})
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			printRevaluation(res)
			return
		case "":
			continue
		}

		b, err := parseBalance(raw)
		if err != nil {
			fmt.Printf("  Error: %v\n", err)
			continue
		}
		balances = append(balances, b)
	}
}

func parseBalance(raw string) (app.OpenBalance, error) {
	parts := strings.Fields(raw)
	if len(parts) < 4 {
		return app.OpenBalance{}, fmt.Errorf("expected reference, currency, amount and booking rate")
	}
	code, err := money.ValidateCurrency(parts[1])
	if err != nil {
		return app.OpenBalance{}, err
	}
	b := app.OpenBalance{ReferenceID: parts[0], Currency: code, Amount: parts[2], BookingRate: parts[3]}
	if len(parts) > 4 {
		b.CurrentRate = parts[4]
	}
	return b, nil
}
