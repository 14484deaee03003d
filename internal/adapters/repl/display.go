package repl

import (
	"fmt"
	"strings"

	"textile-finance/internal/app"
	"textile-finance/internal/core"
	"textile-finance/internal/money"
)

func printHelp() {
	fmt.Println()
	fmt.Println("Worksheet:")
	fmt.Println("  /order <order-no>                     start a new worksheet")
	fmt.Println("  /add                                  enter cost lines by hand")
	fmt.Println("  /costs                                show the landed cost breakdown")
	fmt.Println("  /drop <line>                          cancel a worksheet line")
	fmt.Println("  /profit <selling-price> [currency]    profit analysis for the worksheet")
	fmt.Println("Calculations:")
	fmt.Println("  /commission <total> <agency%> [staff%]")
	fmt.Println("  /fx                                   revalue open balances")
	fmt.Println("Ledger:")
	fmt.Println("  /bal                                  account balances")
	fmt.Println("  /cancel <posting-id> <reason>")
	fmt.Println("  /exit")
	fmt.Println("Any other input is classified as a cost line.")
}

// amount renders v with thousands separators and an optional currency code.
// Values that fail to format are shown as given.
func amount(v, currency string) string {
	if currency == "" {
		return v
	}
	s, err := money.FormatCurrency(v, currency)
	if err != nil {
		return v + " " + currency
	}
	return s
}

func percent(v string) string {
	s, err := money.FormatPercent(v)
	if err != nil {
		return v + "%"
	}
	return s
}

func printWorksheet(ws *worksheet) {
	fmt.Println()
	title := "WORKSHEET"
	if ws.orderNo != "" {
		title += " - ORDER " + ws.orderNo
	}
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("  %s\n", title)
	fmt.Println(strings.Repeat("=", 70))
	if len(ws.items) == 0 {
		fmt.Println("  No cost lines.")
		return
	}
	fmt.Printf("  %-3s %-12s %15s %-5s %s\n", "#", "TYPE", "AMOUNT", "CCY", "DESCRIPTION")
	fmt.Println(strings.Repeat("-", 70))
	for i, it := range ws.items {
		desc := it.Description
		if it.IsCancelled {
			desc = "[cancelled] " + desc
		}
		fmt.Printf("  %-3d %-12s %15s %-5s %s\n", i+1, it.CostType, it.Amount, it.Currency, desc)
	}
}

func printBreakdown(b *core.LandedCostBreakdown, currency string) {
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("  %-30s %25s\n", "Purchase", amount(b.PurchaseCost, currency))
	fmt.Printf("  %-30s %25s\n", "Freight", amount(b.FreightCost, currency))
	fmt.Printf("  %-30s %25s\n", "Customs & tax", amount(b.CustomsTax, currency))
	fmt.Printf("  %-30s %25s\n", "Warehouse", amount(b.WarehouseCost, currency))
	fmt.Printf("  %-30s %25s\n", "Insurance", amount(b.InsuranceCost, currency))
	fmt.Printf("  %-30s %25s\n", "Agency fee", amount(b.AgencyFee, currency))
	fmt.Printf("  %-30s %25s\n", "Other", amount(b.OtherCosts, currency))
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("  %-30s %25s\n", "TOTAL LANDED COST", amount(b.TotalCost, currency))
	if len(b.Unclassified) > 0 {
		fmt.Printf("  Unclassified lines counted as other: %s\n", strings.Join(b.Unclassified, ", "))
	}
	fmt.Println(strings.Repeat("=", 70))
}

func printProfit(p *core.ProfitAnalysis, currency string) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("  PROFIT ANALYSIS %s\n", p.OrderNo)
	printBreakdown(&p.Costs, currency)
	fmt.Printf("  %-30s %25s\n", "Selling price", amount(p.SellingPrice, currency))
	fmt.Printf("  %-30s %25s  %s\n", "Gross profit", amount(p.GrossProfit, currency), percent(p.GrossMargin))
	fmt.Printf("  %-30s %25s  %s\n", "Net profit", amount(p.NetProfit, currency), percent(p.NetMargin))
	fmt.Println(strings.Repeat("=", 70))
}

func printCommission(c *core.CommissionResult) {
	fmt.Printf("\nAGENCY:  %s\n", c.AgencyCommission)
	fmt.Printf("STAFF:   %s\n", c.StaffCommission)
	fmt.Printf("TOTAL:   %s\n", c.TotalCommission)
}

func printRevaluation(res *app.RevaluationResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 78))
	fmt.Printf("  %-12s %-5s %14s %10s %10s %16s %-9s\n", "REFERENCE", "CCY", "AMOUNT", "BOOKED", "CURRENT", "GAIN/LOSS", "MOVEMENT")
	fmt.Println(strings.Repeat("-", 78))
	for _, r := range res.Balances {
		fmt.Printf("  %-12s %-5s %14s %10s %10s %16s %-9s\n",
			r.Balance.ReferenceID, r.Balance.Currency, r.Balance.Amount,
			r.Balance.BookingRate, r.Balance.CurrentRate,
			r.Result.GainOrLoss, r.Result.Movement)
	}
	fmt.Println(strings.Repeat("-", 78))
	fmt.Printf("  %-54s %16s\n", "NET MOVEMENT", res.NetMovement)
	fmt.Println(strings.Repeat("=", 78))
}

func printSuggestion(res *app.ClassifyResult) {
	s := res.Suggestion
	fmt.Printf("\nTYPE:       %s\n", res.Item.CostType)
	fmt.Printf("AMOUNT:     %s %s\n", res.Item.Amount, res.Item.Currency)
	fmt.Printf("DESC:       %s\n", res.Item.Description)
	fmt.Printf("REASONING:  %s\n", s.Reasoning)
	fmt.Printf("CONFIDENCE: %.2f\n", s.Confidence)
}

func printBalances(result *app.BalancesResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 66))
	fmt.Printf("  %-62s\n", "ACCOUNT BALANCES")
	fmt.Println(strings.Repeat("=", 66))
	fmt.Printf("  %-10s %-5s %15s %15s %15s\n", "ACCOUNT", "CCY", "DEBIT", "CREDIT", "BALANCE")
	fmt.Println(strings.Repeat("-", 66))
	for _, b := range result.Accounts {
		fmt.Printf("  %-10s %-5s %15s %15s %15s\n", b.AccountID, b.Currency,
			b.Debit.StringFixed(money.AmountPrecision),
			b.Credit.StringFixed(money.AmountPrecision),
			b.Balance.StringFixed(money.AmountPrecision))
	}
	fmt.Println(strings.Repeat("=", 66))
}
