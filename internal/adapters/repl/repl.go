package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"textile-finance/internal/app"
	"textile-finance/internal/core"
)

// worksheet holds the cost lines collected for one order during a session.
type worksheet struct {
	orderNo string
	items   []core.LandedCostItem
}

// Run starts the interactive REPL loop.
// It reads commands from reader, dispatches slash commands deterministically,
// and routes any other input through the cost line classifier.
func Run(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader) {
	fmt.Println("Textile Finance")
	fmt.Println("Describe a cost line to add it to the worksheet, or use /help for commands.")
	fmt.Println(strings.Repeat("-", 70))

	ws := &worksheet{}
	errExit := errors.New("exit")

	dispatchSlash := func(input string) error {
		tokens := strings.Fields(strings.TrimPrefix(input, "/"))
		if len(tokens) == 0 {
			return nil
		}
		cmd := strings.ToLower(tokens[0])
		args := tokens[1:]

		switch cmd {
		case "order":
			if len(args) < 1 {
				fmt.Println("Usage: /order <order-no>")
				return nil
			}
			ws.orderNo = args[0]
			ws.items = nil
			fmt.Printf("Worksheet cleared for order %s.\n", ws.orderNo)

		case "add":
			handleAddCosts(reader, ws)

		case "costs":
			res, err := svc.CalculateLandedCost(ctx, ws.items)
			if err != nil {
				return err
			}
			printWorksheet(ws)
			printBreakdown(res, res.Currency)

		case "drop":
			if len(args) < 1 {
				fmt.Println("Usage: /drop <line-number>")
				return nil
			}
			return ws.drop(args[0])

		case "profit":
			if len(args) < 1 {
				fmt.Println("Usage: /profit <selling-price> [currency]")
				return nil
			}
			var currency string
			if len(args) > 1 {
				currency = strings.ToUpper(args[1])
			}
			res, err := svc.AnalyzeProfit(ctx, app.ProfitRequest{
				OrderNo:      ws.orderNo,
				SellingPrice: args[0],
				Items:        ws.items,
			})
			if err != nil {
				return err
			}
			if currency == "" {
				currency = res.Costs.Currency
			}
			printProfit(res, currency)

		case "commission", "comm":
			if len(args) < 2 {
				fmt.Println("Usage: /commission <order-total> <agency-rate> [staff-rate]")
				return nil
			}
			in := core.CommissionInput{
				OrderID:              ws.orderNo,
				OrderTotal:           args[0],
				AgencyCommissionRate: args[1],
				AgencyID:             "REPL",
			}
			if len(args) > 2 {
				staff := "REPL"
				in.AgencyStaffID = &staff
				in.StaffCommissionRate = args[2]
			}
			res, err := svc.CalculateCommission(ctx, in)
			if err != nil {
				return err
			}
			printCommission(res)

		case "fx", "revalue":
			handleRevaluation(ctx, reader, svc)

		case "bal", "balances":
			res, err := svc.GetBalances(ctx)
			if err != nil {
				return err
			}
			printBalances(res)

		case "cancel":
			if len(args) < 2 {
				fmt.Println("Usage: /cancel <posting-id> <reason>")
				return nil
			}
			if err := svc.CancelPosting(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
				return err
			}
			fmt.Printf("Posting %s CANCELLED.\n", args[0])

		case "help", "h":
			printHelp()

		case "exit", "quit", "q":
			return errExit

		default:
			fmt.Printf("Unknown command: /%s. Type /help for available commands.\n", cmd)
		}
		return nil
	}

	for {
		fmt.Print("\n> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if err := dispatchSlash(input); err != nil {
				if errors.Is(err, errExit) {
					return
				}
				fmt.Printf("Error: %v\n", err)
			}
			continue
		}

		handleClassify(ctx, reader, svc, ws, input)
	}
}

// handleClassify asks the classifier for a cost item and adds it once the user approves.
func handleClassify(ctx context.Context, reader *bufio.Reader, svc app.ApplicationService, ws *worksheet, text string) {
	fmt.Println("Classifying...")
	res, err := svc.ClassifyCostLine(ctx, text)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	printSuggestion(res)

	if res.Suggestion.Confidence < 0.6 {
		fmt.Println("\nWARNING: Low confidence classification.")
	}

	fmt.Print("\nAdd this line to the worksheet? (y/n): ")
	choice, _ := reader.ReadString('\n')
	choice = strings.TrimSpace(strings.ToLower(choice))
	if choice != "y" && choice != "yes" {
		fmt.Println("Line discarded.")
		return
	}
	ws.items = append(ws.items, res.Item)
	fmt.Printf("Line %d ADDED.\n", len(ws.items))
}

func (ws *worksheet) drop(arg string) error {
	var n int
	if _, err := fmt.Sscanf(arg, "%d", &n); err != nil || n < 1 || n > len(ws.items) {
		return fmt.Errorf("no worksheet line %q", arg)
	}
	ws.items[n-1].IsCancelled = true
	fmt.Printf("Line %d marked as cancelled.\n", n)
	return nil
}
