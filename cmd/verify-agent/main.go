// verify-agent sends one sample cost line to the classifier and prints the
// suggestion. It checks the OpenAI key and the response schema end to end.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"textile-finance/internal/ai"
	"textile-finance/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfg.OpenAIAPIKey == "" {
		fmt.Fprintln(os.Stderr, "OPENAI_API_KEY not set")
		os.Exit(1)
	}

	line := "Sea freight Izmir to Hamburg, 2 x 40ft containers, USD 3,450.00"
	if len(os.Args) > 1 {
		line = strings.Join(os.Args[1:], " ")
	}

	agent := ai.NewAgent(cfg.OpenAIAPIKey)
	fmt.Printf("CLASSIFYING: %s\n", line)
	s, err := agent.ClassifyCostLine(context.Background(), line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n--- SUGGESTION ---\n")
	fmt.Printf("Cost type:  %s\n", s.CostType)
	fmt.Printf("Amount:     %s %s\n", s.Amount, s.Currency)
	fmt.Printf("Confidence: %.2f\n", s.Confidence)
	fmt.Printf("Reasoning:  %s\n", s.Reasoning)

	if _, err := s.ToItem(); err != nil {
		fmt.Fprintf(os.Stderr, "\nSuggestion rejected: %v\n", err)
		os.Exit(1)
	}
}
