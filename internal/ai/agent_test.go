package ai_test

import (
	"errors"
	"testing"

	"textile-finance/internal/ai"
	"textile-finance/internal/core"
	"textile-finance/internal/money"
)

func TestCostLineSuggestion_ToItem(t *testing.T) {
	tests := []struct {
		name      string
		in        ai.CostLineSuggestion
		want      core.LandedCostItem
		expectErr error
	}{
		{
			name: "freight line",
			in:   ai.CostLineSuggestion{CostType: "freight", Amount: "1250", Currency: "usd", Description: " Mersin - Hamburg container "},
			want: core.LandedCostItem{CostType: core.CostFreight, Amount: "1250.00", Currency: "USD", Description: "Mersin - Hamburg container"},
		},
		{
			name:      "unknown category",
			in:        ai.CostLineSuggestion{CostType: "DEMURRAGE", Amount: "10", Currency: "USD"},
			expectErr: core.ErrUnknownCostType,
		},
		{
			name:      "malformed amount",
			in:        ai.CostLineSuggestion{CostType: "FREIGHT", Amount: "1.250,00", Currency: "EUR"},
			expectErr: money.ErrInvalidDecimalFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.ToItem()
			if tt.expectErr != nil {
				if !errors.Is(err, tt.expectErr) {
					t.Errorf("expected %v, got %v", tt.expectErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCostLineSuggestion_ToItemRejectsNegativeAndBadCurrency(t *testing.T) {
	if _, err := (ai.CostLineSuggestion{CostType: "OTHER", Amount: "-5", Currency: "USD"}).ToItem(); err == nil {
		t.Error("expected error for negative amount")
	}
	if _, err := (ai.CostLineSuggestion{CostType: "OTHER", Amount: "5", Currency: "DOLLARS"}).ToItem(); err == nil {
		t.Error("expected error for unknown currency")
	}
}

func TestGenerateSchema(t *testing.T) {
	schema, err := ai.GenerateSchema(ai.CostLineSuggestion{})
	if err != nil {
		t.Fatal(err)
	}
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatalf("schema has no properties: %v", schema)
	}
	for _, field := range []string{"cost_type", "amount", "currency", "confidence"} {
		if _, ok := props[field]; !ok {
			t.Errorf("schema missing %s", field)
		}
	}
	if schema["additionalProperties"] != false {
		t.Errorf("additionalProperties = %v, want false", schema["additionalProperties"])
	}
}
