package core

import (
	"fmt"
	"strings"

	"textile-finance/internal/money"
)

// ParseCostType maps a tag such as "freight" or "CUSTOMS_TAX" onto a CostType.
func ParseCostType(s string) (CostType, error) {
	ct := CostType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range CostTypes {
		if ct == known {
			return ct, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCostType, s)
}

// CalculateLandedCost sums non-cancelled items per cost type.
// Items with an unrecognised cost type are counted as other costs and listed in
// Unclassified so the caller can surface them. Items without a currency are taken
// to be in the currency of the others; two different currencies are ErrMixedCurrency.
func CalculateLandedCost(items []LandedCostItem) (LandedCostBreakdown, error) {
	buckets := make(map[CostType][]string, len(CostTypes))
	var unclassified []string
	var currency string

	for i, item := range items {
		if item.IsCancelled {
			continue
		}
		if c := strings.ToUpper(strings.TrimSpace(item.Currency)); c != "" {
			if currency != "" && c != currency {
				return LandedCostBreakdown{}, fmt.Errorf("%w: %s and %s", ErrMixedCurrency, currency, c)
			}
			currency = c
		}
		ct, err := ParseCostType(string(item.CostType))
		if err != nil {
			ct = CostOther
			ref := item.ID
			if ref == "" {
				ref = fmt.Sprintf("#%d", i)
			}
			unclassified = append(unclassified, ref)
		}
		buckets[ct] = append(buckets[ct], item.Amount)
	}

	subtotals := make(map[CostType]string, len(CostTypes))
	for _, ct := range CostTypes {
		s, err := money.Sum(buckets[ct]...)
		if err != nil {
			return LandedCostBreakdown{}, fmt.Errorf("summing %s costs: %w", ct, err)
		}
		subtotals[ct] = s
	}

	b := LandedCostBreakdown{
		PurchaseCost:  subtotals[CostPurchase],
		FreightCost:   subtotals[CostFreight],
		CustomsTax:    subtotals[CostCustomsTax],
		WarehouseCost: subtotals[CostWarehouse],
		InsuranceCost: subtotals[CostInsurance],
		AgencyFee:     subtotals[CostAgencyFee],
		OtherCosts:    subtotals[CostOther],
		Currency:      currency,
		Unclassified:  unclassified,
	}

	total, err := money.Sum(b.PurchaseCost, b.FreightCost, b.CustomsTax, b.WarehouseCost, b.InsuranceCost, b.AgencyFee, b.OtherCosts)
	if err != nil {
		return LandedCostBreakdown{}, err
	}
	b.TotalCost = total
	return b, nil
}

// CalculateProfitAnalysis derives gross profit (selling price less purchase cost)
// and net profit (selling price less total landed cost) with their margins.
// An unpriced order (selling price zero) has both margins at "0.00".
func CalculateProfitAnalysis(orderID, orderNo, sellingPrice string, items []LandedCostItem) (ProfitAnalysis, error) {
	price, err := money.Normalize(sellingPrice, money.AmountPrecision)
	if err != nil {
		return ProfitAnalysis{}, fmt.Errorf("selling price for order %s: %w", orderNo, err)
	}

	costs, err := CalculateLandedCost(items)
	if err != nil {
		return ProfitAnalysis{}, fmt.Errorf("landed cost for order %s: %w", orderNo, err)
	}

	gross, err := money.Subtract(price, costs.PurchaseCost, money.AmountPrecision)
	if err != nil {
		return ProfitAnalysis{}, err
	}
	net, err := money.Subtract(price, costs.TotalCost, money.AmountPrecision)
	if err != nil {
		return ProfitAnalysis{}, err
	}

	grossMargin, err := margin(gross, price)
	if err != nil {
		return ProfitAnalysis{}, err
	}
	netMargin, err := margin(net, price)
	if err != nil {
		return ProfitAnalysis{}, err
	}

	return ProfitAnalysis{
		OrderID:      orderID,
		OrderNo:      orderNo,
		SellingPrice: price,
		Costs:        costs,
		GrossProfit:  gross,
		GrossMargin:  grossMargin,
		NetProfit:    net,
		NetMargin:    netMargin,
	}, nil
}

// margin returns profit as a percentage of price; Divide already maps a zero price to zero.
func margin(profit, price string) (string, error) {
	ratio, err := money.Divide(profit, price, money.RatePrecision)
	if err != nil {
		return "", err
	}
	return money.Multiply(ratio, "100", money.AmountPrecision)
}
