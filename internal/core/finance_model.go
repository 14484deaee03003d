package core

import "errors"

var (
	// ErrUnknownCostType is returned by ParseCostType for a tag outside the seven known cost types.
	ErrUnknownCostType = errors.New("unknown cost type")
	// ErrNothingToPost is returned by the ledger entry builders when the amount to post is zero.
	ErrNothingToPost = errors.New("nothing to post: amount is zero")
	// ErrInvalidCommissionInput is returned by CommissionInput.Validate.
	ErrInvalidCommissionInput = errors.New("invalid commission input")
	// ErrNegativeAmount is returned by the commission builders for a negative amount.
	ErrNegativeAmount = errors.New("amount cannot be negative")
	// ErrMixedCurrency is returned when cost items of one order carry different currencies.
	ErrMixedCurrency = errors.New("cost items in more than one currency")
)

// CommissionInput describes an order whose total is split between the agency and,
// optionally, the agency staff member who originated the sale.
// Rates are percentages as decimal strings ("8" means 8%).
type CommissionInput struct {
	OrderID              string  `json:"order_id"`
	OrderTotal           string  `json:"order_total" jsonschema_description:"Order total as a decimal string with '.' separator"`
	AgencyCommissionRate string  `json:"agency_commission_rate" jsonschema_description:"Gross agency commission rate in percent"`
	StaffCommissionRate  string  `json:"staff_commission_rate" jsonschema_description:"Staff share in percent of the order total, carved out of the agency commission"`
	AgencyID             string  `json:"agency_id"`
	AgencyStaffID        *string `json:"agency_staff_id,omitempty"`
}

// CommissionResult holds the commission split. AgencyCommission + StaffCommission == TotalCommission.
type CommissionResult struct {
	AgencyCommission string `json:"agency_commission"`
	StaffCommission  string `json:"staff_commission"`
	TotalCommission  string `json:"total_commission"`
}

// CostType classifies a landed cost item.
type CostType string

const (
	CostPurchase   CostType = "PURCHASE"
	CostFreight    CostType = "FREIGHT"
	CostCustomsTax CostType = "CUSTOMS_TAX"
	CostWarehouse  CostType = "WAREHOUSE"
	CostInsurance  CostType = "INSURANCE"
	CostAgencyFee  CostType = "AGENCY_FEE"
	CostOther      CostType = "OTHER"
)

// CostTypes lists every known cost type in breakdown order.
var CostTypes = []CostType{CostPurchase, CostFreight, CostCustomsTax, CostWarehouse, CostInsurance, CostAgencyFee, CostOther}

// LandedCostItem is one itemized cost attached to an order.
type LandedCostItem struct {
	ID          string   `json:"id,omitempty"`
	CostType    CostType `json:"cost_type" jsonschema:"enum=PURCHASE,enum=FREIGHT,enum=CUSTOMS_TAX,enum=WAREHOUSE,enum=INSURANCE,enum=AGENCY_FEE,enum=OTHER"`
	Amount      string   `json:"amount" jsonschema_description:"Cost amount as a positive decimal string"`
	Currency    string   `json:"currency,omitempty"`
	Description string   `json:"description,omitempty"`
	IsCancelled bool     `json:"is_cancelled"`
}

// LandedCostBreakdown sums non-cancelled items per cost type.
// Currency is the items' common currency, empty when none of them names one.
// Unclassified lists the items (by ID, or "#index" when the ID is empty) whose
// cost type was not recognised; their amounts are included in OtherCosts.
type LandedCostBreakdown struct {
	PurchaseCost  string   `json:"purchase_cost"`
	FreightCost   string   `json:"freight_cost"`
	CustomsTax    string   `json:"customs_tax"`
	WarehouseCost string   `json:"warehouse_cost"`
	InsuranceCost string   `json:"insurance_cost"`
	AgencyFee     string   `json:"agency_fee"`
	OtherCosts    string   `json:"other_costs"`
	TotalCost     string   `json:"total_cost"`
	Currency      string   `json:"currency,omitempty"`
	Unclassified  []string `json:"unclassified,omitempty"`
}

// ProfitAnalysis is the per-order P&L view built on a landed cost breakdown.
type ProfitAnalysis struct {
	OrderID      string              `json:"order_id"`
	OrderNo      string              `json:"order_no"`
	SellingPrice string              `json:"selling_price"`
	Costs        LandedCostBreakdown `json:"costs"`
	GrossProfit  string              `json:"gross_profit"`
	GrossMargin  string              `json:"gross_margin"`
	NetProfit    string              `json:"net_profit"`
	NetMargin    string              `json:"net_margin"`
}

// FxGainLossInput describes an open foreign-currency balance to revalue.
type FxGainLossInput struct {
	OriginalAmount string `json:"original_amount"`
	OriginalRate   string `json:"original_rate" jsonschema_description:"Booking exchange rate to the local currency"`
	CurrentRate    string `json:"current_rate"`
	Currency       string `json:"currency"`
}

// FxMovement is the direction of a revaluation.
type FxMovement string

const (
	FxGain      FxMovement = "GAIN"
	FxLoss      FxMovement = "LOSS"
	FxUnchanged FxMovement = "UNCHANGED"
)

// FxGainLossResult is the revaluation of one balance in local currency.
// IsGain is true only for a strictly positive GainOrLoss; Movement distinguishes
// a loss from no movement at all.
type FxGainLossResult struct {
	OriginalValueLocal string     `json:"original_value_local"`
	CurrentValueLocal  string     `json:"current_value_local"`
	GainOrLoss         string     `json:"gain_or_loss"`
	IsGain             bool       `json:"is_gain"`
	Movement           FxMovement `json:"movement"`
}

type EntryType string

const (
	EntryCommission EntryType = "COMMISSION"
	EntryFxGainLoss EntryType = "FX_GAIN_LOSS"
)

const (
	CostCenterAgencyCommission = "AGENCY_COMMISSION"
	CostCenterStaffCommission  = "STAFF_COMMISSION"
	CostCenterFxGainLoss       = "FX_GAIN_LOSS"
)

const (
	ReferenceOrder      = "ORDER"
	ReferenceCollection = "COLLECTION"
)

// LedgerEntry is a single-sided posting: exactly one of Debit and Credit is non-zero
// and the other is "0.00". ContraAccountID names the account that receives the
// mirrored half; see Contra.
type LedgerEntry struct {
	Type            EntryType `json:"type"`
	AccountID       string    `json:"account_id"`
	ContraAccountID string    `json:"contra_account_id"`
	Debit           string    `json:"debit"`
	Credit          string    `json:"credit"`
	Currency        string    `json:"currency"`
	ExchangeRate    string    `json:"exchange_rate"`
	CostCenter      string    `json:"cost_center"`
	Description     string    `json:"description"`
	ReferenceID     string    `json:"reference_id"`
	ReferenceType   string    `json:"reference_type"`
	IsCancelled     bool      `json:"is_cancelled"`
}
