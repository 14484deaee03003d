package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"textile-finance/internal/core"
	"textile-finance/internal/money"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

// CostLineSuggestion is the model's reading of one free-text cost line
// (a freight invoice line, a customs receipt, a broker note).
type CostLineSuggestion struct {
	CostType    string  `json:"cost_type" jsonschema:"enum=PURCHASE,enum=FREIGHT,enum=CUSTOMS_TAX,enum=WAREHOUSE,enum=INSURANCE,enum=AGENCY_FEE,enum=OTHER" jsonschema_description:"The landed cost category of this line"`
	Amount      string  `json:"amount" jsonschema_description:"The exact amount as a positive decimal string with '.' as separator and no thousands separators, e.g. '1250.00'"`
	Currency    string  `json:"currency" jsonschema_description:"ISO 4217 currency code of the amount, e.g. 'USD', 'EUR', 'TRY'"`
	Description string  `json:"description" jsonschema_description:"A short normalized description of the cost"`
	Confidence  float64 `json:"confidence" jsonschema_description:"Confidence score between 0.0 and 1.0"`
	Reasoning   string  `json:"reasoning" jsonschema_description:"Why this category was chosen"`
}

// ToItem validates the suggestion and converts it into a LandedCostItem.
func (s CostLineSuggestion) ToItem() (core.LandedCostItem, error) {
	ct, err := core.ParseCostType(s.CostType)
	if err != nil {
		return core.LandedCostItem{}, err
	}
	amount, err := money.Normalize(s.Amount, money.AmountPrecision)
	if err != nil {
		return core.LandedCostItem{}, fmt.Errorf("suggested amount: %w", err)
	}
	if strings.HasPrefix(amount, "-") {
		return core.LandedCostItem{}, fmt.Errorf("suggested amount %s is negative", amount)
	}
	currency, err := money.ValidateCurrency(s.Currency)
	if err != nil {
		return core.LandedCostItem{}, err
	}
	return core.LandedCostItem{
		CostType:    ct,
		Amount:      amount,
		Currency:    currency,
		Description: strings.TrimSpace(s.Description),
	}, nil
}

// CostClassifier turns a free-text cost line into a structured suggestion.
type CostClassifier interface {
	ClassifyCostLine(ctx context.Context, text string) (*CostLineSuggestion, error)
}

type Agent struct {
	client *openai.Client
}

func NewAgent(apiKey string) *Agent {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Agent{client: &client}
}

func (a *Agent) ClassifyCostLine(ctx context.Context, text string) (*CostLineSuggestion, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("cost line text is empty")
	}

	prompt := fmt.Sprintf(`You are a cost accountant for a carpet and textile export business.
Classify the cost line below into exactly one landed cost category.
Categories:
- PURCHASE: price paid to the weaver or supplier for the goods
- FREIGHT: sea, air or road transport
- CUSTOMS_TAX: duties, import/export taxes, customs broker charges levied by customs
- WAREHOUSE: storage and handling
- INSURANCE: cargo insurance premiums
- AGENCY_FEE: fees paid to buying or selling agencies
- OTHER: anything else
Rules:
1. Amounts must be exact strings (e.g. "1250.00"), never negative.
2. Use the currency stated in the text; do not convert.
3. Provide a confidence score (0.0-1.0) and explain your reasoning.

Cost line: %s`, text)

	schemaMap, err := GenerateSchema(CostLineSuggestion{})
	if err != nil {
		return nil, err
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "landed_cost_line",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("A classified landed cost line"),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var suggestion CostLineSuggestion
	if err := json.Unmarshal([]byte(content), &suggestion); err != nil {
		return nil, fmt.Errorf("failed to parse completion: %w", err)
	}
	return &suggestion, nil
}

// GenerateSchema reflects v into a JSON schema map with no references and no
// additional properties.
func GenerateSchema(v any) (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schemaJSON, err := json.Marshal(reflector.Reflect(v))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}
	return schemaMap, nil
}
