package domain

import "fmt"

// Pricing holds USD rates per one million tokens for a model.
type Pricing struct {
	InPer1M       float64
	OutPer1M      float64
	CachedInPer1M float64
}

// DefaultCachedInPer1M is used when an override supplies input/output rates
// without a cached-input rate.
const DefaultCachedInPer1M = 0.25

var builtinPricing = map[string]Pricing{
	"gpt-4.1":      {InPer1M: 2.00, OutPer1M: 8.00, CachedInPer1M: 0.50},
	"gpt-4.1-mini": {InPer1M: 0.40, OutPer1M: 1.60, CachedInPer1M: 0.10},
	"gpt-4.1-nano": {InPer1M: 0.10, OutPer1M: 0.40, CachedInPer1M: 0.025},
	"gpt-4o":       {InPer1M: 2.50, OutPer1M: 10.00, CachedInPer1M: 1.25},
	"gpt-4o-mini":  {InPer1M: 0.15, OutPer1M: 0.60, CachedInPer1M: 0.075},
}

// PricingForModel resolves built-in pricing for a model name. An unknown
// model is a configuration error: silently assuming a default rate would
// make every cost ceiling meaningless.
func PricingForModel(model string) (Pricing, error) {
	pricing, ok := builtinPricing[model]
	if !ok {
		return Pricing{}, fmt.Errorf("%w: %q", ErrUnknownModelPricing, model)
	}

	return pricing, nil
}

// Cost returns the USD cost of a recorded usage. Cached input tokens are
// billed at the cached rate instead of the full input rate.
func (p Pricing) Cost(u Usage) float64 {
	billableInput := u.InputTokens - u.CachedInputTokens
	if billableInput < 0 {
		billableInput = 0
	}

	inCost := float64(billableInput) / 1_000_000 * p.InPer1M
	outCost := float64(u.OutputTokens) / 1_000_000 * p.OutPer1M
	cachedCost := float64(u.CachedInputTokens) / 1_000_000 * p.CachedInPer1M

	return inCost + outCost + cachedCost
}

// Estimate prices a prospective call from token count estimates, assuming no
// cache hits.
func (p Pricing) Estimate(inputTokens, outputTokens int64) float64 {
	return p.Cost(Usage{InputTokens: inputTokens, OutputTokens: outputTokens})
}
