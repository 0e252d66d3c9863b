package domain

import "fmt"

// Usage records token consumption for a single model call. Cost is derived
// later from the pricing table, never reported by the provider.
type Usage struct {
	InputTokens       int64
	OutputTokens      int64
	CachedInputTokens int64
}

// TotalTokens returns InputTokens + OutputTokens. Cached input tokens are a
// subset of InputTokens and are not counted twice.
func (u Usage) TotalTokens() int64 {
	return u.InputTokens + u.OutputTokens
}

// UsageTotals accumulates Usage across every model call in a run.
type UsageTotals struct {
	InputTokens       int64
	OutputTokens      int64
	CachedInputTokens int64
	TotalTokens       int64
	CostUSD           float64
	Requests          int
}

func (t UsageTotals) TotalTokensCompact() string {
	return compactNumber(t.TotalTokens)
}

func compactNumber(v int64) string {
	if v < 1_000 {
		return fmt.Sprintf("%d", v)
	}

	if v < 1_000_000 {
		return fmt.Sprintf("%.1fk", float64(v)/1_000)
	}

	return fmt.Sprintf("%.1fM", float64(v)/1_000_000)
}
