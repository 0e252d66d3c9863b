package domain

import (
	"fmt"
	"sync"
)

// BudgetLimits holds the configured ceilings for a run. A nil pointer
// disables that ceiling.
type BudgetLimits struct {
	MaxTokens  *int64
	MaxCostUSD *float64
}

// BudgetSnapshot is the final accounting state reported in the briefing.
type BudgetSnapshot struct {
	Limits BudgetLimits
	Totals UsageTotals
}

// BudgetTracker accumulates token and cost totals across every model call.
// Reserve must be consulted before each call; totals only ever grow.
// Record is safe under concurrent calls.
type BudgetTracker struct {
	mu       sync.Mutex
	limits   BudgetLimits
	pricing  Pricing
	tokens   int64
	cached   int64
	input    int64
	output   int64
	costUSD  float64
	requests int
}

func NewBudgetTracker(limits BudgetLimits, pricing Pricing) *BudgetTracker {
	return &BudgetTracker{limits: limits, pricing: pricing}
}

// Reserve checks whether a call with the given estimated prompt and output
// token counts may be issued. It returns ErrBudgetExceeded when a ceiling has
// already been reached, or when the estimate would push past one. A denial is
// a run-level stop condition: the caller must not issue the remaining calls.
func (t *BudgetTracker) Reserve(estimatedInput, estimatedOutput int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if max := t.limits.MaxTokens; max != nil {
		if t.tokens >= *max {
			return fmt.Errorf("token ceiling reached (%d/%d): %w", t.tokens, *max, ErrBudgetExceeded)
		}
		if t.tokens+estimatedInput+estimatedOutput > *max {
			return fmt.Errorf("token ceiling would be exceeded (%d+%d/%d): %w",
				t.tokens, estimatedInput+estimatedOutput, *max, ErrBudgetExceeded)
		}
	}

	if max := t.limits.MaxCostUSD; max != nil {
		if t.costUSD >= *max {
			return fmt.Errorf("cost ceiling reached ($%.4f/$%.4f): %w", t.costUSD, *max, ErrBudgetExceeded)
		}
		if estimated := t.pricing.Estimate(estimatedInput, estimatedOutput); t.costUSD+estimated > *max {
			return fmt.Errorf("cost ceiling would be exceeded ($%.4f+$%.4f/$%.4f): %w",
				t.costUSD, estimated, *max, ErrBudgetExceeded)
		}
	}

	return nil
}

// Record adds a completed call's usage to the running totals, pricing it
// with the tracker's model rates.
func (t *BudgetTracker) Record(u Usage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.input += u.InputTokens
	t.output += u.OutputTokens
	t.cached += u.CachedInputTokens
	t.tokens += u.TotalTokens()
	t.costUSD += t.pricing.Cost(u)
	t.requests++
}

// Remaining reports headroom under each enabled ceiling. Nil means the
// ceiling is disabled; a floored zero means it is exhausted.
func (t *BudgetTracker) Remaining() (tokens *int64, costUSD *float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if max := t.limits.MaxTokens; max != nil {
		left := *max - t.tokens
		if left < 0 {
			left = 0
		}
		tokens = &left
	}

	if max := t.limits.MaxCostUSD; max != nil {
		left := *max - t.costUSD
		if left < 0 {
			left = 0
		}
		costUSD = &left
	}

	return tokens, costUSD
}

func (t *BudgetTracker) Snapshot() BudgetSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return BudgetSnapshot{
		Limits: t.limits,
		Totals: UsageTotals{
			InputTokens:       t.input,
			OutputTokens:      t.output,
			CachedInputTokens: t.cached,
			TotalTokens:       t.tokens,
			CostUSD:           t.costUSD,
			Requests:          t.requests,
		},
	}
}
