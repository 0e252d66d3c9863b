package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/repobrief/internal/domain"
)

// runReadingPlan issues the final call converting the accumulated
// understanding into an ordered reading sequence. On a structured parse the
// model's ordering is authoritative and preserved verbatim; on fallback or
// budget denial the plan is synthesized from the candidates in
// first-discovery order.
func (o *Orchestrator) runReadingPlan(ctx context.Context, run *runState) error {
	if run.stop == domain.StopBudgetExceeded {
		o.synthesizePlan(run, "reading plan skipped: budget exhausted")
		return nil
	}

	prompt, err := buildReadingPlanPrompt(run.rc, run.understanding)
	if err != nil {
		return err
	}

	if err := run.tracker.Reserve(estimateTokens(readingPlanSystemPrompt)+estimateTokens(prompt), estimatedOutputTokens); err != nil {
		if !errors.Is(err, domain.ErrBudgetExceeded) {
			return err
		}
		run.stop = domain.StopBudgetExceeded
		o.synthesizePlan(run, fmt.Sprintf("reading plan skipped: %v", err))
		return nil
	}

	raw, err := o.invoke(ctx, run, readingPlanSystemPrompt, prompt, "reading_plan")
	if err != nil {
		return fmt.Errorf("reading plan stage: %w", err)
	}

	parsed := parseReadingPlan(raw)
	if parsed.Fallback {
		o.synthesizePlan(run, "reading plan stage returned invalid JSON; synthesized from candidates")
		return nil
	}

	run.plan = make([]domain.ReadingPlanItem, 0, len(parsed.Value.Items))
	for _, item := range parsed.Value.Items {
		run.plan = append(run.plan, domain.ReadingPlanItem{
			Path:             item.Path,
			Reason:           item.Reason,
			EstimatedMinutes: item.EstimatedMinutes,
		})
	}

	return nil
}

func (o *Orchestrator) synthesizePlan(run *runState, warning string) {
	o.logger.Warn(warning)
	run.degraded.ReadingPlan = true
	run.warnings = append(run.warnings, warning)

	candidates := run.understanding.Candidates()
	run.plan = make([]domain.ReadingPlanItem, 0, len(candidates))
	for _, candidate := range candidates {
		run.plan = append(run.plan, domain.ReadingPlanItem{Path: candidate.Path})
	}
}
