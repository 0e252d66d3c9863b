package application

import (
	"context"
	"fmt"

	"github.com/bnema/repobrief/internal/domain"
)

// runOverview issues the single overview call. A budget denial here is a
// run-level stop: the remaining stages are skipped and the briefing falls
// back to the raw repository context.
func (o *Orchestrator) runOverview(ctx context.Context, run *runState) error {
	prompt, err := buildOverviewPrompt(run.rc)
	if err != nil {
		return err
	}

	if err := run.tracker.Reserve(estimateTokens(overviewSystemPrompt)+estimateTokens(prompt), estimatedOutputTokens); err != nil {
		o.logger.Warn("overview stage skipped", "reason", err)
		run.degraded.Overview = true
		run.stop = domain.StopBudgetExceeded
		run.warnings = append(run.warnings, fmt.Sprintf("overview stage skipped: %v", err))
		return nil
	}

	raw, err := o.invoke(ctx, run, overviewSystemPrompt, prompt, "overview")
	if err != nil {
		return fmt.Errorf("overview stage: %w", err)
	}

	parsed := parseOverview(raw)
	if parsed.Fallback {
		run.understanding.Summary = parsed.Raw
		run.degraded.Overview = true
		run.warnings = append(run.warnings, "overview stage returned invalid JSON; used text fallback")
		return nil
	}

	run.understanding.Summary = parsed.Value.Summary
	run.understanding.OpenQuestions = parsed.Value.OpenQuestions
	run.understanding.AddCandidates(toCandidates(parsed.Value.CandidateFiles), o.cfg.Limits.MaxKeyFiles)

	return nil
}
