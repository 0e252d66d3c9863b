package application

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/repobrief/internal/domain"
	"github.com/bnema/repobrief/internal/ports"
	"github.com/charmbracelet/log"
)

// estimatedOutputTokens is the output allowance assumed when gating a call
// on the budget before its real usage is known.
const estimatedOutputTokens = 4096

const defaultFetchTimeout = 25 * time.Second

// Config carries everything one briefing run needs. Budget ceilings with nil
// pointers are disabled.
type Config struct {
	RepoURL      string
	Model        string
	Ref          string
	MaxIters     int
	MaxTurns     int
	Limits       domain.ContextLimits
	Budget       domain.BudgetLimits
	Pricing      domain.Pricing
	FetchTimeout time.Duration

	// OnStage, when set, is notified as each stage starts. Used by the CLI
	// spinner; never required.
	OnStage func(stage string)
}

// Orchestrator drives the three briefing stages in strict order, threading
// the budget tracker and the shared Understanding through each. It is the
// single owner of both for the run's lifetime.
type Orchestrator struct {
	model   ports.ModelClient
	fetcher ports.RepoFetcher
	clock   ports.Clock
	logger  *log.Logger
	cfg     Config
}

func NewOrchestrator(model ports.ModelClient, fetcher ports.RepoFetcher, clock ports.Clock, logger *log.Logger, cfg Config) *Orchestrator {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}

	return &Orchestrator{
		model:   model,
		fetcher: fetcher,
		clock:   clock,
		logger:  logger,
		cfg:     cfg,
	}
}

// runState is the mutable per-run accumulation owned by Run. It never
// escapes the orchestrator.
type runState struct {
	rc            domain.RepoContext
	tracker       *domain.BudgetTracker
	understanding *domain.Understanding
	degraded      domain.Degraded
	warnings      []string
	unavailable   []string
	iterations    int
	plan          []domain.ReadingPlanItem
	stop          domain.StopReason
}

// Run executes overview, deep-dive, and reading-plan in order and assembles
// the final briefing. Soft failures (budget denial, parse fallback, per-file
// fetch errors) degrade the result; hard failures (model transport, a fully
// failed fetch batch) return an error alongside whatever was accumulated.
func (o *Orchestrator) Run(ctx context.Context) (domain.BriefingResult, error) {
	started := o.clock.Now()

	o.stage("fetching repository context")
	rc, err := o.fetcher.FetchContext(ctx, o.cfg.RepoURL, o.cfg.Ref, o.cfg.Limits)
	if err != nil {
		return domain.BriefingResult{}, fmt.Errorf("fetch repository context: %w", err)
	}
	o.logger.Debug("repo context assembled",
		"repo", rc.FullName,
		"ref", rc.Ref,
		"key_files", len(rc.KeyFiles),
	)

	run := &runState{
		rc:            rc,
		tracker:       domain.NewBudgetTracker(o.cfg.Budget, o.cfg.Pricing),
		understanding: domain.NewUnderstanding(),
	}

	if err := ctx.Err(); err != nil {
		return o.assemble(run, started), err
	}
	o.stage("overview")
	if err := o.runOverview(ctx, run); err != nil {
		return o.assemble(run, started), err
	}

	if run.stop == "" {
		if err := ctx.Err(); err != nil {
			return o.assemble(run, started), err
		}
		loop := newDeepDiveLoop(o, run)
		if err := loop.execute(ctx); err != nil {
			return o.assemble(run, started), err
		}
	} else {
		run.degraded.DeepDive = true
	}

	if err := ctx.Err(); err != nil {
		return o.assemble(run, started), err
	}
	o.stage("reading plan")
	if err := o.runReadingPlan(ctx, run); err != nil {
		return o.assemble(run, started), err
	}

	result := o.assemble(run, started)
	o.logger.Debug("run finished",
		"stop_reason", result.StopReason,
		"tokens", result.Budget.Totals.TotalTokens,
		"cost_usd", result.Budget.Totals.CostUSD,
	)

	return result, nil
}

func (o *Orchestrator) assemble(run *runState, started time.Time) domain.BriefingResult {
	briefing := run.understanding.Summary
	if briefing == "" {
		briefing = contextOnlyBriefing(run.rc)
	}

	stop := run.stop
	if stop == "" {
		stop = domain.StopCompleted
	}

	now := o.clock.Now()

	return domain.BriefingResult{
		RepoURL:          run.rc.RepoURL,
		Model:            o.cfg.Model,
		Ref:              run.rc.Ref,
		Briefing:         briefing,
		OpenQuestions:    run.understanding.OpenQuestions,
		ReadingPlan:      run.plan,
		ExploredFiles:    run.understanding.ExploredPaths(),
		UnavailableFiles: run.unavailable,
		Iterations:       run.iterations,
		MaxTurns:         o.cfg.MaxTurns,
		Degraded:         run.degraded,
		Warnings:         run.warnings,
		StopReason:       stop,
		Budget:           run.tracker.Snapshot(),
		GeneratedAt:      now,
		Duration:         now.Sub(started),
	}
}

// contextOnlyBriefing renders the raw repository snapshot when every model
// stage was skipped and no summary exists at all.
func contextOnlyBriefing(rc domain.RepoContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", rc.FullName)
	if rc.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", rc.Description)
	}
	if rc.Readme != "" {
		fmt.Fprintf(&b, "## README\n\n%s\n\n", rc.Readme)
	}
	if rc.TreeSummary != "" {
		fmt.Fprintf(&b, "## Repository tree\n\n```\n%s\n```\n", rc.TreeSummary)
	}

	return strings.TrimRight(b.String(), "\n")
}

func (o *Orchestrator) stage(name string) {
	o.logger.Debug("stage", "name", name)
	if o.cfg.OnStage != nil {
		o.cfg.OnStage(name)
	}
}

func (o *Orchestrator) invoke(ctx context.Context, run *runState, system, prompt, shapeHint string) (string, error) {
	raw, usage, err := o.model.Invoke(ctx, ports.ModelRequest{
		Model:     o.cfg.Model,
		System:    system,
		Prompt:    prompt,
		ShapeHint: shapeHint,
		MaxTurns:  o.cfg.MaxTurns,
	})
	if err != nil {
		return "", err
	}

	run.tracker.Record(usage)
	o.logger.Debug("model call recorded",
		"shape", shapeHint,
		"input_tokens", usage.InputTokens,
		"output_tokens", usage.OutputTokens,
	)

	return raw, nil
}
