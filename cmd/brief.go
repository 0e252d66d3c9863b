package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tomlpricing "github.com/bnema/repobrief/internal/adapters/pricing/toml"
	renderbriefing "github.com/bnema/repobrief/internal/adapters/render/briefing"
	"github.com/bnema/repobrief/internal/application"
	"github.com/bnema/repobrief/internal/domain"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

type briefOptions struct {
	model          string
	format         string
	output         string
	verbose        bool
	ref            string
	maxIters       int
	maxTurns       int
	maxCost        float64
	maxTokens      int64
	maxReadmeChars int
	maxTreeEntries int
	maxKeyFiles    int
	maxFileChars   int
	priceIn        float64
	priceOut       float64
	priceCachedIn  float64
}

func defaultBriefOptions() *briefOptions {
	limits := domain.DefaultContextLimits()

	return &briefOptions{
		model:          "gpt-4.1-mini",
		format:         formatMarkdown,
		maxIters:       2,
		maxTurns:       12,
		maxReadmeChars: limits.MaxReadmeChars,
		maxTreeEntries: limits.MaxTreeEntries,
		maxKeyFiles:    limits.MaxKeyFiles,
		maxFileChars:   limits.MaxFileChars,
	}
}

func runBrief(cmd *cobra.Command, repoURL string, opts *briefOptions) error {
	if err := validateBriefOptions(cmd, opts); err != nil {
		return err
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return &usageError{err: errors.New("OPENAI_API_KEY is not set")}
	}

	app, err := wireApp(apiKey, opts.verbose)
	if err != nil {
		return err
	}

	pricing, err := resolvePricing(cmd, app.pricing, opts)
	if err != nil {
		return &usageError{err: err}
	}

	var onStage func(string)
	orch := application.NewOrchestrator(app.model, app.fetcher, app.clock, app.logger, application.Config{
		RepoURL:  repoURL,
		Model:    opts.model,
		Ref:      opts.ref,
		MaxIters: opts.maxIters,
		MaxTurns: opts.maxTurns,
		Limits: domain.ContextLimits{
			MaxReadmeChars: opts.maxReadmeChars,
			MaxTreeEntries: opts.maxTreeEntries,
			MaxKeyFiles:    opts.maxKeyFiles,
			MaxFileChars:   opts.maxFileChars,
		},
		Budget:  budgetLimits(cmd, opts),
		Pricing: pricing,
		OnStage: func(stage string) {
			if onStage != nil {
				onStage(stage)
			}
		},
	})

	var result domain.BriefingResult
	run := func(ctx context.Context, stage func(string)) error {
		onStage = stage
		runResult, runErr := orch.Run(ctx)
		result = runResult
		return runErr
	}

	var runErr error
	if opts.format == formatMarkdown && opts.output == "" && !opts.verbose && isTerminal(cmd.ErrOrStderr()) {
		runErr = runBriefSpinner(cmd.Context(), cmd.ErrOrStderr(), run)
	} else {
		runErr = run(cmd.Context(), nil)
	}

	// A partial result is still worth printing: an aborted run reports what
	// it managed to learn before failing.
	if result.RepoURL != "" {
		if writeErr := writeBriefing(cmd, result, opts); writeErr != nil && runErr == nil {
			runErr = writeErr
		}
	}

	return runErr
}

// isTerminal reports whether the writer is an interactive terminal. Spinner
// frames are never written to a piped or redirected stderr.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func validateBriefOptions(cmd *cobra.Command, opts *briefOptions) error {
	if opts.format != formatMarkdown && opts.format != formatJSON {
		return &usageError{err: fmt.Errorf("invalid --format %q: expected markdown or json", opts.format)}
	}

	inSet := cmd.Flags().Changed("price-in")
	outSet := cmd.Flags().Changed("price-out")
	if inSet != outSet {
		return &usageError{err: errors.New("--price-in and --price-out must be set together")}
	}
	if cmd.Flags().Changed("price-cached-in") && !inSet {
		return &usageError{err: errors.New("--price-cached-in requires --price-in and --price-out")}
	}

	if opts.maxIters < 0 {
		return &usageError{err: errors.New("--max-iters must not be negative")}
	}

	return nil
}

// budgetLimits enables a ceiling only when its flag was explicitly passed.
// An explicit zero is a real ceiling that denies every call; negative values
// disable the ceiling like an omitted flag.
func budgetLimits(cmd *cobra.Command, opts *briefOptions) domain.BudgetLimits {
	var limits domain.BudgetLimits

	if cmd.Flags().Changed("max-tokens") && opts.maxTokens >= 0 {
		maxTokens := opts.maxTokens
		limits.MaxTokens = &maxTokens
	}
	if cmd.Flags().Changed("max-cost") && opts.maxCost >= 0 {
		maxCost := opts.maxCost
		limits.MaxCostUSD = &maxCost
	}

	return limits
}

func resolvePricing(cmd *cobra.Command, source *tomlpricing.Source, opts *briefOptions) (domain.Pricing, error) {
	var overrides tomlpricing.Overrides
	if cmd.Flags().Changed("price-in") {
		overrides.InPer1M = &opts.priceIn
	}
	if cmd.Flags().Changed("price-out") {
		overrides.OutPer1M = &opts.priceOut
	}
	if cmd.Flags().Changed("price-cached-in") {
		overrides.CachedInPer1M = &opts.priceCachedIn
	}

	return source.Resolve(opts.model, overrides)
}

func writeBriefing(cmd *cobra.Command, result domain.BriefingResult, opts *briefOptions) error {
	var rendered string
	switch opts.format {
	case formatJSON:
		encoded, err := renderbriefing.RenderJSON(result)
		if err != nil {
			return err
		}
		rendered = encoded
	default:
		rendered = renderbriefing.RenderMarkdown(result)
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("write briefing to %s: %w", opts.output, err)
		}
	} else {
		if _, err := fmt.Fprint(cmd.OutOrStdout(), rendered); err != nil {
			return err
		}
	}

	if opts.format == formatMarkdown {
		summary, err := renderbriefing.RenderSummary(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), summary)
	}

	return nil
}
