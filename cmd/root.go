package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/repobrief/internal/version"
	"github.com/spf13/cobra"
)

const (
	exitOK        = 0
	exitFailure   = 1
	exitUsage     = 2
	exitInterrupt = 130
)

// usageError marks configuration and flag mistakes so they map to a distinct
// exit code from runtime failures.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)

	return exitCode(err)
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, context.Canceled) {
		return exitInterrupt
	}

	var usage *usageError
	if errors.As(err, &usage) {
		return exitUsage
	}

	return exitFailure
}

func newRootCmd() *cobra.Command {
	opts := defaultBriefOptions()

	rootCmd := &cobra.Command{
		Use:           "repobrief <repo-url>",
		Short:         "Generate a briefing and reading plan for a GitHub repository",
		Long:          "repobrief analyzes a public GitHub repository with a staged model workflow (overview, bounded deep dive, reading plan) and prints a briefing you can read before opening the code.",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return &usageError{err: err}
			}
			return nil
		},
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrief(cmd, args[0], opts)
		},
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	flags := rootCmd.Flags()
	flags.StringVar(&opts.model, "model", opts.model, "Model used for all three stages")
	flags.StringVar(&opts.format, "format", opts.format, "Output format: markdown or json")
	flags.StringVarP(&opts.output, "output", "o", "", "Write the briefing to a file instead of stdout")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log stage progress and token accounting to stderr")
	flags.StringVar(&opts.ref, "ref", "", "Git ref to analyze (default: the repository's default branch)")
	flags.IntVar(&opts.maxIters, "max-iters", opts.maxIters, "Maximum deep-dive refinement iterations")
	flags.IntVar(&opts.maxTurns, "max-turns", opts.maxTurns, "Turn-count hint passed to the model per stage")
	flags.Float64Var(&opts.maxCost, "max-cost", 0, "Cost ceiling in USD (0 denies all calls; omit to disable)")
	flags.Int64Var(&opts.maxTokens, "max-tokens", 0, "Token ceiling across all calls (0 denies all calls; omit to disable)")
	flags.IntVar(&opts.maxReadmeChars, "max-readme-chars", opts.maxReadmeChars, "Character cap applied to the README")
	flags.IntVar(&opts.maxTreeEntries, "max-tree-entries", opts.maxTreeEntries, "Entry cap applied to the tree summary")
	flags.IntVar(&opts.maxKeyFiles, "max-key-files", opts.maxKeyFiles, "Cap on key files sampled and on each deep-dive batch")
	flags.IntVar(&opts.maxFileChars, "max-file-chars", opts.maxFileChars, "Character cap applied to each fetched file")
	flags.Float64Var(&opts.priceIn, "price-in", 0, "Override input price per 1M tokens (requires --price-out)")
	flags.Float64Var(&opts.priceOut, "price-out", 0, "Override output price per 1M tokens (requires --price-in)")
	flags.Float64Var(&opts.priceCachedIn, "price-cached-in", 0, "Override cached-input price per 1M tokens")

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
