package application

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/bnema/repobrief/internal/domain"
	"golang.org/x/sync/errgroup"
)

type loopState int

const (
	stateIdle loopState = iota
	stateSelecting
	stateFetching
	stateRefining
	stateDone
	stateAborted
)

func (s loopState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateSelecting:
		return "selecting"
	case stateFetching:
		return "fetching"
	case stateRefining:
		return "refining"
	case stateDone:
		return "done"
	case stateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("loopState(%d)", int(s))
	}
}

// deepDiveLoop is the bounded refinement state machine. Termination holds
// because explored paths leave the candidate frontier permanently and the
// iteration counter is capped, regardless of what the model proposes.
type deepDiveLoop struct {
	orch  *Orchestrator
	run   *runState
	state loopState

	batch       []domain.CandidateFile
	fetched     map[string]string
	unavailable []string
}

func newDeepDiveLoop(o *Orchestrator, run *runState) *deepDiveLoop {
	return &deepDiveLoop{orch: o, run: run, state: stateIdle}
}

func (l *deepDiveLoop) execute(ctx context.Context) error {
	for {
		l.orch.logger.Debug("deep dive transition", "state", l.state, "iteration", l.run.iterations)

		switch l.state {
		case stateIdle:
			if l.run.understanding.UnexploredCount() == 0 || l.run.iterations >= l.orch.cfg.MaxIters {
				l.state = stateDone
				continue
			}
			l.state = stateSelecting

		case stateSelecting:
			if err := ctx.Err(); err != nil {
				return err
			}
			l.batch = l.run.understanding.NextBatch(l.orch.cfg.Limits.MaxKeyFiles)
			if len(l.batch) == 0 {
				l.state = stateDone
				continue
			}
			l.orch.stage(fmt.Sprintf("deep dive %d: fetching %d files", l.run.iterations+1, len(l.batch)))
			l.state = stateFetching

		case stateFetching:
			l.fetchBatch(ctx)
			if len(l.fetched) == 0 {
				l.state = stateAborted
				continue
			}
			l.orch.stage(fmt.Sprintf("deep dive %d: refining", l.run.iterations+1))
			l.state = stateRefining

		case stateRefining:
			if err := l.refine(ctx); err != nil {
				return fmt.Errorf("deep dive iteration %d: %w", l.run.iterations+1, err)
			}
			if l.run.stop != "" || l.run.iterations >= l.orch.cfg.MaxIters {
				l.state = stateDone
				continue
			}
			l.state = stateSelecting

		case stateDone:
			return nil

		case stateAborted:
			l.run.stop = domain.StopAborted
			return fmt.Errorf("deep dive iteration %d: every file in the batch failed: %w",
				l.run.iterations+1, domain.ErrFetchBatchFailed)
		}
	}
}

// fetchBatch retrieves the selected files concurrently, each under its own
// timeout so one hanging fetch cannot stall the rest. Every path in the
// batch is marked explored up front: a file that failed to fetch must never
// be re-selected either.
func (l *deepDiveLoop) fetchBatch(ctx context.Context) {
	for _, candidate := range l.batch {
		l.run.understanding.MarkExplored(candidate.Path)
	}

	contents := make([]string, len(l.batch))
	fetchErrs := make([]error, len(l.batch))

	g := new(errgroup.Group)
	g.SetLimit(len(l.batch))
	for i, candidate := range l.batch {
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(ctx, l.orch.cfg.FetchTimeout)
			defer cancel()

			contents[i], fetchErrs[i] = l.orch.fetcher.FetchFile(
				fetchCtx, l.run.rc.RepoURL, l.run.rc.Ref, candidate.Path, l.orch.cfg.Limits.MaxFileChars)
			return nil
		})
	}
	_ = g.Wait()

	l.fetched = make(map[string]string, len(l.batch))
	l.unavailable = nil
	for i, candidate := range l.batch {
		if err := fetchErrs[i]; err != nil {
			l.orch.logger.Warn("file unavailable", "path", candidate.Path, "err", err)
			l.unavailable = append(l.unavailable, candidate.Path)
			l.run.unavailable = append(l.run.unavailable, candidate.Path)
			continue
		}

		l.fetched[candidate.Path] = contents[i]
	}
	sort.Strings(l.unavailable)
}

func (l *deepDiveLoop) refine(ctx context.Context) error {
	prompt, err := buildDeepDivePrompt(l.run.rc, l.run.understanding, l.run.iterations+1, l.fetched, l.unavailable)
	if err != nil {
		return err
	}

	if err := l.run.tracker.Reserve(estimateTokens(deepDiveSystemPrompt)+estimateTokens(prompt), estimatedOutputTokens); err != nil {
		if !errors.Is(err, domain.ErrBudgetExceeded) {
			return err
		}
		// Partial progress is kept; only the remaining workflow stops.
		l.orch.logger.Warn("deep dive stopped", "reason", err)
		l.run.stop = domain.StopBudgetExceeded
		l.run.warnings = append(l.run.warnings,
			fmt.Sprintf("deep dive stopped after %d iterations: %v", l.run.iterations, err))
		return nil
	}

	raw, err := l.orch.invoke(ctx, l.run, deepDiveSystemPrompt, prompt, "deep_dive")
	if err != nil {
		return err
	}
	l.run.iterations++

	parsed := parseDeepDive(raw)
	if parsed.Fallback {
		l.run.understanding.Summary = parsed.Raw
		l.run.degraded.DeepDive = true
		l.run.warnings = append(l.run.warnings,
			fmt.Sprintf("deep dive iteration %d returned invalid JSON; used text fallback", l.run.iterations))
		return nil
	}

	l.run.understanding.Summary = parsed.Value.UpdatedSummary
	l.run.understanding.OpenQuestions = parsed.Value.OpenQuestions
	l.run.understanding.AddCandidates(toCandidates(parsed.Value.NewCandidateFiles), 0)

	return nil
}
