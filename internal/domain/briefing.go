package domain

import "time"

// ReadingPlanItem is one ordered entry of the final reading plan. Order is
// significant: on a structured parse it is the model's own ordering, on
// fallback it is first-discovery order of the candidates.
type ReadingPlanItem struct {
	Path             string
	Reason           string
	EstimatedMinutes int
}

// Degraded records, per stage, whether the structured parse failed or the
// stage was skipped entirely. Degradation is reported, never hidden.
type Degraded struct {
	Overview    bool
	DeepDive    bool
	ReadingPlan bool
}

func (d Degraded) Any() bool {
	return d.Overview || d.DeepDive || d.ReadingPlan
}

type StopReason string

const (
	StopCompleted      StopReason = "completed"
	StopBudgetExceeded StopReason = "budget_exceeded"
	StopAborted        StopReason = "aborted"
)

// BriefingResult is the sole externally visible artifact of a run,
// constructed once after the final stage.
type BriefingResult struct {
	RepoURL          string
	Model            string
	Ref              string
	Briefing         string
	OpenQuestions    []string
	ReadingPlan      []ReadingPlanItem
	ExploredFiles    []string
	UnavailableFiles []string
	Iterations       int
	MaxTurns         int
	Degraded         Degraded
	Warnings         []string
	StopReason       StopReason
	Budget           BudgetSnapshot
	GeneratedAt      time.Time
	Duration         time.Duration
}
