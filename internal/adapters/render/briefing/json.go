package briefing

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bnema/repobrief/internal/domain"
)

type jsonReadingPlanItem struct {
	Path             string `json:"path"`
	Reason           string `json:"reason,omitempty"`
	EstimatedMinutes int    `json:"estimated_minutes,omitempty"`
}

type jsonDegraded struct {
	Overview    bool `json:"overview"`
	DeepDive    bool `json:"deep_dive"`
	ReadingPlan bool `json:"reading_plan"`
}

type jsonBudget struct {
	MaxTokens         *int64   `json:"max_tokens"`
	MaxCostUSD        *float64 `json:"max_cost_usd"`
	InputTokens       int64    `json:"input_tokens"`
	OutputTokens      int64    `json:"output_tokens"`
	CachedInputTokens int64    `json:"cached_input_tokens"`
	TotalTokens       int64    `json:"total_tokens"`
	CostUSD           float64  `json:"cost_usd"`
	Requests          int      `json:"requests"`
}

type jsonResult struct {
	RepoURL          string                `json:"repo_url"`
	Model            string                `json:"model"`
	Ref              string                `json:"ref,omitempty"`
	Briefing         string                `json:"briefing"`
	OpenQuestions    []string              `json:"open_questions"`
	ReadingPlan      []jsonReadingPlanItem `json:"reading_plan"`
	ExploredFiles    []string              `json:"explored_files"`
	UnavailableFiles []string              `json:"unavailable_files"`
	Iterations       int                   `json:"iterations"`
	MaxTurns         int                   `json:"max_turns"`
	Degraded         jsonDegraded          `json:"degraded"`
	Warnings         []string              `json:"warnings"`
	StoppedReason    string                `json:"stopped_reason"`
	Budget           jsonBudget            `json:"budget"`
	GeneratedAt      time.Time             `json:"generated_at"`
	DurationSeconds  float64               `json:"duration_seconds"`
}

// RenderJSON formats a briefing as an indented snake_case JSON document.
func RenderJSON(result domain.BriefingResult) (string, error) {
	plan := make([]jsonReadingPlanItem, 0, len(result.ReadingPlan))
	for _, item := range result.ReadingPlan {
		plan = append(plan, jsonReadingPlanItem{
			Path:             item.Path,
			Reason:           item.Reason,
			EstimatedMinutes: item.EstimatedMinutes,
		})
	}

	totals := result.Budget.Totals
	payload := jsonResult{
		RepoURL:          result.RepoURL,
		Model:            result.Model,
		Ref:              result.Ref,
		Briefing:         result.Briefing,
		OpenQuestions:    emptyNotNil(result.OpenQuestions),
		ReadingPlan:      plan,
		ExploredFiles:    emptyNotNil(result.ExploredFiles),
		UnavailableFiles: emptyNotNil(result.UnavailableFiles),
		Iterations:       result.Iterations,
		MaxTurns:         result.MaxTurns,
		Degraded: jsonDegraded{
			Overview:    result.Degraded.Overview,
			DeepDive:    result.Degraded.DeepDive,
			ReadingPlan: result.Degraded.ReadingPlan,
		},
		Warnings:      emptyNotNil(result.Warnings),
		StoppedReason: string(result.StopReason),
		Budget: jsonBudget{
			MaxTokens:         result.Budget.Limits.MaxTokens,
			MaxCostUSD:        result.Budget.Limits.MaxCostUSD,
			InputTokens:       totals.InputTokens,
			OutputTokens:      totals.OutputTokens,
			CachedInputTokens: totals.CachedInputTokens,
			TotalTokens:       totals.TotalTokens,
			CostUSD:           totals.CostUSD,
			Requests:          totals.Requests,
		},
		GeneratedAt:     result.GeneratedAt.UTC(),
		DurationSeconds: result.Duration.Seconds(),
	}

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode briefing result: %w", err)
	}

	return string(encoded) + "\n", nil
}

func emptyNotNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
