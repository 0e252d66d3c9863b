package briefing

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/bnema/repobrief/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() domain.BriefingResult {
	maxCost := 0.50
	return domain.BriefingResult{
		RepoURL:  "https://github.com/acme/widget",
		Model:    "gpt-4.1-mini",
		Ref:      "main",
		Briefing: "# Overview\n\nA widget service.",
		OpenQuestions: []string{
			"where is persistence configured?",
		},
		ReadingPlan: []domain.ReadingPlanItem{
			{Path: "src/main.py", Reason: "entrypoint", EstimatedMinutes: 10},
			{Path: "src/db.py", Reason: "storage layer", EstimatedMinutes: 15},
		},
		ExploredFiles:    []string{"src/main.py", "src/db.py"},
		UnavailableFiles: []string{"src/legacy.py"},
		Iterations:       2,
		MaxTurns:         12,
		Warnings:         []string{"deep dive iteration 2 returned invalid JSON; used text fallback"},
		StopReason:       domain.StopCompleted,
		Budget: domain.BudgetSnapshot{
			Limits: domain.BudgetLimits{MaxCostUSD: &maxCost},
			Totals: domain.UsageTotals{
				InputTokens:       10_000,
				OutputTokens:      2_000,
				CachedInputTokens: 1_500,
				TotalTokens:       12_000,
				CostUSD:           0.0123,
				Requests:          4,
			},
		},
		GeneratedAt: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		Duration:    42 * time.Second,
	}
}

func TestRenderMarkdownLayout(t *testing.T) {
	output := RenderMarkdown(sampleResult())

	assert.Contains(t, output, "# Repo Brief: acme/widget")
	assert.Contains(t, output, "A widget service.")
	assert.Contains(t, output, "## Open Questions")
	assert.Contains(t, output, "- where is persistence configured?")
	assert.Contains(t, output, "## Reading Plan")
	assert.Contains(t, output, "1. `src/main.py` — entrypoint (~10 min)")
	assert.Contains(t, output, "2. `src/db.py` — storage layer (~15 min)")
	assert.Contains(t, output, "## Unavailable Files")
	assert.Contains(t, output, "- `src/legacy.py`")
	assert.Contains(t, output, "model: gpt-4.1-mini")
	assert.Contains(t, output, "cost: $0.0123")
	assert.Contains(t, output, "stopped: completed")
	assert.Contains(t, output, "> warning: deep dive iteration 2")
}

func TestRenderMarkdownEmptyPlan(t *testing.T) {
	result := sampleResult()
	result.ReadingPlan = nil
	result.OpenQuestions = nil
	result.UnavailableFiles = nil
	result.Warnings = nil

	output := RenderMarkdown(result)

	assert.Contains(t, output, "No reading plan could be produced")
	assert.NotContains(t, output, "## Open Questions")
	assert.NotContains(t, output, "## Unavailable Files")
	assert.NotContains(t, output, "> warning:")
}

func TestRenderMarkdownPlanItemWithoutEstimate(t *testing.T) {
	result := sampleResult()
	result.ReadingPlan = []domain.ReadingPlanItem{{Path: "src/main.py"}}

	output := RenderMarkdown(result)

	assert.Contains(t, output, "1. `src/main.py`\n")
	assert.NotContains(t, output, "(~0 min)")
}

func TestRenderJSONSchema(t *testing.T) {
	output, err := RenderJSON(sampleResult())
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(output)))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &decoded))

	assert.Equal(t, "https://github.com/acme/widget", decoded["repo_url"])
	assert.Equal(t, "completed", decoded["stopped_reason"])
	assert.Equal(t, float64(2), decoded["iterations"])
	assert.Equal(t, float64(42), decoded["duration_seconds"])

	budget, ok := decoded["budget"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(12_000), budget["total_tokens"])
	assert.Equal(t, 0.0123, budget["cost_usd"])
	assert.Equal(t, 0.50, budget["max_cost_usd"])
	assert.Nil(t, budget["max_tokens"])

	plan, ok := decoded["reading_plan"].([]any)
	require.True(t, ok)
	require.Len(t, plan, 2)
	first, ok := plan[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "src/main.py", first["path"])
	assert.Equal(t, float64(10), first["estimated_minutes"])
}

func TestRenderJSONEmptySlicesNotNull(t *testing.T) {
	result := sampleResult()
	result.OpenQuestions = nil
	result.Warnings = nil
	result.ExploredFiles = nil

	output, err := RenderJSON(result)
	require.NoError(t, err)

	assert.Contains(t, output, "\"open_questions\": []")
	assert.Contains(t, output, "\"warnings\": []")
	assert.Contains(t, output, "\"explored_files\": []")
}

func TestRenderSummaryShowsCostAndWarnings(t *testing.T) {
	result := sampleResult()
	result.Degraded = domain.Degraded{DeepDive: true}

	output, err := RenderSummary(result)
	require.NoError(t, err)

	assert.Contains(t, output, "Run summary")
	assert.Contains(t, output, "model: gpt-4.1-mini")
	assert.Contains(t, output, "$0.0123")
	assert.Contains(t, output, "ceiling $0.5000")
	assert.Contains(t, output, "requests: 4")
	assert.Contains(t, output, "stopped: completed")
	assert.Contains(t, output, "degraded: deep-dive")
	assert.Contains(t, output, "warning:")
}

func TestRepoTitleFallsBackToTrimmedURL(t *testing.T) {
	result := sampleResult()
	result.RepoURL = "https://example.com/mirror/widget/"

	assert.Equal(t, "https://example.com/mirror/widget", repoTitle(result))
}
