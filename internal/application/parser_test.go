package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverviewWellFormed(t *testing.T) {
	raw := `{
		"summary": "# Overview\nA CLI tool.",
		"open_questions": ["how is auth handled?"],
		"candidate_files": [{"path": "src/main.py", "reason": "entrypoint"}]
	}`

	parsed := parseOverview(raw)
	require.False(t, parsed.Fallback)
	assert.Equal(t, "# Overview\nA CLI tool.", parsed.Value.Summary)
	assert.Equal(t, []string{"how is auth handled?"}, parsed.Value.OpenQuestions)
	require.Len(t, parsed.Value.CandidateFiles, 1)
	assert.Equal(t, "src/main.py", parsed.Value.CandidateFiles[0].Path)
}

func TestParseOverviewMissingSummaryFallsBack(t *testing.T) {
	parsed := parseOverview(`{"open_questions": [], "candidate_files": []}`)

	assert.True(t, parsed.Fallback)
	assert.Equal(t, `{"open_questions": [], "candidate_files": []}`, parsed.Raw)
}

func TestParseOverviewMissingFieldFallsBack(t *testing.T) {
	// Every overview field is required; an omitted key falls back even when
	// the summary itself is fine. Present-but-empty arrays are accepted.
	tests := []struct {
		name     string
		raw      string
		fallback bool
	}{
		{"missing open_questions", `{"summary": "s", "candidate_files": []}`, true},
		{"missing candidate_files", `{"summary": "s", "open_questions": []}`, true},
		{"only a summary", `{"summary": "a complete-looking overview"}`, true},
		{"empty arrays present", `{"summary": "s", "open_questions": [], "candidate_files": []}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := parseOverview(tt.raw)
			assert.Equal(t, tt.fallback, parsed.Fallback)
			if tt.fallback {
				assert.Equal(t, tt.raw, parsed.Raw)
			}
		})
	}
}

func TestParseOverviewNonJSONFallsBack(t *testing.T) {
	raw := "The repository is a web server written in Python."

	parsed := parseOverview(raw)
	assert.True(t, parsed.Fallback)
	assert.Equal(t, raw, parsed.Raw)
}

func TestParseOverviewUnwrapsFencedJSON(t *testing.T) {
	raw := "Here is the result:\n```json\n{\"summary\": \"fenced\", \"open_questions\": [], \"candidate_files\": []}\n```\nDone."

	parsed := parseOverview(raw)
	require.False(t, parsed.Fallback)
	assert.Equal(t, "fenced", parsed.Value.Summary)
}

func TestParseOverviewUnwrapsPlainFence(t *testing.T) {
	raw := "```\n{\"summary\": \"plain fence\", \"open_questions\": [], \"candidate_files\": []}\n```"

	parsed := parseOverview(raw)
	require.False(t, parsed.Fallback)
	assert.Equal(t, "plain fence", parsed.Value.Summary)
}

func TestParseDeepDiveRequiresUpdatedSummary(t *testing.T) {
	parsed := parseDeepDive(`{"updated_summary": "", "open_questions": [], "new_candidate_files": []}`)
	assert.True(t, parsed.Fallback)

	parsed = parseDeepDive(`{"updated_summary": "better", "new_candidate_files": [{"path": "a.py", "reason": "core"}]}`)
	require.False(t, parsed.Fallback)
	assert.Equal(t, "better", parsed.Value.UpdatedSummary)
	require.Len(t, parsed.Value.NewCandidateFiles, 1)
}

func TestParseDeepDiveNewCandidateFilesOptional(t *testing.T) {
	parsed := parseDeepDive(`{"updated_summary": "refined", "open_questions": []}`)

	require.False(t, parsed.Fallback)
	assert.Equal(t, "refined", parsed.Value.UpdatedSummary)
	assert.Nil(t, parsed.Value.NewCandidateFiles)
}

func TestParseReadingPlanRequiresItems(t *testing.T) {
	parsed := parseReadingPlan(`{"items": null}`)
	assert.True(t, parsed.Fallback)

	parsed = parseReadingPlan(`{"items": []}`)
	assert.False(t, parsed.Fallback)

	parsed = parseReadingPlan(`{"items": [{"path": "README.md", "reason": "start here", "estimated_minutes": 5}]}`)
	require.False(t, parsed.Fallback)
	require.Len(t, parsed.Value.Items, 1)
	assert.Equal(t, 5, parsed.Value.Items[0].EstimatedMinutes)
}

func TestExtractJSONPrefersFirstValidFence(t *testing.T) {
	raw := "```json\nnot json at all\n```\n```json\n{\"ok\": true}\n```"

	assert.JSONEq(t, `{"ok": true}`, extractJSON(raw))
}

func TestToCandidatesNormalizesPaths(t *testing.T) {
	out := toCandidates([]candidateFile{
		{Path: " /src/main.py ", Reason: "entrypoint"},
		{Path: "docs/guide.md"},
	})

	require.Len(t, out, 2)
	assert.Equal(t, "src/main.py", out[0].Path)
	assert.Equal(t, "docs/guide.md", out[1].Path)
}
