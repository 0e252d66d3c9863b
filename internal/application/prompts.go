package application

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/repobrief/internal/domain"
)

const overviewSystemPrompt = `You are a staff engineer. Goal: produce an "80% understanding" overview of a GitHub repo.

You will be given repo_context JSON that includes metadata, README, tree summary,
key files, and key file contents.

OUTPUT MUST BE VALID JSON with this schema:
{
  "summary": "string (markdown)",
  "open_questions": ["question", ...],
  "candidate_files": [{"path": "string", "reason": "string"}, ...]
}

Summary requirements (in the markdown string):
- What it is / who it's for
- Key features
- Architecture overview (major dirs/modules)
- Execution model / entrypoints (CLI/web/service)
- How to run locally (only if evidenced; otherwise say unknown)
- Config/env vars (only if evidenced; don't invent)
- Data flow (APIs/DB/queues) if evidenced
- Extension points / where to start reading
- Risks/gotchas (tests, build complexity, etc.) if evidenced

Choose candidate_files based on likely entrypoints and core logic (0-8 paths).
If unsure, pick entrypoints + config files. Only use paths that appear in the
provided tree summary or key files.`

const deepDiveSystemPrompt = `You are a staff engineer refining a repository briefing. You will be given:
- the repo URL and ref
- the current summary (markdown)
- the contents of files fetched for this iteration

Improve the summary with sharper, more accurate details. Be explicit about
what is supported by the files vs inferred.

OUTPUT MUST BE VALID JSON with this schema:
{
  "updated_summary": "string (markdown, updated)",
  "open_questions": ["question", ...],
  "new_candidate_files": [{"path": "string", "reason": "string"}, ...]
}

Propose 0-6 new_candidate_files only if they would materially improve the
briefing. Never propose a file that was already provided to you. Keep it
succinct and focused on 80% understanding.`

const readingPlanSystemPrompt = `You are a staff engineer writing a practical reading plan to get productive
fast in a repository. You will be given the repo URL, the final summary, and
the known file paths.

OUTPUT MUST BE VALID JSON with this schema:
{
  "items": [{"path": "string", "reason": "string", "estimated_minutes": 10}, ...]
}

Requirements:
- 8-15 items max, ordered for practical reading: entrypoints and config
  first, then core logic, then tests.
- Each reason is one sentence on why the file matters and what to look for.
- estimated_minutes is a realistic integer.
- Don't invent file paths. Only use paths that appear in the provided
  context, or clearly labeled directory-level guidance (e.g. "src/").`

type overviewPromptInput struct {
	RepoURL     string             `json:"repo_url"`
	Ref         string             `json:"ref"`
	RepoContext repoContextPayload `json:"repo_context"`
	Instruction string             `json:"instruction"`
}

type repoContextPayload struct {
	FullName        string            `json:"full_name"`
	Description     string            `json:"description,omitempty"`
	Stars           int               `json:"stars"`
	Language        string            `json:"language,omitempty"`
	Topics          []string          `json:"topics,omitempty"`
	License         string            `json:"license,omitempty"`
	DefaultBranch   string            `json:"default_branch"`
	Readme          string            `json:"readme"`
	TreeSummary     string            `json:"tree_summary"`
	KeyFiles        []string          `json:"key_files"`
	KeyFileContents map[string]string `json:"key_file_contents"`
}

type deepDivePromptInput struct {
	RepoURL          string            `json:"repo_url"`
	Ref              string            `json:"ref"`
	Iteration        int               `json:"iteration"`
	CurrentSummary   string            `json:"current_summary"`
	OpenQuestions    []string          `json:"open_questions"`
	FetchedFiles     map[string]string `json:"fetched_files"`
	UnavailableFiles []string          `json:"unavailable_files,omitempty"`
	Instruction      string            `json:"instruction"`
}

type readingPlanPromptInput struct {
	RepoURL      string   `json:"repo_url"`
	FinalSummary string   `json:"final_summary"`
	TreeSummary  string   `json:"tree_summary"`
	KnownPaths   []string `json:"known_paths"`
	Note         string   `json:"note"`
}

func buildOverviewPrompt(rc domain.RepoContext) (string, error) {
	input := overviewPromptInput{
		RepoURL: rc.RepoURL,
		Ref:     rc.Ref,
		RepoContext: repoContextPayload{
			FullName:        rc.FullName,
			Description:     rc.Description,
			Stars:           rc.Stars,
			Language:        rc.Language,
			Topics:          rc.Topics,
			License:         rc.License,
			DefaultBranch:   rc.DefaultBranch,
			Readme:          rc.Readme,
			TreeSummary:     rc.TreeSummary,
			KeyFiles:        rc.KeyFiles,
			KeyFileContents: rc.KeyFileContents,
		},
		Instruction: "Analyze this repo context and produce the required JSON output.",
	}

	return marshalPrompt(input)
}

func buildDeepDivePrompt(rc domain.RepoContext, u *domain.Understanding, iteration int, fetched map[string]string, unavailable []string) (string, error) {
	input := deepDivePromptInput{
		RepoURL:          rc.RepoURL,
		Ref:              rc.Ref,
		Iteration:        iteration,
		CurrentSummary:   u.Summary,
		OpenQuestions:    u.OpenQuestions,
		FetchedFiles:     fetched,
		UnavailableFiles: unavailable,
		Instruction:      "Use the fetched file contents to improve the summary and produce the required JSON output.",
	}

	return marshalPrompt(input)
}

func buildReadingPlanPrompt(rc domain.RepoContext, u *domain.Understanding) (string, error) {
	known := make([]string, 0, len(rc.KeyFiles))
	known = append(known, rc.KeyFiles...)
	for _, candidate := range u.Candidates() {
		known = append(known, candidate.Path)
	}

	input := readingPlanPromptInput{
		RepoURL:      rc.RepoURL,
		FinalSummary: u.Summary,
		TreeSummary:  rc.TreeSummary,
		KnownPaths:   known,
		Note:         "Only use file paths that appear in known_paths or tree_summary.",
	}

	return marshalPrompt(input)
}

func marshalPrompt(input any) (string, error) {
	encoded, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("marshal prompt input: %w", err)
	}

	return string(encoded), nil
}

// estimateTokens approximates the token count of one prompt segment. Callers
// gate on the system and user segments summed. Four characters per token
// tracks close enough for budget gating; exact counts come back with the
// provider's usage report.
func estimateTokens(text string) int64 {
	return int64(len(text)/4) + 1
}
