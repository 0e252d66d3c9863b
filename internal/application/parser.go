package application

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/bnema/repobrief/internal/domain"
)

// ParsedResponse is the tagged result of parsing one stage's model output:
// either the structured payload for that stage, or the raw text when strict
// decoding failed. Parsing never returns an error; a malformed response
// degrades the stage instead of failing the run.
type ParsedResponse[T any] struct {
	Value    T
	Raw      string
	Fallback bool
}

type candidateFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

type overviewPayload struct {
	Summary        string          `json:"summary"`
	OpenQuestions  []string        `json:"open_questions"`
	CandidateFiles []candidateFile `json:"candidate_files"`
}

type deepDivePayload struct {
	UpdatedSummary    string          `json:"updated_summary"`
	OpenQuestions     []string        `json:"open_questions"`
	NewCandidateFiles []candidateFile `json:"new_candidate_files"`
}

type readingPlanEntry struct {
	Path             string `json:"path"`
	Reason           string `json:"reason"`
	EstimatedMinutes int    `json:"estimated_minutes"`
}

type readingPlanPayload struct {
	Items []readingPlanEntry `json:"items"`
}

// parseOverview requires the full overview field set. A nil slice means the
// key was absent entirely, which counts as a missing required field; an empty
// array decodes to a non-nil slice and is accepted.
func parseOverview(raw string) ParsedResponse[overviewPayload] {
	return parseResponse(raw, func(p overviewPayload) bool {
		return p.Summary != "" && p.OpenQuestions != nil && p.CandidateFiles != nil
	})
}

// parseDeepDive requires only the updated summary; a refinement with no new
// proposals may omit new_candidate_files.
func parseDeepDive(raw string) ParsedResponse[deepDivePayload] {
	return parseResponse(raw, func(p deepDivePayload) bool {
		return p.UpdatedSummary != ""
	})
}

func parseReadingPlan(raw string) ParsedResponse[readingPlanPayload] {
	return parseResponse(raw, func(p readingPlanPayload) bool {
		return p.Items != nil
	})
}

func parseResponse[T any](raw string, valid func(T) bool) ParsedResponse[T] {
	var payload T

	text := extractJSON(raw)
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return ParsedResponse[T]{Raw: raw, Fallback: true}
	}
	if !valid(payload) {
		return ParsedResponse[T]{Raw: raw, Fallback: true}
	}

	return ParsedResponse[T]{Value: payload, Raw: raw}
}

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\n?(.*?)```")

// extractJSON unwraps a markdown code fence when the model wrapped its JSON
// in one; otherwise it returns the trimmed input unchanged.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if json.Valid([]byte(text)) {
		return text
	}

	for _, match := range fencedJSON.FindAllStringSubmatch(text, -1) {
		candidate := strings.TrimSpace(match[1])
		if json.Valid([]byte(candidate)) {
			return candidate
		}
	}

	return text
}

func toCandidates(files []candidateFile) []domain.CandidateFile {
	out := make([]domain.CandidateFile, 0, len(files))
	for _, file := range files {
		out = append(out, domain.CandidateFile{
			Path:   strings.TrimPrefix(strings.TrimSpace(file.Path), "/"),
			Reason: file.Reason,
		})
	}

	return out
}
