package briefing

import (
	"fmt"
	"strings"

	"github.com/bnema/repobrief/internal/domain"
)

// RenderMarkdown formats a briefing for stdout. The output is plain markdown
// with no ANSI styling so it pipes cleanly into files and pagers.
func RenderMarkdown(result domain.BriefingResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Repo Brief: %s\n\n", repoTitle(result))
	b.WriteString(strings.TrimSpace(result.Briefing))
	b.WriteString("\n")

	if len(result.OpenQuestions) > 0 {
		b.WriteString("\n## Open Questions\n\n")
		for _, question := range result.OpenQuestions {
			fmt.Fprintf(&b, "- %s\n", question)
		}
	}

	b.WriteString("\n## Reading Plan\n\n")
	if len(result.ReadingPlan) == 0 {
		b.WriteString("No reading plan could be produced for this repository.\n")
	}
	for i, item := range result.ReadingPlan {
		fmt.Fprintf(&b, "%d. `%s`", i+1, item.Path)
		if item.Reason != "" {
			fmt.Fprintf(&b, " — %s", item.Reason)
		}
		if item.EstimatedMinutes > 0 {
			fmt.Fprintf(&b, " (~%d min)", item.EstimatedMinutes)
		}
		b.WriteString("\n")
	}

	if len(result.UnavailableFiles) > 0 {
		b.WriteString("\n## Unavailable Files\n\n")
		for _, path := range result.UnavailableFiles {
			fmt.Fprintf(&b, "- `%s`\n", path)
		}
	}

	b.WriteString("\n---\n")
	b.WriteString(footerLine(result))
	b.WriteString("\n")

	for _, warning := range result.Warnings {
		fmt.Fprintf(&b, "> warning: %s\n", warning)
	}

	return b.String()
}

func repoTitle(result domain.BriefingResult) string {
	trimmed := strings.TrimSuffix(strings.TrimSpace(result.RepoURL), "/")
	if idx := strings.Index(trimmed, "github.com/"); idx >= 0 {
		return strings.TrimSuffix(trimmed[idx+len("github.com/"):], ".git")
	}

	return trimmed
}

func footerLine(result domain.BriefingResult) string {
	totals := result.Budget.Totals
	parts := []string{
		fmt.Sprintf("model: %s", result.Model),
		fmt.Sprintf("tokens: %s (%d in / %d out, %d cached)",
			totals.TotalTokensCompact(), totals.InputTokens, totals.OutputTokens, totals.CachedInputTokens),
		fmt.Sprintf("requests: %d", totals.Requests),
		fmt.Sprintf("cost: $%.4f", totals.CostUSD),
		fmt.Sprintf("iterations: %d", result.Iterations),
		fmt.Sprintf("stopped: %s", result.StopReason),
	}

	return strings.Join(parts, " | ")
}
