package briefing

import (
	"fmt"
	"strings"

	"github.com/bnema/repobrief/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

func renderSummaryView(result domain.BriefingResult, s styles) string {
	totals := result.Budget.Totals

	lines := []string{
		s.title.Render("Run summary"),
		summaryLine(s, "model", result.Model),
		summaryLine(s, "tokens", fmt.Sprintf("%s (%d in / %d out, %d cached)",
			totals.TotalTokensCompact(), totals.InputTokens, totals.OutputTokens, totals.CachedInputTokens)),
		summaryLine(s, "requests", fmt.Sprintf("%d", totals.Requests)),
		lipgloss.JoinHorizontal(lipgloss.Top,
			s.key.Render("cost: "),
			s.cost.Render(fmt.Sprintf("$%.4f", totals.CostUSD)),
			budgetHeadroom(result.Budget, s),
		),
		summaryLine(s, "iterations", fmt.Sprintf("%d", result.Iterations)),
		summaryLine(s, "stopped", string(result.StopReason)),
	}

	if result.Degraded.Any() {
		lines = append(lines, s.degraded.Render("degraded: "+degradedStages(result.Degraded)))
	}

	for _, warning := range result.Warnings {
		lines = append(lines, s.warning.Render("warning: ")+s.value.Render(warning))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func summaryLine(s styles, key, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.key.Render(key+": "), s.value.Render(value))
}

func budgetHeadroom(snapshot domain.BudgetSnapshot, s styles) string {
	if snapshot.Limits.MaxCostUSD == nil {
		return ""
	}

	return s.faint.Render(fmt.Sprintf(" (ceiling $%.4f)", *snapshot.Limits.MaxCostUSD))
}

func degradedStages(d domain.Degraded) string {
	stages := make([]string, 0, 3)
	if d.Overview {
		stages = append(stages, "overview")
	}
	if d.DeepDive {
		stages = append(stages, "deep-dive")
	}
	if d.ReadingPlan {
		stages = append(stages, "reading-plan")
	}

	return strings.Join(stages, ", ")
}
