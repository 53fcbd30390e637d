package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// QuotaRow is one line of the status table.
type QuotaRow struct {
	Resource  string
	Limit     int
	Remaining int
	Fraction  float64 // remaining / limit
	Tier      Tier
	ResetIn   string
}

// RenderQuotaTable renders quota rows with a tier-colored bar per resource.
func RenderQuotaTable(rows []QuotaRow) string {
	if len(rows) == 0 {
		return "No quotas returned"
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(ColorMuted)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	var b strings.Builder
	b.WriteString(headerStyle.Render(
		padRight("RESOURCE", 10)+padRight("REMAINING", 14)+padRight("USED", 24)+"RESET IN") + "\n")

	for _, row := range rows {
		used := 1 - row.Fraction
		if row.Limit <= 0 {
			used = 1
		}
		tierStyle := lipgloss.NewStyle().Foreground(TierColor(row.Tier))
		line := padRight(row.Resource, 10) +
			padRight(tierStyle.Render(fmt.Sprintf("%d/%d", row.Remaining, row.Limit)), 14) +
			padRight(RenderTierBar(used, 20, row.Tier), 24) +
			mutedStyle.Render(row.ResetIn)
		b.WriteString(line + "\n")
	}

	return b.String()
}

// padRight pads s with spaces to width, measuring visible width.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-w)
}
