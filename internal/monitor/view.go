package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/grlm/internal/errors"
)

// renderDashboard renders the complete view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderCard())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the title bar with the monitor configuration.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("grlm")

	parts := []string{"github rate limit", m.frame.Auth.String()}
	if m.frame.Interval > 0 {
		parts = append(parts, "every "+m.frame.Interval.String())
	}

	stats := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(" | " + strings.Join(parts, " | "))

	return HeaderStyle.Render(title + stats)
}

// renderCard renders the gauge card.
func (m Model) renderCard() string {
	width := m.cardWidth()
	resource := string(m.frame.Resource)
	if resource == "" {
		resource = "core"
	}

	var lines []string
	if !m.frame.Ready {
		lines = m.waitingLines()
	} else {
		lines = m.gaugeLines()
	}

	var b strings.Builder
	b.WriteString(SectionHeader(resource, m.cardValue(), width))
	b.WriteString("\n")
	for _, line := range lines {
		b.WriteString(SectionContentLine(line, width))
		b.WriteString("\n")
	}
	b.WriteString(SectionFooter(width))
	return b.String()
}

// cardValue is the headline shown in the card border.
func (m Model) cardValue() string {
	if !m.frame.Ready {
		return "waiting"
	}
	return fmt.Sprintf("%d / %d left", m.frame.Remaining, m.frame.GaugeLength)
}

// waitingLines renders the indeterminate state before the first snapshot.
func (m Model) waitingLines() []string {
	gauge := MutedStyle.Render(m.gauge.ViewAs(0))
	return []string{
		gauge,
		m.spinner.View() + " " + LabelStyle.Render("waiting for the first response"),
		MutedStyle.Render(fmt.Sprintf("assuming %d requests per window", m.frame.GaugeLength)),
	}
}

// gaugeLines renders the gauge, usage and reset countdown.
func (m Model) gaugeLines() []string {
	f := m.frame
	pct := f.Fraction() * 100

	gauge := m.gauge.ViewAs(f.Fraction()) + " " + TierStyle(f.Color).Render(fmt.Sprintf("%3.0f%%", pct))

	usage := LabelStyle.Render("used ") + ValueStyle.Render(fmt.Sprintf("%d", f.GaugePosition)) +
		LabelStyle.Render("  remaining ") + TierStyle(f.Color).Bold(true).Render(fmt.Sprintf("%d", f.Remaining)) +
		LabelStyle.Render("  tier ") + TierStyle(f.Color).Render(f.Color.String())

	return []string{gauge, usage, m.resetLine()}
}

// resetLine renders the countdown to the window reset.
func (m Model) resetLine() string {
	f := m.frame
	if f.SecondsToReset < 0 {
		return ImminentStyle.Render("window has reset") + MutedStyle.Render(", waiting for the next poll")
	}
	return LabelStyle.Render("resets in ") +
		MessageStyle(f.Message).Render(f.Text+"s") +
		MutedStyle.Render(" at "+f.ResetAt.Local().Format("15:04:05"))
}

// renderFooter renders fetch health and key hints.
func (m Model) renderFooter() string {
	var parts []string

	status := m.frame.Status
	switch {
	case status.LastError != nil:
		msg := fmt.Sprintf("✗ fetch failed (%d in a row): %s", status.Failures, errors.Summary(status.LastError))
		parts = append(parts, ErrorTextStyle.Render(msg))
		if m.frame.Ready {
			parts = append(parts, "showing data from "+formatAgo(m.frame.Now.Sub(status.LastSuccess)))
		}
	case !status.LastSuccess.IsZero():
		parts = append(parts, "updated "+formatAgo(m.frame.Now.Sub(status.LastSuccess)))
	}

	parts = append(parts, "q quit", "? help")
	return FooterStyle.Render(strings.Join(parts, " · "))
}

// formatAgo renders a duration as a coarse "Ns ago" string.
func formatAgo(d time.Duration) string {
	secs := int(d.Seconds())
	switch {
	case secs <= 0:
		return "just now"
	case secs < 60:
		return fmt.Sprintf("%ds ago", secs)
	default:
		return fmt.Sprintf("%dm%02ds ago", secs/60, secs%60)
	}
}
