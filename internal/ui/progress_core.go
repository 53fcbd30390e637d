package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Progress bar block characters.
const (
	BarFilled = '█'
	BarEmpty  = '░'
)

// Tier selects the bar color.
type Tier int

const (
	TierNone Tier = iota
	TierNormal
	TierWarning
	TierCritical
)

// TierColor returns the ANSI color for a tier.
func TierColor(t Tier) lipgloss.Color {
	switch t {
	case TierNormal:
		return ColorSuccess
	case TierWarning:
		return ColorWarning
	case TierCritical:
		return ColorError
	default:
		return ColorMuted
	}
}

// ClampFraction clamps a fraction to the 0-1 range.
func ClampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// CalculateBarCountsNormalized returns the filled and empty character counts
// for a 0-1 fraction of width.
func CalculateBarCountsNormalized(fraction float64, width int) (filled, empty int) {
	filled = int(ClampFraction(fraction) * float64(width))
	if filled > width {
		filled = width
	}
	empty = width - filled
	return
}

// BuildBarString builds the raw bar string (without styling) from filled/empty counts.
// If brackets is true, wraps in [ ].
func BuildBarString(filledCount, emptyCount int, brackets bool) string {
	var sb strings.Builder
	capacity := filledCount + emptyCount
	if brackets {
		capacity += 2
	}
	sb.Grow(capacity)

	if brackets {
		sb.WriteRune('[')
	}
	for i := 0; i < filledCount; i++ {
		sb.WriteRune(BarFilled)
	}
	for i := 0; i < emptyCount; i++ {
		sb.WriteRune(BarEmpty)
	}
	if brackets {
		sb.WriteRune(']')
	}

	return sb.String()
}

// RenderTierBar renders a bracketed bar filled to fraction and colored by tier.
// Output format: [████████░░░░]
func RenderTierBar(fraction float64, width int, tier Tier) string {
	if width <= 0 {
		return ""
	}
	filled, empty := CalculateBarCountsNormalized(fraction, width)
	bar := BuildBarString(filled, empty, true)
	return lipgloss.NewStyle().Foreground(TierColor(tier)).Render(bar)
}
