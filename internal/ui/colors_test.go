package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestDisableColors(t *testing.T) {
	original := lipgloss.ColorProfile()
	defer lipgloss.SetColorProfile(original)

	DisableColors()
	assert.False(t, ColorsEnabled())

	out := lipgloss.NewStyle().Foreground(ColorError).Render("x")
	assert.Equal(t, "x", out)
}
