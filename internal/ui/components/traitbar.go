package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"eqscout/internal/ui/theme"
)

// TraitBar displays a horizontal bar for a 0-100 trait score.
type TraitBar struct {
	Label string
	Score int
	Width int
}

// NewTraitBar creates a bar for the given trait label and score.
func NewTraitBar(label string, score int, width int) TraitBar {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return TraitBar{
		Label: label,
		Score: score,
		Width: width,
	}
}

// View renders the bar with the score on the right.
func (t TraitBar) View() string {
	label := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(5).
		Render(t.Label)

	scoreStr := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf(" %3d", t.Score))

	barWidth := t.Width - lipgloss.Width(label) - lipgloss.Width(scoreStr) - 2
	if barWidth < 4 {
		barWidth = 4
	}

	filled := barWidth * t.Score / 100
	if filled > barWidth {
		filled = barWidth
	}
	empty := barWidth - filled

	bar := theme.BarFilled.Render(strings.Repeat(" ", filled)) +
		theme.BarEmpty.Render(strings.Repeat(" ", empty))

	return label + "  " + bar + scoreStr
}
