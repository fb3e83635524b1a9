package match

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"eqscout/internal/catalog"
	"eqscout/internal/quiz"
	"eqscout/internal/ui/theme"
)

const urgentThreshold = 5

func (m *MatchScreen) View(width, height int) string {
	if m.finishing {
		return renderFinishing(width)
	}

	switch m.machine.State() {
	case quiz.StateFeedback:
		return m.renderFeedback(width)
	case quiz.StateAwaitingInput:
		return m.renderScenario(width)
	}
	return ""
}

// renderScenario renders the active prompt with its input widget.
func (m *MatchScreen) renderScenario(width int) string {
	s := m.machine.Scenario()

	var b strings.Builder

	progress := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Moment %d of %d", m.machine.Index()+1, m.machine.Total()))

	right := ""
	if m.machine.TimerArmed() {
		remaining := m.machine.Remaining()
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if remaining <= urgentThreshold {
			style = theme.Urgent
		}
		right = style.Render(fmt.Sprintf("Decide in %ds", remaining))
	}

	line := progress
	pad := width - lipgloss.Width(progress) - lipgloss.Width(right) - 4
	if pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}

	b.WriteString(line)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Scene description.
	if s.Description != "" {
		desc := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.TextDim).
			Render(s.Description)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, desc))
		b.WriteString("\n\n")
	}

	// The prompt itself.
	prompt := lipgloss.NewStyle().
		Width(min(width-8, 70)).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(s.Prompt)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, prompt))
	b.WriteString("\n\n")

	switch s.Mode {
	case catalog.ModeSingleChoice, catalog.ModeDragSelect:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, m.choices.View()))
		if s.Mode == catalog.ModeDragSelect {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render(fmt.Sprintf("Picked %d of %d", m.choices.PickedCount(), catalog.DragPickCount)))
		}
	default:
		answerLine := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("You: " + m.input.View())
		b.WriteString(answerLine)
	}

	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(m.errMsg))
	}

	return b.String()
}

// renderFeedback renders the commentary overlay after a submit.
func (m *MatchScreen) renderFeedback(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Bold(true).
		Render("From the touchline"))
	b.WriteString("\n\n")

	commentary := lipgloss.NewStyle().
		Width(min(width-8, 70)).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(m.machine.Feedback())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, commentary))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press any key to play on..."))

	return b.String()
}

// renderFinishing renders the post-whistle waiting state while the report
// is being generated.
func renderFinishing(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Full time. The scout is writing up the report...")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
