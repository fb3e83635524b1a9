package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"eqscout/internal/router"
	"eqscout/internal/screen"
	"eqscout/internal/score"
	sess "eqscout/internal/session"
	"eqscout/internal/ui/components"
	"eqscout/internal/ui/layout"
	"eqscout/internal/ui/theme"
)

// ResultsScreen displays the full-time scout report.
type ResultsScreen struct {
	player sess.Player
	result *sess.Result

	// replay builds a fresh match screen over a restarted session.
	replay func() screen.Screen
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.ScoreboardProvider = (*ResultsScreen)(nil)

// New creates the results screen for a finished session.
func New(player sess.Player, result *sess.Result, replay func() screen.Screen) *ResultsScreen {
	return &ResultsScreen{
		player: player,
		result: result,
		replay: replay,
	}
}

func (r *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultsScreen) Title() string {
	return "Full-Time Report"
}

func (r *ResultsScreen) Scoreboard() *layout.Scoreboard {
	return &layout.Scoreboard{
		Minute:       90,
		GoalsFor:     r.result.GoalsFor,
		GoalsAgainst: r.result.GoalsAgainst,
	}
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Play again"},
		{Key: "Q", Description: "Quit"},
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	switch kmsg.String() {
	case "r", "R":
		if r.replay == nil {
			return r, nil
		}
		next := r.replay()
		return r, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}
	case "q", "Q":
		return r, tea.Quit
	}
	return r, nil
}

func (r *ResultsScreen) View(width, height int) string {
	res := r.result
	if res == nil {
		return ""
	}
	rep := res.Report

	var b strings.Builder

	name := r.player.FullName()
	if name == "" {
		name = "Trialist"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("Scout Report: %s", name)))
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Final score YOU %d - %d OPP", res.GoalsFor, res.GoalsAgainst)))
	b.WriteString("\n\n")

	if rep.Fallback {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render("The scout's notes got rained on. Showing a provisional assessment."))
		b.WriteString("\n\n")
	}

	// Trait bars.
	barWidth := min(width-16, 50)
	for _, trait := range score.Traits {
		bar := components.NewTraitBar(score.Abbreviations[trait], rep.EqScores.Get(trait), barWidth)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	highest := score.HighestTrait(rep.EqScores)
	summaryLine := fmt.Sprintf("Overall %d    Standout: %s    Best fit: %s",
		res.Overall, score.Abbreviations[highest], rep.Position)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(summaryLine))
	b.WriteString("\n\n")

	comparison := lipgloss.NewStyle().
		Width(min(width-8, 70)).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Italic(true).
		Render(fmt.Sprintf("\"%s\"", rep.PlayerComparison))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, comparison))
	b.WriteString("\n")

	if res.Verdict != "" {
		b.WriteString("\n")
		verdict := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Scout's verdict: " + res.Verdict)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, verdict))
		b.WriteString("\n")
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
