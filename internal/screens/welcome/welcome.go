package welcome

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"eqscout/internal/router"
	"eqscout/internal/screen"
	sess "eqscout/internal/session"
	"eqscout/internal/ui/components"
	"eqscout/internal/ui/layout"
	"eqscout/internal/ui/theme"
)

// Form field order.
const (
	fieldFirstName = iota
	fieldLastName
	fieldEmail
	fieldClub
	fieldLeaderboard
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"First name",
	"Last name",
	"Email",
	"Club",
	"Join the leaderboard",
}

// WelcomeScreen collects the trialist's details before kickoff.
type WelcomeScreen struct {
	inputs [4]components.TextInput
	focus  int
	join   bool
	errMsg string

	// matchFactory builds the match screen for the entered player.
	matchFactory func(player sess.Player) screen.Screen
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates the pre-match registration form.
func New(matchFactory func(player sess.Player) screen.Screen) *WelcomeScreen {
	w := &WelcomeScreen{matchFactory: matchFactory}
	w.inputs[fieldFirstName] = components.NewTextInput("Jude", 40)
	w.inputs[fieldLastName] = components.NewTextInput("Bellingham", 40)
	w.inputs[fieldEmail] = components.NewTextInput("you@club.example", 80)
	w.inputs[fieldClub] = components.NewTextInput("Sunday league FC", 60)
	w.syncFocus()
	return w
}

func (w *WelcomeScreen) Title() string {
	return "Trial Registration"
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return w.inputs[fieldFirstName].Init()
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Kick off"},
	}
	if w.focus == fieldLeaderboard {
		hints = append([]layout.KeyHint{{Key: "Space", Description: "Toggle"}}, hints...)
	}
	return hints
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return w, nil
	}

	switch kmsg.String() {
	case "tab", "down":
		w.focus = (w.focus + 1) % fieldCount
		return w, w.syncFocus()
	case "shift+tab", "up":
		w.focus = (w.focus + fieldCount - 1) % fieldCount
		return w, w.syncFocus()
	case "enter":
		return w.kickOff()
	case " ", "space":
		if w.focus == fieldLeaderboard {
			w.join = !w.join
			return w, nil
		}
	}

	if w.focus < len(w.inputs) {
		var cmd tea.Cmd
		w.inputs[w.focus], cmd = w.inputs[w.focus].Update(msg)
		return w, cmd
	}
	return w, nil
}

// syncFocus moves textinput focus to the selected field.
func (w *WelcomeScreen) syncFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range w.inputs {
		if i == w.focus {
			cmd = w.inputs[i].Focus()
		} else {
			w.inputs[i].Blur()
		}
	}
	return cmd
}

func (w *WelcomeScreen) kickOff() (screen.Screen, tea.Cmd) {
	player := sess.Player{
		FirstName:       strings.TrimSpace(w.inputs[fieldFirstName].Value()),
		LastName:        strings.TrimSpace(w.inputs[fieldLastName].Value()),
		Email:           strings.TrimSpace(w.inputs[fieldEmail].Value()),
		Club:            strings.TrimSpace(w.inputs[fieldClub].Value()),
		JoinLeaderboard: w.join,
	}

	if player.FirstName == "" {
		w.errMsg = "The scout needs at least a first name."
		return w, nil
	}
	w.errMsg = ""

	matchScreen := w.matchFactory(player)
	return w, func() tea.Msg {
		return router.PushScreenMsg{Screen: matchScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Welcome to the trial"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Six moments. One match. The scout is watching how you think."))
	b.WriteString("\n\n")

	var form strings.Builder
	for i := range w.inputs {
		label := fieldLabels[i]
		style := theme.Unselected
		if i == w.focus {
			style = theme.Selected
		}
		form.WriteString(style.Render(label))
		form.WriteString("\n")
		form.WriteString(w.inputs[i].View())
		form.WriteString("\n\n")
	}

	mark := "[ ]"
	if w.join {
		mark = "[x]"
	}
	toggleStyle := theme.Unselected
	if w.focus == fieldLeaderboard {
		toggleStyle = theme.Selected
	}
	form.WriteString(toggleStyle.Render(mark + " " + fieldLabels[fieldLeaderboard]))
	form.WriteString("\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, form.String()))

	if w.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(w.errMsg))
	}

	return b.String()
}
