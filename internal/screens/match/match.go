package match

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"eqscout/internal/catalog"
	"eqscout/internal/quiz"
	"eqscout/internal/router"
	"eqscout/internal/screen"
	"eqscout/internal/screens/results"
	sess "eqscout/internal/session"
	"eqscout/internal/ui/components"
	"eqscout/internal/ui/layout"
)

// MatchScreen plays the scenario sequence: it renders each prompt, feeds
// keys and clock ticks into the quiz machine, and hands off to the results
// screen once the final whistle triggers report generation.
type MatchScreen struct {
	session *sess.Session
	machine *quiz.Machine

	input   components.TextInput
	choices components.ChoiceList

	// widgetIndex tracks which scenario the widgets were built for, so a
	// machine advance (submit or timer) rebuilds them exactly once.
	widgetIndex int

	errMsg    string
	finishing bool
}

var _ screen.Screen = (*MatchScreen)(nil)
var _ screen.KeyHintProvider = (*MatchScreen)(nil)
var _ screen.ScoreboardProvider = (*MatchScreen)(nil)

// New creates the match screen for a session and kicks off its machine.
func New(session *sess.Session) *MatchScreen {
	m := &MatchScreen{
		session:     session,
		machine:     session.Machine(),
		widgetIndex: -1,
	}
	m.machine.Start()
	m.syncWidgets()
	return m
}

func (m *MatchScreen) Init() tea.Cmd {
	return tea.Batch(m.input.Init(), tickCmd())
}

func (m *MatchScreen) Title() string {
	return "Matchday"
}

func (m *MatchScreen) Scoreboard() *layout.Scoreboard {
	gf, ga := m.machine.Scoreline()
	minute := 90
	if m.machine.State() != quiz.StateComplete {
		minute = m.machine.Scenario().Minute
	}
	return &layout.Scoreboard{Minute: minute, GoalsFor: gf, GoalsAgainst: ga}
}

func (m *MatchScreen) KeyHints() []layout.KeyHint {
	if m.finishing {
		return nil
	}
	if m.machine.State() == quiz.StateFeedback {
		return []layout.KeyHint{
			{Key: "any key", Description: "Play on"},
		}
	}
	switch m.machine.Scenario().Mode {
	case catalog.ModeSingleChoice:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Commit"},
		}
	case catalog.ModeDragSelect:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "Space", Description: "Pick"},
			{Key: "Enter", Description: "Commit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
	}
}

func (m *MatchScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return m.handleTick()

	case finishDoneMsg:
		return m, m.showResults(msg.Result)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.activeTextInput() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *MatchScreen) handleTick() (screen.Screen, tea.Cmd) {
	if m.finishing {
		return m, nil
	}

	m.machine.Tick()
	m.syncWidgets()

	if m.machine.State() == quiz.StateComplete {
		return m, m.finishCmd()
	}
	return m, tickCmd()
}

func (m *MatchScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if m.finishing {
		return m, nil
	}

	// Commentary overlay: any key resumes play.
	if m.machine.State() == quiz.StateFeedback {
		m.machine.Continue()
		m.syncWidgets()
		if m.machine.State() == quiz.StateComplete {
			return m, m.finishCmd()
		}
		return m, nil
	}

	if m.machine.State() != quiz.StateAwaitingInput {
		return m, nil
	}

	key := msg.String()
	scenario := m.machine.Scenario()

	switch scenario.Mode {
	case catalog.ModeSingleChoice:
		switch key {
		case "up", "k", "down", "j":
			m.choices, _ = m.choices.Update(msg)
			m.machine.Highlight(m.choices.Highlighted().Value)
			return m, nil
		case "enter":
			return m.submit(m.choices.Highlighted().Value)
		}
		return m, nil

	case catalog.ModeDragSelect:
		switch key {
		case "up", "k", "down", "j":
			m.choices, _ = m.choices.Update(msg)
			return m, nil
		case " ", "space":
			m.choices, _ = m.choices.Update(msg)
			m.machine.ToggleDrag(m.choices.Highlighted().Value)
			return m, nil
		case "enter":
			picks := m.machine.Picks()
			if len(picks) < catalog.DragPickCount {
				m.errMsg = "Pick two thoughts before committing."
				return m, nil
			}
			return m.submit(joinPicks(picks))
		}
		return m, nil
	}

	// Free text.
	if key == "enter" {
		return m.submit(m.input.Value())
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *MatchScreen) submit(answer string) (screen.Screen, tea.Cmd) {
	if err := m.machine.Submit(answer); err != nil {
		if errors.Is(err, quiz.ErrEmptyAnswer) {
			m.errMsg = "Say something before the moment passes."
		}
		return m, nil
	}
	m.errMsg = ""
	m.syncWidgets()

	if m.machine.State() == quiz.StateComplete {
		return m, m.finishCmd()
	}
	return m, nil
}

// syncWidgets rebuilds the input widgets whenever the machine has moved on
// to a new scenario.
func (m *MatchScreen) syncWidgets() {
	if m.machine.State() == quiz.StateComplete {
		return
	}
	if m.machine.Index() == m.widgetIndex {
		return
	}
	m.widgetIndex = m.machine.Index()
	m.errMsg = ""

	scenario := m.machine.Scenario()
	switch scenario.Mode {
	case catalog.ModeSingleChoice:
		m.choices = components.NewChoiceList(scenario.Options)
		m.machine.Highlight(m.choices.Highlighted().Value)
	case catalog.ModeDragSelect:
		m.choices = components.NewPickList(scenario.Options, catalog.DragPickCount)
	default:
		m.input = components.NewTextInput("What do you do?", 0)
	}
}

func (m *MatchScreen) activeTextInput() bool {
	return !m.finishing &&
		m.machine.State() == quiz.StateAwaitingInput &&
		m.machine.Scenario().Mode == catalog.ModeFreeText
}

// finishCmd runs the full-time pipeline asynchronously: report generation,
// leaderboard write and CRM notification.
func (m *MatchScreen) finishCmd() tea.Cmd {
	if m.finishing {
		return nil
	}
	m.finishing = true
	session := m.session
	return func() tea.Msg {
		return finishDoneMsg{Result: session.Finish(context.Background())}
	}
}

func (m *MatchScreen) showResults(result *sess.Result) tea.Cmd {
	session := m.session
	replay := func() screen.Screen {
		session.Restart()
		return New(session)
	}
	return func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: results.New(session.Player(), result, replay),
		}
	}
}

func joinPicks(picks []string) string {
	return strings.Join(picks, quiz.DragSeparator)
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
