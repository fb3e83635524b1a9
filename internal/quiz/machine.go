// Package quiz implements the scenario playback state machine: scenario
// progression, countdown timers, auto-submission, scripted match events and
// the per-answer scoring heuristics.
package quiz

import (
	"errors"
	"strings"

	"eqscout/internal/catalog"
	"eqscout/internal/score"
)

// ErrEmptyAnswer signals a submit with no usable answer text. The caller
// should prompt for input again; no state changes.
var ErrEmptyAnswer = errors.New("answer is empty")

// HesitationAnswer is the default answer recorded when a timer expires
// without a usable selection.
const HesitationAnswer = "I hesitated and didn't make a decision in time."

// DragSeparator joins the selected values of a drag scenario into one
// answer string.
const DragSeparator = ". "

// State is the machine's current phase.
type State int

const (
	// StateIdle is the pre-start state.
	StateIdle State = iota

	// StateAwaitingInput means the current scenario is presented and an
	// answer is pending (from the user or the timer).
	StateAwaitingInput

	// StateFeedback means an answer was accepted and commentary is being
	// shown; Continue advances.
	StateFeedback

	// StateComplete is terminal: all scenarios answered.
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingInput:
		return "awaiting_input"
	case StateFeedback:
		return "feedback"
	case StateComplete:
		return "complete"
	}
	return "unknown"
}

// Machine drives one playthrough of the scenario sequence. It is a pure
// state machine: time advances only through Tick, so the caller owns the
// clock. Not safe for concurrent use.
type Machine struct {
	scenarios []catalog.Scenario

	state State
	index int

	answers map[string]string
	events  []score.MatchEvent

	// Per-scenario guards. A scenario submits at most once and a
	// mandatoryConcede event is scripted at most once.
	submitted map[int]bool
	conceded  map[int]bool

	// Countdown state for the current scenario. A timer never re-arms:
	// expiry or submission disarms it for good.
	remaining  int
	timerArmed bool

	// In-progress selection state, used to resolve timer auto-submits.
	picks     []string
	highlight string

	feedback string
}

// NewMachine creates a machine over the given scenario sequence.
func NewMachine(scenarios []catalog.Scenario) *Machine {
	return &Machine{
		scenarios: scenarios,
		state:     StateIdle,
		answers:   make(map[string]string),
		submitted: make(map[int]bool),
		conceded:  make(map[int]bool),
	}
}

// Start enters the first scenario. Calling Start on a running machine is
// a no-op.
func (m *Machine) Start() {
	if m.state != StateIdle || len(m.scenarios) == 0 {
		return
	}
	m.index = 0
	m.enterScenario()
}

// enterScenario performs the scenario-entry side effects: the scripted
// concede event and timer arming.
func (m *Machine) enterScenario() {
	s := m.current()

	if s.MandatoryConcede && !m.conceded[s.ID] {
		m.conceded[s.ID] = true
		m.events = append(m.events, score.MatchEvent{
			Minute:      s.Minute,
			Outcome:     "conceded",
			ScoreChange: -1,
		})
	}

	m.picks = nil
	m.highlight = ""
	m.remaining = s.TimerSeconds
	m.timerArmed = s.TimerSeconds > 0
	m.state = StateAwaitingInput
}

// Submit records the answer for the current scenario. Valid only while
// awaiting input; a duplicate or out-of-phase submit is a no-op. An empty
// answer is rejected with ErrEmptyAnswer and no state change.
func (m *Machine) Submit(raw string) error {
	if m.state != StateAwaitingInput {
		return nil
	}
	s := m.current()
	if m.submitted[s.ID] {
		return nil
	}

	answer := strings.TrimSpace(raw)
	if answer == "" {
		return ErrEmptyAnswer
	}

	m.submitted[s.ID] = true
	m.timerArmed = false
	m.answers[s.Key()] = answer

	delta := score.Delta(s.ID, answer)
	m.events = append(m.events, score.MatchEvent{
		Minute:      s.Minute,
		Outcome:     outcomeFor(delta),
		ScoreChange: delta,
	})

	if fb := m.feedbackFor(s, answer); fb != "" {
		m.feedback = fb
		m.state = StateFeedback
		return nil
	}

	m.advance()
	return nil
}

// Continue leaves the feedback display and advances to the next scenario.
// A no-op outside StateFeedback.
func (m *Machine) Continue() {
	if m.state != StateFeedback {
		return
	}
	m.feedback = ""
	m.advance()
}

func (m *Machine) advance() {
	if m.index+1 >= len(m.scenarios) {
		m.state = StateComplete
		return
	}
	m.index++
	m.enterScenario()
}

// Tick advances the countdown by one second. On reaching zero it resolves
// a default answer and submits it exactly once. Ticks outside an armed
// countdown are ignored.
func (m *Machine) Tick() {
	if m.state != StateAwaitingInput || !m.timerArmed {
		return
	}
	m.remaining--
	if m.remaining > 0 {
		return
	}
	m.timerArmed = false
	m.autoSubmit()
}

// autoSubmit resolves the timer-expiry default answer per interaction mode.
func (m *Machine) autoSubmit() {
	s := m.current()

	answer := HesitationAnswer
	switch s.Mode {
	case catalog.ModeDragSelect:
		if len(m.picks) > 0 {
			answer = strings.Join(m.picks, DragSeparator)
		}
	case catalog.ModeSingleChoice:
		if m.highlight != "" {
			answer = m.highlight
		}
	}

	// HesitationAnswer is never empty, so this cannot fail.
	_ = m.Submit(answer)
}

// ToggleDrag adds or removes a value from the drag selection, capped at
// the pick count. Used both for building the final answer and as the
// partial selection a timer expiry falls back on.
func (m *Machine) ToggleDrag(value string) {
	if m.state != StateAwaitingInput {
		return
	}
	for i, p := range m.picks {
		if p == value {
			m.picks = append(m.picks[:i], m.picks[i+1:]...)
			return
		}
	}
	if len(m.picks) < catalog.DragPickCount {
		m.picks = append(m.picks, value)
	}
}

// Highlight records the currently focused single-choice option value.
func (m *Machine) Highlight(value string) {
	if m.state != StateAwaitingInput {
		return
	}
	m.highlight = value
}

// feedbackFor resolves post-submit commentary: the chosen option's
// commentary when present, else the scenario's.
func (m *Machine) feedbackFor(s catalog.Scenario, answer string) string {
	for _, opt := range s.Options {
		if opt.Value == answer && opt.Commentary != "" {
			return opt.Commentary
		}
	}
	return s.Commentary
}

func (m *Machine) current() catalog.Scenario {
	return m.scenarios[m.index]
}

// State returns the current phase.
func (m *Machine) State() State { return m.state }

// Index returns the zero-based index of the current scenario.
func (m *Machine) Index() int { return m.index }

// Total returns the number of scenarios.
func (m *Machine) Total() int { return len(m.scenarios) }

// Scenario returns the current scenario. Only meaningful after Start.
func (m *Machine) Scenario() catalog.Scenario { return m.current() }

// Remaining returns the countdown seconds left, or 0 when no timer is
// armed.
func (m *Machine) Remaining() int {
	if !m.timerArmed {
		return 0
	}
	return m.remaining
}

// TimerArmed reports whether a countdown is running.
func (m *Machine) TimerArmed() bool { return m.timerArmed }

// Feedback returns the commentary being displayed, if any.
func (m *Machine) Feedback() string { return m.feedback }

// Picks returns the in-progress drag selection.
func (m *Machine) Picks() []string { return m.picks }

// Answers returns the recorded answers keyed by scenario key.
func (m *Machine) Answers() map[string]string { return m.answers }

// Answer returns the recorded answer for a scenario, or "".
func (m *Machine) Answer(scenarioID int) string {
	return m.answers[catalog.Scenario{ID: scenarioID}.Key()]
}

// Events returns the accumulated match events in insertion order.
func (m *Machine) Events() []score.MatchEvent { return m.events }

// Scoreline folds the events into the running goals for/against.
func (m *Machine) Scoreline() (goalsFor, goalsAgainst int) {
	return score.FinalScore(m.events)
}

func outcomeFor(delta int) string {
	switch {
	case delta > 0:
		return "goal"
	case delta < 0:
		return "conceded"
	}
	return "held"
}
