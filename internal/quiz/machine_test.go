package quiz

import (
	"strings"
	"testing"

	"eqscout/internal/catalog"
)

func testScenarios() []catalog.Scenario {
	return []catalog.Scenario{
		{
			ID: 1, Minute: 0, Prompt: "Kick-off", Mode: catalog.ModeDragSelect,
			Commentary: "Interesting mindset.",
			Options: []catalog.Option{
				{Label: "Stay calm", Value: "stay calm"},
				{Label: "Win early", Value: "win the ball early"},
				{Label: "Encourage", Value: "encourage teammates"},
			},
		},
		{ID: 2, Minute: 15, Prompt: "Breakaway", Mode: catalog.ModeFreeText},
		{
			ID: 3, Minute: 30, Prompt: "Taunt", Mode: catalog.ModeSingleChoice, TimerSeconds: 15,
			Options: []catalog.Option{
				{Label: "Shout back", Value: "shout back", Commentary: "The ref is watching."},
				{Label: "Stay focused", Value: "stay focused"},
			},
		},
		{ID: 4, Minute: 45, Prompt: "Conceded", Mode: catalog.ModeFreeText, MandatoryConcede: true},
		{
			ID: 5, Minute: 60, Prompt: "Counter", Mode: catalog.ModeSingleChoice, TimerSeconds: 15,
			Options: []catalog.Option{
				{Label: "Sprint", Value: "sprint back"},
				{Label: "Hold", Value: "hold position"},
			},
		},
		{
			ID: 6, Minute: 93, Prompt: "Stoppage", Mode: catalog.ModeSingleChoice, TimerSeconds: 15,
			Options: []catalog.Option{
				{Label: "Pass", Value: "pass to the striker"},
				{Label: "Shoot", Value: "take the shot"},
			},
		},
	}
}

func startedMachine(t *testing.T) *Machine {
	t.Helper()
	m := NewMachine(testScenarios())
	m.Start()
	if m.State() != StateAwaitingInput {
		t.Fatalf("state after start = %v", m.State())
	}
	return m
}

// advancePast submits and clears any feedback state.
func advancePast(t *testing.T, m *Machine, answer string) {
	t.Helper()
	if err := m.Submit(answer); err != nil {
		t.Fatalf("submit %q: %v", answer, err)
	}
	if m.State() == StateFeedback {
		m.Continue()
	}
}

func TestFullPlaythrough(t *testing.T) {
	m := startedMachine(t)

	advancePast(t, m, "stay calm, encourage teammates")
	advancePast(t, m, "I shoot and slot it calmly into the corner")
	advancePast(t, m, "stay focused")
	advancePast(t, m, "I rally the team")
	advancePast(t, m, "hold position")
	advancePast(t, m, "pass to the striker")

	if m.State() != StateComplete {
		t.Fatalf("state = %v, want complete", m.State())
	}
	if len(m.Answers()) != 6 {
		t.Errorf("got %d answers, want 6", len(m.Answers()))
	}

	// One scripted concede (scenario 4) plus one derived event per scenario.
	if len(m.Events()) != 7 {
		t.Errorf("got %d events, want 7", len(m.Events()))
	}
	if len(m.Events()) > 2*m.Total() {
		t.Errorf("events %d exceed 2x scenario count", len(m.Events()))
	}

	gf, ga := m.Scoreline()
	if gf != 2 || ga != 1 {
		t.Errorf("scoreline = %d-%d, want 2-1", gf, ga)
	}
}

func TestEmptySubmitRejected(t *testing.T) {
	m := startedMachine(t)

	if err := m.Submit("   "); err != ErrEmptyAnswer {
		t.Fatalf("err = %v, want ErrEmptyAnswer", err)
	}
	if m.State() != StateAwaitingInput {
		t.Errorf("state changed on rejected submit: %v", m.State())
	}
	if len(m.Answers()) != 0 {
		t.Errorf("answer recorded on rejected submit")
	}
}

func TestSubmitOutOfPhaseIsNoop(t *testing.T) {
	m := NewMachine(testScenarios())

	// Before Start.
	if err := m.Submit("early"); err != nil {
		t.Fatalf("submit before start: %v", err)
	}
	if len(m.Answers()) != 0 {
		t.Error("answer recorded before start")
	}

	m.Start()

	// Scenario 1 has commentary, so an accepted submit parks in feedback.
	// A second submit while there must not overwrite or advance.
	if err := m.Submit("stay calm"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if m.State() != StateFeedback {
		t.Fatalf("state = %v, want feedback", m.State())
	}
	if err := m.Submit("second thoughts"); err != nil {
		t.Fatalf("duplicate submit: %v", err)
	}
	if m.Answer(1) != "stay calm" {
		t.Errorf("answer overwritten by duplicate submit: %q", m.Answer(1))
	}
	if m.State() != StateFeedback || m.Index() != 0 {
		t.Errorf("duplicate submit changed state: %v index=%d", m.State(), m.Index())
	}
}

func TestMandatoryConcedeOnce(t *testing.T) {
	m := startedMachine(t)

	advancePast(t, m, "stay calm")
	advancePast(t, m, "I shoot")
	advancePast(t, m, "stay focused")

	// Now in scenario 4, which concedes on entry.
	concedes := 0
	for _, e := range m.Events() {
		if e.Minute == 45 && e.ScoreChange == -1 {
			concedes++
		}
	}
	if concedes != 1 {
		t.Fatalf("got %d scripted concedes, want 1", concedes)
	}

	advancePast(t, m, "heads up, we go again")

	// The derived event for scenario 4 is neutral; still exactly one -1.
	concedes = 0
	for _, e := range m.Events() {
		if e.Minute == 45 && e.ScoreChange == -1 {
			concedes++
		}
	}
	if concedes != 1 {
		t.Errorf("got %d concedes after submit, want 1", concedes)
	}
}

func TestOneDerivedEventPerScenario(t *testing.T) {
	m := startedMachine(t)
	answers := []string{"stay calm", "I shoot", "stay focused", "we go again", "hold position", "take the shot"}
	for _, a := range answers {
		advancePast(t, m, a)
	}

	perMinute := map[int]int{}
	for _, e := range m.Events() {
		perMinute[e.Minute]++
	}
	// Minute 45 has the scripted concede plus the derived event.
	want := map[int]int{0: 1, 15: 1, 30: 1, 45: 2, 60: 1, 93: 1}
	for minute, n := range want {
		if perMinute[minute] != n {
			t.Errorf("minute %d has %d events, want %d", minute, perMinute[minute], n)
		}
	}
}

func TestTimerExpiryFreeTextUnreached(t *testing.T) {
	// Untimed scenarios ignore ticks entirely.
	m := startedMachine(t)
	for i := 0; i < 30; i++ {
		m.Tick()
	}
	if m.State() != StateAwaitingInput || m.Index() != 0 {
		t.Errorf("untimed scenario advanced by ticks: state=%v index=%d", m.State(), m.Index())
	}
}

func TestTimerExpirySingleChoiceNoSelection(t *testing.T) {
	m := startedMachine(t)
	advancePast(t, m, "stay calm")
	advancePast(t, m, "I shoot")

	// Scenario 3, timed. Let it run out with nothing highlighted.
	if m.Remaining() != 15 {
		t.Fatalf("remaining = %d, want 15", m.Remaining())
	}
	for i := 0; i < 15; i++ {
		m.Tick()
	}

	if m.Answer(3) != HesitationAnswer {
		t.Errorf("answer = %q, want hesitation", m.Answer(3))
	}
}

func TestTimerExpiryUsesHighlight(t *testing.T) {
	m := startedMachine(t)
	advancePast(t, m, "stay calm")
	advancePast(t, m, "I shoot")

	m.Highlight("stay focused")
	for i := 0; i < 15; i++ {
		m.Tick()
	}

	if m.Answer(3) != "stay focused" {
		t.Errorf("answer = %q, want highlighted option", m.Answer(3))
	}
}

func TestTimerExpiryUsesPartialDragPicks(t *testing.T) {
	scenarios := testScenarios()
	scenarios[0].TimerSeconds = 10
	m := NewMachine(scenarios)
	m.Start()

	m.ToggleDrag("stay calm")
	for i := 0; i < 10; i++ {
		m.Tick()
	}

	if m.Answer(1) != "stay calm" {
		t.Errorf("answer = %q, want partial selection", m.Answer(1))
	}
}

func TestTimerStopsAfterSubmit(t *testing.T) {
	m := startedMachine(t)
	advancePast(t, m, "stay calm")
	advancePast(t, m, "I shoot")

	// Submit scenario 3 with time left; ticks must not touch scenario 4.
	if err := m.Submit("stay focused"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if m.TimerArmed() {
		t.Error("timer still armed after submit")
	}
	idx := m.Index()
	for i := 0; i < 30; i++ {
		m.Tick()
	}
	if m.Index() != idx {
		t.Errorf("ticks advanced past submitted scenario: %d -> %d", idx, m.Index())
	}
}

func TestDragToggleAndCap(t *testing.T) {
	m := startedMachine(t)

	m.ToggleDrag("stay calm")
	m.ToggleDrag("win the ball early")
	m.ToggleDrag("encourage teammates") // over the cap, ignored
	if got := m.Picks(); len(got) != catalog.DragPickCount {
		t.Fatalf("picks = %v, want %d entries", got, catalog.DragPickCount)
	}

	m.ToggleDrag("stay calm") // deselect
	if got := m.Picks(); len(got) != 1 || got[0] != "win the ball early" {
		t.Errorf("picks after toggle = %v", got)
	}

	m.ToggleDrag("encourage teammates")
	if err := m.Submit(strings.Join(m.Picks(), DragSeparator)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if m.Answer(1) != "win the ball early"+DragSeparator+"encourage teammates" {
		t.Errorf("answer = %q", m.Answer(1))
	}
}

func TestOptionCommentaryShown(t *testing.T) {
	m := startedMachine(t)
	advancePast(t, m, "stay calm")
	advancePast(t, m, "I shoot")

	if err := m.Submit("shout back"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if m.State() != StateFeedback {
		t.Fatalf("state = %v, want feedback", m.State())
	}
	if m.Feedback() != "The ref is watching." {
		t.Errorf("feedback = %q", m.Feedback())
	}

	m.Continue()
	if m.State() != StateAwaitingInput || m.Index() != 3 {
		t.Errorf("continue did not advance: state=%v index=%d", m.State(), m.Index())
	}
}

func TestContinueOutsideFeedbackIsNoop(t *testing.T) {
	m := startedMachine(t)
	idx := m.Index()
	m.Continue()
	if m.State() != StateAwaitingInput || m.Index() != idx {
		t.Errorf("continue changed state outside feedback")
	}
}
