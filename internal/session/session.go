// Package session composes the quiz state machine with report generation,
// leaderboard persistence and CRM notification into one playthrough.
package session

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"eqscout/internal/catalog"
	"eqscout/internal/notify"
	"eqscout/internal/quiz"
	"eqscout/internal/report"
	"eqscout/internal/score"
	"eqscout/internal/store"
)

// Player identifies who is taking the assessment.
type Player struct {
	FirstName string
	LastName  string
	Email     string
	Club      string

	// JoinLeaderboard opts the player into the persisted leaderboard.
	JoinLeaderboard bool
}

// FullName joins the name parts, tolerating either being empty.
func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Deps are the collaborators a session forwards its result to. Any of
// them may be nil; the corresponding step is skipped.
type Deps struct {
	Reports     *report.Client
	Commentator *report.Commentator
	Leaderboard store.LeaderboardRepo
	Notifier    *notify.Notifier
}

// Result is the consolidated outcome of a finished session.
type Result struct {
	Report       *report.Result
	Events       []score.MatchEvent
	GoalsFor     int
	GoalsAgainst int
	Overall      int
	Verdict      string
}

// Session owns one playthrough: the machine, the player identity and the
// finish sequence. Not safe for concurrent use.
type Session struct {
	id        string
	player    Player
	scenarios []catalog.Scenario
	machine   *quiz.Machine
	deps      Deps
	result    *Result
}

// New creates a session for the given player over the scenario sequence.
func New(player Player, scenarios []catalog.Scenario, deps Deps) *Session {
	return &Session{
		id:        uuid.NewString(),
		player:    player,
		scenarios: scenarios,
		machine:   quiz.NewMachine(scenarios),
		deps:      deps,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Player returns the player identity.
func (s *Session) Player() Player { return s.player }

// Machine exposes the underlying state machine for the interactive layer.
func (s *Session) Machine() *quiz.Machine { return s.machine }

// Restart discards all progress and begins a fresh playthrough under a
// new session ID.
func (s *Session) Restart() {
	s.id = uuid.NewString()
	s.machine = quiz.NewMachine(s.scenarios)
	s.result = nil
	s.machine.Start()
}

// Finish generates the report and dispatches the side effects. It is
// idempotent: repeated calls return the cached result. Persistence and
// notification failures are logged and swallowed; Finish never fails.
func (s *Session) Finish(ctx context.Context) *Result {
	if s.result != nil {
		return s.result
	}

	rep := report.FallbackResult()
	if s.deps.Reports != nil {
		rep = s.deps.Reports.Generate(ctx, s.id, s.answers())
	}

	gf, ga := s.machine.Scoreline()
	result := &Result{
		Report:       rep,
		Events:       s.machine.Events(),
		GoalsFor:     gf,
		GoalsAgainst: ga,
		Overall:      score.Overall(rep.EqScores),
	}

	if s.deps.Commentator != nil {
		result.Verdict = s.deps.Commentator.Verdict(ctx, s.machine.Answer(2))
	}

	s.dispatch(ctx, result)

	s.result = result
	return result
}

// answers pairs each scenario with its recorded answer, in match order.
func (s *Session) answers() []report.Answer {
	out := make([]report.Answer, 0, len(s.scenarios))
	for _, sc := range s.scenarios {
		out = append(out, report.Answer{
			ScenarioID: sc.ID,
			Prompt:     sc.Prompt,
			Response:   s.machine.Answers()[sc.Key()],
		})
	}
	return out
}

// dispatch runs the order-independent side effects concurrently. Each
// failure is contained: the session result is returned regardless.
func (s *Session) dispatch(ctx context.Context, result *Result) {
	var g errgroup.Group

	if s.deps.Leaderboard != nil && s.player.JoinLeaderboard && s.player.FullName() != "" {
		g.Go(func() error {
			err := s.deps.Leaderboard.AddScore(ctx, store.LeaderboardEntry{
				Name:     s.player.FullName(),
				Club:     s.player.Club,
				Score:    result.Overall,
				Position: result.Report.Position,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: leaderboard write failed: %v\n", err)
			}
			return nil
		})
	}

	if s.deps.Notifier != nil && s.player.Email != "" {
		g.Go(func() error {
			err := s.deps.Notifier.Notify(ctx, notify.Contact{
				FirstName: s.player.FirstName,
				LastName:  s.player.LastName,
				Email:     s.player.Email,
				Club:      s.player.Club,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: CRM notification failed: %v\n", err)
			}
			return nil
		})
	}

	// Goroutines swallow their own errors; Wait only synchronizes.
	_ = g.Wait()
}
