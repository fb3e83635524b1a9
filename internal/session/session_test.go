package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"eqscout/internal/catalog"
	"eqscout/internal/llm"
	"eqscout/internal/notify"
	"eqscout/internal/quiz"
	"eqscout/internal/report"
	"eqscout/internal/store"
)

const validReportJSON = `{
	"eqScores": {"patience": 70, "empathy": 60, "resilience": 80, "focus": 75, "teamwork": 65, "confidence": 90},
	"position": "ST",
	"playerComparison": "A clinical finisher"
}`

func testReportClient(responses ...llm.MockResponse) *report.Client {
	cfg := report.DefaultClientConfig()
	cfg.BackoffUnit = time.Millisecond
	return report.NewClient(llm.NewMockProvider(responses...), nil, cfg)
}

func playThrough(t *testing.T, s *Session) {
	t.Helper()
	m := s.Machine()
	m.Start()
	answers := []string{
		"stay calm, encourage teammates",
		"I shoot and slot it calmly into the corner",
		"stay focused",
		"heads up, we go again",
		"hold position",
		"pass to the striker",
	}
	for _, a := range answers {
		if err := m.Submit(a); err != nil {
			t.Fatalf("submit %q: %v", a, err)
		}
		if m.State() == quiz.StateFeedback {
			m.Continue()
		}
	}
	if m.State() != quiz.StateComplete {
		t.Fatalf("machine state = %v, want complete", m.State())
	}
}

func TestFinish(t *testing.T) {
	s := New(
		Player{FirstName: "Jude", LastName: "Smith", JoinLeaderboard: true},
		catalog.MustLoad(),
		Deps{Reports: testReportClient(llm.MockResponse{Content: json.RawMessage(validReportJSON)})},
	)
	playThrough(t, s)

	result := s.Finish(context.Background())

	if result.Report.Fallback {
		t.Error("unexpected fallback")
	}
	if result.Report.Position != "ST" {
		t.Errorf("position = %q", result.Report.Position)
	}
	// Mean of 70,60,80,75,65,90.
	if result.Overall != 73 {
		t.Errorf("overall = %d, want 73", result.Overall)
	}
	if result.GoalsFor != 2 || result.GoalsAgainst != 1 {
		t.Errorf("scoreline = %d-%d, want 2-1", result.GoalsFor, result.GoalsAgainst)
	}
	if len(result.Events) == 0 {
		t.Error("no match events carried into result")
	}
}

func TestFinishIdempotent(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(validReportJSON)})
	cfg := report.DefaultClientConfig()
	cfg.BackoffUnit = time.Millisecond
	s := New(Player{FirstName: "Jude"}, catalog.MustLoad(), Deps{
		Reports: report.NewClient(mock, nil, cfg),
	})
	playThrough(t, s)

	first := s.Finish(context.Background())
	second := s.Finish(context.Background())

	if first != second {
		t.Error("expected cached result on repeat Finish")
	}
	if mock.CallCount() != 1 {
		t.Errorf("call count = %d, want 1", mock.CallCount())
	}
}

func TestFinishWritesLeaderboardWhenOptedIn(t *testing.T) {
	st, err := store.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	s := New(
		Player{FirstName: "Jude", LastName: "Smith", Club: "Rovers", JoinLeaderboard: true},
		catalog.MustLoad(),
		Deps{
			Reports:     testReportClient(llm.MockResponse{Content: json.RawMessage(validReportJSON)}),
			Leaderboard: st.LeaderboardRepo(),
		},
	)
	playThrough(t, s)
	s.Finish(context.Background())

	top, err := st.LeaderboardRepo().TopScores(context.Background(), 5)
	if err != nil {
		t.Fatalf("top scores: %v", err)
	}
	if len(top) != 1 || top[0].Name != "Jude Smith" || top[0].Score != 73 {
		t.Errorf("leaderboard = %+v", top)
	}
}

func TestFinishSkipsLeaderboardWhenOptedOut(t *testing.T) {
	st, err := store.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	s := New(
		Player{FirstName: "Jude", JoinLeaderboard: false},
		catalog.MustLoad(),
		Deps{
			Reports:     testReportClient(llm.MockResponse{Content: json.RawMessage(validReportJSON)}),
			Leaderboard: st.LeaderboardRepo(),
		},
	)
	playThrough(t, s)
	s.Finish(context.Background())

	top, err := st.LeaderboardRepo().TopScores(context.Background(), 5)
	if err != nil {
		t.Fatalf("top scores: %v", err)
	}
	if len(top) != 0 {
		t.Errorf("leaderboard has %d entries, want 0", len(top))
	}
}

func TestFinishNotifies(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	s := New(
		Player{FirstName: "Jude", Email: "jude@example.com"},
		catalog.MustLoad(),
		Deps{
			Reports:  testReportClient(llm.MockResponse{Content: json.RawMessage(validReportJSON)}),
			Notifier: notify.New(srv.URL),
		},
	)
	playThrough(t, s)
	s.Finish(context.Background())

	if calls.Load() != 1 {
		t.Errorf("webhook calls = %d, want 1", calls.Load())
	}
}

func TestFinishSurvivesSideEffectFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := New(
		Player{FirstName: "Jude", Email: "jude@example.com"},
		catalog.MustLoad(),
		Deps{
			Reports:  testReportClient(llm.MockResponse{Content: json.RawMessage(validReportJSON)}),
			Notifier: notify.New(srv.URL),
		},
	)
	playThrough(t, s)

	result := s.Finish(context.Background())
	if result == nil || result.Report == nil {
		t.Fatal("expected result despite notifier failure")
	}
}

func TestFinishNoProviderFallsBack(t *testing.T) {
	cfg := report.DefaultClientConfig()
	cfg.BackoffUnit = time.Millisecond
	s := New(Player{FirstName: "Jude"}, catalog.MustLoad(), Deps{
		Reports: report.NewClient(nil, nil, cfg),
	})
	playThrough(t, s)

	result := s.Finish(context.Background())
	if !result.Report.Fallback {
		t.Fatal("expected fallback report")
	}
	if result.Overall != report.FallbackScore {
		t.Errorf("overall = %d, want %d", result.Overall, report.FallbackScore)
	}
}

func TestFinishWithVerdict(t *testing.T) {
	commentatorMock := llm.NewMockProvider(llm.MockResponse{Text: "Ice cold finish."})
	s := New(Player{FirstName: "Jude"}, catalog.MustLoad(), Deps{
		Reports:     testReportClient(llm.MockResponse{Content: json.RawMessage(validReportJSON)}),
		Commentator: report.NewCommentator(commentatorMock),
	})
	playThrough(t, s)

	result := s.Finish(context.Background())
	if result.Verdict != "Ice cold finish." {
		t.Errorf("verdict = %q", result.Verdict)
	}
}

func TestRestart(t *testing.T) {
	s := New(Player{FirstName: "Jude"}, catalog.MustLoad(), Deps{
		Reports: testReportClient(llm.MockResponse{Content: json.RawMessage(validReportJSON)}),
	})
	playThrough(t, s)
	s.Finish(context.Background())
	oldID := s.ID()

	s.Restart()

	if s.ID() == oldID {
		t.Error("restart kept the old session ID")
	}
	if s.Machine().State() != quiz.StateAwaitingInput {
		t.Errorf("machine state after restart = %v", s.Machine().State())
	}
	if len(s.Machine().Answers()) != 0 {
		t.Error("answers survived restart")
	}
}

func TestFullName(t *testing.T) {
	tests := []struct {
		p    Player
		want string
	}{
		{Player{FirstName: "Jude", LastName: "Smith"}, "Jude Smith"},
		{Player{FirstName: "Jude"}, "Jude"},
		{Player{LastName: "Smith"}, "Smith"},
		{Player{}, ""},
	}
	for _, tt := range tests {
		if got := tt.p.FullName(); got != tt.want {
			t.Errorf("FullName(%+v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}
