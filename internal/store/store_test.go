package store

import (
	"context"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSchemaCreated(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"leaderboard", "llm_events", "report_events"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q missing: %v", table, err)
		}
	}
}

func TestLeaderboardAddAndTop(t *testing.T) {
	s := openTestStore(t)
	repo := s.LeaderboardRepo()
	ctx := context.Background()

	entries := []LeaderboardEntry{
		{Name: "Jude Smith", Club: "Rovers", Score: 72, Position: "CM"},
		{Name: "Alex Cole", Club: "United", Score: 85, Position: "ST"},
		{Name: "Sam Price", Club: "", Score: 64, Position: "CB"},
	}
	for _, e := range entries {
		if err := repo.AddScore(ctx, e); err != nil {
			t.Fatalf("add %s: %v", e.Name, err)
		}
	}

	top, err := repo.TopScores(ctx, 2)
	if err != nil {
		t.Fatalf("top scores: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("got %d entries, want 2", len(top))
	}
	if top[0].Name != "Alex Cole" || top[0].Score != 85 {
		t.Errorf("top[0] = %s/%d, want Alex Cole/85", top[0].Name, top[0].Score)
	}
	if top[1].Name != "Jude Smith" {
		t.Errorf("top[1] = %s, want Jude Smith", top[1].Name)
	}
}

func TestLeaderboardUpsert(t *testing.T) {
	s := openTestStore(t)
	repo := s.LeaderboardRepo()
	ctx := context.Background()

	if err := repo.AddScore(ctx, LeaderboardEntry{Name: "Jude Smith", Score: 60, Position: "CM"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := repo.AddScore(ctx, LeaderboardEntry{Name: "Jude Smith", Score: 75, Position: "CAM"}); err != nil {
		t.Fatalf("re-add: %v", err)
	}

	top, err := repo.TopScores(ctx, 10)
	if err != nil {
		t.Fatalf("top scores: %v", err)
	}
	if len(top) != 1 {
		t.Fatalf("got %d entries, want 1 (upsert)", len(top))
	}
	if top[0].Score != 75 || top[0].Position != "CAM" {
		t.Errorf("entry = %d/%s, want 75/CAM", top[0].Score, top[0].Position)
	}
}

func TestLeaderboardReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.LeaderboardRepo()
	ctx := context.Background()

	if err := repo.AddScore(ctx, LeaderboardEntry{Name: "Jude Smith", Score: 60}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	top, err := repo.TopScores(ctx, 10)
	if err != nil {
		t.Fatalf("top scores: %v", err)
	}
	if len(top) != 0 {
		t.Errorf("got %d entries after reset, want 0", len(top))
	}
}

func TestEventAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "mock",
			Model:        "mock",
			Purpose:      "report",
			InputTokens:  100 + i,
			OutputTokens: 50,
			Success:      i != 1,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.RecentLLMEvents(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	// Newest first.
	if events[0].InputTokens != 102 {
		t.Errorf("events[0].InputTokens = %d, want 102", events[0].InputTokens)
	}

	got, err := repo.GetLLMEvent(ctx, events[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Success {
		t.Error("expected second event to be a failure")
	}
}

func TestAppendReport(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendReport(ctx, ReportEventData{
		SessionID:      "abc-123",
		Attempts:       5,
		ExtractionPath: "fallback",
		Fallback:       true,
	})
	if err != nil {
		t.Fatalf("append report: %v", err)
	}

	var attempts int
	var fallback bool
	err = s.DB().QueryRow(
		`SELECT attempts, fallback FROM report_events WHERE session_id = ?`, "abc-123",
	).Scan(&attempts, &fallback)
	if err != nil {
		t.Fatalf("query report event: %v", err)
	}
	if attempts != 5 || !fallback {
		t.Errorf("attempts=%d fallback=%v, want 5/true", attempts, fallback)
	}
}
