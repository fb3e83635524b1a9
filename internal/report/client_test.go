package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"eqscout/internal/llm"
	"eqscout/internal/score"
)

const validReportJSON = `{
	"eqScores": {"patience": 70, "empathy": 65, "resilience": 80, "focus": 75, "teamwork": 60, "confidence": 85},
	"position": "ST",
	"playerComparison": "A fearless finisher who thrives on the big occasion"
}`

func testClientConfig() ClientConfig {
	cfg := DefaultClientConfig()
	cfg.BackoffUnit = 1 * time.Millisecond
	return cfg
}

func testAnswers() []Answer {
	return []Answer{
		{ScenarioID: 1, Prompt: "Kick-off", Response: "stay calm, encourage"},
		{ScenarioID: 2, Prompt: "Breakaway", Response: "I shoot and slot it calmly into the corner"},
		{ScenarioID: 3, Prompt: "Taunt", Response: "I stay calm and focus"},
		{ScenarioID: 4, Prompt: "Conceded", Response: "I rally the team"},
		{ScenarioID: 5, Prompt: "Counter", Response: "I hold my position"},
		{ScenarioID: 6, Prompt: "Stoppage time", Response: "I pass to my teammate"},
	}
}

func TestGenerate_ValidFirstAttempt(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(validReportJSON)},
	)
	c := NewClient(mock, nil, testClientConfig())

	result := c.Generate(context.Background(), "s1", testAnswers())

	if result.Fallback {
		t.Fatal("unexpected fallback")
	}
	if result.Position != "ST" {
		t.Errorf("position = %q, want ST", result.Position)
	}
	if result.EqScores.Confidence != 85 {
		t.Errorf("confidence = %d, want 85", result.EqScores.Confidence)
	}
	if mock.CallCount() != 1 {
		t.Errorf("call count = %d, want 1", mock.CallCount())
	}
}

func TestGenerate_GarbageThenValidOnFifthAttempt(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "the trialist seemed nervous"},
		llm.MockResponse{Text: "not json either"},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
		llm.MockResponse{Text: `{"eqScores": "broken"}`},
		llm.MockResponse{Content: json.RawMessage(validReportJSON)},
	)
	c := NewClient(mock, nil, testClientConfig())

	result := c.Generate(context.Background(), "s1", testAnswers())

	if result.Fallback {
		t.Fatal("expected attempt-5 success, got fallback")
	}
	if result.EqScores.Resilience != 80 {
		t.Errorf("resilience = %d, want 80", result.EqScores.Resilience)
	}
	if mock.CallCount() != 5 {
		t.Errorf("call count = %d, want 5", mock.CallCount())
	}
}

func TestGenerate_AllAttemptsFailYieldsFallback(t *testing.T) {
	mock := llm.NewMockProvider() // empty queue: every call errors
	c := NewClient(mock, nil, testClientConfig())

	result := c.Generate(context.Background(), "s1", testAnswers())

	if !result.Fallback {
		t.Fatal("expected fallback")
	}
	for _, trait := range score.Traits {
		if got := result.EqScores.Get(trait); got != FallbackScore {
			t.Errorf("%s = %d, want %d", trait, got, FallbackScore)
		}
	}
	if result.Position != FallbackPosition {
		t.Errorf("position = %q, want %q", result.Position, FallbackPosition)
	}
	if mock.CallCount() != 5 {
		t.Errorf("call count = %d, want 5", mock.CallCount())
	}
}

func TestGenerate_ProseWrappedJSON(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "Here is my report:\n" + validReportJSON + "\nHope that helps!"},
	)
	c := NewClient(mock, nil, testClientConfig())

	result := c.Generate(context.Background(), "s1", testAnswers())

	if result.Fallback {
		t.Fatal("expected prose-wrapped JSON to be extracted")
	}
	if result.Position != "ST" {
		t.Errorf("position = %q, want ST", result.Position)
	}
}

func TestGenerate_NilProviderFallsBack(t *testing.T) {
	c := NewClient(nil, nil, testClientConfig())

	result := c.Generate(context.Background(), "s1", testAnswers())

	if !result.Fallback {
		t.Fatal("expected fallback with nil provider")
	}
}

func TestGenerate_CancelledContextFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "garbage"},
		llm.MockResponse{Content: json.RawMessage(validReportJSON)},
	)
	c := NewClient(mock, nil, testClientConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := c.Generate(ctx, "s1", testAnswers())

	if !result.Fallback {
		t.Fatal("expected fallback on cancelled context")
	}
	if mock.CallCount() > 1 {
		t.Errorf("call count = %d, want at most 1 after cancellation", mock.CallCount())
	}
}

func TestGenerate_TruncatesLongAnswers(t *testing.T) {
	long := make([]byte, 10000)
	for i := range long {
		long[i] = 'a'
	}
	answers := testAnswers()
	answers[1].Response = string(long)

	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(validReportJSON)},
	)
	c := NewClient(mock, nil, testClientConfig())

	c.Generate(context.Background(), "s1", answers)

	if len(mock.Calls) != 1 {
		t.Fatalf("call count = %d, want 1", len(mock.Calls))
	}
	msg := mock.Calls[0].Messages[0].Content
	if len(msg) > maxAnswerLen+2000 {
		t.Errorf("prompt length %d suggests answer was not truncated", len(msg))
	}
}
