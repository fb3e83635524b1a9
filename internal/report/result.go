// Package report turns the six session answers into a structured scouting
// report via an LLM call, with a prioritized extraction cascade, bounded
// retry and a deterministic fallback. Generate never fails: every path
// resolves to a usable Result.
package report

import "eqscout/internal/score"

// Fallback values substituted when no attempt yields a validated report.
const (
	FallbackScore      = 50
	FallbackPosition   = "CM"
	FallbackComparison = "A composed all-rounder in the mould of a steady club professional"
)

// Result is the structured scouting report.
type Result struct {
	EqScores         score.EqScores `json:"eqScores"`
	Position         string         `json:"position"`
	PlayerComparison string         `json:"playerComparison"`

	// Fallback is true when the report was synthesized locally because the
	// model never produced a validated response.
	Fallback bool `json:"isFallback,omitempty"`
}

// FallbackResult returns the fixed neutral report used when generation
// runs out of attempts.
func FallbackResult() *Result {
	return &Result{
		EqScores: score.EqScores{
			Patience:   FallbackScore,
			Empathy:    FallbackScore,
			Resilience: FallbackScore,
			Focus:      FallbackScore,
			Teamwork:   FallbackScore,
			Confidence: FallbackScore,
		},
		Position:         FallbackPosition,
		PlayerComparison: FallbackComparison,
		Fallback:         true,
	}
}

// Answer pairs a scenario with what the player answered.
type Answer struct {
	ScenarioID int
	Prompt     string
	Response   string
}
