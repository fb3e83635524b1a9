// Package score holds the match-event heuristics and the pure scoring math
// shared by the quiz engine and the report pipeline.
package score

// Trait is one of the six emotional-intelligence dimensions.
type Trait string

const (
	Patience   Trait = "patience"
	Empathy    Trait = "empathy"
	Resilience Trait = "resilience"
	Focus      Trait = "focus"
	Teamwork   Trait = "teamwork"
	Confidence Trait = "confidence"
)

// Traits lists all traits in display order.
var Traits = []Trait{Patience, Empathy, Resilience, Focus, Teamwork, Confidence}

// Abbreviations maps traits to their three-letter display codes.
var Abbreviations = map[Trait]string{
	Patience:   "PAT",
	Empathy:    "EMP",
	Resilience: "RES",
	Focus:      "FOC",
	Teamwork:   "TMW",
	Confidence: "CON",
}

// EqScores holds the six trait scores, each intended to be 0-100.
type EqScores struct {
	Patience   int `json:"patience"`
	Empathy    int `json:"empathy"`
	Resilience int `json:"resilience"`
	Focus      int `json:"focus"`
	Teamwork   int `json:"teamwork"`
	Confidence int `json:"confidence"`
}

// Get returns the score for a single trait.
func (s EqScores) Get(t Trait) int {
	switch t {
	case Patience:
		return s.Patience
	case Empathy:
		return s.Empathy
	case Resilience:
		return s.Resilience
	case Focus:
		return s.Focus
	case Teamwork:
		return s.Teamwork
	case Confidence:
		return s.Confidence
	}
	return 0
}

// MatchEvent is a discrete score-affecting occurrence during the simulated
// match. ScoreChange is +1 for a goal for, -1 for a goal against, 0 for no
// change.
type MatchEvent struct {
	Minute      int    `json:"minute"`
	Outcome     string `json:"outcome"`
	ScoreChange int    `json:"scoreChange"`
}
