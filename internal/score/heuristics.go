package score

import (
	"math"
	"strings"
)

// positiveShotWords are the minute-15 breakaway keywords that mark a
// composed, goal-minded free-text answer.
var positiveShotWords = []string{
	"shoot", "score", "goal", "place", "slot", "calmly", "confident",
	"finish", "precision", "corner", "net", "control", "impact",
	"change", "pass", "settle", "compose", "assist",
}

// Delta returns the scoreline effect of an answer to a scenario. The result
// is +1 (goal for), -1 (goal against) or 0. Matching is case-insensitive
// substring matching over the raw answer.
func Delta(scenarioID int, answer string) int {
	a := strings.ToLower(answer)
	switch scenarioID {
	case 2:
		for _, w := range positiveShotWords {
			if strings.Contains(a, w) {
				return 1
			}
		}
		return 0
	case 3:
		if strings.Contains(a, "shout back") {
			return -1
		}
		return 0
	case 5:
		if strings.Contains(a, "sprint") || strings.Contains(a, "glare") {
			return -1
		}
		return 0
	case 6:
		if strings.Contains(a, "pass") || strings.Contains(a, "shot") {
			return 1
		}
		return 0
	}
	return 0
}

// FinalScore folds a list of match events into a goals-for / goals-against
// pair. Positive changes count for the player's side, negative ones for the
// opposition.
func FinalScore(events []MatchEvent) (goalsFor, goalsAgainst int) {
	for _, e := range events {
		switch {
		case e.ScoreChange > 0:
			goalsFor += e.ScoreChange
		case e.ScoreChange < 0:
			goalsAgainst -= e.ScoreChange
		}
	}
	return goalsFor, goalsAgainst
}

// Overall is the rounded mean of the six trait scores.
func Overall(s EqScores) int {
	sum := 0
	for _, t := range Traits {
		sum += s.Get(t)
	}
	return int(math.Round(float64(sum) / float64(len(Traits))))
}

// HighestTrait returns the best-scoring trait, breaking ties in favour of
// the earlier trait in display order.
func HighestTrait(s EqScores) Trait {
	best := Traits[0]
	for _, t := range Traits[1:] {
		if s.Get(t) > s.Get(best) {
			best = t
		}
	}
	return best
}
