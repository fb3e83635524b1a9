package report

import "eqscout/internal/llm"

func traitScoreSchema(desc string) map[string]any {
	return map[string]any{
		"type":        "integer",
		"minimum":     0,
		"maximum":     100,
		"description": desc,
	}
}

// Schema defines the JSON schema for scouting report responses.
var Schema = &llm.Schema{
	Name:        "scout-report",
	Description: "Emotional-intelligence trait scores, a playing position and a player comparison derived from match scenario answers",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"eqScores": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"patience":   traitScoreSchema("Composure under delay and provocation"),
					"empathy":    traitScoreSchema("Reading and supporting teammates"),
					"resilience": traitScoreSchema("Response to setbacks and conceded goals"),
					"focus":      traitScoreSchema("Concentration under pressure and fatigue"),
					"teamwork":   traitScoreSchema("Preference for collective over individual play"),
					"confidence": traitScoreSchema("Decisiveness and self-belief in key moments"),
				},
				"required": []any{"patience", "empathy", "resilience", "focus", "teamwork", "confidence"},
			},
			"position": map[string]any{
				"type":        "string",
				"description": "Best-fit playing position abbreviation, e.g. GK, CB, CM, CAM, ST",
			},
			"playerComparison": map[string]any{
				"type":        "string",
				"description": "One-sentence comparison to a well-known player archetype",
			},
		},
		"required":             []any{"eqScores", "position", "playerComparison"},
		"additionalProperties": false,
	},
}
