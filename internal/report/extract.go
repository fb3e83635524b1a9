package report

import (
	"encoding/json"
	"errors"
	"strings"

	"eqscout/internal/llm"
)

// extractor pulls a candidate JSON document out of one view of the model
// response. Returns nil when that view is absent.
type extractor struct {
	name string
	pull func(resp *llm.Response) json.RawMessage
}

// extractors are tried in priority order: the provider-native structured
// field first, then the raw text, then the concatenated parts. Models that
// ignore the schema mechanism often still emit JSON in the text, sometimes
// wrapped in prose.
var extractors = []extractor{
	{
		name: "structured",
		pull: func(resp *llm.Response) json.RawMessage {
			return resp.Content
		},
	},
	{
		name: "text",
		pull: func(resp *llm.Response) json.RawMessage {
			return findJSON(resp.Text)
		},
	},
	{
		name: "parts",
		pull: func(resp *llm.Response) json.RawMessage {
			return findJSON(strings.Join(resp.Parts, ""))
		},
	},
}

var errNoValidExtraction = errors.New("no extraction path yielded a valid report")

// extractResult runs the extraction cascade over a model response and
// returns the first schema-valid report along with the path that won.
func extractResult(resp *llm.Response) (*Result, string, error) {
	if resp == nil {
		return nil, "", errNoValidExtraction
	}

	var lastErr error
	for _, ex := range extractors {
		raw := ex.pull(resp)
		if len(raw) == 0 {
			continue
		}

		if err := llm.Validate(Schema, raw); err != nil {
			lastErr = err
			continue
		}

		var result Result
		if err := json.Unmarshal(raw, &result); err != nil {
			lastErr = err
			continue
		}
		if strings.TrimSpace(result.Position) == "" {
			lastErr = errors.New("empty position")
			continue
		}

		return &result, ex.name, nil
	}

	if lastErr != nil {
		return nil, "", lastErr
	}
	return nil, "", errNoValidExtraction
}

// findJSON locates the outermost JSON object in text, tolerating prose
// before and after it.
func findJSON(text string) json.RawMessage {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return nil
	}
	return json.RawMessage(text[start : end+1])
}
