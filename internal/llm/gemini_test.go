package llm

import "testing"

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"position": map[string]any{
				"type": "string",
				"enum": []any{"GK", "CM", "ST"},
			},
			"scores": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
		},
		"required": []any{"position"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Errorf("type = %q, want OBJECT", schema.Type)
	}
	if len(schema.Properties) != 2 {
		t.Fatalf("got %d properties, want 2", len(schema.Properties))
	}
	if got := schema.Properties["position"].Enum; len(got) != 3 {
		t.Errorf("enum length = %d, want 3", len(got))
	}
	if schema.Properties["scores"].Items == nil {
		t.Error("expected items schema for array property")
	}
	if len(schema.Required) != 1 || schema.Required[0] != "position" {
		t.Errorf("required = %v, want [position]", schema.Required)
	}
}

func TestBuildGeminiContents(t *testing.T) {
	contents := buildGeminiContents([]Message{
		{Role: RoleUser, Content: "hello"},
		{Role: RoleAssistant, Content: "hi"},
	})
	if len(contents) != 2 {
		t.Fatalf("got %d contents, want 2", len(contents))
	}
	if contents[0].Role != "user" || contents[1].Role != "model" {
		t.Errorf("roles = %q/%q, want user/model", contents[0].Role, contents[1].Role)
	}
}
