// Package transcribe converts recorded voice answers to text. It is a
// single pass-through model call: audio in, plain text out.
package transcribe

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"eqscout/internal/llm"
)

const transcribePrompt = "Transcribe this audio exactly as spoken. Return only the transcription, no commentary."

// Transcriber converts an audio clip to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// New returns a Transcriber for the configured provider. Only Gemini
// accepts inline audio; any other provider yields ErrUnsupported.
func New(ctx context.Context, cfg llm.Config) (Transcriber, error) {
	if cfg.Provider != "gemini" {
		return nil, &llm.ErrUnsupported{Capability: "audio transcription", Provider: cfg.Provider}
	}
	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &geminiTranscriber{client: client, model: "gemini-2.0-flash"}, nil
}

type geminiTranscriber struct {
	client *genai.Client
	model  string
}

func (t *geminiTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{Text: transcribePrompt},
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: audio}},
		},
	}}

	result, err := t.client.Models.GenerateContent(ctx, t.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("empty transcription")
	}
	return text, nil
}

// MIMETypeFor maps common audio file extensions to their MIME type.
func MIMETypeFor(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "mp3":
		return "audio/mp3"
	case "wav":
		return "audio/wav"
	case "ogg":
		return "audio/ogg"
	case "flac":
		return "audio/flac"
	case "m4a", "aac":
		return "audio/aac"
	case "webm":
		return "audio/webm"
	}
	return "application/octet-stream"
}
