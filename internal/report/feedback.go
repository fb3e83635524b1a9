package report

import (
	"context"
	"strings"

	"eqscout/internal/llm"
)

const commentarySystemPrompt = `You are a football scout watching a trial match. Given how a trialist handled a one-on-one breakaway, give a single short verdict line, spoken aloud, in the voice of a gruff but fair touchline scout. No more than 20 words. No JSON, plain text only.`

// Commentator produces a one-line scout's verdict on a single answer.
// It is a best-effort embellishment: any failure yields an empty verdict.
type Commentator struct {
	provider llm.Provider
}

// NewCommentator wraps the provider with a short retry policy suitable for
// a one-shot call.
func NewCommentator(provider llm.Provider) *Commentator {
	if provider == nil {
		return &Commentator{}
	}
	cfg := llm.DefaultConfig().Retry
	cfg.MaxAttempts = 2
	return &Commentator{provider: llm.WithRetry(provider, cfg)}
}

// Verdict returns a one-line comment on the answer, or "" when no provider
// is configured or the call fails.
func (c *Commentator) Verdict(ctx context.Context, answer string) string {
	if c.provider == nil || strings.TrimSpace(answer) == "" {
		return ""
	}

	ctx = llm.WithPurpose(ctx, "scout-verdict")

	resp, err := c.provider.Generate(ctx, llm.Request{
		System: commentarySystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: answer},
		},
		MaxTokens:   64,
		Temperature: 0.7,
	})
	if err != nil {
		return ""
	}
	return strings.TrimSpace(resp.Text)
}
