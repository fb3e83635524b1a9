package report

import (
	"context"
	"fmt"
	"os"
	"time"

	"eqscout/internal/llm"
	"eqscout/internal/store"
)

// ClientConfig holds generation parameters for the report client.
type ClientConfig struct {
	// MaxAttempts bounds the model call loop.
	MaxAttempts int

	// BackoffUnit is the linear backoff step: attempt n waits n units.
	BackoffUnit time.Duration

	MaxTokens   int
	Temperature float64
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		MaxAttempts: 5,
		BackoffUnit: 1 * time.Second,
		MaxTokens:   1024,
		Temperature: 0.4,
	}
}

// Client generates scouting reports. A nil provider is permitted and
// resolves every generation to the fallback.
type Client struct {
	provider llm.Provider
	events   store.EventRepo
	cfg      ClientConfig
}

// NewClient creates a report client. events may be nil to skip outcome
// logging.
func NewClient(provider llm.Provider, events store.EventRepo, cfg ClientConfig) *Client {
	return &Client{provider: provider, events: events, cfg: cfg}
}

// Generate produces a report for the given answers. It never returns an
// error: model failures, invalid output and context cancellation all
// resolve to the deterministic fallback with Fallback set.
func (c *Client) Generate(ctx context.Context, sessionID string, answers []Answer) *Result {
	result, attempts, path := c.generate(ctx, answers)

	c.logOutcome(sessionID, attempts, path, result.Fallback)

	return result
}

func (c *Client) generate(ctx context.Context, answers []Answer) (*Result, int, string) {
	if c.provider == nil {
		return FallbackResult(), 0, "fallback"
	}

	userMsg, err := buildReportMessage(answers)
	if err != nil {
		return FallbackResult(), 0, "fallback"
	}

	req := llm.Request{
		System: reportSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      Schema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	ctx = llm.WithPurpose(ctx, "scout-report")

	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		resp, err := c.provider.Generate(ctx, req)
		if err == nil {
			if result, path, exErr := extractResult(resp); exErr == nil {
				return result, attempt, path
			}
		}

		if attempt == c.cfg.MaxAttempts {
			break
		}

		// Linear backoff: attempt n waits n units.
		wait := time.Duration(attempt) * c.cfg.BackoffUnit
		select {
		case <-ctx.Done():
			return FallbackResult(), attempt, "fallback"
		case <-time.After(wait):
		}
	}

	return FallbackResult(), c.cfg.MaxAttempts, "fallback"
}

// logOutcome records which extraction path and attempt number produced the
// report. Logging failures never affect the result.
func (c *Client) logOutcome(sessionID string, attempts int, path string, fallback bool) {
	if c.events == nil {
		return
	}
	err := c.events.AppendReport(context.Background(), store.ReportEventData{
		SessionID:      sessionID,
		Attempts:       attempts,
		ExtractionPath: path,
		Fallback:       fallback,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log report event: %v\n", err)
	}
}
