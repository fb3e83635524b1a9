// Package notify dispatches fire-and-forget contact notifications to a
// configured CRM webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Contact is the payload forwarded to the CRM.
type Contact struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Club      string `json:"club,omitempty"`
}

// Notifier posts contacts to a webhook. A Notifier with no URL is valid
// and silently drops every notification.
type Notifier struct {
	url    string
	client *http.Client
}

// New creates a Notifier for the given webhook URL. An empty URL produces
// a no-op notifier.
func New(url string) *Notifier {
	return &Notifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewFromEnv creates a Notifier from EQSCOUT_CRM_WEBHOOK_URL. Absence of
// the variable is not an error: notifications become no-ops.
func NewFromEnv() *Notifier {
	return New(os.Getenv("EQSCOUT_CRM_WEBHOOK_URL"))
}

// Configured reports whether a webhook URL is set.
func (n *Notifier) Configured() bool {
	return n.url != ""
}

// Notify posts the contact to the webhook. No-op when unconfigured.
func (n *Notifier) Notify(ctx context.Context, contact Contact) error {
	if n.url == "" {
		return nil
	}

	body, err := json.Marshal(contact)
	if err != nil {
		return fmt.Errorf("marshal contact: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}
	return nil
}
