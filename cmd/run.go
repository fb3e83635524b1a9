package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"eqscout/internal/app"
	"eqscout/internal/catalog"
	"eqscout/internal/llm"
	"eqscout/internal/notify"
	"eqscout/internal/report"
	"eqscout/internal/session"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	scenarios, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load scenarios: %w", err)
	}

	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	deps := session.Deps{
		Leaderboard: st.LeaderboardRepo(),
		Notifier:    notify.NewFromEnv(),
	}

	provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Reports will use the provisional assessment.")
	} else {
		deps.Reports = report.NewClient(provider, eventRepo, report.DefaultClientConfig())
		deps.Commentator = report.NewCommentator(provider)
	}

	return app.Run(app.Options{
		Scenarios:   scenarios,
		SessionDeps: deps,
	})
}
