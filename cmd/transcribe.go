package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"eqscout/internal/llm"
	"eqscout/internal/transcribe"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <audio-file>",
	Short: "Transcribe a recorded voice answer to text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		audio, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read audio file: %w", err)
		}

		// Transcription is Gemini-only, so prefer a Gemini key wherever
		// one is configured.
		cfg := llm.ConfigFromEnv()
		if cfg.Gemini.APIKey == "" {
			if discovered, ok := llm.DiscoverConfig(); ok {
				cfg = discovered
			}
		}
		if cfg.Gemini.APIKey != "" {
			cfg.Provider = "gemini"
		}

		t, err := transcribe.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		text, err := t.Transcribe(cmd.Context(), audio, transcribe.MIMETypeFor(filepath.Ext(path)))
		if err != nil {
			return err
		}

		fmt.Println(text)
		return nil
	},
}
