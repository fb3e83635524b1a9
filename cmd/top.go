package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		entries, err := s.LeaderboardRepo().TopScores(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("query leaderboard: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No trials on the board yet. Run eqscout to play one.")
			return nil
		}

		fmt.Printf("%-4s  %-24s  %-20s  %-5s  %s\n",
			"#", "Name", "Club", "EQ", "Position")
		fmt.Println(strings.Repeat("─", 64))

		for i, e := range entries {
			club := e.Club
			if club == "" {
				club = "-"
			}
			fmt.Printf("%-4d  %-24s  %-20s  %-5d  %s\n",
				i+1, truncate(e.Name, 24), truncate(club, 20), e.Score, e.Position)
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	topCmd.Flags().IntP("limit", "n", 10, "Number of entries to show")
}
