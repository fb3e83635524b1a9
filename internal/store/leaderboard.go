package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// LeaderboardEntry is a single scored player on the leaderboard.
type LeaderboardEntry struct {
	Name      string
	Club      string
	Score     int
	Position  string
	UpdatedAt time.Time
}

// LeaderboardRepo manages the persisted leaderboard.
type LeaderboardRepo interface {
	// AddScore records a player's score. Repeated submissions for the same
	// name update the existing row rather than duplicating it.
	AddScore(ctx context.Context, entry LeaderboardEntry) error

	// TopScores returns the top n entries ordered by score descending.
	TopScores(ctx context.Context, n int) ([]LeaderboardEntry, error)

	// Reset deletes all leaderboard entries.
	Reset(ctx context.Context) error
}

type leaderboardRepo struct {
	db *sql.DB
}

func (r *leaderboardRepo) AddScore(ctx context.Context, entry LeaderboardEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO leaderboard (name, club, score, position)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			club = excluded.club,
			score = excluded.score,
			position = excluded.position,
			updated_at = CURRENT_TIMESTAMP`,
		entry.Name, entry.Club, entry.Score, entry.Position,
	)
	if err != nil {
		return fmt.Errorf("add leaderboard score: %w", err)
	}
	return nil
}

func (r *leaderboardRepo) TopScores(ctx context.Context, n int) ([]LeaderboardEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, club, score, position, updated_at
		 FROM leaderboard
		 ORDER BY score DESC, updated_at ASC
		 LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.Name, &e.Club, &e.Score, &e.Position, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *leaderboardRepo) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM leaderboard`); err != nil {
		return fmt.Errorf("reset leaderboard: %w", err)
	}
	return nil
}
