package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"connectfour/experiments/metrics"
)

// SummaryRepo stores tournament aggregates. Individual games are not kept.
type SummaryRepo struct {
	DB *sql.DB
}

func NewSummaryRepo(db *sql.DB) *SummaryRepo {
	return &SummaryRepo{DB: db}
}

// SaveSummaries records one experiment run with its agent configs and
// matchup summaries in a single transaction.
func (r *SummaryRepo) SaveSummaries(ctx context.Context, experiment string, configs []metrics.AgentConfig, summaries []metrics.Summary) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	var experimentID int64
	err = tx.QueryRowContext(ctx, `INSERT INTO experiment (name) VALUES ($1) RETURNING id`, experiment).Scan(&experimentID)
	if err != nil {
		return fmt.Errorf("failed to insert experiment: %w", err)
	}

	for _, c := range configs {
		_, err = tx.ExecContext(ctx, `
		INSERT INTO agent_config (experiment_id, agent_id, kind, depth, goroutines, score_table, terminal_cutoff)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			experimentID, c.ID, c.Kind, c.Depth, c.Goroutines, c.ScoreTable, c.TerminalCutoff)
		if err != nil {
			return fmt.Errorf("failed to insert agent config %d: %w", c.ID, err)
		}
	}

	for _, s := range summaries {
		_, err = tx.ExecContext(ctx, `
		INSERT INTO matchup_summary (experiment_id, matchup, red_agent, black_agent, games, red_wins, black_wins, draws, total_moves, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			experimentID, s.Matchup, s.Red, s.Black, s.Games, s.RedWins, s.BlackWins, s.Draws, s.Moves, s.Duration.Milliseconds())
		if err != nil {
			return fmt.Errorf("failed to insert summary for matchup %d: %w", s.Matchup, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LatestSummaries returns the summaries of the most recent run of experiment.
func (r *SummaryRepo) LatestSummaries(ctx context.Context, experiment string) ([]metrics.Summary, error) {
	query := `
	SELECT s.matchup, s.red_agent, s.black_agent, s.games, s.red_wins, s.black_wins, s.draws, s.total_moves, s.duration_ms
	FROM matchup_summary s
	WHERE s.experiment_id = (SELECT id FROM experiment WHERE name = $1 ORDER BY created_at DESC, id DESC LIMIT 1)
	ORDER BY s.matchup`

	rows, err := r.DB.QueryContext(ctx, query, experiment)
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer rows.Close()

	summaries := []metrics.Summary{}
	for rows.Next() {
		var s metrics.Summary
		var durationMs int64
		if err := rows.Scan(&s.Matchup, &s.Red, &s.Black, &s.Games, &s.RedWins, &s.BlackWins, &s.Draws, &s.Moves, &durationMs); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		s.Duration = time.Duration(durationMs) * time.Millisecond
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read summaries: %w", err)
	}
	return summaries, nil
}
