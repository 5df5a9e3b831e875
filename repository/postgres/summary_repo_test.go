package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"connectfour/experiments/metrics"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var (
	configs = []metrics.AgentConfig{
		{ID: 1, Kind: "minimax", Depth: 4, Goroutines: 1, ScoreTable: "standard"},
		{ID: 2, Kind: "random"},
	}
	summaries = []metrics.Summary{
		{Matchup: 1, Red: 1, Black: 2, Games: 50, RedWins: 41, BlackWins: 7, Draws: 2, Moves: 1100, Duration: 90 * time.Second},
	}
)

func TestSaveSummaries(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts the run in one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO experiment (name)")).
			WithArgs("minimax_vs_random").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO agent_config")).
			WithArgs(7, 1, "minimax", 4, 1, "standard", false).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO agent_config")).
			WithArgs(7, 2, "random", 0, 0, "", false).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO matchup_summary")).
			WithArgs(7, 1, 1, 2, 50, 41, 7, 2, 1100, 90000).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = NewSummaryRepo(db).SaveSummaries(ctx, "minimax_vs_random", configs, summaries)

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO experiment (name)")).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO agent_config")).
			WillReturnError(errors.New("duplicate key"))
		mock.ExpectRollback()

		err = NewSummaryRepo(db).SaveSummaries(ctx, "minimax_vs_random", configs, summaries)

		require.ErrorContains(t, err, "duplicate key")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLatestSummaries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"matchup", "red_agent", "black_agent", "games", "red_wins", "black_wins", "draws", "total_moves", "duration_ms"}).
		AddRow(1, 1, 2, 50, 41, 7, 2, 1100, 90000)
	mock.ExpectQuery(regexp.QuoteMeta("FROM matchup_summary")).
		WithArgs("minimax_vs_random").
		WillReturnRows(rows)

	got, err := NewSummaryRepo(db).LatestSummaries(context.Background(), "minimax_vs_random")

	require.NoError(t, err)
	require.Equal(t, summaries, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS experiment")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, RunMigrations(db))
	require.NoError(t, mock.ExpectationsWereMet())
	require.Contains(t, schema, "matchup_summary")
}
