package metrics

import (
	"testing"
	"time"

	"connectfour/game"

	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	t.Run("aggregates outcomes", func(t *testing.T) {
		s := Summary{}
		s.Add(game.RedWin, GameMetric{TotalMoves: 20, Duration: 2 * time.Second})
		s.Add(game.RedWin, GameMetric{TotalMoves: 30, Duration: 4 * time.Second})
		s.Add(game.BlackWin, GameMetric{TotalMoves: 40, Duration: 3 * time.Second})
		s.Add(game.Draw, GameMetric{TotalMoves: 64, Duration: 7 * time.Second})

		require.Equal(t, 4, s.Games)
		require.Equal(t, 2, s.Count(game.RedWin))
		require.Equal(t, 1, s.Count(game.BlackWin))
		require.Equal(t, 1, s.Count(game.Draw))
		require.Equal(t, 50.0, s.WinRate(game.RedWin))
		require.Equal(t, 25.0, s.WinRate(game.Draw))
		require.Equal(t, 38.5, s.AverageMoves())
		require.Equal(t, 4*time.Second, s.AverageDuration())
	})

	t.Run("empty summary", func(t *testing.T) {
		s := Summary{}

		require.Zero(t, s.WinRate(game.RedWin))
		require.Zero(t, s.AverageMoves())
		require.Zero(t, s.AverageDuration())
	})

	t.Run("agent config names", func(t *testing.T) {
		require.Equal(t, "2:random", AgentConfig{ID: 2, Kind: "random"}.String())
		require.Equal(t, "1:minimax(depth=4 goroutines=1 table=standard cutoff=false)",
			AgentConfig{ID: 1, Kind: "minimax", Depth: 4, Goroutines: 1, ScoreTable: "standard"}.String())
	})
}
