package engine

import (
	"context"
	"testing"

	"connectfour/agent"
	"connectfour/game"
	"connectfour/searcher"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type fixedAgent struct {
	color  game.Color
	column int
}

func (a fixedAgent) Color() game.Color {
	return a.color
}

func (a fixedAgent) SelectMove(context.Context, game.Board) (int, error) {
	return a.column, nil
}

func TestLocalEngine(t *testing.T) {
	ctx := context.Background()

	t.Run("first legal agents fill columns until red completes the bottom row", func(t *testing.T) {
		e, err := LocalEngine(agent.NewFirstLegal(game.Red), agent.NewFirstLegal(game.Black))
		require.NoError(t, err)

		result, err := e.Run(ctx)

		require.NoError(t, err)
		require.Equal(t, game.RedWin, result.Outcome)
		require.Len(t, result.Moves, 25, "Rows alternate color, so only row 7 can complete")
		require.Equal(t, 3, result.Moves[24])
		require.Equal(t, 25, result.GameMetric.TotalMoves)
		require.Equal(t, "red wins", result.GameMetric.Outcome)
		require.Empty(t, result.MoveMetrics, "First legal agents do not search")
	})

	t.Run("minimax against random always finishes", func(t *testing.T) {
		r := rand.New(rand.NewSource(3))
		for i := 0; i < 5; i++ {
			red := agent.NewMinimax(game.Red, searcher.NewMinimax(searcher.WithDepth(2), searcher.WithMetrics()))
			black := agent.NewRandom(game.Black, r)
			e, err := LocalEngine(red, black, WithRender())
			require.NoError(t, err)

			result, err := e.Run(ctx)

			require.NoError(t, err)
			require.True(t, result.Outcome.IsTerminal())
			require.Equal(t, result.Outcome, result.Board.Outcome())
			require.Equal(t, len(result.Moves), result.Board.Count())
			require.Len(t, result.MoveMetrics, (len(result.Moves)+1)/2, "Only red reports search metrics")
			for _, m := range result.MoveMetrics {
				require.Equal(t, "red", m.Color)
				require.Positive(t, m.Nodes)
			}
		}
	})

	t.Run("starting board decides the side to move", func(t *testing.T) {
		start := game.MustParseBoard("-RRR-BBB")
		e, err := LocalEngine(agent.NewFirstLegal(game.Red), agent.NewFirstLegal(game.Black), WithStartingBoard(start))
		require.NoError(t, err)

		result, err := e.Run(ctx)

		require.NoError(t, err)
		require.Equal(t, game.RedWin, result.Outcome)
		require.Equal(t, []int{0}, result.Moves)
	})

	t.Run("black moves first on an odd piece count", func(t *testing.T) {
		start := game.MustParseBoard("-------R", "-BBB-RRR")
		e, err := LocalEngine(agent.NewFirstLegal(game.Red), agent.NewFirstLegal(game.Black), WithStartingBoard(start))
		require.NoError(t, err)

		result, err := e.Run(ctx)

		require.NoError(t, err)
		require.Equal(t, game.BlackWin, result.Outcome)
		require.Equal(t, []int{0}, result.Moves)
	})

	t.Run("decided starting board plays nothing", func(t *testing.T) {
		start := game.MustParseBoard("RRRR-BBB")
		e, err := LocalEngine(agent.NewFirstLegal(game.Red), agent.NewFirstLegal(game.Black), WithStartingBoard(start))
		require.NoError(t, err)

		result, err := e.Run(ctx)

		require.NoError(t, err)
		require.Equal(t, game.RedWin, result.Outcome)
		require.Empty(t, result.Moves)
	})

	t.Run("column outside the board is an error", func(t *testing.T) {
		e, err := LocalEngine(fixedAgent{color: game.Red, column: 9}, agent.NewFirstLegal(game.Black))
		require.NoError(t, err)

		_, err = e.Run(ctx)

		require.ErrorIs(t, err, game.ErrInvalidMove)
	})

	t.Run("full column is an error", func(t *testing.T) {
		e, err := LocalEngine(fixedAgent{color: game.Red, column: 0}, fixedAgent{color: game.Black, column: 0})
		require.NoError(t, err)

		result, err := e.Run(ctx)

		require.ErrorIs(t, err, game.ErrColumnFull)
		require.Len(t, result.Moves, game.Rows)
	})

	t.Run("agents must match their seats", func(t *testing.T) {
		_, err := LocalEngine(agent.NewFirstLegal(game.Black), agent.NewFirstLegal(game.Red))

		require.Error(t, err)
	})

	t.Run("cancelled context stops the game", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		e, err := LocalEngine(agent.NewFirstLegal(game.Red), agent.NewFirstLegal(game.Black))
		require.NoError(t, err)

		_, err = e.Run(cancelled)

		require.ErrorIs(t, err, context.Canceled)
	})
}
