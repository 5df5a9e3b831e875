package agent

import (
	"context"
	"testing"

	"connectfour/game"
	"connectfour/searcher"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// stubSource replays fixed indices.
type stubSource struct {
	picks []int
	asked []int
}

func (s *stubSource) Intn(n int) int {
	s.asked = append(s.asked, n)
	pick := s.picks[0]
	s.picks = s.picks[1:]
	return pick
}

func fullBoard() game.Board {
	rows := make([]string, game.Rows)
	for r := range rows {
		if r%2 == 0 {
			rows[r] = "RRBBRRBB"
		} else {
			rows[r] = "BBRRBBRR"
		}
	}
	return game.MustParseBoard(rows...)
}

// Columns 1 and 3 are full.
func twoFullColumns() game.Board {
	return game.MustParseBoard(
		"-R-B----", "-B-R----", "-R-B----", "-B-R----",
		"-R-B----", "-B-R----", "-R-B----", "-B-R----",
	)
}

func TestRandom(t *testing.T) {
	ctx := context.Background()

	t.Run("indexes the legal moves with the injected source", func(t *testing.T) {
		source := &stubSource{picks: []int{0, 2, 5}}
		a := NewRandom(game.Black, source)
		b := twoFullColumns()

		var got []int
		for range 3 {
			column, err := a.SelectMove(ctx, b)
			require.NoError(t, err)
			got = append(got, column)
		}

		require.Equal(t, []int{0, 4, 7}, got, "Picks index [0 2 4 5 6 7]")
		require.Equal(t, []int{6, 6, 6}, source.asked)
		require.Equal(t, game.Black, a.Color())
	})

	t.Run("same seed replays the same columns", func(t *testing.T) {
		first := NewRandom(game.Red, rand.New(rand.NewSource(42)))
		second := NewRandom(game.Red, rand.New(rand.NewSource(42)))
		b := game.NewBoard()

		for range 20 {
			want, err := first.SelectMove(ctx, b)
			require.NoError(t, err)
			got, err := second.SelectMove(ctx, b)
			require.NoError(t, err)

			require.Equal(t, want, got)
			require.True(t, b.IsOpen(got))
		}
	})

	t.Run("full board", func(t *testing.T) {
		a := NewRandom(game.Red, &stubSource{})

		column, err := a.SelectMove(ctx, fullBoard())

		require.ErrorIs(t, err, game.ErrNoLegalMove)
		require.Equal(t, game.NoMove, column)
	})
}

func TestFirstLegal(t *testing.T) {
	ctx := context.Background()

	t.Run("lowest open column", func(t *testing.T) {
		a := NewFirstLegal(game.Red)
		b := game.MustParseBoard(
			"RB------", "BR------", "RB------", "BR------",
			"RB------", "BR------", "RB------", "BR------",
		)

		column, err := a.SelectMove(ctx, b)

		require.NoError(t, err)
		require.Equal(t, 2, column)
	})

	t.Run("full board", func(t *testing.T) {
		_, err := NewFirstLegal(game.Black).SelectMove(ctx, fullBoard())

		require.ErrorIs(t, err, game.ErrNoLegalMove)
	})
}

func TestMinimax(t *testing.T) {
	ctx := context.Background()

	t.Run("red maximizes from the full window", func(t *testing.T) {
		s := searcher.NewMinimax(searcher.WithDepth(1))
		a := NewMinimax(game.Red, s)

		column, err := a.SelectMove(ctx, game.NewBoard())

		require.NoError(t, err)
		require.Equal(t, 0, column)
	})

	t.Run("black minimizes", func(t *testing.T) {
		s := searcher.NewMinimax(searcher.WithDepth(3))
		a := NewMinimax(game.Black, s)
		b := game.MustParseBoard("-RR--B--")

		want, _ := s.Search(b, 3, false, searcher.NegInf, searcher.PosInf)
		column, err := a.SelectMove(ctx, b)

		require.NoError(t, err)
		require.Equal(t, want, column)
	})

	t.Run("takes the win when terminal states are scored", func(t *testing.T) {
		s := searcher.NewMinimax(searcher.WithDepth(2), searcher.WithTerminalCutoff())
		a := NewMinimax(game.Black, s)
		b := game.MustParseBoard("RRR-BBB-")

		column, err := a.SelectMove(ctx, b)

		require.NoError(t, err)
		require.Equal(t, 3, column, "Black completes four on 3 before Red can")
	})

	t.Run("full board", func(t *testing.T) {
		a := NewMinimax(game.Red, searcher.NewMinimax())

		_, err := a.SelectMove(ctx, fullBoard())

		require.ErrorIs(t, err, game.ErrNoLegalMove)
	})

	t.Run("reports the last search", func(t *testing.T) {
		a := NewMinimax(game.Red, searcher.NewMinimax(searcher.WithDepth(2), searcher.WithMetrics()))

		_, err := a.SelectMove(ctx, game.NewBoard())

		require.NoError(t, err)
		require.Equal(t, 24, a.LastMetric().Nodes)
		var _ Searching = a
	})
}

func TestNew(t *testing.T) {
	source := rand.New(rand.NewSource(1))

	tests := []struct {
		kind string
		want Agent
	}{
		{kind: KindRandom, want: &Random{}},
		{kind: KindFirst, want: &FirstLegal{}},
		{kind: KindMinimax, want: &Minimax{}},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			a, err := New(tt.kind, game.Black, source, searcher.WithDepth(2))

			require.NoError(t, err)
			require.IsType(t, tt.want, a)
			require.Equal(t, game.Black, a.Color())
		})
	}

	t.Run("minimax options reach the searcher", func(t *testing.T) {
		a, err := New(KindMinimax, game.Red, nil, searcher.WithDepth(6))

		require.NoError(t, err)
		require.Equal(t, 6, a.(*Minimax).Searcher().Depth())
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := New("greedy", game.Red, source)

		require.Error(t, err)
	})

	t.Run("random without a source", func(t *testing.T) {
		_, err := New(KindRandom, game.Red, nil)

		require.Error(t, err)
	})

	t.Run("empty is not a color", func(t *testing.T) {
		_, err := New(KindFirst, game.Empty, source)

		require.ErrorIs(t, err, game.ErrInvalidColor)
	})
}
