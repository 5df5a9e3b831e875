package agent

import (
	"context"
	"sync"

	"connectfour/experiments/metrics"
	"connectfour/game"
	"connectfour/searcher"
)

// Random plays a uniformly chosen legal column.
type Random struct {
	color  game.Color
	mu     sync.Mutex
	source Source
}

func NewRandom(color game.Color, source Source) *Random {
	return &Random{color: color, source: source}
}

func (a *Random) Color() game.Color {
	return a.color
}

func (a *Random) SelectMove(_ context.Context, b game.Board) (int, error) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return game.NoMove, noLegalMove(a.color)
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	return moves[a.source.Intn(len(moves))], nil
}

// FirstLegal plays the lowest open column.
type FirstLegal struct {
	color game.Color
}

func NewFirstLegal(color game.Color) *FirstLegal {
	return &FirstLegal{color: color}
}

func (a *FirstLegal) Color() game.Color {
	return a.color
}

func (a *FirstLegal) SelectMove(_ context.Context, b game.Board) (int, error) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return game.NoMove, noLegalMove(a.color)
	}
	return moves[0], nil
}

// Minimax plays the column chosen by a depth-limited alpha-beta search,
// maximizing for Red and minimizing for Black.
type Minimax struct {
	color    game.Color
	searcher *searcher.Minimax
	mu       sync.Mutex
	last     metrics.SearchMetric
}

func NewMinimax(color game.Color, s *searcher.Minimax) *Minimax {
	return &Minimax{color: color, searcher: s}
}

func (a *Minimax) Color() game.Color {
	return a.color
}

func (a *Minimax) Searcher() *searcher.Minimax {
	return a.searcher
}

func (a *Minimax) SelectMove(ctx context.Context, b game.Board) (int, error) {
	result, err := a.searcher.Best(ctx, b, a.color)
	if err != nil {
		return game.NoMove, err
	}

	a.mu.Lock()
	a.last = result.Metric
	a.mu.Unlock()
	return result.Column, nil
}

func (a *Minimax) LastMetric() metrics.SearchMetric {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.last
}
