package agent

import (
	"context"
	"fmt"

	"connectfour/experiments/metrics"
	"connectfour/game"
	"connectfour/searcher"
)

// Agent picks a column for its own color. Callers check the board's outcome
// before asking; every agent fails with game.ErrNoLegalMove on a full board.
type Agent interface {
	Color() game.Color
	SelectMove(ctx context.Context, b game.Board) (int, error)
}

// Searching is implemented by agents that report the cost of their last move.
type Searching interface {
	LastMetric() metrics.SearchMetric
}

const (
	KindRandom  = "random"
	KindFirst   = "first"
	KindMinimax = "minimax"
)

// Source is the randomness used by Random. *rand.Rand from golang.org/x/exp
// satisfies it.
type Source interface {
	Intn(n int) int
}

// New builds an agent by kind name. source is only used by "random" and
// options only by "minimax".
func New(kind string, color game.Color, source Source, options ...searcher.Option) (Agent, error) {
	if !color.IsColor() {
		return nil, fmt.Errorf("%w: %v", game.ErrInvalidColor, color)
	}
	switch kind {
	case KindRandom:
		if source == nil {
			return nil, fmt.Errorf("random agent needs a source")
		}
		return NewRandom(color, source), nil
	case KindFirst:
		return NewFirstLegal(color), nil
	case KindMinimax:
		return NewMinimax(color, searcher.NewMinimax(options...)), nil
	default:
		return nil, fmt.Errorf("unknown agent kind %q", kind)
	}
}

func noLegalMove(color game.Color) error {
	return fmt.Errorf("%w: %s has nothing to play", game.ErrNoLegalMove, color.Name())
}
