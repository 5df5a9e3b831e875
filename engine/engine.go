package engine

import (
	"context"
	"time"

	"connectfour/experiments/metrics"
	"connectfour/game"
	"connectfour/meta"
)

const MaxMoves = meta.MAX_TURNS

type Engine interface {
	// Run plays a game until the board is won or full
	Run(ctx context.Context) (GameResult, error)
}

type GameResult struct {
	Outcome     game.Outcome
	Board       game.Board
	Moves       []int
	Duration    time.Duration
	GameMetric  metrics.GameMetric
	MoveMetrics []metrics.MoveMetric
}
