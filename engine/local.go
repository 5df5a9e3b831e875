package engine

import (
	"context"
	"fmt"
	"time"

	"connectfour/agent"
	"connectfour/experiments/metrics"
	"connectfour/game"
	"connectfour/utils"

	"github.com/rs/zerolog/log"
)

type Option func(e *Local)

// WithStartingBoard starts from b instead of the empty board. The side to
// move follows from the piece count: Red when both colors have played
// equally often.
func WithStartingBoard(b game.Board) Option {
	return func(e *Local) {
		e.start = b
	}
}

// WithRender logs the board after every move at debug level.
func WithRender() Option {
	return func(e *Local) {
		e.render = true
	}
}

type Local struct {
	agents [2]agent.Agent
	start  game.Board
	render bool
}

func LocalEngine(red, black agent.Agent, options ...Option) (*Local, error) {
	if red.Color() != game.Red || black.Color() != game.Black {
		return nil, fmt.Errorf("agents must play red then black, got %s and %s",
			red.Color().Name(), black.Color().Name())
	}

	e := &Local{
		agents: [2]agent.Agent{red, black},
		start:  game.NewBoard(),
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

// Run alternates the agents, Red first, until the outcome is decided.
func (e *Local) Run(ctx context.Context) (GameResult, error) {
	board := e.start
	color := game.Red
	if board.Count()%2 == 1 {
		color = game.Black
	}

	result := GameResult{}
	startTime := time.Now()
	log.Debug().Msgf("%s is starting", color.Name())

	for step := 1; board.Outcome() == game.Ongoing && step <= MaxMoves; step++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		current := e.agents[color-game.Red]
		column, err := current.SelectMove(ctx, board)
		if err != nil {
			return result, fmt.Errorf("%s failed to select a move at step %d: %w", color.Name(), step, err)
		}
		// An illegal column is never replaced by a legal one
		legal := utils.Contains(board.LegalMoves(), column)
		next, err := board.Apply(column, color)
		if !legal || err != nil {
			return result, fmt.Errorf("%s selected illegal column %d at step %d: %w",
				color.Name(), column, step, err)
		}
		if s, ok := current.(agent.Searching); ok {
			result.MoveMetrics = append(result.MoveMetrics, metrics.MoveMetric{
				Step:         step,
				Color:        color.Name(),
				SearchMetric: s.LastMetric(),
			})
		}

		board = next
		result.Moves = append(result.Moves, column)
		if e.render {
			log.Debug().Msgf("%s plays %d\n%s", color.Name(), column, board)
		}
		color = color.Opponent()
	}

	endTime := time.Now()
	result.Outcome = board.Outcome()
	result.Board = board
	result.Duration = endTime.Sub(startTime)
	result.GameMetric = metrics.GameMetric{
		Outcome:    result.Outcome.String(),
		StartTime:  startTime,
		EndTime:    endTime,
		Duration:   result.Duration,
		TotalMoves: len(result.Moves),
	}
	return result, nil
}
