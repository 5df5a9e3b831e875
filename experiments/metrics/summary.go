package metrics

import (
	"fmt"
	"time"

	"connectfour/game"
)

type AgentConfig struct {
	ID             int
	Kind           string // "random", "first" or "minimax"
	Depth          int
	Goroutines     int
	ScoreTable     string
	TerminalCutoff bool
}

func (c AgentConfig) String() string {
	if c.Kind != "minimax" {
		return fmt.Sprintf("%d:%s", c.ID, c.Kind)
	}
	return fmt.Sprintf("%d:%s(depth=%d goroutines=%d table=%s cutoff=%t)",
		c.ID, c.Kind, c.Depth, c.Goroutines, c.ScoreTable, c.TerminalCutoff)
}

// Summary aggregates the games of one matchup.
type Summary struct {
	Matchup   int
	Red       int // AgentConfig.ID
	Black     int // AgentConfig.ID
	Games     int
	RedWins   int
	BlackWins int
	Draws     int
	Moves     int
	Duration  time.Duration
}

func (s *Summary) Add(outcome game.Outcome, metric GameMetric) {
	s.Games++
	s.Moves += metric.TotalMoves
	s.Duration += metric.Duration
	switch outcome {
	case game.RedWin:
		s.RedWins++
	case game.BlackWin:
		s.BlackWins++
	case game.Draw:
		s.Draws++
	}
}

func (s Summary) Count(outcome game.Outcome) int {
	switch outcome {
	case game.RedWin:
		return s.RedWins
	case game.BlackWin:
		return s.BlackWins
	case game.Draw:
		return s.Draws
	default:
		return 0
	}
}

// WinRate is the percentage of games that ended with outcome.
func (s Summary) WinRate(outcome game.Outcome) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Count(outcome)) / float64(s.Games) * 100
}

func (s Summary) AverageMoves() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Moves) / float64(s.Games)
}

func (s Summary) AverageDuration() time.Duration {
	if s.Games == 0 {
		return 0
	}
	return s.Duration / time.Duration(s.Games)
}
