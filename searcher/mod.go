package searcher

import (
	"context"
	"math"

	"connectfour/experiments/metrics"
	"connectfour/game"
	"connectfour/meta"
)

// Search window sentinels. They sit far outside any heuristic or terminal
// value and can be negated safely.
const (
	NegInf game.Score = -math.MaxInt32
	PosInf game.Score = math.MaxInt32
)

// WinScore is the magnitude given to a won board when terminal states are
// scored during search. Remaining depth is added so quicker wins rank higher.
const WinScore game.Score = 1000000

const DefaultDepth = meta.PLY_DEPTH

// Result is the move chosen from the root together with its backed-up value.
type Result struct {
	Column int
	Value  game.Score
	Metric metrics.SearchMetric
}

// Entry is what a Cache remembers about a searched root.
type Entry struct {
	Column int        `json:"column"`
	Value  game.Score `json:"value"`
}

// Cache stores root results keyed by position and search settings.
type Cache interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, entry Entry) error
}

func terminalValue(outcome game.Outcome, depth int) game.Score {
	switch outcome {
	case game.RedWin:
		return WinScore + game.Score(depth)
	case game.BlackWin:
		return -WinScore - game.Score(depth)
	default:
		return 0
	}
}
