package searcher

import (
	"context"
	"fmt"
	"sync"

	"connectfour/experiments/metrics"
	"connectfour/game"
	"connectfour/meta"

	"github.com/rs/zerolog/log"
)

type Option func(m *Minimax)

// Minimax is a depth-limited minimax search with alpha-beta pruning. Red is
// the maximizing side. A Minimax holds only configuration and can be shared
// between goroutines.
type Minimax struct {
	depth          int
	goroutines     int
	evaluate       game.Evaluate
	evaluateName   string
	pruning        bool
	terminalCutoff bool
	withMetrics    bool
	cache          Cache
}

func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

// WithGoroutines searches the root's children concurrently. Each child gets
// its own copy of the root window, so the chosen move and value match the
// sequential search for the full window.
func WithGoroutines(goroutines int) Option {
	return func(m *Minimax) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

func WithScoreTable(table game.ScoreTable) Option {
	return func(m *Minimax) {
		m.evaluate = game.EvaluateWith(table)
		m.evaluateName = table.Name
	}
}

// WithEvaluationFn replaces the leaf evaluation. name identifies the
// function in cache keys.
func WithEvaluationFn(name string, evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
			m.evaluateName = name
		}
	}
}

// WithoutPruning visits every node of the tree.
func WithoutPruning() Option {
	return func(m *Minimax) {
		m.pruning = false
	}
}

// WithTerminalCutoff scores won and drawn boards as soon as they appear
// below the root instead of searching on to the depth limit.
func WithTerminalCutoff() Option {
	return func(m *Minimax) {
		m.terminalCutoff = true
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.withMetrics = true
	}
}

func WithCache(cache Cache) Option {
	return func(m *Minimax) {
		m.cache = cache
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		depth:        DefaultDepth,
		goroutines:   meta.GO_ROUTINES,
		evaluate:     game.EvaluateWith(game.StandardScores),
		evaluateName: game.StandardScores.Name,
		pruning:      true,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) Depth() int {
	return m.depth
}

func (m *Minimax) Goroutines() int {
	return m.goroutines
}

// Search returns the best column for the side to move and its value.
// At depth 0, or when no column is open, it returns game.NoMove and the
// heuristic value of b. Ties keep the lowest column.
func (m *Minimax) Search(b game.Board, depth int, maximizing bool, alpha, beta game.Score) (int, game.Score) {
	return m.search(b, depth, maximizing, alpha, beta, metrics.NewDummyCollector(), true)
}

// Best searches b to the configured depth for color.
func (m *Minimax) Best(ctx context.Context, b game.Board, color game.Color) (Result, error) {
	if !color.IsColor() {
		return Result{Column: game.NoMove}, fmt.Errorf("%w: %v", game.ErrInvalidColor, color)
	}
	if b.IsFull() {
		return Result{Column: game.NoMove}, fmt.Errorf("%w: board is full", game.ErrNoLegalMove)
	}

	collector := metrics.NewDummyCollector()
	if m.withMetrics {
		collector = metrics.NewCollector()
	}
	collector.Start(m.depth, m.goroutines)

	maximizing := color == game.Red
	key := m.cacheKey(b, maximizing)
	if m.cache != nil {
		entry, ok, err := m.cache.Get(ctx, key)
		if err != nil {
			log.Warn().Err(err).Msg("search cache lookup failed, searching instead")
		} else if ok && b.IsOpen(entry.Column) {
			collector.SetCacheHit(true)
			return Result{Column: entry.Column, Value: entry.Value, Metric: collector.Complete()}, nil
		}
	}

	// The root is expanded even when b is already decided
	collector.AddNode()
	column, value := m.expand(b, m.depth, maximizing, NegInf, PosInf, collector, true)

	if m.cache != nil {
		if err := m.cache.Set(ctx, key, Entry{Column: column, Value: value}); err != nil {
			log.Warn().Err(err).Msg("failed to store search result")
		}
	}
	return Result{Column: column, Value: value, Metric: collector.Complete()}, nil
}

func (m *Minimax) search(b game.Board, depth int, maximizing bool, alpha, beta game.Score, c metrics.Collector, root bool) (int, game.Score) {
	c.AddNode()
	if m.terminalCutoff {
		if outcome := b.Outcome(); outcome.IsTerminal() {
			c.AddLeaf()
			return game.NoMove, terminalValue(outcome, depth)
		}
	}
	if depth == 0 || b.IsFull() {
		c.AddLeaf()
		return game.NoMove, m.evaluate(b)
	}
	return m.expand(b, depth, maximizing, alpha, beta, c, root)
}

// expand runs the move loop of a node with depth > 0 and at least one open column.
func (m *Minimax) expand(b game.Board, depth int, maximizing bool, alpha, beta game.Score, c metrics.Collector, root bool) (int, game.Score) {
	moves := b.LegalMoves()
	if root && m.goroutines > 1 && len(moves) > 1 {
		values := m.searchChildren(b, moves, depth, maximizing, alpha, beta, c)
		return m.pick(moves, maximizing, alpha, beta, c, func(i int, _, _ game.Score) game.Score {
			return values[i]
		})
	}
	color := sideColor(maximizing)
	return m.pick(moves, maximizing, alpha, beta, c, func(i int, alpha, beta game.Score) game.Score {
		// Columns come from LegalMoves, so Apply cannot fail
		child, _ := b.Apply(moves[i], color)
		_, value := m.search(child, depth-1, !maximizing, alpha, beta, c, false)
		return value
	})
}

// pick walks moves in order, keeps the strictly best value (first column on
// ties) and stops once the window closes. When no child beats the sentinel,
// e.g. an evaluation function returning NegInf, the first move is kept.
func (m *Minimax) pick(moves []int, maximizing bool, alpha, beta game.Score, c metrics.Collector, value func(i int, alpha, beta game.Score) game.Score) (int, game.Score) {
	bestColumn := game.NoMove
	var bestValue game.Score
	if maximizing {
		bestValue = NegInf
		for i, column := range moves {
			if v := value(i, alpha, beta); v > bestValue {
				bestValue = v
				bestColumn = column
			}
			alpha = max(alpha, bestValue)
			if m.pruning && alpha >= beta {
				if i < len(moves)-1 {
					c.AddCutoff()
				}
				break
			}
		}
	} else {
		bestValue = PosInf
		for i, column := range moves {
			if v := value(i, alpha, beta); v < bestValue {
				bestValue = v
				bestColumn = column
			}
			beta = min(beta, bestValue)
			if m.pruning && alpha >= beta {
				if i < len(moves)-1 {
					c.AddCutoff()
				}
				break
			}
		}
	}

	if bestColumn == game.NoMove && len(moves) > 0 {
		bestColumn = moves[0]
	}
	return bestColumn, bestValue
}

// searchChildren evaluates every root child on a pool of goroutines, each
// child bounded by the root window alone.
func (m *Minimax) searchChildren(b game.Board, moves []int, depth int, maximizing bool, alpha, beta game.Score, c metrics.Collector) []game.Score {
	color := sideColor(maximizing)
	values := make([]game.Score, len(moves))

	task := make(chan int, len(moves))
	for i := range moves {
		task <- i
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < min(m.goroutines, len(moves)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := range task {
				child, _ := b.Apply(moves[j], color)
				_, values[j] = m.search(child, depth-1, !maximizing, alpha, beta, c, false)
			}
		}()
	}

	wg.Wait()
	return values
}

func (m *Minimax) cacheKey(b game.Board, maximizing bool) string {
	mode := "heuristic"
	if m.terminalCutoff {
		mode = "terminal"
	}
	return fmt.Sprintf("%s:%d:%s:%s:%s", b.Key(), m.depth, sideColor(maximizing).Name(), m.evaluateName, mode)
}

func sideColor(maximizing bool) game.Color {
	if maximizing {
		return game.Red
	}
	return game.Black
}
