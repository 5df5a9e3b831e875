package experiments

import (
	"context"
	"fmt"

	"connectfour/agent"
	"connectfour/engine"
	"connectfour/experiments/metrics"
	"connectfour/game"
	"connectfour/meta"
	"connectfour/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const NumGames = meta.GAMES // Per match up

// OpeningPlies is the random opening used when neither seat is random.
// Minimax agents are deterministic, so without it every game of a matchup
// would be the same game.
const OpeningPlies = 2

// Matchup seats one agent config on each color.
type Matchup struct {
	Red   metrics.AgentConfig
	Black metrics.AgentConfig
}

// SummaryStore persists matchup summaries, e.g. repository/postgres.
type SummaryStore interface {
	SaveSummaries(ctx context.Context, experiment string, configs []metrics.AgentConfig, summaries []metrics.Summary) error
}

type Tournament struct {
	Name     string
	Games    int
	Matchups []Matchup
	Seed     uint64
	Opening  int // Random plies from Seed before each game

	// Optional
	Writer *metrics.Writer
	Store  SummaryStore
	Cache  searcher.Cache
}

type Results struct {
	Summaries   []metrics.Summary
	GameRecords []metrics.GameRecord
	MoveRecords []metrics.MoveRecord
}

// Run plays Games games for every matchup and stores what it collected.
func (t *Tournament) Run(ctx context.Context) (Results, error) {
	games := t.Games
	if games <= 0 {
		games = NumGames
	}
	source := rand.New(rand.NewSource(t.Seed))

	// Run a number of games for each matchup
	count := 0
	results := Results{}

	log.Info().Msgf("starting %s experiment...", t.Name)

	for mi, matchup := range t.Matchups {
		log.Info().Msgf("starting matchup %d of %d between red=%s and black=%s...",
			mi+1, len(t.Matchups), matchup.Red, matchup.Black)

		summary := metrics.Summary{Matchup: mi + 1, Red: matchup.Red.ID, Black: matchup.Black.ID}
		for i := 0; i < games; i++ {
			opening, start := t.opening(source)
			result, err := t.runGame(ctx, matchup, start, source)
			if err != nil {
				return results, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			summary.Add(result.Outcome, result.GameMetric)
			results.GameRecords = append(results.GameRecords, metrics.GameRecord{
				ID:         count,
				Red:        matchup.Red.ID,
				Black:      matchup.Black.ID,
				Moves:      append(opening, result.Moves...),
				GameMetric: result.GameMetric,
			})
			for _, mm := range result.MoveMetrics {
				results.MoveRecords = append(results.MoveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Debug().Msgf("completed matchup %d of %d game %d: %s", mi+1, len(t.Matchups), i+1, result.Outcome)
		}
		results.Summaries = append(results.Summaries, summary)
		log.Info().Msgf("completed matchup %d of %d: %s", mi+1, len(t.Matchups), Report(summary))
	}

	log.Info().Msgf("completed %s experiment", t.Name)

	if err := t.store(ctx, results); err != nil {
		return results, err
	}
	return results, nil
}

func (t *Tournament) store(ctx context.Context, results Results) error {
	configs := t.configs()
	if t.Writer != nil {
		// Store experiment metadata
		if err := t.Writer.WriteAgentConfigs(configs); err != nil {
			return fmt.Errorf("failed to store agent configs: %w", err)
		}
		log.Info().Msg("stored agent configs")

		// Store experiment results
		if err := t.Writer.WriteSummaries(results.Summaries); err != nil {
			return fmt.Errorf("failed to write summaries: %w", err)
		}
		if err := t.Writer.WriteGameRecords(results.GameRecords); err != nil {
			return fmt.Errorf("failed to write game records: %w", err)
		}
		if err := t.Writer.WriteMoveRecords(results.MoveRecords); err != nil {
			return fmt.Errorf("failed to write move records: %w", err)
		}
		log.Info().Msgf("stored results in %s", t.Writer.Dir())
	}
	if t.Store != nil {
		if err := t.Store.SaveSummaries(ctx, t.Name, configs, results.Summaries); err != nil {
			return fmt.Errorf("failed to save summaries: %w", err)
		}
		log.Info().Msg("saved summaries")
	}
	return nil
}

// configs lists each agent config once, in order of first appearance.
func (t *Tournament) configs() []metrics.AgentConfig {
	seen := map[int]bool{}
	configs := []metrics.AgentConfig{}
	for _, matchup := range t.Matchups {
		for _, config := range []metrics.AgentConfig{matchup.Red, matchup.Black} {
			if !seen[config.ID] {
				seen[config.ID] = true
				configs = append(configs, config)
			}
		}
	}
	return configs
}

// opening plays Opening uniformly random plies, Red first, stopping early
// if the game is decided.
func (t *Tournament) opening(source agent.Source) ([]int, game.Board) {
	board := game.NewBoard()
	moves := []int{}
	color := game.Red
	for len(moves) < t.Opening && board.Outcome() == game.Ongoing {
		legal := board.LegalMoves()
		column := legal[source.Intn(len(legal))]
		// Columns come from LegalMoves, so Apply cannot fail
		board, _ = board.Apply(column, color)
		moves = append(moves, column)
		color = color.Opponent()
	}
	return moves, board
}

// runGame plays a single game between fresh agents built from the matchup
func (t *Tournament) runGame(ctx context.Context, matchup Matchup, start game.Board, source agent.Source) (engine.GameResult, error) {
	red, err := t.createAgent(matchup.Red, game.Red, source)
	if err != nil {
		return engine.GameResult{}, err
	}
	black, err := t.createAgent(matchup.Black, game.Black, source)
	if err != nil {
		return engine.GameResult{}, err
	}

	e, err := engine.LocalEngine(red, black, engine.WithStartingBoard(start))
	if err != nil {
		return engine.GameResult{}, err
	}
	return e.Run(ctx)
}

func (t *Tournament) createAgent(config metrics.AgentConfig, color game.Color, source agent.Source) (agent.Agent, error) {
	options := []searcher.Option{}

	if config.Depth > 0 {
		options = append(options, searcher.WithDepth(config.Depth))
	}
	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	if config.ScoreTable != "" {
		table, err := game.ScoreTableByName(config.ScoreTable)
		if err != nil {
			return nil, err
		}
		options = append(options, searcher.WithScoreTable(table))
	}
	if config.TerminalCutoff {
		options = append(options, searcher.WithTerminalCutoff())
	}
	if t.Cache != nil {
		options = append(options, searcher.WithCache(t.Cache))
	}

	options = append(options, searcher.WithMetrics())
	return agent.New(config.Kind, color, source, options...)
}

// Report formats a summary as "Red n (p%) Black n (p%) Tie n".
func Report(s metrics.Summary) string {
	return fmt.Sprintf("Red %d (%.0f%%) Black %d (%.0f%%) Tie %d",
		s.RedWins, s.WinRate(game.RedWin), s.BlackWins, s.WinRate(game.BlackWin), s.Draws)
}
