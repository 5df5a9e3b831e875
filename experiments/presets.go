package experiments

import (
	"fmt"
	"sort"

	"connectfour/experiments/metrics"
	"connectfour/game"
)

var presets = map[string]func(games int, seed uint64) *Tournament{
	"minimax_vs_random": MinimaxVsRandomExperiment,
	"depth":             DepthExperiment,
	"score_table":       ScoreTableExperiment,
	"cutoff":            CutoffExperiment,
	"throughput":        ThroughputExperiment,
}

// ByName returns the named preset tournament.
func ByName(name string, games int, seed uint64) (*Tournament, error) {
	preset, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown experiment %q, expected one of %v", name, Names())
	}
	return preset(games, seed), nil
}

func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var randomBaseline = metrics.AgentConfig{ID: 0, Kind: "random"}

// MinimaxVsRandomExperiment is a depth 4 minimax red agent against a random black agent.
func MinimaxVsRandomExperiment(games int, seed uint64) *Tournament {
	minimax := metrics.AgentConfig{ID: 1, Kind: "minimax", Depth: 4, Goroutines: 1, ScoreTable: game.StandardScores.Name}

	return &Tournament{
		Name:     "minimax_vs_random",
		Games:    games,
		Matchups: []Matchup{{Red: minimax, Black: randomBaseline}},
		Seed:     seed,
	}
}

// DepthExperiment pairs minimax agents of growing depth against the random baseline.
func DepthExperiment(games int, seed uint64) *Tournament {
	matchUps := []Matchup{}
	for depth := 1; depth <= 5; depth++ {
		config := metrics.AgentConfig{ID: depth, Kind: "minimax", Depth: depth, Goroutines: 1, ScoreTable: game.StandardScores.Name}
		matchUps = append(matchUps, Matchup{Red: config, Black: randomBaseline})
	}

	return &Tournament{Name: "depth", Games: games, Matchups: matchUps, Seed: seed}
}

// ScoreTableExperiment plays the standard table against the legacy one from both seats.
func ScoreTableExperiment(games int, seed uint64) *Tournament {
	standard := metrics.AgentConfig{ID: 1, Kind: "minimax", Depth: 4, Goroutines: 1, ScoreTable: game.StandardScores.Name}
	legacy := metrics.AgentConfig{ID: 2, Kind: "minimax", Depth: 4, Goroutines: 1, ScoreTable: game.LegacyScores.Name}

	return &Tournament{
		Name:     "score_table",
		Games:    games,
		Opening:  OpeningPlies,
		Matchups: []Matchup{{Red: standard, Black: legacy}, {Red: legacy, Black: standard}},
		Seed:     seed,
	}
}

// CutoffExperiment plays heuristic-only leaves against terminal scoring from both seats.
func CutoffExperiment(games int, seed uint64) *Tournament {
	baseline := metrics.AgentConfig{ID: 1, Kind: "minimax", Depth: 4, Goroutines: 1, ScoreTable: game.StandardScores.Name}
	cutoff := baseline
	cutoff.ID = 2
	cutoff.TerminalCutoff = true

	return &Tournament{
		Name:     "cutoff",
		Games:    games,
		Opening:  OpeningPlies,
		Matchups: []Matchup{{Red: baseline, Black: cutoff}, {Red: cutoff, Black: baseline}},
		Seed:     seed,
	}
}
