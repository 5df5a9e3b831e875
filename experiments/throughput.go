package experiments

import (
	"connectfour/experiments/metrics"
	"connectfour/game"
)

var parallelConfigs = []metrics.AgentConfig{
	{ID: 1, Kind: "minimax", Depth: 5, Goroutines: 1, ScoreTable: game.StandardScores.Name},
	{ID: 2, Kind: "minimax", Depth: 5, Goroutines: 2, ScoreTable: game.StandardScores.Name},
	{ID: 3, Kind: "minimax", Depth: 5, Goroutines: 4, ScoreTable: game.StandardScores.Name},
	{ID: 4, Kind: "minimax", Depth: 5, Goroutines: 8, ScoreTable: game.StandardScores.Name},
}

// ThroughputExperiment measures root-parallel search. Each matchup uses the
// same config for both colors so games have the same playing strength and a
// similar length; the move records carry nodes and duration per search.
func ThroughputExperiment(games int, seed uint64) *Tournament {
	matchUps := []Matchup{}
	for _, config := range parallelConfigs {
		matchUps = append(matchUps, Matchup{Red: config, Black: config})
	}

	return &Tournament{
		Name:     "throughput",
		Games:    games,
		Matchups: matchUps,
		Seed:     seed,
		Opening:  OpeningPlies,
	}
}
