package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"connectfour/agent"
	"connectfour/config"
	"connectfour/engine"
	"connectfour/experiments"
	"connectfour/experiments/metrics"
	"connectfour/game"
	"connectfour/repository/postgres"
	"connectfour/repository/redis"
	"connectfour/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

func main() {
	cfg := config.Load()

	mode := flag.String("mode", "single", "single, tournament or experiment")
	experiment := flag.String("experiment", "minimax_vs_random", fmt.Sprintf("Experiment to run in experiment mode %v", experiments.Names()))
	red := flag.String("red", agent.KindMinimax, "Red agent: random, first or minimax")
	black := flag.String("black", agent.KindRandom, "Black agent: random, first or minimax")
	depth := flag.Int("depth", cfg.PlyDepth, "Search horizon in moves")
	goroutines := flag.Int("goroutines", cfg.SearchGoroutines, "Goroutines searching the root's children")
	table := flag.String("table", cfg.ScoreTable, "Score table: standard or legacy")
	cutoff := flag.Bool("cutoff", cfg.TerminalCutoff, "Score won and drawn boards inside the horizon")
	games := flag.Int("games", cfg.TournamentGames, "Games per matchup")
	seed := flag.Uint64("seed", cfg.RandomSeed, "Seed of the random agents and openings")
	opening := flag.Int("opening", experiments.OpeningPlies, "Random plies before each tournament game between two non-random agents")
	render := flag.Bool("render", false, "Log the board after every move")
	flag.Parse()

	config.SetupLogging(cfg.LogLevel, cfg.LogPretty)
	if *render {
		config.SetupLogging("debug", cfg.LogPretty)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cache := connectCache(ctx, cfg)

	var err error
	switch *mode {
	case "single":
		err = runSingle(ctx, *red, *black, *seed, *render, agentConfig(0, agent.KindMinimax, *depth, *goroutines, *table, *cutoff), cache)
	case "tournament":
		t := &experiments.Tournament{
			Name:  "tournament",
			Games: *games,
			Seed:  *seed,
			Matchups: []experiments.Matchup{{
				Red:   agentConfig(1, *red, *depth, *goroutines, *table, *cutoff),
				Black: agentConfig(2, *black, *depth, *goroutines, *table, *cutoff),
			}},
		}
		if *red != agent.KindRandom && *black != agent.KindRandom {
			t.Opening = *opening
		}
		err = runTournament(ctx, cfg, t, cache)
	case "experiment":
		var t *experiments.Tournament
		t, err = experiments.ByName(*experiment, *games, *seed)
		if err == nil {
			err = runTournament(ctx, cfg, t, cache)
		}
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}

	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

func agentConfig(id int, kind string, depth, goroutines int, table string, cutoff bool) metrics.AgentConfig {
	c := metrics.AgentConfig{ID: id, Kind: kind}
	if kind == agent.KindMinimax {
		c.Depth = depth
		c.Goroutines = goroutines
		c.ScoreTable = table
		c.TerminalCutoff = cutoff
	}
	return c
}

func runSingle(ctx context.Context, redKind, blackKind string, seed uint64, render bool, minimax metrics.AgentConfig, cache searcher.Cache) error {
	scores, err := game.ScoreTableByName(minimax.ScoreTable)
	if err != nil {
		return err
	}
	options := []searcher.Option{
		searcher.WithDepth(minimax.Depth),
		searcher.WithGoroutines(minimax.Goroutines),
		searcher.WithScoreTable(scores),
	}
	if minimax.TerminalCutoff {
		options = append(options, searcher.WithTerminalCutoff())
	}
	if cache != nil {
		options = append(options, searcher.WithCache(cache))
	}

	source := rand.New(rand.NewSource(seed))
	redAgent, err := agent.New(redKind, game.Red, source, options...)
	if err != nil {
		return err
	}
	blackAgent, err := agent.New(blackKind, game.Black, source, options...)
	if err != nil {
		return err
	}

	engineOptions := []engine.Option{}
	if render {
		engineOptions = append(engineOptions, engine.WithRender())
	}
	e, err := engine.LocalEngine(redAgent, blackAgent, engineOptions...)
	if err != nil {
		return err
	}

	result, err := e.Run(ctx)
	if err != nil {
		return err
	}
	log.Info().Msgf("%s after %d moves in %s\n%s", result.Outcome, len(result.Moves), result.Duration, result.Board)
	return nil
}

func runTournament(ctx context.Context, cfg *config.Config, t *experiments.Tournament, cache searcher.Cache) error {
	writer, err := metrics.NewWriter(cfg.ResultsDir, t.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	t.Writer = writer
	t.Cache = cache

	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, postgres.Options{
			URL:             cfg.DatabaseURL,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		})
		if err != nil {
			return err
		}
		defer db.Close()
		t.Store = postgres.NewSummaryRepo(db)
	}

	results, err := t.Run(ctx)
	if err != nil {
		return err
	}
	for _, summary := range results.Summaries {
		log.Info().Msgf("matchup %d: %s", summary.Matchup, experiments.Report(summary))
	}
	return nil
}

// connectCache returns a shared Redis cache when REDIS_URL answers.
func connectCache(ctx context.Context, cfg *config.Config) searcher.Cache {
	client := redis.Connect(ctx, cfg.RedisURL, cfg.RedisPassword)
	if client == nil {
		return nil
	}
	return redis.NewSearchCache(client, cfg.CacheTTL)
}
