package experiments

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"catan/agent"
	"catan/config"
	"catan/engine"
	"catan/experiments/metrics"
	"catan/experiments/trace"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Result holds every record of an experiment, ordered by matchup and game.
type Result struct {
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
	Dir   string // where the CSV files went, empty if disabled
}

type task struct {
	matchup int
	game    int
	seed    uint64
}

type outcome struct {
	task
	game  metrics.GameRecord
	moves []metrics.MoveRecord
	err   error
}

// Run plays cfg.Games games for every matchup on cfg.Parallel workers and
// writes the records to the configured sinks. Each game has its own seed,
// id and state.
func Run(cfg config.Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	base := filepath.Join(cfg.Output.Dir, cfg.Name)

	log.Info().Msgf("starting %s experiment...", cfg.Name)

	total := len(cfg.Matchups) * cfg.Games
	tasks := make(chan task, total)
	for mi := range cfg.Matchups {
		for i := 0; i < cfg.Games; i++ {
			tasks <- task{matchup: mi, game: i, seed: cfg.Seed + uint64(mi*cfg.Games+i)}
		}
	}
	close(tasks)

	outcomes := make(chan outcome, total)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Parallel; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for t := range tasks {
				outcomes <- runGame(cfg, base, t)
			}
		}()
	}
	wg.Wait()
	close(outcomes)

	var collected []outcome
	var errs []error
	for o := range outcomes {
		if o.err != nil {
			errs = append(errs, o.err)
			continue
		}
		collected = append(collected, o)
	}
	sort.Slice(collected, func(i, j int) bool {
		if collected[i].matchup != collected[j].matchup {
			return collected[i].matchup < collected[j].matchup
		}
		return collected[i].task.game < collected[j].task.game
	})

	var result Result
	for _, o := range collected {
		result.Games = append(result.Games, o.game)
		result.Moves = append(result.Moves, o.moves...)
	}

	log.Info().Msgf("completed %s experiment with %d of %d games", cfg.Name, len(result.Games), total)

	dir, err := store(cfg, base, result)
	result.Dir = dir
	if err != nil {
		errs = append(errs, err)
	}
	return result, errors.Join(errs...)
}

// runGame executes a single game of a matchup and returns its records
func runGame(cfg config.Config, base string, t task) outcome {
	seats := cfg.Matchups[t.matchup]
	matchup := config.MatchupName(seats)
	id := uuid.NewString()
	out := outcome{task: t}

	policies := make([]agent.Policy, len(seats))
	for i, name := range seats {
		p, err := agent.New(name, t.seed*31+uint64(i), cfg.Search.Goroutines, cfg.Search.Options()...)
		if err != nil {
			out.err = err
			return out
		}
		policies[i] = p
	}

	options := []engine.Option{
		engine.WithSeed(t.seed),
		engine.WithGameID(id),
		engine.WithMaxRounds(cfg.MaxRounds),
		engine.WithMaxActionsPerTurn(cfg.MaxActionsPerTurn),
		engine.WithRules(cfg.Rules.StandardRules()),
	}
	if cfg.Output.Traces {
		w, err := trace.Create(filepath.Join(base, "traces"), id)
		if err != nil {
			out.err = fmt.Errorf("game %s: %w", id, err)
			return out
		}
		defer func() {
			if err := w.Close(); err != nil {
				log.Warn().Err(err).Str("game", id).Msg("failed to close trace")
			}
		}()
		options = append(options, engine.WithRecorder(w))
	}

	log.Info().Msgf("starting %s game %d of %d...", matchup, t.game+1, cfg.Games)

	winner, gameMetric, moveMetrics, err := engine.NewLocalEngine(policies, options...).Run()
	if err != nil {
		out.err = err
		return out
	}

	out.game = metrics.GameRecord{Matchup: matchup, Seed: t.seed, GameMetric: gameMetric}
	for _, mm := range moveMetrics {
		out.moves = append(out.moves, metrics.MoveRecord{Game: id, MoveMetric: mm})
	}

	log.Info().Msgf("completed %s game %d with winner: %d", matchup, t.game+1, winner)
	return out
}

// store hands the records to every enabled sink.
func store(cfg config.Config, base string, result Result) (string, error) {
	var sinks []metrics.Sink
	var dir string

	if cfg.Output.CSV {
		writer, err := metrics.NewWriter(base)
		if err != nil {
			return "", fmt.Errorf("failed to create experiment writer: %w", err)
		}
		dir = writer.Dir()
		sinks = append(sinks, writer)
	}
	if cfg.Output.SQLite != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Output.SQLite), 0o755); err != nil {
			return dir, err
		}
		db, err := metrics.OpenSQLite(cfg.Output.SQLite)
		if err != nil {
			return dir, fmt.Errorf("failed to open result database: %w", err)
		}
		defer db.Close()
		sinks = append(sinks, db)
	}

	for _, sink := range sinks {
		if err := sink.WriteGameRecords(result.Games); err != nil {
			return dir, fmt.Errorf("failed to write game records: %w", err)
		}
		log.Info().Msg("stored game records")

		if err := sink.WriteMoveRecords(result.Moves); err != nil {
			return dir, fmt.Errorf("failed to write move records: %w", err)
		}
		log.Info().Msg("stored move records")
	}
	return dir, nil
}
