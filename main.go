package main

import (
	"flag"
	"os"
	"time"

	"catan/config"
	"catan/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Experiment YAML file, defaults when empty")
	games := flag.Int("games", 0, "Games per matchup, overrides the config")
	seed := flag.Uint64("seed", 0, "Seed of the first game, overrides the config")
	parallel := flag.Int("parallel", 0, "Games played at once, overrides the config")
	duration := flag.Duration("duration", 0, "Search time per decision, replaces the episode budget")
	verbose := flag.Bool("v", false, "Log every action")
	quiet := flag.Bool("q", false, "Log warnings and errors only")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	switch {
	case *verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case *quiet:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *games > 0 {
		cfg.Games = *games
	}
	if *seed > 0 {
		cfg.Seed = *seed
	}
	if *parallel > 0 {
		cfg.Parallel = *parallel
	}
	if *duration > 0 {
		cfg.Search.Episodes = 0
		cfg.Search.Duration = *duration
	}

	result, err := experiments.Run(cfg)
	if err != nil {
		log.Error().Err(err).Msg("experiment finished with errors")
	}
	experiments.LogSummaries(experiments.Summarize(result))
	if result.Dir != "" {
		log.Info().Msgf("results written to %s", result.Dir)
	}
	if err != nil {
		os.Exit(1)
	}
}
