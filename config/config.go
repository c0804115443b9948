package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"catan/agent"
	"catan/engine"
	"catan/game"
	"catan/meta"
	"catan/searcher"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

// Config describes one experiment: which policies meet, how often and
// where the results go.
type Config struct {
	Name              string     `yaml:"name"`
	Games             int        `yaml:"games"` // per matchup
	Seed              uint64     `yaml:"seed"`
	Parallel          int        `yaml:"parallel"`
	MaxRounds         int        `yaml:"max_rounds"`
	MaxActionsPerTurn int        `yaml:"max_actions_per_turn"`
	Matchups          [][]string `yaml:"matchups"`
	Rules             RulesSpec  `yaml:"rules"`
	Search            SearchSpec `yaml:"search"`
	Output            OutputSpec `yaml:"output"`
}

type RulesSpec struct {
	WinningPoints    int `yaml:"winning_points"`
	LongestRoadMin   int `yaml:"longest_road_min"`
	DiscardThreshold int `yaml:"discard_threshold"`
	Roads            int `yaml:"roads"`
	Settlements      int `yaml:"settlements"`
	Cities           int `yaml:"cities"`
}

type SearchSpec struct {
	Goroutines int           `yaml:"goroutines"`
	Episodes   int           `yaml:"episodes"`
	Duration   time.Duration `yaml:"duration"`
	Cutoff     int           `yaml:"cutoff"`
	Evaluation string        `yaml:"evaluation"` // points or production
}

type OutputSpec struct {
	Dir    string `yaml:"dir"`
	CSV    bool   `yaml:"csv"`
	SQLite string `yaml:"sqlite,omitempty"` // database file, empty disables
	Traces bool   `yaml:"traces"`
}

// Load reads a YAML config over the defaults. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Defaults() Config {
	rules := game.NewStandardRules()
	return Config{
		Name:      "baseline",
		Games:     meta.GAMES,
		Seed:      1,
		Parallel:  meta.PARALLEL,
		MaxRounds: meta.MAX_ROUNDS,
		Matchups: [][]string{
			{agent.Random, agent.Heuristic},
			{agent.Heuristic, agent.Search},
		},
		Rules: RulesSpec{
			WinningPoints:    rules.Points,
			LongestRoadMin:   rules.RoadMin,
			DiscardThreshold: rules.DiscardOver,
			Roads:            rules.Pieces.Roads,
			Settlements:      rules.Pieces.Settlements,
			Cities:           rules.Pieces.Cities,
		},
		Search: SearchSpec{
			Goroutines: meta.GO_ROUTINES,
			Episodes:   meta.EPISODES,
			Cutoff:     meta.WITH_CUTOFF,
			Evaluation: "production",
		},
		Output: OutputSpec{
			Dir: meta.OUTPUT_DIR,
			CSV: true,
		},
	}
}

// Normalize fills zero values that have an obvious default.
func (c *Config) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		c.Name = "experiment"
	}
	if c.Parallel <= 0 {
		c.Parallel = 1
	}
	if c.MaxActionsPerTurn <= 0 {
		c.MaxActionsPerTurn = engine.MaxActionsPerTurn
	}
	if c.Search.Goroutines <= 0 {
		c.Search.Goroutines = 1
	}
	c.Search.Evaluation = strings.ToLower(strings.TrimSpace(c.Search.Evaluation))
	if c.Search.Evaluation == "" {
		c.Search.Evaluation = "production"
	}
	for i, m := range c.Matchups {
		for j, name := range m {
			c.Matchups[i][j] = strings.ToLower(strings.TrimSpace(name))
		}
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		c.Output.Dir = meta.OUTPUT_DIR
	}
}

func (c Config) Validate() error {
	if c.Games <= 0 {
		return fmt.Errorf("%w: games must be positive", ErrInvalid)
	}
	if c.MaxRounds <= 0 {
		return fmt.Errorf("%w: max_rounds must be positive", ErrInvalid)
	}
	if len(c.Matchups) == 0 {
		return fmt.Errorf("%w: no matchups", ErrInvalid)
	}
	usesSearch := false
	for i, m := range c.Matchups {
		if len(m) < 2 || len(m) > 4 {
			return fmt.Errorf("%w: matchup %d seats %d players, want 2 to 4", ErrInvalid, i, len(m))
		}
		for _, name := range m {
			switch name {
			case agent.Random, agent.Heuristic:
			case agent.Search:
				usesSearch = true
			default:
				return fmt.Errorf("%w: matchup %d: %w %q", ErrInvalid, i, agent.ErrUnknownPolicy, name)
			}
		}
	}
	if usesSearch && c.Search.Episodes <= 0 && c.Search.Duration <= 0 {
		return fmt.Errorf("%w: search needs episodes or duration", ErrInvalid)
	}
	if _, ok := evaluations[c.Search.Evaluation]; !ok {
		return fmt.Errorf("%w: unknown evaluation %q", ErrInvalid, c.Search.Evaluation)
	}
	r := c.Rules
	if r.WinningPoints <= 0 || r.LongestRoadMin <= 0 || r.DiscardThreshold <= 0 {
		return fmt.Errorf("%w: rules need positive thresholds", ErrInvalid)
	}
	if r.Roads <= 0 || r.Settlements < 2 || r.Cities < 0 {
		return fmt.Errorf("%w: starting stock must allow setup", ErrInvalid)
	}
	return nil
}

// MatchupName names a matchup in the result sinks.
func MatchupName(seats []string) string {
	return strings.Join(seats, "-vs-")
}

func (r RulesSpec) StandardRules() *game.StandardRules {
	return &game.StandardRules{
		Points:      r.WinningPoints,
		RoadMin:     r.LongestRoadMin,
		DiscardOver: r.DiscardThreshold,
		Pieces: game.Stock{
			Roads:       r.Roads,
			Settlements: r.Settlements,
			Cities:      r.Cities,
		},
	}
}

var evaluations = map[string]game.Evaluate{
	"points":     game.EvaluatePoints,
	"production": game.EvaluateProduction,
}

// Options turns the search section into searcher options.
func (s SearchSpec) Options() []searcher.Option {
	var options []searcher.Option
	if s.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(s.Episodes))
	}
	if s.Duration > 0 {
		options = append(options, searcher.WithDuration(s.Duration))
	}
	if s.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(s.Cutoff))
	}
	if evaluate, ok := evaluations[s.Evaluation]; ok {
		options = append(options, searcher.WithEvaluationFn(evaluate))
	}
	return options
}
