package searcher

import (
	"sync"
	"sync/atomic"
	"time"

	"catan/experiments/metrics"
	"catan/game"

	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	seed       uint64
	evaluate   game.Evaluate
	metrics    metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

// WithSeed mixes seed into every rollout's random source.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	if goroutines < 1 {
		goroutines = 1
	}
	m := &MCTS{ // Default values
		goroutines: goroutines,
		cutoff:     MaxCutoff,
		evaluate:   game.EvaluateProduction,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Simulate searches the candidate actions of player in g and returns the
// visit count of each candidate. g is only read.
func (m *MCTS) Simulate(g *game.Game, player int, candidates []game.Action) ([]int, metrics.SearchMetric) {
	if len(candidates) == 0 {
		panic("Must search at least one candidate")
	}
	r := newRoot(candidates)
	base := uint64(g.Hash()) ^ m.seed
	var counter atomic.Uint64

	episode := func() {
		n := counter.Add(1)
		m.simulate(g, player, r, base+n*0x9e3779b97f4a7c15)
		m.metrics.AddEpisode()
	}

	// Run simulations to collect statistics
	m.metrics.Start(m.goroutines, m.cutoff, len(candidates))
	if m.episodes > 0 {
		m.iterate(episode)
	} else {
		m.countdown(episode)
	}
	metric := m.metrics.Complete()

	return r.Visits(), metric
}

// Best returns the candidate with the most visits.
func (m *MCTS) Best(g *game.Game, player int, candidates []game.Action) (game.Action, metrics.SearchMetric) {
	visits, metric := m.Simulate(g, player, candidates)
	return candidates[findMax(visits)], metric
}

func (m *MCTS) iterate(episode func()) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for range task {
				episode()
			}
		}()
	}

	wg.Wait()
}

func (m *MCTS) countdown(episode func()) {
	done := make(chan any)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for {
				select {
				case <-done:
					return
				default:
					episode()
				}
			}
		}()
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

func (m *MCTS) simulate(g *game.Game, player int, r *root, seed uint64) {
	ith := r.selects()
	action := r.actions[ith]

	clone := g.CopyWithSeed(seed)
	rng := rand.New(rand.NewSource(seed))

	_, passed := action.(game.Pass)
	if err := clone.Resolve(player, action); err != nil {
		r.backup(ith, Loss)
		return
	}
	r.backup(ith, rollout(clone, player, passed, m.cutoff, rng, m.evaluate, m.metrics))
}
