package agent

import (
	"catan/experiments/metrics"
	"catan/game"
	"catan/searcher"

	"github.com/rs/zerolog/log"
)

// SearchPolicy picks turn actions by rollout search and falls back to the
// heuristic for every other decision.
type SearchPolicy struct {
	*HeuristicPolicy
	mcts *searcher.MCTS
	last metrics.SearchMetric
}

func NewSearchPolicy(seed uint64, goroutines int, options ...searcher.Option) *SearchPolicy {
	options = append([]searcher.Option{searcher.WithSeed(seed), searcher.WithMetrics()}, options...)
	return &SearchPolicy{
		HeuristicPolicy: NewHeuristicPolicy(seed),
		mcts:            searcher.NewMCTS(goroutines, options...),
	}
}

func (s *SearchPolicy) Name() string {
	return Search
}

func (s *SearchPolicy) ChooseAction(g *game.Game, player int, legal []game.Action) game.Action {
	if len(legal) == 0 {
		s.last = metrics.SearchMetric{}
		return s.HeuristicPolicy.ChooseAction(g, player, legal)
	}
	candidates := make([]game.Action, 0, len(legal)+1)
	candidates = append(candidates, legal...)
	candidates = append(candidates, game.Pass{})

	best, metric := s.mcts.Best(g, player, candidates)
	s.last = metric
	log.Debug().
		Int("player", player).
		Int("candidates", len(candidates)).
		Int("episodes", metric.Episodes).
		Str("action", game.Describe(best)).
		Msg("search picked action")
	return best
}

func (s *SearchPolicy) LastSearch() metrics.SearchMetric {
	return s.last
}
