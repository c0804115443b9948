package agent

import (
	"errors"
	"fmt"

	"catan/experiments/metrics"
	"catan/game"
	"catan/searcher"
)

var ErrUnknownPolicy = errors.New("unknown policy")

// Policy makes every decision the engine asks of a seat. Implementations
// may keep their own random source but never mutate the game.
type Policy interface {
	Name() string
	// ChooseSettlement picks a setup settlement and the direction of the
	// road built from it.
	ChooseSettlement(g *game.Game, player int, second bool) (game.Coord, game.Direction)
	ChooseRobberTarget(g *game.Game, player int, options []game.RobberTarget) game.RobberTarget
	game.Discarder
	AcceptsTrade(g *game.Game, player int, offer game.ProposeTrade) bool
	PickTradeCounterpart(g *game.Game, player int, offer game.ProposeTrade, accepters []int) int
	// ChooseAction returns one of legal, Pass or a ProposeTrade.
	ChooseAction(g *game.Game, player int, legal []game.Action) game.Action
}

// Searcher is implemented by policies that run a search per decision.
type Searcher interface {
	LastSearch() metrics.SearchMetric
}

const (
	Random    = "random"
	Heuristic = "heuristic"
	Search    = "search"
)

// New builds the policy registered under name. Search options only apply
// to the search policy.
func New(name string, seed uint64, goroutines int, options ...searcher.Option) (Policy, error) {
	switch name {
	case Random:
		return NewRandomPolicy(seed), nil
	case Heuristic:
		return NewHeuristicPolicy(seed), nil
	case Search:
		return NewSearchPolicy(seed, goroutines, options...), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// openDirections lists the directions a road can be built in from c.
func openDirections(b *game.Board, c game.Coord) []game.Direction {
	pos, err := b.Position(c)
	if err != nil {
		return nil
	}
	var out []game.Direction
	for d := game.Direction(0); d < game.NumDirections; d++ {
		if pos.OpenSlot(d) {
			out = append(out, d)
		}
	}
	return out
}
