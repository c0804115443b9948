package searcher

import (
	"catan/experiments/metrics"
	"catan/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const MaxCutoff = 200 // Rollout steps before falling back to evaluation

const passProbability = 0.3 // Chance a rollout player ends its turn early

// rollout plays random legal actions for every player in turn order, from
// the acting player's perspective. A winner before the cutoff gives a win or
// loss reward; otherwise the state is evaluated.
func rollout(g *game.Game, player int, passed bool, cutoff int, rng *rand.Rand, evaluate game.Evaluate, collector metrics.Collector) float64 {
	current := player
	if passed {
		current = nextTurn(g, current, rng)
	}

	for depth := 0; depth < cutoff; depth++ {
		if winner := g.Winner(); winner != game.NoPlayer {
			collector.AddFullPlayout()
			if winner == player {
				return Win
			}
			return Loss
		}

		actions := g.LegalActions(current)
		if len(actions) == 0 || rng.Float64() < passProbability {
			current = nextTurn(g, current, rng)
			continue
		}
		action := actions[rng.Intn(len(actions))]
		if err := g.Resolve(current, action); err != nil {
			log.Debug().Err(err).Int("player", current).Str("action", game.Describe(action)).Msg("rollout stopped")
			break
		}
	}

	// At cutoff, score the state from the acting player's perspective
	return evaluate(g, player)
}

// nextTurn closes current's turn and opens the next player's with a dice
// roll, including discards and a random robber move on a seven.
func nextTurn(g *game.Game, current int, rng *rand.Rand) int {
	g.EndTurn()
	next := g.Next(current)
	g.Current = next

	roll := g.RollDice()
	if roll != 7 {
		g.CollectAll(roll)
		return next
	}

	discarder := randomDiscarder{rng: rng}
	for _, p := range g.Players {
		if err := g.HandleSevenRoll(p, discarder); err != nil {
			log.Debug().Err(err).Int("player", p.ID).Msg("rollout discard failed")
		}
	}
	moves := game.RobberActions(g.Players[next], g.Board)
	if len(moves) > 0 {
		if err := g.Resolve(next, moves[rng.Intn(len(moves))]); err != nil {
			log.Debug().Err(err).Int("player", next).Msg("rollout robber move failed")
		}
	}
	return next
}

type randomDiscarder struct {
	rng *rand.Rand
}

func (d randomDiscarder) DiscardSelection(g *game.Game, p *game.Player, count int) []int {
	return d.rng.Perm(p.Resources.Total())[:count]
}
