package agent

import (
	"catan/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	passChance    = 0.3 // with legal actions available
	idleChance    = 0.7 // without legal actions
	proposeChance = 0.5 // upper bound of the trade band after passChance
	acceptChance  = 0.5
	maxTradeCards = 3
)

// RandomPolicy plays uniformly among its options, passes often and makes
// random trade offers.
type RandomPolicy struct {
	rng *rand.Rand
}

func NewRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandomPolicy) Name() string {
	return Random
}

func (r *RandomPolicy) ChooseSettlement(g *game.Game, player int, second bool) (game.Coord, game.Direction) {
	spots := g.Board.SettlementSpots()
	r.rng.Shuffle(len(spots), func(i, j int) { spots[i], spots[j] = spots[j], spots[i] })
	for _, spot := range spots {
		dirs := openDirections(g.Board, spot)
		if len(dirs) > 0 {
			return spot, dirs[r.rng.Intn(len(dirs))]
		}
	}
	log.Warn().Int("player", player).Msg("no settlement spot with an open road")
	return game.Coord{}, game.Left
}

func (r *RandomPolicy) ChooseRobberTarget(g *game.Game, player int, options []game.RobberTarget) game.RobberTarget {
	return options[r.rng.Intn(len(options))]
}

func (r *RandomPolicy) DiscardSelection(g *game.Game, p *game.Player, count int) []int {
	return r.rng.Perm(p.Resources.Total())[:count]
}

func (r *RandomPolicy) AcceptsTrade(g *game.Game, player int, offer game.ProposeTrade) bool {
	return r.rng.Float64() < acceptChance
}

func (r *RandomPolicy) PickTradeCounterpart(g *game.Game, player int, offer game.ProposeTrade, accepters []int) int {
	return accepters[r.rng.Intn(len(accepters))]
}

func (r *RandomPolicy) ChooseAction(g *game.Game, player int, legal []game.Action) game.Action {
	hand := g.Players[player].Resources
	roll := r.rng.Float64()
	switch {
	case len(legal) > 0 && roll < passChance, len(legal) == 0 && roll < idleChance:
		return game.Pass{}
	case hand.Total() > 0 && (len(legal) == 0 || roll < proposeChance):
		return r.proposeTrade(hand)
	case len(legal) > 0:
		return legal[r.rng.Intn(len(legal))]
	}
	return game.Pass{}
}

// proposeTrade offers up to three held cards for one to three random ones.
func (r *RandomPolicy) proposeTrade(hand game.Hand) game.ProposeTrade {
	cards := hand.Cards()
	give := min(1+r.rng.Intn(maxTradeCards), len(cards))

	var offer game.ProposeTrade
	for _, i := range r.rng.Perm(len(cards))[:give] {
		offer.Give[cards[i]]++
	}
	want := 1 + r.rng.Intn(maxTradeCards)
	for i := 0; i < want; i++ {
		offer.Want[r.rng.Intn(game.NumResources)]++
	}
	return offer
}
