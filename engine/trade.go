package engine

import (
	"fmt"

	"catan/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// proposeTrade offers a trade to every other player. Those who hold the
// wanted cards and accept are handed to the proposer, which picks one.
func (e *LocalEngine) proposeTrade(id int, offer game.ProposeTrade) error {
	g := e.Game
	proposer := g.Players[id]
	if !offer.Valid() || !proposer.Resources.Covers(offer.Give) {
		return fmt.Errorf("%w: player %d cannot offer %s", ErrIllegalMove, id, game.Describe(offer))
	}

	var accepters []int
	for _, other := range g.Players {
		if other.ID == id || !game.CanAfford(other, offer) {
			continue
		}
		if e.policies[other.ID].AcceptsTrade(g, other.ID, offer) {
			accepters = append(accepters, other.ID)
		}
	}
	if len(accepters) == 0 {
		log.Debug().Int("player", id).Str("offer", game.Describe(offer)).Msg("no player accepted the trade")
		return nil
	}

	with := e.policies[id].PickTradeCounterpart(g, id, offer, accepters)
	if !slices.Contains(accepters, with) {
		return fmt.Errorf("%w: player %d picked %d, who did not accept", ErrIllegalMove, id, with)
	}
	log.Debug().Int("player", id).Int("with", with).Str("offer", game.Describe(offer)).Msg("trade accepted")
	return e.resolve(id, offer.Accept(with), e.searchMetric(id))
}
