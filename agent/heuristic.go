package agent

import (
	"catan/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Settlement scoring weights
const (
	desertPenalty   = 3.0
	newResourceBias = 1.4
	surplusDamping  = 0.7
	surplusScore    = 10
	anyPortBonus    = 5.0
	minSpotScore    = 0.1
)

const actionTemperature = 0.5

// HeuristicPolicy scores settlement spots by dice odds, resource diversity
// and ports, and samples its actions from fixed preferences.
type HeuristicPolicy struct {
	rng        *rand.Rand
	proposedIn int // round of the last trade offer
}

func NewHeuristicPolicy(seed uint64) *HeuristicPolicy {
	return &HeuristicPolicy{rng: rand.New(rand.NewSource(seed)), proposedIn: -1}
}

func (h *HeuristicPolicy) Name() string {
	return Heuristic
}

// tileScore is highest for numbers rolled most often.
func tileScore(t *game.Tile) float64 {
	if t.Resource == game.Desert {
		return 0
	}
	diff := t.Number - 7
	if diff < 0 {
		diff = -diff
	}
	return float64(10 - diff)
}

// controlled sums the tile scores per resource over player's buildings.
func controlled(b *game.Board, player int) [game.NumResources]float64 {
	var out [game.NumResources]float64
	for _, pos := range b.PositionsOwnedBy(player) {
		for _, t := range pos.Tiles {
			tile := &b.Tiles[t]
			if tile.Resource.Producing() {
				out[tile.Resource] += tileScore(tile)
			}
		}
	}
	return out
}

// spotScore rates an empty position for player.
func spotScore(b *game.Board, pos *game.Position, owned [game.NumResources]float64) float64 {
	after := owned
	for _, t := range pos.Tiles {
		tile := &b.Tiles[t]
		if tile.Resource.Producing() {
			after[tile.Resource] += tileScore(tile)
		}
	}

	score := 0.0
	for _, t := range pos.Tiles {
		tile := &b.Tiles[t]
		if tile.Resource == game.Desert {
			score -= desertPenalty
			continue
		}
		multiplier := 1.0
		if owned[tile.Resource] == 0 {
			multiplier = newResourceBias
		}
		if after[tile.Resource] > surplusScore {
			multiplier = surplusDamping
		}
		score += multiplier * tileScore(tile)
	}

	switch {
	case pos.Port == game.AnyPort:
		score += anyPortBonus
	case pos.Port != game.NoPort:
		score += (after[pos.Port]+1)*0.6 + 4
	}
	return max(score, minSpotScore)
}

// spotScores rates every position that passes the spacing rule.
func spotScores(b *game.Board, player int) ([]game.Coord, []float64) {
	owned := controlled(b, player)
	spots := b.SettlementSpots()
	scores := make([]float64, len(spots))
	for i, c := range spots {
		pos, _ := b.Position(c)
		scores[i] = spotScore(b, pos, owned)
	}
	return spots, scores
}

func (h *HeuristicPolicy) ChooseSettlement(g *game.Game, player int, second bool) (game.Coord, game.Direction) {
	spots, scores := spotScores(g.Board, player)
	for len(spots) > 0 {
		i := sample(h.rng, adjustTemperature(scores, 1))
		spot := spots[i]
		if dir, ok := h.roadToward(g.Board, spot, player); ok {
			log.Debug().Int("player", player).Stringer("spot", spot).Float64("score", scores[i]).Msg("heuristic settles")
			return spot, dir
		}
		spots = append(spots[:i], spots[i+1:]...)
		scores = append(scores[:i], scores[i+1:]...)
	}
	log.Warn().Int("player", player).Msg("no settlement spot with an open road")
	return game.Coord{}, game.Left
}

// roadToward picks the open direction from c leading to the best spot two
// steps away.
func (h *HeuristicPolicy) roadToward(b *game.Board, c game.Coord, player int) (game.Direction, bool) {
	dirs := openDirections(b, c)
	if len(dirs) == 0 {
		return 0, false
	}
	owned := controlled(b, player)
	from, _ := b.Position(c)
	values := make([]float64, len(dirs))
	for i, d := range dirs {
		next := b.Neighbor(from, d)
		for _, n := range next.Neighbors {
			if n == game.None {
				continue
			}
			target := &b.Positions[n]
			if target == from || !b.CanSettle(target.Coord) || adjacent(from, n) {
				continue
			}
			values[i] = max(values[i], spotScore(b, target, owned))
		}
	}
	return dirs[findMax(values)], true
}

func adjacent(p *game.Position, index int) bool {
	for _, n := range p.Neighbors {
		if n == index {
			return true
		}
	}
	return false
}

// ChooseRobberTarget blocks the richest tile of the leading opponent,
// avoiding its own tiles.
func (h *HeuristicPolicy) ChooseRobberTarget(g *game.Game, player int, options []game.RobberTarget) game.RobberTarget {
	values := make([]float64, len(options))
	for i, o := range options {
		tile, err := g.Board.Tile(o.Tile)
		if err != nil {
			continue
		}
		values[i] = float64(tile.Pips())
		if o.Victim != game.NoPlayer {
			victim := g.Players[o.Victim]
			values[i] += 2 + float64(game.VictoryPoints(victim, g.Board, g.Records))
			if victim.Resources.Total() > 0 {
				values[i] += 2
			}
		}
		if tile.Occupied(player) {
			values[i] -= 10
		}
	}
	return options[findMax(values)]
}

// DiscardSelection gives up the most plentiful resources first.
func (h *HeuristicPolicy) DiscardSelection(g *game.Game, p *game.Player, count int) []int {
	hand := p.Resources
	var discard game.Hand
	for i := 0; i < count; i++ {
		most := game.Wheat
		for _, r := range game.Resources() {
			if hand[r] > hand[most] {
				most = r
			}
		}
		hand[most]--
		discard[most]++
	}

	// Cards lists resources in order, so take the first copies of each
	var out []int
	for i, c := range p.Resources.Cards() {
		if discard[c] > 0 {
			discard[c]--
			out = append(out, i)
		}
	}
	return out
}

// AcceptsTrade takes offers that return at least as many cards as they cost.
func (h *HeuristicPolicy) AcceptsTrade(g *game.Game, player int, offer game.ProposeTrade) bool {
	return offer.Give.Total() >= offer.Want.Total()
}

// PickTradeCounterpart prefers the accepter with the fewest points.
func (h *HeuristicPolicy) PickTradeCounterpart(g *game.Game, player int, offer game.ProposeTrade, accepters []int) int {
	values := make([]float64, len(accepters))
	for i, id := range accepters {
		values[i] = -float64(game.VictoryPoints(g.Players[id], g.Board, g.Records))
	}
	return accepters[findMax(values)]
}

var actionPreference = map[game.Kind]float64{
	game.KindBuildCity:        10,
	game.KindSettle:           9,
	game.KindPlayKnight:       5,
	game.KindDrawDevCard:      4,
	game.KindPlayYearOfPlenty: 4,
	game.KindPlayMonopoly:     3,
	game.KindPlayRoadBuilding: 3,
	game.KindBuildRoad:        2,
	game.KindTwoToOne:         1,
	game.KindThreeToOne:       1,
	game.KindFourToOne:        0.5,
}

const passPreference = 1.0

func (h *HeuristicPolicy) ChooseAction(g *game.Game, player int, legal []game.Action) game.Action {
	if len(legal) == 0 {
		if offer, ok := h.proposeTrade(g, player); ok {
			return offer
		}
		return game.Pass{}
	}

	owned := controlled(g.Board, player)
	weights := make([]float64, len(legal)+1)
	for i, a := range legal {
		weights[i] = actionPreference[a.Kind()]
		if settle, ok := a.(game.Settle); ok {
			pos, _ := g.Board.Position(settle.At)
			weights[i] += spotScore(g.Board, pos, owned) / 10
		}
	}
	weights[len(legal)] = passPreference

	i := sample(h.rng, adjustTemperature(weights, actionTemperature))
	if i == len(legal) {
		return game.Pass{}
	}
	return legal[i]
}

// proposeTrade offers one surplus card for the card missing from a city or
// settlement, once per round.
func (h *HeuristicPolicy) proposeTrade(g *game.Game, player int) (game.ProposeTrade, bool) {
	if h.proposedIn == g.Round {
		return game.ProposeTrade{}, false
	}
	hand := g.Players[player].Resources
	for _, cost := range []game.Hand{game.CityCost, game.SettlementCost} {
		missing, short := shortfall(hand, cost)
		if short != 1 {
			continue
		}
		for _, r := range game.Resources() {
			if hand[r]-cost[r] > 0 {
				h.proposedIn = g.Round
				var offer game.ProposeTrade
				offer.Give[r] = 1
				offer.Want[missing] = 1
				return offer, true
			}
		}
	}
	return game.ProposeTrade{}, false
}

// shortfall returns the last missing resource and how many cards are
// missing in total.
func shortfall(hand, cost game.Hand) (game.Resource, int) {
	missing, short := game.Wheat, 0
	for _, r := range game.Resources() {
		if hand[r] < cost[r] {
			missing = r
			short += cost[r] - hand[r]
		}
	}
	return missing, short
}
