package game

import (
	"fmt"
	"sort"
)

// RollDice rolls two six-sided dice from the game's random source.
func (g *Game) RollDice() int {
	return g.rng.Intn(6) + g.rng.Intn(6) + 2
}

// CollectResources pays p for every building next to a tile showing roll.
// Settlements yield one card and cities two. The robbed tile and the
// desert yield nothing.
func CollectResources(b *Board, p *Player, roll int) Hand {
	var gained Hand
	for _, pos := range b.PositionsOwnedBy(p.ID) {
		yield := 1
		if pos.Building.Kind == City {
			yield = 2
		}
		for _, t := range pos.Tiles {
			tile := &b.Tiles[t]
			if tile.Number != roll || tile.Robber || !tile.Resource.Producing() {
				continue
			}
			gained[tile.Resource] += yield
		}
	}
	p.Resources.Add(gained)
	return gained
}

// CollectAll pays every player for roll.
func (g *Game) CollectAll(roll int) {
	for _, p := range g.Players {
		CollectResources(g.Board, p, roll)
	}
}

// Discarder picks which cards to give up after a seven. Indices refer to
// Hand.Cards of the player's current hand.
type Discarder interface {
	DiscardSelection(g *Game, p *Player, count int) []int
}

// HandleSevenRoll makes p discard half its hand, rounded down, when it
// holds more cards than the discard threshold.
func (g *Game) HandleSevenRoll(p *Player, d Discarder) error {
	total := p.Resources.Total()
	if total <= g.Rules.DiscardThreshold() {
		return nil
	}
	count := total / 2
	selection := d.DiscardSelection(g, p, count)
	discard, err := selectCards(p.Resources, selection, count)
	if err != nil {
		return fmt.Errorf("player %d: %w", p.ID, err)
	}
	p.Resources.Sub(discard)
	return p.CheckInvariants()
}

func selectCards(h Hand, indices []int, count int) (Hand, error) {
	if len(indices) != count {
		return Hand{}, fmt.Errorf("%w: want %d cards, got %d", ErrInvalidDiscard, count, len(indices))
	}
	cards := h.Cards()
	sorted := append([]int(nil), indices...)
	sort.Ints(sorted)
	var out Hand
	for i, idx := range sorted {
		if idx < 0 || idx >= len(cards) {
			return Hand{}, fmt.Errorf("%w: index %d out of %d cards", ErrInvalidDiscard, idx, len(cards))
		}
		if i > 0 && sorted[i-1] == idx {
			return Hand{}, fmt.Errorf("%w: index %d repeated", ErrInvalidDiscard, idx)
		}
		out[cards[idx]]++
	}
	return out, nil
}
