package game

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Resolve applies one action for player id. Parameters and costs are
// checked before anything is mutated; every ledger is re-checked after.
// ProposeTrade is handled by the engine and is rejected here.
func (g *Game) Resolve(id int, a Action) error {
	p, err := g.Player(id)
	if err != nil {
		return err
	}
	if err := g.apply(p, a); err != nil {
		return err
	}
	return g.CheckInvariants()
}

func (g *Game) apply(p *Player, a Action) error {
	switch a := a.(type) {
	case Settle:
		return g.settle(p, a)
	case SettleInit:
		return g.settleInit(p, a)
	case BuildRoad:
		return g.buildRoad(p, a.Slot, true)
	case BuildRoadInit:
		return g.buildRoad(p, a.Slot, false)
	case BuildCity:
		return g.buildCity(p, a)
	case DrawDevCard:
		return g.drawDevCard(p)
	case FourToOne:
		return g.maritimeTrade(p, a.Give, a.Get, 4, NoPort)
	case ThreeToOne:
		return g.maritimeTrade(p, a.Give, a.Get, 3, AnyPort)
	case TwoToOne:
		return g.maritimeTrade(p, a.Give, a.Get, 2, PortFor(a.Give))
	case PlayKnight:
		return g.playKnight(p, a)
	case PlayMonopoly:
		return g.playMonopoly(p, a)
	case PlayRoadBuilding:
		return g.playRoadBuilding(p, a)
	case PlayYearOfPlenty:
		return g.playYearOfPlenty(p, a)
	case MoveRobber:
		return g.moveRobber(p, a.Target)
	case Trade:
		return g.trade(p, a)
	case Pass:
		return nil
	case ProposeTrade:
		return fmt.Errorf("%w: trade proposals go through the trade protocol", ErrInvalidAction)
	case nil:
		return fmt.Errorf("%w: nil action", ErrInvalidAction)
	}
	return fmt.Errorf("%w: unknown action %T", ErrInvalidAction, a)
}

func charge(p *Player, cost Hand, what string) error {
	if !p.Resources.Covers(cost) {
		return fmt.Errorf("%w: player %d cannot afford %s with %v", ErrInvariant, p.ID, what, p.Resources)
	}
	p.Resources.Sub(cost)
	return nil
}

func (g *Game) settle(p *Player, a Settle) error {
	pos, err := g.Board.Position(a.At)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAction, err)
	}
	if !pos.HasRoad(p.ID) || !g.Board.CanSettle(a.At) {
		return fmt.Errorf("%w: player %d cannot settle at %v", ErrInvalidAction, p.ID, a.At)
	}
	if p.Settlements <= 0 {
		return fmt.Errorf("%w: player %d has no settlements left", ErrInvariant, p.ID)
	}
	if err := charge(p, SettlementCost, "settlement"); err != nil {
		return err
	}
	return g.place(p, a.At)
}

func (g *Game) settleInit(p *Player, a SettleInit) error {
	if !g.Board.CanSettle(a.At) {
		return fmt.Errorf("%w: player %d cannot settle at %v", ErrInvalidAction, p.ID, a.At)
	}
	if p.Settlements <= 0 {
		return fmt.Errorf("%w: player %d has no settlements left", ErrInvariant, p.ID)
	}
	if err := g.place(p, a.At); err != nil {
		return err
	}
	if a.Second {
		pos, _ := g.Board.Position(a.At)
		for _, t := range pos.Tiles {
			if res := g.Board.Tiles[t].Resource; res.Producing() {
				p.Resources[res]++
			}
		}
	}
	return nil
}

func (g *Game) place(p *Player, at Coord) error {
	port, err := g.Board.PlaceSettlement(at, p.ID)
	if err != nil {
		return err
	}
	p.Settlements--
	p.Ports.Add(port)
	return nil
}

// buildRoad places a road touching one of p's roads or, during setup, one
// of p's buildings. With no road stock left it does nothing.
func (g *Game) buildRoad(p *Player, slot RoadSlot, paid bool) error {
	from, err := g.Board.Position(slot.At)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAction, err)
	}
	if slot.Dir < 0 || slot.Dir >= NumDirections || !from.OpenSlot(slot.Dir) {
		return fmt.Errorf("%w: no open road slot %v", ErrInvalidAction, slot)
	}
	to := g.Board.Neighbor(from, slot.Dir)
	connected := func(pos *Position) bool {
		if paid {
			return pos.HasRoad(p.ID)
		}
		return pos.Building.Owner == p.ID && !pos.Building.Empty()
	}
	if !connected(from) && !connected(to) {
		return fmt.Errorf("%w: road %v is not connected for player %d", ErrInvalidAction, slot, p.ID)
	}
	if p.Roads <= 0 {
		log.Debug().Int("player", p.ID).Msg("no roads left, road not built")
		return nil
	}
	if paid {
		if err := charge(p, RoadCost, "road"); err != nil {
			return err
		}
	}
	return g.placeRoad(p, slot)
}

func (g *Game) placeRoad(p *Player, slot RoadSlot) error {
	if err := g.Board.BuildRoad(slot.At, slot.Dir, p.ID); err != nil {
		return err
	}
	p.Roads--
	g.updateLongestRoad(p)
	return nil
}

func (g *Game) updateLongestRoad(p *Player) {
	length := LongestRoad(g.Board, p.ID)
	if g.Records.UpdateLongestRoad(p, length, g.Rules.LongestRoadMin()) {
		log.Debug().Int("player", p.ID).Int("length", length).Msg("longest road")
	}
}

func (g *Game) buildCity(p *Player, a BuildCity) error {
	pos, err := g.Board.Position(a.At)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAction, err)
	}
	if pos.Building.Kind != Settlement || pos.Building.Owner != p.ID {
		return fmt.Errorf("%w: player %d has no settlement at %v", ErrInvalidAction, p.ID, a.At)
	}
	if p.Cities <= 0 {
		return fmt.Errorf("%w: player %d has no cities left", ErrInvariant, p.ID)
	}
	if err := charge(p, CityCost, "city"); err != nil {
		return err
	}
	if err := g.Board.UpgradeToCity(a.At, p.ID); err != nil {
		return err
	}
	p.Cities--
	p.Settlements++
	return nil
}

func (g *Game) drawDevCard(p *Player) error {
	if g.Pile.Len() == 0 {
		log.Debug().Int("player", p.ID).Msg("development card pile is empty")
		return nil
	}
	if err := charge(p, DevCardCost, "development card"); err != nil {
		return err
	}
	card, _ := g.Pile.Draw()
	p.NewDevCards[card]++
	g.Records.DevCardsLeft = g.Pile.Len()
	return nil
}

func (g *Game) maritimeTrade(p *Player, give, get Resource, ratio int, port Port) error {
	if !give.Producing() || !get.Producing() || give == get {
		return fmt.Errorf("%w: trade %v for %v", ErrInvalidAction, give, get)
	}
	if port != NoPort && !p.Ports.Has(port) {
		return fmt.Errorf("%w: player %d lacks %v port", ErrInvalidAction, p.ID, port)
	}
	var cost Hand
	cost[give] = ratio
	if err := charge(p, cost, fmt.Sprintf("%d:1 trade", ratio)); err != nil {
		return err
	}
	p.Resources[get]++
	return nil
}

func (g *Game) spend(p *Player, card DevCard) error {
	if p.DevCards[card] <= 0 {
		return fmt.Errorf("%w: player %d holds no playable %v", ErrInvalidAction, p.ID, card)
	}
	p.DevCards[card]--
	return nil
}

func (g *Game) playKnight(p *Player, a PlayKnight) error {
	if err := g.checkRobberTarget(p, a.Target); err != nil {
		return err
	}
	if err := g.spend(p, Knight); err != nil {
		return err
	}
	p.KnightsPlayed++
	if g.Records.UpdateLargestArmy(p) {
		log.Debug().Int("player", p.ID).Int("knights", p.KnightsPlayed).Msg("largest army")
	}
	return g.robberTo(p, a.Target)
}

func (g *Game) moveRobber(p *Player, target RobberTarget) error {
	if err := g.checkRobberTarget(p, target); err != nil {
		return err
	}
	return g.robberTo(p, target)
}

func (g *Game) checkRobberTarget(p *Player, target RobberTarget) error {
	t, err := g.Board.Tile(target.Tile)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAction, err)
	}
	if t.Robber || t.Resource == Desert {
		return fmt.Errorf("%w: robber cannot move to %v", ErrInvalidAction, target.Tile)
	}
	if target.Victim == NoPlayer {
		if len(t.Occupants) > 0 {
			return fmt.Errorf("%w: occupied tile %v needs a victim", ErrInvalidAction, target.Tile)
		}
		return nil
	}
	if target.Victim == p.ID || !t.Occupied(target.Victim) {
		return fmt.Errorf("%w: player %d cannot be robbed on %v", ErrInvalidAction, target.Victim, target.Tile)
	}
	if _, err := g.Player(target.Victim); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAction, err)
	}
	return nil
}

func (g *Game) robberTo(p *Player, target RobberTarget) error {
	if err := g.Board.MoveRobber(target.Tile); err != nil {
		return err
	}
	if target.Victim != NoPlayer {
		g.steal(p, g.Players[target.Victim])
	}
	return nil
}

// steal moves one uniformly random card from victim to thief.
func (g *Game) steal(thief, victim *Player) {
	cards := victim.Resources.Cards()
	if len(cards) == 0 {
		log.Debug().Int("thief", thief.ID).Int("victim", victim.ID).Msg("nothing to steal")
		return
	}
	card := cards[g.rng.Intn(len(cards))]
	victim.Resources[card]--
	thief.Resources[card]++
}

func (g *Game) playMonopoly(p *Player, a PlayMonopoly) error {
	if !a.Resource.Producing() {
		return fmt.Errorf("%w: monopoly on %v", ErrInvalidAction, a.Resource)
	}
	if err := g.spend(p, Monopoly); err != nil {
		return err
	}
	for _, other := range g.Players {
		if other.ID == p.ID {
			continue
		}
		p.Resources[a.Resource] += other.Resources[a.Resource]
		other.Resources[a.Resource] = 0
	}
	return nil
}

func (g *Game) playYearOfPlenty(p *Player, a PlayYearOfPlenty) error {
	if !a.First.Producing() || !a.Second.Producing() {
		return fmt.Errorf("%w: year of plenty %v+%v", ErrInvalidAction, a.First, a.Second)
	}
	if err := g.spend(p, YearOfPlenty); err != nil {
		return err
	}
	p.Resources[a.First]++
	p.Resources[a.Second]++
	return nil
}

// playRoadBuilding spends the card and places up to Count free roads.
// Roads beyond the remaining stock are dropped.
func (g *Game) playRoadBuilding(p *Player, a PlayRoadBuilding) error {
	if a.Count < 0 || a.Count > len(a.Roads) {
		return fmt.Errorf("%w: road building with %d roads", ErrInvalidAction, a.Count)
	}
	if p.DevCards[RoadBuilding] <= 0 {
		return fmt.Errorf("%w: player %d holds no playable %v", ErrInvalidAction, p.ID, RoadBuilding)
	}

	// Validate both placements on a scratch board first so a bad second
	// road leaves nothing half applied.
	scratch := g.Board.Copy()
	placed := 0
	for _, slot := range a.Roads[:a.Count] {
		if placed == p.Roads {
			break
		}
		if err := checkConnectedRoad(scratch, p.ID, slot); err != nil {
			return err
		}
		if err := scratch.BuildRoad(slot.At, slot.Dir, p.ID); err != nil {
			return err
		}
		placed++
	}

	p.DevCards[RoadBuilding]--
	if placed < a.Count {
		log.Debug().Int("player", p.ID).Int("placed", placed).Msg("road building ran out of roads")
	}
	for _, slot := range a.Roads[:placed] {
		if err := g.placeRoad(p, slot); err != nil {
			return err
		}
	}
	return nil
}

func checkConnectedRoad(b *Board, player int, slot RoadSlot) error {
	from, err := b.Position(slot.At)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAction, err)
	}
	if slot.Dir < 0 || slot.Dir >= NumDirections || !from.OpenSlot(slot.Dir) {
		return fmt.Errorf("%w: no open road slot %v", ErrInvalidAction, slot)
	}
	if !from.HasRoad(player) && !b.Neighbor(from, slot.Dir).HasRoad(player) {
		return fmt.Errorf("%w: road %v is not connected for player %d", ErrInvalidAction, slot, player)
	}
	return nil
}

func (g *Game) trade(p *Player, a Trade) error {
	other, err := g.Player(a.With)
	if err != nil || other.ID == p.ID {
		return fmt.Errorf("%w: cannot trade with player %d", ErrInvalidAction, a.With)
	}
	if a.Give.Negative() || a.Want.Negative() {
		return fmt.Errorf("%w: negative trade offer", ErrInvalidAction)
	}
	if !p.Resources.Covers(a.Give) {
		return fmt.Errorf("%w: player %d cannot give %v", ErrInvariant, p.ID, a.Give)
	}
	if !other.Resources.Covers(a.Want) {
		return fmt.Errorf("%w: player %d cannot give %v", ErrInvariant, other.ID, a.Want)
	}
	p.Resources.Sub(a.Give)
	other.Resources.Add(a.Give)
	other.Resources.Sub(a.Want)
	p.Resources.Add(a.Want)
	return nil
}
