package game

import "fmt"

// Player is one seat's ledger.
type Player struct {
	ID        int
	Resources Hand
	Stock
	DevCards      DevCards // usable
	NewDevCards   DevCards // bought this turn
	KnightsPlayed int
	Ports         PortSet
	LongestRoad   int
}

func NewPlayer(id int, stock Stock) *Player {
	return &Player{ID: id, Stock: stock}
}

// CheckInvariants fails if any counter went negative.
func (p *Player) CheckInvariants() error {
	if p.Resources.Negative() {
		return fmt.Errorf("%w: player %d resources %v", ErrInvariant, p.ID, p.Resources)
	}
	if p.Roads < 0 || p.Settlements < 0 || p.Cities < 0 {
		return fmt.Errorf("%w: player %d stock %+v", ErrInvariant, p.ID, p.Stock)
	}
	for kind := range p.DevCards {
		if p.DevCards[kind] < 0 || p.NewDevCards[kind] < 0 {
			return fmt.Errorf("%w: player %d %v count", ErrInvariant, p.ID, DevCard(kind))
		}
	}
	if p.KnightsPlayed < 0 || p.LongestRoad < 0 {
		return fmt.Errorf("%w: player %d knights %d road %d", ErrInvariant, p.ID, p.KnightsPlayed, p.LongestRoad)
	}
	return nil
}

// EndTurn makes cards bought this turn playable.
func (p *Player) EndTurn() {
	for kind, n := range p.NewDevCards {
		p.DevCards[kind] += n
	}
	p.NewDevCards = DevCards{}
}

// TradeRatio is the best maritime rate the player gets for r.
func (p *Player) TradeRatio(r Resource) int {
	switch {
	case p.Ports.Has(PortFor(r)):
		return 2
	case p.Ports.Has(AnyPort):
		return 3
	}
	return 4
}

func (p *Player) Copy() *Player {
	c := *p
	return &c
}
