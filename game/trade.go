package game

// CanAfford reports whether p holds the cards a proposal asks it to give.
func CanAfford(p *Player, offer ProposeTrade) bool {
	return p.Resources.Covers(offer.Want)
}

// Accept turns a proposal into the trade executed by the proposer.
func (offer ProposeTrade) Accept(with int) Trade {
	return Trade{With: with, Give: offer.Give, Want: offer.Want}
}

// Valid reports whether the proposal moves at least one card each way and
// no negative amounts.
func (offer ProposeTrade) Valid() bool {
	return !offer.Give.Negative() && !offer.Want.Negative() && offer.Give.Total() > 0 && offer.Want.Total() > 0
}
