package game

// Records is the per-game bonus bookkeeping shared by all players.
type Records struct {
	LongestRoadHolder int
	LongestRoadLength int
	LargestArmyHolder int
	LargestArmySize   int
	DevCardsLeft      int
}

func NewRecords(devCards int) Records {
	return Records{
		LongestRoadHolder: NoPlayer,
		LargestArmyHolder: NoPlayer,
		DevCardsLeft:      devCards,
	}
}

// UpdateLargestArmy hands the record to p if p has strictly more knights
// than the holder.
func (r *Records) UpdateLargestArmy(p *Player) bool {
	if p.KnightsPlayed <= r.LargestArmySize {
		return false
	}
	r.LargestArmyHolder = p.ID
	r.LargestArmySize = p.KnightsPlayed
	return true
}

// UpdateLongestRoad caches length on p and hands the record to p on a
// strict improvement of at least min edges.
func (r *Records) UpdateLongestRoad(p *Player, length, min int) bool {
	p.LongestRoad = length
	if length <= r.LongestRoadLength || length < min {
		return false
	}
	r.LongestRoadHolder = p.ID
	r.LongestRoadLength = length
	return true
}
