package game

// Score breaks a player's victory points down by source.
type Score struct {
	Settlements  int
	Cities       int
	VictoryCards int
	LongestRoad  int
	LargestArmy  int
}

func (s Score) Total() int {
	return s.Settlements + s.Cities + s.VictoryCards + s.LongestRoad + s.LargestArmy
}

// ScoreOf counts 1 per settlement, 2 per city, 1 per victory point card
// held (usable or new), 2 for longest road and 2 for largest army.
func ScoreOf(p *Player, b *Board, r Records) Score {
	var s Score
	for _, pos := range b.PositionsOwnedBy(p.ID) {
		switch pos.Building.Kind {
		case Settlement:
			s.Settlements++
		case City:
			s.Cities += 2
		}
	}
	s.VictoryCards = p.DevCards[VictoryPoint] + p.NewDevCards[VictoryPoint]
	if r.LongestRoadHolder == p.ID {
		s.LongestRoad = 2
	}
	if r.LargestArmyHolder == p.ID {
		s.LargestArmy = 2
	}
	return s
}

func VictoryPoints(p *Player, b *Board, r Records) int {
	return ScoreOf(p, b, r).Total()
}
