package game

// LegalActions enumerates every action p may take on its own turn. Pass is
// not included. The result is duplicate-free and depends only on the
// arguments.
func LegalActions(p *Player, b *Board, r Records) []Action {
	var actions []Action
	actions = append(actions, buildActions(p, b, r)...)
	actions = append(actions, maritimeTrades(p)...)
	actions = append(actions, devCardActions(p, b)...)
	return actions
}

func buildActions(p *Player, b *Board, r Records) []Action {
	var actions []Action
	if p.Resources.Covers(DevCardCost) && r.DevCardsLeft > 0 {
		actions = append(actions, DrawDevCard{})
	}
	if p.Resources.Covers(SettlementCost) && p.Settlements > 0 {
		for i := range b.Positions {
			pos := &b.Positions[i]
			if pos.RoadCount(p.ID) == 1 && b.CanSettle(pos.Coord) {
				actions = append(actions, Settle{At: pos.Coord})
			}
		}
	}
	if p.Resources.Covers(RoadCost) && p.Roads > 0 {
		for _, slot := range b.RoadOptions(p.ID) {
			actions = append(actions, BuildRoad{Slot: slot})
		}
	}
	if p.Resources.Covers(CityCost) && p.Cities > 0 {
		for _, pos := range b.PositionsOwnedBy(p.ID) {
			if pos.Building.Kind == Settlement {
				actions = append(actions, BuildCity{At: pos.Coord})
			}
		}
	}
	return actions
}

func maritimeTrades(p *Player) []Action {
	var actions []Action
	bankRatio := 4
	if p.Ports.Has(AnyPort) {
		bankRatio = 3
	}
	for _, give := range Resources() {
		held := p.Resources[give]
		for _, get := range Resources() {
			if get == give {
				continue
			}
			if held >= bankRatio {
				if bankRatio == 4 {
					actions = append(actions, FourToOne{Give: give, Get: get})
				} else {
					actions = append(actions, ThreeToOne{Give: give, Get: get})
				}
			}
			if held >= 2 && p.Ports.Has(PortFor(give)) {
				actions = append(actions, TwoToOne{Give: give, Get: get})
			}
		}
	}
	return actions
}

func devCardActions(p *Player, b *Board) []Action {
	var actions []Action
	if p.DevCards[Knight] > 0 {
		for _, target := range b.KnightOptions(p.ID) {
			actions = append(actions, PlayKnight{Target: target})
		}
	}
	if p.DevCards[Monopoly] > 0 {
		for _, res := range Resources() {
			actions = append(actions, PlayMonopoly{Resource: res})
		}
	}
	if p.DevCards[YearOfPlenty] > 0 {
		for _, first := range Resources() {
			for _, second := range Resources() {
				if second >= first {
					actions = append(actions, PlayYearOfPlenty{First: first, Second: second})
				}
			}
		}
	}
	if p.DevCards[RoadBuilding] > 0 {
		actions = append(actions, roadBuildingActions(p, b)...)
	}
	return actions
}

// roadBuildingActions pairs each first road with every road that becomes
// available once it is placed. With one road left in stock only single
// placements are offered; with none the card can still be spent.
func roadBuildingActions(p *Player, b *Board) []Action {
	if p.Roads == 0 {
		return []Action{PlayRoadBuilding{}}
	}
	var actions []Action
	seen := make(map[[2]RoadSlot]bool)
	for _, first := range b.RoadOptions(p.ID) {
		if p.Roads == 1 {
			actions = append(actions, PlayRoadBuilding{Roads: [2]RoadSlot{first}, Count: 1})
			continue
		}
		scratch := b.Copy()
		if err := scratch.BuildRoad(first.At, first.Dir, p.ID); err != nil {
			continue
		}
		seconds := scratch.RoadOptions(p.ID)
		if len(seconds) == 0 {
			actions = append(actions, PlayRoadBuilding{Roads: [2]RoadSlot{first}, Count: 1})
			continue
		}
		for _, second := range seconds {
			key := [2]RoadSlot{first, second}
			if slotLess(second, first) {
				key = [2]RoadSlot{second, first}
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			actions = append(actions, PlayRoadBuilding{Roads: [2]RoadSlot{first, second}, Count: 2})
		}
	}
	return actions
}

func slotLess(a, b RoadSlot) bool {
	if a.At.Row != b.At.Row {
		return a.At.Row < b.At.Row
	}
	if a.At.Col != b.At.Col {
		return a.At.Col < b.At.Col
	}
	return a.Dir < b.Dir
}

// RobberActions lists the forced robber moves after a seven.
func RobberActions(p *Player, b *Board) []Action {
	var actions []Action
	for _, target := range b.KnightOptions(p.ID) {
		actions = append(actions, MoveRobber{Target: target})
	}
	return actions
}
