package game

// EvaluatePoints compares player's victory points with the strongest
// opponent's to produce a score between -1 and 1.
func EvaluatePoints(g *Game, player int) float64 {
	mine, best := pointsAgainstField(g, player)
	return normalize(mine, best)
}

// EvaluateProduction considers expected income and held cards, in addition
// to victory points, to produce a score between -1 and 1.
func EvaluateProduction(g *Game, player int) float64 {
	mine, best := pointsAgainstField(g, player)
	pointScore := normalize(mine, best)

	production := make([]float64, len(g.Players))
	for i := range g.Players {
		production[i] = productionOf(g.Board, i)
	}
	productionScore := normalize(production[player], maxOther(production, player))

	cards := make([]float64, len(g.Players))
	for i, p := range g.Players {
		cards[i] = float64(p.Resources.Total() + p.DevCards.Total() + p.NewDevCards.Total())
	}
	cardScore := normalize(cards[player], maxOther(cards, player))

	// Points dominate; income and cards break ties between similar boards
	return (2*pointScore + productionScore + cardScore/2) / 3.5
}

func pointsAgainstField(g *Game, player int) (mine, best float64) {
	points := make([]float64, len(g.Players))
	for i, p := range g.Players {
		points[i] = float64(VictoryPoints(p, g.Board, g.Records))
	}
	return points[player], maxOther(points, player)
}

// productionOf sums the pips of every tile a player's buildings touch,
// doubled for cities.
func productionOf(b *Board, player int) float64 {
	total := 0.0
	for _, pos := range b.PositionsOwnedBy(player) {
		weight := 1.0
		if pos.Building.Kind == City {
			weight = 2
		}
		for _, t := range pos.Tiles {
			tile := &b.Tiles[t]
			if tile.Robber {
				continue
			}
			total += weight * float64(tile.Pips())
		}
	}
	return total
}

func maxOther(values []float64, skip int) float64 {
	best := 0.0
	for i, v := range values {
		if i != skip && v > best {
			best = v
		}
	}
	return best
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
