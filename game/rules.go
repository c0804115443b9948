package game

// Rules holds the tunable numbers of a game.
type Rules interface {
	WinningPoints() int
	LongestRoadMin() int
	DiscardThreshold() int
	StartingStock() Stock
}

// Stock is the number of pieces a player has left to place.
type Stock struct {
	Roads       int
	Settlements int
	Cities      int
}

type StandardRules struct {
	Points      int
	RoadMin     int
	DiscardOver int
	Pieces      Stock
}

func NewStandardRules() *StandardRules {
	return &StandardRules{
		Points:      10,
		RoadMin:     5,
		DiscardOver: 7,
		Pieces:      Stock{Roads: 15, Settlements: 5, Cities: 4},
	}
}

func (sr *StandardRules) WinningPoints() int {
	return sr.Points
}

// LongestRoadMin is the shortest road that can hold the longest road record.
func (sr *StandardRules) LongestRoadMin() int {
	return sr.RoadMin
}

// DiscardThreshold is the hand size a seven roll punishes when exceeded.
func (sr *StandardRules) DiscardThreshold() int {
	return sr.DiscardOver
}

func (sr *StandardRules) StartingStock() Stock {
	return sr.Pieces
}
