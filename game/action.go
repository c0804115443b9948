package game

import "fmt"

// Kind discriminates the Action variants.
type Kind int

const (
	KindSettle Kind = iota
	KindSettleInit
	KindBuildRoad
	KindBuildRoadInit
	KindBuildCity
	KindDrawDevCard
	KindFourToOne
	KindThreeToOne
	KindTwoToOne
	KindPlayKnight
	KindPlayMonopoly
	KindPlayRoadBuilding
	KindPlayYearOfPlenty
	KindMoveRobber
	KindProposeTrade
	KindTrade
	KindPass
)

var kindNames = [...]string{
	"settle", "settle_init", "build_road", "build_road_init", "build_city",
	"draw_dev_card", "four_to_one", "three_to_one", "two_to_one",
	"play_knight", "play_monopoly", "play_road_building", "play_year_of_plenty",
	"move_robber", "propose_trade", "trade", "pass",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Action is one move a player can make. Every variant is a comparable
// value type so actions can be matched against an enumerated legal set.
type Action interface {
	Kind() Kind
}

type Settle struct{ At Coord }

// SettleInit is a free settlement during setup. The second one pays out
// one card per adjacent producing tile.
type SettleInit struct {
	At     Coord
	Second bool
}

type BuildRoad struct{ Slot RoadSlot }

type BuildRoadInit struct{ Slot RoadSlot }

type BuildCity struct{ At Coord }

type DrawDevCard struct{}

// FourToOne, ThreeToOne and TwoToOne are maritime trades.
type FourToOne struct{ Give, Get Resource }

type ThreeToOne struct{ Give, Get Resource }

type TwoToOne struct{ Give, Get Resource }

type PlayKnight struct{ Target RobberTarget }

type PlayMonopoly struct{ Resource Resource }

// PlayRoadBuilding places the first Count roads for free.
type PlayRoadBuilding struct {
	Roads [2]RoadSlot
	Count int
}

type PlayYearOfPlenty struct{ First, Second Resource }

// MoveRobber is forced after a seven is rolled.
type MoveRobber struct{ Target RobberTarget }

// ProposeTrade offers Give for Want to every other player. The engine
// turns an accepted proposal into a Trade.
type ProposeTrade struct{ Give, Want Hand }

// Trade swaps cards with a named player: Give leaves the actor, Want
// arrives from With.
type Trade struct {
	With int
	Give Hand
	Want Hand
}

type Pass struct{}

func (Settle) Kind() Kind           { return KindSettle }
func (SettleInit) Kind() Kind       { return KindSettleInit }
func (BuildRoad) Kind() Kind        { return KindBuildRoad }
func (BuildRoadInit) Kind() Kind    { return KindBuildRoadInit }
func (BuildCity) Kind() Kind        { return KindBuildCity }
func (DrawDevCard) Kind() Kind      { return KindDrawDevCard }
func (FourToOne) Kind() Kind        { return KindFourToOne }
func (ThreeToOne) Kind() Kind       { return KindThreeToOne }
func (TwoToOne) Kind() Kind         { return KindTwoToOne }
func (PlayKnight) Kind() Kind       { return KindPlayKnight }
func (PlayMonopoly) Kind() Kind     { return KindPlayMonopoly }
func (PlayRoadBuilding) Kind() Kind { return KindPlayRoadBuilding }
func (PlayYearOfPlenty) Kind() Kind { return KindPlayYearOfPlenty }
func (MoveRobber) Kind() Kind       { return KindMoveRobber }
func (ProposeTrade) Kind() Kind     { return KindProposeTrade }
func (Trade) Kind() Kind            { return KindTrade }
func (Pass) Kind() Kind             { return KindPass }

// Describe renders an action for logs and traces.
func Describe(a Action) string {
	if a == nil {
		return "<nil>"
	}
	switch a := a.(type) {
	case Settle:
		return fmt.Sprintf("settle %v", a.At)
	case SettleInit:
		return fmt.Sprintf("settle_init %v second=%t", a.At, a.Second)
	case BuildRoad:
		return fmt.Sprintf("build_road %v", a.Slot)
	case BuildRoadInit:
		return fmt.Sprintf("build_road_init %v", a.Slot)
	case BuildCity:
		return fmt.Sprintf("build_city %v", a.At)
	case FourToOne:
		return fmt.Sprintf("four_to_one %v->%v", a.Give, a.Get)
	case ThreeToOne:
		return fmt.Sprintf("three_to_one %v->%v", a.Give, a.Get)
	case TwoToOne:
		return fmt.Sprintf("two_to_one %v->%v", a.Give, a.Get)
	case PlayKnight:
		return fmt.Sprintf("play_knight %v victim=%d", a.Target.Tile, a.Target.Victim)
	case MoveRobber:
		return fmt.Sprintf("move_robber %v victim=%d", a.Target.Tile, a.Target.Victim)
	case PlayMonopoly:
		return fmt.Sprintf("play_monopoly %v", a.Resource)
	case PlayRoadBuilding:
		if a.Count < 0 || a.Count > len(a.Roads) {
			return fmt.Sprintf("play_road_building count=%d", a.Count)
		}
		return fmt.Sprintf("play_road_building %v", a.Roads[:a.Count])
	case PlayYearOfPlenty:
		return fmt.Sprintf("play_year_of_plenty %v+%v", a.First, a.Second)
	case ProposeTrade:
		return fmt.Sprintf("propose_trade give=%v want=%v", a.Give, a.Want)
	case Trade:
		return fmt.Sprintf("trade with=%d give=%v want=%v", a.With, a.Give, a.Want)
	}
	return a.Kind().String()
}
