package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type unknownAction struct{}

func (unknownAction) Kind() Kind { return Kind(99) }

func TestResolveRejects(t *testing.T) {
	g := newTestGame(t, 2)

	require.ErrorIs(t, g.Resolve(0, unknownAction{}), ErrInvalidAction)
	require.ErrorIs(t, g.Resolve(0, nil), ErrInvalidAction)
	require.ErrorIs(t, g.Resolve(0, ProposeTrade{Give: Hand{Wheat: 1}, Want: Hand{Rock: 1}}), ErrInvalidAction)
	require.ErrorIs(t, g.Resolve(5, Pass{}), ErrNoSuchPlayer)
	require.ErrorIs(t, g.Resolve(0, Settle{At: Coord{9, 9}}), ErrOutOfRange)
	require.ErrorIs(t, g.Resolve(0, PlayMonopoly{Resource: Wheat}), ErrInvalidAction, "No card held")
}

func TestResolveCosts(t *testing.T) {
	t.Run("unaffordable build is an invariant violation", func(t *testing.T) {
		g := newTestGame(t, 2)
		require.NoError(t, g.Resolve(0, SettleInit{At: Coord{2, 4}}))

		err := g.Resolve(0, BuildCity{At: Coord{2, 4}})

		require.ErrorIs(t, err, ErrInvariant)
		require.Equal(t, Settlement, mustPosition(t, g.Board, Coord{2, 4}).Building.Kind, "Nothing should change")
	})

	t.Run("city swaps stock", func(t *testing.T) {
		g := newTestGame(t, 2)
		p := g.Players[0]
		require.NoError(t, g.Resolve(0, SettleInit{At: Coord{2, 4}}))
		p.Resources = Hand{Wheat: 2, Rock: 3, Sheep: 1}

		require.NoError(t, g.Resolve(0, BuildCity{At: Coord{2, 4}}))

		require.Equal(t, Hand{Sheep: 1}, p.Resources)
		require.Equal(t, 3, p.Cities)
		require.Equal(t, 5, p.Settlements)
	})

	t.Run("road with no stock is a no-op", func(t *testing.T) {
		g := newTestGame(t, 2)
		p := g.Players[0]
		require.NoError(t, g.Resolve(0, SettleInit{At: Coord{2, 4}}))
		require.NoError(t, g.Resolve(0, BuildRoadInit{Slot: RoadSlot{At: Coord{2, 4}, Dir: Right}}))
		p.Resources = RoadCost
		p.Roads = 0

		require.NoError(t, g.Resolve(0, BuildRoad{Slot: RoadSlot{At: Coord{2, 5}, Dir: Right}}))

		require.Equal(t, RoadCost, p.Resources, "No resources should be spent")
		require.Equal(t, NoPlayer, mustPosition(t, g.Board, Coord{2, 5}).Roads[Right])
	})

	t.Run("disconnected road is rejected", func(t *testing.T) {
		g := newTestGame(t, 2)
		g.Players[0].Resources = RoadCost

		require.ErrorIs(t, g.Resolve(0, BuildRoad{Slot: RoadSlot{At: Coord{2, 5}, Dir: Right}}), ErrInvalidAction)
		require.ErrorIs(t, g.Resolve(0, BuildRoadInit{Slot: RoadSlot{At: Coord{2, 5}, Dir: Right}}), ErrInvalidAction)
	})

	t.Run("second setup settlement pays out", func(t *testing.T) {
		g := newTestGame(t, 2)
		p := g.Players[0]
		at := Coord{2, 4}

		require.NoError(t, g.Resolve(0, SettleInit{At: at, Second: true}))

		var want Hand
		for _, tile := range mustPosition(t, g.Board, at).Tiles {
			if res := g.Board.Tiles[tile].Resource; res != Desert {
				want[res]++
			}
		}
		require.Equal(t, want, p.Resources)
		require.Equal(t, 4, p.Settlements)
	})

	t.Run("settling on a port grants it", func(t *testing.T) {
		g := newTestGame(t, 2)

		require.NoError(t, g.Resolve(0, SettleInit{At: Coord{5, 2}}))

		require.True(t, g.Players[0].Ports.Has(WheatPort))
		require.Equal(t, 2, g.Players[0].TradeRatio(Wheat))
		require.Equal(t, 4, g.Players[0].TradeRatio(Rock))
	})
}

func TestResolveDevCards(t *testing.T) {
	t.Run("drawing moves a card into the new hand", func(t *testing.T) {
		g := newTestGame(t, 2)
		p := g.Players[0]
		p.Resources = DevCardCost

		require.NoError(t, g.Resolve(0, DrawDevCard{}))

		require.Equal(t, Hand{}, p.Resources)
		require.Equal(t, 1, p.NewDevCards.Total())
		require.Zero(t, p.DevCards.Total())
		require.Equal(t, 24, g.Records.DevCardsLeft)
	})

	t.Run("drawing from an empty pile is a no-op", func(t *testing.T) {
		g := newTestGame(t, 2)
		p := g.Players[0]
		p.Resources = DevCardCost
		g.Pile.Cards = nil

		require.NoError(t, g.Resolve(0, DrawDevCard{}))

		require.Equal(t, DevCardCost, p.Resources)
	})

	t.Run("monopoly collects from every other player", func(t *testing.T) {
		g := newTestGame(t, 3)
		actor := g.Players[0]
		actor.DevCards[Monopoly] = 1
		g.Players[1].Resources[Sheep] = 3
		g.Players[2].Resources[Sheep] = 2
		g.Players[2].Resources[Rock] = 1

		require.NoError(t, g.Resolve(0, PlayMonopoly{Resource: Sheep}))

		require.Equal(t, 5, actor.Resources[Sheep])
		require.Zero(t, g.Players[1].Resources[Sheep])
		require.Zero(t, g.Players[2].Resources[Sheep])
		require.Equal(t, 1, g.Players[2].Resources[Rock], "Other resources are untouched")
		require.Zero(t, actor.DevCards[Monopoly])
	})

	t.Run("monopoly keeps the actor's own cards", func(t *testing.T) {
		g := newTestGame(t, 2)
		g.Players[0].DevCards[Monopoly] = 1
		g.Players[0].Resources[Mud] = 2
		g.Players[1].Resources[Mud] = 1

		require.NoError(t, g.Resolve(0, PlayMonopoly{Resource: Mud}))

		require.Equal(t, 3, g.Players[0].Resources[Mud])
	})

	t.Run("year of plenty", func(t *testing.T) {
		g := newTestGame(t, 2)
		g.Players[0].DevCards[YearOfPlenty] = 1

		require.NoError(t, g.Resolve(0, PlayYearOfPlenty{First: Rock, Second: Rock}))

		require.Equal(t, Hand{Rock: 2}, g.Players[0].Resources)
	})

	t.Run("knight steals and tracks the largest army", func(t *testing.T) {
		g := newTestGame(t, 2)
		require.NoError(t, g.Resolve(1, SettleInit{At: Coord{2, 4}}))
		g.Players[1].Resources = Hand{Rock: 1}
		g.Players[0].DevCards[Knight] = 1
		var target RobberTarget
		for _, o := range g.Board.KnightOptions(0) {
			if o.Victim == 1 {
				target = o
				break
			}
		}
		require.Equal(t, 1, target.Victim, "Player 1 should be robbable")

		require.NoError(t, g.Resolve(0, PlayKnight{Target: target}))

		require.Equal(t, Hand{Rock: 1}, g.Players[0].Resources)
		require.Equal(t, Hand{}, g.Players[1].Resources)
		require.Equal(t, 1, g.Players[0].KnightsPlayed)
		require.Equal(t, 0, g.Records.LargestArmyHolder)
		tile, err := g.Board.Tile(target.Tile)
		require.NoError(t, err)
		require.True(t, tile.Robber)
	})

	t.Run("stealing from an empty hand is a no-op", func(t *testing.T) {
		g := newTestGame(t, 2)
		require.NoError(t, g.Resolve(1, SettleInit{At: Coord{2, 4}}))
		var target RobberTarget
		for _, o := range g.Board.KnightOptions(0) {
			if o.Victim == 1 {
				target = o
				break
			}
		}

		require.NoError(t, g.Resolve(0, MoveRobber{Target: target}))

		require.Equal(t, Hand{}, g.Players[0].Resources)
	})

	t.Run("robbing yourself is rejected", func(t *testing.T) {
		g := newTestGame(t, 2)
		require.NoError(t, g.Resolve(0, SettleInit{At: Coord{2, 4}}))
		tile := g.Board.Tiles[mustPosition(t, g.Board, Coord{2, 4}).Tiles[0]]

		require.ErrorIs(t, g.Resolve(0, MoveRobber{Target: RobberTarget{Tile: tile.Coord, Victim: 0}}), ErrInvalidAction)
	})

	t.Run("occupied tile without a victim is rejected", func(t *testing.T) {
		g := newTestGame(t, 2)
		require.NoError(t, g.Resolve(0, SettleInit{At: Coord{2, 4}}))
		var tile Tile
		for _, i := range mustPosition(t, g.Board, Coord{2, 4}).Tiles {
			if c := g.Board.Tiles[i]; !c.Robber && c.Resource != Desert {
				tile = c
				break
			}
		}
		require.Equal(t, []int{0}, tile.Occupants)

		err := g.Resolve(0, MoveRobber{Target: RobberTarget{Tile: tile.Coord, Victim: NoPlayer}})

		require.ErrorIs(t, err, ErrInvalidAction)
		require.NotContains(t, RobberActions(g.Players[0], g.Board), MoveRobber{Target: RobberTarget{Tile: tile.Coord, Victim: NoPlayer}})
	})
}

func TestLargestArmyTies(t *testing.T) {
	r := NewRecords(25)
	a := &Player{ID: 0, KnightsPlayed: 2}
	b := &Player{ID: 1, KnightsPlayed: 2}

	require.True(t, r.UpdateLargestArmy(a))
	require.False(t, r.UpdateLargestArmy(b), "Ties keep the holder")
	require.Equal(t, 0, r.LargestArmyHolder)

	b.KnightsPlayed = 3
	require.True(t, r.UpdateLargestArmy(b))
	require.Equal(t, 1, r.LargestArmyHolder)
	require.Equal(t, 3, r.LargestArmySize)
}

func TestResolveRoadBuilding(t *testing.T) {
	setup := func(t *testing.T) *Game {
		g := newTestGame(t, 2)
		require.NoError(t, g.Board.BuildRoad(Coord{0, 0}, Right, 0))
		g.Players[0].DevCards[RoadBuilding] = 1
		return g
	}
	chain := [2]RoadSlot{{At: Coord{0, 1}, Dir: Right}, {At: Coord{0, 2}, Dir: Right}}

	t.Run("places both roads for free", func(t *testing.T) {
		g := setup(t)
		p := g.Players[0]

		require.NoError(t, g.Resolve(0, PlayRoadBuilding{Roads: chain, Count: 2}))

		require.Equal(t, 13, p.Roads)
		require.Equal(t, 3, p.LongestRoad)
		require.Zero(t, p.DevCards[RoadBuilding])
		requireMirroredRoads(t, g.Board)
	})

	t.Run("zero stock consumes the card only", func(t *testing.T) {
		g := setup(t)
		p := g.Players[0]
		p.Roads = 0

		require.NoError(t, g.Resolve(0, PlayRoadBuilding{Roads: chain, Count: 2}))

		require.Zero(t, p.DevCards[RoadBuilding])
		require.Equal(t, NoPlayer, mustPosition(t, g.Board, Coord{0, 1}).Roads[Right])
	})

	t.Run("one road left drops the second", func(t *testing.T) {
		g := setup(t)
		p := g.Players[0]
		p.Roads = 1

		require.NoError(t, g.Resolve(0, PlayRoadBuilding{Roads: chain, Count: 2}))

		require.Zero(t, p.Roads)
		require.Equal(t, 0, mustPosition(t, g.Board, Coord{0, 1}).Roads[Right])
		require.Equal(t, NoPlayer, mustPosition(t, g.Board, Coord{0, 2}).Roads[Right])
	})

	t.Run("a bad second road leaves nothing applied", func(t *testing.T) {
		g := setup(t)
		bad := [2]RoadSlot{chain[0], {At: Coord{5, 0}, Dir: Right}}

		require.ErrorIs(t, g.Resolve(0, PlayRoadBuilding{Roads: bad, Count: 2}), ErrInvalidAction)

		require.Equal(t, 1, g.Players[0].DevCards[RoadBuilding])
		require.Equal(t, NoPlayer, mustPosition(t, g.Board, Coord{0, 1}).Roads[Right])
	})
}

func TestResolveTrades(t *testing.T) {
	t.Run("maritime trade", func(t *testing.T) {
		g := newTestGame(t, 2)
		p := g.Players[0]
		p.Resources = Hand{Wheat: 5}

		require.NoError(t, g.Resolve(0, FourToOne{Give: Wheat, Get: Rock}))
		require.Equal(t, Hand{Wheat: 1, Rock: 1}, p.Resources)

		require.ErrorIs(t, g.Resolve(0, ThreeToOne{Give: Wheat, Get: Rock}), ErrInvalidAction, "No wildcard port")
		require.ErrorIs(t, g.Resolve(0, FourToOne{Give: Rock, Get: Rock}), ErrInvalidAction)
	})

	t.Run("player trade moves cards both ways", func(t *testing.T) {
		g := newTestGame(t, 2)
		g.Players[0].Resources = Hand{Wheat: 2}
		g.Players[1].Resources = Hand{Rock: 1, Sheep: 1}

		require.NoError(t, g.Resolve(0, Trade{With: 1, Give: Hand{Wheat: 2}, Want: Hand{Rock: 1}}))

		require.Equal(t, Hand{Rock: 1}, g.Players[0].Resources)
		require.Equal(t, Hand{Wheat: 2, Sheep: 1}, g.Players[1].Resources)
	})

	t.Run("counterpart must hold the cards", func(t *testing.T) {
		g := newTestGame(t, 2)
		g.Players[0].Resources = Hand{Wheat: 2}

		err := g.Resolve(0, Trade{With: 1, Give: Hand{Wheat: 2}, Want: Hand{Rock: 1}})

		require.ErrorIs(t, err, ErrInvariant)
		require.Equal(t, Hand{Wheat: 2}, g.Players[0].Resources)
		require.ErrorIs(t, g.Resolve(0, Trade{With: 0}), ErrInvalidAction, "No trading with yourself")
	})
}
