package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// playRandom drives a game with uniformly random choices and checks the
// ledger and road invariants after every action.
func playRandom(t *testing.T, g *Game, rng *rand.Rand, rounds int) {
	t.Helper()
	n := len(g.Players)
	order := make([]int, 0, 2*n)
	for i := 0; i < n; i++ {
		order = append(order, i)
	}
	for i := n - 1; i >= 0; i-- {
		order = append(order, i)
	}
	for step, id := range order {
		spots := g.Board.SettlementSpots()
		at := spots[rng.Intn(len(spots))]
		require.NoError(t, g.Resolve(id, SettleInit{At: at, Second: step >= n}))
		pos := mustPosition(t, g.Board, at)
		var open []Direction
		for d := Direction(0); d < NumDirections; d++ {
			if pos.OpenSlot(d) {
				open = append(open, d)
			}
		}
		d := open[rng.Intn(len(open))]
		require.NoError(t, g.Resolve(id, BuildRoadInit{Slot: RoadSlot{At: at, Dir: d}}))
	}

	for round := 0; round < rounds && g.Winner() == NoPlayer; round++ {
		for id := 0; id < n; id++ {
			roll := g.RollDice()
			if roll == 7 {
				for _, p := range g.Players {
					require.NoError(t, g.HandleSevenRoll(p, firstCards{}))
				}
				moves := RobberActions(g.Players[id], g.Board)
				require.NoError(t, g.Resolve(id, moves[rng.Intn(len(moves))]))
			} else {
				g.CollectAll(roll)
			}
			for i := 0; i < 4; i++ {
				actions := g.LegalActions(id)
				if len(actions) == 0 {
					break
				}
				a := actions[rng.Intn(len(actions))]
				require.NoError(t, g.Resolve(id, a), "Resolving %v", Describe(a))
				require.NoError(t, g.CheckInvariants())
			}
			requireMirroredRoads(t, g.Board)
			g.EndTurn()
		}
	}
}

func TestRandomGamesKeepInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		g, err := NewRandomGame(4, NewStandardRules(), seed)
		require.NoError(t, err)

		playRandom(t, g, rand.New(rand.NewSource(seed)), 60)

		for _, p := range g.Players {
			require.Equal(t, LongestRoad(g.Board, p.ID), p.LongestRoad, "Cached road length should be current")
			require.Equal(t, 15-p.Roads, countRoads(g.Board, p.ID), "Road stock should match the board")
		}
	}
}

func countRoads(b *Board, player int) int {
	n := 0
	for i := range b.Positions {
		n += b.Positions[i].RoadCount(player)
	}
	return n / 2
}

func TestNewGame(t *testing.T) {
	_, err := NewRandomGame(1, nil, 1)
	require.Error(t, err)

	g, err := NewRandomGame(3, nil, 1)
	require.NoError(t, err)
	require.Len(t, g.Players, 3)
	require.Equal(t, 25, g.Records.DevCardsLeft)
	require.Equal(t, NoPlayer, g.Records.LongestRoadHolder)
	require.Equal(t, Stock{Roads: 15, Settlements: 5, Cities: 4}, g.Players[2].Stock)

	_, err = g.Player(3)
	require.ErrorIs(t, err, ErrNoSuchPlayer)
}

func TestGameCopy(t *testing.T) {
	g := newTestGame(t, 2)
	require.NoError(t, g.Resolve(0, SettleInit{At: Coord{2, 4}}))
	hash := g.Hash()

	c := g.Copy()
	require.Equal(t, hash, c.Hash(), "Copy should hash like the original")

	c.Players[0].Resources[Wheat] = 3
	require.NoError(t, c.Resolve(0, BuildRoadInit{Slot: RoadSlot{At: Coord{2, 4}, Dir: Right}}))

	require.Equal(t, hash, g.Hash(), "Original should be untouched")
	require.NotEqual(t, hash, c.Hash())
	require.Zero(t, g.Players[0].Resources[Wheat])
	require.Equal(t, 15, g.Players[0].Roads)
}

func TestHashCoversDerivedState(t *testing.T) {
	g := newTestGame(t, 2)
	hash := g.Hash()

	for name, mutate := range map[string]func(c *Game){
		"ports":               func(c *Game) { c.Players[0].Ports.Add(AnyPort) },
		"longest road":        func(c *Game) { c.Players[1].LongestRoad = 3 },
		"longest road record": func(c *Game) { c.Records.LongestRoadLength = 5 },
		"largest army record": func(c *Game) { c.Records.LargestArmySize = 2 },
	} {
		t.Run(name, func(t *testing.T) {
			c := g.Copy()
			mutate(c)
			require.NotEqual(t, hash, c.Hash())
		})
	}
}

func TestSameSeedSameGame(t *testing.T) {
	a, err := NewRandomGame(3, nil, 11)
	require.NoError(t, err)
	b, err := NewRandomGame(3, nil, 11)
	require.NoError(t, err)

	playRandom(t, a, rand.New(rand.NewSource(4)), 20)
	playRandom(t, b, rand.New(rand.NewSource(4)), 20)

	require.Equal(t, a.Hash(), b.Hash())
}
