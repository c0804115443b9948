package searcher

import (
	"math"
	"testing"
	"time"

	"catan/experiments/metrics"
	"catan/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// newSetupGame seats three players with one settlement and one road each.
func newSetupGame(t *testing.T) *game.Game {
	t.Helper()
	g, err := game.NewRandomGame(3, game.NewStandardRules(), 7)
	require.NoError(t, err)

	for id := range g.Players {
		spot := g.Board.SettlementSpots()[id*7]
		require.NoError(t, g.Resolve(id, game.SettleInit{At: spot}))
		pos, err := g.Board.Position(spot)
		require.NoError(t, err)
		for d := game.Direction(0); d < game.NumDirections; d++ {
			if pos.OpenSlot(d) {
				require.NoError(t, g.Resolve(id, game.BuildRoadInit{Slot: game.RoadSlot{At: spot, Dir: d}}))
				break
			}
		}
	}
	return g
}

func ownSettlement(t *testing.T, g *game.Game, player int) game.Coord {
	t.Helper()
	owned := g.Board.PositionsOwnedBy(player)
	require.NotEmpty(t, owned)
	return owned[0].Coord
}

func TestNewMCTS(t *testing.T) {
	t.Run("panics without episodes or duration", func(t *testing.T) {
		require.Panics(t, func() {
			NewMCTS(1)
		}, "Should panic when neither episodes nor duration is set")
	})

	t.Run("ignores non-positive options", func(t *testing.T) {
		m := NewMCTS(0, WithEpisodes(10), WithDuration(-time.Second), WithCutoff(0), WithEvaluationFn(nil))
		require.Equal(t, 1, m.goroutines)
		require.Equal(t, 10, m.episodes)
		require.Zero(t, m.duration)
		require.Equal(t, MaxCutoff, m.cutoff)
		require.NotNil(t, m.evaluate)
	})
}

func TestUCB1(t *testing.T) {
	t.Run("unvisited candidates come first", func(t *testing.T) {
		require.Equal(t, math.Inf(1), ucb1(0, 0, 1))
	})

	t.Run("computing UCB value", func(t *testing.T) {
		normalizer := CSquared * math.Log(100)
		got := ucb1(5.0, 10, normalizer)

		expected := 5.0/10 + math.Sqrt(2.0*math.Log(100)/10.0)
		require.InDelta(t, expected, got, 0.0001, "Should compute q/n + sqrt(c^2*ln(N)/n)")
	})

	t.Run("exploration term decreases with visits", func(t *testing.T) {
		normalizer := CSquared * math.Log(100)
		require.Greater(t, ucb1(5, 10, normalizer), ucb1(5, 20, normalizer))
	})
}

func TestRoot(t *testing.T) {
	actions := []game.Action{game.Pass{}, game.DrawDevCard{}, game.PlayMonopoly{Resource: game.Rock}}

	t.Run("visits every candidate before repeating", func(t *testing.T) {
		r := newRoot(actions)
		seen := map[int]bool{}
		for range actions {
			ith := r.selects()
			seen[ith] = true
			r.backup(ith, 0)
		}
		require.Len(t, seen, len(actions))
		require.Equal(t, []int{1, 1, 1}, r.Visits())
	})

	t.Run("virtual loss is replaced by the reward", func(t *testing.T) {
		r := newRoot(actions)
		ith := r.selects()
		require.Equal(t, Loss, r.rewards[ith])

		r.backup(ith, Win)
		require.Equal(t, Win, r.rewards[ith])
		require.Equal(t, 1, r.visits[ith])
	})

	t.Run("prefers rewarded candidates once explored", func(t *testing.T) {
		r := newRoot(actions)
		for range actions {
			ith := r.selects()
			reward := Loss
			if ith == 1 {
				reward = Win
			}
			r.backup(ith, reward)
		}
		require.Equal(t, 1, r.selects())
	})
}

func TestFindMax(t *testing.T) {
	require.Equal(t, 2, findMax([]int{1, 3, 7, 7}))
	require.Equal(t, 0, findMax([]int{4}))
}

func TestSimulate(t *testing.T) {
	t.Run("spends every episode", func(t *testing.T) {
		g := newSetupGame(t)
		candidates := append(g.LegalActions(0), game.Pass{})
		m := NewMCTS(4, WithEpisodes(60), WithCutoff(20), WithMetrics())

		visits, metric := m.Simulate(g, 0, candidates)

		total := 0
		for _, v := range visits {
			total += v
		}
		require.Equal(t, 60, total)
		require.Equal(t, 60, metric.Episodes)
		require.Equal(t, 4, metric.Goroutines)
		require.Equal(t, len(candidates), metric.Candidates)
	})

	t.Run("does not mutate the searched game", func(t *testing.T) {
		g := newSetupGame(t)
		before := g.Hash()
		m := NewMCTS(2, WithEpisodes(40), WithCutoff(30))

		m.Simulate(g, 0, []game.Action{game.Pass{}})

		require.Equal(t, before, g.Hash())
		require.NoError(t, g.CheckInvariants())
	})

	t.Run("runs for a duration", func(t *testing.T) {
		g := newSetupGame(t)
		m := NewMCTS(2, WithDuration(20*time.Millisecond), WithCutoff(5), WithMetrics())

		_, metric := m.Simulate(g, 0, []game.Action{game.Pass{}})
		require.Positive(t, metric.Episodes)
	})

	t.Run("prefers the action that scores", func(t *testing.T) {
		g := newSetupGame(t)
		g.Players[0].Resources = game.CityCost
		city := game.BuildCity{At: ownSettlement(t, g, 0)}
		m := NewMCTS(1, WithEpisodes(200), WithCutoff(1), WithEvaluationFn(game.EvaluatePoints), WithSeed(3))

		best, _ := m.Best(g, 0, []game.Action{game.Pass{}, city})
		require.Equal(t, city, best)
	})

	t.Run("same seed gives same visits on one goroutine", func(t *testing.T) {
		g := newSetupGame(t)
		candidates := append(g.LegalActions(0), game.Pass{})
		first, _ := NewMCTS(1, WithEpisodes(30), WithCutoff(10), WithSeed(9)).Simulate(g, 0, candidates)
		second, _ := NewMCTS(1, WithEpisodes(30), WithCutoff(10), WithSeed(9)).Simulate(g, 0, candidates)
		require.Equal(t, first, second)
	})
}

func TestRollout(t *testing.T) {
	t.Run("keeps ledgers valid", func(t *testing.T) {
		for seed := uint64(1); seed <= 5; seed++ {
			g := newSetupGame(t).CopyWithSeed(seed)
			rng := rand.New(rand.NewSource(seed))

			score := rollout(g, 0, false, 150, rng, game.EvaluateProduction, metrics.NewDummyCollector())

			require.GreaterOrEqual(t, score, Loss)
			require.LessOrEqual(t, score, Win)
			require.NoError(t, g.CheckInvariants())
		}
	})

	t.Run("passing hands the turn on", func(t *testing.T) {
		g := newSetupGame(t)
		rng := rand.New(rand.NewSource(1))

		next := nextTurn(g, 0, rng)
		require.Equal(t, 1, next)
		require.Equal(t, 1, g.Current)
	})
}
