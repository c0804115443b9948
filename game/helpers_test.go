package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T, players int) *Game {
	t.Helper()
	g, err := NewRandomGame(players, NewStandardRules(), 42)
	require.NoError(t, err)
	return g
}

func mustPosition(t *testing.T, b *Board, c Coord) *Position {
	t.Helper()
	p, err := b.Position(c)
	require.NoError(t, err)
	return p
}

func ofKind(actions []Action, k Kind) []Action {
	var out []Action
	for _, a := range actions {
		if a.Kind() == k {
			out = append(out, a)
		}
	}
	return out
}

func requireMirroredRoads(t *testing.T, b *Board) {
	t.Helper()
	for i := range b.Positions {
		p := &b.Positions[i]
		for d := Direction(0); d < NumDirections; d++ {
			n := p.Neighbors[d]
			if n == None {
				require.Equal(t, NoPlayer, p.Roads[d], "Missing neighbor at %v %v should never hold a road", p.Coord, d)
				continue
			}
			require.Equal(t, p.Roads[d], b.Positions[n].Roads[d.Opposite()],
				"Road slot %v %v should mirror its neighbor", p.Coord, d)
		}
	}
}

type firstCards struct{}

func (firstCards) DiscardSelection(_ *Game, _ *Player, count int) []int {
	out := make([]int, count)
	for i := range out {
		out[i] = i
	}
	return out
}
