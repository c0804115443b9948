package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestPile(t *testing.T) {
	pile := NewPile(rand.New(rand.NewSource(5)))
	require.Equal(t, 25, pile.Len())

	var drawn DevCards
	for pile.Len() > 0 {
		card, ok := pile.Draw()
		require.True(t, ok)
		drawn[card]++
	}
	require.Equal(t, DevCards{Knight: 14, VictoryPoint: 5, RoadBuilding: 2, YearOfPlenty: 2, Monopoly: 2}, drawn)

	_, ok := pile.Draw()
	require.False(t, ok, "Empty pile")
}

func TestEndTurnMergesNewCards(t *testing.T) {
	p := NewPlayer(0, NewStandardRules().StartingStock())
	p.DevCards[Knight] = 1
	p.NewDevCards[Knight] = 2
	p.NewDevCards[Monopoly] = 1

	p.EndTurn()

	require.Equal(t, DevCards{Knight: 3, Monopoly: 1}, p.DevCards)
	require.Equal(t, DevCards{}, p.NewDevCards)
}

func TestCheckInvariants(t *testing.T) {
	p := NewPlayer(0, NewStandardRules().StartingStock())
	require.NoError(t, p.CheckInvariants())

	p.Resources[Mud] = -1
	require.ErrorIs(t, p.CheckInvariants(), ErrInvariant)

	p.Resources[Mud] = 0
	p.Roads = -1
	require.ErrorIs(t, p.CheckInvariants(), ErrInvariant)
}
