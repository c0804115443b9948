package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"golang.org/x/exp/rand"
)

// Game is one isolated match: board, ledgers, shared records and the
// random source for dice, shuffles and theft. Nothing is shared between
// games.
type Game struct {
	Board   *Board
	Players []*Player
	Records Records
	Pile    *Pile
	Rules   Rules
	Round   int
	Current int // player whose turn it is

	rng *rand.Rand
}

// NewGame seats numPlayers players around the given tiles.
func NewGame(numPlayers int, tiles [][]Tile, rules Rules, seed uint64) (*Game, error) {
	if numPlayers < 2 {
		return nil, fmt.Errorf("need at least two players, got %d", numPlayers)
	}
	board, err := NewBoard(tiles)
	if err != nil {
		return nil, err
	}
	if rules == nil {
		rules = NewStandardRules()
	}
	rng := rand.New(rand.NewSource(seed))
	g := &Game{
		Board:   board,
		Players: make([]*Player, numPlayers),
		Rules:   rules,
		Pile:    NewPile(rng),
		rng:     rng,
	}
	for i := range g.Players {
		g.Players[i] = NewPlayer(i, rules.StartingStock())
	}
	g.Records = NewRecords(g.Pile.Len())
	return g, nil
}

// NewRandomGame deals a random board from seed.
func NewRandomGame(numPlayers int, rules Rules, seed uint64) (*Game, error) {
	tiles := RandomTiles(rand.New(rand.NewSource(seed ^ 0x9e3779b97f4a7c15)))
	return NewGame(numPlayers, tiles, rules, seed)
}

func (g *Game) Rand() *rand.Rand {
	return g.rng
}

func (g *Game) Player(id int) (*Player, error) {
	if id < 0 || id >= len(g.Players) {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchPlayer, id)
	}
	return g.Players[id], nil
}

// Next returns the seat after id.
func (g *Game) Next(id int) int {
	return (id + 1) % len(g.Players)
}

// LegalActions enumerates the actions available to player id.
func (g *Game) LegalActions(id int) []Action {
	return LegalActions(g.Players[id], g.Board, g.Records)
}

// CheckInvariants validates every ledger.
func (g *Game) CheckInvariants() error {
	for _, p := range g.Players {
		if err := p.CheckInvariants(); err != nil {
			return err
		}
	}
	return nil
}

// EndTurn closes the turn for every player.
func (g *Game) EndTurn() {
	for _, p := range g.Players {
		p.EndTurn()
	}
}

// Winner returns the first player at or above the winning score, or
// NoPlayer.
func (g *Game) Winner() int {
	for _, p := range g.Players {
		if VictoryPoints(p, g.Board, g.Records) >= g.Rules.WinningPoints() {
			return p.ID
		}
	}
	return NoPlayer
}

// CopyWithSeed deep copies the game with an independent random source.
func (g *Game) CopyWithSeed(seed uint64) *Game {
	c := &Game{
		Board:   g.Board.Copy(),
		Players: make([]*Player, len(g.Players)),
		Records: g.Records,
		Pile:    g.Pile.Copy(),
		Rules:   g.Rules,
		Round:   g.Round,
		Current: g.Current,
		rng:     rand.New(rand.NewSource(seed)),
	}
	for i, p := range g.Players {
		c.Players[i] = p.Copy()
	}
	return c
}

// Copy deep copies the game. The copy's random source is seeded from the
// state hash so copying never advances the original's source.
func (g *Game) Copy() *Game {
	return g.CopyWithSeed(uint64(g.Hash()))
}

type StateHash uint64

func (g *Game) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(g.Current))
	binary.Write(hasher, binary.LittleEndian, int64(g.Round))

	// Roads and buildings
	for i := range g.Board.Positions {
		p := &g.Board.Positions[i]
		for _, owner := range p.Roads {
			binary.Write(hasher, binary.LittleEndian, int8(owner))
		}
		binary.Write(hasher, binary.LittleEndian, int8(p.Building.Owner))
		binary.Write(hasher, binary.LittleEndian, int8(p.Building.Kind))
	}

	for i := range g.Board.Tiles {
		if g.Board.Tiles[i].Robber {
			binary.Write(hasher, binary.LittleEndian, int64(i))
		}
	}

	// Ledgers
	for _, p := range g.Players {
		for _, n := range p.Resources {
			binary.Write(hasher, binary.LittleEndian, int64(n))
		}
		binary.Write(hasher, binary.LittleEndian, int64(p.Roads))
		binary.Write(hasher, binary.LittleEndian, int64(p.Settlements))
		binary.Write(hasher, binary.LittleEndian, int64(p.Cities))
		for kind := range p.DevCards {
			binary.Write(hasher, binary.LittleEndian, int64(p.DevCards[kind]))
			binary.Write(hasher, binary.LittleEndian, int64(p.NewDevCards[kind]))
		}
		binary.Write(hasher, binary.LittleEndian, int64(p.KnightsPlayed))
		binary.Write(hasher, binary.LittleEndian, int64(p.LongestRoad))
		binary.Write(hasher, binary.LittleEndian, uint8(p.Ports))
	}

	binary.Write(hasher, binary.LittleEndian, int64(g.Records.LongestRoadHolder))
	binary.Write(hasher, binary.LittleEndian, int64(g.Records.LongestRoadLength))
	binary.Write(hasher, binary.LittleEndian, int64(g.Records.LargestArmyHolder))
	binary.Write(hasher, binary.LittleEndian, int64(g.Records.LargestArmySize))
	binary.Write(hasher, binary.LittleEndian, int64(g.Pile.Len()))

	return StateHash(hasher.Sum64())
}
