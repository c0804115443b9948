package game

import (
	"fmt"
	"sort"
)

// NoPlayer marks an unowned road slot or building, and a robber move
// without a victim.
const NoPlayer = -1

// None marks a missing neighbor in a position's direction slot.
const None = -1

type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

const NumDirections = 4

var directionNames = [...]string{"left", "right", "up", "down"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	case Down:
		return Up
	}
	panic(fmt.Sprintf("unknown direction %d", d))
}

type BuildingKind int

const (
	Empty BuildingKind = iota
	Settlement
	City
)

type Building struct {
	Owner int
	Kind  BuildingKind
}

func (b Building) Empty() bool {
	return b.Kind == Empty
}

// Position is a vertex of the board graph.
type Position struct {
	Coord     Coord
	Neighbors [NumDirections]int // arena index of the neighbor or None
	Roads     [NumDirections]int // road owner per direction or NoPlayer
	Building  Building
	Tiles     []int // arena indices of adjacent tiles, shared between copies
	Port      Port
}

// HasRoad reports whether player owns any road touching the position.
func (p *Position) HasRoad(player int) bool {
	for d := range p.Roads {
		if p.Roads[d] == player {
			return true
		}
	}
	return false
}

// RoadCount counts the road slots owned by player.
func (p *Position) RoadCount(player int) int {
	count := 0
	for d := range p.Roads {
		if p.Roads[d] == player {
			count++
		}
	}
	return count
}

// OpenSlot reports whether a road can be built in direction d.
func (p *Position) OpenSlot(d Direction) bool {
	return p.Neighbors[d] != None && p.Roads[d] == NoPlayer
}

// Tile is a hex. Occupants is the sorted set of players with a building
// on one of its corners.
type Tile struct {
	Coord     Coord
	Resource  Resource
	Number    int
	Robber    bool
	Occupants []int
}

func (t *Tile) Occupied(player int) bool {
	i := sort.SearchInts(t.Occupants, player)
	return i < len(t.Occupants) && t.Occupants[i] == player
}

func (t *Tile) addOccupant(player int) {
	i := sort.SearchInts(t.Occupants, player)
	if i < len(t.Occupants) && t.Occupants[i] == player {
		return
	}
	t.Occupants = append(t.Occupants, 0)
	copy(t.Occupants[i+1:], t.Occupants[i:])
	t.Occupants[i] = player
}

// Pips is the number of two-dice outcomes that roll the tile's number.
func (t *Tile) Pips() int {
	if t.Number == 0 || t.Resource == Desert {
		return 0
	}
	if t.Number > 7 {
		return 13 - t.Number
	}
	return t.Number - 1
}
