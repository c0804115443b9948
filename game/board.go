package game

import (
	"fmt"
)

// Board is the vertex/edge graph over the hex tiles. Positions and tiles
// live in flat arenas and refer to each other by index.
type Board struct {
	Positions []Position
	Tiles     []Tile

	vertexStart [NumVertexRows]int
	tileStart   [NumTileRows]int
}

// NewBoard wires the fixed board topology around the given tile rows.
func NewBoard(tiles [][]Tile) (*Board, error) {
	if len(tiles) != NumTileRows {
		return nil, fmt.Errorf("%w: got %d rows", ErrBoardShape, len(tiles))
	}
	robbers := 0
	for r, row := range tiles {
		if len(row) != tileRowSizes[r] {
			return nil, fmt.Errorf("%w: row %d has %d tiles", ErrBoardShape, r, len(row))
		}
		for _, t := range row {
			if t.Robber {
				robbers++
			}
		}
	}
	if robbers > 1 {
		return nil, fmt.Errorf("%w: %d tiles hold it", ErrRobberCount, robbers)
	}

	b := &Board{
		Positions: make([]Position, 0, NumPositions),
		Tiles:     make([]Tile, 0, NumTiles),
	}
	for r, row := range tiles {
		b.tileStart[r] = len(b.Tiles)
		for c, t := range row {
			t.Coord = Coord{r, c}
			t.Occupants = append([]int(nil), t.Occupants...)
			b.Tiles = append(b.Tiles, t)
		}
	}

	for r, size := range vertexRowSizes {
		b.vertexStart[r] = len(b.Positions)
		for c := 0; c < size; c++ {
			p := Position{
				Coord:     Coord{r, c},
				Neighbors: [NumDirections]int{None, None, None, None},
				Roads:     [NumDirections]int{NoPlayer, NoPlayer, NoPlayer, NoPlayer},
				Building:  Building{Owner: NoPlayer, Kind: Empty},
				Port:      NoPort,
			}
			for _, tc := range adjacentTileCoords(r, c) {
				p.Tiles = append(p.Tiles, b.tileIndex(tc))
			}
			if port, ok := portLayout[p.Coord]; ok {
				p.Port = port
			}
			b.Positions = append(b.Positions, p)
		}
	}

	for r, size := range vertexRowSizes {
		for c := 0; c < size; c++ {
			if c+1 < size {
				b.link(Coord{r, c}, Coord{r, c + 1}, Right)
			}
			if other, d, ok := verticalNeighbor(r, c); ok {
				b.link(Coord{r, c}, other, d)
			}
		}
	}
	return b, nil
}

func (b *Board) link(from, to Coord, d Direction) {
	i, j := b.vertexIndex(from), b.vertexIndex(to)
	b.Positions[i].Neighbors[d] = j
	b.Positions[j].Neighbors[d.Opposite()] = i
}

func (b *Board) vertexIndex(c Coord) int {
	return b.vertexStart[c.Row] + c.Col
}

func (b *Board) tileIndex(c Coord) int {
	return b.tileStart[c.Row] + c.Col
}

// PositionIndex resolves a coordinate to its arena index.
func (b *Board) PositionIndex(c Coord) (int, error) {
	if c.Row < 0 || c.Row >= NumVertexRows || c.Col < 0 || c.Col >= vertexRowSizes[c.Row] {
		return 0, fmt.Errorf("%w: position %v", ErrOutOfRange, c)
	}
	return b.vertexIndex(c), nil
}

// Position returns the vertex at c.
func (b *Board) Position(c Coord) (*Position, error) {
	i, err := b.PositionIndex(c)
	if err != nil {
		return nil, err
	}
	return &b.Positions[i], nil
}

// TileIndex resolves a tile coordinate to its arena index.
func (b *Board) TileIndex(c Coord) (int, error) {
	if c.Row < 0 || c.Row >= NumTileRows || c.Col < 0 || c.Col >= tileRowSizes[c.Row] {
		return 0, fmt.Errorf("%w: tile %v", ErrOutOfRange, c)
	}
	return b.tileIndex(c), nil
}

// Tile returns the tile at c.
func (b *Board) Tile(c Coord) (*Tile, error) {
	i, err := b.TileIndex(c)
	if err != nil {
		return nil, err
	}
	return &b.Tiles[i], nil
}

// Neighbor returns the position linked to p in direction d, or nil.
func (b *Board) Neighbor(p *Position, d Direction) *Position {
	n := p.Neighbors[d]
	if n == None {
		return nil
	}
	return &b.Positions[n]
}

// PositionsOwnedBy returns the positions where player has a building.
func (b *Board) PositionsOwnedBy(player int) []*Position {
	var out []*Position
	for i := range b.Positions {
		p := &b.Positions[i]
		if !p.Building.Empty() && p.Building.Owner == player {
			out = append(out, p)
		}
	}
	return out
}

// Robber returns the tile holding the robber, or nil before it is placed.
func (b *Board) Robber() *Tile {
	for i := range b.Tiles {
		if b.Tiles[i].Robber {
			return &b.Tiles[i]
		}
	}
	return nil
}

// CanSettle reports whether c and all its neighbors are free of buildings.
func (b *Board) CanSettle(c Coord) bool {
	p, err := b.Position(c)
	if err != nil || !p.Building.Empty() {
		return false
	}
	for _, n := range p.Neighbors {
		if n != None && !b.Positions[n].Building.Empty() {
			return false
		}
	}
	return true
}

// SettlementSpots lists every coordinate that passes the spacing rule.
func (b *Board) SettlementSpots() []Coord {
	var out []Coord
	for i := range b.Positions {
		if b.CanSettle(b.Positions[i].Coord) {
			out = append(out, b.Positions[i].Coord)
		}
	}
	return out
}

// RoadSlot names one physical edge from one of its endpoints.
type RoadSlot struct {
	At  Coord
	Dir Direction
}

func (s RoadSlot) String() string {
	return fmt.Sprintf("%v->%v", s.At, s.Dir)
}

// Canonical names the edge from the endpoint that sees it as Right or Down.
func (b *Board) Canonical(s RoadSlot) RoadSlot {
	if s.Dir == Right || s.Dir == Down {
		return s
	}
	p, err := b.Position(s.At)
	if err != nil || p.Neighbors[s.Dir] == None {
		return s
	}
	return RoadSlot{At: b.Positions[p.Neighbors[s.Dir]].Coord, Dir: s.Dir.Opposite()}
}

// RoadOptions lists every open edge touching a position where player
// already has a road. Each edge is listed once.
func (b *Board) RoadOptions(player int) []RoadSlot {
	seen := make(map[RoadSlot]bool)
	var out []RoadSlot
	for i := range b.Positions {
		p := &b.Positions[i]
		if !p.HasRoad(player) {
			continue
		}
		for d := Direction(0); d < NumDirections; d++ {
			if !p.OpenSlot(d) {
				continue
			}
			slot := b.Canonical(RoadSlot{At: p.Coord, Dir: d})
			if seen[slot] {
				continue
			}
			seen[slot] = true
			out = append(out, slot)
		}
	}
	return out
}

// RobberTarget is a tile the robber may move to and the player it robs.
type RobberTarget struct {
	Tile   Coord
	Victim int
}

// KnightOptions pairs every non-desert tile without the robber with each
// other player touching it. An unoccupied tile pairs with NoPlayer; a tile
// touched only by player is not offered.
func (b *Board) KnightOptions(player int) []RobberTarget {
	var out []RobberTarget
	for i := range b.Tiles {
		t := &b.Tiles[i]
		if t.Robber || t.Resource == Desert {
			continue
		}
		if len(t.Occupants) == 0 {
			out = append(out, RobberTarget{Tile: t.Coord, Victim: NoPlayer})
			continue
		}
		for _, o := range t.Occupants {
			if o != player {
				out = append(out, RobberTarget{Tile: t.Coord, Victim: o})
			}
		}
	}
	return out
}

// BuildRoad sets the road slot at c in direction d and its mirror on the
// neighbor.
func (b *Board) BuildRoad(c Coord, d Direction, player int) error {
	p, err := b.Position(c)
	if err != nil {
		return err
	}
	if d < 0 || d >= NumDirections {
		return fmt.Errorf("%w: direction %d", ErrInvalidAction, d)
	}
	if !p.OpenSlot(d) {
		return fmt.Errorf("%w: no open road slot at %v %v", ErrInvalidAction, c, d)
	}
	n := &b.Positions[p.Neighbors[d]]
	p.Roads[d] = player
	n.Roads[d.Opposite()] = player
	return nil
}

// PlaceSettlement puts a settlement for player at c, registers the player
// on the adjacent tiles and returns the position's port.
func (b *Board) PlaceSettlement(c Coord, player int) (Port, error) {
	if !b.CanSettle(c) {
		return NoPort, fmt.Errorf("%w: cannot settle at %v", ErrInvalidAction, c)
	}
	p, _ := b.Position(c)
	p.Building = Building{Owner: player, Kind: Settlement}
	for _, t := range p.Tiles {
		b.Tiles[t].addOccupant(player)
	}
	return p.Port, nil
}

// UpgradeToCity turns player's settlement at c into a city.
func (b *Board) UpgradeToCity(c Coord, player int) error {
	p, err := b.Position(c)
	if err != nil {
		return err
	}
	if p.Building.Kind != Settlement || p.Building.Owner != player {
		return fmt.Errorf("%w: no settlement of player %d at %v", ErrInvalidAction, player, c)
	}
	p.Building.Kind = City
	return nil
}

// MoveRobber moves the robber to the tile at c.
func (b *Board) MoveRobber(c Coord) error {
	t, err := b.Tile(c)
	if err != nil {
		return err
	}
	if t.Robber {
		return fmt.Errorf("%w: robber already on %v", ErrInvalidAction, c)
	}
	if old := b.Robber(); old != nil {
		old.Robber = false
	}
	t.Robber = true
	return nil
}

// Copy returns an independent board. Tile adjacency lists are immutable
// and shared.
func (b *Board) Copy() *Board {
	c := &Board{
		Positions:   make([]Position, len(b.Positions)),
		Tiles:       make([]Tile, len(b.Tiles)),
		vertexStart: b.vertexStart,
		tileStart:   b.tileStart,
	}
	copy(c.Positions, b.Positions)
	copy(c.Tiles, b.Tiles)
	for i := range c.Tiles {
		c.Tiles[i].Occupants = append([]int(nil), b.Tiles[i].Occupants...)
	}
	return c
}
