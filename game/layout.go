package game

// Board shape. Tile rows grow from 3 to 5 and shrink back; vertex rows
// follow from the tiles they border.
var (
	tileRowSizes   = [...]int{3, 4, 5, 4, 3}
	vertexRowSizes = [...]int{7, 9, 11, 11, 9, 7}
)

const (
	NumTileRows   = len(tileRowSizes)
	NumVertexRows = len(vertexRowSizes)
	NumTiles      = 19
	NumPositions  = 54
	NumEdges      = 72
)

// primaryTileRow maps a vertex row to the first tile row it borders.
// Inner vertex rows also border secondaryTileRow.
var (
	primaryTileRow   = [...]int{0, 1, 2, 2, 3, 4}
	secondaryTileRow = map[int]int{1: 0, 2: 1, 3: 3, 4: 4}
)

var portLayout = map[Coord]Port{
	{0, 2}: AnyPort, {0, 3}: AnyPort,
	{0, 5}: AnyPort, {0, 6}: AnyPort,
	{2, 0}: AnyPort, {3, 0}: AnyPort,
	{5, 5}: AnyPort, {5, 6}: AnyPort,
	{1, 0}: SheepPort, {1, 1}: SheepPort,
	{1, 8}: MudPort, {2, 9}: MudPort,
	{3, 9}: TreePort, {4, 8}: TreePort,
	{4, 0}: RockPort, {4, 1}: RockPort,
	{5, 2}: WheatPort, {5, 3}: WheatPort,
}

// adjacentTileCoords lists the tiles touching vertex (r, c).
func adjacentTileCoords(r, c int) []Coord {
	size := vertexRowSizes[r]
	var out []Coord
	if c > 0 {
		out = append(out, Coord{primaryTileRow[r], (c - 1) / 2})
	}
	if c%2 == 0 && c < size-1 {
		out = append(out, Coord{primaryTileRow[r], c / 2})
	}
	if other, ok := secondaryTileRow[r]; ok && c > 0 && c < size-1 {
		if c > 1 {
			out = append(out, Coord{other, (c - 2) / 2})
		}
		if (c-1)%2 == 0 && c < size-2 {
			out = append(out, Coord{other, (c - 1) / 2})
		}
	}
	return out
}

// verticalNeighbor returns the vertex linked to (r, c) across rows and the
// direction of that link, or ok=false when the vertex has no vertical road.
func verticalNeighbor(r, c int) (Coord, Direction, bool) {
	switch {
	case r < 2 && c%2 == 0:
		return Coord{r + 1, c + 1}, Down, true
	case r == 2 && c%2 == 0:
		return Coord{3, c}, Down, true
	case r > 3 && c%2 == 0:
		return Coord{r - 1, c + 1}, Up, true
	}
	return Coord{}, 0, false
}
