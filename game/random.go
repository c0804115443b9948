package game

import "golang.org/x/exp/rand"

var (
	standardTerrain = []Resource{
		Wheat, Wheat, Wheat, Wheat,
		Tree, Tree, Tree, Tree,
		Sheep, Sheep, Sheep, Sheep,
		Mud, Mud, Mud,
		Rock, Rock, Rock,
		Desert,
	}
	standardNumbers = []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12}
)

// RandomTiles deals the standard terrain and number tokens onto the board
// shape. The desert gets no number and starts with the robber.
func RandomTiles(rng *rand.Rand) [][]Tile {
	terrain := append([]Resource(nil), standardTerrain...)
	numbers := append([]int(nil), standardNumbers...)
	rng.Shuffle(len(terrain), func(i, j int) { terrain[i], terrain[j] = terrain[j], terrain[i] })
	rng.Shuffle(len(numbers), func(i, j int) { numbers[i], numbers[j] = numbers[j], numbers[i] })

	tiles := make([][]Tile, NumTileRows)
	next := 0
	for r, size := range tileRowSizes {
		tiles[r] = make([]Tile, size)
		for c := range tiles[r] {
			res := terrain[0]
			terrain = terrain[1:]
			if res == Desert {
				tiles[r][c] = Tile{Resource: Desert, Robber: true}
				continue
			}
			tiles[r][c] = Tile{Resource: res, Number: numbers[next]}
			next++
		}
	}
	return tiles
}
