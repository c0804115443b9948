package game

type edgeKey struct {
	a, b int
}

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// roadGraph is one player's road network as vertex adjacency.
type roadGraph map[int][]int

func (g roadGraph) addEdge(a, b int) {
	for _, n := range g[a] {
		if n == b {
			return
		}
	}
	g[a] = append(g[a], b)
	g[b] = append(g[b], a)
}

func roadGraphOf(b *Board, player int) roadGraph {
	g := roadGraph{}
	for i := range b.Positions {
		p := &b.Positions[i]
		for d, owner := range p.Roads {
			if owner == player && p.Neighbors[d] != None {
				g.addEdge(i, p.Neighbors[d])
			}
		}
	}
	return g
}

// longestTrail is the most edges a single walk can cover without reusing
// an edge. Vertices may repeat.
func (g roadGraph) longestTrail() int {
	best := 0
	used := make(map[edgeKey]bool)
	var walk func(v, length int)
	walk = func(v, length int) {
		if length > best {
			best = length
		}
		for _, n := range g[v] {
			k := newEdgeKey(v, n)
			if used[k] {
				continue
			}
			used[k] = true
			walk(n, length+1)
			used[k] = false
		}
	}
	for v := range g {
		walk(v, 0)
	}
	return best
}

// LongestRoad measures player's longest continuous road.
func LongestRoad(b *Board, player int) int {
	return roadGraphOf(b, player).longestTrail()
}
