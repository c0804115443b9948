package game

import "fmt"

// Resource is a terrain kind. The first NumResources values are producing
// resources and index a Hand; Desert only ever appears on a tile.
type Resource int

const (
	Wheat Resource = iota
	Tree
	Sheep
	Mud
	Rock
	Desert
)

const NumResources = 5

var resourceNames = [...]string{"wheat", "tree", "sheep", "mud", "rock", "desert"}

func (r Resource) String() string {
	if r < 0 || int(r) >= len(resourceNames) {
		return fmt.Sprintf("resource(%d)", int(r))
	}
	return resourceNames[r]
}

// Producing reports whether r can be held in a hand.
func (r Resource) Producing() bool {
	return r >= Wheat && r < Desert
}

// Resources returns the producing resources in index order.
func Resources() []Resource {
	return []Resource{Wheat, Tree, Sheep, Mud, Rock}
}

// Hand counts resource cards by kind.
type Hand [NumResources]int

// HandOf builds a hand holding one card per argument.
func HandOf(cards ...Resource) Hand {
	var h Hand
	for _, c := range cards {
		h[c]++
	}
	return h
}

func (h Hand) Total() int {
	total := 0
	for _, n := range h {
		total += n
	}
	return total
}

// Covers reports whether h holds at least the cards in cost.
func (h Hand) Covers(cost Hand) bool {
	for r, n := range cost {
		if h[r] < n {
			return false
		}
	}
	return true
}

func (h *Hand) Add(o Hand) {
	for r, n := range o {
		h[r] += n
	}
}

func (h *Hand) Sub(o Hand) {
	for r, n := range o {
		h[r] -= n
	}
}

func (h Hand) Negative() bool {
	for _, n := range h {
		if n < 0 {
			return true
		}
	}
	return false
}

// Cards expands the hand into a card list ordered by resource.
func (h Hand) Cards() []Resource {
	cards := make([]Resource, 0, h.Total())
	for r, n := range h {
		for i := 0; i < n; i++ {
			cards = append(cards, Resource(r))
		}
	}
	return cards
}

func (h Hand) String() string {
	return fmt.Sprintf("[wheat:%d tree:%d sheep:%d mud:%d rock:%d]", h[Wheat], h[Tree], h[Sheep], h[Mud], h[Rock])
}

// Build costs.
var (
	RoadCost       = Hand{Tree: 1, Mud: 1}
	SettlementCost = Hand{Wheat: 1, Tree: 1, Sheep: 1, Mud: 1}
	CityCost       = Hand{Wheat: 2, Rock: 3}
	DevCardCost    = Hand{Wheat: 1, Sheep: 1, Rock: 1}
)

// Port is a maritime trade discount attached to a coastal position. A
// resource port has the same value as its resource.
type Port int

const (
	WheatPort Port = Port(Wheat)
	TreePort  Port = Port(Tree)
	SheepPort Port = Port(Sheep)
	MudPort   Port = Port(Mud)
	RockPort  Port = Port(Rock)
	AnyPort   Port = 5
	NoPort    Port = -1
)

// PortFor returns the 2:1 port of a producing resource.
func PortFor(r Resource) Port {
	return Port(r)
}

func (p Port) String() string {
	switch {
	case p == AnyPort:
		return "3:1"
	case p == NoPort:
		return "none"
	case p >= WheatPort && p <= RockPort:
		return "2:1 " + Resource(p).String()
	}
	return fmt.Sprintf("port(%d)", int(p))
}

// PortSet is the set of ports a player controls.
type PortSet uint8

func (s PortSet) Has(p Port) bool {
	if p == NoPort {
		return false
	}
	return s&(1<<uint(p)) != 0
}

func (s *PortSet) Add(p Port) {
	if p == NoPort {
		return
	}
	*s |= 1 << uint(p)
}
