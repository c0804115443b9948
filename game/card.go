package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

type DevCard int

const (
	Knight DevCard = iota
	VictoryPoint
	RoadBuilding
	YearOfPlenty
	Monopoly
)

const NumDevCards = 5

var devCardNames = [...]string{"knight", "victory point", "road building", "year of plenty", "monopoly"}

func (c DevCard) String() string {
	if c < 0 || int(c) >= len(devCardNames) {
		return fmt.Sprintf("devcard(%d)", int(c))
	}
	return devCardNames[c]
}

// DevCards counts development cards by kind.
type DevCards [NumDevCards]int

func (d DevCards) Total() int {
	total := 0
	for _, n := range d {
		total += n
	}
	return total
}

var devCardMix = DevCards{Knight: 14, VictoryPoint: 5, RoadBuilding: 2, YearOfPlenty: 2, Monopoly: 2}

// Pile is the face-down development card deck.
type Pile struct {
	Cards []DevCard
}

// NewPile shuffles the standard 25 card deck.
func NewPile(rng *rand.Rand) *Pile {
	cards := make([]DevCard, 0, devCardMix.Total())
	for kind, n := range devCardMix {
		for i := 0; i < n; i++ {
			cards = append(cards, DevCard(kind))
		}
	}
	rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	return &Pile{Cards: cards}
}

// Draw takes the top card. ok is false when the pile is empty.
func (p *Pile) Draw() (card DevCard, ok bool) {
	if len(p.Cards) == 0 {
		return 0, false
	}
	card = p.Cards[len(p.Cards)-1]
	p.Cards = p.Cards[:len(p.Cards)-1]
	return card, true
}

func (p *Pile) Len() int {
	return len(p.Cards)
}

func (p *Pile) Copy() *Pile {
	return &Pile{Cards: append([]DevCard(nil), p.Cards...)}
}
