package searcher

import (
	"math"
	"sync"

	"catan/game"
)

// Hyperparameters for the search

const CSquared = 2.0 // Exploration constant

const Win = 1.0   // Reward for a won playout
const Loss = -Win // Reward for a lost playout, also used as virtual loss

// root holds the statistics of every candidate action of one search. The
// tree is one level deep: each episode picks a candidate and rolls out.
type root struct {
	sync.Mutex
	actions []game.Action
	rewards []float64
	visits  []int
	total   int
}

func newRoot(actions []game.Action) *root {
	return &root{
		actions: actions,
		rewards: make([]float64, len(actions)),
		visits:  make([]int, len(actions)),
	}
}

// selects picks the next candidate and applies a virtual loss to it so
// concurrent episodes spread over the other candidates.
func (r *root) selects() int {
	r.Lock()
	defer r.Unlock()

	ith := r.pickChild()
	r.rewards[ith] += Loss
	r.visits[ith]++
	r.total++
	return ith
}

func (r *root) pickChild() int {
	if r.total == 0 {
		return 0
	}

	normalizer := CSquared * math.Log(float64(r.total))

	maxIndex := 0
	maxScore := math.Inf(-1)
	for i := range r.actions {
		score := ucb1(r.rewards[i], r.visits[i], normalizer)
		if score == math.Inf(1) {
			return i
		}
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

// backup replaces the virtual loss of candidate ith with the real reward.
func (r *root) backup(ith int, reward float64) {
	r.Lock()
	defer r.Unlock()

	r.rewards[ith] += reward - Loss
}

// Visits returns a snapshot of the visit counts per candidate.
func (r *root) Visits() []int {
	r.Lock()
	defer r.Unlock()

	return append([]int(nil), r.visits...)
}

func ucb1(rewards float64, visits int, c2LnN float64) float64 {
	// Prioritize unexplored candidates
	if visits == 0 {
		return math.Inf(1)
	}

	return rewards/float64(visits) + math.Sqrt(c2LnN/float64(visits))
}

// findMax returns the index of the largest count, preferring the earliest.
func findMax(counts []int) int {
	best := 0
	for i, c := range counts {
		if c > counts[best] {
			best = i
		}
	}
	return best
}
