package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	Episodes     int
	Cutoff       int
	Candidates   int // root actions searched
	FullPlayouts int // rollouts that reached a winner before the cutoff
}

type MoveMetric struct {
	Step   int
	Round  int
	Player int
	Kind   string
	SearchMetric
}

type GameMetric struct {
	ID             string
	Policies       []string
	StartingPlayer int
	Winner         int // -1 when the round cap stopped the game
	Points         []int
	Rounds         int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(goroutines, cutoff, candidates int)
	AddFullPlayout()
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	cutoff       int
	candidates   int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, cutoff, candidates int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.cutoff = cutoff
	m.candidates = candidates
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Cutoff:       m.cutoff,
		Candidates:   m.candidates,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, cutoff, candidates int) {}
func (m *dummyCollector) AddFullPlayout()                          {}
func (m *dummyCollector) AddEpisode()                              {}
func (m *dummyCollector) Complete() SearchMetric                   { return SearchMetric{} }
