package engine

import (
	"errors"

	"catan/experiments/metrics"
	"catan/experiments/trace"
)

const (
	MaxRounds         = 500
	MaxActionsPerTurn = 50
)

// ErrIllegalMove is returned when a policy picks something outside the
// options it was offered.
var ErrIllegalMove = errors.New("illegal move")

type Engine interface {
	// Run plays a game till there's a winner or the round cap is reached
	Run() (winner int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

// Recorder receives every roll and resolved action in order.
type Recorder interface {
	Record(trace.Event) error
}
