package engine

import (
	"fmt"
	"time"

	"catan/agent"
	"catan/experiments/metrics"
	"catan/experiments/trace"
	"catan/game"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

type Option func(e *LocalEngine)

func WithSeed(seed uint64) Option {
	return func(e *LocalEngine) {
		e.seed = seed
	}
}

func WithMaxRounds(rounds int) Option {
	return func(e *LocalEngine) {
		if rounds > 0 {
			e.maxRounds = rounds
		}
	}
}

func WithMaxActionsPerTurn(actions int) Option {
	return func(e *LocalEngine) {
		if actions > 0 {
			e.maxActions = actions
		}
	}
}

func WithRules(rules game.Rules) Option {
	return func(e *LocalEngine) {
		if rules != nil {
			e.rules = rules
		}
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(e *LocalEngine) {
		e.recorder = recorder
	}
}

func WithGameID(id string) Option {
	return func(e *LocalEngine) {
		if id != "" {
			e.id = id
		}
	}
}

// LocalEngine drives one game between in-process policies. Seat i is
// played by policies[i].
type LocalEngine struct {
	Game     *game.Game
	policies []agent.Policy

	id         string
	seed       uint64
	maxRounds  int
	maxActions int
	rules      game.Rules
	recorder   Recorder

	step        int
	moveMetrics []metrics.MoveMetric
}

func NewLocalEngine(policies []agent.Policy, options ...Option) *LocalEngine {
	if len(policies) < 2 {
		panic("need at least two players")
	}

	e := &LocalEngine{ // Default values
		policies:   policies,
		id:         uuid.NewString(),
		maxRounds:  MaxRounds,
		maxActions: MaxActionsPerTurn,
		rules:      game.NewStandardRules(),
	}
	for _, option := range options {
		option(e)
	}

	g, err := game.NewRandomGame(len(policies), e.rules, e.seed)
	if err != nil {
		panic(fmt.Sprintf("creating game: %v", err))
	}
	g.Current = g.Rand().Intn(len(policies))
	e.Game = g
	return e
}

func (e *LocalEngine) ID() string {
	return e.id
}

// Run plays setup and then full rounds until a player reaches the winning
// score or the round cap stops the game.
func (e *LocalEngine) Run() (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	g := e.Game
	gameMetric := metrics.GameMetric{
		ID:             e.id,
		StartingPlayer: g.Current,
		Winner:         game.NoPlayer,
		StartTime:      time.Now(),
	}
	for _, p := range e.policies {
		gameMetric.Policies = append(gameMetric.Policies, p.Name())
	}

	log.Info().Str("game", e.id).Msgf("player %d is starting", g.Current)

	err := e.play()
	winner := g.Winner()
	if err == nil && winner == game.NoPlayer {
		log.Warn().Str("game", e.id).Msgf("stopped after %d rounds without a winner", e.maxRounds)
	}

	gameMetric.Winner = winner
	gameMetric.Rounds = g.Round
	gameMetric.TotalMoves = e.step
	for _, p := range g.Players {
		gameMetric.Points = append(gameMetric.Points, game.VictoryPoints(p, g.Board, g.Records))
	}
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)

	if err != nil {
		return winner, gameMetric, e.moveMetrics, fmt.Errorf("game %s: %w", e.id, err)
	}
	if winner != game.NoPlayer {
		log.Info().Str("game", e.id).Int("rounds", g.Round).Msgf("player %d (%s) won", winner, e.policies[winner].Name())
	}
	return winner, gameMetric, e.moveMetrics, nil
}

func (e *LocalEngine) play() error {
	g := e.Game
	if err := e.setup(); err != nil {
		return err
	}

	for g.Round = 1; g.Round <= e.maxRounds; g.Round++ {
		for range g.Players {
			if err := e.turn(g.Current); err != nil {
				return err
			}
			if g.Winner() != game.NoPlayer {
				return nil
			}
			g.Current = g.Next(g.Current)
		}
	}
	g.Round = e.maxRounds
	return nil
}

// setup places two settlements and roads per player in snake order:
// forward from the starting player, then back.
func (e *LocalEngine) setup() error {
	g := e.Game
	n := len(g.Players)
	order := make([]int, 0, 2*n)
	for i := 0; i < n; i++ {
		order = append(order, (g.Current+i)%n)
	}
	for i := n - 1; i >= 0; i-- {
		order = append(order, order[i])
	}

	for i, id := range order {
		second := i >= n
		spot, dir := e.policies[id].ChooseSettlement(g, id, second)
		if !slices.Contains(g.Board.SettlementSpots(), spot) {
			return fmt.Errorf("%w: player %d cannot settle at %v", ErrIllegalMove, id, spot)
		}
		pos, err := g.Board.Position(spot)
		if err != nil {
			return err
		}
		if dir < 0 || dir >= game.NumDirections || !pos.OpenSlot(dir) {
			return fmt.Errorf("%w: player %d cannot build a road from %v toward %v", ErrIllegalMove, id, spot, dir)
		}
		if err := e.resolve(id, game.SettleInit{At: spot, Second: second}, metrics.SearchMetric{}); err != nil {
			return err
		}
		road := game.BuildRoadInit{Slot: game.RoadSlot{At: spot, Dir: dir}}
		if err := e.resolve(id, road, metrics.SearchMetric{}); err != nil {
			return err
		}
	}
	return nil
}

func (e *LocalEngine) turn(id int) error {
	g := e.Game
	policy := e.policies[id]

	roll := g.RollDice()
	e.record(trace.Event{Step: e.step, Round: g.Round, Player: id, Kind: "Roll", Roll: roll, Hash: uint64(g.Hash())})
	if roll == 7 {
		if err := e.handleSeven(id); err != nil {
			return err
		}
	} else {
		g.CollectAll(roll)
	}

	for i := 0; i < e.maxActions; i++ {
		legal := g.LegalActions(id)
		action := policy.ChooseAction(g, id, legal)
		search := e.searchMetric(id)

		switch a := action.(type) {
		case game.Pass:
			if err := e.resolve(id, a, search); err != nil {
				return err
			}
			return e.endTurn()
		case game.ProposeTrade:
			if err := e.proposeTrade(id, a); err != nil {
				return err
			}
		default:
			if !slices.Contains(legal, action) {
				return fmt.Errorf("%w: player %d chose %s", ErrIllegalMove, id, describe(action))
			}
			if err := e.resolve(id, action, search); err != nil {
				return err
			}
		}
	}
	log.Debug().Int("player", id).Msgf("turn ended after %d actions", e.maxActions)
	return e.endTurn()
}

// searchMetric reports the last search of a seat's policy, if it searches.
func (e *LocalEngine) searchMetric(id int) metrics.SearchMetric {
	if s, ok := e.policies[id].(agent.Searcher); ok {
		return s.LastSearch()
	}
	return metrics.SearchMetric{}
}

func (e *LocalEngine) endTurn() error {
	if err := e.Game.CheckInvariants(); err != nil {
		return err
	}
	e.Game.EndTurn()
	return nil
}

// handleSeven makes every player over the limit discard, then lets the
// roller move the robber.
func (e *LocalEngine) handleSeven(id int) error {
	g := e.Game
	for _, p := range g.Players {
		if err := g.HandleSevenRoll(p, e.policies[p.ID]); err != nil {
			return err
		}
	}

	options := g.Board.KnightOptions(id)
	if len(options) == 0 {
		return nil
	}
	target := e.policies[id].ChooseRobberTarget(g, id, options)
	if !slices.Contains(options, target) {
		return fmt.Errorf("%w: player %d cannot move the robber to %v", ErrIllegalMove, id, target)
	}
	return e.resolve(id, game.MoveRobber{Target: target}, metrics.SearchMetric{})
}

// resolve applies an action and records it.
func (e *LocalEngine) resolve(id int, action game.Action, search metrics.SearchMetric) error {
	g := e.Game
	if err := g.Resolve(id, action); err != nil {
		return err
	}
	e.step++
	e.moveMetrics = append(e.moveMetrics, metrics.MoveMetric{
		Step:         e.step,
		Round:        g.Round,
		Player:       id,
		Kind:         action.Kind().String(),
		SearchMetric: search,
	})
	e.record(trace.Event{
		Step:   e.step,
		Round:  g.Round,
		Player: id,
		Kind:   action.Kind().String(),
		Action: describe(action),
		Hash:   uint64(g.Hash()),
	})
	return nil
}

func (e *LocalEngine) record(event trace.Event) {
	if e.recorder == nil {
		return
	}
	if err := e.recorder.Record(event); err != nil {
		log.Warn().Err(err).Str("game", e.id).Msg("failed to record trace event")
	}
}

func describe(a game.Action) string {
	if a == nil {
		return "nil"
	}
	return game.Describe(a)
}
