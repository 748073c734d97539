package mcts

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/IlikeChooros/go-connect4/pkg/board"
)

type TreeStats struct {
	cps    uint32
	cycles int
}

// Connect four move selection engine. Every search builds a fresh tree,
// nothing is kept between calls. Not safe for concurrent use.
type Engine struct {
	TreeStats
	Limiter     LimiterLike
	listener    StatsListener
	reporter    Reporter
	logger      zerolog.Logger
	rand        *rand.Rand
	threatCheck bool
	policy      BestChildPolicy
	tree        *Tree
}

type Option func(*Engine)

// Stop the search after given time
func WithMovetime(budget time.Duration) Option {
	return func(e *Engine) {
		e.Limiter.Limits().SetBudget(budget)
	}
}

// Stop the search after given number of cycles
func WithCycles(cycles uint32) Option {
	return func(e *Engine) {
		e.Limiter.Limits().SetCycles(cycles)
	}
}

func WithLimits(limits *Limits) Option {
	return func(e *Engine) {
		e.Limiter.SetLimits(limits)
	}
}

// Seed the engine's random number generator, by default uses SeedGeneratorFn
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rand = rand.New(rand.NewSource(seed))
	}
}

func WithReporter(reporter Reporter) Option {
	return func(e *Engine) {
		if reporter != nil {
			e.reporter = reporter
		}
	}
}

func WithListener(listener StatsListener) Option {
	return func(e *Engine) {
		e.listener = listener
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Before searching, play an immediate win, or block the opponent's immediate win
func WithThreatCheck(enabled bool) Option {
	return func(e *Engine) {
		e.threatCheck = enabled
	}
}

// How the final move (and the pv) is picked from the root's children,
// BestChildMostVisits by default
func WithBestChildPolicy(policy BestChildPolicy) Option {
	return func(e *Engine) {
		e.policy = policy
	}
}

// Create new engine, without options it searches until stopped
func NewEngine(options ...Option) *Engine {
	e := &Engine{
		Limiter:  NewLimiter(),
		listener: NewStatsListener(),
		logger:   log.Logger,
		rand:     rand.New(rand.NewSource(SeedGeneratorFn())),
	}

	for _, option := range options {
		option(e)
	}
	if e.reporter == nil {
		e.reporter = LogReporter(e.logger)
	}
	return e
}

// Select a column for 'toMove' within the time budget
func SelectMove(b board.Board, toMove board.Player, budget time.Duration) (int, error) {
	return NewEngine(WithMovetime(budget)).SelectMove(b, toMove)
}

// Search the position and return the chosen column
func (e *Engine) SelectMove(b board.Board, toMove board.Player) (int, error) {
	result, err := e.Search(b, toMove)
	if err != nil {
		return -1, err
	}
	return result.Column, nil
}

// Outcome of a search call
type SearchResult struct {
	ListenerTreeStats
	Column int
	// No cycle completed, the first legal move was chosen
	Fallback bool
	// Chosen by the threat check, without searching
	Forced bool
}

func (r *SearchResult) String() string {
	return fmt.Sprintf("column=%d cycles=%d time=%dms cps=%d depth=%d size=%d stop=%s pv=%v",
		r.Column, r.Cycles, r.TimeMs, r.Cps, r.Maxdepth, r.Size, r.StopReason, r.Pv)
}

// Run the search on the position, with 'toMove' as the reference player
func (e *Engine) Search(b board.Board, toMove board.Player) (*SearchResult, error) {
	if toMove != board.X && toMove != board.O {
		return nil, fmt.Errorf("search: %w", board.ErrInvalidPlayer)
	}

	e.setupSearch()
	tree := NewTree(b, toMove)
	e.tree = tree

	if len(tree.Root().Potential) == 0 || board.Winner(b) != board.None {
		e.report("search: no move available, the game is over")
		return nil, ErrNoMoveAvailable
	}

	if e.threatCheck {
		if move, ok := forcedMove(b, toMove); ok {
			e.report(fmt.Sprintf("search: forced move in column %d", move.Col))
			return &SearchResult{Column: move.Col, Forced: true}, nil
		}
	}

	if err := e.search(tree); err != nil {
		return nil, err
	}

	result := &SearchResult{ListenerTreeStats: toListenerStats(e, tree)}
	if best := tree.BestChild(tree.Root(), e.policy); best != nil {
		result.Column = best.Move.Col
	} else {
		// The budget ran out before the first cycle
		result.Column = tree.Root().Potential[0].Col
		result.Fallback = true
		e.report(fmt.Sprintf("search: budget too short, playing the first legal column %d", result.Column))
	}

	e.listener.invokeStop(e, tree)
	e.logger.Debug().
		Int("column", result.Column).
		Int("cycles", result.Cycles).
		Int("timeMs", result.TimeMs).
		Uint32("cps", result.Cps).
		Int("maxdepth", result.Maxdepth).
		Str("stop", result.StopReason.String()).
		Msg("search finished")
	return result, nil
}

// Immediate win for 'toMove', or the block of the opponent's immediate win
func forcedMove(b board.Board, toMove board.Player) (board.Move, bool) {
	if move, ok := board.WinningMove(b, toMove); ok {
		return move, true
	}
	return board.WinningMove(b, toMove.Other())
}

// Only sets the limits, resets the counters, and the stop flag
func (e *Engine) setupSearch() {
	e.Limiter.Reset()
	e.cps = 0
	e.cycles = 0
}

func (e *Engine) report(msg string) {
	if e.reporter != nil {
		e.reporter.Report(msg)
	}
}

// Tree of the last search, nil before the first one
func (e *Engine) Tree() *Tree {
	return e.tree
}

// Adds custom context to the limiter, enabling cancellation through it
func (e *Engine) SetContext(ctx context.Context) {
	e.Limiter.SetContext(ctx)
}

// Stop the search, checked between cycles
func (e *Engine) Stop() {
	e.Limiter.SetStop(true)
}

// Total number of cycles ran during the last search
func (e *Engine) Cycles() int {
	return e.cycles
}

// Get cycles per second statistic
func (e *Engine) Cps() uint32 {
	return e.cps
}

// Get the reason why the search was stopped, valid after search ends
func (e *Engine) StopReason() StopReason {
	return e.Limiter.StopReason()
}

func (e *Engine) SetLimits(limits *Limits) {
	e.Limiter.SetLimits(limits)
}

func (e *Engine) Limits() *Limits {
	return e.Limiter.Limits()
}

func (e *Engine) SetListener(listener StatsListener) {
	e.listener = listener
}

func (e *Engine) String() string {
	str := fmt.Sprintf("Engine={Stats:{cps=%d, cycles=%d}, Limits=%v", e.cps, e.cycles, e.Limits())
	if e.tree != nil {
		str += fmt.Sprintf(", Root=%v", e.tree.Root())
	}
	return str + "}"
}
