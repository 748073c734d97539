package bench

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/IlikeChooros/go-connect4/pkg/board"
	"github.com/IlikeChooros/go-connect4/pkg/game"
	"github.com/IlikeChooros/go-connect4/pkg/gamelog"
	"github.com/IlikeChooros/go-connect4/pkg/mcts"
)

/*
Arena benchmark subpackage, plays a series of connect four games between
two agents. Every worker owns its own pair of agents, the agents swap
who moves first at random for each game.
*/

var (
	ErrArenaSetup  = errors.New("invalid arena setup")
	ErrIllegalMove = errors.New("agent played an illegal move")
)

// Persists finished games, implemented by gamelog.Repository
type Recorder interface {
	InsertGames([]gamelog.Record) error
}

type contextSetter interface {
	SetContext(context.Context)
}

type VersusArena struct {
	VersusArenaStats
	Player1  AgentFactory
	Player2  AgentFactory
	NGames   int
	NWorkers int
	Start    board.Board
	ToMove   board.Player

	recorder Recorder
	records  []gamelog.Record
	p1Name   string
	p2Name   string
	mu       sync.Mutex
	logger   zerolog.Logger
	ctx      context.Context
}

func NewVersusArena(p1, p2 AgentFactory) *VersusArena {
	return &VersusArena{
		Player1:  p1,
		Player2:  p2,
		NGames:   100,
		NWorkers: 2,
		ToMove:   board.X,
		logger:   log.Logger,
		ctx:      context.Background(),
	}
}

func (va *VersusArena) WithContext(ctx context.Context) *VersusArena {
	va.ctx = ctx
	return va
}

// Every finished game will be saved with the recorder after the run
func (va *VersusArena) WithRecorder(recorder Recorder) *VersusArena {
	va.recorder = recorder
	return va
}

func (va *VersusArena) WithLogger(logger zerolog.Logger) *VersusArena {
	va.logger = logger
	return va
}

// Play all games from given position instead of the empty board
func (va *VersusArena) WithStart(b board.Board, toMove board.Player) *VersusArena {
	va.Start = b
	va.ToMove = toMove
	return va
}

func (va *VersusArena) Setup(nGames, nWorkers int) {
	va.NGames = nGames
	va.NWorkers = nWorkers
}

// Finished games of the last run
func (va *VersusArena) Records() []gamelog.Record {
	va.mu.Lock()
	defer va.mu.Unlock()
	return append([]gamelog.Record(nil), va.records...)
}

func (va *VersusArena) validate() error {
	switch {
	case va.Player1 == nil || va.Player2 == nil:
		return fmt.Errorf("%w: missing agent", ErrArenaSetup)
	case va.NGames < 0 || va.NWorkers < 1:
		return fmt.Errorf("%w: %d games on %d workers", ErrArenaSetup, va.NGames, va.NWorkers)
	case va.ToMove != board.X && va.ToMove != board.O:
		return fmt.Errorf("%w: %w", ErrArenaSetup, board.ErrInvalidPlayer)
	case !va.Start.Valid() || va.Start.Full() || board.Winner(va.Start) != board.None:
		return fmt.Errorf("%w: start position is not playable", ErrArenaSetup)
	}
	return nil
}

// Play all the games, blocks until every worker is done or the context
// is cancelled. Games interrupted by the context are not counted.
func (va *VersusArena) Run(listener ListenerLike) (VersusSummaryInfo, error) {
	if listener == nil {
		listener = DefaultListener{}
	}
	if err := va.validate(); err != nil {
		return VersusSummaryInfo{}, err
	}

	va.VersusArenaStats = VersusArenaStats{}
	va.records = va.records[:0]
	va.p1Name, va.p2Name = va.Player1().Name(), va.Player2().Name()

	group, ctx := errgroup.WithContext(va.ctx)

	// Equally distributed work between the workers
	nGames := va.NGames / va.NWorkers
	rest := va.NGames % va.NWorkers
	for i := 0; i < va.NWorkers; i++ {
		delta := 0
		if rest > 0 {
			delta = 1
			rest--
		}

		id, n := i, nGames+delta
		group.Go(func() error {
			return va.worker(ctx, id, n, listener)
		})
	}

	err := group.Wait()
	if err == nil {
		err = va.ctx.Err()
	}

	summary := va.summary()
	listener.Summary(summary)

	if va.recorder != nil && len(va.records) > 0 {
		if rerr := va.recorder.InsertGames(va.Records()); rerr != nil {
			err = errors.Join(err, fmt.Errorf("record games: %w", rerr))
		}
	}

	va.logger.Info().
		Int("games", summary.TotalGames).
		Str("p1", summary.P1Name).
		Int("p1_wins", summary.P1Wins).
		Str("p2", summary.P2Name).
		Int("p2_wins", summary.P2Wins).
		Int("draws", summary.Draws).
		Msg("arena finished")
	return summary, err
}

func (va *VersusArena) summary() VersusSummaryInfo {
	return VersusSummaryInfo{
		TotalGames:       va.Total(),
		P1Wins:           va.P1Wins(),
		P2Wins:           va.P2Wins(),
		Draws:            va.Draws(),
		FirstToMoveWins:  va.FirstToMoveWins(),
		SecondToMoveWins: va.SecondToMoveWins(),
		Workers:          va.NWorkers,
		P1Name:           va.p1Name,
		P2Name:           va.p2Name,
	}
}

func (va *VersusArena) worker(ctx context.Context, id, nGames int, listener ListenerLike) error {
	r := rand.New(rand.NewSource(mcts.SeedGeneratorFn() + uint64(id)))
	p1, p2 := va.Player1(), va.Player2()
	for _, agent := range []Agent{p1, p2} {
		if setter, ok := agent.(contextSetter); ok {
			setter.SetContext(ctx)
		}
	}

	local := VersusArenaStats{}
	info := VersusWorkerInfo{
		WorkerID: id,
		NGames:   nGames,
		P1Name:   p1.Name(),
		P2Name:   p2.Name(),
	}

	for i := 0; i < nGames; i++ {
		info.FinishedGames = i
		info.P1WentFirst = r.Intn(2) == 0

		g, err := va.playGame(ctx, p1, p2, &info, listener)
		if err != nil {
			return fmt.Errorf("worker %d, game %d: %w", id, i, err)
		}
		if !g.Over() {
			// interrupted
			break
		}

		outcome := computeOutcome(g)
		va.add(outcome, info.P1WentFirst)
		local.add(outcome, info.P1WentFirst)
		va.record(g, p1, p2, info.P1WentFirst)

		info.Outcome = outcome
		info.FinishedGames = i + 1
		info.P1Wins = local.P1Wins()
		info.P2Wins = local.P2Wins()
		info.Draws = local.Draws()
		info.FirstToMoveWins = local.FirstToMoveWins()
		info.SecondToMoveWins = local.SecondToMoveWins()
		listener.OnFinishedGame(info)
	}

	listener.OnFinishedWork(info)
	return nil
}

// Play a single game, returns unfinished game when the context is cancelled
func (va *VersusArena) playGame(ctx context.Context, p1, p2 Agent, info *VersusWorkerInfo, listener ListenerLike) (*game.Game, error) {
	g := game.FromBoard(va.Start, va.ToMove)
	g.SetReporter(mcts.LogReporter(va.logger))

	first, second := p1, p2
	if !info.P1WentFirst {
		first, second = p2, p1
	}

	info.Moves = nil
	info.GameMoveNum = 0
	info.Board = g.Board()
	for !g.Over() {
		if ctx.Err() != nil {
			return g, nil
		}

		agent := first
		if g.Turn() != g.First() {
			agent = second
		}

		col, err := agent.SelectMove(g.Board(), g.Turn())
		if err != nil {
			return g, fmt.Errorf("%s: %w", agent.Name(), err)
		}
		if ctx.Err() != nil {
			return g, nil
		}
		if err := g.Play(col); err != nil {
			return g, fmt.Errorf("%s column %d: %w: %w", agent.Name(), col, ErrIllegalMove, err)
		}

		info.Moves = g.Moves()
		info.GameMoveNum = len(info.Moves)
		info.Board = g.Board()
		listener.OnMoveMade(*info)
	}
	return g, nil
}

func (va *VersusArena) record(g *game.Game, p1, p2 Agent, p1WentFirst bool) {
	playerX, playerO := p1.Name(), p2.Name()
	// first agent plays the starting side
	if p1WentFirst != (va.ToMove == board.X) {
		playerX, playerO = playerO, playerX
	}

	rec := gamelog.FromGame(g, va.Start.Notation(va.ToMove), playerX, playerO)
	va.mu.Lock()
	va.records = append(va.records, rec)
	va.mu.Unlock()
}
