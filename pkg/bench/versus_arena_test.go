package bench

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/IlikeChooros/go-connect4/pkg/board"
	"github.com/IlikeChooros/go-connect4/pkg/gamelog"
	"github.com/IlikeChooros/go-connect4/pkg/mcts"
)

// Always plays the leftmost legal column. Two of them fill the columns
// one by one and the first mover connects four on the bottom row.
type leftmostAgent struct {
	name string
}

func (a leftmostAgent) Name() string {
	return a.name
}

func (a leftmostAgent) SelectMove(b board.Board, toMove board.Player) (int, error) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return -1, mcts.ErrNoMoveAvailable
	}
	return moves[0].Col, nil
}

type illegalAgent struct{}

func (illegalAgent) Name() string { return "illegal" }

func (illegalAgent) SelectMove(board.Board, board.Player) (int, error) {
	return board.Columns, nil
}

func leftmost(name string) AgentFactory {
	return func() Agent { return leftmostAgent{name: name} }
}

func random(seed uint64) AgentFactory {
	return func() Agent { return NewRandomAgent(seed) }
}

type countingListener struct {
	mu       sync.Mutex
	moves    int
	games    int
	work     int
	summary  []VersusSummaryInfo
	outcomes []GameOutcome
}

func (c *countingListener) OnMoveMade(info VersusWorkerInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.moves++
}

func (c *countingListener) OnFinishedGame(info VersusWorkerInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.games++
	c.outcomes = append(c.outcomes, info.Outcome)
}

func (c *countingListener) OnFinishedWork(info VersusWorkerInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.work++
}

func (c *countingListener) Summary(summary VersusSummaryInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summary = append(c.summary, summary)
}

type memoryRecorder struct {
	records []gamelog.Record
}

func (m *memoryRecorder) InsertGames(records []gamelog.Record) error {
	m.records = append(m.records, records...)
	return nil
}

func newArena(p1, p2 AgentFactory) *VersusArena {
	return NewVersusArena(p1, p2).WithLogger(zerolog.Nop())
}

func TestVersusArenaRandom(t *testing.T) {
	listener := &countingListener{}
	recorder := &memoryRecorder{}

	arena := newArena(random(1), random(2)).WithRecorder(recorder)
	arena.Setup(20, 3)
	summary, err := arena.Run(listener)
	require.NoError(t, err)

	require.Equal(t, 20, summary.TotalGames)
	require.Equal(t, 20, summary.P1Wins+summary.P2Wins+summary.Draws)
	require.Equal(t, summary.P1Wins+summary.P2Wins, summary.FirstToMoveWins+summary.SecondToMoveWins)
	require.Equal(t, 3, summary.Workers)
	require.Equal(t, "random", summary.P1Name)

	require.Equal(t, 20, listener.games)
	require.Equal(t, 3, listener.work, "Every worker should report its work")
	require.Len(t, listener.summary, 1)
	require.GreaterOrEqual(t, listener.moves, 20*7, "A game takes at least 7 moves")

	require.Len(t, recorder.records, 20)
	for _, rec := range recorder.records {
		require.NotEqual(t, gamelog.ResultUnfinished, rec.Result)
		require.Equal(t, "7/7/7/7/7/7 x", rec.Start)
	}
}

func TestVersusArenaFirstMoverWins(t *testing.T) {
	listener := &countingListener{}
	arena := newArena(leftmost("p1"), leftmost("p2"))
	arena.Setup(10, 2)

	summary, err := arena.Run(listener)
	require.NoError(t, err)
	require.Equal(t, 10, summary.TotalGames)
	require.Equal(t, 10, summary.FirstToMoveWins)
	require.Equal(t, 0, summary.SecondToMoveWins)
	require.Equal(t, 0, summary.Draws)
	require.Equal(t, 10, summary.P1Wins+summary.P2Wins)
	require.Equal(t, 10*19, listener.moves, "Bottom row is completed on the 19th move")

	for _, outcome := range listener.outcomes {
		require.True(t, outcome.FirstPlayerWon)
	}
}

func TestVersusArenaStartPosition(t *testing.T) {
	start, toMove, err := board.Parse("7/7/7/7/7/7 o")
	require.NoError(t, err)

	recorder := &memoryRecorder{}
	arena := newArena(leftmost("p1"), leftmost("p2")).
		WithStart(start, toMove).
		WithRecorder(recorder)
	arena.Setup(6, 1)

	_, err = arena.Run(nil)
	require.NoError(t, err)
	require.Len(t, recorder.records, 6)
	for _, rec := range recorder.records {
		require.Equal(t, board.O.String(), rec.First)
		require.Equal(t, gamelog.ResultO, rec.Result, "First mover plays o and wins")
		require.Equal(t, rec.PlayerO, rec.Winner)
		require.NotEqual(t, rec.PlayerX, rec.PlayerO)
	}
}

func TestVersusArenaRepository(t *testing.T) {
	repo, err := gamelog.Open(filepath.Join(t.TempDir(), "arena.db"))
	require.NoError(t, err)
	defer repo.Close()

	arena := newArena(leftmost("left"), random(7)).WithRecorder(repo)
	arena.Setup(4, 2)
	_, err = arena.Run(DefaultListener{})
	require.NoError(t, err)

	games, err := repo.Games(10)
	require.NoError(t, err)
	require.Len(t, games, 4)
}

func TestVersusArenaEngine(t *testing.T) {
	engine := func() Agent {
		return NewEngineAgent("mcts", mcts.WithCycles(200))
	}

	arena := newArena(engine, random(3))
	arena.Setup(2, 2)
	summary, err := arena.Run(nil)
	require.NoError(t, err)
	require.Equal(t, 2, summary.TotalGames)
	require.Equal(t, "mcts", summary.P1Name)
}

func TestVersusArenaIllegalMove(t *testing.T) {
	arena := newArena(leftmost("p1"), func() Agent { return illegalAgent{} })
	arena.Setup(4, 1)

	_, err := arena.Run(nil)
	require.ErrorIs(t, err, ErrIllegalMove)
	require.ErrorIs(t, err, board.ErrInvalidMove)
}

func TestVersusArenaCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	recorder := &memoryRecorder{}
	arena := newArena(random(1), random(2)).WithContext(ctx).WithRecorder(recorder)
	arena.Setup(10, 2)

	summary, err := arena.Run(nil)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 0, summary.TotalGames)
	require.Empty(t, recorder.records)
}

func TestVersusArenaSetup(t *testing.T) {
	arena := newArena(random(1), random(2))
	arena.Setup(10, 0)
	_, err := arena.Run(nil)
	require.ErrorIs(t, err, ErrArenaSetup)

	won, toMove, err := board.Parse("7/7/7/7/7/xxxx3 o")
	require.NoError(t, err)
	arena = newArena(random(1), random(2)).WithStart(won, toMove)
	_, err = arena.Run(nil)
	require.ErrorIs(t, err, ErrArenaSetup)
}

func TestToAgentResult(t *testing.T) {
	require.Equal(t, VersusDraw, toAgentResult(GameOutcome{IsDraw: true}, true))
	require.Equal(t, VersusPl1Win, toAgentResult(GameOutcome{FirstPlayerWon: true}, true))
	require.Equal(t, VersusPl2Win, toAgentResult(GameOutcome{FirstPlayerWon: true}, false))
	require.Equal(t, VersusPl1Win, toAgentResult(GameOutcome{FirstPlayerWon: false}, false))
	require.Equal(t, VersusPl2Win, toAgentResult(GameOutcome{FirstPlayerWon: false}, true))
}
