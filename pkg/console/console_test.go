package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/IlikeChooros/go-connect4/pkg/bench"
	"github.com/IlikeChooros/go-connect4/pkg/board"
	"github.com/IlikeChooros/go-connect4/pkg/mcts"
)

func plainRenderer() (*Renderer, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewRenderer(buf, termenv.WithProfile(termenv.Ascii)), buf
}

func TestRenderBoard(t *testing.T) {
	b, _, err := board.Parse("7/7/7/7/3o3/2xx3 o")
	require.NoError(t, err)

	r, buf := plainRenderer()
	last := board.Move{Col: 3, Row: 1}
	r.Board(b, &last)

	expected := strings.Join([]string{
		"0 1 2 3 4 5 6",
		". . . . . . .",
		". . . . . . .",
		". . . . . . .",
		". . . . . . .",
		". . . o . . .",
		". . x x . . .",
	}, "\n") + "\n"
	require.Equal(t, expected, buf.String())
}

func TestRenderBoardColors(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewRenderer(buf, termenv.WithProfile(termenv.ANSI))

	var b board.Board
	b, m, err := b.Drop(0, board.X)
	require.NoError(t, err)
	r.Board(b, &m)
	require.Contains(t, buf.String(), "\x1b[", "Should emit escape sequences")
}

func TestRenderSearchStats(t *testing.T) {
	var b board.Board
	engine := mcts.NewEngine(mcts.WithCycles(300), mcts.WithSeed(1))
	result, err := engine.Search(b, board.X)
	require.NoError(t, err)

	r, buf := plainRenderer()
	r.SearchStats(result)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, board.Columns+1)
	require.True(t, strings.HasPrefix(lines[0], "column 0: visits "))
	require.Contains(t, lines[len(lines)-1], "cycles=300")

	buf.Reset()
	r.SearchStats(&mcts.SearchResult{Column: 4, Forced: true})
	require.Equal(t, "forced move: column 4\n", buf.String())
}

func TestRenderSummary(t *testing.T) {
	r, buf := plainRenderer()
	r.Summary(bench.VersusSummaryInfo{
		TotalGames:       10,
		P1Wins:           6,
		P2Wins:           3,
		Draws:            1,
		FirstToMoveWins:  5,
		SecondToMoveWins: 4,
		Workers:          2,
		P1Name:           "mcts",
		P2Name:           "random",
	})

	require.Equal(t, "games 10, workers 2\n"+
		"mcts: 6 wins, random: 3 wins, draws 1\n"+
		"first to move won 5, second to move won 4\n", buf.String())
}

func TestArenaListener(t *testing.T) {
	r, buf := plainRenderer()
	listener := NewArenaListener(r, false)

	info := bench.VersusWorkerInfo{
		WorkerID:      1,
		NGames:        4,
		FinishedGames: 2,
		GameMoveNum:   11,
		Moves:         []board.Move{{Col: 3, Row: 0}},
		P1Wins:        1,
		P2Wins:        1,
		P1Name:        "mcts",
		P2Name:        "random",
		P1WentFirst:   false,
		Outcome:       bench.GameOutcome{FirstPlayerWon: true},
	}

	listener.OnMoveMade(info)
	require.Empty(t, buf.String(), "Moves are printed only when verbose")

	listener.OnFinishedGame(info)
	require.Equal(t, "[worker 1] game 2/4: random (p2) won in 11 moves | p1 1, p2 1, draws 0\n", buf.String())

	buf.Reset()
	info.Outcome = bench.GameOutcome{IsDraw: true}
	listener.OnFinishedGame(info)
	require.Contains(t, buf.String(), "game 2/4: draw in 11 moves")

	buf.Reset()
	listener.OnFinishedWork(info)
	require.Equal(t, "[worker 1] finished 2 games\n", buf.String())

	buf.Reset()
	NewArenaListener(r, true).OnMoveMade(info)
	require.True(t, strings.HasPrefix(buf.String(), "[worker 1] move 11: column 3\n0 1 2 3 4 5 6\n"))
}
