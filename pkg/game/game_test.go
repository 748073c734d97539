package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IlikeChooros/go-connect4/pkg/board"
	"github.com/IlikeChooros/go-connect4/pkg/mcts"
)

func newTestGame() (*Game, *[]string) {
	messages := make([]string, 0)
	g := New()
	g.SetReporter(mcts.ReporterFunc(func(msg string) {
		messages = append(messages, msg)
	}))
	return g, &messages
}

func TestPlay(t *testing.T) {
	g, messages := newTestGame()

	require.NoError(t, g.Play(3))
	require.NoError(t, g.Play(3))
	require.Equal(t, board.X, g.Turn())
	require.Equal(t, board.X, g.Board().At(3, 0))
	require.Equal(t, board.O, g.Board().At(3, 1))
	require.Equal(t, "33", g.ColumnString())

	last, ok := g.LastMove()
	require.True(t, ok)
	require.Equal(t, board.Move{Col: 3, Row: 1}, last)
	require.Empty(t, *messages)
}

func TestPlayInvalid(t *testing.T) {
	g, messages := newTestGame()
	for i := 0; i < board.Rows; i++ {
		require.NoError(t, g.Play(0))
	}

	before := g.Board()
	turn := g.Turn()
	for _, col := range []int{0, -1, 7} {
		err := g.Play(col)
		require.ErrorIs(t, err, board.ErrInvalidMove)
	}

	require.Equal(t, before, g.Board(), "Should leave the board unchanged")
	require.Equal(t, turn, g.Turn(), "Should leave the turn unchanged")
	require.Len(t, *messages, 3, "Should report every invalid column")
	require.Len(t, g.Moves(), board.Rows)
}

func TestWinAndDraw(t *testing.T) {
	t.Run("win", func(t *testing.T) {
		g, messages := newTestGame()
		for _, col := range []int{0, 6, 1, 6, 2, 6, 3} {
			require.NoError(t, g.Play(col))
		}
		require.True(t, g.Over())
		require.Equal(t, board.Win, g.Outcome())
		require.Equal(t, board.X, g.Winner())

		require.ErrorIs(t, g.Play(4), ErrGameOver)
		require.Len(t, *messages, 1)

		require.True(t, g.Undo())
		require.False(t, g.Over())
		require.Equal(t, board.None, g.Winner())
		require.Equal(t, board.X, g.Turn())
	})

	t.Run("draw", func(t *testing.T) {
		b, turn, err := board.Parse("ooo1ooo/xxxoxxx/oooxooo/xxxoxxx/oooxooo/xxxoxxx x")
		require.NoError(t, err)

		g := FromBoard(b, turn)
		require.False(t, g.Over())
		require.NoError(t, g.Play(3))
		require.Equal(t, board.Draw, g.Outcome())
		require.Equal(t, board.None, g.Winner())
	})

	t.Run("finished position", func(t *testing.T) {
		b, turn, err := board.Parse("7/7/7/7/ooo4/xxxx3 o")
		require.NoError(t, err)
		g := FromBoard(b, turn)
		require.True(t, g.Over())
		require.Equal(t, board.X, g.Winner())
	})
}

func TestClone(t *testing.T) {
	g, _ := newTestGame()
	require.NoError(t, g.Play(2))

	clone := g.Clone()
	require.NoError(t, clone.Play(4))
	require.Len(t, g.Moves(), 1, "Clone should not share the history")
	require.Len(t, clone.Moves(), 2)
	require.Equal(t, board.None, g.Board().At(4, 0))
	require.False(t, g.Undo() && g.Undo())
}

func TestMovesCopy(t *testing.T) {
	g, _ := newTestGame()
	require.NoError(t, g.Play(3))
	require.NoError(t, g.Play(4))

	moves := g.Moves()
	moves[0] = board.Move{Col: 6, Row: 5}
	moves = append(moves, board.Move{Col: 0, Row: 0})

	require.Equal(t, []board.Move{{Col: 3, Row: 0}, {Col: 4, Row: 0}}, g.Moves(),
		"Changing the returned moves should not touch the game")

	require.NoError(t, g.Play(0))
	require.Len(t, moves, 3)
	require.Equal(t, board.Move{Col: 6, Row: 5}, moves[0], "Later moves should not show up in an old copy")
}
