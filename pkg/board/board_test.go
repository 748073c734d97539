package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func mustParse(t *testing.T, notation string) (Board, Player) {
	t.Helper()
	b, turn, err := Parse(notation)
	require.NoError(t, err, "Should parse %q", notation)
	return b, turn
}

func TestLegalMoves(t *testing.T) {
	t.Run("empty board", func(t *testing.T) {
		var b Board
		moves := b.LegalMoves()
		require.Len(t, moves, Columns)
		for i, m := range moves {
			require.Equal(t, Move{Col: i, Row: 0}, m, "Should return the bottom row in column order")
		}
	})

	t.Run("lowest empty row", func(t *testing.T) {
		b, _ := mustParse(t, "7/7/7/o6/x1o4/xoxo3 x")
		moves := b.LegalMoves()
		require.Equal(t, []Move{
			{0, 3}, {1, 1}, {2, 2}, {3, 1}, {4, 0}, {5, 0}, {6, 0},
		}, moves)
	})

	t.Run("full column is skipped", func(t *testing.T) {
		b, _ := mustParse(t, "1o5/1x5/1o5/1x5/1o5/1x5 x")
		moves := b.LegalMoves()
		require.Len(t, moves, Columns-1)
		for _, m := range moves {
			require.NotEqual(t, 1, m.Col, "Should not generate a move in a full column")
		}
		_, err := b.MoveInColumn(1)
		require.ErrorIs(t, err, ErrInvalidMove)
	})

	t.Run("random boards", func(t *testing.T) {
		r := rand.New(rand.NewSource(7))
		for game := 0; game < 200; game++ {
			var b Board
			p := X
			for !b.Full() {
				moves := b.LegalMoves()
				for _, m := range moves {
					require.Equal(t, None, b[m.Col][m.Row], "Should land on an empty cell")
					if m.Row > 0 {
						require.NotEqual(t, None, b[m.Col][m.Row-1], "Should land on top of a piece")
					}
				}

				// one move per non-full column
				open := 0
				for col := 0; col < Columns; col++ {
					if b[col][Rows-1] == None {
						open++
					}
				}
				require.Len(t, moves, open)

				var err error
				b, err = b.Place(moves[r.Intn(len(moves))], p)
				require.NoError(t, err)
				require.True(t, b.Valid(), "Should keep the gravity invariant")
				p = p.Other()
			}
			require.Empty(t, b.LegalMoves())
		}
	})
}

func TestPlace(t *testing.T) {
	var empty Board

	t.Run("returns a new board", func(t *testing.T) {
		next, err := empty.Place(Move{Col: 3, Row: 0}, X)
		require.NoError(t, err)
		require.Equal(t, X, next.At(3, 0))
		require.Equal(t, None, empty.At(3, 0), "Should not modify the original board")
	})

	cases := []struct {
		name   string
		move   Move
		player Player
		err    error
	}{
		{"floating", Move{Col: 3, Row: 2}, X, ErrInvalidMove},
		{"out of range", Move{Col: 7, Row: 0}, X, ErrInvalidMove},
		{"negative", Move{Col: -1, Row: 0}, O, ErrInvalidMove},
		{"no player", Move{Col: 0, Row: 0}, None, ErrInvalidPlayer},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := empty.Place(c.move, c.player)
			require.True(t, errors.Is(err, c.err), "Should fail with %v, got %v", c.err, err)
		})
	}

	t.Run("occupied", func(t *testing.T) {
		b, _, err := empty.Drop(2, O)
		require.NoError(t, err)
		_, err = b.Place(Move{Col: 2, Row: 0}, X)
		require.ErrorIs(t, err, ErrInvalidMove)
	})

	t.Run("drop", func(t *testing.T) {
		b := empty
		for i := 0; i < Rows; i++ {
			var m Move
			var err error
			b, m, err = b.Drop(5, X)
			require.NoError(t, err)
			require.Equal(t, Move{Col: 5, Row: i}, m)
		}
		_, _, err := b.Drop(5, O)
		require.ErrorIs(t, err, ErrInvalidMove, "Should refuse a full column")
		require.Equal(t, Rows, b.Count(X))
	})
}

func TestNotation(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		notations := []string{
			"7/7/7/7/7/7 x",
			"7/7/7/7/7/ooo4 x",
			"7/7/7/2xo3/1xoo3/xoox3 o",
			"oooxooo/xxxoxxx/oooxooo/xxxoxxx/oooxooo/xxxoxxx x",
		}
		for _, n := range notations {
			b, turn := mustParse(t, n)
			require.Equal(t, n, b.Notation(turn))
		}
	})

	t.Run("rows", func(t *testing.T) {
		b, turn := mustParse(t, "7/7/7/7/1o5/xx5 o")
		require.Equal(t, O, turn)
		require.Equal(t, X, b.At(0, 0))
		require.Equal(t, X, b.At(1, 0))
		require.Equal(t, O, b.At(1, 1))
		require.Equal(t, 3, b.Count(X)+b.Count(O))
	})

	invalid := []string{
		"",
		"7/7/7/7/7/7",
		"7/7/7/7/7 x",
		"7/7/7/7/7/8 x",
		"7/7/7/7/7/xxxxxxxx x",
		"7/7/7/7/7/6 x",
		"7/7/7/7/7/7 z",
		"7/7/7/7/7/3a3 x",
		"7/7/7/7/x6/7 o",
	}
	for _, n := range invalid {
		_, _, err := Parse(n)
		require.ErrorIs(t, err, ErrInvalidNotation, "Should reject %q", n)
	}
}

func TestPlayer(t *testing.T) {
	require.Equal(t, O, X.Other())
	require.Equal(t, X, O.Other())
	require.Equal(t, None, None.Other())

	p, err := ParsePlayer("O")
	require.NoError(t, err)
	require.Equal(t, O, p)
	_, err = ParsePlayer("-")
	require.ErrorIs(t, err, ErrInvalidPlayer)
}
