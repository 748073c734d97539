package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Board notation, similar to FEN:
//
//	<row 5>/<row 4>/<row 3>/<row 2>/<row 1>/<row 0> <turn>
//
// rows go from the top to the bottom, each row lists its cells from column 0,
// 'x' and 'o' are pieces, digits are runs of empty cells.
// <turn> is the side to move, either 'x' or 'o'.
//
// Examples:
//
// * 7/7/7/7/7/7 x
//
// * 7/7/7/7/7/ooo4 x
func (b Board) Notation(turn Player) string {
	builder := strings.Builder{}

	for row := Rows - 1; row >= 0; row-- {
		counter := 0
		for col := 0; col < Columns; col++ {
			piece := b[col][row]
			if piece == None {
				counter++
				continue
			}
			if counter > 0 {
				builder.WriteString(strconv.Itoa(counter))
				counter = 0
			}
			builder.WriteString(piece.String())
		}
		if counter > 0 {
			builder.WriteString(strconv.Itoa(counter))
		}
		if row > 0 {
			builder.WriteByte('/')
		}
	}

	builder.WriteByte(' ')
	builder.WriteString(turn.String())
	return builder.String()
}

// Parse the notation, returns the board and the side to move
func Parse(notation string) (Board, Player, error) {
	var b Board

	fields := strings.Fields(notation)
	if len(fields) != 2 {
		return b, None, fmt.Errorf("%w: expected '<rows> <turn>', got %q", ErrInvalidNotation, notation)
	}

	turn, err := ParsePlayer(fields[1])
	if err != nil {
		return b, None, fmt.Errorf("%w: turn %q", ErrInvalidNotation, fields[1])
	}

	rows := strings.Split(fields[0], "/")
	if len(rows) != Rows {
		return b, None, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidNotation, Rows, len(rows))
	}

	for i, text := range rows {
		row := Rows - 1 - i
		col := 0
		for _, c := range text {
			switch {
			case c >= '1' && c <= '9':
				col += int(c - '0')
			case c == 'x' || c == 'X' || c == 'o' || c == 'O':
				if col >= Columns {
					return b, None, fmt.Errorf("%w: row %q is too long", ErrInvalidNotation, text)
				}
				b[col][row], _ = ParsePlayer(string(c))
				col++
			default:
				return b, None, fmt.Errorf("%w: unexpected character %q", ErrInvalidNotation, c)
			}
		}
		if col != Columns {
			return b, None, fmt.Errorf("%w: row %q has %d cells", ErrInvalidNotation, text, col)
		}
	}

	if !b.Valid() {
		return b, None, fmt.Errorf("%w: floating pieces", ErrInvalidNotation)
	}
	return b, turn, nil
}
