package board

import "fmt"

// Connect four grid, indexed [column][row], row 0 is the bottom.
// It's a value type, so assigning a board copies it.
type Board [Columns][Rows]Player

// Get the owner of the cell, None if out of the grid
func (b Board) At(col, row int) Player {
	if !inside(col, row) {
		return None
	}
	return b[col][row]
}

func inside(col, row int) bool {
	return col >= 0 && col < Columns && row >= 0 && row < Rows
}

// Lowest empty row in the column, -1 if the column is full
func (b Board) lowestEmpty(col int) int {
	if b[col][Rows-1] != None {
		return -1
	}
	row := Rows - 1
	for row > 0 && b[col][row-1] == None {
		row--
	}
	return row
}

// Generate legal moves, in ascending column order
func (b Board) LegalMoves() []Move {
	moves := make([]Move, 0, Columns)
	for col := 0; col < Columns; col++ {
		if row := b.lowestEmpty(col); row >= 0 {
			moves = append(moves, Move{Col: col, Row: row})
		}
	}
	return moves
}

// Wheter there are no legal moves left
func (b Board) Full() bool {
	for col := 0; col < Columns; col++ {
		if b[col][Rows-1] == None {
			return false
		}
	}
	return true
}

// Get the legal move for given column
func (b Board) MoveInColumn(col int) (Move, error) {
	if col < 0 || col >= Columns {
		return Move{}, fmt.Errorf("column %d out of range: %w", col, ErrInvalidMove)
	}
	row := b.lowestEmpty(col)
	if row < 0 {
		return Move{}, fmt.Errorf("column %d is full: %w", col, ErrInvalidMove)
	}
	return Move{Col: col, Row: row}, nil
}

// Returns a new board with the move's cell set to 'p', the move must be
// a current legal move
func (b Board) Place(m Move, p Player) (Board, error) {
	if p != X && p != O {
		return b, fmt.Errorf("place %v: %w", m, ErrInvalidPlayer)
	}
	if !inside(m.Col, m.Row) || b.lowestEmpty(m.Col) != m.Row {
		return b, fmt.Errorf("place %v: %w", m, ErrInvalidMove)
	}
	b[m.Col][m.Row] = p
	return b, nil
}

// Drop a piece into the column
func (b Board) Drop(col int, p Player) (Board, Move, error) {
	m, err := b.MoveInColumn(col)
	if err != nil {
		return b, m, err
	}
	next, err := b.Place(m, p)
	return next, m, err
}

// Number of pieces of the player on the board
func (b Board) Count(p Player) int {
	n := 0
	for col := range b {
		for row := range b[col] {
			if b[col][row] == p {
				n++
			}
		}
	}
	return n
}

// Check the gravity rule: no piece floats above an empty cell
func (b Board) Valid() bool {
	for col := range b {
		for row := 1; row < Rows; row++ {
			if b[col][row] != None && b[col][row-1] == None {
				return false
			}
		}
	}
	return true
}

// Rows top to bottom, one line each
func (b Board) String() string {
	buf := make([]byte, 0, (Columns+1)*Rows)
	for row := Rows - 1; row >= 0; row-- {
		for col := 0; col < Columns; col++ {
			buf = append(buf, b[col][row].String()...)
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
