package board

import "errors"

const (
	Columns = 7
	Rows    = 6

	// Number of connected pieces needed to win
	ConnectN = 4
)

// Owner of a cell, None means the cell is empty
type Player uint8

const (
	None Player = iota
	X
	O
)

// Get the opponent of this player, None stays None
func (p Player) Other() Player {
	switch p {
	case X:
		return O
	case O:
		return X
	}
	return None
}

func (p Player) String() string {
	switch p {
	case X:
		return "x"
	case O:
		return "o"
	}
	return "."
}

// Parse 'x' or 'o' (case insensitive)
func ParsePlayer(s string) (Player, error) {
	switch s {
	case "x", "X":
		return X, nil
	case "o", "O":
		return O, nil
	}
	return None, ErrInvalidPlayer
}

// Cell where a piece lands, Row is always the lowest empty row of Col
type Move struct {
	Col int
	Row int
}

var (
	ErrInvalidMove     = errors.New("invalid move")
	ErrInvalidPlayer   = errors.New("invalid player")
	ErrInvalidNotation = errors.New("invalid notation")
)
