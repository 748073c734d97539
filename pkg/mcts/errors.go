package mcts

import "errors"

var (
	// The position has no legal moves, or the game is already over
	ErrNoMoveAvailable = errors.New("no move available")

	// Selection reached an in-play node without children and potential moves,
	// the node's board and outcome disagree
	ErrEmptyFrontier = errors.New("empty frontier")

	// Tried to expand a move that isn't a potential move of the node
	ErrNotPotential = errors.New("move is not a potential move")
)
