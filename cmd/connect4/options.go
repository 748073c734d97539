package main

import (
	"fmt"
	"time"

	"github.com/IlikeChooros/go-connect4/pkg/board"
	"github.com/IlikeChooros/go-connect4/pkg/mcts"
)

// Position to start from, empty board when the notation is empty
func startPosition(notation string) (board.Board, board.Player, error) {
	if notation == "" {
		return board.Board{}, board.X, nil
	}
	b, toMove, err := board.Parse(notation)
	if err != nil {
		return b, toMove, err
	}
	if board.Winner(b) != board.None || b.Full() {
		return b, toMove, fmt.Errorf("position %q is already decided", notation)
	}
	return b, toMove, nil
}

func parsePolicy(name string) (mcts.BestChildPolicy, error) {
	switch name {
	case "visits":
		return mcts.BestChildMostVisits, nil
	case "winrate":
		return mcts.BestChildWinRate, nil
	}
	return mcts.BestChildMostVisits, fmt.Errorf("unknown policy %q", name)
}

// Movetime takes precedence over cycles, when set
func budgetOptions(movetime time.Duration, cycles uint, threats bool) []mcts.Option {
	options := []mcts.Option{mcts.WithThreatCheck(threats)}
	if movetime > 0 {
		return append(options, mcts.WithMovetime(movetime))
	}
	return append(options, mcts.WithCycles(uint32(cycles)))
}
