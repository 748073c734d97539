package mcts

import (
	"math"
	"time"
)

// Exploration constant of the UCT formula
const ExplorationParam float64 = math.Sqrt2

// Added to the parent's visits, so that ln(1) doesn't collapse the exploration term
const Epsilon float64 = 1e-6

// Index of the parent of the root node
const noParent int32 = -1

var SeedGeneratorFn SeedGeneratorFnType = func() uint64 {
	return uint64(time.Now().UnixNano())
}

// Set custom seed generator function for random number generators in MCTS,
// by default uses current time in nanoseconds
func SetSeedGeneratorFn(f SeedGeneratorFnType) {
	if f != nil {
		SeedGeneratorFn = f
	}
}

const (
	// When choosing the best child, choose the one with most visits,
	// this is the go-to method for MCTS
	BestChildMostVisits BestChildPolicy = iota

	// Experimental: choose the child with the best win rate
	BestChildWinRate
)
