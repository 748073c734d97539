package board

// Result of a position, relative to a reference player
type Outcome uint8

const (
	InPlay Outcome = iota
	Win
	Loss
	Draw
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "Win"
	case Loss:
		return "Loss"
	case Draw:
		return "Draw"
	}
	return "InPlay"
}

// Wheter the game has ended
func (o Outcome) Terminal() bool {
	return o != InPlay
}

// Reward for the reference player: win = 1, draw = 0.5, loss = 0
func (o Outcome) Reward() float64 {
	switch o {
	case Win:
		return 1.0
	case Draw:
		return 0.5
	}
	return 0.0
}

// Axis gradients (dc, dr), each one is walked in both directions:
// vertical, horizontal and both diagonals
var _axes = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// Number of 'mover' pieces connected to the move, along the longest axis
// (the move's cell counts as one)
func LongestRun(b *Board, m Move, mover Player) int {
	best := 0
	for _, axis := range _axes {
		n := 1 + walk(b, m, axis[0], axis[1], mover) + walk(b, m, -axis[0], -axis[1], mover)
		best = max(best, n)
	}
	return best
}

func walk(b *Board, m Move, dc, dr int, mover Player) int {
	n := 0
	col, row := m.Col+dc, m.Row+dr
	for inside(col, row) && b[col][row] == mover {
		n++
		col += dc
		row += dr
	}
	return n
}

// Classify the position after 'mover' played 'm', from the 'reference' player's view
func Classify(b Board, m Move, mover, reference Player) Outcome {
	if LongestRun(&b, m, mover) >= ConnectN {
		if mover == reference {
			return Win
		}
		return Loss
	}

	if b.Full() {
		return Draw
	}
	return InPlay
}

// Find the first move (in column order) that wins the game for 'p'
func WinningMove(b Board, p Player) (Move, bool) {
	for _, m := range b.LegalMoves() {
		next, err := b.Place(m, p)
		if err != nil {
			continue
		}
		if Classify(next, m, p, p) == Win {
			return m, true
		}
	}
	return Move{}, false
}

// Find a player with a connected line anywhere on the board, None if there is no such line
func Winner(b Board) Player {
	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows; row++ {
			p := b[col][row]
			if p == None {
				break
			}
			if LongestRun(&b, Move{Col: col, Row: row}, p) >= ConnectN {
				return p
			}
		}
	}
	return None
}
