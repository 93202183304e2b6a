package mines

type Outcome int8

const (
	NoOp     Outcome = iota // off the board or already revealed
	Revealed                // at least one safe cell was revealed
	HitMine
)

func (o Outcome) String() string {
	switch o {
	case NoOp:
		return "noop"
	case Revealed:
		return "revealed"
	case HitMine:
		return "hit_mine"
	default:
		return "unknown"
	}
}

type Status int8

const (
	InProgress Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

func (s Status) Over() bool {
	return s != InProgress
}

func (b *Board) open(i int) {
	b.cells[i].revealed = true
	b.hidden--
}

// Reveal opens the cell at row, col. Opening a cell with no adjacent mines
// also opens its whole zero region together with the numbered cells around
// it.
//
// Reveal keeps working after the game is over; stopping is up to the
// caller.
func (b *Board) Reveal(row, col int) Outcome {
	if !b.InBounds(row, col) {
		return NoOp
	}
	i := b.index(row, col)
	if b.cells[i].revealed {
		return NoOp
	}

	b.open(i)
	if b.cells[i].mine {
		b.detonated = true
		return HitMine
	}
	if b.cells[i].adjacent != 0 {
		return Revealed
	}

	/*
	 * Zero cell: walk the region with an explicit stack. The revealed flag
	 * marks visited cells. Neighbours of a zero cell are never mines.
	 */
	stack := []int{i}
	for len(stack) > 0 {
		j := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for k := range b.neighbours(j) {
			if b.cells[k].revealed {
				continue
			}
			b.open(k)
			if b.cells[k].adjacent == 0 {
				stack = append(stack, k)
			}
		}
	}
	return Revealed
}

// IsWon reports whether every safe cell has been revealed.
func (b *Board) IsWon() bool {
	return b.hidden == b.mineCount
}

func (b *Board) Status() Status {
	switch {
	case b.detonated:
		return Lost
	case b.IsWon():
		return Won
	default:
		return InProgress
	}
}
