package mines

// Cell is one square of the board. Callers only ever see copies of it.
type Cell struct {
	mine     bool
	adjacent int
	revealed bool
}

func (c Cell) HasMine() bool {
	return c.mine
}

// AdjacentMines is the number of mines around a safe cell. It is always 0
// for a mined cell.
func (c Cell) AdjacentMines() int {
	return c.adjacent
}

func (c Cell) Revealed() bool {
	return c.revealed
}
