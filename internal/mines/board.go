package mines

import (
	"fmt"
	"hash/maphash"
	"iter"
	"math"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Board is a size×size minesweeper field. A Board is not safe for
// concurrent use.
type Board struct {
	size      int
	mineCount int
	hidden    int  /* cells not yet revealed */
	detonated bool /* a mine has been revealed */
	cells     []Cell
}

// NewRand returns a generator seeded from runtime entropy.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func validate(size, mineCount int) error {
	if size <= 0 {
		return fmt.Errorf("%w: size must be positive (size = %d)", ErrInvalidConfig, size)
	}
	if size > math.MaxInt/size {
		return fmt.Errorf("%w: %dx%d cells overflow int", ErrInvalidConfig, size, size)
	}
	if mineCount < 0 {
		return fmt.Errorf("%w: negative mine count (mine count = %d)", ErrInvalidConfig, mineCount)
	}
	if mineCount > size*size {
		return fmt.Errorf(
			"%w: %d mines do not fit on a %dx%d board",
			ErrInvalidConfig, mineCount, size, size,
		)
	}
	return nil
}

func newEmptyBoard(size, mineCount int) *Board {
	return &Board{
		size:      size,
		mineCount: mineCount,
		hidden:    size * size,
		cells:     make([]Cell, size*size),
	}
}

// New builds a board with mineCount mines placed uniformly at random using
// r, and precomputes the adjacent mine counts.
func New(size, mineCount int, r *rand.Rand) (*Board, error) {
	if err := validate(size, mineCount); err != nil {
		return nil, err
	}
	b := newEmptyBoard(size, mineCount)
	b.placeMines(r)
	b.countAdjacent()
	return b, nil
}

/*
 * Draw random squares until enough of them turn out to be free. This gets
 * slow as the board fills up, but boards are small.
 */
func (b *Board) placeMines(r *rand.Rand) {
	draws := 0
	for placed := 0; placed < b.mineCount; {
		draws++
		i := b.index(r.IntN(b.size), r.IntN(b.size))
		if b.cells[i].mine {
			continue
		}
		b.cells[i].mine = true
		placed++
	}
	Log.WithFields(logrus.Fields{
		"size":      b.size,
		"mineCount": b.mineCount,
		"draws":     draws,
	}).Debug("placed mines")
}

func (b *Board) countAdjacent() {
	for i := range b.cells {
		if !b.cells[i].mine {
			continue
		}
		for j := range b.neighbours(i) {
			if !b.cells[j].mine {
				b.cells[j].adjacent++
			}
		}
	}
}

func (b *Board) index(row, col int) int {
	return row*b.size + col
}

// neighbours yields the indices of the in-bounds Moore neighbours of i.
func (b *Board) neighbours(i int) iter.Seq[int] {
	row, col := i/b.size, i%b.size
	return func(yield func(int) bool) {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				r, c := row+dr, col+dc
				if !b.InBounds(r, c) {
					continue
				}
				if !yield(b.index(r, c)) {
					return
				}
			}
		}
	}
}

func (b *Board) InBounds(row, col int) bool {
	return 0 <= row && row < b.size && 0 <= col && col < b.size
}

func (b *Board) Size() int {
	return b.size
}

// MineCount is the number of mines the board was built with.
func (b *Board) MineCount() int {
	return b.mineCount
}

// CountMines counts mined cells by scanning the board. It always agrees
// with MineCount.
func (b *Board) CountMines() int {
	n := 0
	for _, c := range b.cells {
		if c.mine {
			n++
		}
	}
	return n
}

// Hidden is the number of cells that have not been revealed yet.
func (b *Board) Hidden() int {
	return b.hidden
}

// CellAt returns a copy of the cell at row, col. ok is false when the
// position is off the board.
func (b *Board) CellAt(row, col int) (cell Cell, ok bool) {
	if !b.InBounds(row, col) {
		return Cell{}, false
	}
	return b.cells[b.index(row, col)], true
}
