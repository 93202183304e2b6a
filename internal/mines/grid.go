package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	Unknown       CellState = -2
	ExplodedMine  CellState = 65
	UnflaggedMine CellState = 67
	// 0-8 for a revealed cell with given number of mined neighbours
)

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return "_"
	case s == ExplodedMine, s == UnflaggedMine:
		return "*"
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// Grid is what the player knows about the board, row by row.
type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			fmt.Fprint(&b, g[y*width+x].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

// Grid snapshots the board for display. Once the game is over the
// remaining mines are shown as well.
func (b *Board) Grid() Grid {
	over := b.Status().Over()
	g := make(Grid, len(b.cells))
	for i, c := range b.cells {
		switch {
		case c.revealed && c.mine:
			g[i] = ExplodedMine
		case c.revealed:
			g[i] = CellState(c.adjacent)
		case over && c.mine:
			g[i] = UnflaggedMine
		default:
			g[i] = Unknown
		}
	}
	return g
}
