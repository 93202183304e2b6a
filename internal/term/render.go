package term

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vancomm/minesweeper/internal/mines"
)

// Renderer draws boards the way the player sees them: column numbers on
// top, row letters on the left. Colours are dropped when out is not a
// terminal.
type Renderer struct {
	out    io.Writer
	label  lipgloss.Style
	hidden lipgloss.Style
	zero   lipgloss.Style
	number lipgloss.Style
	mine   lipgloss.Style
}

func NewRenderer(out io.Writer) *Renderer {
	r := lipgloss.NewRenderer(out)
	return &Renderer{
		out:    out,
		label:  r.NewStyle().Bold(true),
		hidden: r.NewStyle().Foreground(lipgloss.Color("8")),
		zero:   r.NewStyle().Foreground(lipgloss.Color("240")),
		number: r.NewStyle().Foreground(lipgloss.Color("39")),
		mine:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}

func (r *Renderer) style(s mines.CellState) lipgloss.Style {
	switch {
	case s == mines.Unknown:
		return r.hidden
	case s == 0:
		return r.zero
	case 0 < s && s <= 8:
		return r.number
	default:
		return r.mine
	}
}

func (r *Renderer) Board(b *mines.Board) {
	size := b.Size()
	width := len(strconv.Itoa(size))
	grid := b.Grid()

	var sb strings.Builder
	sb.WriteString("  ")
	for col := range size {
		sb.WriteString(r.label.Render(fmt.Sprintf("%-*d", width, col+1)) + " ")
	}
	sb.WriteString("\n")

	for row := range size {
		sb.WriteString(r.label.Render(string(rune('A'+row))) + " ")
		for col := range size {
			s := grid[row*size+col]
			sb.WriteString(r.style(s).Render(s.String()))
			sb.WriteString(strings.Repeat(" ", width))
		}
		sb.WriteString("\n")
	}

	fmt.Fprint(r.out, sb.String())
}
