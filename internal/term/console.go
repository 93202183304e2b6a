package term

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
)

// Console is the line-oriented front end: it reads whitespace separated
// answers from in and writes prompts and the board to out.
type Console struct {
	in     *bufio.Scanner
	out    io.Writer
	render *Renderer
	log    logrus.FieldLogger
}

func NewConsole(in io.Reader, out io.Writer, log logrus.FieldLogger) *Console {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	return &Console{
		in:     sc,
		out:    out,
		render: NewRenderer(out),
		log:    log,
	}
}

func (c *Console) next() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return c.in.Text(), nil
}

// readInt prompts until the answer is a number within [lo, hi].
func (c *Console) readInt(prompt string, lo, hi int) (int, error) {
	for {
		fmt.Fprint(c.out, prompt)
		word, err := c.next()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(word)
		if err != nil || n < lo || n > hi {
			fmt.Fprintf(c.out, "Please enter a number between %d and %d.\n", lo, hi)
			continue
		}
		return n, nil
	}
}

// Configure asks for a size outside 1..MaxSize and for a negative mine
// count, then clamps the mine count to config.MaxMinePercent of the board.
func (c *Console) Configure(size, mineCount int) (int, int, error) {
	var err error
	if size <= 0 || size > MaxSize {
		size, err = c.readInt(
			fmt.Sprintf("Enter the size of the grid (e.g. 4 for a 4x4 grid, at most %d): ", MaxSize),
			1, MaxSize,
		)
		if err != nil {
			return 0, 0, err
		}
	}

	if mineCount < 0 {
		mineCount, err = c.readInt(
			fmt.Sprintf(
				"Enter the number of mines to place on the grid (maximum is %d%% of the total squares): ",
				config.MaxMinePercent,
			),
			0, size*size,
		)
		if err != nil {
			return 0, 0, err
		}
	}

	if clamped := config.ClampMineCount(size, mineCount); clamped != mineCount {
		fmt.Fprintf(c.out, "Number of mines exceeds the maximum allowed. Setting to maximum (%d).\n", clamped)
		mineCount = clamped
	}
	return size, mineCount, nil
}

// Play runs the reveal loop until the game is won or lost, the input ends,
// or ctx is cancelled.
func (c *Console) Play(ctx context.Context, b *mines.Board) (mines.Status, error) {
	for {
		if err := ctx.Err(); err != nil {
			return b.Status(), err
		}

		c.render.Board(b)
		fmt.Fprint(c.out, "Select a square to reveal (e.g. A1): ")
		word, err := c.next()
		if err != nil {
			return b.Status(), err
		}

		row, col, err := ParseSquare(word)
		if err == nil && !b.InBounds(row, col) {
			err = fmt.Errorf("%w: %s is off the board", ErrBadSquare, word)
		}
		if err != nil {
			c.log.WithError(err).Debug("bad square")
			fmt.Fprintf(c.out, "%q is not a square on this board.\n", word)
			continue
		}

		outcome := b.Reveal(row, col)
		c.log.WithFields(logrus.Fields{
			"square":  FormatSquare(row, col),
			"outcome": outcome.String(),
			"hidden":  b.Hidden(),
		}).Debug("reveal")

		switch outcome {
		case mines.NoOp:
			fmt.Fprintln(c.out, "That square is already revealed.")
		case mines.HitMine:
			fmt.Fprintln(c.out, "Oh no, you detonated a mine! Game over.")
			c.render.Board(b)
			return mines.Lost, nil
		case mines.Revealed:
			cell, _ := b.CellAt(row, col)
			fmt.Fprintf(c.out, "This square contains %d adjacent mines.\n", cell.AdjacentMines())
			if b.IsWon() {
				fmt.Fprintln(c.out, "Congratulations, you have won the game!")
				c.render.Board(b)
				return mines.Won, nil
			}
		}
	}
}
