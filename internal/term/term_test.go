package term

import (
	"bytes"
	"context"
	"io"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/mines"
)

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	var out bytes.Buffer
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewConsole(strings.NewReader(input), &out, log), &out
}

func TestParseSquare(t *testing.T) {
	tests := []struct {
		in       string
		row, col int
	}{
		{"A1", 0, 0},
		{"a1", 0, 0},
		{"C10", 2, 9},
		{" z26 ", 25, 25},
	}
	for _, test := range tests {
		row, col, err := ParseSquare(test.in)
		require.NoError(t, err, test.in)
		assert.Equal(t, test.row, row, test.in)
		assert.Equal(t, test.col, col, test.in)
		assert.Equal(t, strings.ToUpper(strings.TrimSpace(test.in)), FormatSquare(row, col))
	}

	for _, in := range []string{"", "A", "1A", "A0", "A-1", "Ax", "?3"} {
		_, _, err := ParseSquare(in)
		assert.ErrorIs(t, err, ErrBadSquare, in)
	}
}

func TestRenderHiddenBoard(t *testing.T) {
	b, err := mines.New(3, 0, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	var out bytes.Buffer
	NewRenderer(&out).Board(b)

	assert.Equal(t, "  1 2 3 \nA _ _ _ \nB _ _ _ \nC _ _ _ \n", out.String())
}

func TestRenderWideBoardAlignsColumns(t *testing.T) {
	b, err := mines.New(10, 0, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	var out bytes.Buffer
	NewRenderer(&out).Board(b)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 11)
	for _, line := range lines[1:] {
		assert.Equal(t, len(lines[0]), len(line), line)
	}
	assert.True(t, strings.HasPrefix(lines[0], "  1  2  "), lines[0])
}

func TestPlayWinsEmptyBoardInOneMove(t *testing.T) {
	b, err := mines.New(3, 0, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	c, out := newTestConsole("A1\n")

	status, err := c.Play(context.Background(), b)
	require.NoError(t, err)

	assert.Equal(t, mines.Won, status)
	assert.Contains(t, out.String(), "This square contains 0 adjacent mines.")
	assert.Contains(t, out.String(), "Congratulations, you have won the game!")
	assert.True(t, strings.HasSuffix(out.String(), "A 0 0 0 \nB 0 0 0 \nC 0 0 0 \n"))
}

func TestPlayLoses(t *testing.T) {
	b, err := mines.New(2, 4, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	c, out := newTestConsole("b2")

	status, err := c.Play(context.Background(), b)
	require.NoError(t, err)

	assert.Equal(t, mines.Lost, status)
	assert.Contains(t, out.String(), "Oh no, you detonated a mine! Game over.")
}

func TestPlayRejectsBadInputAndStopsAtEOF(t *testing.T) {
	b, err := mines.New(3, 0, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	c, out := newTestConsole("Q1 A9 hello")

	status, err := c.Play(context.Background(), b)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, mines.InProgress, status)
	assert.Equal(t, 3, strings.Count(out.String(), "is not a square on this board."))
	assert.Equal(t, 9, b.Hidden())
}

func TestPlayStopsOnCancel(t *testing.T) {
	b, err := mines.New(3, 1, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	c, _ := newTestConsole("A1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.Play(ctx, b)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfigure(t *testing.T) {
	c, out := newTestConsole("0 abc 4 99 10")

	size, mineCount, err := c.Configure(-1, -1)
	require.NoError(t, err)

	assert.Equal(t, 4, size)
	assert.Equal(t, 5, mineCount)
	assert.Equal(t, 3, strings.Count(out.String(), "Please enter a number"))
	assert.Contains(t, out.String(), "Setting to maximum (5).")
}

func TestConfigureKeepsGivenValues(t *testing.T) {
	c, out := newTestConsole("")

	size, mineCount, err := c.Configure(9, 10)
	require.NoError(t, err)

	assert.Equal(t, 9, size)
	assert.Equal(t, 10, mineCount)
	assert.Empty(t, out.String())
}
