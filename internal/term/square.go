package term

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxSize is the largest board addressable with one row letter.
const MaxSize = 26

var ErrBadSquare = errors.New("invalid square")

// ParseSquare converts "B3" style input into 0-based row and column.
func ParseSquare(s string) (row, col int, err error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadSquare, s)
	}
	if s[0] < 'A' || s[0] > 'Z' {
		return 0, 0, fmt.Errorf("%w: row must be a letter (got %q)", ErrBadSquare, s[:1])
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 1 {
		return 0, 0, fmt.Errorf("%w: column must be a positive number (got %q)", ErrBadSquare, s[1:])
	}
	return int(s[0] - 'A'), n - 1, nil
}

func FormatSquare(row, col int) string {
	return fmt.Sprintf("%c%d", 'A'+rune(row), col+1)
}
