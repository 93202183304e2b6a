package config

// MaxMinePercent caps how much of the board may be mined. This is a
// gameplay choice made by clients; the engine accepts any count that fits.
const MaxMinePercent = 35

// ClampMineCount limits mines to MaxMinePercent of a size×size board.
func ClampMineCount(size, mines int) int {
	limit := size * size * MaxMinePercent / 100
	if mines > limit {
		return limit
	}
	if mines < 0 {
		return 0
	}
	return mines
}
