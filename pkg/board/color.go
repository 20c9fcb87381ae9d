package board

// Color represents a chess side.
type Color string

// The two sides of a game. The zero value means "no side" and is used
// for things like an empty check flag or a drawn result.
const (
	White Color = "white"
	Black Color = "black"
	None  Color = ""
)

// Opp returns the opposite color for the given color.
func (c Color) Opp() Color {
	if c == White {
		return Black
	}

	return White
}
