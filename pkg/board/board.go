// Package board defines the chess board entities: squares, pieces and the
// 8x8 grid itself. The board only knows how to relocate pieces; legality
// lives in the rules package.
package board

import "fmt"

// Piece is a two-character piece code such as "wP" or "bK". The empty
// string marks an empty cell.
type Piece string

// NoPiece is the content of an empty cell.
const NoPiece Piece = ""

// Color returns the owning side of the piece, or None for an empty cell.
func (p Piece) Color() Color {
	switch {
	case len(p) == 2 && p[0] == 'w':
		return White
	case len(p) == 2 && p[0] == 'b':
		return Black
	default:
		return None
	}
}

// Kind returns the piece letter ('P', 'N', 'B', 'R', 'Q', 'K'), or 0 for
// an empty cell.
func (p Piece) Kind() byte {
	if len(p) != 2 {
		return 0
	}
	return p[1]
}

// Square addresses a single cell. Row 0 is rank 1 (white's back rank),
// Col 0 is the a-file.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// ParseSquare converts algebraic notation ("e2") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("invalid square %q", s)
	}

	col := int(s[0] - 'a')
	row := int(s[1] - '1')

	sq := Square{Row: row, Col: col}
	if !sq.InBounds() {
		return Square{}, fmt.Errorf("invalid square %q", s)
	}

	return sq, nil
}

// String renders the square in algebraic notation.
func (sq Square) String() string {
	return string([]byte{byte('a' + sq.Col), byte('1' + sq.Row)})
}

// InBounds reports whether the square lies on the board.
func (sq Square) InBounds() bool {
	return sq.Row >= 0 && sq.Row < 8 && sq.Col >= 0 && sq.Col < 8
}

// Board is the 8x8 grid. It is a value type so positions can be copied
// cheaply for move simulation.
type Board [8][8]Piece

// At returns the piece on the given square.
func (b Board) At(sq Square) Piece {
	return b[sq.Row][sq.Col]
}

// Apply relocates the piece on from to to and returns the resulting
// position. The destination cell takes the moving piece, the origin cell
// becomes empty. No capture bookkeeping, castling or promotion happens
// here.
func (b Board) Apply(from, to Square) Board {
	b[to.Row][to.Col] = b[from.Row][from.Col]
	b[from.Row][from.Col] = NoPiece
	return b
}

// Find returns the first square holding the given piece.
func (b Board) Find(p Piece) (Square, bool) {
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if b[r][c] == p {
				return Square{Row: r, Col: c}, true
			}
		}
	}
	return Square{}, false
}

// StartingPosition returns the standard chess starting position.
func StartingPosition() Board {
	var b Board

	back := []byte{'R', 'N', 'B', 'Q', 'K', 'B', 'N', 'R'}
	for c := 0; c < 8; c++ {
		b[0][c] = Piece("w" + string(back[c]))
		b[1][c] = "wP"
		b[6][c] = "bP"
		b[7][c] = Piece("b" + string(back[c]))
	}

	return b
}
