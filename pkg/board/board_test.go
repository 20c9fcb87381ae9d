package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartingPosition(t *testing.T) {
	b := StartingPosition()

	assert.Equal(t, Piece("wR"), b[0][0])
	assert.Equal(t, Piece("wK"), b[0][4])
	assert.Equal(t, Piece("wQ"), b[0][3])
	assert.Equal(t, Piece("bK"), b[7][4])
	assert.Equal(t, Piece("bR"), b[7][7])

	for c := 0; c < 8; c++ {
		assert.Equal(t, Piece("wP"), b[1][c])
		assert.Equal(t, Piece("bP"), b[6][c])
	}

	for r := 2; r < 6; r++ {
		for c := 0; c < 8; c++ {
			assert.Equal(t, NoPiece, b[r][c])
		}
	}
}

func TestParseSquare(t *testing.T) {
	tests := []struct {
		in      string
		want    Square
		wantErr bool
	}{
		{in: "a1", want: Square{Row: 0, Col: 0}},
		{in: "e2", want: Square{Row: 1, Col: 4}},
		{in: "h8", want: Square{Row: 7, Col: 7}},
		{in: "i1", wantErr: true},
		{in: "a9", wantErr: true},
		{in: "e", wantErr: true},
		{in: "", wantErr: true},
		{in: "e22", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			sq, err := ParseSquare(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, sq)
			assert.Equal(t, tc.in, sq.String())
		})
	}
}

func TestApply(t *testing.T) {
	b := StartingPosition()

	from, _ := ParseSquare("e2")
	to, _ := ParseSquare("e4")

	next := b.Apply(from, to)

	assert.Equal(t, Piece("wP"), next.At(to))
	assert.Equal(t, NoPiece, next.At(from))

	// The original board is untouched.
	assert.Equal(t, Piece("wP"), b.At(from))
}

func TestPieceHelpers(t *testing.T) {
	assert.Equal(t, White, Piece("wP").Color())
	assert.Equal(t, Black, Piece("bQ").Color())
	assert.Equal(t, None, NoPiece.Color())

	assert.Equal(t, byte('K'), Piece("wK").Kind())
	assert.Equal(t, byte(0), NoPiece.Kind())
}

func TestFind(t *testing.T) {
	b := StartingPosition()

	sq, ok := b.Find("wK")
	require.True(t, ok)
	assert.Equal(t, "e1", sq.String())

	var empty Board
	_, ok = empty.Find("wK")
	assert.False(t, ok)
}
