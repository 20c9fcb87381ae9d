// Package rules implements the move-legality and check-detection oracle.
// The oracle is pure and stateless: every query receives the position it
// should judge, so it can be swapped out or stubbed in tests.
package rules

import "github.com/blitzarena/chess-server/pkg/board"

// Probe is a legality callback handed back into the oracle for recursive
// queries. Check detection asks, per attacking piece, whether that piece
// could legally reach the king square, without the caller knowing the
// oracle's move-generation internals.
type Probe func(b board.Board, from, to board.Square, side board.Color) bool

// Oracle decides move legality, check status and whether a side has any
// legal move left.
type Oracle interface {
	IsLegal(b board.Board, from, to board.Square, side board.Color) bool
	IsInCheck(b board.Board, side board.Color, probe Probe) bool
	HasAnyLegalMove(b board.Board, side board.Color, probe Probe) bool
}

// Engine is the default Oracle. It implements basic piece movement:
// pushes, captures and sliding with clear paths. Castling, en passant
// and promotion are outside the core's relocation-only move model.
type Engine struct{}

// NewEngine returns the default rules engine.
func NewEngine() *Engine {
	return &Engine{}
}

// IsLegal reports whether moving the piece on from to to is reachable for
// the given side on the given board. It does not consider whether the
// move would expose the mover's own king; the coordinator checks that
// separately via IsInCheck on the resulting position.
func (e *Engine) IsLegal(b board.Board, from, to board.Square, side board.Color) bool {
	if !from.InBounds() || !to.InBounds() || from == to {
		return false
	}

	piece := b.At(from)
	if piece.Color() != side {
		return false
	}
	if b.At(to).Color() == side {
		return false
	}

	dr := to.Row - from.Row
	dc := to.Col - from.Col

	switch piece.Kind() {
	case 'P':
		return e.pawnReach(b, from, to, side)
	case 'N':
		return (abs(dr) == 2 && abs(dc) == 1) || (abs(dr) == 1 && abs(dc) == 2)
	case 'B':
		return abs(dr) == abs(dc) && e.clearPath(b, from, to)
	case 'R':
		return (dr == 0 || dc == 0) && e.clearPath(b, from, to)
	case 'Q':
		return (dr == 0 || dc == 0 || abs(dr) == abs(dc)) && e.clearPath(b, from, to)
	case 'K':
		return abs(dr) <= 1 && abs(dc) <= 1
	default:
		return false
	}
}

// IsInCheck reports whether side's king is attacked on the given board.
// Every enemy piece is probed for a legal capture of the king square.
func (e *Engine) IsInCheck(b board.Board, side board.Color, probe Probe) bool {
	king := board.Piece("wK")
	if side == board.Black {
		king = "bK"
	}

	kingSq, ok := b.Find(king)
	if !ok {
		return false
	}

	enemy := side.Opp()
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			sq := board.Square{Row: r, Col: c}
			if b.At(sq).Color() != enemy {
				continue
			}
			if probe(b, sq, kingSq, enemy) {
				return true
			}
		}
	}

	return false
}

// HasAnyLegalMove reports whether side has at least one move that does
// not leave its own king attacked. Combined with the check flag this
// distinguishes checkmate from stalemate.
func (e *Engine) HasAnyLegalMove(b board.Board, side board.Color, probe Probe) bool {
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			from := board.Square{Row: r, Col: c}
			if b.At(from).Color() != side {
				continue
			}
			for tr := 0; tr < 8; tr++ {
				for tc := 0; tc < 8; tc++ {
					to := board.Square{Row: tr, Col: tc}
					if !probe(b, from, to, side) {
						continue
					}
					if !e.IsInCheck(b.Apply(from, to), side, probe) {
						return true
					}
				}
			}
		}
	}

	return false
}

func (e *Engine) pawnReach(b board.Board, from, to board.Square, side board.Color) bool {
	dir, startRow := 1, 1
	if side == board.Black {
		dir, startRow = -1, 6
	}

	dr := to.Row - from.Row
	dc := to.Col - from.Col

	switch {
	case dc == 0 && dr == dir:
		return b.At(to) == board.NoPiece
	case dc == 0 && dr == 2*dir && from.Row == startRow:
		mid := board.Square{Row: from.Row + dir, Col: from.Col}
		return b.At(mid) == board.NoPiece && b.At(to) == board.NoPiece
	case abs(dc) == 1 && dr == dir:
		return b.At(to).Color() == side.Opp()
	default:
		return false
	}
}

// clearPath checks every square strictly between from and to is empty.
// Assumes the squares share a rank, file or diagonal.
func (e *Engine) clearPath(b board.Board, from, to board.Square) bool {
	stepR := sign(to.Row - from.Row)
	stepC := sign(to.Col - from.Col)

	cur := board.Square{Row: from.Row + stepR, Col: from.Col + stepC}
	for cur != to {
		if b.At(cur) != board.NoPiece {
			return false
		}
		cur = board.Square{Row: cur.Row + stepR, Col: cur.Col + stepC}
	}

	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
