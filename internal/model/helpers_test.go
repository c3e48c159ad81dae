package model

import (
	"math/rand/v2"
	"testing"
)

func sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

var (
	wP = NewPiece(Pawn, White)
	wR = NewPiece(Rook, White)
	wN = NewPiece(Knight, White)
	wB = NewPiece(Bishop, White)
	wQ = NewPiece(Queen, White)
	wK = NewPiece(King, White)
	bP = NewPiece(Pawn, Black)
	bR = NewPiece(Rook, Black)
	bN = NewPiece(Knight, Black)
	bB = NewPiece(Bishop, Black)
	bQ = NewPiece(Queen, Black)
	bK = NewPiece(King, Black)
)

// place builds a board holding exactly the given pieces.
func place(pieces map[Square]Piece) Board {
	var b Board
	for s, p := range pieces {
		b.set(s, p)
	}
	return b
}

func mustFEN(t *testing.T, fen string) (Board, Color) {
	t.Helper()
	b, turn, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) error: %v", fen, err)
	}
	return b, turn
}

var allTypes = []PieceType{Pawn, Rook, Knight, Bishop, Queen, King}

// randomBoard places both kings, never adjacent, and up to extra further
// non-king pieces. Pawns stay off the back ranks.
func randomBoard(rng *rand.Rand, extra int) Board {
	var b Board
	wk := sq(rng.IntN(8), rng.IntN(8))
	var bk Square
	for {
		bk = sq(rng.IntN(8), rng.IntN(8))
		if abs(bk.Row-wk.Row) > 1 || abs(bk.Col-wk.Col) > 1 {
			break
		}
	}
	b.set(wk, wK)
	b.set(bk, bK)

	for i := 0; i < extra; i++ {
		s := sq(rng.IntN(8), rng.IntN(8))
		if !b.isEmpty(s) {
			continue
		}
		t := allTypes[rng.IntN(len(allTypes)-1)] // no extra kings
		if t == Pawn && (s.Row == 0 || s.Row == 7) {
			continue
		}
		c := White
		if rng.IntN(2) == 1 {
			c = Black
		}
		b.set(s, NewPiece(t, c))
	}
	return b
}

func allSquares() []Square {
	squares := make([]Square, 0, 64)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			squares = append(squares, sq(row, col))
		}
	}
	return squares
}
