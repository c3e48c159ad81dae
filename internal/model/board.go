package model

import (
	"encoding/json"
	"fmt"
)

const boardSize = 8

// Square is a (row, col) coordinate. Row 0 is black's back rank, row 7 is white's.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < boardSize && s.Col >= 0 && s.Col < boardSize
}

func (s Square) getSquareNotation() string {
	return fmt.Sprintf("%c%d", s.Col+'a', boardSize-s.Row)
}

func (s Square) getFileNotation() string {
	return fmt.Sprintf("%c", s.Col+'a')
}

func (s Square) String() string {
	if !s.InBounds() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return s.getSquareNotation()
}

// Board is an 8x8 grid indexed [row][col]. It is a value: assigning or passing
// a Board copies it, so a callee can never alter the caller's position.
type Board [boardSize][boardSize]Piece

var backRank = [boardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard initial position.
func NewBoard() Board {
	var b Board
	for col, t := range backRank {
		b[0][col] = NewPiece(t, Black)
		b[1][col] = NewPiece(Pawn, Black)
		b[6][col] = NewPiece(Pawn, White)
		b[7][col] = NewPiece(t, White)
	}
	return b
}

// PieceAt returns the piece on sq, or NoPiece when sq is empty or off the board.
func (b Board) PieceAt(sq Square) Piece {
	if !sq.InBounds() {
		return NoPiece
	}
	return b[sq.Row][sq.Col]
}

func (b Board) isEmpty(sq Square) bool {
	return b.PieceAt(sq).IsEmpty()
}

func (b *Board) set(sq Square, p Piece) {
	b[sq.Row][sq.Col] = p
}

// KingSquare scans the board for the king of color c.
func (b Board) KingSquare(c Color) (Square, bool) {
	king := NewPiece(King, c)
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			if b[row][col] == king {
				return Square{Row: row, Col: col}, true
			}
		}
	}
	return Square{}, false
}

// MarshalJSON encodes the board as rows of pieces with null for empty squares.
func (b Board) MarshalJSON() ([]byte, error) {
	rows := make([][]*Piece, boardSize)
	for row := range b {
		rows[row] = make([]*Piece, boardSize)
		for col := range b[row] {
			if p := b[row][col]; !p.IsEmpty() {
				rows[row][col] = &p
			}
		}
	}
	return json.Marshal(rows)
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var rows [][]*Piece
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	if len(rows) != boardSize {
		return fmt.Errorf("board has %d rows, want %d", len(rows), boardSize)
	}
	var out Board
	for row := range rows {
		if len(rows[row]) != boardSize {
			return fmt.Errorf("board row %d has %d squares, want %d", row, len(rows[row]), boardSize)
		}
		for col, p := range rows[row] {
			if p == nil {
				continue
			}
			if _, err := ColorOf(*p); err != nil {
				return err
			}
			out[row][col] = *p
		}
	}
	*b = out
	return nil
}
