package model

import (
	"fmt"

	"github.com/notnil/chess"
)

var toChessType = map[PieceType]chess.PieceType{
	Pawn:   chess.Pawn,
	Rook:   chess.Rook,
	Knight: chess.Knight,
	Bishop: chess.Bishop,
	Queen:  chess.Queen,
	King:   chess.King,
}

var fromChessType = map[chess.PieceType]PieceType{
	chess.Pawn:   Pawn,
	chess.Rook:   Rook,
	chess.Knight: Knight,
	chess.Bishop: Bishop,
	chess.Queen:  Queen,
	chess.King:   King,
}

func squareOf(sq chess.Square) Square {
	return Square{Row: boardSize - 1 - int(sq.Rank()), Col: int(sq.File())}
}

func chessSquare(sq Square) chess.Square {
	return chess.NewSquare(chess.File(sq.Col), chess.Rank(boardSize-1-sq.Row))
}

// ParseFEN reads a position in Forsyth-Edwards Notation. Castling and en
// passant fields are accepted but ignored. Both kings must be present.
func ParseFEN(fen string) (Board, Color, error) {
	var pos chess.Position
	if err := pos.UnmarshalText([]byte(fen)); err != nil {
		return Board{}, NoColor, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}

	var b Board
	cb := pos.Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		p := cb.Piece(sq)
		if p == chess.NoPiece {
			continue
		}
		t, ok := fromChessType[p.Type()]
		if !ok {
			return Board{}, NoColor, &InvalidPieceError{Name: p.String()}
		}
		c := White
		if p.Color() == chess.Black {
			c = Black
		}
		b.set(squareOf(sq), NewPiece(t, c))
	}
	for _, c := range []Color{White, Black} {
		if _, ok := b.KingSquare(c); !ok {
			return Board{}, NoColor, fmt.Errorf("%w: no %s king", ErrInvalidFEN, c)
		}
	}

	turn := White
	if pos.Turn() == chess.Black {
		turn = Black
	}
	return b, turn, nil
}

// FEN encodes b with turn to move. Castling and en passant are always "-".
func (b Board) FEN(turn Color) string {
	pieces := make(map[chess.Square]chess.Piece)
	for row := range b {
		for col, p := range b[row] {
			if !p.valid() {
				continue
			}
			c := chess.White
			if p.Color == Black {
				c = chess.Black
			}
			pieces[chessSquare(Square{Row: row, Col: col})] = chess.NewPiece(toChessType[p.Type], c)
		}
	}
	side := "w"
	if turn == Black {
		side = "b"
	}
	return fmt.Sprintf("%s %s - - 0 1", chess.NewBoard(pieces).String(), side)
}
