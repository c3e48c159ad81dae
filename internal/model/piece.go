package model

import (
	"fmt"
)

type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Rook
	Knight
	Bishop
	Queen
	King
)

var pieceTypeNames = [...]string{
	NoPieceType: "",
	Pawn:        "pawn",
	Rook:        "rook",
	Knight:      "knight",
	Bishop:      "bishop",
	Queen:       "queen",
	King:        "king",
}

func (t PieceType) String() string {
	if int(t) < len(pieceTypeNames) {
		return pieceTypeNames[t]
	}
	return fmt.Sprintf("PieceType(%d)", uint8(t))
}

func (t PieceType) valid() bool {
	return t >= Pawn && t <= King
}

func (t PieceType) getPieceNotation() string {
	switch t {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// MarshalText encodes NoPieceType as "" so an empty Piece still serializes.
func (t PieceType) MarshalText() ([]byte, error) {
	if int(t) >= len(pieceTypeNames) {
		return nil, &InvalidPieceError{Name: t.String()}
	}
	return []byte(t.String()), nil
}

func (t *PieceType) UnmarshalText(text []byte) error {
	for i := NoPieceType; i <= King; i++ {
		if pieceTypeNames[i] == string(text) {
			*t = i
			return nil
		}
	}
	return &InvalidPieceError{Name: string(text)}
}

type Color uint8

const (
	NoColor Color = iota
	White
	Black
)

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return ""
}

// Opponent returns the other side. NoColor has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

func (c Color) valid() bool {
	return c == White || c == Black
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*c = White
	case "black":
		*c = Black
	case "":
		*c = NoColor
	default:
		return &InvalidPieceError{Name: string(text)}
	}
	return nil
}

// Piece is a Kind×Color pair. The zero value is an empty square.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

var NoPiece = Piece{}

func NewPiece(t PieceType, c Color) Piece {
	return Piece{Type: t, Color: c}
}

func (p Piece) IsEmpty() bool {
	return p == NoPiece
}

func (p Piece) valid() bool {
	return p.Type.valid() && p.Color.valid()
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return ""
	}
	return p.Color.String() + " " + p.Type.String()
}

// ColorOf reports which side owns p.
func ColorOf(p Piece) (Color, error) {
	if !p.valid() {
		return NoColor, &InvalidPieceError{Name: p.String()}
	}
	return p.Color, nil
}
