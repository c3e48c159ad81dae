package model

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove   = errors.New("invalid move, not legal")
	ErrOutOfBounds   = errors.New("invalid move, out of bounds")
	ErrWrongTurn     = errors.New("not your turn")
	ErrNoPiece       = errors.New("no piece at from square")
	ErrPieceMismatch = errors.New("piece does not match from square")
	ErrGameOver      = errors.New("game is over")
	ErrNotOwner      = errors.New("player does not own this game")
	ErrNoSelection   = errors.New("no piece selected")
	ErrInvalidFEN    = errors.New("invalid fen")
)

// IllegalMoveError describes why a candidate move was rejected.
type IllegalMoveError struct {
	Move   Move
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s: %s", e.Move, e.Reason)
}

func (e *IllegalMoveError) Unwrap() error {
	return ErrIllegalMove
}

// InvalidPieceError reports a piece identity outside the fixed piece set.
type InvalidPieceError struct {
	Name string
}

func (e *InvalidPieceError) Error() string {
	return fmt.Sprintf("invalid piece %q", e.Name)
}
