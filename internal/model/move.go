package model

import (
	"fmt"
)

// Move describes a piece travelling from one square to another. It carries no
// board of its own.
type Move struct {
	From  Square `json:"from"`
	To    Square `json:"to"`
	Piece Piece  `json:"piece"`
}

func (m Move) String() string {
	return fmt.Sprintf("%s %s-%s", m.Piece, m.From, m.To)
}

// ApplyMove returns a copy of b with m played. b itself is untouched.
func ApplyMove(b Board, m Move) Board {
	if !m.From.InBounds() || !m.To.InBounds() {
		return b
	}
	next := b
	next.set(m.To, m.Piece)
	next.set(m.From, NoPiece)
	return next
}

type Reason string

const (
	ReasonKingCaptured Reason = "king-captured"
	ReasonCheckmate    Reason = "checkmate"
	ReasonStalemate    Reason = "stalemate"
)

// Result is a finished game. Winner is NoColor for a draw.
type Result struct {
	Winner Color  `json:"winner"`
	Reason Reason `json:"reason"`
}

// Outcome evaluates the terminal conditions for b with toMove on move. It
// returns nil while the game is still running.
func Outcome(b Board, toMove Color) *Result {
	if _, ok := b.KingSquare(White); !ok {
		return &Result{Winner: Black, Reason: ReasonKingCaptured}
	}
	if _, ok := b.KingSquare(Black); !ok {
		return &Result{Winner: White, Reason: ReasonKingCaptured}
	}
	if HasLegalMove(b, toMove) {
		return nil
	}
	if IsInCheck(b, toMove) {
		return &Result{Winner: toMove.Opponent(), Reason: ReasonCheckmate}
	}
	return &Result{Winner: NoColor, Reason: ReasonStalemate}
}

// Transition is the position after a committed move.
type Transition struct {
	Board    Board   `json:"board"`
	Move     Move    `json:"move"`
	Captured Piece   `json:"captured"`
	ToMove   Color   `json:"toMove"`
	IsCheck  bool    `json:"isCheck"`
	Result   *Result `json:"result"`
	Notation string  `json:"notation"`
}

// Play validates m for the side turn and, if it is legal, applies it and
// evaluates the resulting position. b is never modified.
func Play(b Board, turn Color, m Move) (Transition, error) {
	if !m.From.InBounds() || !m.To.InBounds() {
		return Transition{}, ErrOutOfBounds
	}
	onSquare := b.PieceAt(m.From)
	if onSquare.IsEmpty() {
		return Transition{}, ErrNoPiece
	}
	if m.Piece.IsEmpty() {
		m.Piece = onSquare
	}
	if m.Piece != onSquare {
		return Transition{}, ErrPieceMismatch
	}
	color, err := ColorOf(m.Piece)
	if err != nil {
		return Transition{}, &IllegalMoveError{Move: m, Reason: err.Error()}
	}
	if color != turn {
		return Transition{}, ErrWrongTurn
	}
	if !canReach(b, m.From, m.To, m.Piece) {
		return Transition{}, &IllegalMoveError{Move: m, Reason: "piece cannot move there"}
	}
	next := ApplyMove(b, m)
	if IsInCheck(next, turn) {
		return Transition{}, &IllegalMoveError{Move: m, Reason: "leaves own king in check"}
	}

	t := Transition{
		Board:    next,
		Move:     m,
		Captured: b.PieceAt(m.To),
		ToMove:   turn.Opponent(),
		Notation: notation(b, m),
	}
	t.IsCheck = IsInCheck(next, t.ToMove)
	t.Result = Outcome(next, t.ToMove)
	if t.Result != nil && t.Result.Reason == ReasonCheckmate {
		t.Notation += "#"
	} else if t.IsCheck {
		t.Notation += "+"
	}
	return t, nil
}

func notation(b Board, m Move) string {
	prefix := m.Piece.Type.getPieceNotation()
	capture := ""
	if !b.isEmpty(m.To) {
		capture = "x"
	}
	pawnFile := ""
	if m.Piece.Type == Pawn && m.From.Col != m.To.Col {
		pawnFile = m.From.getFileNotation()
	}
	return fmt.Sprintf("%s%s%s%s", prefix, pawnFile, capture, m.To.getSquareNotation())
}

// WSMove is a move request from the browser, by drag-and-drop or a second click.
type WSMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}
