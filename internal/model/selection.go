package model

type Phase string

const (
	AwaitingSelection Phase = "awaitingSelection"
	PieceSelected     Phase = "pieceSelected"
	MoveCommitted     Phase = "moveCommitted"
)

// Selection is the input state machine between the browser and the board.
// Every method returns a new value, the receiver is left as it was.
type Selection struct {
	Phase   Phase    `json:"phase"`
	From    *Square  `json:"from"`
	Piece   Piece    `json:"piece"`
	Targets []Square `json:"targets"`
}

func NewSelection() Selection {
	return Selection{Phase: AwaitingSelection, Targets: []Square{}}
}

// Select picks up the piece on sq for side turn. Selecting again replaces the
// previous choice.
func (s Selection) Select(b Board, turn Color, sq Square) (Selection, error) {
	if !sq.InBounds() {
		return s, ErrOutOfBounds
	}
	piece := b.PieceAt(sq)
	if piece.IsEmpty() {
		return s, ErrNoPiece
	}
	if piece.Color != turn {
		return s, ErrWrongTurn
	}
	from := sq
	targets := LegalTargets(b, sq)
	if targets == nil {
		targets = []Square{}
	}
	return Selection{Phase: PieceSelected, From: &from, Piece: piece, Targets: targets}, nil
}

// Commit plays the selected piece to sq. On error the selection is returned unchanged.
func (s Selection) Commit(b Board, turn Color, to Square) (Selection, Transition, error) {
	if s.Phase != PieceSelected || s.From == nil {
		return s, Transition{}, ErrNoSelection
	}
	t, err := Play(b, turn, Move{From: *s.From, To: to, Piece: s.Piece})
	if err != nil {
		return s, Transition{}, err
	}
	return Selection{Phase: MoveCommitted, Targets: []Square{}}, t, nil
}

// Clear drops any selection.
func (s Selection) Clear() Selection {
	return NewSelection()
}
