package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestApplyMoveDoesNotMutate(t *testing.T) {
	b := NewBoard()
	before := b

	next := ApplyMove(b, Move{From: sq(6, 4), To: sq(4, 4), Piece: wP})

	if diff := cmp.Diff(before, b); diff != "" {
		t.Errorf("ApplyMove mutated its input (-before +after):\n%s", diff)
	}
	if got := next.PieceAt(sq(4, 4)); got != wP {
		t.Errorf("destination holds %q, want white pawn", got)
	}
	if got := next.PieceAt(sq(6, 4)); !got.IsEmpty() {
		t.Errorf("origin holds %q, want empty", got)
	}
}

func TestApplyMoveOffBoard(t *testing.T) {
	b := NewBoard()
	moves := []Move{
		{From: sq(6, 4), To: sq(8, 4), Piece: wP},
		{From: sq(-1, 0), To: sq(4, 4), Piece: wQ},
		{From: sq(6, 4), To: sq(4, 9), Piece: wP},
	}
	for _, m := range moves {
		if got := ApplyMove(b, m); got != b {
			t.Errorf("ApplyMove(%v) changed the board, want it unchanged", m)
		}
	}
}

func TestPlay(t *testing.T) {
	b := NewBoard()
	tr, err := Play(b, White, Move{From: sq(6, 4), To: sq(4, 4), Piece: wP})
	if err != nil {
		t.Fatalf("Play(e2-e4) error: %v", err)
	}
	if tr.ToMove != Black {
		t.Errorf("ToMove = %v, want black", tr.ToMove)
	}
	if tr.IsCheck || tr.Result != nil {
		t.Errorf("IsCheck = %v, Result = %v; want false, nil", tr.IsCheck, tr.Result)
	}
	if tr.Notation != "e4" {
		t.Errorf("Notation = %q, want e4", tr.Notation)
	}
	if diff := cmp.Diff(NewBoard(), b); diff != "" {
		t.Errorf("Play mutated its input (-want +got):\n%s", diff)
	}
}

func TestPlayFillsPieceFromBoard(t *testing.T) {
	tr, err := Play(NewBoard(), White, Move{From: sq(7, 6), To: sq(5, 5)})
	if err != nil {
		t.Fatalf("Play(Ng1-f3) error: %v", err)
	}
	if tr.Move.Piece != wN || tr.Notation != "Nf3" {
		t.Errorf("Move.Piece = %v, Notation = %q; want white knight, Nf3", tr.Move.Piece, tr.Notation)
	}
}

func TestPlayRejections(t *testing.T) {
	pinned := place(map[Square]Piece{sq(0, 4): bK, sq(1, 4): bB, sq(7, 4): wR, sq(7, 7): wK})

	tests := []struct {
		name    string
		board   Board
		turn    Color
		move    Move
		wantErr error
	}{
		{"wrong turn", NewBoard(), Black, Move{From: sq(6, 4), To: sq(4, 4), Piece: wP}, ErrWrongTurn},
		{"empty origin", NewBoard(), White, Move{From: sq(4, 4), To: sq(3, 4)}, ErrNoPiece},
		{"piece mismatch", NewBoard(), White, Move{From: sq(6, 4), To: sq(4, 4), Piece: wQ}, ErrPieceMismatch},
		{"off board", NewBoard(), White, Move{From: sq(6, 4), To: sq(-1, 4), Piece: wP}, ErrOutOfBounds},
		{"bad shape", NewBoard(), White, Move{From: sq(6, 4), To: sq(3, 4), Piece: wP}, ErrIllegalMove},
		{"exposes king", pinned, Black, Move{From: sq(1, 4), To: sq(2, 3), Piece: bB}, ErrIllegalMove},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Play(tt.board, tt.turn, tt.move)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Play() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	_, err := Play(pinned, Black, Move{From: sq(1, 4), To: sq(2, 3), Piece: bB})
	var illegal *IllegalMoveError
	if !errors.As(err, &illegal) {
		t.Fatalf("Play(pinned) error = %v, want *IllegalMoveError", err)
	}
	if illegal.Reason != "leaves own king in check" {
		t.Errorf("Reason = %q", illegal.Reason)
	}
}

func TestPlayMustResolveCheck(t *testing.T) {
	// White king on e1 is checked by the rook on e8.
	b, turn := mustFEN(t, "4r2k/8/8/8/8/8/P7/4K3 w - - 0 1")
	if !IsInCheck(b, turn) {
		t.Fatal("setup: white is not in check")
	}

	if _, err := Play(b, White, Move{From: sq(6, 0), To: sq(5, 0), Piece: wP}); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("a2-a3 while in check: error = %v, want ErrIllegalMove", err)
	}
	if _, err := Play(b, White, Move{From: sq(7, 4), To: sq(7, 3), Piece: wK}); err != nil {
		t.Errorf("Ke1-d1 out of check: error = %v", err)
	}

	for _, m := range LegalMovesFor(b, White) {
		if IsInCheck(ApplyMove(b, m), White) {
			t.Errorf("LegalMovesFor offered %v which stays in check", m)
		}
	}
}

func TestPlayCheckmate(t *testing.T) {
	b, _ := mustFEN(t, "7k/6pp/8/8/8/8/8/R3K3 w - - 0 1")
	tr, err := Play(b, White, Move{From: sq(7, 0), To: sq(0, 0), Piece: wR})
	if err != nil {
		t.Fatalf("Play(Ra1-a8) error: %v", err)
	}
	want := &Result{Winner: White, Reason: ReasonCheckmate}
	if diff := cmp.Diff(want, tr.Result); diff != "" {
		t.Errorf("Result mismatch (-want +got):\n%s", diff)
	}
	if !tr.IsCheck || tr.Notation != "Ra8#" {
		t.Errorf("IsCheck = %v, Notation = %q; want true, Ra8#", tr.IsCheck, tr.Notation)
	}
}

func TestPlayCapture(t *testing.T) {
	b := place(map[Square]Piece{sq(6, 4): wP, sq(5, 5): bN, sq(7, 0): wK, sq(0, 7): bK})
	tr, err := Play(b, White, Move{From: sq(6, 4), To: sq(5, 5), Piece: wP})
	if err != nil {
		t.Fatalf("Play(exf3) error: %v", err)
	}
	if tr.Captured != bN {
		t.Errorf("Captured = %v, want black knight", tr.Captured)
	}
	if tr.Notation != "exf3" {
		t.Errorf("Notation = %q, want exf3", tr.Notation)
	}
}

func TestOutcomeKingCaptured(t *testing.T) {
	b := place(map[Square]Piece{sq(7, 4): wK, sq(3, 3): wQ})
	want := &Result{Winner: White, Reason: ReasonKingCaptured}
	for i := 0; i < 3; i++ {
		if diff := cmp.Diff(want, Outcome(b, Black)); diff != "" {
			t.Fatalf("Outcome call %d (-want +got):\n%s", i, diff)
		}
	}
	if got := Outcome(b, White); got == nil || got.Winner != White {
		t.Errorf("Outcome with white to move = %+v, want white winner", got)
	}

	b = place(map[Square]Piece{sq(0, 4): bK})
	if got := Outcome(b, White); got == nil || got.Winner != Black || got.Reason != ReasonKingCaptured {
		t.Errorf("Outcome without white king = %+v, want black wins", got)
	}
}

func TestOutcomeOngoing(t *testing.T) {
	if got := Outcome(NewBoard(), White); got != nil {
		t.Errorf("Outcome(start) = %+v, want nil", got)
	}
}
