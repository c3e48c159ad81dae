package model

var kingDirs = []Square{{Row: 1, Col: 0}, {Row: -1, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: -1}, {Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}

// pawnForward is the row step for a pawn of color c.
func pawnForward(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

func pawnStartRow(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

// IsLegal reports whether piece may move from -> to on b. Besides the movement
// shape, the move must not leave the mover's own king in check.
func IsLegal(b Board, from, to Square, piece Piece) bool {
	if !canReach(b, from, to, piece) {
		return false
	}
	return !leavesKingInCheck(b, Move{From: from, To: to, Piece: piece})
}

// canReach is movement-shape legality only. It never consults check detection,
// which is what lets IsSquareAttacked use it without recursing.
func canReach(b Board, from, to Square, piece Piece) bool {
	if !piece.valid() || !from.InBounds() || !to.InBounds() || from == to {
		return false
	}
	if target := b.PieceAt(to); !target.IsEmpty() && target.Color == piece.Color {
		return false
	}

	dr, dc := to.Row-from.Row, to.Col-from.Col
	switch piece.Type {
	case Pawn:
		return pawnCanReach(b, from, to, piece.Color)
	case Rook:
		return (dr == 0 || dc == 0) && pathClear(b, from, to)
	case Knight:
		ar, ac := abs(dr), abs(dc)
		return (ar == 2 && ac == 1) || (ar == 1 && ac == 2)
	case Bishop:
		return abs(dr) == abs(dc) && pathClear(b, from, to)
	case Queen:
		return (dr == 0 || dc == 0 || abs(dr) == abs(dc)) && pathClear(b, from, to)
	case King:
		return abs(dr) <= 1 && abs(dc) <= 1
	}
	return false
}

func pawnCanReach(b Board, from, to Square, c Color) bool {
	dir := pawnForward(c)
	dr, dc := to.Row-from.Row, to.Col-from.Col
	switch {
	case dc == 0 && dr == dir:
		return b.isEmpty(to)
	case dc == 0 && dr == 2*dir:
		mid := Square{Row: from.Row + dir, Col: from.Col}
		return from.Row == pawnStartRow(c) && b.isEmpty(mid) && b.isEmpty(to)
	case abs(dc) == 1 && dr == dir:
		target := b.PieceAt(to)
		return !target.IsEmpty() && target.Color != c
	}
	return false
}

// pathClear walks from -> to one unit step at a time and reports whether every
// square strictly between them is empty. A null move is never clear.
func pathClear(b Board, from, to Square) bool {
	stepR, stepC := sign(to.Row-from.Row), sign(to.Col-from.Col)
	if stepR == 0 && stepC == 0 {
		return false
	}
	sq := Square{Row: from.Row + stepR, Col: from.Col + stepC}
	for sq != to {
		if !sq.InBounds() {
			return false
		}
		if !b.isEmpty(sq) {
			return false
		}
		sq = Square{Row: sq.Row + stepR, Col: sq.Col + stepC}
	}
	return true
}

func leavesKingInCheck(b Board, m Move) bool {
	return IsInCheck(ApplyMove(b, m), m.Piece.Color)
}

// LegalTargets lists every square the piece on from may legally move to.
func LegalTargets(b Board, from Square) []Square {
	piece := b.PieceAt(from)
	if piece.IsEmpty() {
		return nil
	}
	var targets []Square
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			to := Square{Row: row, Col: col}
			if IsLegal(b, from, to, piece) {
				targets = append(targets, to)
			}
		}
	}
	return targets
}

// LegalMovesFor enumerates every legal move for color c in board order.
func LegalMovesFor(b Board, c Color) []Move {
	var moves []Move
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			from := Square{Row: row, Col: col}
			piece := b[row][col]
			if piece.IsEmpty() || piece.Color != c {
				continue
			}
			for _, to := range LegalTargets(b, from) {
				moves = append(moves, Move{From: from, To: to, Piece: piece})
			}
		}
	}
	return moves
}

// HasLegalMove is LegalMovesFor(b, c) != nil without building the slice.
func HasLegalMove(b Board, c Color) bool {
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			piece := b[row][col]
			if piece.IsEmpty() || piece.Color != c {
				continue
			}
			from := Square{Row: row, Col: col}
			for tr := 0; tr < boardSize; tr++ {
				for tc := 0; tc < boardSize; tc++ {
					if IsLegal(b, from, Square{Row: tr, Col: tc}, piece) {
						return true
					}
				}
			}
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
