package model

// IsSquareAttacked reports whether any piece of color by could move onto sq
// by movement shape alone.
func IsSquareAttacked(b Board, sq Square, by Color) bool {
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			p := b[row][col]
			if p.IsEmpty() || p.Color != by {
				continue
			}
			if canReach(b, Square{Row: row, Col: col}, sq, p) {
				return true
			}
		}
	}
	return false
}

// IsInCheck reports whether c's king is attacked. A side without a king has
// already lost, so it is never in check.
func IsInCheck(b Board, c Color) bool {
	king, ok := b.KingSquare(c)
	if !ok {
		return false
	}
	return IsSquareAttacked(b, king, c.Opponent())
}

// CanKingEscape reports whether c's king has any legal step to a neighbouring square.
func CanKingEscape(b Board, c Color) bool {
	from, ok := b.KingSquare(c)
	if !ok {
		return false
	}
	king := b.PieceAt(from)
	for _, dir := range kingDirs {
		if IsLegal(b, from, Square{Row: from.Row + dir.Row, Col: from.Col + dir.Col}, king) {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether c is in check and no move by any of its pieces resolves it.
func IsCheckmate(b Board, c Color) bool {
	if !IsInCheck(b, c) {
		return false
	}
	if CanKingEscape(b, c) {
		return false
	}
	return !HasLegalMove(b, c)
}

// IsStalemate reports whether c is not in check but has no legal move.
func IsStalemate(b Board, c Color) bool {
	if _, ok := b.KingSquare(c); !ok {
		return false
	}
	return !IsInCheck(b, c) && !HasLegalMove(b, c)
}
