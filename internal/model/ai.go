package model

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case Easy, Medium, Hard:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

var centerSquares = []Square{{Row: 3, Col: 3}, {Row: 3, Col: 4}, {Row: 4, Col: 3}, {Row: 4, Col: 4}}

// SelectAIMove picks a move for color c under difficulty d. ok is false when c
// has no legal move, in which case the caller should already have ended the game.
func SelectAIMove(b Board, c Color, d Difficulty, rng *rand.Rand) (Move, bool) {
	moves := LegalMovesFor(b, c)
	if len(moves) == 0 {
		return Move{}, false
	}
	switch d {
	case Medium:
		if captures := capturingMoves(b, moves); len(captures) > 0 {
			return pick(rng, captures), true
		}
		return pick(rng, moves), true
	case Hard:
		if captures := capturingMoves(b, moves); len(captures) > 0 {
			return pick(rng, captures), true
		}
		return closestToCenter(moves), true
	default:
		return pick(rng, moves), true
	}
}

func capturingMoves(b Board, moves []Move) []Move {
	var captures []Move
	for _, m := range moves {
		if !b.isEmpty(m.To) {
			captures = append(captures, m)
		}
	}
	return captures
}

func pick(rng *rand.Rand, moves []Move) Move {
	return moves[rng.IntN(len(moves))]
}

// closestToCenter returns the move landing nearest the four center squares.
// Ties go to the lowest destination, then the lowest origin, in (row, col) order.
func closestToCenter(moves []Move) Move {
	return slices.MinFunc(moves, func(a, b Move) int {
		if d := centerDistance(a.To) - centerDistance(b.To); d != 0 {
			return d
		}
		if c := compareSquares(a.To, b.To); c != 0 {
			return c
		}
		return compareSquares(a.From, b.From)
	})
}

func centerDistance(sq Square) int {
	best := -1
	for _, c := range centerSquares {
		d := abs(sq.Row-c.Row) + abs(sq.Col-c.Col)
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

func compareSquares(a, b Square) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	return a.Col - b.Col
}
