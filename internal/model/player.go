package model

import (
	"fmt"
)

// Opponent says who plays black.
type Opponent string

const (
	OpponentHuman Opponent = "human"
	OpponentAI    Opponent = "ai"
)

func ParseOpponent(s string) (Opponent, error) {
	switch o := Opponent(s); o {
	case OpponentHuman, OpponentAI:
		return o, nil
	case "":
		return OpponentHuman, nil
	}
	return "", fmt.Errorf("unknown opponent %q", s)
}

// aiColor is the side the computer plays when the opponent is the AI.
const aiColor = Black

type ClientPlayer struct {
	ID       string `json:"name"`
	Color    Color  `json:"color"`
	Computer bool   `json:"computer"`
}
