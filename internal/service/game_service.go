package service

import (
	"fmt"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// CreateGameRequest is what the browser sends to start a game.
type CreateGameRequest struct {
	Opponent   string `json:"opponent"`
	Difficulty string `json:"difficulty"`
	FEN        string `json:"fen"`
}

type GameService struct {
	gameManager       *GameManager
	aiDelay           time.Duration
	defaultDifficulty model.Difficulty
	schedule          model.AfterFunc
}

type Option func(*GameService)

// WithAIDelay sets the pause before the computer replies.
func WithAIDelay(d time.Duration) Option {
	return func(gs *GameService) { gs.aiDelay = d }
}

func WithDefaultDifficulty(d model.Difficulty) Option {
	return func(gs *GameService) { gs.defaultDifficulty = d }
}

// WithSchedule replaces the timer used for computer replies.
func WithSchedule(f model.AfterFunc) Option {
	return func(gs *GameService) { gs.schedule = f }
}

func NewGameService(gameManager *GameManager, opts ...Option) *GameService {
	gs := &GameService{
		gameManager:       gameManager,
		defaultDifficulty: model.Easy,
	}
	for _, opt := range opts {
		opt(gs)
	}
	return gs
}

func (gs *GameService) CreateGame(playerID string, req CreateGameRequest) (string, error) {
	opponent, err := model.ParseOpponent(req.Opponent)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	difficulty := gs.defaultDifficulty
	if req.Difficulty != "" {
		if difficulty, err = model.ParseDifficulty(req.Difficulty); err != nil {
			return "", fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
	}

	gameID := uuid.New().String()
	_, err = gs.gameManager.CreateGame(gameID, model.Options{
		Owner:      playerID,
		Opponent:   opponent,
		Difficulty: difficulty,
		FEN:        req.FEN,
		AIDelay:    gs.aiDelay,
		Schedule:   gs.schedule,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) LegalTargets(gameID string, sq model.Square) ([]model.Square, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	if !sq.InBounds() {
		return nil, model.ErrOutOfBounds
	}
	return game.LegalTargets(sq), nil
}

func (gs *GameService) SelectSquare(gameID string, playerID string, sq model.Square) (model.Selection, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.Selection{}, err
	}
	return game.Select(playerID, sq)
}

func (gs *GameService) ClearSelection(gameID string, playerID string) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.ClearSelection(playerID)
}

// CommitSelection moves the selected piece to sq, the second click of a click-click move.
func (gs *GameService) CommitSelection(gameID string, playerID string, sq model.Square) (model.Transition, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.Transition{}, err
	}
	return game.CommitSelection(playerID, sq)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.WSMove) (model.Transition, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.Transition{}, err
	}
	return game.MakeMove(playerID, move)
}

func (gs *GameService) RestartGame(gameID string, playerID string) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Restart(playerID)
}

func (gs *GameService) DeleteGame(gameID string, playerID string) error {
	return gs.gameManager.RemoveGame(gameID, playerID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

// SendError reports err to playerID over the game's websocket.
func (gs *GameService) SendError(gameID string, playerID string, err error) error {
	game, getErr := gs.gameManager.GetGame(gameID)
	if getErr != nil {
		return getErr
	}
	msg, mErr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if mErr != nil {
		return mErr
	}
	return game.Send(playerID, msg)
}
