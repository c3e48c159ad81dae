package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/middleware"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals(middleware.WSGameIDKey).(string)
	playerID, _ := c.Locals(middleware.WSPlayerIDKey).(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warnf("failed to register connection for game %s: %v", gameID, err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("game %s: read error: %v", gameID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debugf("game %s: parse error: %v", gameID, err)
			wsc.sendError(gameID, playerID, fmt.Errorf("malformed message: %w", err))
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Debugf("game %s: %s rejected: %v", gameID, msg.Type, err)
			wsc.sendError(gameID, playerID, err)
		}
	}
}

// handleMessage applies one client message. State changes reach the client
// through the game's broadcast, so only failures are answered directly.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeSelect:
		var sq model.Square
		if err := json.Unmarshal(msg.Payload, &sq); err != nil {
			return err
		}
		_, err := wsc.gameService.SelectSquare(gameID, playerID, sq)
		return err

	case ws.MessageTypeCommit:
		var sq model.Square
		if err := json.Unmarshal(msg.Payload, &sq); err != nil {
			return err
		}
		_, err := wsc.gameService.CommitSelection(gameID, playerID, sq)
		return err

	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, move)
		return err

	case ws.MessageTypeClearSelection:
		return wsc.gameService.ClearSelection(gameID, playerID)

	case ws.MessageTypeRestart:
		return wsc.gameService.RestartGame(gameID, playerID)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(gameID, playerID string, err error) {
	if sendErr := wsc.gameService.SendError(gameID, playerID, err); sendErr != nil {
		log.Warnf("game %s: failed to send error to player %s: %v", gameID, playerID, sendErr)
	}
}
