package controller

import (
	"errors"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// statusFor maps service and rules errors onto HTTP statuses.
func statusFor(err error) int {
	var illegal *model.IllegalMoveError
	var invalid *model.InvalidPieceError
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotOwner):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrGameOver), errors.Is(err, service.ErrGameExists):
		return fiber.StatusConflict
	case errors.As(err, &illegal),
		errors.Is(err, model.ErrIllegalMove),
		errors.Is(err, model.ErrWrongTurn),
		errors.Is(err, model.ErrNoPiece),
		errors.Is(err, model.ErrPieceMismatch),
		errors.Is(err, model.ErrNoSelection):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, service.ErrBadRequest),
		errors.Is(err, model.ErrOutOfBounds),
		errors.Is(err, model.ErrInvalidFEN),
		errors.As(err, &invalid):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func sendError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func playerID(c *fiber.Ctx) string {
	id, _ := c.Locals("playerID").(string)
	return id
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req service.CreateGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	gameID, err := gc.gameService.CreateGame(playerID(c), req)
	if err != nil {
		return sendError(c, err)
	}
	state, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
		"state":   state,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(gameState)
}

// LegalMoves answers GET /:gameId/moves?row=&col= with the squares to highlight.
func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	sq := model.Square{Row: c.QueryInt("row", -1), Col: c.QueryInt("col", -1)}
	targets, err := gc.gameService.LegalTargets(c.Params("gameId"), sq)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"from":    sq,
		"targets": targets,
	})
}

func (gc *GameController) Select(c *fiber.Ctx) error {
	var sq model.Square
	if err := c.BodyParser(&sq); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	sel, err := gc.gameService.SelectSquare(c.Params("gameId"), playerID(c), sq)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(sel)
}

func (gc *GameController) ClearSelection(c *fiber.Ctx) error {
	if err := gc.gameService.ClearSelection(c.Params("gameId"), playerID(c)); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Commit moves the selected piece to the posted square.
func (gc *GameController) Commit(c *fiber.Ctx) error {
	var sq model.Square
	if err := c.BodyParser(&sq); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	t, err := gc.gameService.CommitSelection(c.Params("gameId"), playerID(c), sq)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(t)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move model.WSMove
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	t, err := gc.gameService.HandleMove(c.Params("gameId"), playerID(c), move)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(t)
}

func (gc *GameController) Restart(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if err := gc.gameService.RestartGame(gameID, playerID(c)); err != nil {
		return sendError(c, err)
	}
	state, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteGame(c.Params("gameId"), playerID(c)); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
