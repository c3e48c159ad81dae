package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/websocket/v2"
)

// Locals keys read by the websocket handler after the upgrade.
const (
	WSGameIDKey   = "wsGameID"
	WSPlayerIDKey = "wsPlayerID"
)

// WebSocketUpgrade only lets genuine upgrade requests for an existing game
// through. gameExists is asked before the handshake so an unknown game gets a
// plain 404 instead of a socket that closes immediately.
func WebSocketUpgrade(gameExists func(gameID string) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		gameID := c.Params("gameId")
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}

		// Set by EnsurePlayerID
		playerID, _ := c.Locals("playerID").(string)
		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		if gameExists != nil && !gameExists(gameID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "game not found",
			})
		}

		c.Locals(WSGameIDKey, utils.CopyString(gameID))
		c.Locals(WSPlayerIDKey, playerID)
		return c.Next()
	}
}
