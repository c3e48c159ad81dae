package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// PlayerIDHeader identifies the browser session that owns a game.
const PlayerIDHeader = "X-Player-ID"

// EnsurePlayerID stores the caller's player ID in c.Locals("playerID"),
// taken from the X-Player-ID header or the playerId query parameter. The ID
// outlives the request as a game owner and connection key, so it is copied out
// of fasthttp's reused buffer.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		playerID := c.Get(PlayerIDHeader)
		if playerID == "" {
			playerID = c.Query("playerId")
		}

		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}

		c.Locals("playerID", utils.CopyString(playerID))
		return c.Next()
	}
}
