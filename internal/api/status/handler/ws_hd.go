package statusHandler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func (h *StatusHandler) ChallengeUpgrade(ctx *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(ctx) {
		return ctx.Next()
	}
	return fiber.ErrUpgradeRequired
}

// ChallengeSocket pushes the current challenge every two seconds so the
// display page swaps QR codes without polling.
func (h *StatusHandler) ChallengeSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		defer conn.Close()

		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			challenge, err := h.service.Challenge()
			if err != nil {
				if writeErr := conn.WriteJSON(fiber.Map{"code": ""}); writeErr != nil {
					return
				}
				continue
			}

			if err := conn.WriteJSON(challenge); err != nil {
				return
			}
		}
	})
}
