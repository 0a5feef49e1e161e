package statusHandler

import (
	"errors"
	"fmt"

	"WynwoodBot/internal/api/status"
	"WynwoodBot/pkg/response"

	"github.com/gofiber/fiber/v2"
)

func (h *StatusHandler) Health(ctx *fiber.Ctx) error {
	health := h.service.Health()

	code := fiber.StatusOK
	if health.Status != "healthy" {
		code = fiber.StatusServiceUnavailable
	}

	return ctx.Status(code).JSON(health)
}

func (h *StatusHandler) ChallengeJSON(ctx *fiber.Ctx) error {
	challenge, err := h.service.Challenge()
	if err != nil {
		if errors.Is(err, status.ErrNoChallenge) {
			return ctx.Status(response.CodeOf(err)).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return err
	}

	return ctx.JSON(challenge)
}

// ChallengePage renders a minimal self-refreshing page that draws the
// pairing code as a QR image client-side.
func (h *StatusHandler) ChallengePage(ctx *fiber.Ctx) error {
	challenge, err := h.service.Challenge()

	body := `<p>No hay código de vinculación pendiente. / No pairing code pending.</p>`
	if err == nil && challenge.Fresh {
		body = fmt.Sprintf(
			`<div id="qrcode"></div>
<script src="https://cdn.jsdelivr.net/npm/qrcodejs@1.0.0/qrcode.min.js"></script>
<script>new QRCode(document.getElementById("qrcode"), %q);</script>
<p>Escanea dentro de 60 segundos. / Scan within 60 seconds.</p>`,
			challenge.Code,
		)
	} else if err == nil {
		body = `<p>El último código expiró; esperando uno nuevo... / Last code expired; waiting for a new one...</p>`
	}

	page := fmt.Sprintf(
		`<!DOCTYPE html><html><head><meta charset="utf-8"><meta http-equiv="refresh" content="10"><title>WhatsApp Pairing</title></head><body>%s</body></html>`,
		body,
	)

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.SendString(page)
}

func (h *StatusHandler) Stats(ctx *fiber.Ctx) error {
	return ctx.JSON(h.service.Stats())
}
