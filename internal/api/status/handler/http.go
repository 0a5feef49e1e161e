package statusHandler

import (
	statusService "WynwoodBot/internal/api/status/service"
	"WynwoodBot/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type StatusHandler struct {
	log        *logrus.Logger
	service    statusService.StatusService
	middleware middleware.Middleware
}

func New(log *logrus.Logger, service statusService.StatusService, mw middleware.Middleware) *StatusHandler {
	return &StatusHandler{
		log:        log,
		service:    service,
		middleware: mw,
	}
}

func (h *StatusHandler) Start(srv fiber.Router) {
	group := srv.Group("/status")
	group.Use(h.middleware.NewLoggingMiddleware())
	group.Use(h.middleware.NewRateLimiter)

	group.Get("/health", h.Health)
	group.Get("/qr", h.ChallengePage)
	group.Get("/qr.json", h.ChallengeJSON)
	group.Get("/qr/ws", h.ChallengeUpgrade, h.ChallengeSocket())
	group.Get("/stats", h.middleware.NewTokenMiddleware, h.Stats)
}
