package botHandler

import (
	"context"

	"WynwoodBot/internal/bot"
	botService "WynwoodBot/internal/bot/service"
	pkgContext "WynwoodBot/pkg/context"
	"WynwoodBot/pkg/whatsapp"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// BotHandler adapts transport events into the bot pipelines.
type BotHandler struct {
	log     *logrus.Logger
	service botService.BotService
	client  whatsapp.IWhatsappClient
}

func New(log *logrus.Logger, service botService.BotService, client whatsapp.IWhatsappClient) *BotHandler {
	return &BotHandler{
		log:     log,
		service: service,
		client:  client,
	}
}

func (h *BotHandler) Start() {
	h.client.OnMessage(h.handleMessage)
}

func (h *BotHandler) handleMessage(msg whatsapp.Message) {
	in := bot.IncomingMessage{
		ChatID:    msg.ChatID,
		MessageID: msg.MessageID,
		Text:      msg.Text,
		IsFromMe:  msg.IsFromMe,
		IsGroup:   msg.IsGroup,
	}

	// Each turn runs on its own goroutine so a slow oracle round-trip
	// stalls only that chat. The request id ties a turn's log lines
	// together.
	ctx := pkgContext.WithRequestID(context.Background(), uuid.New().String())

	if msg.IsFromMe {
		go h.service.HandleOutgoing(ctx, in)
		return
	}

	go h.service.HandleIncoming(ctx, in)
}
