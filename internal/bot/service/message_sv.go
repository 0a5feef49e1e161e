package botService

import (
	"context"

	"WynwoodBot/internal/bot"
	"WynwoodBot/internal/entity"
	pkgContext "WynwoodBot/pkg/context"

	"github.com/sirupsen/logrus"
)

func (s *botService) HandleIncoming(ctx context.Context, msg bot.IncomingMessage) {
	// Group conversations are never the bot's business.
	if msg.IsGroup || s.utils.IsGroupChatID(msg.ChatID) {
		return
	}

	if s.isOwner(msg.ChatID) {
		s.handleOwnerInbound(ctx, msg)
		return
	}

	if s.repo.Disables().IsDisabled(msg.ChatID) {
		s.log.WithFields(logrus.Fields{
			"request_id": pkgContext.GetRequestID(ctx),
			"chat_id":    msg.ChatID,
		}).Debug("Chat is disabled, dropping message")
		return
	}

	userID := s.utils.UserIDFromChatID(msg.ChatID)
	session := s.repo.Sessions().Get(userID)

	intent, err := s.oracle.DetectIntent(ctx, userID, msg.Text, string(session.Language), activeContexts(session))
	if err != nil {
		// Turn-boundary failure: apologize, leave the session untouched.
		s.log.WithFields(logrus.Fields{
			"request_id": pkgContext.GetRequestID(ctx),
			"chat_id":    msg.ChatID,
			"error":      err.Error(),
		}).Error("Intent detection failed")
		s.send(ctx, msg.ChatID, catalogText(msgApology, session.Language))
		return
	}

	open := s.hours.IsOpen(s.clock.Now())
	effect := s.transition(session, intent, msg.Text, open)

	if effect.Patch != (entity.SessionPatch{}) {
		s.repo.Sessions().Update(userID, effect.Patch)
	}

	if effect.CompleteChat {
		s.repo.Disables().MarkCompleted(msg.ChatID, s.cfg.CompletedHours)
		s.repo.Sessions().Reset(userID)
	}

	for _, reply := range effect.Replies {
		s.send(ctx, msg.ChatID, reply)
	}
}

func (s *botService) handleOwnerInbound(ctx context.Context, msg bot.IncomingMessage) {
	if s.isCommand(msg.Text) {
		reply := s.handleCommand(ctx, msg.ChatID, msg.Text)
		if reply != "" {
			s.send(ctx, msg.ChatID, reply)
		}
		return
	}

	if s.detectOwnerMessage(msg.ChatID, msg.Text) {
		s.log.WithFields(logrus.Fields{
			"chat_id": msg.ChatID,
		}).Info("Manual intervention detected from owner message")
		s.repo.Disables().RegisterManualIntervention(msg.ChatID, s.cfg.ManualHours)
	}
}

// HandleOutgoing watches messages leaving the monitored account. The
// sent-id cache is the primary classifier; the signature-phrase check is a
// degraded fallback that misreads a human typing one of the phrases.
func (s *botService) HandleOutgoing(ctx context.Context, msg bot.IncomingMessage) {
	if msg.IsGroup || s.utils.IsGroupChatID(msg.ChatID) {
		return
	}

	sentByBot, err := s.sentCache.WasSentByBot(ctx, msg.MessageID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"message_id": msg.MessageID,
			"error":      err.Error(),
		}).Warn("Sent-id cache lookup failed, falling back to signatures")
	}
	if sentByBot || containsSignature(msg.Text) {
		return
	}

	// A human typed on the business phone. Commands are dispatched against
	// the chat they were typed in; free text silences the bot there.
	if s.isCommand(msg.Text) {
		reply := s.handleCommand(ctx, msg.ChatID, msg.Text)
		if reply != "" {
			s.send(ctx, msg.ChatID, reply)
		}
		return
	}

	s.log.WithFields(logrus.Fields{
		"chat_id": msg.ChatID,
	}).Info("Manual intervention detected on outgoing message")
	s.repo.Disables().RegisterManualIntervention(msg.ChatID, s.cfg.ManualHours)
}

func (s *botService) send(ctx context.Context, chatID, text string) {
	messageID, err := s.sender.SendMessage(ctx, chatID, text)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"chat_id": chatID,
			"error":   err.Error(),
		}).Error("Failed to send message")
		return
	}

	if err := s.sentCache.RememberSent(ctx, messageID, s.cfg.SentCacheTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"message_id": messageID,
			"error":      err.Error(),
		}).Warn("Failed to fingerprint sent message")
	}
}

func activeContexts(session entity.UserSession) []string {
	if session.CurrentContext == entity.StageNone {
		return nil
	}
	return []string{string(session.CurrentContext)}
}
