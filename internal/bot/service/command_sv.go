package botService

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"WynwoodBot/internal/bot"

	"github.com/sirupsen/logrus"
)

// registeredCommands is the closed set isCommand accepts; unknown /tokens
// never reach the dispatcher.
var registeredCommands = map[string]bool{
	"/off":          true,
	"/on":           true,
	"/status":       true,
	"/reset":        true,
	"/stats":        true,
	"/clean":        true,
	"/cleanusers":   true,
	"/setinactive":  true,
	"/reactivation": true,
	"/reactivate":   true,
}

func (s *botService) isOwner(chatID string) bool {
	return chatID == s.cfg.OwnerJID
}

func (s *botService) isCommand(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == s.cfg.CommandEmoji {
		return true
	}

	if !strings.HasPrefix(trimmed, "/") {
		return false
	}

	head := strings.Fields(trimmed)[0]
	return registeredCommands[head]
}

// detectOwnerMessage reports that a manual intervention occurred: the
// sender is the owner and the text is not the reactivation command. It
// never mutates the registry itself.
func (s *botService) detectOwnerMessage(chatID, text string) bool {
	return s.isOwner(chatID) && strings.TrimSpace(text) != "/on"
}

func (s *botService) handleCommand(ctx context.Context, chatID, text string) string {
	trimmed := strings.TrimSpace(text)

	// The bare emoji token is shorthand for /off with the default window.
	if trimmed == s.cfg.CommandEmoji {
		trimmed = "/off"
	}

	tokens := strings.Fields(trimmed)
	head, args := tokens[0], tokens[1:]

	s.log.WithFields(logrus.Fields{
		"chat_id": chatID,
		"command": head,
		"args":    args,
	}).Info("Owner command received")

	switch head {
	case "/off":
		return s.cmdOff(chatID, args)
	case "/on":
		return s.cmdOn(chatID)
	case "/status":
		return s.cmdStatus(chatID)
	case "/reset":
		return s.cmdReset(chatID, args)
	case "/stats":
		return s.cmdStats()
	case "/clean":
		return s.cmdClean()
	case "/cleanusers":
		return s.cmdCleanUsers(args)
	case "/setinactive":
		return s.cmdSetInactive(args)
	case "/reactivation":
		return s.cmdReactivation(args)
	case "/reactivate":
		return s.cmdReactivate(args)
	}

	// isCommand already filtered to the registered set; anything else is
	// silently ignored.
	return ""
}

// parseHours bounds the disable window to the 1..168 hour range.
func parseHours(raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 || v > 168 {
		return 0, bot.ErrInvalidHours
	}
	return v, nil
}

func parseMonths(raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, bot.ErrInvalidMonths
	}
	return v, nil
}

func parseMinutes(raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, bot.ErrInvalidInterval
	}
	return v, nil
}

func (s *botService) cmdOff(chatID string, args []string) string {
	hours := s.cfg.OffHours
	if len(args) > 0 {
		parsed, err := parseHours(args[0])
		if err != nil {
			return "⚠️ Horas inválidas: usa un valor entre 1 y 168."
		}
		hours = parsed
	}

	s.repo.Disables().DisableByCommand(chatID, hours)
	return fmt.Sprintf("🔇 Bot desactivado en este chat por %d hora(s).", hours)
}

func (s *botService) cmdOn(chatID string) string {
	if s.repo.Disables().Reactivate(chatID) {
		return "🔊 Bot reactivado en este chat."
	}
	return "ℹ️ El bot no estaba desactivado en este chat."
}

func (s *botService) cmdStatus(chatID string) string {
	status := s.repo.Disables().Status(chatID)
	if !status.Disabled {
		return "✅ Bot activo en este chat."
	}

	return fmt.Sprintf(
		"🔇 Bot desactivado (%s)\nDesde: %s\nHasta: %s",
		status.Reason.String(),
		status.IssuedAt.Format("02/01/2006 15:04"),
		status.ExpiresAt.Format("02/01/2006 15:04"),
	)
}

func (s *botService) cmdReset(chatID string, args []string) string {
	userID := s.utils.UserIDFromChatID(chatID)
	if len(args) > 0 {
		userID = s.utils.UserIDFromChatID(args[0])
	}

	s.repo.Sessions().Reset(userID)
	return fmt.Sprintf("♻️ Sesión de %s reiniciada.", userID)
}

func (s *botService) cmdStats() string {
	stats := s.Stats()

	running := "detenida"
	if stats.Reactivation.Running {
		running = "activa"
	}

	return fmt.Sprintf(
		"📊 Estadísticas\nSesiones: %d (%d completadas)\nDesactivados: %d por comando, %d por intervención, %d completados\nReactivación automática: %s (cada %d min)",
		stats.Sessions.Total,
		stats.Sessions.Completed,
		stats.Disables.Command,
		stats.Disables.Manual,
		stats.Disables.Completed,
		running,
		stats.Reactivation.IntervalMinutes,
	)
}

func (s *botService) cmdClean() string {
	idle := s.repo.Sessions().SweepIdle(s.idleWindow())
	released := s.repo.Disables().SweepExpired()
	return fmt.Sprintf("🧹 Limpieza: %d sesiones inactivas y %d desactivaciones vencidas.", idle, released)
}

func (s *botService) cmdCleanUsers(args []string) string {
	months := s.cfg.GetInactiveMonths()
	if len(args) > 0 {
		parsed, err := parseMonths(args[0])
		if err != nil {
			return "⚠️ Meses inválidos: usa un número mayor que cero."
		}
		months = parsed
	}

	removed := s.repo.Sessions().SweepInactive(months)
	return fmt.Sprintf("🗑️ %d usuarios sin actividad en %d meses eliminados.", removed, months)
}

func (s *botService) cmdSetInactive(args []string) string {
	if len(args) == 0 {
		return fmt.Sprintf("ℹ️ Umbral actual: %d meses. Usa /setinactive <meses>.", s.cfg.GetInactiveMonths())
	}

	months, err := parseMonths(args[0])
	if err != nil {
		return "⚠️ Meses inválidos: usa un número mayor que cero."
	}

	if err := s.cfg.SetInactiveMonths(months); err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Failed to persist inactive threshold")
	}

	return fmt.Sprintf("✅ Umbral de inactividad fijado en %d meses.", months)
}

func (s *botService) cmdReactivation(args []string) string {
	if len(args) == 0 {
		return "ℹ️ Uso: /reactivation {start|stop|interval N|check}"
	}

	switch args[0] {
	case "start":
		s.StartReactivation()
		return "▶️ Reactivación automática iniciada."
	case "stop":
		s.StopReactivation()
		return "⏹️ Reactivación automática detenida."
	case "interval":
		if len(args) < 2 {
			return "ℹ️ Uso: /reactivation interval <minutos>"
		}
		minutes, err := parseMinutes(args[1])
		if err != nil {
			return "⚠️ Minutos inválidos: usa un número mayor que cero."
		}
		s.setReactivationInterval(minutes)
		return fmt.Sprintf("⏱️ Intervalo de reactivación fijado en %d minutos.", minutes)
	case "check":
		released := s.CheckAndReactivate()
		return fmt.Sprintf("🔄 Revisión ejecutada: %d chats reactivados.", released)
	}

	return "ℹ️ Uso: /reactivation {start|stop|interval N|check}"
}

func (s *botService) cmdReactivate(args []string) string {
	if len(args) == 0 {
		return "ℹ️ Uso: /reactivate <chat>"
	}

	chatID, err := s.utils.NormalizeChatID(args[0])
	if err != nil {
		return "⚠️ Chat inválido."
	}

	if s.repo.Disables().Reactivate(chatID) {
		return fmt.Sprintf("🔊 Chat %s reactivado.", chatID)
	}
	return fmt.Sprintf("ℹ️ El chat %s no estaba desactivado.", chatID)
}
