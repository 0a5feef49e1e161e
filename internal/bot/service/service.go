package botService

import (
	"context"

	"WynwoodBot/internal/bot"
	botRepository "WynwoodBot/internal/bot/repository"
	"WynwoodBot/internal/config"
	"WynwoodBot/pkg/nlu"
	"WynwoodBot/pkg/redis"
	"WynwoodBot/pkg/s3"
	"WynwoodBot/pkg/schedule"
	"WynwoodBot/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Sender is the outbound half of the transport; satisfied by the WhatsApp
// client and by fakes in tests.
type Sender interface {
	SendMessage(ctx context.Context, chatID, message string) (string, error)
}

type BotService interface {
	// HandleIncoming runs the full inbound pipeline for a customer or
	// owner message.
	HandleIncoming(ctx context.Context, msg bot.IncomingMessage)
	// HandleOutgoing classifies a message sent from the monitored
	// account as agent- or human-generated and reacts to the latter.
	HandleOutgoing(ctx context.Context, msg bot.IncomingMessage)

	StartReactivation()
	StopReactivation()
	StartBackups()

	Stats() bot.StatsSnapshot
	// Shutdown flushes both stores; wired to process termination.
	Shutdown()
}

type botService struct {
	log       *logrus.Logger
	cfg       *config.Config
	repo      botRepository.Repository
	oracle    nlu.Oracle
	sender    Sender
	sentCache redis.ISentCache
	hours     *schedule.BusinessHours
	clock     schedule.Clock
	utils     utils.IUtils
	s3Client  s3.ItfS3

	reactivation *reactivationState
	backups      *backupState
}

func New(
	log *logrus.Logger,
	cfg *config.Config,
	repo botRepository.Repository,
	oracle nlu.Oracle,
	sender Sender,
	sentCache redis.ISentCache,
	hours *schedule.BusinessHours,
	clock schedule.Clock,
	utilsInstance utils.IUtils,
	s3Client s3.ItfS3,
) BotService {
	return &botService{
		log:          log,
		cfg:          cfg,
		repo:         repo,
		oracle:       oracle,
		sender:       sender,
		sentCache:    sentCache,
		hours:        hours,
		clock:        clock,
		utils:        utilsInstance,
		s3Client:     s3Client,
		reactivation: newReactivationState(cfg.CheckIntervalMinutes),
		backups:      newBackupState(),
	}
}

func (s *botService) Stats() bot.StatsSnapshot {
	return bot.StatsSnapshot{
		Sessions:     s.repo.Sessions().Stats(),
		Disables:     s.repo.Disables().Counts(),
		Reactivation: s.reactivation.snapshot(),
	}
}

func (s *botService) Shutdown() {
	s.StopReactivation()
	s.backups.stop()
	s.repo.Flush()
}
