package statusService

import (
	"sync"
	"time"

	"WynwoodBot/internal/api/status"
	"WynwoodBot/internal/bot"
	botService "WynwoodBot/internal/bot/service"
	"WynwoodBot/pkg/schedule"
	"WynwoodBot/pkg/smtp"
	"WynwoodBot/pkg/whatsapp"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// challengeWindow is how long a received QR code is considered scannable.
const challengeWindow = 60 * time.Second

type StatusService interface {
	// RecordChallenge stores the latest QR code and forwards it to the
	// configured delivery channels.
	RecordChallenge(code string)
	Challenge() (status.ChallengeResponse, error)
	Health() status.HealthResponse
	Stats() bot.StatsSnapshot
}

type statusService struct {
	log    *logrus.Logger
	bot    botService.BotService
	db     *sqlx.DB
	client whatsapp.IWhatsappClient
	mailer smtp.ItfSmtp
	clock  schedule.Clock

	mu         sync.Mutex
	code       string
	receivedAt time.Time
}

func New(
	log *logrus.Logger,
	botSvc botService.BotService,
	db *sqlx.DB,
	client whatsapp.IWhatsappClient,
	mailer smtp.ItfSmtp,
	clock schedule.Clock,
) StatusService {
	return &statusService{
		log:    log,
		bot:    botSvc,
		db:     db,
		client: client,
		mailer: mailer,
		clock:  clock,
	}
}

func (s *statusService) RecordChallenge(code string) {
	s.mu.Lock()
	s.code = code
	s.receivedAt = s.clock.Now()
	s.mu.Unlock()

	s.log.Warn("Transport requested re-authentication; QR challenge recorded")

	if s.mailer == nil {
		return
	}
	go func() {
		if err := s.mailer.SendCredentialChallenge(code); err != nil {
			s.log.WithFields(logrus.Fields{
				"error": err.Error(),
			}).Warn("Failed to mail credential challenge")
		}
	}()
}

func (s *statusService) Challenge() (status.ChallengeResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.code == "" {
		return status.ChallengeResponse{}, status.ErrNoChallenge
	}

	return status.ChallengeResponse{
		Code:       s.code,
		ReceivedAt: s.receivedAt,
		Fresh:      s.clock.Now().Sub(s.receivedAt) < challengeWindow,
	}, nil
}

func (s *statusService) Health() status.HealthResponse {
	dbOK := s.db != nil && s.db.Ping() == nil
	waOK := s.client != nil && s.client.IsConnected()

	state := "healthy"
	if !dbOK || !waOK {
		state = "degraded"
	}

	return status.HealthResponse{
		Status:   state,
		Database: dbOK,
		Whatsapp: waOK,
	}
}

func (s *statusService) Stats() bot.StatsSnapshot {
	return s.bot.Stats()
}
