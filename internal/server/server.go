package server

import (
	"context"
	"fmt"
	"os"
	"time"

	"WynwoodBot/database/postgres"
	statusHandler "WynwoodBot/internal/api/status/handler"
	statusService "WynwoodBot/internal/api/status/service"
	botHandler "WynwoodBot/internal/bot/handler"
	botRepository "WynwoodBot/internal/bot/repository"
	botService "WynwoodBot/internal/bot/service"
	"WynwoodBot/internal/config"
	"WynwoodBot/internal/middleware"
	"WynwoodBot/pkg/nlu"
	"WynwoodBot/pkg/redis"
	"WynwoodBot/pkg/s3"
	"WynwoodBot/pkg/schedule"
	"WynwoodBot/pkg/smtp"
	"WynwoodBot/pkg/utils"
	"WynwoodBot/pkg/whatsapp"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine         *fiber.App
	db             *sqlx.DB
	log            *logrus.Logger
	middleware     middleware.Middleware
	validator      *validator.Validate
	cfg            *config.Config
	utils          utils.IUtils
	handlers       []handler
	sentCache      redis.ISentCache
	smtpMailer     smtp.ItfSmtp
	whatsappClient whatsapp.IWhatsappClient
	oracle         nlu.Oracle
	s3Client       s3.ItfS3
	clock          schedule.Clock
	hours          *schedule.BusinessHours
	bot            botService.BotService
	botHandlers    *botHandler.BotHandler
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithConfig() ServerOption {
	return func(s *Server) error {
		if s.validator == nil {
			return fmt.Errorf("validator must be initialized before config")
		}
		cfg, err := config.Load(s.validator)
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to load configuration: %v", err)
			}
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		s.cfg = cfg
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithSentCache() ServerOption {
	return func(s *Server) error {
		s.sentCache = redis.New()
		return nil
	}
}

func WithSMTPMailer(smtpMailer smtp.ItfSmtp) ServerOption {
	return func(s *Server) error {
		s.smtpMailer = smtpMailer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithWhatsappClient() ServerOption {
	return func(s *Server) error {
		client, err := whatsapp.New(s.log)
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize WhatsApp client: %v", err)
			}
			return fmt.Errorf("failed to create WhatsApp client: %w", err)
		}
		s.whatsappClient = client
		return nil
	}
}

// WithOracle picks the intent backend from NLU_PROVIDER.
func WithOracle() ServerOption {
	return func(s *Server) error {
		if s.cfg == nil {
			return fmt.Errorf("config must be loaded before the intent oracle")
		}

		var (
			oracle nlu.Oracle
			err    error
		)
		switch s.cfg.NLUProvider {
		case "gemini":
			oracle, err = nlu.NewGemini()
		default:
			oracle, err = nlu.NewDialogflow(s.log)
		}
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create intent oracle: %v", err)
			}
			return fmt.Errorf("failed to create intent oracle: %w", err)
		}
		s.oracle = oracle
		return nil
	}
}

func WithClock() ServerOption {
	return func(s *Server) error {
		if s.cfg == nil {
			return fmt.Errorf("config must be loaded before the clock")
		}
		loc := s.cfg.Location()
		s.clock = schedule.ClockFunc(func() time.Time {
			return time.Now().In(loc)
		})
		return nil
	}
}

func WithBusinessHours() ServerOption {
	return func(s *Server) error {
		hours, err := schedule.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to load business hours: %v", err)
			}
			return fmt.Errorf("failed to load business hours: %w", err)
		}
		s.hours = hours
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Bot Domain
	botRepo := botRepository.New(s.log, s.cfg.DataDir, s.clock)
	botServices := botService.New(s.log, s.cfg, botRepo, s.oracle, s.whatsappClient, s.sentCache, s.hours, s.clock, s.utils, s.s3Client)
	botHandlers := botHandler.New(s.log, botServices, s.whatsappClient)
	s.bot = botServices
	s.botHandlers = botHandlers

	// Status Domain
	statusServices := statusService.New(s.log, botServices, s.db, s.whatsappClient, s.smtpMailer, s.clock)
	statusHandlers := statusHandler.New(s.log, statusServices, s.middleware)

	s.whatsappClient.OnCredentialChallenge(statusServices.RecordChallenge)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, statusHandlers)
}

// Start connects the transport and kicks off the background loops. It must
// be called after RegisterHandler so the message callbacks are in place.
func (s *Server) Start(ctx context.Context) error {
	s.botHandlers.Start()

	if err := s.whatsappClient.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect transport: %w", err)
	}

	s.bot.StartReactivation()
	s.bot.StartBackups()

	return nil
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	if err := s.engine.Listen(fmt.Sprintf(":%s", port)); err != nil {
		s.Shutdown()
		return err
	}

	return nil
}

// Shutdown flushes the conversation and disable stores before the process
// exits, then drops the transport.
func (s *Server) Shutdown() {
	if s.bot != nil {
		s.bot.Shutdown()
	}
	if s.whatsappClient != nil {
		if err := s.whatsappClient.Disconnect(); err != nil {
			s.log.Errorf("Failed to disconnect transport: %v", err)
		}
	}
	if err := s.engine.Shutdown(); err != nil {
		s.log.Errorf("Failed to stop HTTP listener: %v", err)
	}
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
