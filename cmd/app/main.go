package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"WynwoodBot/internal/config"
	appserver "WynwoodBot/internal/server"
	"WynwoodBot/pkg/log"
	"WynwoodBot/pkg/smtp"

	"github.com/joho/godotenv"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	smtpMailer := smtp.New()

	server, err := appserver.NewServer(
		appserver.WithFiber(fiberApp),
		appserver.WithLogger(logger),
		appserver.WithValidator(validator),
		appserver.WithConfig(),
		appserver.WithDatabase(),
		appserver.WithSentCache(),
		appserver.WithSMTPMailer(smtpMailer),
		appserver.WithMiddleware(),
		appserver.WithS3Client(),
		appserver.WithWhatsappClient(),
		appserver.WithOracle(),
		appserver.WithClock(),
		appserver.WithBusinessHours(),
		appserver.WithUtils(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := server.Start(ctx); err != nil {
		logger.Fatalf("Error starting bot: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")
	server.Shutdown()
}
