package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"WynwoodBot/pkg/snapshot"

	"github.com/go-playground/validator/v10"
)

func NewValidator() *validator.Validate {
	return validator.New()
}

// Config is the env-backed bot configuration. The manual-intervention and
// completed-chat durations are deliberately named fields here instead of
// constants scattered through the services.
type Config struct {
	OwnerJID     string `validate:"required"`
	BotName      string `validate:"required"`
	CommandEmoji string

	OffHours       int `validate:"gte=1,lte=168"`
	ManualHours    int `validate:"gte=1"`
	CompletedHours int `validate:"gte=1"`

	CheckIntervalMinutes int `validate:"gte=1"`
	IdleDays             int `validate:"gte=1"`
	InactiveMonths       int `validate:"gte=1"`

	SentCacheTTL time.Duration

	DataDir             string `validate:"required"`
	BackupDir           string
	BackupIntervalHours int  `validate:"gte=1"`
	BackupKeep          int  `validate:"gte=1"`
	BackupToS3          bool

	NLUProvider string `validate:"oneof=dialogflow gemini"`

	Timezone string

	mu       sync.Mutex
	settings *snapshot.Store
}

// runtimeSettings are the few knobs owner commands may change at runtime;
// they ride a small snapshot so they survive restarts.
type runtimeSettings struct {
	InactiveMonths int `json:"inactive_months"`
}

func Load(validate *validator.Validate) (*Config, error) {
	cfg := &Config{
		OwnerJID:             os.Getenv("BOT_OWNER_JID"),
		BotName:              envDefault("BOT_NAME", "Wynwood Jewelry"),
		CommandEmoji:         envDefault("BOT_COMMAND_EMOJI", "\U0001F507"),
		OffHours:             envInt("BOT_OFF_HOURS", 24),
		ManualHours:          envInt("BOT_MANUAL_HOURS", 24),
		CompletedHours:       envInt("BOT_COMPLETED_HOURS", 24),
		CheckIntervalMinutes: envInt("BOT_CHECK_INTERVAL_MINUTES", 5),
		IdleDays:             envInt("BOT_IDLE_DAYS", 30),
		InactiveMonths:       envInt("BOT_INACTIVE_MONTHS", 3),
		SentCacheTTL:         time.Duration(envInt("BOT_SENT_CACHE_MINUTES", 60)) * time.Minute,
		DataDir:              envDefault("BOT_DATA_DIR", "storage/data"),
		BackupDir:            envDefault("BOT_BACKUP_DIR", "storage/backups"),
		BackupIntervalHours:  envInt("BOT_BACKUP_INTERVAL_HOURS", 24),
		BackupKeep:           envInt("BOT_BACKUP_KEEP", 7),
		BackupToS3:           os.Getenv("BOT_BACKUP_S3") == "true",
		NLUProvider:          envDefault("NLU_PROVIDER", "dialogflow"),
		Timezone:             envDefault("BOT_TIMEZONE", "America/New_York"),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.settings = snapshot.New(filepath.Join(cfg.DataDir, "settings.json"))
	var saved runtimeSettings
	if err := cfg.settings.Load(&saved); err == nil && saved.InactiveMonths > 0 {
		cfg.InactiveMonths = saved.InactiveMonths
	}

	return cfg, nil
}

// Location resolves the business timezone, falling back to UTC when the
// name is unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) GetInactiveMonths() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.InactiveMonths
}

// SetInactiveMonths updates the automatic purge horizon and persists it for
// future runs.
func (c *Config) SetInactiveMonths(months int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.InactiveMonths = months
	if c.settings == nil {
		return nil
	}
	return c.settings.Save(runtimeSettings{InactiveMonths: months})
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
