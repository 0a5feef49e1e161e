package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_OWNER_JID", "15550001111@s.whatsapp.net")
	t.Setenv("BOT_DATA_DIR", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(NewValidator())
	require.NoError(t, err)

	assert.Equal(t, "Wynwood Jewelry", cfg.BotName)
	assert.Equal(t, 24, cfg.OffHours)
	assert.Equal(t, 24, cfg.ManualHours)
	assert.Equal(t, 24, cfg.CompletedHours)
	assert.Equal(t, 5, cfg.CheckIntervalMinutes)
	assert.Equal(t, 3, cfg.InactiveMonths)
	assert.Equal(t, time.Hour, cfg.SentCacheTTL)
	assert.Equal(t, "dialogflow", cfg.NLUProvider)
	assert.Equal(t, "America/New_York", cfg.Timezone)
}

func TestLoadRequiresOwner(t *testing.T) {
	t.Setenv("BOT_OWNER_JID", "")
	t.Setenv("BOT_DATA_DIR", t.TempDir())

	_, err := Load(NewValidator())
	assert.Error(t, err)
}

func TestLoadRejectsOutOfRangeOffHours(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BOT_OFF_HOURS", "200")

	_, err := Load(NewValidator())
	assert.Error(t, err)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("NLU_PROVIDER", "oracle-of-delphi")

	_, err := Load(NewValidator())
	assert.Error(t, err)
}

func TestLoadIgnoresMalformedInts(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BOT_IDLE_DAYS", "soon")

	cfg, err := Load(NewValidator())
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.IdleDays)
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := &Config{Timezone: "Atlantis/Lost"}
	assert.Equal(t, time.UTC, cfg.Location())

	cfg = &Config{Timezone: "America/New_York"}
	assert.Equal(t, "America/New_York", cfg.Location().String())
}

func TestInactiveMonthsSurvivesReload(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(NewValidator())
	require.NoError(t, err)
	require.NoError(t, cfg.SetInactiveMonths(7))
	assert.Equal(t, 7, cfg.GetInactiveMonths())

	reloaded, err := Load(NewValidator())
	require.NoError(t, err)
	assert.Equal(t, 7, reloaded.GetInactiveMonths())
}
