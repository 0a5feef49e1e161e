package botRepository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"WynwoodBot/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chat = "13055550123@s.whatsapp.net"

func TestDisableNamespacesAreIndependent(t *testing.T) {
	repo, _, _ := newTestRepository(t)
	disables := repo.Disables()

	assert.False(t, disables.IsDisabled(chat))

	disables.DisableByCommand(chat, 2)
	disables.RegisterManualIntervention(chat, 4)
	disables.MarkCompleted(chat, 8)

	counts := disables.Counts()
	assert.Equal(t, 1, counts.Command)
	assert.Equal(t, 1, counts.Manual)
	assert.Equal(t, 1, counts.Completed)
	assert.True(t, disables.IsDisabled(chat))
}

func TestIsDisabledSweepsExpiredLazily(t *testing.T) {
	repo, clock, _ := newTestRepository(t)
	disables := repo.Disables()

	disables.DisableByCommand(chat, 2)
	assert.True(t, disables.IsDisabled(chat))

	clock.Advance(2 * time.Hour)
	assert.False(t, disables.IsDisabled(chat))

	// The expired entry is gone, not just hidden.
	assert.Equal(t, 0, disables.Counts().Command)
}

func TestDisabledWhileAnyNamespaceLives(t *testing.T) {
	repo, clock, _ := newTestRepository(t)
	disables := repo.Disables()

	disables.DisableByCommand(chat, 1)
	disables.RegisterManualIntervention(chat, 6)

	// The command entry expires; the manual one still silences the chat.
	clock.Advance(90 * time.Minute)
	assert.True(t, disables.IsDisabled(chat))

	clock.Advance(5 * time.Hour)
	assert.False(t, disables.IsDisabled(chat))
}

func TestReactivateClearsEverything(t *testing.T) {
	repo, _, _ := newTestRepository(t)
	disables := repo.Disables()

	disables.DisableByCommand(chat, 2)
	disables.RegisterManualIntervention(chat, 2)
	disables.MarkCompleted(chat, 2)

	assert.True(t, disables.Reactivate(chat))
	assert.False(t, disables.IsDisabled(chat))

	// Second call finds nothing live.
	assert.False(t, disables.Reactivate(chat))
}

func TestReactivateExpiredOnlyReportsNotDisabled(t *testing.T) {
	repo, clock, _ := newTestRepository(t)
	disables := repo.Disables()

	disables.DisableByCommand(chat, 1)
	clock.Advance(2 * time.Hour)

	assert.False(t, disables.Reactivate(chat))
}

func TestSweepExpired(t *testing.T) {
	repo, clock, _ := newTestRepository(t)
	disables := repo.Disables()

	disables.DisableByCommand("a@s.whatsapp.net", 1)
	disables.RegisterManualIntervention("b@s.whatsapp.net", 1)
	disables.MarkCompleted("c@s.whatsapp.net", 10)

	clock.Advance(2 * time.Hour)

	assert.Equal(t, 2, disables.SweepExpired())
	assert.True(t, disables.IsDisabled("c@s.whatsapp.net"))
	assert.Equal(t, 0, disables.SweepExpired())
}

func TestReactivateAll(t *testing.T) {
	repo, _, _ := newTestRepository(t)
	disables := repo.Disables()

	disables.DisableByCommand("a@s.whatsapp.net", 2)
	disables.RegisterManualIntervention("b@s.whatsapp.net", 2)
	disables.MarkCompleted("b@s.whatsapp.net", 2)

	assert.Equal(t, 3, disables.ReactivateAll())
	assert.False(t, disables.IsDisabled("a@s.whatsapp.net"))
	assert.False(t, disables.IsDisabled("b@s.whatsapp.net"))
	assert.Equal(t, 0, disables.ReactivateAll())
}

func TestStatusPriority(t *testing.T) {
	repo, clock, _ := newTestRepository(t)
	disables := repo.Disables()

	assert.False(t, disables.Status(chat).Disabled)

	disables.MarkCompleted(chat, 10)
	assert.Equal(t, entity.DisableReasonDone, disables.Status(chat).Reason)

	disables.RegisterManualIntervention(chat, 10)
	assert.Equal(t, entity.DisableReasonManual, disables.Status(chat).Reason)

	disables.DisableByCommand(chat, 2)
	status := disables.Status(chat)
	assert.True(t, status.Disabled)
	assert.Equal(t, entity.DisableReasonCommand, status.Reason)
	assert.Equal(t, clock.Now().Add(2*time.Hour), status.ExpiresAt)

	// Once the command entry expires the next namespace shows through.
	clock.Advance(3 * time.Hour)
	assert.Equal(t, entity.DisableReasonManual, disables.Status(chat).Reason)
}

func TestCountsExcludeExpired(t *testing.T) {
	repo, clock, _ := newTestRepository(t)
	disables := repo.Disables()

	disables.DisableByCommand("a@s.whatsapp.net", 1)
	disables.DisableByCommand("b@s.whatsapp.net", 10)

	clock.Advance(2 * time.Hour)
	assert.Equal(t, 1, disables.Counts().Command)
}

func TestCorruptDisableSnapshotFailsOpen(t *testing.T) {
	clock := newTestClock()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "disables.json"), []byte("not json"), 0o644))

	repo := New(testLogger(), dir, clock)
	assert.False(t, repo.Disables().IsDisabled(chat))

	repo.Disables().DisableByCommand(chat, 2)
	assert.True(t, repo.Disables().IsDisabled(chat))
}
