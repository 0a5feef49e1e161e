package botService

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMassReactivationFiresOnceAtClose(t *testing.T) {
	h := newHarness(t)

	// Seeding pass during the open window observes the store as open.
	assert.Equal(t, 0, h.svc.CheckAndReactivate())

	h.repo.Disables().DisableByCommand("a@s.whatsapp.net", 48)
	h.repo.Disables().RegisterManualIntervention("b@s.whatsapp.net", 48)

	// First pass after closing releases everything.
	h.clock.Set(closedInstant)
	assert.Equal(t, 2, h.svc.CheckAndReactivate())

	// Same closed hour: no second mass release.
	h.repo.Disables().DisableByCommand("c@s.whatsapp.net", 48)
	h.clock.Advance(5 * time.Minute)
	assert.Equal(t, 0, h.svc.CheckAndReactivate())
	assert.True(t, h.repo.Disables().IsDisabled("c@s.whatsapp.net"))
}

func TestMassReactivationNeedsAnOpenToClosedTransition(t *testing.T) {
	h := newHarness(t)

	h.repo.Disables().DisableByCommand("a@s.whatsapp.net", 48)

	// The very first pass happens while already closed: nothing to
	// transition from, so no mass release.
	h.clock.Set(closedInstant)
	assert.Equal(t, 0, h.svc.CheckAndReactivate())
	assert.True(t, h.repo.Disables().IsDisabled("a@s.whatsapp.net"))

	// Still closed the next morning hour; no transition either.
	h.clock.Advance(10 * time.Hour)
	assert.Equal(t, 0, h.svc.CheckAndReactivate())
}

func TestMassReactivationFiresAgainTheNextDay(t *testing.T) {
	h := newHarness(t)

	h.svc.CheckAndReactivate()

	h.repo.Disables().DisableByCommand("a@s.whatsapp.net", 48)
	h.clock.Set(closedInstant)
	assert.Equal(t, 1, h.svc.CheckAndReactivate())

	// Next day: open pass, then the close transition fires again.
	h.clock.Set(openInstant.AddDate(0, 0, 1))
	assert.Equal(t, 0, h.svc.CheckAndReactivate())

	h.repo.Disables().DisableByCommand("b@s.whatsapp.net", 48)
	h.clock.Set(closedInstant.AddDate(0, 0, 1))
	assert.Equal(t, 1, h.svc.CheckAndReactivate())
}

func TestEveryPassReleasesExpiredEntries(t *testing.T) {
	h := newHarness(t)

	h.svc.CheckAndReactivate()

	h.repo.Disables().DisableByCommand("a@s.whatsapp.net", 1)
	h.repo.Disables().DisableByCommand("b@s.whatsapp.net", 48)

	// Two hours later, still open: only the expired entry goes.
	h.clock.Advance(2 * time.Hour)
	assert.Equal(t, 1, h.svc.CheckAndReactivate())
	assert.True(t, h.repo.Disables().IsDisabled("b@s.whatsapp.net"))
}

func TestReactivationLifecycle(t *testing.T) {
	h := newHarness(t)

	assert.False(t, h.svc.Stats().Reactivation.Running)

	h.svc.StartReactivation()
	h.svc.StartReactivation() // idempotent
	assert.True(t, h.svc.Stats().Reactivation.Running)
	assert.Equal(t, 5, h.svc.Stats().Reactivation.IntervalMinutes)

	h.svc.StopReactivation()
	h.svc.StopReactivation() // idempotent
	assert.False(t, h.svc.Stats().Reactivation.Running)
}

func TestSetIntervalRestartsARunningScheduler(t *testing.T) {
	h := newHarness(t)

	h.svc.StartReactivation()
	h.svc.setReactivationInterval(7)

	status := h.svc.Stats().Reactivation
	assert.True(t, status.Running)
	assert.Equal(t, 7, status.IntervalMinutes)

	h.svc.StopReactivation()
}

func TestSnapshotTracksLastCheck(t *testing.T) {
	h := newHarness(t)

	h.svc.CheckAndReactivate()
	status := h.svc.Stats().Reactivation
	assert.Equal(t, h.clock.Now(), status.LastCheckAt)
	assert.True(t, status.WasOpen)

	h.clock.Set(closedInstant)
	h.svc.CheckAndReactivate()
	assert.False(t, h.svc.Stats().Reactivation.WasOpen)
}
