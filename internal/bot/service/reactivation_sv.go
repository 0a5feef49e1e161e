package botService

import (
	"sync"
	"time"

	"WynwoodBot/internal/bot"

	"github.com/sirupsen/logrus"
)

// reactivationState is the scheduler's own bookkeeping. The massMarker
// records the last (day, hour) a mass reactivation fired so a 5-minute
// cadence cannot repeat it within the same closed hour.
type reactivationState struct {
	mu          sync.Mutex
	running     bool
	interval    time.Duration
	lastCheckAt time.Time
	wasOpen     bool
	seededOpen  bool
	massMarker  string
	stop        chan struct{}
	cleanupStop chan struct{}
}

func newReactivationState(intervalMinutes int) *reactivationState {
	return &reactivationState{
		interval: time.Duration(intervalMinutes) * time.Minute,
	}
}

func (r *reactivationState) snapshot() bot.ReactivationStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	return bot.ReactivationStatus{
		Running:         r.running,
		IntervalMinutes: int(r.interval / time.Minute),
		LastCheckAt:     r.lastCheckAt,
		WasOpen:         r.wasOpen,
	}
}

func (s *botService) StartReactivation() {
	r := s.reactivation
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.stop = make(chan struct{})
	r.cleanupStop = make(chan struct{})
	interval := r.interval
	stop := r.stop
	cleanupStop := r.cleanupStop
	r.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"interval": interval.String(),
	}).Info("Auto-reactivation started")

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.CheckAndReactivate()
			case <-stop:
				return
			}
		}
	}()

	// Daily housekeeping rides the same scheduler: idle sessions, the
	// destructive inactive-user purge and expired disable entries.
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				idle := s.repo.Sessions().SweepIdle(s.idleWindow())
				inactive := s.repo.Sessions().SweepInactive(s.cfg.GetInactiveMonths())
				released := s.repo.Disables().SweepExpired()
				s.log.WithFields(logrus.Fields{
					"idle_sessions":  idle,
					"inactive_users": inactive,
					"released":       released,
				}).Info("Daily cleanup finished")
			case <-cleanupStop:
				return
			}
		}
	}()
}

// StopReactivation only prevents the next scheduled tick; a tick already
// running finishes on its own.
func (s *botService) StopReactivation() {
	r := s.reactivation
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}
	r.running = false
	close(r.stop)
	close(r.cleanupStop)

	s.log.Info("Auto-reactivation stopped")
}

func (s *botService) setReactivationInterval(minutes int) {
	if minutes < 1 {
		return
	}

	r := s.reactivation
	r.mu.Lock()
	r.interval = time.Duration(minutes) * time.Minute
	wasRunning := r.running
	r.mu.Unlock()

	if wasRunning {
		s.StopReactivation()
		s.StartReactivation()
	}
}

// CheckAndReactivate is one scheduler pass. At the open-to-closed
// transition it clears every disable entry once per (day, hour); on every
// pass it releases individually expired entries.
func (s *botService) CheckAndReactivate() int {
	now := s.clock.Now()
	open := s.hours.IsOpen(now)
	marker := now.Format("2006-01-02-15")

	r := s.reactivation
	r.mu.Lock()
	closedNow := r.seededOpen && r.wasOpen && !open
	massDue := closedNow && r.massMarker != marker
	r.wasOpen = open
	r.seededOpen = true
	r.lastCheckAt = now
	if massDue {
		r.massMarker = marker
	}
	r.mu.Unlock()

	released := 0
	if massDue {
		released += s.repo.Disables().ReactivateAll()
		s.log.WithFields(logrus.Fields{
			"released": released,
			"marker":   marker,
		}).Info("Close-of-business mass reactivation")
	}

	released += s.repo.Disables().SweepExpired()

	if released > 0 {
		s.log.WithFields(logrus.Fields{
			"released": released,
		}).Info("Reactivation pass released entries")
	}

	return released
}

func (s *botService) idleWindow() time.Duration {
	return time.Duration(s.cfg.IdleDays) * 24 * time.Hour
}
