package botRepository

import (
	"sync"
	"time"

	"WynwoodBot/internal/entity"
	"WynwoodBot/pkg/schedule"
	"WynwoodBot/pkg/snapshot"

	"github.com/sirupsen/logrus"
)

// SessionStore is the durable user -> conversation record mapping. Get
// never misses: unknown users receive a persisted default record.
type SessionStore interface {
	Get(userID string) entity.UserSession
	Update(userID string, patch entity.SessionPatch) entity.UserSession
	Reset(userID string)
	Delete(userID string) bool

	// SweepIdle drops records silent for longer than maxIdle.
	SweepIdle(maxIdle time.Duration) int
	// SweepInactive destructively drops records untouched for the given
	// number of months. Irreversible outside of backups.
	SweepInactive(months int) int

	Stats() SessionStats
}

type SessionStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

type sessionStore struct {
	mu    sync.Mutex
	users map[string]entity.UserSession
	store *snapshot.Store
	clock schedule.Clock
	log   *logrus.Logger
}

func newSessionStore(log *logrus.Logger, store *snapshot.Store, clock schedule.Clock) *sessionStore {
	s := &sessionStore{
		users: make(map[string]entity.UserSession),
		store: store,
		clock: clock,
		log:   log,
	}

	// Load failure fails open to an empty store; the bot keeps answering
	// with fresh sessions rather than going down.
	if err := store.Load(&s.users); err != nil {
		log.WithFields(logrus.Fields{
			"path":  store.Path(),
			"error": err.Error(),
		}).Error("Failed to load session snapshot, starting empty")
		s.users = make(map[string]entity.UserSession)
	}
	if s.users == nil {
		s.users = make(map[string]entity.UserSession)
	}

	return s
}

func (s *sessionStore) defaultSession(userID string, now time.Time) entity.UserSession {
	return entity.UserSession{
		UserID:            userID,
		Language:          entity.LanguageUnset,
		CurrentContext:    entity.StageNone,
		SelectedProduct:   entity.ProductNone,
		SessionStartedAt:  now,
		LastInteractionAt: now,
	}
}

func (s *sessionStore) Get(userID string) entity.UserSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.users[userID]
	if !ok {
		session = s.defaultSession(userID, s.clock.Now())
		s.users[userID] = session
		s.persistLocked()
	}

	return session
}

func (s *sessionStore) Update(userID string, patch entity.SessionPatch) entity.UserSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	session, ok := s.users[userID]
	if !ok {
		session = s.defaultSession(userID, now)
	}

	if patch.Language != nil {
		session.Language = *patch.Language
	}
	if patch.CurrentContext != nil {
		session.CurrentContext = *patch.CurrentContext
	}
	if patch.SelectedProduct != nil {
		session.SelectedProduct = *patch.SelectedProduct
	}
	if patch.ProcessCompleted != nil {
		session.ProcessCompleted = *patch.ProcessCompleted
	}
	session.LastInteractionAt = now

	s.users[userID] = session
	s.persistLocked()

	return session
}

// Reset clears the record back to defaults but keeps the resolved language,
// so a returning customer is not asked to pick a language again.
func (s *sessionStore) Reset(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[userID]
	session := s.defaultSession(userID, s.clock.Now())
	if ok {
		session.Language = existing.Language
	}

	s.users[userID] = session
	s.persistLocked()
}

func (s *sessionStore) Delete(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return false
	}

	delete(s.users, userID)
	s.persistLocked()
	return true
}

func (s *sessionStore) SweepIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.clock.Now().Add(-maxIdle)
	removed := 0
	for id, session := range s.users {
		if session.LastInteractionAt.Before(cutoff) {
			delete(s.users, id)
			removed++
		}
	}

	if removed > 0 {
		s.persistLocked()
	}

	return removed
}

func (s *sessionStore) SweepInactive(months int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.clock.Now().AddDate(0, -months, 0)
	removed := 0
	for id, session := range s.users {
		if session.LastInteractionAt.Before(cutoff) {
			delete(s.users, id)
			removed++
		}
	}

	if removed > 0 {
		s.log.WithFields(logrus.Fields{
			"removed": removed,
			"months":  months,
		}).Warn("Inactive users purged")
		s.persistLocked()
	}

	return removed
}

func (s *sessionStore) Stats() SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := SessionStats{Total: len(s.users)}
	for _, session := range s.users {
		if session.ProcessCompleted {
			stats.Completed++
		}
	}

	return stats
}

func (s *sessionStore) persist() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistLocked()
}

// persistLocked writes the whole store. A failed save is logged and the
// in-memory state stays authoritative until the next successful one.
func (s *sessionStore) persistLocked() {
	if err := s.store.Save(s.users); err != nil {
		s.log.WithFields(logrus.Fields{
			"path":  s.store.Path(),
			"error": err.Error(),
		}).Error("Failed to persist session snapshot")
	}
}
