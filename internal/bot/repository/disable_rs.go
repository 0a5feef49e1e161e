package botRepository

import (
	"sync"
	"time"

	"WynwoodBot/internal/entity"
	"WynwoodBot/pkg/schedule"
	"WynwoodBot/pkg/snapshot"

	"github.com/sirupsen/logrus"
)

// DisableRegistry tracks the three independent reasons a chat is silenced.
// A chat is disabled while at least one namespace holds an unexpired entry
// for it; the namespaces never shadow each other.
type DisableRegistry interface {
	IsDisabled(chatID string) bool
	DisableByCommand(chatID string, hours int)
	RegisterManualIntervention(chatID string, hours int)
	MarkCompleted(chatID string, hours int)

	// Reactivate clears all three namespaces for the chat and reports
	// whether any of them held a live entry.
	Reactivate(chatID string) bool

	SweepExpired() int
	// ReactivateAll unconditionally clears every namespace. Used by the
	// close-of-business mass reactivation.
	ReactivateAll() int

	Status(chatID string) entity.DisableStatus
	Counts() DisableCounts
}

type DisableCounts struct {
	Command   int `json:"command"`
	Manual    int `json:"manual_intervention"`
	Completed int `json:"completed_chat"`
}

// disableRecord is the persisted three-namespace snapshot.
type disableRecord struct {
	Command   map[string]entity.DisableEntry `json:"command"`
	Manual    map[string]entity.DisableEntry `json:"manual_intervention"`
	Completed map[string]entity.DisableEntry `json:"completed_chat"`
}

type disableRegistry struct {
	mu    sync.Mutex
	rec   disableRecord
	store *snapshot.Store
	clock schedule.Clock
	log   *logrus.Logger
}

func newDisableRegistry(log *logrus.Logger, store *snapshot.Store, clock schedule.Clock) *disableRegistry {
	r := &disableRegistry{
		store: store,
		clock: clock,
		log:   log,
	}

	if err := store.Load(&r.rec); err != nil {
		log.WithFields(logrus.Fields{
			"path":  store.Path(),
			"error": err.Error(),
		}).Error("Failed to load disable snapshot, starting empty")
		r.rec = disableRecord{}
	}
	r.ensureMaps()

	return r
}

func (r *disableRegistry) ensureMaps() {
	if r.rec.Command == nil {
		r.rec.Command = make(map[string]entity.DisableEntry)
	}
	if r.rec.Manual == nil {
		r.rec.Manual = make(map[string]entity.DisableEntry)
	}
	if r.rec.Completed == nil {
		r.rec.Completed = make(map[string]entity.DisableEntry)
	}
}

func (r *disableRegistry) namespaces() []map[string]entity.DisableEntry {
	return []map[string]entity.DisableEntry{r.rec.Command, r.rec.Manual, r.rec.Completed}
}

// IsDisabled lazily sweeps expired entries for the chat before answering,
// so a stale entry can never silence a chat past its expiry instant.
func (r *disableRegistry) IsDisabled(chatID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	swept := false
	disabled := false

	for _, ns := range r.namespaces() {
		entry, ok := ns[chatID]
		if !ok {
			continue
		}
		if entry.Expired(now) {
			delete(ns, chatID)
			swept = true
			continue
		}
		disabled = true
	}

	if swept {
		r.persistLocked()
	}

	return disabled
}

func (r *disableRegistry) set(ns map[string]entity.DisableEntry, chatID string, hours int) {
	now := r.clock.Now()
	ns[chatID] = entity.DisableEntry{
		ChatID:    chatID,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Duration(hours) * time.Hour),
	}
	r.persistLocked()
}

func (r *disableRegistry) DisableByCommand(chatID string, hours int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set(r.rec.Command, chatID, hours)
}

func (r *disableRegistry) RegisterManualIntervention(chatID string, hours int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set(r.rec.Manual, chatID, hours)
}

func (r *disableRegistry) MarkCompleted(chatID string, hours int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set(r.rec.Completed, chatID, hours)
}

func (r *disableRegistry) Reactivate(chatID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	wasDisabled := false
	cleared := false

	for _, ns := range r.namespaces() {
		entry, ok := ns[chatID]
		if !ok {
			continue
		}
		if !entry.Expired(now) {
			wasDisabled = true
		}
		delete(ns, chatID)
		cleared = true
	}

	if cleared {
		r.persistLocked()
	}

	return wasDisabled
}

func (r *disableRegistry) SweepExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepExpiredLocked()
}

func (r *disableRegistry) sweepExpiredLocked() int {
	now := r.clock.Now()
	released := 0

	for _, ns := range r.namespaces() {
		for chatID, entry := range ns {
			if entry.Expired(now) {
				delete(ns, chatID)
				released++
			}
		}
	}

	if released > 0 {
		r.persistLocked()
	}

	return released
}

func (r *disableRegistry) ReactivateAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	released := 0
	for _, ns := range r.namespaces() {
		released += len(ns)
		for chatID := range ns {
			delete(ns, chatID)
		}
	}

	if released > 0 {
		r.persistLocked()
	}

	return released
}

// Status reports at most one namespace's detail, in priority order
// command > manual intervention > completed chat. IsDisabled stays the OR
// of all three regardless of this display ordering.
func (r *disableRegistry) Status(chatID string) entity.DisableStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	ordered := []struct {
		reason entity.DisableReason
		ns     map[string]entity.DisableEntry
	}{
		{entity.DisableReasonCommand, r.rec.Command},
		{entity.DisableReasonManual, r.rec.Manual},
		{entity.DisableReasonDone, r.rec.Completed},
	}

	for _, candidate := range ordered {
		entry, ok := candidate.ns[chatID]
		if !ok || entry.Expired(now) {
			continue
		}
		return entity.DisableStatus{
			Disabled:  true,
			Reason:    candidate.reason,
			IssuedAt:  entry.IssuedAt,
			ExpiresAt: entry.ExpiresAt,
		}
	}

	return entity.DisableStatus{}
}

func (r *disableRegistry) Counts() DisableCounts {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	counts := DisableCounts{}
	for _, entry := range r.rec.Command {
		if !entry.Expired(now) {
			counts.Command++
		}
	}
	for _, entry := range r.rec.Manual {
		if !entry.Expired(now) {
			counts.Manual++
		}
	}
	for _, entry := range r.rec.Completed {
		if !entry.Expired(now) {
			counts.Completed++
		}
	}

	return counts
}

func (r *disableRegistry) persist() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.persistLocked()
}

func (r *disableRegistry) persistLocked() {
	if err := r.store.Save(r.rec); err != nil {
		r.log.WithFields(logrus.Fields{
			"path":  r.store.Path(),
			"error": err.Error(),
		}).Error("Failed to persist disable snapshot")
	}
}
