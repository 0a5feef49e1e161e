package botRepository

import (
	"path/filepath"

	"WynwoodBot/pkg/schedule"
	"WynwoodBot/pkg/snapshot"

	"github.com/sirupsen/logrus"
)

// Repository owns the two durable stores of the bot: the per-user session
// records and the three-namespace disable registry. Both live in memory and
// write a full snapshot synchronously on every mutation, so in-memory state
// is authoritative between saves.
type Repository interface {
	Sessions() SessionStore
	Disables() DisableRegistry

	// Flush persists both stores; wired to the shutdown signal so nothing
	// mutated in memory is lost on termination.
	Flush()
}

type repository struct {
	sessions *sessionStore
	disables *disableRegistry
	log      *logrus.Logger
}

func New(log *logrus.Logger, dataDir string, clock schedule.Clock) Repository {
	sessions := newSessionStore(log, snapshot.New(filepath.Join(dataDir, "sessions.json")), clock)
	disables := newDisableRegistry(log, snapshot.New(filepath.Join(dataDir, "disables.json")), clock)

	return &repository{
		sessions: sessions,
		disables: disables,
		log:      log,
	}
}

func (r *repository) Sessions() SessionStore {
	return r.sessions
}

func (r *repository) Disables() DisableRegistry {
	return r.disables
}

func (r *repository) Flush() {
	r.sessions.persist()
	r.disables.persist()
	r.log.Info("State stores flushed to disk")
}
