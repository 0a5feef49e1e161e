package bot

import (
	"time"

	botRepository "WynwoodBot/internal/bot/repository"
)

// IncomingMessage is the transport-neutral inbound event the pipelines
// consume. IsFromMe marks messages sent from the monitored business
// account itself.
type IncomingMessage struct {
	ChatID    string
	MessageID string
	Text      string
	IsFromMe  bool
	IsGroup   bool
}

// ReactivationStatus is a read-only view of the scheduler state.
type ReactivationStatus struct {
	Running         bool      `json:"running"`
	IntervalMinutes int       `json:"interval_minutes"`
	LastCheckAt     time.Time `json:"last_check_at"`
	WasOpen         bool      `json:"was_open"`
}

// StatsSnapshot feeds /stats and the status API.
type StatsSnapshot struct {
	Sessions     botRepository.SessionStats  `json:"sessions"`
	Disables     botRepository.DisableCounts `json:"disables"`
	Reactivation ReactivationStatus          `json:"reactivation"`
}
