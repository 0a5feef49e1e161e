package entity

import "time"

// DisableReason identifies one of the three independent namespaces that can
// silence a chat. A chat is silenced while at least one namespace holds a
// live entry for it.
type DisableReason uint8

const (
	DisableReasonUnknown DisableReason = 0
	DisableReasonCommand DisableReason = 1
	DisableReasonManual  DisableReason = 2
	DisableReasonDone    DisableReason = 3
)

var DisableReasonMap = map[DisableReason]string{
	DisableReasonCommand: "command",
	DisableReasonManual:  "manual_intervention",
	DisableReasonDone:    "completed_chat",
}

func (r DisableReason) String() string {
	return DisableReasonMap[r]
}

func (r DisableReason) Value() uint8 {
	return uint8(r)
}

// DisableEntry is one namespace's record for a chat.
type DisableEntry struct {
	ChatID    string    `json:"chat_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (e DisableEntry) Expired(now time.Time) bool {
	return !e.ExpiresAt.After(now)
}

// DisableStatus is the display view of a silenced chat: at most one
// namespace's detail, picked in priority order command > manual > completed.
type DisableStatus struct {
	Disabled  bool          `json:"disabled"`
	Reason    DisableReason `json:"reason,omitempty"`
	IssuedAt  time.Time     `json:"issued_at,omitempty"`
	ExpiresAt time.Time     `json:"expires_at,omitempty"`
}
