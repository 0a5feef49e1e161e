package status

import "time"

// ChallengeResponse exposes the current QR pairing code for the display
// page. Fresh is computed against the 60-second validity window.
type ChallengeResponse struct {
	Code       string    `json:"code"`
	ReceivedAt time.Time `json:"received_at"`
	Fresh      bool      `json:"fresh"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database bool   `json:"database"`
	Whatsapp bool   `json:"whatsapp"`
}
