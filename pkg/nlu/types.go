package nlu

import "context"

// Intent actions the conversation machine branches on. The oracle maps
// whatever its backend returns into this closed set.
const (
	IntentWelcome   = "input.welcome"
	IntentLanguage  = "input.language"
	IntentProduct   = "input.product"
	IntentCompleted = "input.completed"
	IntentFallback  = "input.unknown"
)

type IntentResult struct {
	Intent         string            `json:"intent"`
	Parameters     map[string]string `json:"parameters"`
	OutputContexts []string          `json:"output_contexts"`
	Confidence     float64           `json:"confidence"`
}

// Oracle is the external intent/slot extraction service. The bot treats its
// answer as authoritative and awaits it before mutating any state.
type Oracle interface {
	DetectIntent(ctx context.Context, sessionID, text string, languageCode string, activeContexts []string) (*IntentResult, error)
}
