package entity

import "time"

type Language string

const (
	LanguageUnset   Language = ""
	LanguageSpanish Language = "es"
	LanguageEnglish Language = "en"
)

type Stage string

const (
	StageNone             Stage = ""
	StageWelcome          Stage = "welcome"
	StageWaitingLanguage  Stage = "waiting_language_selection"
	StageLanguageSelected Stage = "language_selected"
	StageProductSelected  Stage = "product_selected"
	StageFallback         Stage = "fallback"
)

type Product uint8

const (
	ProductNone     Product = 0
	ProductWatches  Product = 1
	ProductDiamonds Product = 2
	ProductGold     Product = 3
)

var ProductMap = map[Product]string{
	ProductWatches:  "watches",
	ProductDiamonds: "diamonds",
	ProductGold:     "gold",
}

func (p Product) String() string {
	return ProductMap[p]
}

func (p Product) Value() uint8 {
	return uint8(p)
}

// UserSession is the flat per-user conversation record, keyed by the phone
// number derived from the chat JID.
type UserSession struct {
	UserID            string    `json:"user_id"`
	Language          Language  `json:"language"`
	CurrentContext    Stage     `json:"current_context"`
	SelectedProduct   Product   `json:"selected_product"`
	ProcessCompleted  bool      `json:"process_completed"`
	SessionStartedAt  time.Time `json:"session_started_at"`
	LastInteractionAt time.Time `json:"last_interaction_at"`
}

// SessionPatch carries the fields an Update call wants to merge. Nil fields
// leave the stored record untouched.
type SessionPatch struct {
	Language         *Language
	CurrentContext   *Stage
	SelectedProduct  *Product
	ProcessCompleted *bool
}
