package botService

import (
	"strings"

	"WynwoodBot/internal/entity"
	"WynwoodBot/pkg/nlu"
)

// Normalization of the open customer input space to closed enums. Accepted
// tokens are digits and exact Spanish/English keywords, case-insensitively;
// first match against the membership list wins and there is no partial or
// fuzzy matching.

var languageTokens = map[string]entity.Language{
	"1":       entity.LanguageSpanish,
	"espanol": entity.LanguageSpanish,
	"español": entity.LanguageSpanish,
	"spanish": entity.LanguageSpanish,
	"es":      entity.LanguageSpanish,
	"2":       entity.LanguageEnglish,
	"english": entity.LanguageEnglish,
	"ingles":  entity.LanguageEnglish,
	"inglés":  entity.LanguageEnglish,
	"en":      entity.LanguageEnglish,
}

var productTokens = map[string]entity.Product{
	"1":         entity.ProductWatches,
	"watches":   entity.ProductWatches,
	"watch":     entity.ProductWatches,
	"relojes":   entity.ProductWatches,
	"reloj":     entity.ProductWatches,
	"2":         entity.ProductDiamonds,
	"diamonds":  entity.ProductDiamonds,
	"diamond":   entity.ProductDiamonds,
	"diamantes": entity.ProductDiamonds,
	"diamante":  entity.ProductDiamonds,
	"3":         entity.ProductGold,
	"gold":      entity.ProductGold,
	"oro":       entity.ProductGold,
}

func resolveLanguage(raw string) entity.Language {
	if lang, ok := languageTokens[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return lang
	}
	return entity.LanguageUnset
}

func resolveProduct(raw string) entity.Product {
	if product, ok := productTokens[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return product
	}
	return entity.ProductNone
}

// slotOrText prefers the oracle's extracted slot and falls back to the raw
// message when the slot is empty.
func slotOrText(intent *nlu.IntentResult, slot, text string) string {
	if intent.Parameters != nil {
		if v := strings.TrimSpace(intent.Parameters[slot]); v != "" {
			return v
		}
	}
	return text
}

func ptrLanguage(l entity.Language) *entity.Language { return &l }
func ptrStage(s entity.Stage) *entity.Stage          { return &s }
func ptrProduct(p entity.Product) *entity.Product    { return &p }
func ptrBool(b bool) *bool                           { return &b }
