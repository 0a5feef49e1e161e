package botService

import (
	"testing"

	"WynwoodBot/internal/entity"
	"WynwoodBot/pkg/nlu"

	"github.com/stretchr/testify/assert"
)

func TestResolveLanguage(t *testing.T) {
	tests := []struct {
		raw  string
		want entity.Language
	}{
		{"1", entity.LanguageSpanish},
		{"español", entity.LanguageSpanish},
		{"ESPANOL", entity.LanguageSpanish},
		{"2", entity.LanguageEnglish},
		{"English", entity.LanguageEnglish},
		{" inglés ", entity.LanguageEnglish},
		{"3", entity.LanguageUnset},
		{"francais", entity.LanguageUnset},
		{"", entity.LanguageUnset},
		// Exact membership only, never partial matching.
		{"englishh", entity.LanguageUnset},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveLanguage(tt.raw), "raw %q", tt.raw)
	}
}

func TestResolveProduct(t *testing.T) {
	tests := []struct {
		raw  string
		want entity.Product
	}{
		{"1", entity.ProductWatches},
		{"Relojes", entity.ProductWatches},
		{"watch", entity.ProductWatches},
		{"2", entity.ProductDiamonds},
		{"DIAMANTES", entity.ProductDiamonds},
		{"3", entity.ProductGold},
		{" oro ", entity.ProductGold},
		{"4", entity.ProductNone},
		{"necklaces", entity.ProductNone},
		{"relo", entity.ProductNone},
		{"", entity.ProductNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveProduct(tt.raw), "raw %q", tt.raw)
	}
}

func TestSlotOrText(t *testing.T) {
	withSlot := &nlu.IntentResult{Parameters: map[string]string{"language": "2"}}
	assert.Equal(t, "2", slotOrText(withSlot, "language", "whatever the user typed"))

	emptySlot := &nlu.IntentResult{Parameters: map[string]string{"language": "  "}}
	assert.Equal(t, "1", slotOrText(emptySlot, "language", "1"))

	noParams := &nlu.IntentResult{}
	assert.Equal(t, "oro", slotOrText(noParams, "product", "oro"))
}

func TestContainsSignature(t *testing.T) {
	assert.True(t, containsSignature("Hasta pronto. Wynwood baby!!!"))
	assert.True(t, containsSignature(msgLanguagePrompt))
	assert.False(t, containsSignature("nos vemos mañana"))
	assert.False(t, containsSignature(""))
}

func TestCatalogTextDefaultsToSpanish(t *testing.T) {
	assert.Equal(t, msgFallback[entity.LanguageEnglish], catalogText(msgFallback, entity.LanguageEnglish))
	assert.Equal(t, msgFallback[entity.LanguageSpanish], catalogText(msgFallback, entity.LanguageUnset))
}
