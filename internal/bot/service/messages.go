package botService

import (
	"strings"

	"WynwoodBot/internal/entity"
)

// Static bilingual catalog. The texts are content lookup only; every
// behavioral decision stays in the transition logic.

const msgLanguagePrompt = "¡Bienvenido a Wynwood Jewelry! / Welcome to Wynwood Jewelry!\n\n" +
	"Por favor elige tu idioma / Please choose your language:\n" +
	"1️⃣ Español\n" +
	"2️⃣ English"

var msgMainMenu = map[entity.Language]string{
	entity.LanguageSpanish: "¿Qué te interesa hoy? Escribe el número o el nombre:\n" +
		"1️⃣ Relojes\n" +
		"2️⃣ Diamantes\n" +
		"3️⃣ Oro",
	entity.LanguageEnglish: "What are you interested in today? Type the number or the name:\n" +
		"1️⃣ Watches\n" +
		"2️⃣ Diamonds\n" +
		"3️⃣ Gold",
}

var msgOutOfHours = map[entity.Language]string{
	entity.LanguageSpanish: "Gracias por escribirnos. En este momento estamos cerrados; " +
		"un miembro del equipo te contactará en nuestro próximo horario de atención. Wynwood baby!!!",
	entity.LanguageEnglish: "Thanks for reaching out. We are currently closed; " +
		"a team member will contact you during our next business hours. Wynwood baby!!!",
}

var msgProductInfo = map[entity.Language]map[entity.Product]string{
	entity.LanguageSpanish: {
		entity.ProductWatches: "⌚ Trabajamos las mejores marcas de relojes: Rolex, Audemars Piguet, " +
			"Patek Philippe y más. Compra, venta e intercambio con certificación de autenticidad.",
		entity.ProductDiamonds: "💎 Diamantes naturales certificados GIA, sueltos o montados. " +
			"Diseños personalizados de compromiso y alta joyería.",
		entity.ProductGold: "🪙 Oro de 10k, 14k y 18k: cadenas, pulseras, dijes y piezas a medida. " +
			"Compramos tu oro al mejor precio de la zona.",
	},
	entity.LanguageEnglish: {
		entity.ProductWatches: "⌚ We carry the best watch brands: Rolex, Audemars Piguet, " +
			"Patek Philippe and more. Buy, sell and trade with authenticity certification.",
		entity.ProductDiamonds: "💎 GIA-certified natural diamonds, loose or mounted. " +
			"Custom engagement and fine jewelry designs.",
		entity.ProductGold: "🪙 10k, 14k and 18k gold: chains, bracelets, pendants and custom pieces. " +
			"We buy your gold at the best price around.",
	},
}

var msgClosingOpen = map[entity.Language]string{
	entity.LanguageSpanish: "Un asesor te atenderá en seguida. ¡Te esperamos en la tienda! Wynwood baby!!!",
	entity.LanguageEnglish: "An advisor will be with you shortly. See you at the store! Wynwood baby!!!",
}

var msgClosingClosed = map[entity.Language]string{
	entity.LanguageSpanish: "Estamos cerrados ahora mismo, pero un asesor te contactará " +
		"apenas abramos. Wynwood baby!!!",
	entity.LanguageEnglish: "We are closed right now, but an advisor will contact you " +
		"as soon as we open. Wynwood baby!!!",
}

var msgOnlyThreeCategories = map[entity.Language]string{
	entity.LanguageSpanish: "Por ahora solo manejamos estas tres categorías: Relojes (1), Diamantes (2) y Oro (3).",
	entity.LanguageEnglish: "For now we only carry these three categories: Watches (1), Diamonds (2) and Gold (3).",
}

var msgFallback = map[entity.Language]string{
	entity.LanguageSpanish: "No te entendí bien. Escribe 1, 2 o 3, o el nombre de la categoría.",
	entity.LanguageEnglish: "I didn't quite get that. Type 1, 2 or 3, or the category name.",
}

var msgDefault = map[entity.Language]string{
	entity.LanguageSpanish: "Por favor elige una categoría: Relojes (1), Diamantes (2) u Oro (3).",
	entity.LanguageEnglish: "Please choose a category: Watches (1), Diamonds (2) or Gold (3).",
}

var msgFarewell = map[entity.Language]string{
	entity.LanguageSpanish: "¡Gracias por tu visita! Quedamos a la orden. Wynwood baby!!!",
	entity.LanguageEnglish: "Thanks for stopping by! We are at your service. Wynwood baby!!!",
}

var msgApology = map[entity.Language]string{
	entity.LanguageSpanish: "Disculpa, tuvimos un problema técnico. Inténtalo de nuevo en un momento.",
	entity.LanguageEnglish: "Sorry, we ran into a technical problem. Please try again in a moment.",
}

// botSignatures is the degraded fallback for classifying outgoing messages
// as agent-generated when the sent-id cache misses. A human typing one of
// these phrases is misclassified as the bot.
var botSignatures = []string{
	"Wynwood baby!!!",
	"Welcome to Wynwood Jewelry!",
	"Por favor elige tu idioma",
}

func containsSignature(text string) bool {
	for _, sig := range botSignatures {
		if strings.Contains(text, sig) {
			return true
		}
	}
	return false
}

// catalogText resolves a per-language message, defaulting to Spanish while
// the language is still unset.
func catalogText(m map[entity.Language]string, lang entity.Language) string {
	if text, ok := m[lang]; ok {
		return text
	}
	return m[entity.LanguageSpanish]
}
