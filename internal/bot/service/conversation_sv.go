package botService

import (
	"WynwoodBot/internal/entity"
	"WynwoodBot/pkg/nlu"
)

// turnEffect is what one conversation turn produces. The machine only
// decides; sending and persisting stay with the pipeline.
type turnEffect struct {
	Replies []string
	Patch   entity.SessionPatch

	// CompleteChat ends the conversation: the pipeline registers a
	// completed-chat disable and resets the session for the next visit.
	CompleteChat bool
}

// transition is the total (stage x intent) function of the conversation.
// Expected business conditions (unresolved language, unrecognized product)
// are rows here, never errors. The open flag is read after the oracle
// round-trip resolves, so a reply crossing an hours boundary uses the
// later reading.
func (s *botService) transition(session entity.UserSession, intent *nlu.IntentResult, text string, open bool) turnEffect {
	// A leftover completed flag, or an explicit goodbye, closes the
	// conversation regardless of stage.
	if session.ProcessCompleted || intent.Intent == nlu.IntentCompleted {
		return turnEffect{
			Replies:      []string{catalogText(msgFarewell, session.Language)},
			Patch:        entity.SessionPatch{ProcessCompleted: ptrBool(true)},
			CompleteChat: true,
		}
	}

	if intent.Intent == nlu.IntentWelcome {
		return turnEffect{
			Replies: []string{msgLanguagePrompt},
			Patch:   entity.SessionPatch{CurrentContext: ptrStage(entity.StageWaitingLanguage)},
		}
	}

	if intent.Intent == nlu.IntentLanguage || session.Language == entity.LanguageUnset {
		return s.languageTurn(session, intent, text, open)
	}

	switch intent.Intent {
	case nlu.IntentProduct:
		return s.productTurn(session, intent, text, open)
	case nlu.IntentFallback:
		return turnEffect{
			Replies: []string{catalogText(msgFallback, session.Language)},
		}
	default:
		return turnEffect{
			Replies: []string{catalogText(msgDefault, session.Language)},
		}
	}
}

func (s *botService) languageTurn(session entity.UserSession, intent *nlu.IntentResult, text string, open bool) turnEffect {
	lang := resolveLanguage(slotOrText(intent, "language", text))
	if lang == entity.LanguageUnset {
		// Unresolved choice, or any other intent while no language is
		// set yet: re-prompt, nothing is lost.
		return turnEffect{
			Replies: []string{msgLanguagePrompt},
			Patch:   entity.SessionPatch{CurrentContext: ptrStage(entity.StageWaitingLanguage)},
		}
	}

	if !open {
		return turnEffect{
			Replies: []string{catalogText(msgOutOfHours, lang)},
			Patch: entity.SessionPatch{
				Language:         ptrLanguage(lang),
				ProcessCompleted: ptrBool(true),
			},
			CompleteChat: true,
		}
	}

	return turnEffect{
		Replies: []string{catalogText(msgMainMenu, lang)},
		Patch: entity.SessionPatch{
			Language:       ptrLanguage(lang),
			CurrentContext: ptrStage(entity.StageLanguageSelected),
		},
	}
}

func (s *botService) productTurn(session entity.UserSession, intent *nlu.IntentResult, text string, open bool) turnEffect {
	product := resolveProduct(slotOrText(intent, "product", text))
	if product == entity.ProductNone {
		return turnEffect{
			Replies: []string{catalogText(msgOnlyThreeCategories, session.Language)},
		}
	}

	closing := msgClosingOpen
	if !open {
		closing = msgClosingClosed
	}

	info := msgProductInfo[session.Language][product]
	if info == "" {
		info = msgProductInfo[entity.LanguageSpanish][product]
	}

	return turnEffect{
		Replies: []string{info + "\n\n" + catalogText(closing, session.Language)},
		Patch: entity.SessionPatch{
			CurrentContext:   ptrStage(entity.StageProductSelected),
			SelectedProduct:  ptrProduct(product),
			ProcessCompleted: ptrBool(true),
		},
		CompleteChat: true,
	}
}
