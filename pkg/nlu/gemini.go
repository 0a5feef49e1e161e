package nlu

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	jsoniter "github.com/json-iterator/go"
	"google.golang.org/api/option"
)

const geminiIntentPrompt = `You classify WhatsApp messages for a jewelry storefront.
Reply with ONLY a JSON object, no markdown, shaped like:
{"intent":"...","parameters":{},"confidence":0.0}

Valid intents:
- "input.welcome": greetings, first contact ("hola", "hi", "buenas")
- "input.language": a language choice ("1", "2", "espanol", "english")
  -> parameters: {"language":"<raw choice>"}
- "input.product": a product choice ("1", "watches", "relojes", "oro", ...)
  -> parameters: {"product":"<raw choice>"}
- "input.completed": the customer says they are done ("gracias, eso es todo")
- "input.unknown": anything else

Message language hint: %s
Message: %q`

type geminiOracle struct {
	client    *genai.Client
	modelName string
}

// NewGemini is the alternate oracle, selected with NLU_PROVIDER=gemini. It
// prompts a Gemini model to emit the same intent JSON the Dialogflow agent
// would produce.
func NewGemini() (Oracle, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	modelName := os.Getenv("GEMINI_MODEL_NAME")
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &geminiOracle{client: client, modelName: modelName}, nil
}

func (g *geminiOracle) DetectIntent(ctx context.Context, sessionID, text string, languageCode string, activeContexts []string) (*IntentResult, error) {
	model := g.client.GenerativeModel(g.modelName)

	prompt := fmt.Sprintf(geminiIntentPrompt, languageCode, text)
	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	if len(res.Candidates) == 0 || len(res.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("no response from Gemini API")
	}

	part, ok := res.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, errors.New("unexpected response format from Gemini API")
	}

	raw := strings.TrimSpace(string(part))
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var result IntentResult
	if err := jsoniter.Unmarshal([]byte(strings.TrimSpace(raw)), &result); err != nil {
		return nil, fmt.Errorf("failed to decode Gemini intent JSON: %w", err)
	}

	if result.Intent == "" {
		result.Intent = IntentFallback
	}
	if result.Parameters == nil {
		result.Parameters = map[string]string{}
	}

	return &result, nil
}
