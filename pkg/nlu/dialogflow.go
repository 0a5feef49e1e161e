package nlu

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
)

const dialogflowEndpoint = "https://dialogflow.googleapis.com/v2"

type dialogflowOracle struct {
	projectID  string
	httpClient *http.Client
	log        *logrus.Logger
}

// NewDialogflow builds the primary oracle: Dialogflow ES detectIntent over
// REST, authenticated with the service-account key from
// DIALOGFLOW_CREDENTIALS_FILE.
func NewDialogflow(log *logrus.Logger) (Oracle, error) {
	projectID := os.Getenv("DIALOGFLOW_PROJECT_ID")
	if projectID == "" {
		return nil, fmt.Errorf("DIALOGFLOW_PROJECT_ID not set")
	}

	keyPath := os.Getenv("DIALOGFLOW_CREDENTIALS_FILE")
	keyJSON, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read dialogflow credentials: %w", err)
	}

	cfg, err := google.JWTConfigFromJSON(keyJSON, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dialogflow credentials: %w", err)
	}

	client := cfg.Client(context.Background())
	client.Timeout = 15 * time.Second

	return &dialogflowOracle{
		projectID:  projectID,
		httpClient: client,
		log:        log,
	}, nil
}

type detectIntentRequest struct {
	QueryInput  queryInput   `json:"queryInput"`
	QueryParams *queryParams `json:"queryParams,omitempty"`
}

type queryInput struct {
	Text textInput `json:"text"`
}

type textInput struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode"`
}

type queryParams struct {
	Contexts []dialogflowContext `json:"contexts,omitempty"`
}

type dialogflowContext struct {
	Name          string `json:"name"`
	LifespanCount int    `json:"lifespanCount"`
}

type detectIntentResponse struct {
	QueryResult struct {
		Action string `json:"action"`
		Intent struct {
			DisplayName string `json:"displayName"`
		} `json:"intent"`
		Parameters                map[string]interface{} `json:"parameters"`
		OutputContexts            []dialogflowContext    `json:"outputContexts"`
		IntentDetectionConfidence float64                `json:"intentDetectionConfidence"`
	} `json:"queryResult"`
}

func (d *dialogflowOracle) DetectIntent(ctx context.Context, sessionID, text string, languageCode string, activeContexts []string) (*IntentResult, error) {
	if languageCode == "" {
		languageCode = "es"
	}

	sessionPath := fmt.Sprintf("projects/%s/agent/sessions/%s", d.projectID, sessionID)

	reqBody := detectIntentRequest{
		QueryInput: queryInput{
			Text: textInput{Text: text, LanguageCode: languageCode},
		},
	}
	for _, c := range activeContexts {
		if reqBody.QueryParams == nil {
			reqBody.QueryParams = &queryParams{}
		}
		reqBody.QueryParams.Contexts = append(reqBody.QueryParams.Contexts, dialogflowContext{
			Name:          fmt.Sprintf("%s/contexts/%s", sessionPath, c),
			LifespanCount: 1,
		})
	}

	raw, err := jsoniter.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s:detectIntent", dialogflowEndpoint, sessionPath)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("dialogflow request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		d.log.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(body),
		}).Error("Dialogflow returned non-OK status")
		return nil, fmt.Errorf("dialogflow returned status %d", resp.StatusCode)
	}

	var parsed detectIntentResponse
	if err := jsoniter.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode dialogflow response: %w", err)
	}

	intent := parsed.QueryResult.Action
	if intent == "" {
		intent = parsed.QueryResult.Intent.DisplayName
	}

	params := make(map[string]string, len(parsed.QueryResult.Parameters))
	for k, v := range parsed.QueryResult.Parameters {
		params[k] = fmt.Sprintf("%v", v)
	}

	contexts := make([]string, 0, len(parsed.QueryResult.OutputContexts))
	for _, c := range parsed.QueryResult.OutputContexts {
		// Context names come back fully qualified; keep the short tag.
		if idx := strings.LastIndex(c.Name, "/"); idx >= 0 {
			contexts = append(contexts, c.Name[idx+1:])
		} else {
			contexts = append(contexts, c.Name)
		}
	}

	return &IntentResult{
		Intent:         intent,
		Parameters:     params,
		OutputContexts: contexts,
		Confidence:     parsed.QueryResult.IntentDetectionConfidence,
	}, nil
}
