package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const dialogflowFallbackIntent = "Default Fallback Intent"

// DialogflowClient talks to a Dialogflow-compatible detectIntent endpoint
// over REST.
type DialogflowClient struct {
	baseURL      string
	token        string
	languageCode string
	httpClient   *http.Client
}

func NewDialogflowClient(baseURL string, token string, timeout time.Duration) *DialogflowClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &DialogflowClient{
		baseURL:      strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:        strings.TrimSpace(token),
		languageCode: "en",
		httpClient:   &http.Client{Timeout: timeout},
	}
}

type dialogflowRequest struct {
	QueryInput struct {
		Text struct {
			Text         string `json:"text"`
			LanguageCode string `json:"languageCode"`
		} `json:"text"`
	} `json:"queryInput"`
}

type dialogflowResponse struct {
	QueryResult struct {
		FulfillmentText string `json:"fulfillmentText"`
		Intent          struct {
			DisplayName string `json:"displayName"`
		} `json:"intent"`
		IntentDetectionConfidence float64 `json:"intentDetectionConfidence"`
	} `json:"queryResult"`
}

func (client *DialogflowClient) DetectIntent(ctx context.Context, sessionID string, message string) (IntentResult, error) {
	if client.baseURL == "" {
		return IntentResult{}, fmt.Errorf("dialogflow: missing endpoint")
	}

	payload := dialogflowRequest{}
	payload.QueryInput.Text.Text = message
	payload.QueryInput.Text.LanguageCode = client.languageCode

	raw, err := json.Marshal(payload)
	if err != nil {
		return IntentResult{}, fmt.Errorf("dialogflow: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/sessions/%s:detectIntent", client.baseURL, sessionID)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return IntentResult{}, fmt.Errorf("dialogflow: build request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	if client.token != "" {
		request.Header.Set("Authorization", "Bearer "+client.token)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return IntentResult{}, fmt.Errorf("dialogflow: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(response.Body, 2048))
		return IntentResult{}, fmt.Errorf("dialogflow: status %d: %s", response.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded dialogflowResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return IntentResult{}, fmt.Errorf("dialogflow: decode response: %w", err)
	}

	return IntentResult{
		Intent:          decoded.QueryResult.Intent.DisplayName,
		FulfillmentText: decoded.QueryResult.FulfillmentText,
		Confidence:      decoded.QueryResult.IntentDetectionConfidence,
		IsFallback:      decoded.QueryResult.Intent.DisplayName == dialogflowFallbackIntent,
	}, nil
}
