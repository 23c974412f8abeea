package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDialogflowDetectIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/sessions/user-1:detectIntent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer nlu-token" {
			t.Errorf("expected bearer token header, got %q", got)
		}

		var payload struct {
			QueryInput struct {
				Text struct {
					Text         string `json:"text"`
					LanguageCode string `json:"languageCode"`
				} `json:"text"`
			} `json:"queryInput"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if payload.QueryInput.Text.Text != "how long is a cycle?" {
			t.Errorf("expected the user message relayed, got %q", payload.QueryInput.Text.Text)
		}

		w.Write([]byte(`{
			"queryResult": {
				"fulfillmentText": "About 28 days.",
				"intent": {"displayName": "cycle.faq"},
				"intentDetectionConfidence": 0.87
			}
		}`))
	}))
	defer server.Close()

	client := NewDialogflowClient(server.URL, "nlu-token", 0)
	result, err := client.DetectIntent(context.Background(), "user-1", "how long is a cycle?")
	if err != nil {
		t.Fatalf("DetectIntent() unexpected error: %v", err)
	}
	if result.FulfillmentText != "About 28 days." {
		t.Fatalf("expected fulfillment text, got %q", result.FulfillmentText)
	}
	if result.Confidence != 0.87 {
		t.Fatalf("expected confidence 0.87, got %f", result.Confidence)
	}
	if result.IsFallback {
		t.Fatalf("expected a non-fallback intent")
	}
}

func TestDialogflowDetectIntent_FallbackIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"queryResult": {"intent": {"displayName": "Default Fallback Intent"}}}`))
	}))
	defer server.Close()

	client := NewDialogflowClient(server.URL, "", 0)
	result, err := client.DetectIntent(context.Background(), "user-1", "gibberish")
	if err != nil {
		t.Fatalf("DetectIntent() unexpected error: %v", err)
	}
	if !result.IsFallback {
		t.Fatalf("expected the fallback intent to be flagged")
	}
}

func TestOpenAIComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("expected api key header, got %q", got)
		}

		var payload struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(payload.Messages) != 2 || payload.Messages[0].Role != "system" {
			t.Errorf("expected a system prompt ahead of the user message, got %v", payload.Messages)
		}

		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": " Drink plenty of water. "}}]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("sk-test", server.URL, "gpt-4o-mini", 0)
	reply, err := client.Complete(context.Background(), "any hydration tips?")
	if err != nil {
		t.Fatalf("Complete() unexpected error: %v", err)
	}
	if reply != "Drink plenty of water." {
		t.Fatalf("expected the trimmed completion, got %q", reply)
	}
}

func TestOpenAIComplete_MissingKey(t *testing.T) {
	t.Parallel()

	client := NewOpenAIClient("", "", "", 0)
	if _, err := client.Complete(context.Background(), "hello"); err == nil {
		t.Fatalf("expected an error without an API key")
	}
}
