package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/blossomhealth/blossom/internal/db"
	"github.com/blossomhealth/blossom/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type scriptedIntentDetector struct {
	result services.IntentResult
	err    error
}

func (stub *scriptedIntentDetector) DetectIntent(context.Context, string, string) (services.IntentResult, error) {
	return stub.result, stub.err
}

type scriptedChatCompleter struct {
	reply string
	err   error
}

func (stub *scriptedChatCompleter) Complete(context.Context, string) (string, error) {
	return stub.reply, stub.err
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app, _ := newTestEnv(t, &scriptedIntentDetector{
		result: services.IntentResult{FulfillmentText: "hello", Confidence: 1},
	}, &scriptedChatCompleter{reply: "llm reply"})
	return app
}

func newTestAppWithChatbot(t *testing.T, nlu services.IntentDetector, llm services.ChatCompleter) *fiber.App {
	t.Helper()
	app, _ := newTestEnv(t, nlu, llm)
	return app
}

func newTestEnv(t *testing.T, nlu services.IntentDetector, llm services.ChatCompleter) (*fiber.App, *gorm.DB) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "blossom-api-test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	chatbot := services.NewChatbotService(nlu, llm, services.ChatbotConfig{
		FallbackEnabled:     true,
		ConfidenceThreshold: 0.5,
	})
	handler := NewHandler(database, "test-secret", time.UTC, chatbot)

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, token string, payload any) *http.Response {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	} else {
		body = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, path, body)
	request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()
	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func registerAndLogin(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	registerResponse := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username":         username,
		"email":            username + "@example.com",
		"password":         "StrongPass1",
		"confirm_password": "StrongPass1",
	})
	if registerResponse.StatusCode != http.StatusCreated {
		t.Fatalf("expected register status 201, got %d", registerResponse.StatusCode)
	}
	registerResponse.Body.Close()

	loginResponse := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": "StrongPass1",
	})
	if loginResponse.StatusCode != http.StatusOK {
		t.Fatalf("expected login status 200, got %d", loginResponse.StatusCode)
	}

	var decoded struct {
		Access string `json:"access"`
	}
	decodeJSON(t, loginResponse, &decoded)
	if decoded.Access == "" {
		t.Fatalf("expected an access token in the login response")
	}
	return decoded.Access
}
