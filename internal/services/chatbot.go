package services

import (
	"context"
	"errors"
	"strings"
)

var ErrChatbotUnavailable = errors.New("chatbot unavailable")

const defaultChatbotReply = "Sorry, I didn't understand that."

// IntentResult is the NLU provider's answer for one message.
type IntentResult struct {
	Intent          string
	FulfillmentText string
	Confidence      float64
	IsFallback      bool
}

type IntentDetector interface {
	DetectIntent(ctx context.Context, sessionID string, message string) (IntentResult, error)
}

type ChatCompleter interface {
	Complete(ctx context.Context, message string) (string, error)
}

// ChatbotConfig is decided at construction time; there is no process-wide
// fallback toggle.
type ChatbotConfig struct {
	FallbackEnabled     bool
	ConfidenceThreshold float64
}

type ChatbotService struct {
	nlu    IntentDetector
	llm    ChatCompleter
	config ChatbotConfig
}

func NewChatbotService(nlu IntentDetector, llm ChatCompleter, config ChatbotConfig) *ChatbotService {
	return &ChatbotService{
		nlu:    nlu,
		llm:    llm,
		config: config,
	}
}

// Reply relays a user message to the NLU provider and falls back to the
// LLM when the provider fails, matches its fallback intent, or answers
// below the confidence threshold. With fallback disabled the NLU answer
// (or a static apology) is returned as-is.
func (service *ChatbotService) Reply(ctx context.Context, sessionID string, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return defaultChatbotReply, nil
	}

	result, err := service.nlu.DetectIntent(ctx, sessionID, message)
	if err == nil && !service.needsFallback(result) {
		return result.FulfillmentText, nil
	}

	if !service.config.FallbackEnabled {
		if err != nil {
			return "", ErrChatbotUnavailable
		}
		if strings.TrimSpace(result.FulfillmentText) == "" {
			return defaultChatbotReply, nil
		}
		return result.FulfillmentText, nil
	}

	completion, llmErr := service.llm.Complete(ctx, message)
	if llmErr != nil {
		if err == nil && strings.TrimSpace(result.FulfillmentText) != "" {
			return result.FulfillmentText, nil
		}
		return "", ErrChatbotUnavailable
	}
	return completion, nil
}

func (service *ChatbotService) needsFallback(result IntentResult) bool {
	if result.IsFallback {
		return true
	}
	if service.config.ConfidenceThreshold > 0 && result.Confidence < service.config.ConfidenceThreshold {
		return true
	}
	return strings.TrimSpace(result.FulfillmentText) == ""
}
