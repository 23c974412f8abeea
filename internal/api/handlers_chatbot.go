package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blossomhealth/blossom/internal/services"
	"github.com/gofiber/fiber/v2"
)

type chatbotInput struct {
	Message string `json:"message"`
}

func (handler *Handler) Chatbot(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input chatbotInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if strings.TrimSpace(input.Message) == "" {
		return apiError(c, fiber.StatusBadRequest, "Message is required.")
	}

	sessionID := fmt.Sprintf("user-%d", user.ID)
	reply, err := handler.chatbotService.Reply(c.UserContext(), sessionID, input.Message)
	if err != nil {
		if errors.Is(err, services.ErrChatbotUnavailable) {
			return apiError(c, fiber.StatusBadGateway, "Chatbot is temporarily unavailable.")
		}
		return apiError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return c.JSON(fiber.Map{"response": reply})
}
