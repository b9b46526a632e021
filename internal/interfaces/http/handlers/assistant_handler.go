package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nebusis/controlcore-api/internal/application/assistant"
)

// AssistantHandler expõe o chat de orientação sobre COSO.
type AssistantHandler struct {
	assistant *assistant.Assistant
}

func NewAssistantHandler(assistant *assistant.Assistant) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

type chatRequest struct {
	Message string `json:"message" validate:"required"`
}

func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	var req chatRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}
	return c.JSON(fiber.Map{
		"response": h.assistant.Chat(req.Message),
	})
}
