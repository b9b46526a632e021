package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/nebusis/controlcore-api/internal/infrastructure/payment"
)

// PaymentHandler cria as intenções de pagamento de licença.
type PaymentHandler struct {
	payments *payment.Service
}

func NewPaymentHandler(payments *payment.Service) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type createPaymentIntentRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description"`
}

func (h *PaymentHandler) CreatePaymentIntent(c *fiber.Ctx) error {
	if !h.payments.Configured() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message": "Pagos no configurados",
		})
	}

	var req createPaymentIntentRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	clientSecret, err := h.payments.CreatePaymentIntent(req.Amount, req.Description)
	if err != nil {
		if errors.Is(err, payment.ErrAmountTooSmall) {
			return badRequest(c, "Amount must be at least $0.50")
		}
		log.Printf("payment intent: %v", err)
		return internalError(c)
	}
	return c.JSON(fiber.Map{
		"clientSecret": clientSecret,
	})
}
