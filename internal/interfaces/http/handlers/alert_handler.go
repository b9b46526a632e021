package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/nebusis/controlcore-api/internal/application/usecases"
	"github.com/nebusis/controlcore-api/internal/domain/repositories"
)

// AlertHandler expõe a consulta de alertas e o disparo da varredura.
type AlertHandler struct {
	alertUseCase *usecases.AlertUseCase
	storage      repositories.Storage
}

func NewAlertHandler(alertUseCase *usecases.AlertUseCase, storage repositories.Storage) *AlertHandler {
	return &AlertHandler{alertUseCase: alertUseCase, storage: storage}
}

func (h *AlertHandler) GetAlerts(c *fiber.Ctx) error {
	institutionID, ok, err := requireInstitutionID(c)
	if !ok {
		return err
	}

	var workflowID *int
	if id := c.QueryInt("workflowId"); id > 0 {
		workflowID = &id
	}

	alerts, err := h.storage.GetActiveAlerts(c.UserContext(), institutionID, workflowID)
	if err != nil {
		log.Printf("alertas: %v", err)
		return internalError(c)
	}
	return c.JSON(alerts)
}

type checkAlertsRequest struct {
	InstitutionID int `json:"institutionId" validate:"required,gt=0"`
}

// CheckAlerts dispara a varredura de prazos. Falhas de email não derrubam a
// requisição; entram no resumo como emailFailures.
func (h *AlertHandler) CheckAlerts(c *fiber.Ctx) error {
	var req checkAlertsRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	result, err := h.alertUseCase.CheckAndSendAlerts(c.UserContext(), req.InstitutionID)
	if err != nil {
		log.Printf("chequeo de alertas: %v", err)
		return internalError(c)
	}
	return c.JSON(fiber.Map{
		"message": "Chequeo de alertas completado",
		"result":  result,
	})
}

type sendTestAlertRequest struct {
	RecipientEmail string `json:"recipientEmail" validate:"required,email"`
	RecipientName  string `json:"recipientName" validate:"required"`
}

func (h *AlertHandler) SendTestAlert(c *fiber.Ctx) error {
	var req sendTestAlertRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	if err := h.alertUseCase.SendTestAlert(c.UserContext(), req.RecipientEmail, req.RecipientName); err != nil {
		log.Printf("email de prueba: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error enviando email de prueba",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Email de prueba enviado exitosamente",
	})
}

// DeactivateAlert marca um alerta como resolvido.
func (h *AlertHandler) DeactivateAlert(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "ID de alerta inválido")
	}
	deactivated, err := h.storage.DeactivateAlert(c.UserContext(), id)
	if err != nil {
		log.Printf("desactivar alerta: %v", err)
		return internalError(c)
	}
	if !deactivated {
		return notFound(c, "Alerta no encontrada")
	}
	return c.JSON(fiber.Map{
		"message": "Alerta desactivada",
	})
}
