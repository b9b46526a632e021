package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/nebusis/controlcore-api/internal/application/usecases"
	"github.com/nebusis/controlcore-api/internal/domain/entities"
	"github.com/nebusis/controlcore-api/internal/domain/repositories"
	"github.com/nebusis/controlcore-api/internal/interfaces/http/middleware"
)

// ChecklistHandler lida com as perguntas de verificação e suas respostas.
type ChecklistHandler struct {
	checklistUseCase *usecases.ChecklistUseCase
}

func NewChecklistHandler(checklistUseCase *usecases.ChecklistUseCase) *ChecklistHandler {
	return &ChecklistHandler{checklistUseCase: checklistUseCase}
}

func (h *ChecklistHandler) GetItems(c *fiber.Ctx) error {
	items, err := h.checklistUseCase.GetItems(c.UserContext(), c.Query("componentType"))
	if err != nil {
		log.Printf("checklist items: %v", err)
		return internalError(c)
	}
	return c.JSON(items)
}

func (h *ChecklistHandler) GetResponses(c *fiber.Ctx) error {
	workflowID, err := c.ParamsInt("workflowId")
	if err != nil || workflowID <= 0 {
		return badRequest(c, "ID de flujo de trabajo requerido")
	}
	responses, err := h.checklistUseCase.GetResponses(c.UserContext(), workflowID)
	if err != nil {
		log.Printf("checklist responses: %v", err)
		return internalError(c)
	}
	return c.JSON(responses)
}

type upsertResponseRequest struct {
	ChecklistItemID   int    `json:"checklistItemId" validate:"required,gt=0"`
	WorkflowID        int    `json:"workflowId" validate:"required,gt=0"`
	Response          string `json:"response"`
	Status            string `json:"status"`
	LinkedDocumentIDs []int  `json:"linkedDocumentIds"`
	LinkedEvidenceIDs []int  `json:"linkedEvidenceIds"`
}

// UpsertResponse grava a resposta do par (item, workflow). Repetir o POST
// para o mesmo par sobrescreve a resposta existente.
func (h *ChecklistHandler) UpsertResponse(c *fiber.Ctx) error {
	var req upsertResponseRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	user, _ := middleware.CurrentUser(c)
	response := entities.ChecklistResponse{
		ChecklistItemID:   req.ChecklistItemID,
		WorkflowID:        req.WorkflowID,
		Response:          req.Response,
		Status:            req.Status,
		LinkedDocumentIDs: req.LinkedDocumentIDs,
		LinkedEvidenceIDs: req.LinkedEvidenceIDs,
	}
	if response.Status == "" {
		response.Status = entities.ResponseStatusPending
	}
	if user.ID > 0 {
		response.RespondedByID = &user.ID
	}

	if err := h.checklistUseCase.UpsertResponse(c.UserContext(), &response); err != nil {
		if errors.Is(err, usecases.ErrInvalidReference) {
			return badRequest(c, err.Error())
		}
		return respondStorageError(c, err, "Ítem o flujo de trabajo no encontrado")
	}
	return c.JSON(response)
}

type updateResponseRequest struct {
	Response          *string `json:"response"`
	Status            *string `json:"status"`
	LinkedDocumentIDs *[]int  `json:"linkedDocumentIds"`
	LinkedEvidenceIDs *[]int  `json:"linkedEvidenceIds"`
	ReviewComments    *string `json:"reviewComments"`
}

func (h *ChecklistHandler) UpdateResponse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "ID de respuesta inválido")
	}

	var req updateResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Datos inválidos")
	}

	response, err := h.checklistUseCase.UpdateResponse(c.UserContext(), id, repositories.ChecklistResponseUpdate{
		Response:          req.Response,
		Status:            req.Status,
		LinkedDocumentIDs: req.LinkedDocumentIDs,
		LinkedEvidenceIDs: req.LinkedEvidenceIDs,
		ReviewComments:    req.ReviewComments,
	})
	if err != nil {
		if errors.Is(err, usecases.ErrInvalidReference) {
			return badRequest(c, err.Error())
		}
		return respondStorageError(c, err, "Respuesta no encontrada")
	}
	return c.JSON(response)
}
