package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nebusis/controlcore-api/internal/application/usecases"
	"github.com/nebusis/controlcore-api/internal/domain/entities"
	"github.com/nebusis/controlcore-api/internal/domain/repositories"
	"github.com/nebusis/controlcore-api/internal/interfaces/http/middleware"
)

// WorkflowHandler cobre workflows, passos e evidências.
type WorkflowHandler struct {
	workflowUseCase *usecases.WorkflowUseCase
}

func NewWorkflowHandler(workflowUseCase *usecases.WorkflowUseCase) *WorkflowHandler {
	return &WorkflowHandler{workflowUseCase: workflowUseCase}
}

func (h *WorkflowHandler) GetWorkflows(c *fiber.Ctx) error {
	institutionID, ok, err := requireInstitutionID(c)
	if !ok {
		return err
	}
	workflows, err := h.workflowUseCase.GetWorkflowsByInstitution(c.UserContext(), institutionID)
	if err != nil {
		log.Printf("workflows: %v", err)
		return internalError(c)
	}
	return c.JSON(workflows)
}

func (h *WorkflowHandler) GetWorkflow(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "ID de flujo de trabajo inválido")
	}
	workflow, err := h.workflowUseCase.GetWorkflow(c.UserContext(), id)
	if err != nil {
		return respondStorageError(c, err, "Flujo de trabajo no encontrado")
	}
	return c.JSON(workflow)
}

type createWorkflowRequest struct {
	Name          string     `json:"name" validate:"required"`
	Description   string     `json:"description"`
	ComponentType string     `json:"componentType" validate:"required"`
	InstitutionID int        `json:"institutionId" validate:"required,gt=0"`
	AssignedToID  *int       `json:"assignedToId"`
	DueDate       *time.Time `json:"dueDate"`
}

func (h *WorkflowHandler) CreateWorkflow(c *fiber.Ctx) error {
	var req createWorkflowRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	user, _ := middleware.CurrentUser(c)
	workflow := entities.Workflow{
		Name:          req.Name,
		Description:   req.Description,
		ComponentType: req.ComponentType,
		InstitutionID: req.InstitutionID,
		AssignedToID:  req.AssignedToID,
		DueDate:       req.DueDate,
	}
	if err := h.workflowUseCase.CreateWorkflow(c.UserContext(), &workflow, user.ID); err != nil {
		if errors.Is(err, usecases.ErrInvalidComponent) {
			return badRequest(c, "Componente COSO inválido")
		}
		log.Printf("crear workflow: %v", err)
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(workflow)
}

type updateWorkflowRequest struct {
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status"`
	Progress     *int       `json:"progress"`
	AssignedToID *int       `json:"assignedToId"`
	DueDate      *time.Time `json:"dueDate"`
}

func (h *WorkflowHandler) UpdateWorkflow(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "ID de flujo de trabajo inválido")
	}

	var req updateWorkflowRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Datos inválidos")
	}

	user, _ := middleware.CurrentUser(c)
	workflow, err := h.workflowUseCase.UpdateWorkflow(c.UserContext(), id, repositories.WorkflowUpdate{
		Name:         req.Name,
		Description:  req.Description,
		Status:       req.Status,
		Progress:     req.Progress,
		AssignedToID: req.AssignedToID,
		DueDate:      req.DueDate,
	}, user.ID)
	if err != nil {
		return respondStorageError(c, err, "Flujo de trabajo no encontrado")
	}
	return c.JSON(workflow)
}

func (h *WorkflowHandler) GetSteps(c *fiber.Ctx) error {
	workflowID, err := c.ParamsInt("id")
	if err != nil || workflowID <= 0 {
		return badRequest(c, "ID de flujo de trabajo inválido")
	}
	steps, err := h.workflowUseCase.GetSteps(c.UserContext(), workflowID)
	if err != nil {
		return respondStorageError(c, err, "Flujo de trabajo no encontrado")
	}
	return c.JSON(steps)
}

type createStepRequest struct {
	Name         string     `json:"name" validate:"required"`
	Description  string     `json:"description"`
	Order        int        `json:"order" validate:"gte=0"`
	AssignedToID *int       `json:"assignedToId"`
	DueDate      *time.Time `json:"dueDate"`
}

func (h *WorkflowHandler) CreateStep(c *fiber.Ctx) error {
	workflowID, err := c.ParamsInt("id")
	if err != nil || workflowID <= 0 {
		return badRequest(c, "ID de flujo de trabajo inválido")
	}

	var req createStepRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	step := entities.WorkflowStep{
		WorkflowID:   workflowID,
		Name:         req.Name,
		Description:  req.Description,
		Order:        req.Order,
		AssignedToID: req.AssignedToID,
		DueDate:      req.DueDate,
	}
	if err := h.workflowUseCase.CreateStep(c.UserContext(), &step); err != nil {
		return respondStorageError(c, err, "Flujo de trabajo no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(step)
}

type updateStepRequest struct {
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status"`
	AssignedToID *int       `json:"assignedToId"`
	DueDate      *time.Time `json:"dueDate"`
}

func (h *WorkflowHandler) UpdateStep(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "ID de paso inválido")
	}

	var req updateStepRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Datos inválidos")
	}

	step, err := h.workflowUseCase.UpdateStep(c.UserContext(), id, repositories.WorkflowStepUpdate{
		Name:         req.Name,
		Description:  req.Description,
		Status:       req.Status,
		AssignedToID: req.AssignedToID,
		DueDate:      req.DueDate,
	})
	if err != nil {
		return respondStorageError(c, err, "Paso no encontrado")
	}
	return c.JSON(step)
}

func (h *WorkflowHandler) GetEvidence(c *fiber.Ctx) error {
	stepID, err := c.ParamsInt("id")
	if err != nil || stepID <= 0 {
		return badRequest(c, "ID de paso inválido")
	}
	evidence, err := h.workflowUseCase.GetEvidence(c.UserContext(), stepID)
	if err != nil {
		return respondStorageError(c, err, "Paso no encontrado")
	}
	return c.JSON(evidence)
}

type createEvidenceRequest struct {
	FileName string `json:"fileName" validate:"required"`
	FilePath string `json:"filePath"`
	FileSize int    `json:"fileSize"`
	MimeType string `json:"mimeType"`
}

func (h *WorkflowHandler) AddEvidence(c *fiber.Ctx) error {
	stepID, err := c.ParamsInt("id")
	if err != nil || stepID <= 0 {
		return badRequest(c, "ID de paso inválido")
	}

	var req createEvidenceRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	user, _ := middleware.CurrentUser(c)
	evidence := entities.Evidence{
		WorkflowStepID: stepID,
		FileName:       req.FileName,
		FilePath:       req.FilePath,
		FileSize:       req.FileSize,
		MimeType:       req.MimeType,
		UploadedByID:   user.ID,
	}
	if err := h.workflowUseCase.AddEvidence(c.UserContext(), &evidence); err != nil {
		return respondStorageError(c, err, "Paso no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(evidence)
}
