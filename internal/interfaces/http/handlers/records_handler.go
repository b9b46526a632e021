package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nebusis/controlcore-api/internal/application/usecases"
	"github.com/nebusis/controlcore-api/internal/domain/entities"
	"github.com/nebusis/controlcore-api/internal/domain/repositories"
	"github.com/nebusis/controlcore-api/internal/interfaces/http/middleware"
)

// RecordsHandler cobre planos institucionais (PEI/POA) e registros de
// capacitação.
type RecordsHandler struct {
	storage       repositories.Storage
	reportUseCase *usecases.ReportUseCase
}

func NewRecordsHandler(storage repositories.Storage, reportUseCase *usecases.ReportUseCase) *RecordsHandler {
	return &RecordsHandler{storage: storage, reportUseCase: reportUseCase}
}

func (h *RecordsHandler) GetPlans(c *fiber.Ctx) error {
	institutionID, ok, err := requireInstitutionID(c)
	if !ok {
		return err
	}
	plans, err := h.storage.GetInstitutionalPlans(c.UserContext(), institutionID)
	if err != nil {
		log.Printf("planes institucionales: %v", err)
		return internalError(c)
	}
	return c.JSON(plans)
}

type createPlanRequest struct {
	InstitutionID int        `json:"institutionId" validate:"required,gt=0"`
	PlanType      string     `json:"planType" validate:"required,oneof=PEI POA"`
	PlanName      string     `json:"planName" validate:"required"`
	FileName      string     `json:"fileName"`
	FileSize      int        `json:"fileSize"`
	MimeType      string     `json:"mimeType"`
	ValidFrom     *time.Time `json:"validFrom"`
	ValidTo       *time.Time `json:"validTo"`
}

func (h *RecordsHandler) CreatePlan(c *fiber.Ctx) error {
	var req createPlanRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	user, _ := middleware.CurrentUser(c)
	fileName := req.FileName
	if fileName == "" {
		fileName = fmt.Sprintf("plan_%d.pdf", time.Now().UnixMilli())
	}
	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = "application/pdf"
	}

	plan := entities.InstitutionalPlan{
		InstitutionID: req.InstitutionID,
		PlanType:      req.PlanType,
		PlanName:      req.PlanName,
		FileName:      fileName,
		FilePath:      fmt.Sprintf("/uploads/plans/%d/%s", req.InstitutionID, fileName),
		FileSize:      req.FileSize,
		MimeType:      mimeType,
		UploadedByID:  user.ID,
		Status:        "active",
		ValidFrom:     req.ValidFrom,
		ValidTo:       req.ValidTo,
	}
	if err := h.storage.CreateInstitutionalPlan(c.UserContext(), &plan); err != nil {
		log.Printf("crear plan: %v", err)
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

func (h *RecordsHandler) DeletePlan(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "ID de plan inválido")
	}
	deleted, err := h.storage.DeleteInstitutionalPlan(c.UserContext(), id)
	if err != nil {
		log.Printf("eliminar plan: %v", err)
		return internalError(c)
	}
	if !deleted {
		return notFound(c, "Plan no encontrado")
	}
	return c.JSON(fiber.Map{
		"message": "Plan eliminado exitosamente",
	})
}

func (h *RecordsHandler) GetTrainingRecords(c *fiber.Ctx) error {
	institutionID, ok, err := requireInstitutionID(c)
	if !ok {
		return err
	}
	records, err := h.storage.GetTrainingRecords(c.UserContext(), institutionID)
	if err != nil {
		log.Printf("registros de capacitación: %v", err)
		return internalError(c)
	}
	return c.JSON(records)
}

type createTrainingRequest struct {
	InstitutionID  int        `json:"institutionId" validate:"required,gt=0"`
	UserID         int        `json:"userId" validate:"required,gt=0"`
	TrainingTitle  string     `json:"trainingTitle" validate:"required"`
	TrainingType   string     `json:"trainingType" validate:"required,oneof=curso taller seminario certificacion"`
	TrainingTopic  string     `json:"trainingTopic" validate:"required,oneof=control_interno auditoria riesgos compliance"`
	Provider       string     `json:"provider"`
	Duration       int        `json:"duration" validate:"gte=0"`
	CompletionDate *time.Time `json:"completionDate"`
	Status         string     `json:"status"`
}

func (h *RecordsHandler) CreateTrainingRecord(c *fiber.Ctx) error {
	var req createTrainingRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	status := req.Status
	if status == "" {
		status = "completed"
	}
	record := entities.TrainingRecord{
		InstitutionID:  req.InstitutionID,
		UserID:         req.UserID,
		TrainingTitle:  req.TrainingTitle,
		TrainingType:   req.TrainingType,
		TrainingTopic:  req.TrainingTopic,
		Provider:       req.Provider,
		Duration:       req.Duration,
		CompletionDate: req.CompletionDate,
		Status:         status,
	}
	if err := h.storage.CreateTrainingRecord(c.UserContext(), &record); err != nil {
		log.Printf("crear registro de capacitación: %v", err)
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (h *RecordsHandler) DeleteTrainingRecord(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "ID de registro inválido")
	}
	deleted, err := h.storage.DeleteTrainingRecord(c.UserContext(), id)
	if err != nil {
		log.Printf("eliminar registro de capacitación: %v", err)
		return internalError(c)
	}
	if !deleted {
		return notFound(c, "Registro no encontrado")
	}
	return c.JSON(fiber.Map{
		"message": "Registro eliminado exitosamente",
	})
}

func (h *RecordsHandler) GetTrainingStats(c *fiber.Ctx) error {
	institutionID, ok, err := requireInstitutionID(c)
	if !ok {
		return err
	}
	stats, err := h.reportUseCase.GetTrainingStats(c.UserContext(), institutionID)
	if err != nil {
		log.Printf("estadísticas de capacitación: %v", err)
		return internalError(c)
	}
	return c.JSON(stats)
}
