package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/nebusis/controlcore-api/internal/application/assistant"
	"github.com/nebusis/controlcore-api/internal/domain/entities"
	"github.com/nebusis/controlcore-api/internal/domain/repositories"
	"github.com/nebusis/controlcore-api/internal/interfaces/http/middleware"
)

// CgrHandler lida com os informes formais de auditoría e suas plantillas.
type CgrHandler struct {
	storage   repositories.Storage
	assistant *assistant.Assistant
}

func NewCgrHandler(storage repositories.Storage, assistant *assistant.Assistant) *CgrHandler {
	return &CgrHandler{storage: storage, assistant: assistant}
}

func (h *CgrHandler) GetReports(c *fiber.Ctx) error {
	institutionID, ok, err := requireInstitutionID(c)
	if !ok {
		return err
	}
	reports, err := h.storage.GetCgrReports(c.UserContext(), institutionID)
	if err != nil {
		log.Printf("informes de auditoría: %v", err)
		return internalError(c)
	}
	return c.JSON(reports)
}

type createCgrReportRequest struct {
	InstitutionID int                     `json:"institutionId" validate:"required,gt=0"`
	ReportType    string                  `json:"reportType" validate:"required,oneof=cumplimiento autoevaluacion seguimiento"`
	ReportPeriod  string                  `json:"reportPeriod" validate:"required"`
	ReportData    *entities.CgrReportData `json:"reportData"`
}

// CreateReport abre um informe em rascunho. Sem reportData no corpo, o
// informe nasce com o conteúdo padrão da plantilla.
func (h *CgrHandler) CreateReport(c *fiber.Ctx) error {
	var req createCgrReportRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	user, _ := middleware.CurrentUser(c)
	reportData := req.ReportData
	if reportData == nil {
		reportData = h.assistant.DefaultCgrReportData(req.ReportPeriod)
	}

	report := entities.CgrReport{
		InstitutionID: req.InstitutionID,
		ReportType:    req.ReportType,
		ReportPeriod:  req.ReportPeriod,
		ReportData:    reportData,
		GeneratedByID: user.ID,
		Status:        entities.CgrStatusDraft,
	}
	if err := h.storage.CreateCgrReport(c.UserContext(), &report); err != nil {
		log.Printf("crear informe de auditoría: %v", err)
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// SubmitReport envia o informe ao órgão de controle, carimbando submittedAt.
func (h *CgrHandler) SubmitReport(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "ID de informe inválido")
	}
	report, err := h.storage.SubmitCgrReport(c.UserContext(), id)
	if err != nil {
		return respondStorageError(c, err, "Informe no encontrado")
	}
	return c.JSON(report)
}

func (h *CgrHandler) ApproveReport(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "ID de informe inválido")
	}
	report, err := h.storage.ApproveCgrReport(c.UserContext(), id)
	if err != nil {
		return respondStorageError(c, err, "Informe no encontrado")
	}
	return c.JSON(report)
}

func (h *CgrHandler) DeleteReport(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "ID de informe inválido")
	}
	deleted, err := h.storage.DeleteCgrReport(c.UserContext(), id)
	if err != nil {
		log.Printf("eliminar informe: %v", err)
		return internalError(c)
	}
	if !deleted {
		return notFound(c, "Informe no encontrado")
	}
	return c.JSON(fiber.Map{
		"message": "Informe eliminado exitosamente",
	})
}

func (h *CgrHandler) GetTemplates(c *fiber.Ctx) error {
	return c.JSON(h.assistant.CgrTemplates())
}
