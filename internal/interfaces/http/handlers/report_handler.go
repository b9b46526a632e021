package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/nebusis/controlcore-api/internal/application/usecases"
)

// ReportHandler expõe os quatro informes institucionais.
type ReportHandler struct {
	reportUseCase *usecases.ReportUseCase
}

func NewReportHandler(reportUseCase *usecases.ReportUseCase) *ReportHandler {
	return &ReportHandler{reportUseCase: reportUseCase}
}

func (h *ReportHandler) GetComplianceReport(c *fiber.Ctx) error {
	institutionID, ok, err := requireInstitutionID(c)
	if !ok {
		return err
	}
	report, err := h.reportUseCase.GenerateComplianceReport(c.UserContext(), institutionID)
	if err != nil {
		log.Printf("informe de cumplimiento: %v", err)
		return respondStorageError(c, err, "Institución no encontrada")
	}
	return c.JSON(report)
}

func (h *ReportHandler) GetProgressReport(c *fiber.Ctx) error {
	institutionID, ok, err := requireInstitutionID(c)
	if !ok {
		return err
	}
	report, err := h.reportUseCase.GenerateProgressReport(c.UserContext(), institutionID)
	if err != nil {
		log.Printf("informe de progreso: %v", err)
		return internalError(c)
	}
	return c.JSON(report)
}

func (h *ReportHandler) GetPerformanceReport(c *fiber.Ctx) error {
	institutionID, ok, err := requireInstitutionID(c)
	if !ok {
		return err
	}
	report, err := h.reportUseCase.GeneratePerformanceReport(c.UserContext(), institutionID)
	if err != nil {
		log.Printf("informe de rendimiento: %v", err)
		return internalError(c)
	}
	return c.JSON(report)
}

func (h *ReportHandler) GetRiskReport(c *fiber.Ctx) error {
	institutionID, ok, err := requireInstitutionID(c)
	if !ok {
		return err
	}
	report, err := h.reportUseCase.GenerateRiskReport(c.UserContext(), institutionID)
	if err != nil {
		log.Printf("informe de riesgos: %v", err)
		return internalError(c)
	}
	return c.JSON(report)
}
