package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nebusis/controlcore-api/internal/application/usecases"
	"github.com/nebusis/controlcore-api/internal/domain/repositories"
)

// DashboardHandler lida com os indicadores do painel, o feed de atividades
// e as notas de conformidade.
type DashboardHandler struct {
	reportUseCase *usecases.ReportUseCase
	storage       repositories.Storage
}

func NewDashboardHandler(reportUseCase *usecases.ReportUseCase, storage repositories.Storage) *DashboardHandler {
	return &DashboardHandler{reportUseCase: reportUseCase, storage: storage}
}

func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	institutionID, ok, err := requireInstitutionID(c)
	if !ok {
		return err
	}
	stats, err := h.reportUseCase.GetDashboardStats(c.UserContext(), institutionID)
	if err != nil {
		log.Printf("dashboard stats: %v", err)
		return internalError(c)
	}
	return c.JSON(stats)
}

// activityView é a atividade enriquecida com o nome do usuário.
type activityView struct {
	ID            int       `json:"id"`
	Type          string    `json:"type"`
	Description   string    `json:"description"`
	UserID        int       `json:"userId"`
	WorkflowID    *int      `json:"workflowId"`
	InstitutionID int       `json:"institutionId"`
	CreatedAt     time.Time `json:"createdAt"`
	User          string    `json:"user"`
}

func (h *DashboardHandler) GetActivities(c *fiber.Ctx) error {
	institutionID, ok, err := requireInstitutionID(c)
	if !ok {
		return err
	}
	limit := c.QueryInt("limit", 10)

	activities, err := h.storage.GetRecentActivities(c.UserContext(), institutionID, limit)
	if err != nil {
		log.Printf("actividades: %v", err)
		return internalError(c)
	}

	// Enriquece cada atividade com o nome de quem a gerou.
	views := make([]activityView, 0, len(activities))
	for _, activity := range activities {
		userName := "Usuario desconocido"
		user, err := h.storage.GetUser(c.UserContext(), activity.UserID)
		if err == nil {
			userName = user.FullName()
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return internalError(c)
		}
		views = append(views, activityView{
			ID:            activity.ID,
			Type:          activity.Type,
			Description:   activity.Description,
			UserID:        activity.UserID,
			WorkflowID:    activity.WorkflowID,
			InstitutionID: activity.InstitutionID,
			CreatedAt:     activity.CreatedAt,
			User:          userName,
		})
	}
	return c.JSON(views)
}

func (h *DashboardHandler) GetComplianceScores(c *fiber.Ctx) error {
	institutionID, ok, err := requireInstitutionID(c)
	if !ok {
		return err
	}
	scores, err := h.storage.GetComplianceScores(c.UserContext(), institutionID)
	if err != nil {
		log.Printf("compliance scores: %v", err)
		return internalError(c)
	}
	return c.JSON(scores)
}
