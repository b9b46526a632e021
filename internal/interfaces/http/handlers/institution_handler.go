package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/nebusis/controlcore-api/internal/domain/repositories"
)

// InstitutionHandler lida com consultas e atualizações de instituições.
type InstitutionHandler struct {
	storage repositories.Storage
}

func NewInstitutionHandler(storage repositories.Storage) *InstitutionHandler {
	return &InstitutionHandler{storage: storage}
}

func (h *InstitutionHandler) GetInstitution(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "ID de institución inválido")
	}
	institution, err := h.storage.GetInstitution(c.UserContext(), id)
	if err != nil {
		return respondStorageError(c, err, "Institución no encontrada")
	}
	return c.JSON(institution)
}

type uploadLogoRequest struct {
	FileName string `json:"fileName" validate:"required"`
}

// UploadLogo registra o logo da instituição e devolve a URL pública.
func (h *InstitutionHandler) UploadLogo(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "ID de institución inválido")
	}

	var req uploadLogoRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	logoURL := fmt.Sprintf("/api/assets/%s", req.FileName)
	if _, err := h.storage.UpdateInstitution(c.UserContext(), id, repositories.InstitutionUpdate{
		LogoURL: &logoURL,
	}); err != nil {
		return respondStorageError(c, err, "Institución no encontrada")
	}

	return c.JSON(fiber.Map{
		"message": "Logo actualizado exitosamente",
		"logoUrl": logoURL,
	})
}
