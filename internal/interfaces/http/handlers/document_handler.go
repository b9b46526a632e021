package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/nebusis/controlcore-api/internal/application/usecases"
	"github.com/nebusis/controlcore-api/internal/interfaces/http/middleware"
)

// DocumentHandler lida com o repositório documental da instituição.
type DocumentHandler struct {
	documentUseCase *usecases.DocumentUseCase
}

func NewDocumentHandler(documentUseCase *usecases.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{documentUseCase: documentUseCase}
}

func (h *DocumentHandler) GetDocuments(c *fiber.Ctx) error {
	institutionID, ok, err := requireInstitutionID(c)
	if !ok {
		return err
	}
	documents, err := h.documentUseCase.GetDocuments(c.UserContext(), institutionID, c.Query("documentType"))
	if err != nil {
		log.Printf("documentos: %v", err)
		return internalError(c)
	}
	return c.JSON(documents)
}

type uploadDocumentRequest struct {
	InstitutionID int    `json:"institutionId" validate:"required,gt=0"`
	FileName      string `json:"fileName" validate:"required"`
	DocumentType  string `json:"documentType" validate:"required"`
	Description   string `json:"description"`
	FileSize      int    `json:"fileSize"`
	MimeType      string `json:"mimeType"`
}

func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	var req uploadDocumentRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	user, _ := middleware.CurrentUser(c)
	document, err := h.documentUseCase.Upload(c.UserContext(), usecases.DocumentUploadInput{
		InstitutionID: req.InstitutionID,
		FileName:      req.FileName,
		DocumentType:  req.DocumentType,
		Description:   req.Description,
		FileSize:      req.FileSize,
		MimeType:      req.MimeType,
		UploadedByID:  user.ID,
	})
	if err != nil {
		if errors.Is(err, usecases.ErrInvalidDocumentType) {
			return badRequest(c, "Tipo de documento inválido")
		}
		return respondStorageError(c, err, "Institución no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(document)
}

// Analyze dispara a análise de brechas de conformidade do documento.
func (h *DocumentHandler) Analyze(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "ID de documento inválido")
	}
	document, err := h.documentUseCase.Analyze(c.UserContext(), id)
	if err != nil {
		return respondStorageError(c, err, "Documento no encontrado")
	}
	return c.JSON(document)
}

func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "ID de documento inválido")
	}
	deleted, err := h.documentUseCase.Delete(c.UserContext(), id)
	if err != nil {
		log.Printf("eliminar documento: %v", err)
		return internalError(c)
	}
	if !deleted {
		return notFound(c, "Documento no encontrado")
	}
	return c.JSON(fiber.Map{
		"message": "Documento eliminado exitosamente",
	})
}
