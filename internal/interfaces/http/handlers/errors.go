package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/nebusis/controlcore-api/internal/domain/repositories"
)

var validate = validator.New()

// respondStorageError traduz os erros da camada de persistência: registro
// ausente vira 404, o resto vira 500 com mensagem genérica.
func respondStorageError(c *fiber.Ctx, err error, notFoundMessage string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": notFoundMessage,
		})
	}
	return internalError(c)
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Error interno del servidor",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": message,
	})
}

// parseAndValidate decodifica o corpo JSON e aplica as tags de validação.
// Corpo rejeitado vira 400 com a lista de campos; a resposta já foi escrita
// quando ok é false, e o handler deve devolver err e parar.
func parseAndValidate(c *fiber.Ctx, out interface{}) (ok bool, err error) {
	if err := c.BodyParser(out); err != nil {
		return false, badRequest(c, "Datos inválidos")
	}
	if err := validate.Struct(out); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			details := make([]string, 0, len(validationErrors))
			for _, fieldErr := range validationErrors {
				details = append(details, fmt.Sprintf("%s: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Datos inválidos",
				"errors":  details,
			})
		}
		return false, badRequest(c, "Datos inválidos")
	}
	return true, nil
}

// requireInstitutionID lê o institutionId obrigatório da query string. Quando
// ausente ou inválido, a resposta 400 já foi escrita e ok é false.
func requireInstitutionID(c *fiber.Ctx) (institutionID int, ok bool, err error) {
	institutionID = c.QueryInt("institutionId")
	if institutionID <= 0 {
		return 0, false, badRequest(c, "ID de institución requerido")
	}
	return institutionID, true, nil
}
