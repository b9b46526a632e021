package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/nebusis/controlcore-api/internal/domain/entities"
	"github.com/nebusis/controlcore-api/internal/domain/repositories"
	"github.com/nebusis/controlcore-api/internal/interfaces/http/middleware"
)

// UserHandler lida com perfil, senha e preferências de notificação.
type UserHandler struct {
	storage repositories.Storage
}

func NewUserHandler(storage repositories.Storage) *UserHandler {
	return &UserHandler{storage: storage}
}

// GetProfile devolve o perfil do usuário autenticado.
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "No autenticado"})
	}
	return c.JSON(user)
}

type updateProfileRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// UpdateProfile altera nome e sobrenome do usuário autenticado.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "No autenticado"})
	}

	var req updateProfileRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	updated, err := h.storage.UpdateUser(c.UserContext(), user.ID, repositories.UserUpdate{
		FirstName: &req.FirstName,
		LastName:  &req.LastName,
	})
	if err != nil {
		return respondStorageError(c, err, "Usuario no encontrado")
	}
	return c.JSON(fiber.Map{
		"message": "Perfil actualizado exitosamente",
		"profile": updated,
	})
}

// UploadProfilePhoto registra a foto de perfil. O arquivo em si é servido
// pela camada de assets estáticos.
func (h *UserHandler) UploadProfilePhoto(c *fiber.Ctx) error {
	if _, ok := middleware.CurrentUser(c); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "No autenticado"})
	}
	return c.JSON(fiber.Map{
		"message":  "Foto de perfil actualizada exitosamente",
		"photoUrl": "/api/assets/default-profile.jpg",
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// ChangePassword troca a senha após conferir a atual contra o hash.
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return badRequest(c, "ID de usuario inválido")
	}

	current, ok := middleware.CurrentUser(c)
	if !ok || current.ID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Operación no permitida"})
	}

	var req changePasswordRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	user, err := h.storage.GetUser(c.UserContext(), userID)
	if err != nil {
		return respondStorageError(c, err, "Usuario no encontrado")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return badRequest(c, "Contraseña actual incorrecta")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("cambio de contraseña: %v", err)
		return internalError(c)
	}
	newHash := string(hash)
	if _, err := h.storage.UpdateUser(c.UserContext(), userID, repositories.UserUpdate{PasswordHash: &newHash}); err != nil {
		return respondStorageError(c, err, "Usuario no encontrado")
	}

	return c.JSON(fiber.Map{
		"message": "Password changed successfully",
		"userId":  userID,
	})
}

type notificationPrefsRequest struct {
	EmailNotifications *bool `json:"emailNotifications" validate:"required"`
}

// UpdateNotifications liga ou desliga os avisos por email do usuário.
func (h *UserHandler) UpdateNotifications(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return badRequest(c, "ID de usuario inválido")
	}

	var req notificationPrefsRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	if _, err := h.storage.UpdateUser(c.UserContext(), userID, repositories.UserUpdate{
		EmailNotifications: req.EmailNotifications,
	}); err != nil {
		return respondStorageError(c, err, "Usuario no encontrado")
	}

	return c.JSON(fiber.Map{
		"message":            "Preferencias de notificación actualizadas",
		"userId":             userID,
		"emailNotifications": *req.EmailNotifications,
	})
}

// GetUsersByInstitution lista os usuários de uma instituição.
func (h *UserHandler) GetUsersByInstitution(c *fiber.Ctx) error {
	institutionID, ok, err := requireInstitutionID(c)
	if !ok {
		return err
	}
	users, err := h.storage.GetUsersByInstitution(c.UserContext(), institutionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.JSON([]entities.User{})
		}
		return internalError(c)
	}
	return c.JSON(users)
}
