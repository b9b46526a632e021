package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nebusis/controlcore-api/internal/application/usecases"
	"github.com/nebusis/controlcore-api/internal/interfaces/http/middleware"
)

// AuthHandler lida com login, logout e consulta do usuário autenticado.
type AuthHandler struct {
	authUseCase *usecases.AuthUseCase
}

func NewAuthHandler(authUseCase *usecases.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login valida as credenciais e emite o token de sessão.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	user, token, err := h.authUseCase.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecases.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Credenciales inválidas",
			})
		}
		log.Printf("login: %v", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"user":         user,
		"sessionToken": token,
	})
}

type logoutRequest struct {
	SessionToken string `json:"sessionToken"`
}

// Logout revoga o token recebido no corpo ou no header Authorization.
// Idempotente: repetir o logout devolve o mesmo 200.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req logoutRequest
	_ = c.BodyParser(&req)

	token := req.SessionToken
	if token == "" {
		token = bearerToken(c)
	}
	if token != "" {
		if err := h.authUseCase.Logout(c.UserContext(), token); err != nil {
			log.Printf("logout: %v", err)
			return internalError(c)
		}
	}
	return c.JSON(fiber.Map{
		"message": "Sesión cerrada exitosamente",
	})
}

// GetCurrentUser devolve o usuário dono da sessão ativa.
func (h *AuthHandler) GetCurrentUser(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "No autenticado",
		})
	}
	return c.JSON(user)
}

type resetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPassword registra o pedido de redefinição. O envio do email de
// redefinição fica a cargo da integração de correio.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}
	log.Printf("redefinición de contraseña solicitada para: %s", req.Email)
	return c.JSON(fiber.Map{
		"message": "Password reset link sent",
		"email":   req.Email,
	})
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return ""
	}
	return token
}
