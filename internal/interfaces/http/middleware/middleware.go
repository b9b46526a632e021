package middleware

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/nebusis/controlcore-api/internal/application/usecases"
	"github.com/nebusis/controlcore-api/internal/domain/entities"
)

// UserContextKey guarda o usuário autenticado no contexto da requisição.
const UserContextKey = "currentUser"

func SetupMiddlewares(app *fiber.App) {
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "http://localhost:3000"
	}

	// CORS configuration
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	app.Use(logger.New())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Use(etag.New())
}

// RequireAuth valida o token Bearer contra o armazenamento de sessões e
// injeta o usuário no contexto. Token ausente, inválido ou expirado = 401.
func RequireAuth(auth *usecases.AuthUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "No autenticado",
			})
		}

		user, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "No autenticado",
			})
		}

		c.Locals(UserContextKey, user)
		return c.Next()
	}
}

// CurrentUser recupera o usuário autenticado colocado pelo RequireAuth.
func CurrentUser(c *fiber.Ctx) (entities.User, bool) {
	user, ok := c.Locals(UserContextKey).(entities.User)
	return user, ok
}
