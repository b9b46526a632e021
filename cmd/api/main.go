package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/nebusis/controlcore-api/internal/domain/repositories"
	"github.com/nebusis/controlcore-api/internal/infrastructure/database"
	"github.com/nebusis/controlcore-api/internal/infrastructure/email"
	"github.com/nebusis/controlcore-api/internal/infrastructure/memory"
	"github.com/nebusis/controlcore-api/internal/infrastructure/payment"
	"github.com/nebusis/controlcore-api/internal/infrastructure/session"
	"github.com/nebusis/controlcore-api/internal/interfaces/http/middleware"
	"github.com/nebusis/controlcore-api/internal/interfaces/http/routes"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using system environment variables")
	}

	storage, err := setupStorage()
	if err != nil {
		log.Fatalf("❌ Error setting up storage: %v", err)
	}

	sessions, err := setupSessions()
	if err != nil {
		log.Fatalf("❌ Error setting up session store: %v", err)
	}

	sender := setupEmail()
	payments := payment.NewService(os.Getenv("STRIPE_SECRET_KEY"))

	// Configure Fiber for better performance
	app := fiber.New(fiber.Config{
		Concurrency:  256 * 1024,
		Prefork:      false,
		BodyLimit:    10 * 1024 * 1024, // 10MB
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	})

	// Setup middleware
	middleware.SetupMiddlewares(app)

	// Setup routes
	routes.SetupRoutes(app, routes.Dependencies{
		Storage:  storage,
		Sessions: sessions,
		Email:    sender,
		Payments: payments,
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server is running on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

// setupStorage escolhe o backend pelo STORAGE_DRIVER: "memory" roda sem
// banco, com os dados de demonstração; qualquer outro valor usa Postgres.
func setupStorage() (repositories.Storage, error) {
	if os.Getenv("STORAGE_DRIVER") == "memory" {
		log.Println("💾 Using in-memory storage with demo data")
		store := memory.NewStorage()
		if err := store.SeedDemo(context.Background()); err != nil {
			return nil, err
		}
		return store, nil
	}

	db, err := database.SetupDatabase()
	if err != nil {
		return nil, err
	}
	return database.NewStorage(db), nil
}

// setupSessions escolhe o armazenamento de sessões: Redis quando
// SESSION_STORE=redis, senão em memória.
func setupSessions() (session.Store, error) {
	ttl := session.TTLFromEnv(os.Getenv("SESSION_TTL_HOURS"))
	if os.Getenv("SESSION_STORE") == "redis" {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			redisURL = "redis://localhost:6379"
		}
		log.Println("🔑 Using Redis session store")
		return session.NewRedisStore(context.Background(), redisURL, ttl)
	}
	return session.NewMemoryStore(ttl), nil
}

// setupEmail liga o SendGrid quando há chave; sem chave os alertas seguem
// sendo criados, só não há envio de email.
func setupEmail() email.Sender {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		log.Println("✉️ SENDGRID_API_KEY not set, email delivery disabled")
		return email.NopSender{}
	}
	from := os.Getenv("ALERT_FROM_EMAIL")
	if from == "" {
		from = "alertas@controlcore.local"
	}
	return email.NewSendGridSender(apiKey, from)
}
