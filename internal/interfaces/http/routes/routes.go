package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nebusis/controlcore-api/internal/application/assistant"
	"github.com/nebusis/controlcore-api/internal/application/usecases"
	"github.com/nebusis/controlcore-api/internal/domain/repositories"
	"github.com/nebusis/controlcore-api/internal/infrastructure/email"
	"github.com/nebusis/controlcore-api/internal/infrastructure/payment"
	"github.com/nebusis/controlcore-api/internal/infrastructure/session"
	"github.com/nebusis/controlcore-api/internal/interfaces/http/handlers"
	"github.com/nebusis/controlcore-api/internal/interfaces/http/middleware"
)

// Dependencies agrupa os colaboradores injetados na montagem das rotas.
type Dependencies struct {
	Storage  repositories.Storage
	Sessions session.Store
	Email    email.Sender
	Payments *payment.Service
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Use Cases
	authUseCase := usecases.NewAuthUseCase(deps.Storage, deps.Sessions)
	workflowUseCase := usecases.NewWorkflowUseCase(deps.Storage)
	reportUseCase := usecases.NewReportUseCase(deps.Storage)
	alertUseCase := usecases.NewAlertUseCase(deps.Storage, deps.Email)
	checklistUseCase := usecases.NewChecklistUseCase(deps.Storage)
	cosoAssistant := assistant.New()
	documentUseCase := usecases.NewDocumentUseCase(deps.Storage, cosoAssistant)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUseCase)
	userHandler := handlers.NewUserHandler(deps.Storage)
	institutionHandler := handlers.NewInstitutionHandler(deps.Storage)
	workflowHandler := handlers.NewWorkflowHandler(workflowUseCase)
	dashboardHandler := handlers.NewDashboardHandler(reportUseCase, deps.Storage)
	documentHandler := handlers.NewDocumentHandler(documentUseCase)
	checklistHandler := handlers.NewChecklistHandler(checklistUseCase)
	reportHandler := handlers.NewReportHandler(reportUseCase)
	alertHandler := handlers.NewAlertHandler(alertUseCase, deps.Storage)
	recordsHandler := handlers.NewRecordsHandler(deps.Storage, reportUseCase)
	cgrHandler := handlers.NewCgrHandler(deps.Storage, cosoAssistant)
	assistantHandler := handlers.NewAssistantHandler(cosoAssistant)
	paymentHandler := handlers.NewPaymentHandler(deps.Payments)

	api := app.Group("/api")

	// Rotas públicas: login, pagamento e chequeo agendado de alertas.
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", authHandler.Logout)
	api.Post("/auth/reset-password", authHandler.ResetPassword)
	api.Post("/create-payment-intent", paymentHandler.CreatePaymentIntent)
	api.Post("/alerts/check", alertHandler.CheckAlerts)

	// Rotas protegidas por token de sessão.
	protected := api.Group("", middleware.RequireAuth(authUseCase))

	protected.Get("/auth/user", authHandler.GetCurrentUser)
	protected.Get("/user/profile", userHandler.GetProfile)
	protected.Patch("/user/profile", userHandler.UpdateProfile)
	protected.Post("/user/profile/photo", userHandler.UploadProfilePhoto)
	protected.Put("/users/:id/change-password", userHandler.ChangePassword)
	protected.Put("/users/:id/notifications", userHandler.UpdateNotifications)
	protected.Get("/users", userHandler.GetUsersByInstitution)

	protected.Get("/institutions/:id", institutionHandler.GetInstitution)
	protected.Post("/institutions/:id/logo", institutionHandler.UploadLogo)

	protected.Get("/workflows", workflowHandler.GetWorkflows)
	protected.Post("/workflows", workflowHandler.CreateWorkflow)
	protected.Get("/workflows/:id", workflowHandler.GetWorkflow)
	protected.Patch("/workflows/:id", workflowHandler.UpdateWorkflow)
	protected.Get("/workflows/:id/steps", workflowHandler.GetSteps)
	protected.Post("/workflows/:id/steps", workflowHandler.CreateStep)
	protected.Patch("/workflows/steps/:id", workflowHandler.UpdateStep)
	protected.Get("/steps/:id/evidence", workflowHandler.GetEvidence)
	protected.Post("/steps/:id/evidence", workflowHandler.AddEvidence)

	protected.Get("/dashboard/stats", dashboardHandler.GetStats)
	protected.Get("/activities", dashboardHandler.GetActivities)
	protected.Get("/compliance-scores", dashboardHandler.GetComplianceScores)

	protected.Get("/documents", documentHandler.GetDocuments)
	protected.Post("/documents/upload", documentHandler.Upload)
	protected.Post("/documents/:id/analyze", documentHandler.Analyze)
	protected.Delete("/documents/:id", documentHandler.Delete)

	protected.Get("/checklist/items", checklistHandler.GetItems)
	protected.Get("/checklist/responses/:workflowId", checklistHandler.GetResponses)
	protected.Post("/checklist/responses", checklistHandler.UpsertResponse)
	protected.Put("/checklist/responses/:id", checklistHandler.UpdateResponse)

	protected.Get("/reports/compliance", reportHandler.GetComplianceReport)
	protected.Get("/reports/progress", reportHandler.GetProgressReport)
	protected.Get("/reports/performance", reportHandler.GetPerformanceReport)
	protected.Get("/reports/risk", reportHandler.GetRiskReport)

	protected.Get("/alerts", alertHandler.GetAlerts)
	protected.Post("/alerts/send-test", alertHandler.SendTestAlert)
	protected.Post("/alerts/:id/deactivate", alertHandler.DeactivateAlert)

	protected.Get("/institutional-plans", recordsHandler.GetPlans)
	protected.Post("/institutional-plans", recordsHandler.CreatePlan)
	protected.Delete("/institutional-plans/:id", recordsHandler.DeletePlan)

	protected.Get("/training-records", recordsHandler.GetTrainingRecords)
	protected.Post("/training-records", recordsHandler.CreateTrainingRecord)
	protected.Delete("/training-records/:id", recordsHandler.DeleteTrainingRecord)
	protected.Get("/training-stats", recordsHandler.GetTrainingStats)

	protected.Get("/cgr-reports", cgrHandler.GetReports)
	protected.Post("/cgr-reports", cgrHandler.CreateReport)
	protected.Post("/cgr-reports/:id/submit", cgrHandler.SubmitReport)
	protected.Post("/cgr-reports/:id/approve", cgrHandler.ApproveReport)
	protected.Delete("/cgr-reports/:id", cgrHandler.DeleteReport)
	protected.Get("/cgr-templates", cgrHandler.GetTemplates)

	protected.Post("/ai/chat", assistantHandler.Chat)
}
