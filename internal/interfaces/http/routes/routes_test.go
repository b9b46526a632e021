package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nebusis/controlcore-api/internal/infrastructure/email"
	"github.com/nebusis/controlcore-api/internal/infrastructure/memory"
	"github.com/nebusis/controlcore-api/internal/infrastructure/payment"
	"github.com/nebusis/controlcore-api/internal/infrastructure/session"
)

func newTestApp(t *testing.T) (*fiber.App, *memory.Storage) {
	t.Helper()
	store := memory.NewStorage()
	if err := store.SeedDemo(context.Background()); err != nil {
		t.Fatalf("SeedDemo: %v", err)
	}
	sessions := session.NewMemoryStore(time.Hour)
	t.Cleanup(sessions.Close)

	app := fiber.New()
	SetupRoutes(app, Dependencies{
		Storage:  store,
		Sessions: sessions,
		Email:    email.NopSender{},
		Payments: payment.NewService(""),
	})
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("codificando el cuerpo: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func loginDemo(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "ana.rodriguez@hacienda.gob.do",
		"password": "nobaci2024",
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login demo: status %d", resp.StatusCode)
	}
	var payload struct {
		SessionToken string `json:"sessionToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decodificando el login: %v", err)
	}
	if payload.SessionToken == "" {
		t.Fatal("login sin sessionToken")
	}
	return payload.SessionToken
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	resp := doJSON(t, app, fiber.MethodGet, "/health", "", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("health: status %d", resp.StatusCode)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "ana.rodriguez@hacienda.gob.do",
		"password": "equivocada",
	})
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("contraseña errada: status %d, want 401", resp.StatusCode)
	}

	resp = doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "sin-contraseña@ejemplo.gob.do",
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("cuerpo incompleto: status %d, want 400", resp.StatusCode)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/api/auth/user", "", nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("sin token: status %d, want 401", resp.StatusCode)
	}

	resp = doJSON(t, app, fiber.MethodGet, "/api/auth/user", "token-inventado", nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("token inválido: status %d, want 401", resp.StatusCode)
	}
}

func TestLoginAndFetchCurrentUser(t *testing.T) {
	app, _ := newTestApp(t)
	token := loginDemo(t, app)

	resp := doJSON(t, app, fiber.MethodGet, "/api/auth/user", token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("auth/user: status %d", resp.StatusCode)
	}
	var user struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("decodificando el usuario: %v", err)
	}
	if user.Email != "ana.rodriguez@hacienda.gob.do" {
		t.Errorf("email = %q", user.Email)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	app, _ := newTestApp(t)
	token := loginDemo(t, app)

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/logout", token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("logout: status %d", resp.StatusCode)
	}

	resp = doJSON(t, app, fiber.MethodGet, "/api/auth/user", token, nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("token tras logout: status %d, want 401", resp.StatusCode)
	}
}

func TestDashboardStatsWithDemoData(t *testing.T) {
	app, store := newTestApp(t)
	token := loginDemo(t, app)

	user, err := store.GetUserByEmail(context.Background(), "ana.rodriguez@hacienda.gob.do")
	if err != nil || user.InstitutionID == nil {
		t.Fatalf("usuario demo sin institución: %v", err)
	}

	path := fmt.Sprintf("/api/dashboard/stats?institutionId=%d", *user.InstitutionID)
	resp := doJSON(t, app, fiber.MethodGet, path, token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("dashboard/stats: status %d", resp.StatusCode)
	}
	var stats struct {
		ActiveWorkflows    int `json:"activeWorkflows"`
		CompletedWorkflows int `json:"completedWorkflows"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decodificando stats: %v", err)
	}
	if stats.ActiveWorkflows+stats.CompletedWorkflows == 0 {
		t.Error("los datos demo deberían aportar workflows al panel")
	}

	resp = doJSON(t, app, fiber.MethodGet, "/api/dashboard/stats", token, nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("sin institutionId: status %d, want 400", resp.StatusCode)
	}
	// El cuerpo es el error, no las estadísticas.
	var errBody struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
		t.Fatalf("decodificando el error: %v", err)
	}
	if errBody.Message != "ID de institución requerido" {
		t.Errorf("message = %q, want el error de institución requerida", errBody.Message)
	}
}

func TestCreateWorkflowValidation(t *testing.T) {
	app, store := newTestApp(t)
	token := loginDemo(t, app)

	user, err := store.GetUserByEmail(context.Background(), "ana.rodriguez@hacienda.gob.do")
	if err != nil || user.InstitutionID == nil {
		t.Fatalf("usuario demo sin institución: %v", err)
	}

	before, err := store.GetWorkflowsByInstitution(context.Background(), *user.InstitutionID)
	if err != nil {
		t.Fatalf("GetWorkflowsByInstitution: %v", err)
	}

	resp := doJSON(t, app, fiber.MethodPost, "/api/workflows", token, fiber.Map{
		"name": "Sin componente ni institución",
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("cuerpo incompleto: status %d, want 400", resp.StatusCode)
	}

	resp = doJSON(t, app, fiber.MethodPost, "/api/workflows", token, fiber.Map{
		"name":          "Componente inexistente",
		"componentType": "otro_componente",
		"institutionId": *user.InstitutionID,
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("componente inválido: status %d, want 400", resp.StatusCode)
	}

	// Los cuerpos rechazados no deben dejar rastro en el almacenamiento.
	after, err := store.GetWorkflowsByInstitution(context.Background(), *user.InstitutionID)
	if err != nil {
		t.Fatalf("GetWorkflowsByInstitution: %v", err)
	}
	if len(after) != len(before) {
		t.Errorf("un cuerpo rechazado persistió un workflow: %d → %d", len(before), len(after))
	}

	resp = doJSON(t, app, fiber.MethodPost, "/api/workflows", token, fiber.Map{
		"name":          "Nuevo flujo de supervisión",
		"componentType": "supervision",
		"institutionId": *user.InstitutionID,
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Errorf("creación válida: status %d, want 201", resp.StatusCode)
	}
}

func TestChecklistItemsEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	token := loginDemo(t, app)

	resp := doJSON(t, app, fiber.MethodGet, "/api/checklist/items", token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("checklist/items: status %d", resp.StatusCode)
	}
	var items []struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("decodificando los ítems: %v", err)
	}
	if len(items) != 17 {
		t.Errorf("ítems = %d, want 17", len(items))
	}
}

func TestDocumentUploadAndAnalyze(t *testing.T) {
	app, store := newTestApp(t)
	token := loginDemo(t, app)

	user, err := store.GetUserByEmail(context.Background(), "ana.rodriguez@hacienda.gob.do")
	if err != nil || user.InstitutionID == nil {
		t.Fatalf("usuario demo sin institución: %v", err)
	}

	resp := doJSON(t, app, fiber.MethodPost, "/api/documents/upload", token, fiber.Map{
		"institutionId": *user.InstitutionID,
		"fileName":      "reglamento-interno.pdf",
		"documentType":  "regulations",
		"fileSize":      2048,
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("upload: status %d", resp.StatusCode)
	}
	var uploaded struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		t.Fatalf("decodificando el documento: %v", err)
	}

	resp = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/documents/%d/analyze", uploaded.ID), token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("analyze: status %d", resp.StatusCode)
	}
	var analyzed struct {
		AnalyzedAt     *string `json:"analyzedAt"`
		AnalysisResult *struct {
			Summary string `json:"summary"`
		} `json:"analysisResult"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&analyzed); err != nil {
		t.Fatalf("decodificando el análisis: %v", err)
	}
	if analyzed.AnalyzedAt == nil || analyzed.AnalysisResult == nil || analyzed.AnalysisResult.Summary == "" {
		t.Error("el análisis no fue estampado en el documento")
	}
}

func TestPaymentsUnavailableWithoutKey(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/create-payment-intent", "", fiber.Map{
		"amount": 25.0,
	})
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Errorf("sin clave de Stripe: status %d, want 503", resp.StatusCode)
	}
}

func TestCgrTemplatesEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	token := loginDemo(t, app)

	resp := doJSON(t, app, fiber.MethodGet, "/api/cgr-templates", token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("cgr-templates: status %d", resp.StatusCode)
	}
	var templates []struct {
		Type string `json:"type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&templates); err != nil {
		t.Fatalf("decodificando las plantillas: %v", err)
	}
	if len(templates) != 3 {
		t.Errorf("plantillas = %d, want 3", len(templates))
	}
}
