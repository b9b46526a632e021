package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nebusis/controlcore-api/internal/domain/entities"
	"github.com/nebusis/controlcore-api/internal/domain/repositories"
)

func TestNewStorageSeedsChecklistItems(t *testing.T) {
	store := NewStorage()
	items, err := store.GetChecklistItems(context.Background())
	if err != nil {
		t.Fatalf("GetChecklistItems: %v", err)
	}
	if len(items) != 17 {
		t.Fatalf("checklist items = %d, want 17", len(items))
	}

	codes := map[string]bool{}
	for _, item := range items {
		if codes[item.Code] {
			t.Errorf("código duplicado: %s", item.Code)
		}
		codes[item.Code] = true
	}
	if !codes["1.1"] || !codes["5.2"] {
		t.Error("faltan los códigos extremos 1.1 y 5.2")
	}
}

func TestGetUserNotFound(t *testing.T) {
	store := NewStorage()
	if _, err := store.GetUser(context.Background(), 999); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("GetUser(999) = %v, want ErrNotFound", err)
	}
}

func TestUpsertComplianceScoreSingleRow(t *testing.T) {
	store := NewStorage()
	ctx := context.Background()

	first, err := store.UpsertComplianceScore(ctx, 1, entities.ComponentAmbienteControl, 60)
	if err != nil {
		t.Fatalf("primer upsert: %v", err)
	}
	second, err := store.UpsertComplianceScore(ctx, 1, entities.ComponentAmbienteControl, 85)
	if err != nil {
		t.Fatalf("segundo upsert: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("IDs distintos tras el upsert: %d vs %d", first.ID, second.ID)
	}
	if second.Score != 85 {
		t.Errorf("score = %d, want 85", second.Score)
	}

	scores, err := store.GetComplianceScores(ctx, 1)
	if err != nil {
		t.Fatalf("GetComplianceScores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("filas = %d, want 1", len(scores))
	}
}

func TestUpsertChecklistResponseKeepsOneRowPerPair(t *testing.T) {
	store := NewStorage()
	ctx := context.Background()

	first := entities.ChecklistResponse{
		ChecklistItemID: 1,
		WorkflowID:      10,
		InstitutionID:   1,
		Response:        "primera observación",
		Status:          entities.ResponseStatusPartial,
	}
	if err := store.UpsertChecklistResponse(ctx, &first); err != nil {
		t.Fatalf("primer upsert: %v", err)
	}

	second := entities.ChecklistResponse{
		ChecklistItemID: 1,
		WorkflowID:      10,
		InstitutionID:   1,
		Response:        "observación corregida",
		Status:          entities.ResponseStatusCompliant,
	}
	if err := store.UpsertChecklistResponse(ctx, &second); err != nil {
		t.Fatalf("segundo upsert: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("el upsert creó otra fila: %d vs %d", second.ID, first.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Error("el upsert no preservó createdAt")
	}

	responses, err := store.GetChecklistResponses(ctx, 10)
	if err != nil {
		t.Fatalf("GetChecklistResponses: %v", err)
	}
	if len(responses) != 1 {
		t.Fatalf("respuestas = %d, want 1", len(responses))
	}
	if responses[0].Status != entities.ResponseStatusCompliant {
		t.Errorf("status = %q, want %q", responses[0].Status, entities.ResponseStatusCompliant)
	}
}

func TestRecentActivitiesOrderAndLimit(t *testing.T) {
	store := NewStorage()
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		activity := entities.Activity{
			Type:          entities.ActivityWorkflowUpdated,
			Description:   "actualización",
			UserID:        1,
			InstitutionID: 1,
			CreatedAt:     base.Add(time.Duration(i) * time.Hour),
		}
		if err := store.CreateActivity(ctx, &activity); err != nil {
			t.Fatalf("CreateActivity: %v", err)
		}
	}

	activities, err := store.GetRecentActivities(ctx, 1, 3)
	if err != nil {
		t.Fatalf("GetRecentActivities: %v", err)
	}
	if len(activities) != 3 {
		t.Fatalf("actividades = %d, want 3", len(activities))
	}
	for i := 1; i < len(activities); i++ {
		if activities[i].CreatedAt.After(activities[i-1].CreatedAt) {
			t.Fatal("actividades fuera de orden: la más reciente debe venir primero")
		}
	}
}

func TestEnsureActiveAlertIsIdempotent(t *testing.T) {
	store := NewStorage()
	ctx := context.Background()
	workflowID := 7

	build := func() entities.AlertNotification {
		return entities.AlertNotification{
			Title:         "Flujo vencido",
			Description:   "vencido",
			Type:          entities.AlertTypeOverdue,
			Priority:      entities.PriorityAlta,
			InstitutionID: 1,
			WorkflowID:    &workflowID,
			IsActive:      true,
		}
	}

	first := build()
	created, err := store.EnsureActiveAlert(ctx, &first)
	if err != nil || !created {
		t.Fatalf("primer EnsureActiveAlert: created=%v err=%v", created, err)
	}

	second := build()
	created, err = store.EnsureActiveAlert(ctx, &second)
	if err != nil {
		t.Fatalf("segundo EnsureActiveAlert: %v", err)
	}
	if created {
		t.Error("la segunda llamada creó un alerta duplicado")
	}
	if second.ID != first.ID {
		t.Errorf("el alerta devuelto no es el existente: %d vs %d", second.ID, first.ID)
	}

	alerts, err := store.GetActiveAlerts(ctx, 1, &workflowID)
	if err != nil {
		t.Fatalf("GetActiveAlerts: %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("alertas activas = %d, want 1", len(alerts))
	}
}

func TestDeactivateAlert(t *testing.T) {
	store := NewStorage()
	ctx := context.Background()
	workflowID := 3

	alert := entities.AlertNotification{
		Title:         "Prazo próximo",
		Description:   "vence pronto",
		Type:          entities.AlertTypeDeadlineApproaching,
		Priority:      entities.PriorityMedia,
		InstitutionID: 1,
		WorkflowID:    &workflowID,
		IsActive:      true,
	}
	if _, err := store.EnsureActiveAlert(ctx, &alert); err != nil {
		t.Fatalf("EnsureActiveAlert: %v", err)
	}

	deactivated, err := store.DeactivateAlert(ctx, alert.ID)
	if err != nil || !deactivated {
		t.Fatalf("DeactivateAlert: deactivated=%v err=%v", deactivated, err)
	}

	alerts, err := store.GetActiveAlerts(ctx, 1, nil)
	if err != nil {
		t.Fatalf("GetActiveAlerts: %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("alertas activas tras desactivar = %d, want 0", len(alerts))
	}

	// Desativar de novo não encontra nada ativo.
	deactivated, err = store.DeactivateAlert(ctx, alert.ID)
	if err != nil {
		t.Fatalf("segundo DeactivateAlert: %v", err)
	}
	if deactivated {
		t.Error("desactivar dos veces devolvió true")
	}
}

func TestDeleteMissingRowsReturnFalse(t *testing.T) {
	store := NewStorage()
	ctx := context.Background()

	if deleted, err := store.DeleteInstitutionDocument(ctx, 42); err != nil || deleted {
		t.Errorf("DeleteInstitutionDocument(42) = (%v, %v), want (false, nil)", deleted, err)
	}
	if deleted, err := store.DeleteTrainingRecord(ctx, 42); err != nil || deleted {
		t.Errorf("DeleteTrainingRecord(42) = (%v, %v), want (false, nil)", deleted, err)
	}
	if deleted, err := store.DeleteInstitutionalPlan(ctx, 42); err != nil || deleted {
		t.Errorf("DeleteInstitutionalPlan(42) = (%v, %v), want (false, nil)", deleted, err)
	}
}

func TestSubmitCgrReportStampsStatusAndTime(t *testing.T) {
	store := NewStorage()
	ctx := context.Background()

	report := entities.CgrReport{
		InstitutionID: 1,
		ReportType:    "cumplimiento",
		ReportPeriod:  "2024-Q1",
		GeneratedByID: 1,
	}
	if err := store.CreateCgrReport(ctx, &report); err != nil {
		t.Fatalf("CreateCgrReport: %v", err)
	}
	if report.Status != entities.CgrStatusDraft {
		t.Errorf("status inicial = %q, want draft", report.Status)
	}

	submitted, err := store.SubmitCgrReport(ctx, report.ID)
	if err != nil {
		t.Fatalf("SubmitCgrReport: %v", err)
	}
	if submitted.Status != entities.CgrStatusSubmitted {
		t.Errorf("status = %q, want submitted", submitted.Status)
	}
	if submitted.SubmittedAt == nil {
		t.Error("submittedAt no fue estampado")
	}

	approved, err := store.ApproveCgrReport(ctx, report.ID)
	if err != nil {
		t.Fatalf("ApproveCgrReport: %v", err)
	}
	if approved.Status != entities.CgrStatusApproved {
		t.Errorf("status = %q, want approved", approved.Status)
	}
}

func TestSeedDemoLoadsUsersAndWorkflows(t *testing.T) {
	store := NewStorage()
	ctx := context.Background()

	if err := store.SeedDemo(ctx); err != nil {
		t.Fatalf("SeedDemo: %v", err)
	}

	user, err := store.GetUserByEmail(ctx, "ana.rodriguez@hacienda.gob.do")
	if err != nil {
		t.Fatalf("usuario demo no encontrado: %v", err)
	}
	if user.PasswordHash == "" {
		t.Error("el usuario demo no tiene hash de contraseña")
	}
	if user.InstitutionID == nil {
		t.Fatal("el usuario demo no tiene institución")
	}

	workflows, err := store.GetWorkflowsByInstitution(ctx, *user.InstitutionID)
	if err != nil {
		t.Fatalf("GetWorkflowsByInstitution: %v", err)
	}
	if len(workflows) != 3 {
		t.Errorf("workflows demo = %d, want 3", len(workflows))
	}
}
