package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/nebusis/controlcore-api/internal/domain/entities"
	"github.com/nebusis/controlcore-api/internal/domain/repositories"
	"github.com/nebusis/controlcore-api/internal/infrastructure/memory"
)

type checklistFixture struct {
	uc       *ChecklistUseCase
	store    *memory.Storage
	instID   int
	workflow entities.Workflow
	userID   int
}

func newChecklistFixture(t *testing.T) *checklistFixture {
	t.Helper()
	store := memory.NewStorage()
	ctx := context.Background()

	institution := entities.Institution{Name: "Ministerio de Prueba", Type: "ministerio"}
	if err := store.CreateInstitution(ctx, &institution); err != nil {
		t.Fatalf("CreateInstitution: %v", err)
	}
	user := entities.User{Email: "u@ejemplo.gob.do", PasswordHash: "x", FirstName: "U", LastName: "V", InstitutionID: &institution.ID}
	if err := store.CreateUser(ctx, &user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	workflow := entities.Workflow{
		Name:          "Ambiente de Control",
		ComponentType: entities.ComponentAmbienteControl,
		Status:        entities.WorkflowStatusInProgress,
		InstitutionID: institution.ID,
	}
	if err := store.CreateWorkflow(ctx, &workflow); err != nil {
		t.Fatalf("CreateWorkflow: %v", err)
	}
	return &checklistFixture{
		uc:       NewChecklistUseCase(store),
		store:    store,
		instID:   institution.ID,
		workflow: workflow,
		userID:   user.ID,
	}
}

func TestGetItemsFiltersByComponent(t *testing.T) {
	f := newChecklistFixture(t)
	ctx := context.Background()

	all, err := f.uc.GetItems(ctx, "")
	if err != nil {
		t.Fatalf("GetItems: %v", err)
	}
	if len(all) != 17 {
		t.Errorf("todos los ítems = %d, want 17", len(all))
	}

	ambiente, err := f.uc.GetItems(ctx, entities.ComponentAmbienteControl)
	if err != nil {
		t.Fatalf("GetItems(ambiente): %v", err)
	}
	if len(ambiente) != 5 {
		t.Errorf("ítems de ambiente_control = %d, want 5", len(ambiente))
	}
	for _, item := range ambiente {
		if item.ComponentType != entities.ComponentAmbienteControl {
			t.Errorf("ítem %s con componente %s", item.Code, item.ComponentType)
		}
	}
}

func TestUpsertResponseStampsAndLogsActivity(t *testing.T) {
	f := newChecklistFixture(t)
	ctx := context.Background()

	response := entities.ChecklistResponse{
		ChecklistItemID: 1,
		WorkflowID:      f.workflow.ID,
		Response:        "Cumplimos con el código de ética",
		Status:          entities.ResponseStatusCompliant,
		RespondedByID:   &f.userID,
	}
	if err := f.uc.UpsertResponse(ctx, &response); err != nil {
		t.Fatalf("UpsertResponse: %v", err)
	}

	if response.InstitutionID != f.instID {
		t.Errorf("institutionId = %d, want %d (heredado del workflow)", response.InstitutionID, f.instID)
	}
	if response.RespondedAt == nil {
		t.Error("respondedAt no fue estampado")
	}

	activities, err := f.store.GetRecentActivities(ctx, f.instID, 10)
	if err != nil {
		t.Fatalf("GetRecentActivities: %v", err)
	}
	if len(activities) != 1 || activities[0].Type != entities.ActivityChecklistResponse {
		t.Fatalf("actividades = %+v, want una checklist_response", activities)
	}
}

func TestUpsertResponseRejectsUnknownItemAndWorkflow(t *testing.T) {
	f := newChecklistFixture(t)
	ctx := context.Background()

	badItem := entities.ChecklistResponse{ChecklistItemID: 99, WorkflowID: f.workflow.ID}
	if err := f.uc.UpsertResponse(ctx, &badItem); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("ítem inexistente: %v, want ErrNotFound", err)
	}

	badWorkflow := entities.ChecklistResponse{ChecklistItemID: 1, WorkflowID: 999}
	if err := f.uc.UpsertResponse(ctx, &badWorkflow); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("workflow inexistente: %v, want ErrNotFound", err)
	}
}

func TestUpsertResponseValidatesLinkedDocuments(t *testing.T) {
	f := newChecklistFixture(t)
	ctx := context.Background()

	other := entities.Institution{Name: "Otra Institución", Type: "ministerio"}
	if err := f.store.CreateInstitution(ctx, &other); err != nil {
		t.Fatalf("CreateInstitution: %v", err)
	}
	foreign := entities.InstitutionDocument{
		InstitutionID: other.ID,
		FileName:      "codigo-etica.pdf",
		OriginalName:  "codigo-etica.pdf",
		FilePath:      "/uploads/codigo-etica.pdf",
		FileSize:      1024,
		MimeType:      "application/pdf",
		DocumentType:  "policies",
		UploadedByID:  f.userID,
	}
	if err := f.store.CreateInstitutionDocument(ctx, &foreign); err != nil {
		t.Fatalf("CreateInstitutionDocument: %v", err)
	}

	response := entities.ChecklistResponse{
		ChecklistItemID:   1,
		WorkflowID:        f.workflow.ID,
		Status:            entities.ResponseStatusCompliant,
		LinkedDocumentIDs: []int{foreign.ID},
	}
	if err := f.uc.UpsertResponse(ctx, &response); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("documento de otra institución: %v, want ErrInvalidReference", err)
	}

	missing := entities.ChecklistResponse{
		ChecklistItemID:   1,
		WorkflowID:        f.workflow.ID,
		Status:            entities.ResponseStatusCompliant,
		LinkedDocumentIDs: []int{12345},
	}
	if err := f.uc.UpsertResponse(ctx, &missing); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("documento inexistente: %v, want ErrInvalidReference", err)
	}

	ghostEvidence := entities.ChecklistResponse{
		ChecklistItemID:   1,
		WorkflowID:        f.workflow.ID,
		Status:            entities.ResponseStatusCompliant,
		LinkedEvidenceIDs: []int{777},
	}
	if err := f.uc.UpsertResponse(ctx, &ghostEvidence); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("evidencia inexistente: %v, want ErrInvalidReference", err)
	}
}

func TestUpsertResponseOverwritesPreviousAnswer(t *testing.T) {
	f := newChecklistFixture(t)
	ctx := context.Background()

	first := entities.ChecklistResponse{
		ChecklistItemID: 2,
		WorkflowID:      f.workflow.ID,
		Response:        "Parcial",
		Status:          entities.ResponseStatusPartial,
		RespondedByID:   &f.userID,
	}
	if err := f.uc.UpsertResponse(ctx, &first); err != nil {
		t.Fatalf("primer upsert: %v", err)
	}

	second := entities.ChecklistResponse{
		ChecklistItemID: 2,
		WorkflowID:      f.workflow.ID,
		Response:        "Ya cumplimos",
		Status:          entities.ResponseStatusCompliant,
		RespondedByID:   &f.userID,
	}
	if err := f.uc.UpsertResponse(ctx, &second); err != nil {
		t.Fatalf("segundo upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("el upsert creó otra fila: %d vs %d", second.ID, first.ID)
	}

	responses, err := f.uc.GetResponses(ctx, f.workflow.ID)
	if err != nil {
		t.Fatalf("GetResponses: %v", err)
	}
	if len(responses) != 1 || responses[0].Status != entities.ResponseStatusCompliant {
		t.Errorf("responses = %+v, want una sola con status cumple", responses)
	}
}

func TestUpdateResponseRevalidatesLinks(t *testing.T) {
	f := newChecklistFixture(t)
	ctx := context.Background()

	response := entities.ChecklistResponse{
		ChecklistItemID: 3,
		WorkflowID:      f.workflow.ID,
		Status:          entities.ResponseStatusPending,
	}
	if err := f.uc.UpsertResponse(ctx, &response); err != nil {
		t.Fatalf("UpsertResponse: %v", err)
	}

	badLinks := []int{9999}
	_, err := f.uc.UpdateResponse(ctx, response.ID, repositories.ChecklistResponseUpdate{LinkedDocumentIDs: &badLinks})
	if !errors.Is(err, ErrInvalidReference) {
		t.Errorf("UpdateResponse con documento inexistente: %v, want ErrInvalidReference", err)
	}

	status := entities.ResponseStatusCompliant
	updated, err := f.uc.UpdateResponse(ctx, response.ID, repositories.ChecklistResponseUpdate{Status: &status})
	if err != nil {
		t.Fatalf("UpdateResponse: %v", err)
	}
	if updated.Status != entities.ResponseStatusCompliant {
		t.Errorf("status = %q, want cumple", updated.Status)
	}
}
