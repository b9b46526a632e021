package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nebusis/controlcore-api/internal/domain/entities"
	"github.com/nebusis/controlcore-api/internal/domain/repositories"
)

// ErrInvalidReference indica que um documento ou evidência vinculado não
// existe ou pertence a outra instituição.
var ErrInvalidReference = errors.New("referencia inválida")

// ChecklistUseCase administra as 17 perguntas de verificação e as respostas
// por workflow.
type ChecklistUseCase struct {
	storage repositories.Storage
	now     func() time.Time
}

func NewChecklistUseCase(storage repositories.Storage) *ChecklistUseCase {
	return &ChecklistUseCase{storage: storage, now: time.Now}
}

// GetItems devolve as perguntas de verificação, filtradas por componente
// quando informado.
func (uc *ChecklistUseCase) GetItems(ctx context.Context, componentType string) ([]entities.ChecklistItem, error) {
	if componentType != "" {
		return uc.storage.GetChecklistItemsByComponent(ctx, componentType)
	}
	return uc.storage.GetChecklistItems(ctx)
}

func (uc *ChecklistUseCase) GetResponses(ctx context.Context, workflowID int) ([]entities.ChecklistResponse, error) {
	return uc.storage.GetChecklistResponses(ctx, workflowID)
}

// UpsertResponse grava a resposta do par (item, workflow): cria na primeira
// vez, sobrescreve nas seguintes. Valida o item, o workflow e os vínculos de
// documentos/evidências antes de persistir, e registra a atividade.
func (uc *ChecklistUseCase) UpsertResponse(ctx context.Context, response *entities.ChecklistResponse) error {
	item, err := uc.storage.GetChecklistItem(ctx, response.ChecklistItemID)
	if err != nil {
		return err
	}
	workflow, err := uc.storage.GetWorkflow(ctx, response.WorkflowID)
	if err != nil {
		return err
	}
	response.InstitutionID = workflow.InstitutionID

	if err := uc.validateLinks(ctx, response); err != nil {
		return err
	}

	now := uc.now()
	if response.RespondedAt == nil && response.RespondedByID != nil {
		response.RespondedAt = &now
	}
	if err := uc.storage.UpsertChecklistResponse(ctx, response); err != nil {
		return err
	}

	if response.RespondedByID != nil {
		activity := entities.Activity{
			Type:          entities.ActivityChecklistResponse,
			Description:   fmt.Sprintf("respondió la verificación %s en \"%s\"", item.Code, workflow.Name),
			UserID:        *response.RespondedByID,
			WorkflowID:    &workflow.ID,
			InstitutionID: workflow.InstitutionID,
		}
		if err := uc.storage.CreateActivity(ctx, &activity); err != nil {
			return err
		}
	}
	return nil
}

// UpdateResponse aplica alterações parciais a uma resposta existente,
// revalidando os vínculos quando eles mudam.
func (uc *ChecklistUseCase) UpdateResponse(ctx context.Context, id int, updates repositories.ChecklistResponseUpdate) (entities.ChecklistResponse, error) {
	if updates.LinkedDocumentIDs != nil || updates.LinkedEvidenceIDs != nil {
		current, err := uc.storage.UpdateChecklistResponse(ctx, id, repositories.ChecklistResponseUpdate{})
		if err != nil {
			return entities.ChecklistResponse{}, err
		}
		probe := current
		if updates.LinkedDocumentIDs != nil {
			probe.LinkedDocumentIDs = *updates.LinkedDocumentIDs
		}
		if updates.LinkedEvidenceIDs != nil {
			probe.LinkedEvidenceIDs = *updates.LinkedEvidenceIDs
		}
		if err := uc.validateLinks(ctx, &probe); err != nil {
			return entities.ChecklistResponse{}, err
		}
	}
	return uc.storage.UpdateChecklistResponse(ctx, id, updates)
}

// validateLinks confere que todos os documentos vinculados existem e são da
// mesma instituição, e que as evidências vinculadas existem.
func (uc *ChecklistUseCase) validateLinks(ctx context.Context, response *entities.ChecklistResponse) error {
	for _, docID := range response.LinkedDocumentIDs {
		document, err := uc.storage.GetInstitutionDocument(ctx, docID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("%w: documento %d", ErrInvalidReference, docID)
			}
			return err
		}
		if document.InstitutionID != response.InstitutionID {
			return fmt.Errorf("%w: documento %d pertenece a otra institución", ErrInvalidReference, docID)
		}
	}
	for _, evidenceID := range response.LinkedEvidenceIDs {
		if _, err := uc.storage.GetEvidence(ctx, evidenceID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("%w: evidencia %d", ErrInvalidReference, evidenceID)
			}
			return err
		}
	}
	return nil
}
