package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nebusis/controlcore-api/internal/domain/entities"
	"github.com/nebusis/controlcore-api/internal/domain/repositories"
)

// ErrInvalidComponent rejeita componentType fora dos cinco componentes COSO.
var ErrInvalidComponent = errors.New("componente COSO inválido")

// WorkflowUseCase cobre o ciclo de vida dos workflows, seus passos e as
// evidências anexadas, registrando as atividades derivadas.
type WorkflowUseCase struct {
	storage repositories.Storage
	now     func() time.Time
}

func NewWorkflowUseCase(storage repositories.Storage) *WorkflowUseCase {
	return &WorkflowUseCase{storage: storage, now: time.Now}
}

func (uc *WorkflowUseCase) GetWorkflow(ctx context.Context, id int) (entities.Workflow, error) {
	return uc.storage.GetWorkflow(ctx, id)
}

func (uc *WorkflowUseCase) GetWorkflowsByInstitution(ctx context.Context, institutionID int) ([]entities.Workflow, error) {
	return uc.storage.GetWorkflowsByInstitution(ctx, institutionID)
}

// CreateWorkflow valida o componente, persiste e registra a atividade de
// criação em nome do responsável.
func (uc *WorkflowUseCase) CreateWorkflow(ctx context.Context, workflow *entities.Workflow, actorID int) error {
	if !entities.IsValidComponentType(workflow.ComponentType) {
		return ErrInvalidComponent
	}
	if err := uc.storage.CreateWorkflow(ctx, workflow); err != nil {
		return err
	}

	userID := actorID
	if workflow.AssignedToID != nil {
		userID = *workflow.AssignedToID
	}
	activity := entities.Activity{
		Type:          entities.ActivityWorkflowCreated,
		Description:   fmt.Sprintf("creó el flujo de trabajo \"%s\"", workflow.Name),
		UserID:        userID,
		WorkflowID:    &workflow.ID,
		InstitutionID: workflow.InstitutionID,
	}
	return uc.storage.CreateActivity(ctx, &activity)
}

// UpdateWorkflow aplica alterações parciais. Mudança de status gera
// atividade; conclusão carimba completedAt quando o chamador não informou.
func (uc *WorkflowUseCase) UpdateWorkflow(ctx context.Context, id int, updates repositories.WorkflowUpdate, actorID int) (entities.Workflow, error) {
	if updates.Status != nil && *updates.Status == entities.WorkflowStatusCompleted && updates.CompletedAt == nil {
		now := uc.now()
		updates.CompletedAt = &now
	}

	workflow, err := uc.storage.UpdateWorkflow(ctx, id, updates)
	if err != nil {
		return entities.Workflow{}, err
	}

	if updates.Status != nil {
		activityType := entities.ActivityWorkflowUpdated
		description := fmt.Sprintf("actualizó el flujo de trabajo \"%s\"", workflow.Name)
		if *updates.Status == entities.WorkflowStatusCompleted {
			activityType = entities.ActivityWorkflowCompleted
			description = fmt.Sprintf("completó el flujo de trabajo \"%s\"", workflow.Name)
		}

		userID := actorID
		if workflow.AssignedToID != nil {
			userID = *workflow.AssignedToID
		}
		activity := entities.Activity{
			Type:          activityType,
			Description:   description,
			UserID:        userID,
			WorkflowID:    &workflow.ID,
			InstitutionID: workflow.InstitutionID,
		}
		if err := uc.storage.CreateActivity(ctx, &activity); err != nil {
			return workflow, err
		}
	}
	return workflow, nil
}

func (uc *WorkflowUseCase) GetSteps(ctx context.Context, workflowID int) ([]entities.WorkflowStep, error) {
	if _, err := uc.storage.GetWorkflow(ctx, workflowID); err != nil {
		return nil, err
	}
	return uc.storage.GetWorkflowSteps(ctx, workflowID)
}

func (uc *WorkflowUseCase) CreateStep(ctx context.Context, step *entities.WorkflowStep) error {
	if _, err := uc.storage.GetWorkflow(ctx, step.WorkflowID); err != nil {
		return err
	}
	return uc.storage.CreateWorkflowStep(ctx, step)
}

// UpdateStep aplica alterações parciais a um passo e recalcula o progresso
// do workflow dono como a fração de passos concluídos.
func (uc *WorkflowUseCase) UpdateStep(ctx context.Context, id int, updates repositories.WorkflowStepUpdate) (entities.WorkflowStep, error) {
	if updates.Status != nil && *updates.Status == entities.StepStatusCompleted && updates.CompletedAt == nil {
		now := uc.now()
		updates.CompletedAt = &now
	}

	step, err := uc.storage.UpdateWorkflowStep(ctx, id, updates)
	if err != nil {
		return entities.WorkflowStep{}, err
	}

	if updates.Status != nil {
		if err := uc.recalculateProgress(ctx, step.WorkflowID); err != nil {
			return step, err
		}
	}
	return step, nil
}

func (uc *WorkflowUseCase) recalculateProgress(ctx context.Context, workflowID int) error {
	steps, err := uc.storage.GetWorkflowSteps(ctx, workflowID)
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		return nil
	}
	completed := 0
	for _, s := range steps {
		if s.Status == entities.StepStatusCompleted {
			completed++
		}
	}
	progress := completed * 100 / len(steps)
	_, err = uc.storage.UpdateWorkflow(ctx, workflowID, repositories.WorkflowUpdate{Progress: &progress})
	return err
}

func (uc *WorkflowUseCase) GetEvidence(ctx context.Context, stepID int) ([]entities.Evidence, error) {
	if _, err := uc.storage.GetWorkflowStep(ctx, stepID); err != nil {
		return nil, err
	}
	return uc.storage.GetEvidenceByStep(ctx, stepID)
}

// AddEvidence anexa um arquivo a um passo e registra a atividade no workflow
// dono do passo.
func (uc *WorkflowUseCase) AddEvidence(ctx context.Context, evidence *entities.Evidence) error {
	step, err := uc.storage.GetWorkflowStep(ctx, evidence.WorkflowStepID)
	if err != nil {
		return err
	}
	workflow, err := uc.storage.GetWorkflow(ctx, step.WorkflowID)
	if err != nil {
		return err
	}
	if err := uc.storage.CreateEvidence(ctx, evidence); err != nil {
		return err
	}

	activity := entities.Activity{
		Type:          entities.ActivityEvidenceUploaded,
		Description:   fmt.Sprintf("subió evidencia para \"%s\"", workflow.Name),
		UserID:        evidence.UploadedByID,
		WorkflowID:    &workflow.ID,
		InstitutionID: workflow.InstitutionID,
	}
	return uc.storage.CreateActivity(ctx, &activity)
}
